package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/voicevault/voicevault-backend/internal/config"
	"github.com/voicevault/voicevault-backend/internal/database"
	"github.com/voicevault/voicevault-backend/internal/handlers"
	"github.com/voicevault/voicevault-backend/internal/middleware"
	"github.com/voicevault/voicevault-backend/internal/routes"
	"github.com/voicevault/voicevault-backend/internal/storage"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	if cfg.JWTSecret == "your-secret-key-change-in-production" && cfg.IsProduction() {
		log.Fatal("JWT_SECRET must be set in production")
	}

	// Connect to MongoDB
	log.Printf("Connecting to MongoDB...")
	if err := database.Connect(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.Disconnect()

	// Ensure MongoDB indexes (unique email, recording listing index)
	if err := database.EnsureIndexes(context.Background()); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure MongoDB indexes: %v", err)
	} else {
		log.Println("✅ MongoDB indexes ensured")
	}

	// Connect to Redis (rate limiting)
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	// Select the storage backend once for the process lifetime: Cloudinary
	// when all three credentials are present, local disk otherwise.
	backend, err := storage.Select(cfg)
	if err != nil {
		log.Fatal("Failed to initialize storage backend:", err)
	}

	handlers.Init(cfg, backend)

	// Setup router
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Production: security headers, host check, in-memory limiters.
	// Non-production: Redis-based rate limit only.
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity(cfg.AllowedHost) {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, host check, per-IP + login rate limiting)")
	} else {
		r.Use(middleware.RateLimitMiddleware)
	}

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, cfg)

	// Blobs stored by the local backend are served back under /uploads even
	// when Cloudinary is active, so pre-switch records stay readable.
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir)))
	r.Get("/uploads/*", func(w http.ResponseWriter, r *http.Request) {
		fileServer.ServeHTTP(w, r)
	})

	log.Println("📋 Registered routes:")
	log.Println("  GET    /health")
	log.Println("  POST   /api/auth/register")
	log.Println("  POST   /api/auth/login")
	log.Println("  POST   /api/auth/logout")
	log.Println("  GET    /api/auth/me")
	log.Println("  GET    /api/users")
	log.Println("  POST   /api/users")
	log.Println("  GET    /api/users/{id}")
	log.Println("  PUT    /api/users/{id}")
	log.Println("  POST   /api/recordings/upload")
	log.Println("  GET    /api/recordings/my-recordings")
	log.Println("  GET    /api/recordings/all")
	log.Println("  GET    /api/recordings/user/{userID}")
	log.Println("  DELETE /api/recordings/{id}")
	log.Println("  GET    /uploads/*")

	log.Printf("🚀 VoiceVault backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
