package config

import (
	"os"
	"strings"
)

type Config struct {
	MongoURI  string
	RedisURI  string
	JWTSecret string
	Port      string

	FrontendURL    string
	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL; must include the frontend origin
	Host           string   // Raw HOST env (e.g. https://api.voicevault.app)
	AllowedHost    string   // Hostname only for strict host check (production only)
	Environment    string   // ENV: production, development, etc.

	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	UploadDir           string

	// OpenAdminAPI exposes /api/admin/* without authentication, mirroring the
	// historical deployment. Leave false: the default registers the same
	// routes behind the admin gate.
	OpenAdminAPI bool
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))
	host := getEnv("HOST", "http://localhost:8080")

	// AllowedHost is only set in production; host check is skipped in development
	var allowedHost string
	if env == "production" {
		allowedHost = bareHost(host)
	}

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		if u := strings.TrimSpace(getEnv("FRONTEND_URL", "http://localhost:3000")); u != "" {
			allowedOrigins = append(allowedOrigins, u)
		}
	}

	return &Config{
		MongoURI:  getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/voicevault")),
		RedisURI:  getEnv("REDIS_URI", "redis://localhost:6379/0"),
		JWTSecret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		Port:      getEnv("PORT", "8080"),

		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:3000"),
		AllowedOrigins: allowedOrigins,
		Host:           host,
		AllowedHost:    allowedHost,
		Environment:    env,

		CloudinaryName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		UploadDir:           getEnv("UPLOAD_DIR", "uploads"),

		OpenAdminAPI: strings.EqualFold(strings.TrimSpace(getEnv("ADMIN_API_OPEN", "")), "true"),
	}
}

// bareHost strips scheme, path and port from a HOST value.
func bareHost(host string) string {
	for _, prefix := range []string{"https://", "http://"} {
		host = strings.TrimPrefix(host, prefix)
	}
	if idx := strings.Index(host, "/"); idx != -1 {
		host = host[:idx]
	}
	if idx := strings.Index(host, ":"); idx != -1 {
		host = host[:idx]
	}
	return strings.TrimSpace(host)
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

// HasCloudinary reports whether all three Cloudinary credentials are set.
// Storage backend selection happens once at startup based on this.
func (c *Config) HasCloudinary() bool {
	return c.CloudinaryName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
