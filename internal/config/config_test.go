package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENV", "HOST", "PORT", "MONGODB_URI", "MONGO_URI", "REDIS_URI",
		"JWT_SECRET", "ALLOWED_ORIGINS", "FRONTEND_URL", "UPLOAD_DIR",
		"CLOUDINARY_CLOUD_NAME", "CLOUDINARY_API_KEY", "CLOUDINARY_API_SECRET",
		"ADMIN_API_OPEN",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, "mongodb://localhost:27017/voicevault", cfg.MongoURI)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURI)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Empty(t, cfg.AllowedHost)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.HasCloudinary())
	assert.False(t, cfg.OpenAdminAPI)
}

func TestLoad_AllowedOrigins(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALLOWED_ORIGINS", "https://app.voicevault.io, https://www.voicevault.io")

	cfg := Load()

	assert.Equal(t, []string{"https://app.voicevault.io", "https://www.voicevault.io"}, cfg.AllowedOrigins)
}

func TestLoad_ProductionHost(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("HOST", "https://api.voicevault.io:8443/base")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "api.voicevault.io", cfg.AllowedHost)
}

func TestLoad_Cloudinary(t *testing.T) {
	clearEnv(t)
	t.Setenv("CLOUDINARY_CLOUD_NAME", "demo")
	t.Setenv("CLOUDINARY_API_KEY", "key")

	cfg := Load()
	assert.False(t, cfg.HasCloudinary(), "two of three credentials is not enough")

	t.Setenv("CLOUDINARY_API_SECRET", "secret")
	assert.True(t, Load().HasCloudinary())
}

func TestLoad_OpenAdminAPI(t *testing.T) {
	clearEnv(t)

	t.Setenv("ADMIN_API_OPEN", "true")
	assert.True(t, Load().OpenAdminAPI)

	t.Setenv("ADMIN_API_OPEN", "1")
	assert.False(t, Load().OpenAdminAPI, "only the literal true opens the admin API")
}
