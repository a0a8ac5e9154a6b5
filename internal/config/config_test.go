package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"MONGODB_URI", "MONGO_URI", "MONGODB_DB", "PORT", "ENV", "ALLOWED_ORIGINS", "ALLOWED_HOST", "TRUST_PROXY",
		"CLOUDINARY_CLOUD_NAME", "CLOUDINARY_API_KEY", "CLOUDINARY_API_SECRET", "CLOUDINARY_FOLDER",
		"STRIPE_API_SECRET", "STRIPE_CURRENCY", "PASSWORD_SCHEME", "MAX_UPLOAD_MB",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "mongodb://localhost:27017/vinted", cfg.MongoURI)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Empty(t, cfg.AllowedHosts)
	assert.False(t, cfg.TrustProxy)
	assert.Equal(t, "vinted", cfg.CloudinaryFolder)
	assert.Equal(t, "eur", cfg.StripeCurrency)
	assert.Equal(t, "sha256", cfg.PasswordScheme)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes())
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.UploadsEnabled())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("MONGO_URI", "mongodb://db:27017/shop")
	t.Setenv("ENV", " Production ")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("ALLOWED_HOST", " api.example.com ,www.example.com")
	t.Setenv("TRUST_PROXY", "true")
	t.Setenv("CLOUDINARY_CLOUD_NAME", "cloud")
	t.Setenv("CLOUDINARY_API_KEY", "key")
	t.Setenv("CLOUDINARY_API_SECRET", "secret")
	t.Setenv("CLOUDINARY_FOLDER", "/market/")
	t.Setenv("STRIPE_CURRENCY", "USD")
	t.Setenv("MAX_UPLOAD_MB", "not-a-number")

	cfg := Load()

	assert.Equal(t, "mongodb://db:27017/shop", cfg.MongoURI)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, []string{"api.example.com", "www.example.com"}, cfg.AllowedHosts)
	assert.True(t, cfg.TrustProxy)
	assert.True(t, cfg.UploadsEnabled())
	assert.Equal(t, "market", cfg.CloudinaryFolder)
	assert.Equal(t, "usd", cfg.StripeCurrency)
	assert.Equal(t, int64(10), cfg.MaxUploadMB)
}
