package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	MongoURI            string
	MongoDB             string // Explicit database name; empty means derive from MongoURI
	Port                string
	Environment         string   // ENV: production, development, etc.
	AllowedOrigins      []string // CORS: from ALLOWED_ORIGINS, "*" when unset
	AllowedHosts        []string // Production Host-header allow list; empty disables the check
	TrustProxy          bool     // Honor X-Forwarded-For when logging client addresses
	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string // Root folder for uploaded assets
	StripeSecretKey     string
	StripeCurrency      string
	PasswordScheme      string // sha256 (legacy) or argon2id, applied to new signups only
	MaxUploadMB         int64
}

func Load() *Config {
	allowedOrigins := parseList(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	return &Config{
		MongoURI:            getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/vinted")),
		MongoDB:             getEnv("MONGODB_DB", ""),
		Port:                getEnv("PORT", "3000"),
		Environment:         strings.ToLower(strings.TrimSpace(getEnv("ENV", "development"))),
		AllowedOrigins:      allowedOrigins,
		AllowedHosts:        parseList(getEnv("ALLOWED_HOST", "")),
		TrustProxy:          getEnv("TRUST_PROXY", "") == "true",
		CloudinaryName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		CloudinaryFolder:    strings.Trim(getEnv("CLOUDINARY_FOLDER", "vinted"), "/"),
		StripeSecretKey:     getEnv("STRIPE_API_SECRET", ""),
		StripeCurrency:      strings.ToLower(getEnv("STRIPE_CURRENCY", "eur")),
		PasswordScheme:      strings.ToLower(strings.TrimSpace(getEnv("PASSWORD_SCHEME", "sha256"))),
		MaxUploadMB:         getInt64Env("MAX_UPLOAD_MB", 10),
	}
}

// parseList splits a comma list and drops blank entries.
func parseList(s string) []string {
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
	return c.Environment == "production"
}

// UploadsEnabled reports whether all Cloudinary credentials are present.
func (c *Config) UploadsEnabled() bool {
	return c.CloudinaryName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

// MaxUploadBytes is the multipart memory budget handed to ParseMultipartForm.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}
