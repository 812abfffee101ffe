package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port        string
	PostgresDSN string
	MongoURI    string
	MongoDB     string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	JWTSecret string
	TokenTTL  time.Duration

	RateLimitWindow   time.Duration
	RateLimitMax      int
	RateLimitDisabled bool

	LogLevel       string
	AllowedOrigins []string
}

// Load reads configuration from the environment, after loading a .env file
// if one is present in the working directory.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:        getenv("PORT", "8080"),
		PostgresDSN: getenv("POSTGRES_DSN", ""),
		MongoURI:    getenv("MONGO_URI", ""),
		MongoDB:     getenv("MONGO_DB", "lifehub"),

		MinioEndpoint:  getenv("MINIO_ENDPOINT", "minio:9000"),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getenv("MINIO_BUCKET", "lifehub-avatars"),
		MinioUseSSL:    getenv("MINIO_USE_SSL", "false") == "true",

		JWTSecret: getenv("JWT_SECRET", ""),
		TokenTTL:  time.Duration(getenvInt("TOKEN_TTL_HOURS", 24)) * time.Hour,

		RateLimitWindow:   time.Duration(getenvInt("RATE_LIMIT_WINDOW_MS", 900000)) * time.Millisecond,
		RateLimitMax:      getenvInt("RATE_LIMIT_MAX", 100),
		RateLimitDisabled: getenv("RATE_LIMIT_DISABLED", "false") == "true",

		LogLevel: getenv("LOG_LEVEL", "info"),
		AllowedOrigins: []string{
			getenv("FRONTEND_ORIGIN", "http://localhost:5173"),
			"http://localhost:3000",
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
