package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultJWTSecret = "replace_this_secret_in_prod"

type Config struct {
	AppEnv   string
	LogLevel string
	Port     string

	// Storage. DatabaseURL switches from JSON files to the GORM backend.
	DataDir     string
	DatabaseURL string

	JWTSecret   string
	AdminAPIKey string

	RateLimitPerMinute int

	// TrustedProxies may set X-Forwarded-For. Empty means the client IP is
	// always the socket peer.
	TrustedProxies []string
	PublicDir      string

	BackupDir       string
	BackupRetention time.Duration

	// OTelTraces is "off" or "stdout".
	OTelTraces string
}

// Load reads an optional .env file and then the environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() Config {
	return Config{
		AppEnv:             getEnv("APP_ENV", "dev"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Port:               getEnv("PORT", "3000"),
		DataDir:            getEnv("DATA_DIR", "./data"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		JWTSecret:          getEnv("JWT_SECRET", DefaultJWTSecret),
		AdminAPIKey:        os.Getenv("ADMIN_API_KEY"),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		TrustedProxies:     getEnvList("TRUSTED_PROXIES"),
		PublicDir:          getEnv("PUBLIC_DIR", "./public"),
		BackupDir:          os.Getenv("BACKUP_DIR"),
		BackupRetention:    time.Duration(getEnvInt("BACKUP_RETENTION_DAYS", 4)) * 24 * time.Hour,
		OTelTraces:         getEnv("OTEL_TRACES", "off"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvList splits a comma separated variable, dropping blanks.
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
