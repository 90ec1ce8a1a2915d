package config

import (
	"os"
	"strconv"
)

// Config carries all runtime settings, loaded from the environment. A .env
// file is honored when present (loaded in main before Load runs).
type Config struct {
	Port      string
	GinMode   string
	LogLevel  string
	LogJSON   bool
	JWTSecret []byte

	// DatabaseURL selects the store: a postgres:// DSN, or empty to fall
	// back to a local SQLite file.
	DatabaseURL string
	SQLitePath  string

	// RedisAddr enables the overview cache when non-empty
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogJSON:       getEnv("LOG_JSON", "") == "true",
		JWTSecret:     []byte(getEnv("JWT_SECRET", "resqfood_super_secret_2024")),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		SQLitePath:    getEnv("SQLITE_PATH", "resqfood.db"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
