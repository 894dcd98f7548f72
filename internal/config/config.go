package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port string

	RedisURL      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ImageDir string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvi(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var n int
		_, _ = fmt.Sscanf(v, "%d", &n)
		return n
	}
	return def
}

func Load() *Config {
	return &Config{
		Port: getenv("PORT", "8080"),

		// REDIS_URL takes precedence over the addr/password/db triple.
		// Leaving both unset runs the service on the in-memory store.
		RedisURL:      getenv("REDIS_URL", ""),
		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getenvi("REDIS_DB", 0),

		// Empty IMAGE_DIR keeps uploaded images in memory.
		ImageDir: getenv("IMAGE_DIR", ""),
	}
}
