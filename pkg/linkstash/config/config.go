package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds server settings loaded from the environment.
type Config struct {
	Port          string
	DBPath        string
	ScrapeTimeout time.Duration
}

// Load reads configuration from a .env file (if present) and the
// environment. Missing values fall back to development defaults.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:          getenv("PORT", "8080"),
		DBPath:        getenv("LINKSTASH_DB_PATH", "linkstash.db"),
		ScrapeTimeout: getenvSeconds("SCRAPE_TIMEOUT", 10*time.Second),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvSeconds(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return fallback
	}
	return time.Duration(secs) * time.Second
}
