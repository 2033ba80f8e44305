package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultListenAddr = ":8080"
	defaultLogLevel   = "info"
	defaultLogFormat  = "console"
)

type Config struct {
	ListenAddr  string
	DatabaseURL string
	RedisAddr   string // empty disables the picklist cache
	RedisDB     int
	LogLevel    string
	LogFormat   string
}

// Load reads .env if present, then the environment. DATABASE_URL is the only
// required value; the caller decides whether its absence is fatal.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddr:  getenv("LISTEN_ADDR", defaultListenAddr),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RedisAddr:   strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		LogLevel:    getenv("LOG_LEVEL", defaultLogLevel),
		LogFormat:   getenv("LOG_FORMAT", defaultLogFormat),
	}

	if v := strings.TrimSpace(os.Getenv("REDIS_DB")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RedisDB = n
		}
	}

	return cfg
}

func getenv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
