package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// App
	Env string // dev / staging / prod
	// HTTP
	HTTPAddr string
	// Storage
	DBPath string
	// Sessions
	SessionTTL time.Duration
	// Redis (optional; memory sessions when unset)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

func Load() (*Config, error) {
	// Optional loading of local .env file for development convenience.
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		DBPath:   getEnv("DB_PATH", "portal.db"),
	}

	// Session lifetime; deployments can override the default.
	ttl, err := getDuration("SESSION_TTL", 12*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.SessionTTL = ttl

	// Redis is optional: when REDIS_ADDR is empty the bootstrap wires the
	// in-process session store instead.
	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	rdb, err := getInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	cfg.RedisDB = rdb

	// Timeout values are optional and have a default value if not set.
	rt, err := getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPReadTimeout = rt

	wt, err := getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPWriteTimeout = wt

	it, err := getDuration("HTTP_IDLE_TIMEOUT", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.HTTPIdleTimeout = it

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
	}
	return d, nil
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %q: %w", key, v, err)
	}
	return n, nil
}
