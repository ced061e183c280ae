package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	Env             string
	ListenAddr      string
	DatabaseURL     string
	SyncWorkers     int
	ClimatiqAPIKey  string
	ClimatiqBaseURL string
	ClimatiqTimeout time.Duration
	WebhookSecret   string
	OriginAddress   string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Load() (Config, error) {
	cfg := Config{
		Env:             getenv("APP_ENV", "development"),
		ListenAddr:      getenv("LISTEN_ADDR", ":8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		SyncWorkers:     getenvInt("SYNC_WORKERS", 0),
		ClimatiqAPIKey:  os.Getenv("CLIMATIQ_API_KEY"),
		ClimatiqBaseURL: os.Getenv("CLIMATIQ_BASE_URL"),
		ClimatiqTimeout: time.Duration(getenvInt("CLIMATIQ_TIMEOUT_MS", 5000)) * time.Millisecond,
		WebhookSecret:   os.Getenv("ORDER_WEBHOOK_SECRET"),
		OriginAddress:   getenv("ORIGIN_ADDRESS", "Warehouse"),
	}
	if cfg.DatabaseURL == "" {
		// Not fatal for early local runs; warn via error value so callers can decide.
		return cfg, fmt.Errorf("DATABASE_URL not set")
	}
	return cfg, nil
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var out int
		_, err := fmt.Sscanf(v, "%d", &out)
		if err == nil {
			return out
		}
	}
	return def
}
