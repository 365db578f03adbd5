package server

import (
	"os"
	"strconv"
	"time"
)

// Config holds the service settings read from the environment.
type Config struct {
	Addr      string // POS_ADDR, listen address
	Refresh   string // POS_REFRESH, cron spec of the snapshot refresh
	LogLevel  string // POS_LOG_LEVEL
	LogPretty bool   // POS_LOG_PRETTY
	Currency  string // POS_CURRENCY

	SessionTTL  time.Duration // POS_SESSION_TTL, idle time after which a session expires
	MaxSessions int           // POS_MAX_SESSIONS
}

// DefaultRefresh is the refresh schedule used when none is configured.
const DefaultRefresh = "@every 1m"

// SweepSchedule is the cron spec of the session expiry.
const SweepSchedule = "@every 10m"

// ConfigFromEnv reads the configuration from the environment, using defaults for unset values.
func ConfigFromEnv() Config {
	cfg := Config{
		Addr:     getEnv("POS_ADDR", ":8080"),
		Refresh:  getEnv("POS_REFRESH", DefaultRefresh),
		LogLevel: getEnv("POS_LOG_LEVEL", "info"),
		Currency: getEnv("POS_CURRENCY", "USD"),
	}
	cfg.LogPretty, _ = strconv.ParseBool(os.Getenv("POS_LOG_PRETTY"))
	cfg.SessionTTL, _ = time.ParseDuration(os.Getenv("POS_SESSION_TTL"))
	cfg.MaxSessions, _ = strconv.Atoi(os.Getenv("POS_MAX_SESSIONS"))
	return cfg
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
