package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	Environment     string
	LogLevel        string
	BracketsFile    string
	BatchLimit      int
	MaxBatchSize    int
	EvaluateTimeout time.Duration
	ShutdownTimeout time.Duration
}

const (
	DefaultAddr            = ":8080"
	DefaultBatchLimit      = 8
	DefaultMaxBatchSize    = 1000
	DefaultEvaluateTimeout = 5 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// FromEnv builds a Server config from environment variables so main stays lean.
// Malformed numbers and durations fall back to their defaults.
func FromEnv() Server {
	return Server{
		Addr:            envOr("AGEUTIL_ADDR", DefaultAddr),
		Environment:     envOr("AGEUTIL_ENVIRONMENT", "development"),
		LogLevel:        envOr("AGEUTIL_LOG_LEVEL", "info"),
		BracketsFile:    os.Getenv("AGEUTIL_BRACKETS_FILE"),
		BatchLimit:      envInt("AGEUTIL_BATCH_LIMIT", DefaultBatchLimit),
		MaxBatchSize:    envInt("AGEUTIL_MAX_BATCH_SIZE", DefaultMaxBatchSize),
		EvaluateTimeout: envDuration("AGEUTIL_EVALUATE_TIMEOUT", DefaultEvaluateTimeout),
		ShutdownTimeout: envDuration("AGEUTIL_SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
