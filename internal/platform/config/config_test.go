package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"AGEUTIL_ADDR", "AGEUTIL_ENVIRONMENT", "AGEUTIL_LOG_LEVEL", "AGEUTIL_BRACKETS_FILE",
		"AGEUTIL_BATCH_LIMIT", "AGEUTIL_MAX_BATCH_SIZE", "AGEUTIL_EVALUATE_TIMEOUT", "AGEUTIL_SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, Server{
		Addr:            DefaultAddr,
		Environment:     "development",
		LogLevel:        "info",
		BatchLimit:      DefaultBatchLimit,
		MaxBatchSize:    DefaultMaxBatchSize,
		EvaluateTimeout: DefaultEvaluateTimeout,
		ShutdownTimeout: DefaultShutdownTimeout,
	}, cfg)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("AGEUTIL_ADDR", ":9090")
	t.Setenv("AGEUTIL_BRACKETS_FILE", "/etc/ageutil/brackets.yaml")
	t.Setenv("AGEUTIL_BATCH_LIMIT", "2")
	t.Setenv("AGEUTIL_EVALUATE_TIMEOUT", "250ms")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "/etc/ageutil/brackets.yaml", cfg.BracketsFile)
	assert.Equal(t, 2, cfg.BatchLimit)
	assert.Equal(t, 250*time.Millisecond, cfg.EvaluateTimeout)
}

func TestFromEnv_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("AGEUTIL_BATCH_LIMIT", "-3")
	t.Setenv("AGEUTIL_MAX_BATCH_SIZE", "many")
	t.Setenv("AGEUTIL_SHUTDOWN_TIMEOUT", "soon")

	cfg := FromEnv()

	assert.Equal(t, DefaultBatchLimit, cfg.BatchLimit)
	assert.Equal(t, DefaultMaxBatchSize, cfg.MaxBatchSize)
	assert.Equal(t, DefaultShutdownTimeout, cfg.ShutdownTimeout)
}
