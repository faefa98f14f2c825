// Package config loads engine defaults from the process environment, with
// an optional .env file for local development (flow.md §9 ambient
// configuration surface).
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Defaults mirror flow/engine.Options' zero-value fallbacks so a deployment
// can override them purely through environment variables without touching
// code.
const (
	defaultMaxSteps      = 100
	defaultToolTimeoutMS = 30000
)

// Config holds the environment-derived defaults consumed by
// flow/engine.Options.
type Config struct {
	// MaxSteps bounds run-loop iterations per startSession/processInput
	// call (I: loop-bound safety).
	MaxSteps int
	// DefaultToolTimeoutMS is used for Tool-Call nodes that omit an
	// explicit `timeout`.
	DefaultToolTimeoutMS int
	// Debug makes the reference CLI print every engine event's kind and
	// node id to stderr.
	Debug bool
}

// Load reads MAX_STEPS, DEFAULT_TOOL_TIMEOUT_MS, and DEBUG from the
// process environment, first attempting to load envFile (if non-empty) via
// godotenv — a missing or unreadable envFile is not an error, matching
// godotenv.Load's typical "best effort" use in local tooling.
func Load(envFile string) Config {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}

	return Config{
		MaxSteps:             intEnv("MAX_STEPS", defaultMaxSteps),
		DefaultToolTimeoutMS: intEnv("DEFAULT_TOOL_TIMEOUT_MS", defaultToolTimeoutMS),
		Debug:                boolEnv("DEBUG", false),
	}
}

func intEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func boolEnv(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return b
}
