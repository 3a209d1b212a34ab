// Package config loads scalargrad runtime settings from the environment.
//
// A .env file in the working directory or one of its parents is loaded
// first; variables already set in the process environment win.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvSeed      = "SCALARGRAD_SEED"
	EnvWorkers   = "SCALARGRAD_WORKERS"
	EnvFDStep    = "SCALARGRAD_FD_STEP"
	EnvTolerance = "SCALARGRAD_TOLERANCE"
	EnvLogEps    = "SCALARGRAD_LOG_EPS"
)

// maxEnvDepth bounds the upward search for a .env file.
const maxEnvDepth = 5

// Config holds the settings used by the CLI.
type Config struct {
	Seed      uint64  // RNG seed for weight initialization
	Workers   int     // Goroutines used for per-sample gradients
	FDStep    float64 // Finite-difference step for gradient checks
	Tolerance float64 // Allowed |analytic - numeric| difference
	LogEps    float64 // Epsilon offset for log-loss
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Seed:      42,
		Workers:   runtime.NumCPU(),
		FDStep:    1e-6,
		Tolerance: 1e-4,
		LogEps:    1e-15,
	}
}

// Load returns Default overridden by the environment.
// A malformed value or .env file is an error rather than a silent fallback.
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	cfg := Default()

	if err := parseUint(EnvSeed, &cfg.Seed); err != nil {
		return nil, err
	}
	if err := parseInt(EnvWorkers, &cfg.Workers); err != nil {
		return nil, err
	}
	if err := parseFloat(EnvFDStep, &cfg.FDStep); err != nil {
		return nil, err
	}
	if err := parseFloat(EnvTolerance, &cfg.Tolerance); err != nil {
		return nil, err
	}
	if err := parseFloat(EnvLogEps, &cfg.LogEps); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch {
	case c.Workers < 1:
		return fmt.Errorf("config: %s must be at least 1, got %d", EnvWorkers, c.Workers)
	case !(c.FDStep > 0):
		return fmt.Errorf("config: %s must be positive, got %g", EnvFDStep, c.FDStep)
	case !(c.Tolerance > 0):
		return fmt.Errorf("config: %s must be positive, got %g", EnvTolerance, c.Tolerance)
	case !(c.LogEps >= 0):
		return fmt.Errorf("config: %s must be non-negative, got %g", EnvLogEps, c.LogEps)
	}
	return nil
}

// loadEnvFile looks upward until it finds a .env file.
// Finding none is not an error; failing to parse one is.
func loadEnvFile() error {
	dir, err := os.Getwd()
	if err != nil {
		return nil
	}

	for i := 0; i < maxEnvDepth; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("config: %s: %w", envPath, err)
			}
			return nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return nil
}

func parseUint(key string, dst *uint64) error {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*dst = v
	return nil
}

func parseInt(key string, dst *int) error {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*dst = v
	return nil
}

func parseFloat(key string, dst *float64) error {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*dst = v
	return nil
}
