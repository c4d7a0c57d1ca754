package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Load parses environment variables into a fresh configuration struct based
// on its field tags. Any .env files given are loaded first, in order; files
// that do not exist are skipped, and variables already present in the real
// environment are never overridden by a file.
//
// Every call parses anew, so two loads of the same type may observe
// different environments. Callers that want load-once semantics keep the
// returned value.
//
// Example:
//
//	type QueueConfig struct {
//		Buffer  int           `env:"QUEUE_BUFFER" envDefault:"16"`
//		Timeout time.Duration `env:"QUEUE_TIMEOUT" envDefault:"30s"`
//	}
//
//	cfg, err := config.Load[QueueConfig](".env")
//	if err != nil {
//		// Handle error
//	}
func Load[T any](files ...string) (T, error) {
	var zero T
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return zero, errors.Join(ErrEnvFile, err)
		}
	}

	cfg, err := env.ParseAs[T]()
	if err != nil {
		return zero, errors.Join(ErrParse, err)
	}
	return cfg, nil
}

// MustLoad works like Load but panics if configuration loading fails. This
// is useful for configurations the process cannot start without.
//
// Example:
//
//	cfg := config.MustLoad[QueueConfig]()
func MustLoad[T any](files ...string) T {
	cfg, err := Load[T](files...)
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}
