package config

import "errors"

// Package-specific errors
var (
	// ErrParse is returned when environment variables cannot be parsed into
	// the config struct
	ErrParse = errors.New("config: failed to parse environment variables")

	// ErrEnvFile is returned when a named .env file exists but cannot be
	// loaded
	ErrEnvFile = errors.New("config: failed to load env file")
)
