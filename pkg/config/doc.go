// Package config provides a type-safe, generic way to load configuration
// from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11` to
// deliver a small API that:
//
//   - Loads values from zero or more `.env` files, silently skipping files
//     that do not exist.
//   - Parses the environment into any Go struct using field tags.
//   - Exposes a helper that panics on failure (`MustLoad`) for
//     configuration the process cannot start without.
//
// # Usage
//
// Create a struct describing a component's tunables and annotate its fields
// with `env` tags:
//
//	type WorkerConfig struct {
//	    InletBuffer     int           `env:"CASCADE_INLET_BUFFER" envDefault:"0"`
//	    ShutdownTimeout time.Duration `env:"CASCADE_SHUTDOWN_TIMEOUT" envDefault:"30s"`
//	}
//
// Then load it wherever the component is constructed:
//
//	cfg, err := config.Load[WorkerConfig](".env")
//	if err != nil {
//	    log.Fatalf("parsing env: %v", err)
//	}
//
// Variables already present in the real environment always win over values
// read from a file, so deployments can override a checked-in `.env`.
//
// Every call parses the environment anew and returns a fresh value. The
// package deliberately keeps no global cache: configuration structs here
// are per-component tunables owned by whoever constructs the component, not
// process-wide singletons.
//
// # Error Handling
//
// The package defines sentinel errors that can be compared with
// `errors.Is`:
//
//   - `ErrParse`   – failed to parse env vars into the struct.
//   - `ErrEnvFile` – a named .env file exists but could not be read.
//
// # See Also
//
//   - https://github.com/joho/godotenv – .env file loader.
//   - https://github.com/caarlos0/env – environment parser.
package config
