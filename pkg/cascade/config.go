package cascade

import "time"

// Config holds the configuration for a cascade worker
type Config struct {
	InletBuffer     int           `env:"CASCADE_INLET_BUFFER" envDefault:"0"`
	ShutdownTimeout time.Duration `env:"CASCADE_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}
