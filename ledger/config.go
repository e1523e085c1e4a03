package ledger

import "time"

// Config is the configuration for the ledger application.
type Config struct {
	HTTPAddr string
	// DatabaseDSN is required for the pg storage backend.
	DatabaseDSN string
	// StorageBackend selects the durable backend: "pg" or "mem". The mem
	// backend is for tests only and must be explicitly allowed.
	StorageBackend  string
	AllowMemBackend bool
	// FeeRotationInterval is how often the fee oracle draws a new multiplier.
	FeeRotationInterval time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		HTTPAddr:            "localhost:8080",
		StorageBackend:      "pg",
		FeeRotationInterval: time.Hour,
	}
}
