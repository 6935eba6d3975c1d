package cache

import (
	"fmt"
)

// New creates a new Cache based on the configuration.
// It returns an error if the configuration is invalid or if the backend
// fails to initialize.
func New(cfg *Config) (Cache, error) {
	log := logger().With().Str("component", "cache_factory").Logger()

	if err := cfg.Validate(); err != nil {
		log.Debug().Err(err).Str("mode", string(cfg.Mode)).Msg("cache factory: validation failed")
		return nil, err
	}

	switch cfg.Mode {
	case ModeSingle:
		c, err := newRistrettoCache(cfg.Ristretto)
		if err != nil {
			return nil, fmt.Errorf("cache: ristretto init: %w", err)
		}
		return c, nil
	case ModeDisabled:
		return newNoopCache(), nil
	default:
		return nil, fmt.Errorf("cache: unknown mode %q", cfg.Mode)
	}
}
