package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/omarluq/fairdraw/internal/cache"
)

// envOverrides lists the settings that can be overridden from the environment.
type envOverrides struct {
	LogLevel  string `env:"FAIRDRAW_LOG_LEVEL"`
	LogFormat string `env:"FAIRDRAW_LOG_FORMAT"`
	LogOutput string `env:"FAIRDRAW_LOG_OUTPUT"`
	Reducer   string `env:"FAIRDRAW_REDUCER"`
	CacheMode string `env:"FAIRDRAW_CACHE_MODE"`
	Pool      int    `env:"FAIRDRAW_POOL"`
}

// ApplyEnv overlays FAIRDRAW_* environment variables onto c.
// Unset variables leave the loaded values untouched.
func (c *Config) ApplyEnv() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		c.Logging.Format = o.LogFormat
	}
	if o.LogOutput != "" {
		c.Logging.Output = o.LogOutput
	}
	if o.Reducer != "" {
		c.Draw.Reducer = o.Reducer
	}
	if o.CacheMode != "" {
		c.Cache.Mode = cache.Mode(o.CacheMode)
	}
	if o.Pool > 0 {
		c.Draw.Pool = o.Pool
	}

	return nil
}
