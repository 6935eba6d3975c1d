package config

import (
	"strings"

	"github.com/omarluq/fairdraw/internal/draw"
)

// Valid logging levels.
var validLogLevels = map[string]bool{
	"":      true, // Empty defaults to info
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Valid logging formats.
var validLogFormats = map[string]bool{
	"":        true, // Empty defaults to auto-detect
	"json":    true,
	"console": true,
	"text":    true, // Alias for console
	"pretty":  true,
}

// Validate checks the configuration for errors.
// Returns a ValidationError containing all errors found, or nil if valid.
func (c *Config) Validate() error {
	errs := &ValidationError{}

	validateDraw(c, errs)
	validateAudit(c, errs)
	validateVectors(c, errs)
	validateLogging(c, errs)

	if err := c.Cache.Validate(); err != nil {
		errs.Add(strings.TrimPrefix(err.Error(), "cache: "))
	}

	return errs.ToError()
}

func validateDraw(c *Config, errs *ValidationError) {
	if _, err := draw.NewReducer(c.Draw.Reducer); err != nil {
		errs.Addf("draw.reducer is invalid (got %q, valid: %s)",
			c.Draw.Reducer, strings.Join(draw.Reducers(), ", "))
	}

	if c.Draw.Pool < 0 {
		errs.Addf("draw.pool must be >= 0 (got %d)", c.Draw.Pool)
	}
}

func validateAudit(c *Config, errs *ValidationError) {
	if c.Audit.Pool < 0 {
		errs.Addf("audit.pool must be >= 0 (got %d)", c.Audit.Pool)
	}
	if c.Audit.Draws < 0 {
		errs.Addf("audit.draws must be >= 0 (got %d)", c.Audit.Draws)
	}
	if c.Audit.Tolerance < 0 || c.Audit.Tolerance >= 1 {
		errs.Addf("audit.tolerance must be in [0, 1) (got %g)", c.Audit.Tolerance)
	}
	if c.Audit.Repeat < 0 {
		errs.Addf("audit.repeat must be >= 0 (got %d)", c.Audit.Repeat)
	}
}

func validateVectors(c *Config, errs *ValidationError) {
	seen := make(map[string]bool, len(c.Vectors))

	for i := range c.Vectors {
		v := &c.Vectors[i]
		if v.Name != "" {
			if seen[v.Name] {
				errs.Addf("duplicate vector name: %s", v.Name)
			}
			seen[v.Name] = true
		}
		if v.Pool < 1 {
			errs.Addf("vectors[%d].pool must be >= 1 (got %d)", i, v.Pool)
		} else if v.Want < 1 || v.Want > v.Pool {
			errs.Addf("vectors[%d].want must be in [1, pool] (got %d)", i, v.Want)
		}
	}
}

func validateLogging(c *Config, errs *ValidationError) {
	if !validLogLevels[c.Logging.Level] {
		errs.Addf("logging.level is invalid (got %q, valid: debug, info, warn, error)",
			c.Logging.Level)
	}

	if !validLogFormats[c.Logging.Format] {
		errs.Addf("logging.format is invalid (got %q, valid: json, console, text, pretty)",
			c.Logging.Format)
	}
}
