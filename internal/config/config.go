// Package config provides configuration loading and parsing for fairdraw.
package config

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/mo"

	"github.com/omarluq/fairdraw/internal/cache"
)

// Log level constants.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Audit defaults, matching the reference fairness run: one million draws
// over ten candidates with 5% tolerance.
const (
	DefaultAuditPool      = 10
	DefaultAuditDraws     = 1_000_000
	DefaultAuditTolerance = 0.05
	DefaultVerifyRepeat   = 100
)

// Config represents the complete fairdraw configuration.
type Config struct {
	Draw    DrawConfig     `yaml:"draw" toml:"draw"`
	Audit   AuditConfig    `yaml:"audit" toml:"audit"`
	Logging LoggingConfig  `yaml:"logging" toml:"logging"`
	Cache   cache.Config   `yaml:"cache" toml:"cache"`
	Vectors []VectorConfig `yaml:"vectors" toml:"vectors"`
}

// DrawConfig defines how winners are computed.
type DrawConfig struct {
	// Reducer selects the reduction strategy.
	// Options: bigint (default), fold
	Reducer string `yaml:"reducer" toml:"reducer"`

	// Pool is the pool size used by `pick` when --pool is not given.
	Pool int `yaml:"pool" toml:"pool"`
}

// GetEffectiveReducer returns the reducer with default fallback.
func (d *DrawConfig) GetEffectiveReducer() string {
	if d.Reducer == "" {
		return "bigint"
	}
	return d.Reducer
}

// GetPoolOption returns the configured default pool, or None if unset.
func (d *DrawConfig) GetPoolOption() mo.Option[int] {
	if d.Pool <= 0 {
		return mo.None[int]()
	}
	return mo.Some(d.Pool)
}

// AuditConfig defines the defaults of the fairness audit and vector verification.
type AuditConfig struct {
	Pool      int     `yaml:"pool" toml:"pool"`
	Draws     int     `yaml:"draws" toml:"draws"`
	Tolerance float64 `yaml:"tolerance" toml:"tolerance"`
	Repeat    int     `yaml:"repeat" toml:"repeat"`
}

// GetEffectivePool returns the audit pool size, DefaultAuditPool if unset.
func (a *AuditConfig) GetEffectivePool() int {
	if a.Pool <= 0 {
		return DefaultAuditPool
	}
	return a.Pool
}

// GetEffectiveDraws returns the number of audit draws, DefaultAuditDraws if unset.
func (a *AuditConfig) GetEffectiveDraws() int {
	if a.Draws <= 0 {
		return DefaultAuditDraws
	}
	return a.Draws
}

// GetEffectiveTolerance returns the allowed relative deviation per index.
func (a *AuditConfig) GetEffectiveTolerance() float64 {
	if a.Tolerance <= 0 {
		return DefaultAuditTolerance
	}
	return a.Tolerance
}

// GetEffectiveRepeat returns how many times each vector is re-drawn.
func (a *AuditConfig) GetEffectiveRepeat() int {
	if a.Repeat <= 0 {
		return DefaultVerifyRepeat
	}
	return a.Repeat
}

// VectorConfig is a known-answer draw listed in the config file.
type VectorConfig struct {
	Name    string `yaml:"name" toml:"name"`
	Entropy string `yaml:"entropy" toml:"entropy"`
	Pool    int    `yaml:"pool" toml:"pool"`
	Want    int    `yaml:"want" toml:"want"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`   // debug, info, warn, error
	Format string `yaml:"format" toml:"format"` // json, console
	Output string `yaml:"output" toml:"output"` // stdout, stderr, or file path
	Pretty bool   `yaml:"pretty" toml:"pretty"` // enable colored console output
}

// ParseLevel converts a string log level to zerolog.Level.
// Returns zerolog.InfoLevel if the level string is invalid.
func (l *LoggingConfig) ParseLevel() zerolog.Level {
	switch strings.ToLower(l.Level) {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Default returns the configuration used when no config file is found.
// Logs go to stderr so command output on stdout stays machine-readable.
func Default() *Config {
	return &Config{
		Draw: DrawConfig{Reducer: "bigint"},
		Audit: AuditConfig{
			Pool:      DefaultAuditPool,
			Draws:     DefaultAuditDraws,
			Tolerance: DefaultAuditTolerance,
			Repeat:    DefaultVerifyRepeat,
		},
		Logging: LoggingConfig{
			Level:  LevelWarn,
			Format: "console",
			Output: "stderr",
		},
		Cache: cache.Config{
			Mode:      cache.ModeSingle,
			Ristretto: cache.DefaultRistrettoConfig(),
		},
	}
}
