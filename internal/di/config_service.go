package di

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/omarluq/fairdraw/internal/config"
)

// ConfigService holds the loaded configuration.
type ConfigService struct {
	Config *config.Config
	Path   string
}

// NewConfig loads the config file, applies FAIRDRAW_* environment overrides
// and validates the result. Without a path the built-in defaults are used.
func NewConfig(i do.Injector) (*ConfigService, error) {
	path := do.MustInvokeNamed[string](i, ConfigPathKey)

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &ConfigService{Config: cfg, Path: path}, nil
}
