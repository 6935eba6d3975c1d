package di

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/samber/do/v2"

	"github.com/omarluq/fairdraw/internal/audit"
	"github.com/omarluq/fairdraw/internal/cache"
	"github.com/omarluq/fairdraw/internal/logging"
)

// LoggerService wraps the zerolog logger for DI.
type LoggerService struct {
	Logger *zerolog.Logger
	closer io.Closer
}

// NewLogger creates the logger from configuration and hands it to the
// packages that log through a package-level logger.
func NewLogger(i do.Injector) (*LoggerService, error) {
	cfgSvc := do.MustInvoke[*ConfigService](i)
	debug := do.MustInvokeNamed[bool](i, DebugKey)

	logCfg := cfgSvc.Config.Logging
	if debug {
		logCfg.Level = "debug"
	}

	logger, closer, err := logging.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	cache.SetLogger(&logger)
	audit.SetLogger(&logger)

	return &LoggerService{Logger: &logger, closer: closer}, nil
}

// Shutdown implements do.Shutdowner and releases a file-backed log output.
func (l *LoggerService) Shutdown() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}
