// Package di provides dependency injection using samber/do v2.
// It wires configuration, logging, the draw cache and the selector.
package di

import (
	"context"
	"fmt"

	"github.com/samber/do/v2"
)

// Named keys for plain values in the container.
const (
	// ConfigPathKey is the config file path. Empty means built-in defaults.
	ConfigPathKey = "config.path"
	// DebugKey forces debug logging regardless of the configured level.
	DebugKey = "logging.debug"
)

// Container wraps the do.Injector with fairdraw services.
type Container struct {
	injector *do.RootScope
}

// NewContainer creates the container and registers every service provider.
// Services are built lazily on first Invoke.
func NewContainer(configPath string, debug bool) *Container {
	injector := do.New()

	do.ProvideNamedValue(injector, ConfigPathKey, configPath)
	do.ProvideNamedValue(injector, DebugKey, debug)

	RegisterSingletons(injector)

	return &Container{injector: injector}
}

// Injector returns the underlying do.Injector for service resolution.
func (c *Container) Injector() *do.RootScope {
	return c.injector
}

// Invoke resolves a service from the container.
// Returns an error if the service is not registered or fails to initialize.
func Invoke[T any](c *Container) (T, error) {
	return do.Invoke[T](c.injector)
}

// MustInvoke resolves a service from the container or panics.
func MustInvoke[T any](c *Container) T {
	return do.MustInvoke[T](c.injector)
}

// InvokeNamed resolves a named value from the container.
func InvokeNamed[T any](c *Container, name string) (T, error) {
	return do.InvokeNamed[T](c.injector, name)
}

// Shutdown shuts down services in reverse order of initialization.
// Services implementing do.Shutdowner have their Shutdown method called.
func (c *Container) Shutdown() error {
	report := c.injector.Shutdown()
	if report != nil && !report.Succeed {
		return fmt.Errorf("shutdown failed: %s", report.Error())
	}
	return nil
}

// ShutdownWithContext shuts down with context for timeout control.
func (c *Container) ShutdownWithContext(ctx context.Context) error {
	done := make(chan *do.ShutdownReport, 1)
	go func() {
		done <- c.injector.ShutdownWithContext(ctx)
	}()

	select {
	case report := <-done:
		if report != nil && !report.Succeed {
			return fmt.Errorf("shutdown failed: %s", report.Error())
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}
