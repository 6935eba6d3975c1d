// Package main is the entry point for fairdraw.
package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/fang/v2"
	"github.com/spf13/cobra"

	"github.com/omarluq/fairdraw/internal/di"
	"github.com/omarluq/fairdraw/internal/draw"
	"github.com/omarluq/fairdraw/internal/version"
)

// Exit codes.
const (
	exitError     = 1
	exitInvariant = 3
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "fairdraw",
	Short: "Deterministic, verifiable winner selection",
	Long: heredoc.Doc(`
		fairdraw picks a winner from a pool of candidates using a public entropy
		string. The entropy is hashed with SHA-512, read as a big-endian integer
		and reduced modulo the pool size. Anyone holding the same entropy and
		pool size can recompute the winner.
	`),
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file path, yaml or toml (default: ./fairdraw.yaml, ./fairdraw.toml or ~/.config/fairdraw/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func main() {
	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode maps an invariant violation to its own status so scripts can tell
// a broken build from bad input.
func exitCode(err error) int {
	if errors.Is(err, draw.ErrInvariantViolated) {
		return exitInvariant
	}
	return exitError
}

// newContainer builds the DI container for the resolved config path.
func newContainer() *di.Container {
	path := cfgFile
	if path == "" {
		path = findConfigFile()
	}
	return di.NewContainer(path, debug)
}

// findConfigFile searches the default locations. It returns "" when no file
// exists so the built-in defaults apply.
func findConfigFile() string {
	candidates := []string{"fairdraw.yaml", "fairdraw.toml"}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dir := filepath.Join(home, ".config", "fairdraw")
		candidates = append(candidates,
			filepath.Join(dir, "config.yaml"),
			filepath.Join(dir, "config.toml"),
		)
	}

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// shutdown releases container services, keeping the first error.
func shutdown(c *di.Container, err *error) {
	if serr := c.Shutdown(); serr != nil && *err == nil {
		*err = serr
	}
}
