package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/omarluq/fairdraw/internal/config"
)

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default config file",
	Long:  `Generate a default fairdraw configuration file at ~/.config/fairdraw/config.yaml`,
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().StringP("output", "o", "", "output path (default: ~/.config/fairdraw/config.yaml)")
	configInitCmd.Flags().Bool("force", false, "overwrite existing config file")
}

var configHeader = heredoc.Doc(`
	# fairdraw configuration
	#
	# Environment overrides: FAIRDRAW_LOG_LEVEL, FAIRDRAW_LOG_FORMAT,
	# FAIRDRAW_LOG_OUTPUT, FAIRDRAW_REDUCER, FAIRDRAW_CACHE_MODE, FAIRDRAW_POOL.
	# ${VAR} references are expanded when the file is loaded.

`)

func runConfigInit(cmd *cobra.Command, _ []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("failed to get force flag: %w", err)
	}

	if output == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		output = filepath.Join(home, ".config", "fairdraw", "config.yaml")
	}

	return writeDefaultConfig(cmd.OutOrStdout(), output, force)
}

// writeDefaultConfig writes config.Default() to path in the format implied by
// its extension.
func writeDefaultConfig(w io.Writer, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	body, err := config.Marshal(config.Default(), config.FormatFromPath(path))
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, append([]byte(configHeader), body...), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(w, "✓ Config file created at %s\n", path)
	fmt.Fprintln(w, "\nNext steps:")
	fmt.Fprintln(w, "  1. Set draw.pool to your pool size")
	fmt.Fprintln(w, "  2. Validate with: fairdraw config validate --config "+path)
	fmt.Fprintln(w, "  3. Check the reducers: fairdraw verify")

	return nil
}
