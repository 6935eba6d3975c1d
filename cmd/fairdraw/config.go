package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/omarluq/fairdraw/internal/config"
	"github.com/omarluq/fairdraw/internal/di"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management commands",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate the configuration file after applying FAIRDRAW_* environment
overrides. Checks syntax, reducer names, audit bounds, vectors and logging.`,
	RunE: runConfigValidate,
}

var configShowFormat string

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE:  runConfigShow,
}

func init() {
	configShowCmd.Flags().StringVar(&configShowFormat, "format", "yaml", "output format: yaml or toml")
	configCmd.AddCommand(configValidateCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigValidate(cmd *cobra.Command, _ []string) (err error) {
	container := newContainer()
	defer shutdown(container, &err)

	cfgSvc, err := di.Invoke[*di.ConfigService](container)
	if err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "✗ Config validation failed: %s\n", err)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid\n", describePath(cfgSvc.Path))
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) (err error) {
	container := newContainer()
	defer shutdown(container, &err)

	cfgSvc, err := di.Invoke[*di.ConfigService](container)
	if err != nil {
		return err
	}

	return showConfig(cmd.OutOrStdout(), cfgSvc.Config, config.Format(configShowFormat))
}

func showConfig(w io.Writer, cfg *config.Config, format config.Format) error {
	data, err := config.Marshal(cfg, format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func describePath(path string) string {
	if path == "" {
		return "built-in default config"
	}
	return path
}
