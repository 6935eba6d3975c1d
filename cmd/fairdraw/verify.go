package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/omarluq/fairdraw/internal/config"
	"github.com/omarluq/fairdraw/internal/di"
	"github.com/omarluq/fairdraw/internal/draw"
	"github.com/omarluq/fairdraw/internal/vectors"
)

var (
	verifyVectorsFile string
	verifyRepeat      int
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check known-answer vectors with every reducer",
	Long: heredoc.Doc(`
		Draw every known-answer vector with each reducer, repeating each draw to
		catch nondeterminism. The documented vectors always run; vectors from the
		config file and --vectors are added to them.

		--vectors takes a JSON array of {"name", "pool", "entropy", "want"}.
	`),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyVectorsFile, "vectors", "", "JSON file with extra vectors")
	verifyCmd.Flags().IntVar(&verifyRepeat, "repeat", 0, "draws per vector (default: audit.repeat from config)")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, _ []string) (err error) {
	container := newContainer()
	defer shutdown(container, &err)

	cfgSvc, err := di.Invoke[*di.ConfigService](container)
	if err != nil {
		return err
	}
	logSvc, err := di.Invoke[*di.LoggerService](container)
	if err != nil {
		return err
	}

	vs, err := collectVectors(cfgSvc.Config, verifyVectorsFile)
	if err != nil {
		return err
	}

	repeat := verifyRepeat
	if repeat < 1 {
		repeat = cfgSvc.Config.Audit.GetEffectiveRepeat()
	}

	return runVectors(cmd.OutOrStdout(), *logSvc.Logger, vs, repeat)
}

// collectVectors merges the documented, configured and file vectors.
// Earlier vectors win on name clashes.
func collectVectors(cfg *config.Config, path string) ([]vectors.Vector, error) {
	vs := vectors.Documented()
	vs = append(vs, lo.Map(cfg.Vectors, func(v config.VectorConfig, _ int) vectors.Vector {
		return vectors.Vector{Name: v.Name, Entropy: v.Entropy, PoolSize: v.Pool, Want: v.Want}
	})...)

	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("read vectors: %w", err)
		}
		fromFile, err := vectors.ParseJSON(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		vs = append(vs, fromFile...)
	}

	return vectors.Dedupe(vs), nil
}

// runVectors verifies vs with every reducer and prints one line per result.
func runVectors(w io.Writer, logger zerolog.Logger, vs []vectors.Vector, repeat int) error {
	var failed []error

	for _, name := range draw.Reducers() {
		reducer, err := draw.NewReducer(name)
		if err != nil {
			return err
		}
		sel := draw.New(draw.WithReducer(reducer), draw.WithLogger(logger))

		results, err := vectors.Verify(sel, vs, repeat)
		for _, r := range results {
			mark := "✓"
			if !r.OK() {
				mark = "✗"
			}
			fmt.Fprintf(w, "%s %-20s %-6s pool=%-8d want=%-8d got=%d\n",
				mark, r.Name, r.Reducer, r.PoolSize, r.Want, r.Got)
		}
		if err != nil {
			failed = append(failed, err)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("verification failed: %w", errors.Join(failed...))
	}

	fmt.Fprintf(w, "\n%d vectors x %d reducers x %d repeats passed\n", len(vs), len(draw.Reducers()), repeat)
	return nil
}
