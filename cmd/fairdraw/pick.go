package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/omarluq/fairdraw/internal/di"
	"github.com/omarluq/fairdraw/internal/draw"
)

var errNoPool = errors.New("no pool size: pass --pool or set draw.pool in the config file")

type pickOptions struct {
	entropy     string
	entropyFile string
	pool        int
	jsonOut     bool
	explain     bool
}

var pickOpts pickOptions

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Select a winner from a pool",
	Long: heredoc.Doc(`
		Select the 1-based winner for a pool of candidates from an entropy string.
		The same pool and entropy always produce the same winner.

		--entropy-file draws once per line of the file, printing one result per
		line. Pass "-" to read lines from stdin. Repeated lines are served from
		the draw cache.
	`),
	Example: heredoc.Doc(`
		fairdraw pick --pool 22 --entropy "35751.07/8.19.32.41.42.9.12/15455.36/17.33.38.43.49.80/21"
		fairdraw pick --pool 3489 --entropy-file entropy.txt --explain
		echo -n "seed" | fairdraw pick --pool 10 --entropy-file - --json
	`),
	RunE: runPick,
}

func init() {
	pickCmd.Flags().IntVarP(&pickOpts.pool, "pool", "n", 0, "number of candidates (default: draw.pool from config)")
	pickCmd.Flags().StringVarP(&pickOpts.entropy, "entropy", "e", "", "entropy string")
	pickCmd.Flags().StringVarP(&pickOpts.entropyFile, "entropy-file", "f", "", "draw once per line of a file, or - for stdin")
	pickCmd.Flags().BoolVar(&pickOpts.jsonOut, "json", false, "print the result as JSON")
	pickCmd.Flags().BoolVar(&pickOpts.explain, "explain", false, "print the digest and remainder behind the winner")
	pickCmd.MarkFlagsMutuallyExclusive("entropy", "entropy-file")
	pickCmd.MarkFlagsOneRequired("entropy", "entropy-file")
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, _ []string) (err error) {
	container := newContainer()
	defer shutdown(container, &err)

	cfgSvc, err := di.Invoke[*di.ConfigService](container)
	if err != nil {
		return err
	}
	selSvc, err := di.Invoke[*di.SelectorService](container)
	if err != nil {
		return err
	}

	pool, err := resolvePool(cmd.Flags().Changed("pool"), pickOpts.pool, cfgSvc.Config.Draw.GetPoolOption())
	if err != nil {
		return err
	}

	entropies := []string{pickOpts.entropy}
	if pickOpts.entropyFile != "" {
		entropies, err = readEntropies(cmd.InOrStdin(), pickOpts.entropyFile)
		if err != nil {
			return err
		}
	}

	for _, entropy := range entropies {
		if err := writePick(cmd.Context(), cmd.OutOrStdout(), selSvc, pool, entropy, pickOpts); err != nil {
			return err
		}
	}
	return nil
}

// resolvePool prefers an explicit --pool over the configured default.
func resolvePool(flagSet bool, flagPool int, configured mo.Option[int]) (int, error) {
	if flagSet {
		return flagPool, nil
	}
	pool, ok := configured.Get()
	if !ok {
		return 0, errNoPool
	}
	return pool, nil
}

// readEntropies reads one entropy string per line from path, or from stdin
// when path is "-". CRLF endings are accepted and a final newline does not
// produce an extra empty entry.
func readEntropies(stdin io.Reader, path string) ([]string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(filepath.Clean(path))
	}
	if err != nil {
		return nil, fmt.Errorf("read entropy: %w", err)
	}

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines, nil
}

func writePick(ctx context.Context, w io.Writer, selSvc *di.SelectorService, pool int, entropy string, opts pickOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.explain {
		trace, err := selSvc.Selector.Explain(pool, entropy)
		if err != nil {
			return err
		}
		if opts.jsonOut {
			return writeJSON(w, traceJSON(trace))
		}
		writeTrace(w, trace)
		return nil
	}

	winner, err := selSvc.Cached.Select(ctx, pool, entropy)
	if err != nil {
		return err
	}

	if opts.jsonOut {
		out, _ := sjson.Set("", "pool", pool)
		out, _ = sjson.Set(out, "winner", winner)
		out, _ = sjson.Set(out, "reducer", selSvc.Selector.Name())
		return writeJSON(w, out)
	}

	_, err = fmt.Fprintln(w, winner)
	return err
}

func traceJSON(t draw.Trace) string {
	out, _ := sjson.Set("", "pool", t.PoolSize)
	out, _ = sjson.Set(out, "winner", t.Winner)
	out, _ = sjson.Set(out, "reducer", t.Reducer)
	out, _ = sjson.Set(out, "entropy", t.Entropy)
	out, _ = sjson.Set(out, "digest", t.Digest)
	// Decimal exceeds float64 precision, keep it a string.
	out, _ = sjson.Set(out, "decimal", t.Decimal)
	out, _ = sjson.Set(out, "remainder", t.Remainder)
	return out
}

func writeTrace(w io.Writer, t draw.Trace) {
	fmt.Fprintf(w, "entropy:   %q\n", t.Entropy)
	fmt.Fprintf(w, "sha512:    %s\n", t.Digest)
	fmt.Fprintf(w, "integer:   %s\n", t.Decimal)
	fmt.Fprintf(w, "reducer:   %s\n", t.Reducer)
	fmt.Fprintf(w, "remainder: %d (mod %d)\n", t.Remainder, t.PoolSize)
	fmt.Fprintf(w, "winner:    %d\n", t.Winner)
}

func writeJSON(w io.Writer, s string) error {
	_, err := fmt.Fprintln(w, s)
	return err
}
