package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/omarluq/fairdraw/internal/audit"
	"github.com/omarluq/fairdraw/internal/config"
	"github.com/omarluq/fairdraw/internal/di"
)

type auditOptions struct {
	seed         string
	pools        []int
	pool         int
	draws        int
	perCandidate int
	tolerance    float64
	jsonOut      bool
}

var auditOpts auditOptions

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Measure how evenly wins spread across a pool",
	Long: heredoc.Doc(`
		Draw many winners with fresh entropy and compare each candidate's wins
		with its expected share. Fails when any candidate deviates by more than
		the tolerance.

		Entropy is a random UUID per draw unless --seed is given, in which case
		draws use "<seed>/0", "<seed>/1", ... and the audit can be replayed.

		--pools runs one audit per pool size with --per-candidate expected wins
		for every candidate.
	`),
	Example: heredoc.Doc(`
		fairdraw audit --pool 10 --draws 1000000 --tolerance 0.05
		fairdraw audit --pools 1,2,3,5,9,20,77,150 --per-candidate 1000 --tolerance 0.2
	`),
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().IntVarP(&auditOpts.pool, "pool", "n", 0, "number of candidates (default: audit.pool from config)")
	auditCmd.Flags().IntVarP(&auditOpts.draws, "draws", "d", 0, "number of draws (default: audit.draws from config)")
	auditCmd.Flags().Float64VarP(&auditOpts.tolerance, "tolerance", "t", -1,
		"maximum relative deviation per candidate (default: audit.tolerance from config)")
	auditCmd.Flags().IntSliceVar(&auditOpts.pools, "pools", nil, "audit each of these pool sizes")
	auditCmd.Flags().IntVar(&auditOpts.perCandidate, "per-candidate", 1000, "expected wins per candidate with --pools")
	auditCmd.Flags().StringVar(&auditOpts.seed, "seed", "", "derive entropy from this seed instead of random UUIDs")
	auditCmd.Flags().BoolVar(&auditOpts.jsonOut, "json", false, "print reports as JSON")
	auditCmd.MarkFlagsMutuallyExclusive("pool", "pools")
	auditCmd.MarkFlagsMutuallyExclusive("draws", "pools")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, _ []string) (err error) {
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

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return doAudit(ctx, cmd.OutOrStdout(), selSvc.Selector, cfgSvc.Config.Audit, auditOpts)
}

// doAudit fills unset options from cfg, runs the audit and prints the reports.
// Reports are printed even when the distribution check fails.
func doAudit(ctx context.Context, w io.Writer, p audit.Picker, cfg config.AuditConfig, opts auditOptions) error {
	if opts.pool < 1 {
		opts.pool = cfg.GetEffectivePool()
	}
	if opts.draws < 1 {
		opts.draws = cfg.GetEffectiveDraws()
	}
	if opts.tolerance < 0 {
		opts.tolerance = cfg.GetEffectiveTolerance()
	}

	var source func() string
	if opts.seed != "" {
		source = audit.SequenceSource(opts.seed)
	}

	var (
		reports []audit.Report
		err     error
	)
	if len(opts.pools) > 0 {
		reports, err = audit.Sweep(ctx, p, opts.pools, opts.perCandidate, opts.tolerance, source)
	} else {
		var report audit.Report
		report, err = audit.Run(ctx, p, audit.Options{
			PoolSize:  opts.pool,
			Draws:     opts.draws,
			Tolerance: opts.tolerance,
			Source:    source,
		})
		if err == nil || errors.Is(err, audit.ErrNotUniform) {
			reports = []audit.Report{report}
		}
	}

	if len(reports) > 0 {
		if werr := writeReports(w, reports, opts.jsonOut); werr != nil {
			return werr
		}
	}
	return err
}

func writeReports(w io.Writer, reports []audit.Report, jsonOut bool) error {
	if jsonOut {
		data, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return fmt.Errorf("encode reports: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	for _, r := range reports {
		mark := lo.Ternary(r.Pass, "✓", "✗")
		fmt.Fprintf(w, "%s pool=%d draws=%d reducer=%s\n", mark, r.PoolSize, r.Draws, r.Reducer)
		fmt.Fprintf(w, "  expected %.1f per candidate, min %d, max %d\n", r.Expected, r.Min, r.Max)
		fmt.Fprintf(w, "  max deviation %.4f (tolerance %.4f), chi-square %.2f on %d df\n",
			r.MaxDeviation, r.Tolerance, r.ChiSquare, r.PoolSize-1)
		if r.PoolSize <= 20 {
			counts := lo.Map(r.Counts, func(n int, i int) string { return fmt.Sprintf("%d:%d", i+1, n) })
			fmt.Fprintf(w, "  wins %s\n", strings.Join(counts, " "))
		}
	}
	return nil
}
