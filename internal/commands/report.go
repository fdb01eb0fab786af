package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/report"
)

// reportFlags are shared by every report subcommand.
type reportFlags struct {
	from   string
	to     string
	format string
}

func (f *reportFlags) period() (ledger.Period, error) {
	return ledger.ParsePeriod(f.from, f.to)
}

func newReportCommand(g *globals) *cobra.Command {
	f := &reportFlags{}
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Build financial reports",
	}
	reportCmd.PersistentFlags().StringVar(&f.from, "from", "", "start date, YYYY-MM-DD (requires --to)")
	reportCmd.PersistentFlags().StringVar(&f.to, "to", "", "end date, YYYY-MM-DD (requires --from)")
	reportCmd.PersistentFlags().StringVar(&f.format, "format", "text", "output format: text or json")

	reportCmd.AddCommand(&cobra.Command{
		Use:   "trial-balance",
		Short: "Debit and credit totals per account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, g, f, func(b *report.Builder, p ledger.Period, w io.Writer) (any, func() error, error) {
				tb, err := b.TrialBalance(cmd.Context(), p)
				return tb, func() error { return report.WriteTrialBalance(w, tb, p) }, err
			})
		},
	})

	reportCmd.AddCommand(&cobra.Command{
		Use:   "account-balance <account>",
		Short: "Running balance of one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, g, f, func(b *report.Builder, p ledger.Period, w io.Writer) (any, func() error, error) {
				ab, err := b.AccountBalance(cmd.Context(), args[0], p)
				var v any = ab
				if ab == nil {
					v = struct{}{}
				}
				return v, func() error { return report.WriteAccountBalance(w, ab, p) }, err
			})
		},
	})

	for _, kind := range report.Kinds {
		kind := kind
		reportCmd.AddCommand(&cobra.Command{
			Use:   kind.Slug(),
			Short: string(kind),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runReport(cmd, g, f, func(b *report.Builder, p ledger.Period, w io.Writer) (any, func() error, error) {
					v, err := b.Statement(cmd.Context(), kind, p)
					return v, func() error { return report.WriteStatement(w, v, p) }, err
				})
			},
		})
	}

	return reportCmd
}

// buildFunc builds one report and returns it for JSON output along with a
// function that writes its text form.
type buildFunc func(b *report.Builder, p ledger.Period, w io.Writer) (any, func() error, error)

func runReport(cmd *cobra.Command, g *globals, f *reportFlags, build buildFunc) error {
	if f.format != "text" && f.format != "json" {
		return fmt.Errorf("unknown format %q (want text or json)", f.format)
	}
	p, err := f.period()
	if err != nil {
		return err
	}

	e, err := g.load()
	if err != nil {
		return err
	}
	defer func() { _ = e.log.Sync() }()

	s, err := e.openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	w := cmd.OutOrStdout()
	v, writeText, err := build(report.NewBuilder(s, e.reportOptions()...), p, w)
	if err != nil {
		return err
	}
	if f.format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return writeText()
}
