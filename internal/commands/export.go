package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cleared-dev/tally/internal/journal"
	"github.com/cleared-dev/tally/internal/ledger"
)

func newExportCommand(g *globals) *cobra.Command {
	var from, to, outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the ledger's journal entries as journal CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ledger.ParsePeriod(from, to)
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

			entries, err := s.JournalEntries(cmd.Context(), p)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("creating %s: %w", outPath, err)
				}
				defer f.Close()
				w = f
			}
			if err := journal.WriteLines(w, journal.Lines(entries)); err != nil {
				return err
			}
			e.log.Info("exported journal", zap.Int("entries", len(entries)), zap.Stringer("period", p))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start date, YYYY-MM-DD (requires --to)")
	cmd.Flags().StringVar(&to, "to", "", "end date, YYYY-MM-DD (requires --from)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	return cmd
}
