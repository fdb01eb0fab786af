package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cleared-dev/tally/internal/accounts"
	"github.com/cleared-dev/tally/internal/journal"
	"github.com/cleared-dev/tally/internal/model"
)

func newImportCommand(g *globals) *cobra.Command {
	var chartPath string
	var journalPath string
	var taxRatesPath string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Validate and load a chart of accounts and journal into the ledger",
		Long: "Upserts every account in the chart of accounts, then appends the journal's entries.\n" +
			"The journal is validated first; nothing is written if any entry fails validation.\n" +
			"Tax rates, when given, are upserted by name.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.load()
			if err != nil {
				return err
			}
			defer func() { _ = e.log.Sync() }()

			if chartPath == "" {
				chartPath = filepath.Join(e.dir, accounts.ChartPath)
			}
			chart, err := accounts.LoadFile(chartPath)
			if err != nil {
				return err
			}

			var entries []model.JournalEntry
			if journalPath != "" {
				entries, err = journal.Load(journalPath, chart)
				if err != nil {
					return err
				}
			}

			var rates []model.TaxRate
			if taxRatesPath != "" {
				rates, err = accounts.LoadTaxRates(taxRatesPath)
				if err != nil {
					return err
				}
			}

			s, err := e.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.Import(cmd.Context(), chart.All(), entries)
			if err != nil {
				e.log.Error("import stopped",
					zap.Int("accounts_written", res.Accounts),
					zap.Int("entries_written", res.Entries),
					zap.Error(err))
				return err
			}
			for _, rate := range rates {
				if _, err := s.UpsertTaxRate(cmd.Context(), rate); err != nil {
					return err
				}
			}
			e.log.Info("import complete",
				zap.String("accounts", chartPath),
				zap.String("journal", journalPath),
				zap.Int("entries", res.Entries),
				zap.Int("tax_rates", len(rates)))
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d accounts and %d journal entries\n", res.Accounts, res.Entries)
			if len(rates) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tax rates\n", len(rates))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&chartPath, "accounts", "", "chart of accounts CSV (default accounts/chart-of-accounts.csv next to the config)")
	cmd.Flags().StringVar(&journalPath, "journal", "", "journal CSV")
	cmd.Flags().StringVar(&taxRatesPath, "tax-rates", "", "tax rates CSV (name,rate)")

	return cmd
}
