package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cleared-dev/tally/internal/buildinfo"
	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/logging"
	"github.com/cleared-dev/tally/internal/report"
	"github.com/cleared-dev/tally/internal/store"
)

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	configPath string
	logLevel   string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	g := &globals{}
	rootCmd := &cobra.Command{
		Use:     "tally",
		Short:   "Double-entry ledger reports",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", config.FileName, "path to tally.yaml")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "override the configured log level")

	rootCmd.AddCommand(newInitCommand(g))
	rootCmd.AddCommand(newImportCommand(g))
	rootCmd.AddCommand(newReportCommand(g))
	rootCmd.AddCommand(newExportCommand(g))
	rootCmd.AddCommand(newServeCommand(g))

	return rootCmd
}

// env is the loaded configuration plus what commands build from it.
type env struct {
	cfg *config.Config
	dir string
	log *zap.Logger
}

// load reads the config file, applies .env and environment overrides from
// its directory, and builds the logger.
func (g *globals) load() (*env, error) {
	path, err := filepath.Abs(g.configPath)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w (run tally init first)", err)
	}
	dir := filepath.Dir(path)
	if err := cfg.ApplyEnv(filepath.Join(dir, ".env")); err != nil {
		return nil, err
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, dir: dir, log: log}, nil
}

func (e *env) openStore() (*store.Store, error) {
	path := e.cfg.StorePath(e.dir)
	s, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	e.log.Debug("opened store", zap.String("path", path))
	return s, nil
}

func (e *env) reportOptions() []report.Option {
	return []report.Option{
		report.WithLogger(e.log),
		report.WithNamedAccounts(report.NamedAccounts{
			CashDividends:    e.cfg.Accounts.CashDividends,
			RetainedEarnings: e.cfg.Accounts.RetainedEarnings,
		}),
	}
}
