package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cleared-dev/tally/internal/server"
)

func newServeCommand(g *globals) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve reports over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.load()
			if err != nil {
				return err
			}
			defer func() { _ = e.log.Sync() }()

			if addr != "" {
				e.cfg.Server.Addr = addr
			}

			s, err := e.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			srv := server.New(s, e.log, e.reportOptions()...)
			if err := srv.ListenAndServe(cmd.Context(), e.cfg.Server.Addr); err != nil {
				e.log.Error("server stopped", zap.Error(err))
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")

	return cmd
}
