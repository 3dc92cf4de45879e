package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/vibe-align/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the alignment editing API over HTTP",
		Long: `Serve a JSON API that lets remote editors create alignments, apply
edits and undo them. Each response carries the rows and the change
records of the request, so clients know which cells to repaint.`,
		Example: `  vibe-align serve --addr :8080
  curl -X POST localhost:8080/api/alignments/globins/extend-left -d '{"column": 1}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return withEnv(cmd, func(_ context.Context, e *env) error {
				return server.New(e.sessions, e.logger).ListenAndServe(ctx, viper.GetString("server.addr"))
			})
		},
	}
	cmd.Flags().String("addr", "", "listen address (default from config, localhost:8080)")
	viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	return cmd
}
