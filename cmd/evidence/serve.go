package main

import (
	"os/signal"
	"syscall"

	"github.com/alimgiray/evidence/internal/server"
	"github.com/alimgiray/evidence/pkg/config"
	"github.com/alimgiray/evidence/pkg/logger"
	"github.com/spf13/cobra"
)

var serveFlags struct {
	Port string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve evidence generation over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := *config.AppConfig
		if serveFlags.Port != "" {
			cfg.Server.Port = serveFlags.Port
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return server.Run(ctx, &cfg, logger.GetLogger())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.Port, "port", "", "port to listen on (default $PORT or 8080)")
}
