package main

import (
	"fmt"
	"os"

	"github.com/alimgiray/evidence/pkg/config"
	"github.com/alimgiray/evidence/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootFlags struct {
	Debug bool
}

var RootCmd = &cobra.Command{
	Use:   "evidence",
	Short: "generate evidence of authorship documents from GitHub activity",

	// Errors are printed by main.
	SilenceErrors: true,
	SilenceUsage:  true,

	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		level := config.AppConfig.Log.Level
		if rootFlags.Debug {
			level = "debug"
		}
		log := logger.Configure(level, logger.FormatText, os.Stderr)
		log.WithFields(logrus.Fields{
			"version":         config.Version,
			"env_file_loaded": config.AppConfig.EnvFileLoaded,
		}).Debug("loaded configuration")
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVar(
		&rootFlags.Debug, "debug", false,
		"enable verbose debug logging",
	)
	RootCmd.AddCommand(
		generateCmd,
		serveCmd,
		versionCmd,
	)
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
