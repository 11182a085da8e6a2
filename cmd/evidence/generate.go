package main

import (
	"errors"
	"fmt"

	"github.com/alimgiray/evidence/internal/document"
	"github.com/alimgiray/evidence/internal/repositories"
	"github.com/alimgiray/evidence/internal/services"
	"github.com/alimgiray/evidence/pkg/config"
	"github.com/alimgiray/evidence/pkg/database"
	"github.com/alimgiray/evidence/pkg/logger"
	"github.com/spf13/cobra"
)

var errMissingToken = errors.New("cannot continue, personal access token not found (set environment variable GITHUB_PAS first)")

var generateFlags struct {
	Output   string
	Org      string
	Manifest string
	Strategy string
	Appendix string
	DB       string
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "crawl GitHub and write the evidence PDF",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.AppConfig
		if cfg.GitHub.Token == "" {
			return errMissingToken
		}
		log := logger.GetLogger()

		org := firstNonEmpty(generateFlags.Org, cfg.GitHub.TargetOrg)
		strategy := firstNonEmpty(generateFlags.Strategy, cfg.Evidence.Strategy)
		output := firstNonEmpty(generateFlags.Output, cfg.Evidence.OutputPath)
		manifest := firstNonEmpty(generateFlags.Manifest, cfg.Fonts.ManifestPath)

		var runs *services.RunService
		if dbPath := firstNonEmpty(generateFlags.DB, cfg.Database.Path); dbPath != "" {
			db, err := database.Open(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open run history: %w", err)
			}
			defer db.Close()
			runs = services.NewRunService(
				repositories.NewRunRepository(db),
				repositories.NewCrawledRepositoryRepository(db),
			)
		}

		aggregator, err := services.NewGitHubAggregator(cfg.GitHub, cfg.Evidence, org, strategy, log)
		if err != nil {
			return err
		}

		reports := services.NewReportService(
			services.NewFontManifestService(manifest),
			services.PDFRenderer,
			document.DefaultStyle(),
			services.NewAppendixService(),
			runs,
			log,
		)

		run, err := reports.Generate(cmd.Context(), aggregator, services.GenerateRequest{
			TargetOrg:    org,
			Strategy:     strategy,
			OutputPath:   output,
			AppendixPath: generateFlags.Appendix,
		})
		if err != nil {
			return err
		}

		log.WithField("run_id", run.ID).Debug("run finished")
		fmt.Fprintf(cmd.OutOrStdout(), "Evidence written to %s\n", output)
		if generateFlags.Appendix != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Appendix written to %s\n", generateFlags.Appendix)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateFlags.Output, "output", "o", "", "path of the PDF to write (default $OUTPUT_PATH or test.pdf)")
	generateCmd.Flags().StringVar(&generateFlags.Org, "org", "", "organization whose repositories are crawled (default $TARGET_ORG or Dekalabs)")
	generateCmd.Flags().StringVar(&generateFlags.Manifest, "manifest", "", "font manifest path (default $FONT_MANIFEST or fonts/manifest.json)")
	generateCmd.Flags().StringVar(&generateFlags.Strategy, "strategy", "", "record strategy: fixed or latest-commit")
	generateCmd.Flags().StringVar(&generateFlags.Appendix, "appendix", "", "also write an .xlsx appendix of the crawl to this path")
	generateCmd.Flags().StringVar(&generateFlags.DB, "db", "", "SQLite file to record the run in (default $DB_PATH, disabled when empty)")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
