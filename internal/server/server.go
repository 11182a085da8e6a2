package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alimgiray/evidence/internal/document"
	"github.com/alimgiray/evidence/internal/handlers"
	"github.com/alimgiray/evidence/internal/repositories"
	"github.com/alimgiray/evidence/internal/services"
	"github.com/alimgiray/evidence/pkg/config"
	"github.com/alimgiray/evidence/pkg/database"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// DefaultDatabasePath is used when DB_PATH is unset, since the server always
// keeps the run history.
const DefaultDatabasePath = "./evidence.db"

const shutdownTimeout = 10 * time.Second

// Run serves the HTTP API until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	gin.SetMode(cfg.Server.Mode)

	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath = DefaultDatabasePath
	}
	if err := database.Init(dbPath); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	router := NewRouter(cfg, log, services.NewRunService(
		repositories.NewRunRepository(database.DB),
		repositories.NewCrawledRepositoryRepository(database.DB),
	))

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	log.Info("server stopped")
	return nil
}

// NewRouter wires the report pipeline behind the HTTP routes.
func NewRouter(cfg *config.Config, log *logrus.Logger, runs *services.RunService) *gin.Engine {
	reports := services.NewReportService(
		services.NewFontManifestService(cfg.Fonts.ManifestPath),
		services.PDFRenderer,
		document.DefaultStyle(),
		services.NewAppendixService(),
		runs,
		log,
	)

	newAggregator := func(targetOrg, strategy string) (services.Aggregator, error) {
		aggregator, err := services.NewGitHubAggregator(cfg.GitHub, cfg.Evidence, targetOrg, strategy, log)
		if err != nil {
			return nil, err
		}
		return aggregator, nil
	}

	return handlers.SetupRouter(handlers.RouterConfig{
		Version:  config.Version,
		Token:    cfg.Server.Token,
		Evidence: handlers.NewEvidenceHandler(reports, newAggregator, cfg.GitHub.TargetOrg, cfg.Evidence.Strategy),
		Runs:     handlers.NewRunHandler(runs),
		Logger:   log,
	})
}
