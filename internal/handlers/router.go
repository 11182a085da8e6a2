package handlers

import (
	"github.com/alimgiray/evidence/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RouterConfig holds what the HTTP routes are wired to.
type RouterConfig struct {
	Version  string
	Token    string
	Evidence *EvidenceHandler
	Runs     *RunHandler
	Logger   logrus.FieldLogger
}

// SetupRouter registers every route on a new engine
func SetupRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Logger))

	healthHandler := NewHealthHandler(cfg.Version)
	notFoundHandler := NewNotFoundHandler()

	router.GET("/health", healthHandler.HealthCheck)

	protected := router.Group("/")
	protected.Use(middleware.TokenRequired(cfg.Token))
	{
		if cfg.Evidence != nil {
			protected.POST("/evidence", cfg.Evidence.GenerateEvidence)
		}
		if cfg.Runs != nil {
			protected.GET("/runs", cfg.Runs.ListRuns)
			protected.GET("/runs/:id", cfg.Runs.GetRun)
		}
	}

	router.NoRoute(notFoundHandler.NotFound)

	return router
}
