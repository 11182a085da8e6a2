package handlers

import (
	"errors"
	"net/http"

	"github.com/alimgiray/evidence/internal/services"
	"github.com/gin-gonic/gin"
)

type RunHandler struct {
	runService *services.RunService
}

func NewRunHandler(runService *services.RunService) *RunHandler {
	return &RunHandler{runService: runService}
}

// ListRuns returns the most recent generation runs
func (h *RunHandler) ListRuns(c *gin.Context) {
	runs, err := h.runService.ListRuns()
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list runs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"runs":  runs,
		"count": len(runs),
	})
}

// GetRun returns one run with the repositories it crawled
func (h *RunHandler) GetRun(c *gin.Context) {
	run, err := h.runService.GetRun(c.Param("id"))
	switch {
	case errors.Is(err, services.ErrInvalidRunID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid run ID"})
		return
	case errors.Is(err, services.ErrRunNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Run not found"})
		return
	case err != nil:
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load run"})
		return
	}

	c.JSON(http.StatusOK, run)
}
