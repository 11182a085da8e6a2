package handlers

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/alimgiray/evidence/internal/document"
	"github.com/alimgiray/evidence/internal/httpclient"
	"github.com/alimgiray/evidence/internal/services"
	"github.com/gin-gonic/gin"
)

// AggregatorFactory builds the aggregator for one request.
type AggregatorFactory func(targetOrg, strategy string) (services.Aggregator, error)

type generateEvidenceRequest struct {
	Org      string `json:"org"`
	Strategy string `json:"strategy"`
}

type EvidenceHandler struct {
	reportService   *services.ReportService
	newAggregator   AggregatorFactory
	defaultOrg      string
	defaultStrategy string

	// Generation is serialized: one crawl at a time against the same token.
	mu sync.Mutex
}

func NewEvidenceHandler(reportService *services.ReportService, newAggregator AggregatorFactory, defaultOrg, defaultStrategy string) *EvidenceHandler {
	return &EvidenceHandler{
		reportService:   reportService,
		newAggregator:   newAggregator,
		defaultOrg:      defaultOrg,
		defaultStrategy: defaultStrategy,
	}
}

// GenerateEvidence crawls GitHub and responds with the evidence PDF
func (h *EvidenceHandler) GenerateEvidence(c *gin.Context) {
	var req generateEvidenceRequest
	// Chunked bodies have no length, so bind whatever body arrives; EOF means no overrides.
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}
	if req.Org == "" {
		req.Org = h.defaultOrg
	}
	if req.Strategy == "" {
		req.Strategy = h.defaultStrategy
	}

	aggregator, err := h.newAggregator(req.Org, req.Strategy)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, httpclient.ErrMissingCredential) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	dir, err := os.MkdirTemp("", "evidence-")
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare output"})
		return
	}
	defer os.RemoveAll(dir)
	output := filepath.Join(dir, "evidence.pdf")

	h.mu.Lock()
	run, err := h.reportService.Generate(c.Request.Context(), aggregator, services.GenerateRequest{
		TargetOrg:  req.Org,
		Strategy:   req.Strategy,
		OutputPath: output,
	})
	h.mu.Unlock()

	c.Header("X-Run-ID", run.ID)
	if err != nil {
		c.Error(err)
		c.JSON(generationStatus(err), gin.H{
			"error":  err.Error(),
			"run_id": run.ID,
		})
		return
	}

	c.FileAttachment(output, "evidence.pdf")
}

// generationStatus maps a pipeline failure to a response status
func generationStatus(err error) int {
	var decodeErr *services.DecodeError
	var transportErr *httpclient.TransportError
	switch {
	case errors.As(err, &decodeErr), errors.As(err, &transportErr):
		return http.StatusBadGateway
	case errors.Is(err, services.ErrNoCommits):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrFontManifestNotFound),
		errors.Is(err, services.ErrFontManifestMalformed),
		errors.Is(err, document.ErrFontUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
