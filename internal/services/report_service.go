package services

import (
	"context"
	"fmt"

	"github.com/alimgiray/evidence/internal/document"
	"github.com/alimgiray/evidence/internal/httpclient"
	"github.com/alimgiray/evidence/internal/models"
	"github.com/alimgiray/evidence/pkg/config"
	"github.com/sirupsen/logrus"
)

// Aggregator produces the evidence record of one run.
type Aggregator interface {
	Aggregate(ctx context.Context) (models.EvidenceRecord, models.Traversal, error)
}

// FontResolver supplies the font family the document is drawn with.
type FontResolver interface {
	Resolve() (document.FontFamily, error)
}

// DocumentRenderer writes a composed layout to a file.
type DocumentRenderer interface {
	RenderToFile(layout document.Layout, path string) error
}

// RendererFactory builds a renderer for a resolved font family.
type RendererFactory func(font document.FontFamily) (DocumentRenderer, error)

// PDFRenderer is the RendererFactory backed by the document package.
func PDFRenderer(font document.FontFamily) (DocumentRenderer, error) {
	renderer, err := document.NewRenderer(font)
	if err != nil {
		return nil, err
	}
	return renderer, nil
}

// GenerateRequest describes one report generation.
type GenerateRequest struct {
	TargetOrg    string
	Strategy     string
	OutputPath   string
	AppendixPath string
}

// ReportService runs aggregation and rendering for one report at a time.
type ReportService struct {
	fonts       FontResolver
	newRenderer RendererFactory
	style       document.Style
	appendix    *AppendixService
	runs        *RunService
	log         logrus.FieldLogger
}

// NewReportService wires the report pipeline. runs may be nil when no audit
// store is configured.
func NewReportService(fonts FontResolver, newRenderer RendererFactory, style document.Style, appendix *AppendixService, runs *RunService, log logrus.FieldLogger) *ReportService {
	if newRenderer == nil {
		newRenderer = PDFRenderer
	}
	if appendix == nil {
		appendix = NewAppendixService()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ReportService{
		fonts:       fonts,
		newRenderer: newRenderer,
		style:       style,
		appendix:    appendix,
		runs:        runs,
		log:         log,
	}
}

// Generate produces the evidence document described by req. The returned run
// is never nil and reflects the outcome, including on error.
func (s *ReportService) Generate(ctx context.Context, aggregator Aggregator, req GenerateRequest) (*models.Run, error) {
	run := models.NewRun(req.TargetOrg, req.Strategy, req.OutputPath)
	if s.runs != nil {
		if err := s.runs.Start(run); err != nil {
			run.MarkFailed(err)
			return run, err
		}
	} else {
		run.MarkStarted()
	}

	record, traversal, err := s.generate(ctx, aggregator, req)
	if err != nil {
		s.fail(run, err)
		return run, err
	}

	if s.runs != nil {
		if err := s.runs.Complete(run, record, traversal); err != nil {
			err = fmt.Errorf("failed to record run: %w", err)
			s.fail(run, err)
			return run, err
		}
	} else {
		for i, matched := range traversal.Repositories {
			run.Repositories = append(run.Repositories, models.NewCrawledRepository(run.ID, i, matched))
		}
		run.MarkCompleted(record)
	}

	s.log.WithFields(logrus.Fields{
		"run_id":       run.ID,
		"output":       req.OutputPath,
		"repositories": len(traversal.Repositories),
		"commits":      traversal.CommitCount(),
	}).Info("evidence document written")
	return run, nil
}

// fail marks run as failed, in the audit store when there is one.
func (s *ReportService) fail(run *models.Run, cause error) {
	if s.runs == nil {
		run.MarkFailed(cause)
		return
	}
	if err := s.runs.Fail(run, cause); err != nil {
		s.log.WithError(err).Warn("failed to record run failure")
	}
}

func (s *ReportService) generate(ctx context.Context, aggregator Aggregator, req GenerateRequest) (models.EvidenceRecord, models.Traversal, error) {
	// Fonts are checked first so a broken manifest never costs API calls.
	font, err := s.fonts.Resolve()
	if err != nil {
		return models.EvidenceRecord{}, models.Traversal{}, fmt.Errorf("failed to resolve font: %w", err)
	}
	renderer, err := s.newRenderer(font)
	if err != nil {
		return models.EvidenceRecord{}, models.Traversal{}, err
	}

	record, traversal, err := aggregator.Aggregate(ctx)
	if err != nil {
		return models.EvidenceRecord{}, models.Traversal{}, err
	}

	layout, err := document.Compose(record, s.style)
	if err != nil {
		return models.EvidenceRecord{}, models.Traversal{}, err
	}
	if err := renderer.RenderToFile(layout, req.OutputPath); err != nil {
		return models.EvidenceRecord{}, models.Traversal{}, err
	}

	if req.AppendixPath != "" {
		if err := s.appendix.Write(traversal, req.AppendixPath); err != nil {
			return models.EvidenceRecord{}, models.Traversal{}, err
		}
	}

	return record, traversal, nil
}

// NewGitHubAggregator builds an aggregator with its own HTTP client bound to
// the configured credential.
func NewGitHubAggregator(gh config.GitHubConfig, evidence config.EvidenceConfig, targetOrg, strategy string, log logrus.FieldLogger) (*EvidenceAggregatorService, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	deriver, err := NewRecordDeriver(strategy, evidence)
	if err != nil {
		return nil, err
	}

	client, err := httpclient.New(gh.Token,
		httpclient.WithUserAgent(gh.UserAgent),
		httpclient.WithAuthScheme(httpclient.AuthScheme(gh.AuthScheme)),
		httpclient.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	return NewEvidenceAggregatorService(client, AggregatorOptions{
		APIBaseURL: gh.APIURL,
		TargetOrg:  targetOrg,
		Deriver:    deriver,
		Logger:     log,
	}), nil
}
