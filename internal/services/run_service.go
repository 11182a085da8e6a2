package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/alimgiray/evidence/internal/models"
	"github.com/alimgiray/evidence/internal/repositories"
	"github.com/google/uuid"
)

var (
	ErrInvalidRunID = errors.New("invalid run ID")
	ErrRunNotFound  = errors.New("run not found")
)

const defaultRunListLimit = 50

// RunService keeps the audit trail of generation runs
type RunService struct {
	runRepo     *repositories.RunRepository
	crawledRepo *repositories.CrawledRepositoryRepository
}

func NewRunService(runRepo *repositories.RunRepository, crawledRepo *repositories.CrawledRepositoryRepository) *RunService {
	return &RunService{
		runRepo:     runRepo,
		crawledRepo: crawledRepo,
	}
}

// Start persists a new run in progress
func (s *RunService) Start(run *models.Run) error {
	run.MarkStarted()
	if err := s.runRepo.Create(run); err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// Complete stores the record and the matched repositories of a finished run.
// run is only updated once both are saved.
func (s *RunService) Complete(run *models.Run, record models.EvidenceRecord, traversal models.Traversal) error {
	crawled := make([]*models.CrawledRepository, 0, len(traversal.Repositories))
	for i, matched := range traversal.Repositories {
		crawled = append(crawled, models.NewCrawledRepository(run.ID, i, matched))
	}

	completed := *run
	completed.MarkCompleted(record)
	if err := s.runRepo.Complete(&completed, crawled); err != nil {
		return err
	}

	*run = completed
	run.Repositories = crawled
	return nil
}

// Fail marks a run as failed with cause
func (s *RunService) Fail(run *models.Run, cause error) error {
	run.MarkFailed(cause)
	if err := s.runRepo.Update(run); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// GetRun retrieves a run with its crawled repositories
func (s *RunService) GetRun(id string) (*models.Run, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRunID, id)
	}

	run, err := s.runRepo.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}

	run.Repositories, err = s.crawledRepo.GetByRunID(id)
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns retrieves the most recent runs
func (s *RunService) ListRuns() ([]*models.Run, error) {
	return s.runRepo.List(defaultRunListLimit)
}
