package models

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus represents the status of a generation run
type RunStatus string

const (
	RunStatusPending    RunStatus = "pending"
	RunStatusInProgress RunStatus = "in-progress"
	RunStatusCompleted  RunStatus = "completed"
	RunStatusFailed     RunStatus = "failed"
)

// Run is the audit entry of one evidence generation
type Run struct {
	ID           string               `json:"id"`
	TargetOrg    string               `json:"target_org"`
	Strategy     string               `json:"strategy"`
	OutputPath   string               `json:"output_path"`
	Status       RunStatus            `json:"status"`
	ErrorMessage *string              `json:"error_message"`
	Month        *string              `json:"month"`
	Year         *int                 `json:"year"`
	Repository   *string              `json:"repository"`
	Author       *string              `json:"author"`
	StartedAt    *time.Time           `json:"started_at"`
	CompletedAt  *time.Time           `json:"completed_at"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
	Repositories []*CrawledRepository `json:"repositories,omitempty"`
}

// NewRun creates a new pending Run with a generated UUID
func NewRun(targetOrg, strategy, outputPath string) *Run {
	now := time.Now()
	return &Run{
		ID:         uuid.New().String(),
		TargetOrg:  targetOrg,
		Strategy:   strategy,
		OutputPath: outputPath,
		Status:     RunStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// MarkStarted marks the run as started
func (r *Run) MarkStarted() {
	now := time.Now()
	r.Status = RunStatusInProgress
	r.StartedAt = &now
	r.UpdatedAt = now
}

// MarkCompleted marks the run as completed and stores the printed record
func (r *Run) MarkCompleted(record EvidenceRecord) {
	now := time.Now()
	month := record.Month()
	year := int(record.Year())
	repository := record.Repository()
	author := record.Author()

	r.Status = RunStatusCompleted
	r.Month = &month
	r.Year = &year
	r.Repository = &repository
	r.Author = &author
	r.CompletedAt = &now
	r.UpdatedAt = now
}

// MarkFailed marks the run as failed with the error message
func (r *Run) MarkFailed(err error) {
	now := time.Now()
	message := err.Error()
	r.Status = RunStatusFailed
	r.ErrorMessage = &message
	r.CompletedAt = &now
	r.UpdatedAt = now
}

// IsCompleted checks if the run is completed
func (r *Run) IsCompleted() bool {
	return r.Status == RunStatusCompleted
}

// IsFailed checks if the run is failed
func (r *Run) IsFailed() bool {
	return r.Status == RunStatusFailed
}
