package repositories

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/alimgiray/evidence/internal/models"
)

// RunRepository handles database operations for generation runs
type RunRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewRunRepository creates a new RunRepository
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

const runColumns = `id, target_org, strategy, output_path, status, error_message, month, year, repository, author, started_at, completed_at, created_at, updated_at`

// Create creates a new run
func (r *RunRepository) Create(run *models.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `INSERT INTO runs (` + runColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Exec(query,
		run.ID,
		run.TargetOrg,
		run.Strategy,
		run.OutputPath,
		run.Status,
		run.ErrorMessage,
		run.Month,
		run.Year,
		run.Repository,
		run.Author,
		run.StartedAt,
		run.CompletedAt,
		run.CreatedAt,
		run.UpdatedAt,
	)
	return err
}

// Update updates the mutable columns of a run
func (r *RunRepository) Update(run *models.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return updateRun(r.db, run)
}

// Complete stores the crawled repositories and the completed run in one
// transaction; on error neither is written.
func (r *RunRepository) Complete(run *models.Run, repos []*models.CrawledRepository) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertCrawledRepositories(tx, repos); err != nil {
		return fmt.Errorf("failed to store crawled repositories: %w", err)
	}
	if err := updateRun(tx, run); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}

	return tx.Commit()
}

type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

func updateRun(db execer, run *models.Run) error {
	query := `
		UPDATE runs SET
			status = ?, error_message = ?, month = ?, year = ?, repository = ?, author = ?,
			started_at = ?, completed_at = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := db.Exec(query,
		run.Status,
		run.ErrorMessage,
		run.Month,
		run.Year,
		run.Repository,
		run.Author,
		run.StartedAt,
		run.CompletedAt,
		run.UpdatedAt,
		run.ID,
	)
	return err
}

// GetByID retrieves a run by ID
func (r *RunRepository) GetByID(id string) (*models.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT ` + runColumns + ` FROM runs WHERE id = ?`

	return scanRun(r.db.QueryRow(query, id))
}

// List retrieves the most recent runs first
func (r *RunRepository) List(limit int) ([]*models.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT ` + runColumns + ` FROM runs ORDER BY created_at DESC LIMIT ?`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*models.Run, error) {
	run := &models.Run{}
	err := row.Scan(
		&run.ID,
		&run.TargetOrg,
		&run.Strategy,
		&run.OutputPath,
		&run.Status,
		&run.ErrorMessage,
		&run.Month,
		&run.Year,
		&run.Repository,
		&run.Author,
		&run.StartedAt,
		&run.CompletedAt,
		&run.CreatedAt,
		&run.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return run, nil
}
