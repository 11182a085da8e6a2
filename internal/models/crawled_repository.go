package models

import (
	"time"

	"github.com/google/uuid"
)

// CrawledRepository records a matched repository within a Run
type CrawledRepository struct {
	ID          string    `json:"id"`
	RunID       string    `json:"run_id"`
	Position    int       `json:"position"`
	GithubID    int64     `json:"github_id"`
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	OwnerLogin  string    `json:"owner_login"`
	CommitCount int       `json:"commit_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewCrawledRepository creates a new CrawledRepository with a generated UUID
func NewCrawledRepository(runID string, position int, matched MatchedRepository) *CrawledRepository {
	return &CrawledRepository{
		ID:          uuid.New().String(),
		RunID:       runID,
		Position:    position,
		GithubID:    matched.Repository.ID,
		Name:        matched.Repository.Name,
		FullName:    matched.Repository.FullName,
		OwnerLogin:  matched.Repository.OwnerLogin,
		CommitCount: len(matched.Commits),
		CreatedAt:   time.Now(),
	}
}
