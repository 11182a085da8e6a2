package repositories

import (
	"database/sql"

	"github.com/alimgiray/evidence/internal/models"
)

type CrawledRepositoryRepository struct {
	db *sql.DB
}

func NewCrawledRepositoryRepository(db *sql.DB) *CrawledRepositoryRepository {
	return &CrawledRepositoryRepository{db: db}
}

// insertCrawledRepositories adds the matched repositories of a run inside tx
func insertCrawledRepositories(tx *sql.Tx, repos []*models.CrawledRepository) error {
	stmt, err := tx.Prepare(`
		INSERT INTO crawled_repositories (
			id, run_id, position, github_id, name, full_name, owner_login, commit_count, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, repo := range repos {
		_, err := stmt.Exec(
			repo.ID, repo.RunID, repo.Position, repo.GithubID, repo.Name,
			repo.FullName, repo.OwnerLogin, repo.CommitCount, repo.CreatedAt,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetByRunID retrieves the repositories of a run in crawl order
func (r *CrawledRepositoryRepository) GetByRunID(runID string) ([]*models.CrawledRepository, error) {
	query := `
		SELECT id, run_id, position, github_id, name, full_name, owner_login, commit_count, created_at
		FROM crawled_repositories WHERE run_id = ?
		ORDER BY position ASC
	`

	rows, err := r.db.Query(query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var repos []*models.CrawledRepository
	for rows.Next() {
		repo := &models.CrawledRepository{}
		err := rows.Scan(
			&repo.ID, &repo.RunID, &repo.Position, &repo.GithubID, &repo.Name,
			&repo.FullName, &repo.OwnerLogin, &repo.CommitCount, &repo.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		repos = append(repos, repo)
	}

	return repos, rows.Err()
}
