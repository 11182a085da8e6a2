package services

import (
	"errors"
	"fmt"

	"github.com/alimgiray/evidence/internal/models"
	"github.com/alimgiray/evidence/pkg/config"
)

const (
	StrategyFixed        = "fixed"
	StrategyLatestCommit = "latest-commit"
)

// ErrNoCommits means a traversal-based strategy found nothing to derive from.
var ErrNoCommits = errors.New("no commits found in the target organization")

// RecordDeriver turns a finished traversal into the evidence record.
type RecordDeriver interface {
	Derive(traversal models.Traversal) (models.EvidenceRecord, error)
}

// FixedRecord always returns the same configured record.
type FixedRecord struct {
	record models.EvidenceRecord
}

func NewFixedRecord(month string, year int, repository, author string) (*FixedRecord, error) {
	if year < 0 || year > 99 {
		return nil, fmt.Errorf("%w: got %d", models.ErrInvalidYear, year)
	}
	record, err := models.NewEvidenceRecord(month, uint8(year), repository, author)
	if err != nil {
		return nil, err
	}
	return &FixedRecord{record: record}, nil
}

func (f *FixedRecord) Derive(models.Traversal) (models.EvidenceRecord, error) {
	return f.record, nil
}

var spanishMonths = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// LatestCommitRecord builds the record from the newest commit (by author
// date) of any matched repository. Ties keep the first one seen.
type LatestCommitRecord struct{}

func (LatestCommitRecord) Derive(traversal models.Traversal) (models.EvidenceRecord, error) {
	var (
		latest     *models.CommitSummary
		repository string
	)
	for _, matched := range traversal.Repositories {
		for i := range matched.Commits {
			commit := &matched.Commits[i]
			if latest == nil || commit.AuthorDate.After(latest.AuthorDate) {
				latest = commit
				repository = matched.Repository.Name
			}
		}
	}
	if latest == nil {
		return models.EvidenceRecord{}, ErrNoCommits
	}

	date := latest.AuthorDate
	return models.NewEvidenceRecord(
		spanishMonths[date.Month()-1],
		uint8(date.Year()%100),
		repository,
		latest.AuthorName,
	)
}

// NewRecordDeriver picks a strategy by name. The fixed strategy reads its
// values from cfg.
func NewRecordDeriver(strategy string, cfg config.EvidenceConfig) (RecordDeriver, error) {
	switch strategy {
	case "", StrategyFixed:
		fixed, err := NewFixedRecord(cfg.Month, cfg.Year, cfg.Repository, cfg.Author)
		if err != nil {
			return nil, err
		}
		return fixed, nil
	case StrategyLatestCommit:
		return LatestCommitRecord{}, nil
	default:
		return nil, fmt.Errorf("unknown record strategy %q (expected %q or %q)", strategy, StrategyFixed, StrategyLatestCommit)
	}
}
