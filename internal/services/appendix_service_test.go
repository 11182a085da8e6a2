package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/alimgiray/evidence/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestAppendixWrite(t *testing.T) {
	date := time.Date(2022, time.June, 3, 10, 30, 0, 0, time.UTC)
	traversal := models.Traversal{
		TargetOrg: "Dekalabs",
		Scanned:   3,
		Repositories: []models.MatchedRepository{
			{
				Repository: models.RepositorySummary{Name: "proj", FullName: "Dekalabs/proj", OwnerLogin: "Dekalabs"},
				Commits: []models.CommitSummary{
					{SHA: "a1", AuthorName: "Dev", AuthorEmail: "dev@example.test", AuthorDate: date, Message: "Add crawler\n\nDetails"},
					{SHA: "b2", AuthorName: "Dev", AuthorEmail: "dev@example.test", AuthorDate: date, Message: "Fix typo"},
				},
			},
			{
				Repository: models.RepositorySummary{Name: "empty", FullName: "Dekalabs/empty", OwnerLogin: "Dekalabs"},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "appendix.xlsx")
	require.NoError(t, NewAppendixService().Write(traversal, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{repositoriesSheet, commitsSheet}, f.GetSheetList())

	repos, err := f.GetRows(repositoriesSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Repository", "Owner", "Commits"},
		{"Dekalabs/proj", "Dekalabs", "2"},
		{"Dekalabs/empty", "Dekalabs", "0"},
	}, repos)

	commits, err := f.GetRows(commitsSheet)
	require.NoError(t, err)
	require.Len(t, commits, 3)
	assert.Equal(t, []string{"Dekalabs/proj", "a1", "Dev", "dev@example.test", "2022-06-03T10:30:00Z", "Add crawler"}, commits[1])
	assert.Equal(t, "Fix typo", commits[2][5])
}

func TestAppendixWriteBadPath(t *testing.T) {
	err := NewAppendixService().Write(models.Traversal{}, filepath.Join(t.TempDir(), "missing", "appendix.xlsx"))
	assert.Error(t, err)
}
