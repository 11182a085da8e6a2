package models

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvidenceRecord(t *testing.T) {
	testCases := []struct {
		name       string
		month      string
		year       uint8
		repository string
		author     string
		wantErr    error
	}{
		{name: "Complete record", month: "Junio", year: 22, repository: "Climate Trade Marketplace", author: "Pablo Blanco Celdrán"},
		{name: "Year zero", month: "Enero", year: 0, repository: "proj", author: "someone"},
		{name: "Empty month", month: "", year: 22, repository: "proj", author: "someone", wantErr: ErrEmptyMonth},
		{name: "Three digit year", month: "Junio", year: 122, repository: "proj", author: "someone", wantErr: ErrInvalidYear},
		{name: "Missing repository", month: "Junio", year: 22, repository: "", author: "someone", wantErr: ErrIncompleteRecord},
		{name: "Missing author", month: "Junio", year: 22, repository: "proj", author: "", wantErr: ErrIncompleteRecord},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			record, err := NewEvidenceRecord(tc.month, tc.year, tc.repository, tc.author)
			if tc.wantErr != nil {
				assert.True(t, errors.Is(err, tc.wantErr), "expected %v, got %v", tc.wantErr, err)
				assert.True(t, record.IsZero())
				return
			}
			require.NoError(t, err)
			assert.False(t, record.IsZero())
			assert.Equal(t, tc.month, record.Month())
			assert.Equal(t, tc.year, record.Year())
			assert.Equal(t, tc.repository, record.Repository())
			assert.Equal(t, tc.author, record.Author())
		})
	}
}

func TestCommitSummarySubject(t *testing.T) {
	commit := CommitSummary{Message: "Fix crawler\n\nLonger body here"}
	assert.Equal(t, "Fix crawler", commit.Subject())

	assert.Equal(t, "", CommitSummary{}.Subject())
}

func TestTraversalCommitCount(t *testing.T) {
	traversal := Traversal{
		Repositories: []MatchedRepository{
			{Commits: make([]CommitSummary, 3)},
			{Commits: nil},
			{Commits: make([]CommitSummary, 2)},
		},
	}
	assert.Equal(t, 5, traversal.CommitCount())
}

func TestRunLifecycle(t *testing.T) {
	run := NewRun("Dekalabs", "fixed", "test.pdf")

	_, err := uuid.Parse(run.ID)
	require.NoError(t, err)
	assert.Equal(t, RunStatusPending, run.Status)

	run.MarkStarted()
	assert.Equal(t, RunStatusInProgress, run.Status)
	require.NotNil(t, run.StartedAt)

	record, err := NewEvidenceRecord("Junio", 22, "proj", "someone")
	require.NoError(t, err)
	run.MarkCompleted(record)

	assert.True(t, run.IsCompleted())
	require.NotNil(t, run.Month)
	assert.Equal(t, "Junio", *run.Month)
	require.NotNil(t, run.Year)
	assert.Equal(t, 22, *run.Year)
	assert.NotNil(t, run.CompletedAt)
}

func TestRunMarkFailed(t *testing.T) {
	run := NewRun("Dekalabs", "fixed", "test.pdf")
	run.MarkStarted()
	run.MarkFailed(errors.New("boom"))

	assert.True(t, run.IsFailed())
	require.NotNil(t, run.ErrorMessage)
	assert.Equal(t, "boom", *run.ErrorMessage)
}

func TestNewCrawledRepository(t *testing.T) {
	matched := MatchedRepository{
		Repository: RepositorySummary{ID: 42, Name: "proj", FullName: "Dekalabs/proj", OwnerLogin: "Dekalabs"},
		Commits:    make([]CommitSummary, 3),
	}

	crawled := NewCrawledRepository("run-1", 0, matched)

	assert.NotEmpty(t, crawled.ID)
	assert.Equal(t, "run-1", crawled.RunID)
	assert.Equal(t, int64(42), crawled.GithubID)
	assert.Equal(t, "Dekalabs/proj", crawled.FullName)
	assert.Equal(t, 3, crawled.CommitCount)
}
