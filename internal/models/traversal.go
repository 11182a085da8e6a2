package models

// MatchedRepository is a repository owned by the target organization together
// with the commits fetched for it.
type MatchedRepository struct {
	Repository RepositorySummary `json:"repository"`
	Commits    []CommitSummary   `json:"commits"`
}

// Traversal is the outcome of one crawl, in the order the API listed the
// repositories.
type Traversal struct {
	TargetOrg    string              `json:"target_org"`
	Scanned      int                 `json:"scanned"`
	Repositories []MatchedRepository `json:"repositories"`
}

// CommitCount returns the number of commits across all matched repositories.
func (t Traversal) CommitCount() int {
	total := 0
	for _, repo := range t.Repositories {
		total += len(repo.Commits)
	}
	return total
}
