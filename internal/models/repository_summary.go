package models

// RepositorySummary is the part of a /user/repos entry the crawler needs.
type RepositorySummary struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	FullName           string `json:"full_name"`
	CommitsURLTemplate string `json:"commits_url"`
	OwnerLogin         string `json:"owner_login"`
}
