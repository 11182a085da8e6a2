package models

import (
	"strings"
	"time"
)

// CommitSummary is one element of a repository commits listing
type CommitSummary struct {
	SHA          string    `json:"sha"`
	NodeID       string    `json:"node_id"`
	Message      string    `json:"message"`
	URL          string    `json:"url"`
	CommentCount int       `json:"comment_count"`
	AuthorName   string    `json:"author_name"`
	AuthorEmail  string    `json:"author_email"`
	AuthorDate   time.Time `json:"author_date"`
}

// Subject returns the first line of the commit message
func (c CommitSummary) Subject() string {
	subject, _, _ := strings.Cut(c.Message, "\n")
	return strings.TrimSpace(subject)
}
