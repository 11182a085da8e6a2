package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alimgiray/evidence/internal/httpclient"
	"github.com/alimgiray/evidence/internal/models"
	"github.com/google/go-github/v57/github"
	"github.com/sirupsen/logrus"
)

// commitsTemplateSuffix is the length of the "{/sha}" placeholder GitHub
// appends to commits_url.
const commitsTemplateSuffix = 6

// DecodeError means a response body did not have the expected shape.
type DecodeError struct {
	Kind string
	URL  string
	// APIMessage is the "message" of a GitHub error document, when the body
	// was one.
	APIMessage string
	Err        error
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("failed to decode %s from %s: %v", e.Kind, e.URL, e.Err)
	if e.APIMessage != "" {
		msg += fmt.Sprintf(" (GitHub said: %s)", e.APIMessage)
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// AggregatorOptions configures an EvidenceAggregatorService.
type AggregatorOptions struct {
	APIBaseURL string
	TargetOrg  string
	Deriver    RecordDeriver
	Logger     logrus.FieldLogger
}

// EvidenceAggregatorService walks the user's repositories and the commits of
// those owned by the target organization, then derives the evidence record.
// It holds no state between calls.
type EvidenceAggregatorService struct {
	fetcher    httpclient.Fetcher
	apiBaseURL string
	targetOrg  string
	deriver    RecordDeriver
	log        logrus.FieldLogger
}

func NewEvidenceAggregatorService(fetcher httpclient.Fetcher, opts AggregatorOptions) *EvidenceAggregatorService {
	if opts.APIBaseURL == "" {
		opts.APIBaseURL = "https://api.github.com"
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	return &EvidenceAggregatorService{
		fetcher:    fetcher,
		apiBaseURL: strings.TrimRight(opts.APIBaseURL, "/"),
		targetOrg:  opts.TargetOrg,
		deriver:    opts.Deriver,
		log:        opts.Logger,
	}
}

// Aggregate crawls and derives the record. Nothing is returned unless the
// whole traversal succeeds.
func (s *EvidenceAggregatorService) Aggregate(ctx context.Context) (models.EvidenceRecord, models.Traversal, error) {
	if s.deriver == nil {
		return models.EvidenceRecord{}, models.Traversal{}, fmt.Errorf("no record strategy configured")
	}

	traversal, err := s.Crawl(ctx)
	if err != nil {
		return models.EvidenceRecord{}, models.Traversal{}, err
	}

	record, err := s.deriver.Derive(traversal)
	if err != nil {
		return models.EvidenceRecord{}, models.Traversal{}, fmt.Errorf("failed to derive evidence record: %w", err)
	}
	return record, traversal, nil
}

// Crawl performs the two-level traversal, one request at a time, in the
// order the API lists repositories.
func (s *EvidenceAggregatorService) Crawl(ctx context.Context) (models.Traversal, error) {
	reposURL := s.apiBaseURL + "/user/repos"
	body, err := s.fetcher.Fetch(ctx, reposURL)
	if err != nil {
		return models.Traversal{}, fmt.Errorf("failed to list repositories: %w", err)
	}

	repos, err := decodeRepositories(reposURL, body)
	if err != nil {
		return models.Traversal{}, err
	}

	traversal := models.Traversal{
		TargetOrg:    s.targetOrg,
		Scanned:      len(repos),
		Repositories: []models.MatchedRepository{},
	}

	for _, repo := range repos {
		if repo.OwnerLogin != s.targetOrg {
			s.log.WithFields(logrus.Fields{
				"repository": repo.FullName,
				"owner":      repo.OwnerLogin,
			}).Debug("skipping repository outside target organization")
			continue
		}

		commitsURL, err := commitsEndpoint(repo.CommitsURLTemplate)
		if err != nil {
			return models.Traversal{}, &DecodeError{Kind: "repositories", URL: reposURL, Err: err}
		}

		body, err := s.fetcher.Fetch(ctx, commitsURL)
		if err != nil {
			return models.Traversal{}, fmt.Errorf("failed to list commits of %s: %w", repo.FullName, err)
		}

		commits, err := decodeCommits(commitsURL, body)
		if err != nil {
			return models.Traversal{}, err
		}

		s.log.WithFields(logrus.Fields{
			"owner":      repo.OwnerLogin,
			"repository": repo.Name,
			"commits":    len(commits),
		}).Infof("Crawling %s's %s... (%d commits)", repo.OwnerLogin, repo.Name, len(commits))

		traversal.Repositories = append(traversal.Repositories, models.MatchedRepository{
			Repository: repo,
			Commits:    commits,
		})
	}

	return traversal, nil
}

// commitsEndpoint strips the "{/sha}" placeholder from a commits_url.
func commitsEndpoint(template string) (string, error) {
	if len(template) < commitsTemplateSuffix {
		return "", fmt.Errorf("commits_url %q is too short to carry a placeholder", template)
	}
	return template[:len(template)-commitsTemplateSuffix], nil
}

type requiredField struct {
	name    string
	present bool
}

func checkRequired(fields ...requiredField) error {
	var missing []string
	for _, field := range fields {
		if !field.present {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}
	return nil
}

func newDecodeError(kind, url, body string, err error) *DecodeError {
	decodeErr := &DecodeError{Kind: kind, URL: url, Err: err}
	var apiErr github.ErrorResponse
	if json.Unmarshal([]byte(body), &apiErr) == nil {
		decodeErr.APIMessage = apiErr.Message
	}
	return decodeErr
}

func decodeRepositories(url, body string) ([]models.RepositorySummary, error) {
	var repos []*github.Repository
	if err := json.Unmarshal([]byte(body), &repos); err != nil {
		return nil, newDecodeError("repositories", url, body, err)
	}
	if repos == nil {
		return nil, newDecodeError("repositories", url, body, fmt.Errorf("expected a JSON array"))
	}

	summaries := make([]models.RepositorySummary, 0, len(repos))
	for i, repo := range repos {
		if repo == nil {
			return nil, newDecodeError("repositories", url, body, fmt.Errorf("entry %d is null", i))
		}
		err := checkRequired(
			requiredField{"id", repo.ID != nil},
			requiredField{"name", repo.Name != nil},
			requiredField{"full_name", repo.FullName != nil},
			requiredField{"commits_url", repo.CommitsURL != nil},
			requiredField{"owner.login", repo.Owner != nil && repo.Owner.Login != nil},
		)
		if err != nil {
			return nil, newDecodeError("repositories", url, body, fmt.Errorf("entry %d: %w", i, err))
		}

		summaries = append(summaries, models.RepositorySummary{
			ID:                 repo.GetID(),
			Name:               repo.GetName(),
			FullName:           repo.GetFullName(),
			CommitsURLTemplate: repo.GetCommitsURL(),
			OwnerLogin:         repo.GetOwner().GetLogin(),
		})
	}
	return summaries, nil
}

func decodeCommits(url, body string) ([]models.CommitSummary, error) {
	var commits []*github.RepositoryCommit
	if err := json.Unmarshal([]byte(body), &commits); err != nil {
		return nil, newDecodeError("commits", url, body, err)
	}
	if commits == nil {
		return nil, newDecodeError("commits", url, body, fmt.Errorf("expected a JSON array"))
	}

	summaries := make([]models.CommitSummary, 0, len(commits))
	for i, rc := range commits {
		if rc == nil {
			return nil, newDecodeError("commits", url, body, fmt.Errorf("entry %d is null", i))
		}
		commit := rc.GetCommit()
		author := commit.GetAuthor()
		err := checkRequired(
			requiredField{"sha", rc.SHA != nil},
			requiredField{"node_id", rc.NodeID != nil},
			requiredField{"commit", rc.Commit != nil},
			requiredField{"commit.message", commit != nil && commit.Message != nil},
			requiredField{"commit.url", commit != nil && commit.URL != nil},
			requiredField{"commit.comment_count", commit != nil && commit.CommentCount != nil},
			requiredField{"commit.author", author != nil},
			requiredField{"commit.author.name", author != nil && author.Name != nil},
			requiredField{"commit.author.email", author != nil && author.Email != nil},
			requiredField{"commit.author.date", author != nil && author.Date != nil},
		)
		if err != nil {
			return nil, newDecodeError("commits", url, body, fmt.Errorf("entry %d: %w", i, err))
		}

		summaries = append(summaries, models.CommitSummary{
			SHA:          rc.GetSHA(),
			NodeID:       rc.GetNodeID(),
			Message:      commit.GetMessage(),
			URL:          commit.GetURL(),
			CommentCount: commit.GetCommentCount(),
			AuthorName:   author.GetName(),
			AuthorEmail:  author.GetEmail(),
			AuthorDate:   author.GetDate().Time,
		})
	}
	return summaries, nil
}
