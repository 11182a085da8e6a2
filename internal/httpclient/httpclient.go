package httpclient

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// AuthScheme selects how the credential is presented to the API.
type AuthScheme string

const (
	AuthBasic  AuthScheme = "basic"
	AuthBearer AuthScheme = "bearer"
)

// ErrMissingCredential is returned by New when no token is supplied.
var ErrMissingCredential = errors.New("no personal access token provided (set GITHUB_PAS first)")

// Fetcher performs a single authenticated GET and returns the raw body.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// TransportError wraps any failure below HTTP semantics: request building,
// DNS, TLS, connection resets and unreadable bodies.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client is a GET-only client bound to one credential. It never looks at the
// response status code; callers decide what a 4xx body means.
type Client struct {
	credential string
	userAgent  string
	scheme     AuthScheme
	httpClient *http.Client
	log        logrus.FieldLogger
}

// Option configures Client behavior.
type Option func(*Client)

// WithUserAgent overrides the User-Agent header sent on every request. Empty
// values keep the default.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithAuthScheme switches between Basic and Bearer authorization.
func WithAuthScheme(scheme AuthScheme) Option {
	return func(c *Client) {
		if scheme != "" {
			c.scheme = scheme
		}
	}
}

// WithHTTPClient sets the underlying transport client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLogger sets the logger used for per-request debug entries.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

const defaultUserAgent = "evidence"

// New creates a Client for credential.
func New(credential string, opts ...Option) (*Client, error) {
	if credential == "" {
		return nil, ErrMissingCredential
	}

	c := &Client{
		credential: credential,
		userAgent:  defaultUserAgent,
		scheme:     AuthBasic,
		httpClient: http.DefaultClient,
		log:        logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	switch c.scheme {
	case AuthBasic:
	case AuthBearer:
		// oauth2 layers its transport over the configured client.
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, c.httpClient)
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: credential})
		c.httpClient = oauth2.NewClient(ctx, src)
	default:
		return nil, fmt.Errorf("unknown auth scheme %q (expected %q or %q)", c.scheme, AuthBasic, AuthBearer)
	}

	return c, nil
}

// BasicAuthorization returns the Authorization header value for credential.
func BasicAuthorization(credential string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(credential))
}

// Fetch issues a GET to url and returns the response body as text.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	log := c.log.WithField("url", url)
	startTime := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &TransportError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.scheme == AuthBasic {
		req.Header.Set("Authorization", BasicAuthorization(c.credential))
	}

	log.Debug("executing GitHub API request...")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Debug("GitHub API request failed")
		return "", &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{URL: url, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	log.WithFields(logrus.Fields{
		"status":  resp.StatusCode,
		"elapsed": time.Since(startTime),
	}).Debug("GitHub API request completed")

	return string(body), nil
}
