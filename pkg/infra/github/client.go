package github

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/commet/pkg/domain/model"
	"github.com/m-mizutani/commet/pkg/domain/types"
)

// Client reads repositories through the GitHub REST API
type Client struct {
	githubClient *github.Client
}

// Option configures Client
type Option func(*Client) error

// WithBaseURL points the client at a GitHub Enterprise or test server
func WithBaseURL(baseURL string) Option {
	return func(c *Client) error {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return goerr.Wrap(err, "failed to parse GitHub base URL", goerr.V("base_url", baseURL))
		}
		c.githubClient.BaseURL = u
		return nil
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) error {
		baseURL := c.githubClient.BaseURL
		c.githubClient = github.NewClient(httpClient)
		c.githubClient.BaseURL = baseURL
		return nil
	}
}

// NewClient creates a new GitHub client. Credentials are given per call
// because they belong to the user of each request.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		githubClient: github.NewClient(nil),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Client) clientFor(credential string) *github.Client {
	if credential == "" {
		return c.githubClient
	}
	return c.githubClient.WithAuthToken(credential)
}

func splitFullName(fullName string) (string, string, error) {
	owner, repo, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || repo == "" {
		return "", "", goerr.New("invalid repository format, use 'owner/repo'",
			goerr.T(types.ErrTagInvalidRepositoryFormat),
			goerr.V("repository", fullName))
	}
	return owner, repo, nil
}

// ListBranches returns up to 100 branches of a repository
func (c *Client) ListBranches(ctx context.Context, fullName, credential string) ([]model.Branch, error) {
	owner, repo, err := splitFullName(fullName)
	if err != nil {
		return nil, err
	}

	branches, _, err := c.clientFor(credential).Repositories.ListBranches(ctx, owner, repo, &github.BranchListOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	})
	if err != nil {
		return nil, classify(err, "failed to list branches", fullName)
	}

	result := make([]model.Branch, 0, len(branches))
	for _, b := range branches {
		result = append(result, model.Branch{
			Name:      b.GetName(),
			Protected: b.GetProtected(),
		})
	}
	return result, nil
}

// GetRepository returns repository metadata including the language breakdown
func (c *Client) GetRepository(ctx context.Context, fullName, credential string) (*model.RepositoryInfo, error) {
	owner, repo, err := splitFullName(fullName)
	if err != nil {
		return nil, err
	}

	client := c.clientFor(credential)
	r, _, err := client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, classify(err, "failed to get repository", fullName)
	}

	info := &model.RepositoryInfo{
		Name:          r.GetName(),
		FullName:      r.GetFullName(),
		Description:   r.GetDescription(),
		URL:           r.GetHTMLURL(),
		Language:      r.GetLanguage(),
		Stars:         r.GetStargazersCount(),
		Forks:         r.GetForksCount(),
		OpenIssues:    r.GetOpenIssuesCount(),
		DefaultBranch: r.GetDefaultBranch(),
		IsPrivate:     r.GetPrivate(),
		Owner:         r.GetOwner().GetLogin(),
	}

	// The language breakdown is optional context
	if languages, _, err := client.Repositories.ListLanguages(ctx, owner, repo); err == nil {
		info.Languages = languages
	}

	return info, nil
}

// ListCommits returns the most recent commits on branch, or on the default
// branch when branch is empty
func (c *Client) ListCommits(ctx context.Context, fullName, branch string, limit int, credential string) ([]model.Commit, error) {
	owner, repo, err := splitFullName(fullName)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = types.DefaultCommitsLimit
	}

	commits, _, err := c.clientFor(credential).Repositories.ListCommits(ctx, owner, repo, &github.CommitsListOptions{
		SHA:         branch,
		ListOptions: github.ListOptions{PerPage: limit},
	})
	if err != nil {
		return nil, classify(err, "failed to list commits", fullName, goerr.V("branch", branch))
	}

	result := make([]model.Commit, 0, len(commits))
	for _, rc := range commits {
		author := rc.GetCommit().GetAuthor()
		commit := model.Commit{
			SHA:       rc.GetSHA(),
			Message:   rc.GetCommit().GetMessage(),
			Author:    author.GetName(),
			Email:     author.GetEmail(),
			Additions: rc.GetStats().GetAdditions(),
			Deletions: rc.GetStats().GetDeletions(),
		}
		if author.Date != nil {
			commit.Date = author.GetDate().Format("2006-01-02T15:04:05Z07:00")
		}
		result = append(result, commit)
	}
	return result, nil
}

// classify attaches exactly one failure class to a GitHub API error
func classify(err error, msg, fullName string, opts ...goerr.Option) error {
	opts = append(opts, goerr.V("repository", fullName), classTag(err))
	return goerr.Wrap(err, msg, opts...)
}

func classTag(err error) goerr.Option {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	var respErr *github.ErrorResponse
	var netErr net.Error

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return goerr.T(types.ErrTagTimeout)
	case errors.As(err, &netErr) && netErr.Timeout():
		return goerr.T(types.ErrTagTimeout)
	case errors.As(err, &rateErr), errors.As(err, &abuseErr):
		return goerr.T(types.ErrTagRateLimited)
	case errors.As(err, &respErr) && respErr.Response != nil:
		return statusTag(respErr.Response.StatusCode)
	}
	return goerr.T(types.ErrTagUnknown)
}

func statusTag(status int) goerr.Option {
	switch status {
	case http.StatusNotFound:
		return goerr.T(types.ErrTagNotFound)
	case http.StatusUnauthorized:
		return goerr.T(types.ErrTagUnauthorized)
	case http.StatusForbidden, http.StatusTooManyRequests:
		return goerr.T(types.ErrTagRateLimited)
	case http.StatusServiceUnavailable:
		return goerr.T(types.ErrTagServiceUnavailable)
	}
	return goerr.T(types.ErrTagUnknown)
}
