package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/commet/pkg/domain/model"
	"github.com/m-mizutani/commet/pkg/domain/types"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultMultiTimeout = 120 * time.Second
)

// Client talks to the remote analysis server. It implements both
// interfaces.AnalysisBackend and interfaces.RepositorySource.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	timeout      time.Duration
	multiTimeout time.Duration
}

// Option configures Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the timeout of every call except multi-project analysis
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithMultiProjectTimeout sets the timeout of multi-project analysis
func WithMultiProjectTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.multiTimeout = d
	}
}

// NewClient creates a client for the analysis server at baseURL
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   &http.Client{},
		timeout:      defaultTimeout,
		multiTimeout: defaultMultiTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Chat analyzes a single repository
func (c *Client) Chat(ctx context.Context, req *model.ChatRequest) (*model.ChatResponse, error) {
	var resp model.ChatResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat", nil, req, &resp, c.timeout, timeoutMessage); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ChatMultiProject analyzes connected repositories. It is allowed to run
// much longer than Chat.
func (c *Client) ChatMultiProject(ctx context.Context, req *model.MultiProjectChatRequest) (*model.MultiProjectChatResponse, error) {
	var resp model.MultiProjectChatResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat/multi-project", nil, req, &resp, c.multiTimeout, multiTimeoutMessage); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListBranches returns the live branch list through the server
func (c *Client) ListBranches(ctx context.Context, fullName, credential string) ([]model.Branch, error) {
	var branches []model.Branch
	if err := c.do(ctx, http.MethodGet, "/api/git/branches", repoQuery(fullName, credential), nil, &branches, c.timeout, timeoutMessage); err != nil {
		return nil, err
	}
	return branches, nil
}

// GetRepository returns repository metadata through the server
func (c *Client) GetRepository(ctx context.Context, fullName, credential string) (*model.RepositoryInfo, error) {
	var info model.RepositoryInfo
	if err := c.do(ctx, http.MethodGet, "/api/git/repo", repoQuery(fullName, credential), nil, &info, c.timeout, timeoutMessage); err != nil {
		return nil, err
	}
	return &info, nil
}

func repoQuery(fullName, credential string) url.Values {
	q := url.Values{}
	q.Set("repo", fullName)
	if credential != "" {
		q.Set("token", credential)
	}
	return q
}

const (
	timeoutMessage      = "request timeout - please try again"
	multiTimeoutMessage = "request timeout - multi-project analysis is taking longer than expected. Please try again with fewer repositories or a simpler question"
)

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, timeout time.Duration, onTimeout string) error {
	logger := ctxlog.From(ctx)

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return goerr.Wrap(err, "failed to marshal request body", goerr.T(types.ErrTagUnknown))
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return goerr.Wrap(err, "failed to create request", goerr.T(types.ErrTagUnknown), goerr.V("path", path))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	logger.Debug("Analysis server request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return goerr.Wrap(err, onTimeout, goerr.T(types.ErrTagTimeout), goerr.V("path", path))
		}
		return goerr.Wrap(err, "an unexpected error occurred", goerr.T(types.ErrTagUnknown), goerr.V("path", path))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return goerr.Wrap(err, onTimeout, goerr.T(types.ErrTagTimeout), goerr.V("path", path))
		}
		return goerr.Wrap(err, "failed to read response body", goerr.T(types.ErrTagUnknown), goerr.V("path", path))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, raw, path)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return goerr.Wrap(err, "failed to decode response", goerr.T(types.ErrTagUnknown), goerr.V("path", path))
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// statusError classifies by status code. A message from the server body
// replaces the default message but never the classification.
func statusError(status int, raw []byte, path string) error {
	var tag goerr.Option
	var msg string

	switch status {
	case http.StatusNotFound:
		tag, msg = goerr.T(types.ErrTagNotFound), "repository not found or not accessible"
	case http.StatusUnauthorized:
		tag, msg = goerr.T(types.ErrTagUnauthorized), "invalid or expired GitHub token"
	case http.StatusForbidden, http.StatusTooManyRequests:
		tag, msg = goerr.T(types.ErrTagRateLimited), "rate limit exceeded - please try again later"
	case http.StatusServiceUnavailable:
		tag, msg = goerr.T(types.ErrTagServiceUnavailable), "AI service not available - please check server configuration"
	case http.StatusGatewayTimeout:
		tag, msg = goerr.T(types.ErrTagTimeout), timeoutMessage
	default:
		tag, msg = goerr.T(types.ErrTagUnknown), "an unexpected error occurred"
	}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		msg = body.Error
	}

	return goerr.New(msg,
		tag,
		goerr.V("status", status),
		goerr.V("path", path))
}
