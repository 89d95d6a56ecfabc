package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/grimoire/internal/logger"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Client wraps the go-github client with rate limiting.
type Client struct {
	gh          *gh.Client
	rateLimiter *RateLimiter
}

// NewClient creates a GitHub API client. An empty token uses anonymous
// access with the lower quota.
func NewClient(ctx context.Context, token string) *Client {
	if token == "" {
		return NewClientWithHTTPClient(&http.Client{Timeout: DefaultTimeout}, false)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout
	return NewClientWithHTTPClient(tc, true)
}

// NewClientWithHTTPClient creates a GitHub client with a custom http.Client.
func NewClientWithHTTPClient(httpClient *http.Client, authenticated bool) *Client {
	return &Client{
		gh:          gh.NewClient(httpClient),
		rateLimiter: NewRateLimiter(authenticated),
	}
}

// SetBaseURL points the client at another API root, such as GitHub
// Enterprise or a test server.
func (c *Client) SetBaseURL(raw string) error {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse base URL: %w", err)
	}
	c.gh.BaseURL = u
	return nil
}

// GetFile returns the decoded content of one file at ref.
// Files over 1MB are downloaded through the raw URL.
func (c *Client) GetFile(ctx context.Context, owner, repo, filePath, ref string) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &gh.RepositoryContentGetOptions{Ref: ref}
	content, _, resp, err := c.gh.Repositories.GetContents(ctx, owner, repo, filePath, opts)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, translate(err, filePath, c.rateLimiter)
	}
	if content == nil {
		return nil, fmt.Errorf("%s: %w", filePath, ErrNotAFile)
	}

	if content.GetEncoding() == "none" {
		logger.Debug("GitHub: %s exceeds the contents API size, downloading", filePath)
		return c.download(ctx, owner, repo, filePath, ref)
	}
	decoded, err := content.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filePath, err)
	}
	return []byte(decoded), nil
}

func (c *Client) download(ctx context.Context, owner, repo, filePath, ref string) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &gh.RepositoryContentGetOptions{Ref: ref}
	rc, resp, err := c.gh.Repositories.DownloadContents(ctx, owner, repo, filePath, opts)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, translate(err, filePath, c.rateLimiter)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filePath, err)
	}
	return data, nil
}

func (c *Client) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.rateLimiter.UpdateFromResponse(resp.Response)
}
