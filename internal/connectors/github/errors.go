package github

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/grimoire/internal/core/domain"
)

var (
	// ErrInvalidRepo indicates the repository is not in "owner/name" form.
	ErrInvalidRepo = errors.New("github: repository must be owner/name")

	// ErrNotAFile indicates a catalog path resolved to a directory.
	ErrNotAFile = errors.New("github: path is a directory, not a file")
)

// RateLimitError reports an exhausted quota. It matches domain.ErrRateLimited.
type RateLimitError struct {
	RateState
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("github: rate limited until %s (%d of %d left)",
		e.ResetAt.Format(time.RFC3339), e.Remaining, e.Limit)
}

func (e *RateLimitError) Unwrap() error { return domain.ErrRateLimited }

// StatusError is a non-success API response for one catalog path.
// 404 matches domain.ErrNotFound, anything else domain.ErrSourceUnavailable.
type StatusError struct {
	Path    string
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("github: %s: %d %s", e.Path, e.Status, e.Message)
}

func (e *StatusError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return domain.ErrNotFound
	}
	return domain.ErrSourceUnavailable
}

// translate maps go-github failures for path onto the errors above.
func translate(err error, path string, limiter *RateLimiter) error {
	var (
		rateErr  *gh.RateLimitError
		abuseErr *gh.AbuseRateLimitError
		respErr  *gh.ErrorResponse
	)
	switch {
	case errors.As(err, &rateErr):
		return &RateLimitError{RateState: limiter.State()}
	case errors.As(err, &abuseErr):
		state := limiter.State()
		if abuseErr.RetryAfter != nil {
			state.ResetAt = time.Now().Add(*abuseErr.RetryAfter)
		}
		return &RateLimitError{RateState: state}
	case errors.As(err, &respErr) && respErr.Response != nil:
		return &StatusError{Path: path, Status: respErr.Response.StatusCode, Message: respErr.Message}
	default:
		return fmt.Errorf("github: %s: %w: %w", path, domain.ErrSourceUnavailable, err)
	}
}
