// Package github reads catalog documents from a GitHub repository.
//
// The manifest and every document it lists are files in the repository,
// addressed relative to a directory inside it and read at a fixed ref
// (branch, tag or commit; empty means the default branch).
//
// # Authentication
//
// A personal access token is optional for public repositories. Without one
// GitHub allows 60 requests per hour; with one, 5,000. The client throttles
// proactively according to which applies.
//
// # Rate Limiting
//
// Two strategies are combined:
//
//   - Proactive: a token bucket keeps the request rate below the hourly quota.
//   - Reactive: X-RateLimit-* headers are tracked and requests wait for the
//     reset when the remaining quota drops below a buffer.
//
// Rate limit failures wrap domain.ErrRateLimited and missing files wrap
// domain.ErrNotFound.
package github
