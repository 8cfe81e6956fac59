// Package fetch retrieves resume documents by reference, either an http(s)
// URL or an s3://bucket/key object, retrying transient failures with
// exponential backoff.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// DefaultTimeout is the default per-request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ResumeAnalyzer/1.0)"

// Error represents a failed fetch. Temporary errors were retried and may
// succeed later; the rest will not.
type Error struct {
	Ref        string
	Message    string
	StatusCode int
	Temporary  bool
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.Ref, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.Ref, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures fetching and retries.
type Options struct {
	Timeout         time.Duration
	UserAgent       string
	MaxBytes        int64
	MaxTries        uint
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsed      time.Duration

	// AllowedHosts restricts http(s) references to these hosts. Entries
	// starting with "." also match subdomains. Empty allows any host.
	AllowedHosts []string
	// AllowedBuckets restricts s3 references to these buckets. Empty allows any bucket.
	AllowedBuckets []string
	// AllowPrivateNetworks permits HTTP connections to loopback, private and
	// link-local addresses.
	AllowPrivateNetworks bool
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:         DefaultTimeout,
		UserAgent:       DefaultUserAgent,
		MaxBytes:        10 << 20,
		MaxTries:        3,
		InitialInterval: time.Second,
		MaxInterval:     10 * time.Second,
		MaxElapsed:      30 * time.Second,
	}
}

// Source fetches a document by reference.
type Source interface {
	Fetch(ctx context.Context, ref string) (*types.ResumeDocument, error)
}

// IsRetryableStatus reports whether an HTTP status is worth retrying.
func IsRetryableStatus(code int) bool {
	return code == http.StatusRequestTimeout || code == http.StatusTooManyRequests || code >= 500
}

// Router dispatches references to a Source by URL scheme.
type Router struct {
	HTTP Source
	S3   Source
}

// Fetch implements Source.
func (r *Router) Fetch(ctx context.Context, ref string) (*types.ResumeDocument, error) {
	parsed, err := url.Parse(ref)
	if err != nil {
		return nil, &Error{Ref: ref, Message: "invalid reference", Cause: err}
	}
	var src Source
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		src = r.HTTP
	case "s3":
		src = r.S3
	default:
		return nil, &Error{Ref: ref, Message: "unsupported reference scheme (expected http, https or s3)"}
	}
	if src == nil {
		return nil, &Error{Ref: ref, Message: fmt.Sprintf("%s source is not configured", parsed.Scheme)}
	}
	return src.Fetch(ctx, ref)
}

func withRetry[T any](ctx context.Context, opts *Options, op backoff.Operation[T]) (T, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = opts.InitialInterval
	bo.MaxInterval = opts.MaxInterval

	return backoff.Retry(ctx, op,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(opts.MaxTries),
		backoff.WithMaxElapsedTime(opts.MaxElapsed))
}

func normalizeOptions(opts *Options) *Options {
	defaults := DefaultOptions()
	if opts == nil {
		return defaults
	}
	out := *opts
	if out.Timeout <= 0 {
		out.Timeout = defaults.Timeout
	}
	if out.UserAgent == "" {
		out.UserAgent = defaults.UserAgent
	}
	if out.MaxBytes <= 0 {
		out.MaxBytes = defaults.MaxBytes
	}
	if out.MaxTries == 0 {
		out.MaxTries = defaults.MaxTries
	}
	if out.InitialInterval <= 0 {
		out.InitialInterval = defaults.InitialInterval
	}
	if out.MaxInterval <= 0 {
		out.MaxInterval = defaults.MaxInterval
	}
	if out.MaxElapsed <= 0 {
		out.MaxElapsed = defaults.MaxElapsed
	}
	return &out
}
