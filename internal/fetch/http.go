package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// HTTPSource downloads documents over http(s).
type HTTPSource struct {
	client *http.Client
	opts   *Options
	logger *zap.Logger
}

// NewHTTPSource creates an HTTP source. Zero option fields take defaults.
func NewHTTPSource(opts *Options, logger *zap.Logger) *HTTPSource {
	opts = normalizeOptions(opts)
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPSource{
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: newTransport(opts.Timeout, opts.AllowPrivateNetworks),
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return errors.New("stopped after 10 redirects")
				}
				if !allowedName(req.URL.Hostname(), opts.AllowedHosts) {
					return fmt.Errorf("%w: redirect to host %s", ErrForbiddenDestination, req.URL.Hostname())
				}
				return nil
			},
		},
		opts:   opts,
		logger: logger,
	}
}

// Fetch downloads ref. Bodies are read up to MaxBytes+1 so that the
// extractor can reject oversized documents.
func (s *HTTPSource) Fetch(ctx context.Context, ref string) (*types.ResumeDocument, error) {
	parsed, err := url.Parse(ref)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, &Error{Ref: ref, Message: "invalid URL", Cause: err}
	}
	if !allowedName(parsed.Hostname(), s.opts.AllowedHosts) {
		return nil, &Error{Ref: ref, Message: "host not allowed", Cause: ErrForbiddenDestination}
	}

	attempt := 0
	operation := func() (*types.ResumeDocument, error) {
		attempt++
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
		if err != nil {
			return nil, backoff.Permanent(&Error{Ref: ref, Message: "failed to create request", Cause: err})
		}
		req.Header.Set("User-Agent", s.opts.UserAgent)

		resp, err := s.client.Do(req)
		if errors.Is(err, ErrForbiddenDestination) {
			return nil, backoff.Permanent(&Error{Ref: ref, Message: "destination not allowed", Cause: err})
		}
		if err != nil {
			s.logger.Debug("fetch attempt failed", zap.String("ref", ref), zap.Int("attempt", attempt), zap.Error(err))
			return nil, &Error{Ref: ref, Message: "HTTP request failed", Temporary: true, Cause: err}
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			fetchErr := &Error{
				Ref:        ref,
				Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode),
				StatusCode: resp.StatusCode,
				Temporary:  IsRetryableStatus(resp.StatusCode),
			}
			if !fetchErr.Temporary {
				return nil, backoff.Permanent(fetchErr)
			}
			s.logger.Debug("fetch attempt failed", zap.String("ref", ref), zap.Int("attempt", attempt), zap.Int("status", resp.StatusCode))
			return nil, fetchErr
		}

		data, err := io.ReadAll(io.LimitReader(resp.Body, s.opts.MaxBytes+1))
		if err != nil {
			return nil, &Error{Ref: ref, Message: "failed to read response body", Temporary: true, Cause: err}
		}

		filename := path.Base(parsed.Path)
		return &types.ResumeDocument{
			Data:     data,
			MIMEType: ingestion.ResolveMIMEType(resp.Header.Get("Content-Type"), filename),
			Filename: filename,
		}, nil
	}

	doc, err := withRetry(ctx, s.opts, operation)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("fetched document", zap.String("ref", ref), zap.Int("attempts", attempt), zap.Int64("size_bytes", doc.Size()))
	return doc, nil
}
