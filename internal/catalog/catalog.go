// Package catalog provides read access to job postings from static, file,
// SQLite and PostgreSQL backends, plus catalog-wide market trends.
package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// ErrNotFound is returned by GetPosting for an unknown ID.
var ErrNotFound = errors.New("job posting not found")

// Filter narrows ListPostings. Zero values match everything.
type Filter struct {
	Industry string
	Remote   *bool
}

// Matches reports whether a posting passes the filter. Industry compares
// case-insensitively.
func (f Filter) Matches(p *types.JobPosting) bool {
	if f.Industry != "" && !strings.EqualFold(strings.TrimSpace(f.Industry), strings.TrimSpace(p.Industry)) {
		return false
	}
	if f.Remote != nil && p.Remote != *f.Remote {
		return false
	}
	return true
}

// Catalog is a read-only source of job postings.
type Catalog interface {
	ListPostings(ctx context.Context, filter Filter) ([]types.JobPosting, error)
	GetPosting(ctx context.Context, id string) (*types.JobPosting, error)
}

// Importer writes postings into a persistent backend and reports how many
// rows changed.
type Importer interface {
	Import(ctx context.Context, postings []types.JobPosting) (int, error)
}
