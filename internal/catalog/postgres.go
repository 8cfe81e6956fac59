package catalog

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-analyzer/internal/db"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Postgres serves the catalog from the job_postings table. Postings are
// listed most recent first.
type Postgres struct {
	store *db.DB
}

// NewPostgres wraps a connected store.
func NewPostgres(store *db.DB) *Postgres {
	return &Postgres{store: store}
}

// ListPostings returns postings passing filter.
func (p *Postgres) ListPostings(ctx context.Context, filter Filter) ([]types.JobPosting, error) {
	rows, err := p.store.ListJobPostings(ctx, db.JobPostingFilters{
		Industry: filter.Industry,
		Remote:   filter.Remote,
	})
	if err != nil {
		return nil, err
	}
	postings := make([]types.JobPosting, 0, len(rows))
	for _, row := range rows {
		postings = append(postings, row.JobPosting)
	}
	return postings, nil
}

// GetPosting returns the posting with id or ErrNotFound.
func (p *Postgres) GetPosting(ctx context.Context, id string) (*types.JobPosting, error) {
	row, err := p.store.GetJobPosting(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &row.JobPosting, nil
}

// Import upserts postings and returns how many rows actually changed.
func (p *Postgres) Import(ctx context.Context, postings []types.JobPosting) (int, error) {
	changed := 0
	for i := range postings {
		written, err := p.store.UpsertJobPosting(ctx, &postings[i])
		if err != nil {
			return changed, err
		}
		if written {
			changed++
		}
	}
	return changed, nil
}
