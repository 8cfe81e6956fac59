package catalog

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Static is an in-memory catalog. Postings are returned in load order.
type Static struct {
	postings []types.JobPosting
	byID     map[string]int
}

// NewStatic builds a catalog from postings. Duplicate IDs are rejected.
func NewStatic(postings []types.JobPosting) (*Static, error) {
	s := &Static{
		postings: make([]types.JobPosting, len(postings)),
		byID:     make(map[string]int, len(postings)),
	}
	copy(s.postings, postings)
	for i, p := range s.postings {
		if p.ID == "" {
			return nil, fmt.Errorf("posting %d has no id", i)
		}
		if _, dup := s.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate posting id %q", p.ID)
		}
		s.byID[p.ID] = i
	}
	return s, nil
}

// Len returns the number of postings.
func (s *Static) Len() int {
	return len(s.postings)
}

// ListPostings returns a copy of the postings passing filter.
func (s *Static) ListPostings(ctx context.Context, filter Filter) ([]types.JobPosting, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]types.JobPosting, 0, len(s.postings))
	for i := range s.postings {
		if filter.Matches(&s.postings[i]) {
			out = append(out, s.postings[i])
		}
	}
	return out, nil
}

// GetPosting returns the posting with id or ErrNotFound.
func (s *Static) GetPosting(ctx context.Context, id string) (*types.JobPosting, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	i, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	p := s.postings[i]
	return &p, nil
}
