// Package ranking orders and filters match results for presentation and
// builds recommendations from them.
package ranking

import (
	"math"
	"sort"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Options controls Rank.
type Options struct {
	SortKey types.SortKey
	// Remote keeps only postings whose remote flag equals *Remote when set.
	Remote   *bool
	MinScore float64
	// Limit truncates the output when positive.
	Limit int
}

// IndexPostings maps postings by ID.
func IndexPostings(postings []types.JobPosting) map[string]types.JobPosting {
	index := make(map[string]types.JobPosting, len(postings))
	for _, p := range postings {
		index[p.ID] = p
	}
	return index
}

// rankEntry pairs a result with the posting fields used for ordering.
type rankEntry struct {
	result    types.MatchResult
	posting   *types.JobPosting
	salary    int
	hasSalary bool
}

// Rank filters and sorts results into a new slice; results is not modified.
// Filtering happens before sorting. When a remote filter is set, results
// without a known posting are dropped.
func Rank(results []types.MatchResult, postings map[string]types.JobPosting, opts Options) []types.MatchResult {
	entries := make([]rankEntry, 0, len(results))
	for _, r := range results {
		var posting *types.JobPosting
		if p, ok := postings[r.JobID]; ok {
			posting = &p
		}
		if opts.Remote != nil && (posting == nil || posting.Remote != *opts.Remote) {
			continue
		}
		if r.MatchScore < opts.MinScore {
			continue
		}
		salary, hasSalary := SalaryFloor(posting)
		entries = append(entries, rankEntry{result: r, posting: posting, salary: salary, hasSalary: hasSalary})
	}

	sort.SliceStable(entries, less(entries, opts.SortKey))

	if opts.Limit > 0 && len(entries) > opts.Limit {
		entries = entries[:opts.Limit]
	}
	out := make([]types.MatchResult, len(entries))
	for i, e := range entries {
		out[i] = e.result
	}
	return out
}

func less(entries []rankEntry, key types.SortKey) func(i, j int) bool {
	return func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch key {
		case types.SortBySalary:
			if a.hasSalary != b.hasSalary {
				return a.hasSalary
			}
			if a.salary != b.salary {
				return a.salary > b.salary
			}
			if c := compareScore(a, b); c != 0 {
				return c > 0
			}
			if c := compareDate(a, b); c != 0 {
				return c > 0
			}
		case types.SortByDate:
			if c := compareDate(a, b); c != 0 {
				return c > 0
			}
			if c := compareScore(a, b); c != 0 {
				return c > 0
			}
		default:
			if c := compareScore(a, b); c != 0 {
				return c > 0
			}
			if c := compareDate(a, b); c != 0 {
				return c > 0
			}
		}
		return a.result.JobID < b.result.JobID
	}
}

// compareScore returns 1 if a scores higher than b, -1 if lower, 0 if equal.
func compareScore(a, b rankEntry) int {
	switch {
	case a.result.MatchScore > b.result.MatchScore:
		return 1
	case a.result.MatchScore < b.result.MatchScore:
		return -1
	}
	return 0
}

// compareDate returns 1 if a was posted more recently than b. Results
// without a posting or date sort as oldest.
func compareDate(a, b rankEntry) int {
	da, db := postedUnix(a), postedUnix(b)
	switch {
	case da > db:
		return 1
	case da < db:
		return -1
	}
	return 0
}

func postedUnix(e rankEntry) int64 {
	if e.posting == nil || e.posting.PostedDate.IsZero() {
		return math.MinInt64
	}
	return e.posting.PostedDate.Unix()
}

// SortPostings returns postings ordered for listing. Postings carry no
// match score, so SortByScore keeps catalog order.
func SortPostings(postings []types.JobPosting, key types.SortKey) []types.JobPosting {
	entries := make([]rankEntry, len(postings))
	for i := range postings {
		p := postings[i]
		salary, hasSalary := SalaryFloor(&p)
		entries[i] = rankEntry{result: types.MatchResult{JobID: p.ID}, posting: &p, salary: salary, hasSalary: hasSalary}
	}
	if key == types.SortBySalary || key == types.SortByDate {
		sort.SliceStable(entries, less(entries, key))
	}
	out := make([]types.JobPosting, len(entries))
	for i, e := range entries {
		out[i] = *e.posting
	}
	return out
}
