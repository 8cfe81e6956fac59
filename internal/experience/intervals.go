package experience

import (
	"sort"
	"strings"
)

// Interval is a half-open span of months [Start, End).
type Interval struct {
	Start Month
	End   Month
}

// Months returns the interval length.
func (i Interval) Months() int {
	return int(i.End - i.Start)
}

// ParseRanges finds every date range in text. Month-precise end dates are
// inclusive, year-only end dates are exclusive, and "Present" covers asOf.
// Ends are clamped to asOf; inverted or empty ranges are skipped.
func ParseRanges(text string, asOf Month) []Interval {
	var intervals []Interval
	for _, m := range dateRangeRegex.FindAllStringSubmatch(text, -1) {
		start, err := parseDate(m[1])
		if err != nil {
			continue
		}
		var end Month
		if presentRegex.MatchString(strings.TrimSpace(m[2])) {
			end = asOf + 1
		} else {
			e, err := parseDate(m[2])
			if err != nil {
				continue
			}
			end = e.month
			if !e.yearOnly {
				end++
			}
		}
		end = min(end, asOf+1)
		if start.month >= end {
			continue
		}
		intervals = append(intervals, Interval{Start: start.month, End: end})
	}
	return intervals
}

// Union merges overlapping and adjacent intervals, returning them sorted by start.
func Union(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}
	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	merged := []Interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if iv.Start <= last.End {
			last.End = max(last.End, iv.End)
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// TotalMonths sums the non-overlapping duration of intervals.
func TotalMonths(intervals []Interval) int {
	total := 0
	for _, iv := range Union(intervals) {
		total += iv.Months()
	}
	return total
}

// StripRanges removes every date range from text.
func StripRanges(text string) string {
	return strings.TrimSpace(dateRangeRegex.ReplaceAllString(text, ""))
}
