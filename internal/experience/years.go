package experience

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var yearsPhraseRegex = regexp.MustCompile(`(?i)\b(\d{1,2}(?:\.\d)?)\s*\+?\s*(?:years?|yrs?)\.?\s+(?:of\s+)?(?:professional\s+|industry\s+|relevant\s+|work\s+|hands-on\s+)?experience\b`)

// Summary is the outcome of scanning an experience section.
type Summary struct {
	Years     float64
	Intervals []Interval
	// FromPhrase is set when Years came from an "N years of experience" phrase.
	FromPhrase bool
}

// Found reports whether any experience evidence was located.
func (s Summary) Found() bool {
	return len(s.Intervals) > 0 || s.FromPhrase
}

// Years sums the non-overlapping duration of every date range in lines.
// When no range parses, the largest "N years of experience" phrase in
// fallback is used instead.
func Years(lines []string, fallback string, asOf time.Time) Summary {
	ref := MonthOf(asOf)
	var intervals []Interval
	for _, line := range lines {
		intervals = append(intervals, ParseRanges(line, ref)...)
	}
	if len(intervals) > 0 {
		merged := Union(intervals)
		return Summary{Years: monthsToYears(TotalMonths(merged)), Intervals: merged}
	}
	if years, ok := YearsFromPhrase(fallback); ok {
		return Summary{Years: years, FromPhrase: true}
	}
	return Summary{}
}

// YearsFromPhrase returns the largest "N+ years of experience" value in text.
func YearsFromPhrase(text string) (float64, bool) {
	best := 0.0
	found := false
	for _, m := range yearsPhraseRegex.FindAllStringSubmatch(text, -1) {
		v, err := strconv.ParseFloat(strings.TrimSpace(m[1]), 64)
		if err != nil || v <= 0 || v > 60 {
			continue
		}
		if v > best {
			best = v
		}
		found = true
	}
	return best, found
}

func monthsToYears(months int) float64 {
	return math.Round(float64(months)/12*10) / 10
}
