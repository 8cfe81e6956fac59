// Package experience derives years of experience and seniority from resume date ranges.
package experience

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Month is a calendar month counted from year 0 (year*12 + month-1).
type Month int

// MonthOf returns the Month containing t.
func MonthOf(t time.Time) Month {
	return Month(t.Year()*12 + int(t.Month()) - 1)
}

// Year returns the calendar year.
func (m Month) Year() int { return int(m) / 12 }

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year(), int(m)%12+1)
}

// DateError reports an unparseable date fragment.
type DateError struct {
	Input   string
	Message string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("date error: %q: %s", e.Input, e.Message)
}

const (
	minYear = 1950
	maxYear = 2100
)

var monthNames = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

const (
	monthPattern   = `(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?`
	datePattern    = `(?:` + monthPattern + `\s+\d{4}|\d{1,2}/\d{4}|\d{4}[-/]\d{1,2}|\d{4})`
	presentPattern = `(?:present|current|now|today|ongoing|date)`
)

var (
	dateRangeRegex = regexp.MustCompile(`(?i)\b(` + datePattern + `)\s*(?:-|–|—|to|until|through)\s*(` + datePattern + `|` + presentPattern + `)\b`)
	presentRegex   = regexp.MustCompile(`(?i)^` + presentPattern + `$`)
	monthYearRegex = regexp.MustCompile(`(?i)^(` + monthPattern + `)\s+(\d{4})$`)
	numericMYRegex = regexp.MustCompile(`^(\d{1,2})/(\d{4})$`)
	numericYMRegex = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})$`)
	yearRegex      = regexp.MustCompile(`^(\d{4})$`)
)

// endpoint is one side of a range. yearOnly marks dates without a month.
type endpoint struct {
	month    Month
	yearOnly bool
}

// parseDate parses one side of a date range.
func parseDate(s string) (endpoint, error) {
	s = strings.TrimSpace(s)
	if m := monthYearRegex.FindStringSubmatch(s); m != nil {
		month := monthNames[strings.ToLower(m[1][:3])]
		year, _ := strconv.Atoi(m[2])
		return newEndpoint(s, year, month, false)
	}
	if m := numericMYRegex.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		return newEndpoint(s, year, month, false)
	}
	if m := numericYMRegex.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		return newEndpoint(s, year, month, false)
	}
	if m := yearRegex.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		return newEndpoint(s, year, 1, true)
	}
	return endpoint{}, &DateError{Input: s, Message: "unrecognized date format"}
}

func newEndpoint(input string, year, month int, yearOnly bool) (endpoint, error) {
	if month < 1 || month > 12 {
		return endpoint{}, &DateError{Input: input, Message: "month out of range"}
	}
	if year < minYear || year > maxYear {
		return endpoint{}, &DateError{Input: input, Message: "year out of range"}
	}
	return endpoint{month: Month(year*12 + month - 1), yearOnly: yearOnly}, nil
}
