package ranking

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// hoursPerYear annualizes hourly rates.
const hoursPerYear = 2080

var (
	salaryAmountRegex = regexp.MustCompile(`(\d{1,3}(?:,\d{3})+|\d+(?:\.\d+)?)\s*([kK])?`)
	hourlyRegex       = regexp.MustCompile(`(?i)(?:/\s*(?:hr|hour)\b|per\s+hour|hourly)`)
)

// ParseSalary reads the lower bound of a free-text salary such as
// "$120k - $150k", "90,000-110,000 USD" or "$45/hr". Text without a
// number is unparseable.
func ParseSalary(text string) (int, bool) {
	m := salaryAmountRegex.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil || amount <= 0 {
		return 0, false
	}
	if m[2] != "" {
		amount *= 1000
	}
	if hourlyRegex.MatchString(text) {
		amount *= hoursPerYear
	}
	return int(amount), true
}

// SalaryFloor returns the posting's minimum salary, preferring the
// structured field over the free-text range.
func SalaryFloor(posting *types.JobPosting) (int, bool) {
	if posting == nil {
		return 0, false
	}
	if posting.SalaryMin != nil && *posting.SalaryMin > 0 {
		return *posting.SalaryMin, true
	}
	return ParseSalary(posting.SalaryRange)
}
