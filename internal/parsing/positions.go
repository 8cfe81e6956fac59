package parsing

import (
	"strings"

	"github.com/jonathan/resume-analyzer/internal/experience"
)

// titleWords mark the job-title half of an experience heading line.
var titleWords = map[string]bool{
	"engineer": true, "developer": true, "manager": true, "analyst": true,
	"specialist": true, "consultant": true, "designer": true, "scientist": true,
	"architect": true, "director": true, "lead": true, "intern": true,
	"administrator": true, "coordinator": true, "officer": true, "associate": true,
	"assistant": true, "president": true, "head": true, "accountant": true,
	"nurse": true, "teacher": true, "representative": true, "executive": true,
	"programmer": true, "tester": true, "strategist": true, "recruiter": true,
	"technician": true, "founder": true, "cto": true, "ceo": true, "vp": true,
	"sre": true, "owner": true, "researcher": true, "instructor": true,
}

// headingSeparators split "Title at Company" style lines, tried in order.
var headingSeparators = []string{" at ", " @ ", " | ", " - ", " – ", " — ", ", "}

// maxHeadingWords bounds how long a title/company line may be.
const maxHeadingWords = 12

// Position is one title/company pair from an experience heading.
type Position struct {
	Title   string
	Company string
}

// ExtractPositions scans experience lines for "Title at Company" headings,
// in document order. Bullets and sentences are skipped.
func ExtractPositions(lines []string) []Position {
	var positions []Position
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "- ") {
			continue
		}
		line = strings.Trim(experience.StripRanges(line), " ,;|()-–—")
		if line == "" || len(strings.Fields(line)) > maxHeadingWords || strings.HasSuffix(line, ".") {
			continue
		}
		if pos, ok := splitHeading(line); ok {
			positions = append(positions, pos)
		}
	}
	return positions
}

func splitHeading(line string) (Position, bool) {
	for _, sep := range headingSeparators {
		left, right, found := strings.Cut(line, sep)
		if !found {
			continue
		}
		left, right = cleanPart(left), cleanPart(right)
		switch {
		case hasTitleWord(left):
			return Position{Title: left, Company: right}, true
		case hasTitleWord(right):
			return Position{Title: right, Company: left}, true
		}
	}
	if hasTitleWord(line) && len(strings.Fields(line)) <= 6 {
		return Position{Title: cleanPart(line)}, true
	}
	return Position{}, false
}

func cleanPart(s string) string {
	s = strings.Trim(s, " ,;|:()-–—")
	return strings.Join(strings.Fields(s), " ")
}

func hasTitleWord(s string) bool {
	for _, word := range strings.Fields(strings.ToLower(s)) {
		if titleWords[strings.Trim(word, ".,;:()/&")] {
			return true
		}
	}
	return false
}

// TitlesAndCompanies flattens positions into deduplicated title and
// company lists, preserving first-seen order.
func TitlesAndCompanies(positions []Position) (titles, companies []string) {
	titles = []string{}
	companies = []string{}
	seenTitles := make(map[string]bool)
	seenCompanies := make(map[string]bool)
	for _, p := range positions {
		if key := strings.ToLower(p.Title); p.Title != "" && !seenTitles[key] {
			seenTitles[key] = true
			titles = append(titles, p.Title)
		}
		if key := strings.ToLower(p.Company); p.Company != "" && !seenCompanies[key] {
			seenCompanies[key] = true
			companies = append(companies, p.Company)
		}
	}
	return titles, companies
}
