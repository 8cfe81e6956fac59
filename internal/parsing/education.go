package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// degreePatterns are evaluated per line from the highest level down; the
// first hit decides the line's level.
var degreePatterns = []struct {
	level types.EducationLevel
	re    *regexp.Regexp
}{
	{types.EducationDoctorate, regexp.MustCompile(`(?i)\b(?:ph\.?\s?d|doctorate|doctor of|d\.phil)\b`)},
	{types.EducationMaster, regexp.MustCompile(`\b(?i:master(?:'s|s)?|mba|m\.sc|m\.eng)\b|\b(?:MS|MSc)\b|\bM\.[SA]\.`)},
	{types.EducationBachelor, regexp.MustCompile(`\b(?i:bachelor(?:'s|s)?|b\.sc|b\.eng|undergraduate degree)\b|\b(?:BS|BSc|BA|BEng)\b|\bB\.[SA]\.`)},
	{types.EducationAssociate, regexp.MustCompile(`\b(?i:associate(?:'s)?\s+(?:degree|of))\b|\bA\.[AS]\.`)},
	{types.EducationHighSchool, regexp.MustCompile(`(?i)\b(?:high school|secondary school|ged)\b`)},
	{types.EducationCertificate, regexp.MustCompile(`(?i)\b(?:certificate|certification|certified|diploma|bootcamp)\b`)},
}

// nonDegreeRegex removes titles that contain degree words.
var nonDegreeRegex = regexp.MustCompile(`(?i)\b(?:scrum|quiz|web)\s+master\b|\bmaster\s+(?:data|class|plan)\b`)

var (
	fieldInRegex = regexp.MustCompile(`\b[iI]n\s+([A-Za-z][A-Za-z&/ ]*[A-Za-z])`)
	fieldOfRegex = regexp.MustCompile(`\b[oO]f\s+([A-Za-z][A-Za-z&/ ]*[A-Za-z])`)
)

// fieldStops end a field of study at the institution.
var fieldStops = []string{" from ", " at ", " with ", " and minor", " minor "}

// lineEducationLevel returns the highest degree named on a line.
func lineEducationLevel(line string) (types.EducationLevel, bool) {
	line = nonDegreeRegex.ReplaceAllString(line, "")
	for _, p := range degreePatterns {
		if p.re.MatchString(line) {
			return p.level, true
		}
	}
	return types.EducationNone, false
}

// ExtractEducation returns the highest education level across lines and
// the field of study named on that level's first line.
func ExtractEducation(lines []string) (types.EducationLevel, string) {
	best := types.EducationNone
	bestLine := ""
	for _, line := range lines {
		level, ok := lineEducationLevel(line)
		if !ok || level <= best {
			continue
		}
		best = level
		bestLine = line
	}
	if bestLine == "" {
		return types.EducationNone, ""
	}
	return best, FieldOfStudy(bestLine)
}

// FieldOfStudy extracts the discipline from a degree line, e.g.
// "Bachelor of Science in Computer Science, State University" yields
// "Computer Science".
func FieldOfStudy(line string) string {
	for _, re := range []*regexp.Regexp{fieldInRegex, fieldOfRegex} {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		field := m[1]
		lower := strings.ToLower(field)
		for _, stop := range fieldStops {
			if i := strings.Index(lower, stop); i >= 0 {
				field = field[:i]
				lower = lower[:i]
			}
		}
		field = strings.Join(strings.Fields(field), " ")
		if field == "" || isDegreeWord(field) {
			continue
		}
		return field
	}
	return ""
}

// isDegreeWord rejects captures such as "Science" in "Bachelor of Science".
func isDegreeWord(field string) bool {
	switch strings.ToLower(field) {
	case "science", "arts", "applied science", "fine arts":
		return true
	}
	return false
}
