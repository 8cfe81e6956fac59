package ingestion

import (
	"strings"
	"unicode"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// sectionHeaders maps normalized header text to its label.
var sectionHeaders = map[string]types.SectionLabel{
	"experience":                  types.SectionExperience,
	"work experience":             types.SectionExperience,
	"professional experience":     types.SectionExperience,
	"relevant experience":         types.SectionExperience,
	"employment":                  types.SectionExperience,
	"employment history":          types.SectionExperience,
	"work history":                types.SectionExperience,
	"career history":              types.SectionExperience,
	"education":                   types.SectionEducation,
	"academic background":         types.SectionEducation,
	"education and training":      types.SectionEducation,
	"academic qualifications":     types.SectionEducation,
	"skills":                      types.SectionSkills,
	"technical skills":            types.SectionSkills,
	"core competencies":           types.SectionSkills,
	"competencies":                types.SectionSkills,
	"key skills":                  types.SectionSkills,
	"skills and abilities":        types.SectionSkills,
	"technologies":                types.SectionSkills,
	"summary":                     types.SectionSummary,
	"professional summary":        types.SectionSummary,
	"career summary":              types.SectionSummary,
	"profile":                     types.SectionSummary,
	"professional profile":        types.SectionSummary,
	"objective":                   types.SectionSummary,
	"career objective":            types.SectionSummary,
	"about me":                    types.SectionSummary,
	"projects":                    types.SectionProjects,
	"personal projects":           types.SectionProjects,
	"key projects":                types.SectionProjects,
	"certifications":              types.SectionCertifications,
	"certificates":                types.SectionCertifications,
	"licenses and certifications": types.SectionCertifications,
}

// headerKeywords are matched as whole words in short emphasized lines that are
// not an exact entry in sectionHeaders, e.g. "WORK EXPERIENCE & INTERNSHIPS".
var headerKeywords = []struct {
	word  string
	label types.SectionLabel
}{
	{"experience", types.SectionExperience},
	{"education", types.SectionEducation},
	{"skills", types.SectionSkills},
	{"summary", types.SectionSummary},
}

const maxHeaderLength = 40

// DetectSections finds section headers and returns the labeled regions in
// document order. Each section runs until the next header or the end of text.
func DetectSections(lines []string) []types.Section {
	var sections []types.Section
	for i, line := range lines {
		label, ok := headerLabel(line)
		if !ok {
			continue
		}
		if n := len(sections); n > 0 {
			sections[n-1].EndLine = i
		}
		sections = append(sections, types.Section{Label: label, HeaderLine: i, EndLine: len(lines)})
	}
	return sections
}

// headerLabel reports whether the line is a section header.
func headerLabel(line string) (types.SectionLabel, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) > maxHeaderLength || isBulletLine(trimmed) {
		return "", false
	}
	endsWithColon := strings.HasSuffix(trimmed, ":")
	normalized := normalizeHeader(trimmed)
	if normalized == "" {
		return "", false
	}
	if label, ok := sectionHeaders[normalized]; ok {
		return label, true
	}

	// Looser match: short, digit-free, emphasized (all caps or trailing colon).
	if strings.ContainsFunc(normalized, unicode.IsDigit) || len(strings.Fields(normalized)) > 4 {
		return "", false
	}
	if !endsWithColon && !isUpper(trimmed) {
		return "", false
	}
	words := strings.Fields(normalized)
	for _, kw := range headerKeywords {
		for _, w := range words {
			if w == kw.word {
				return kw.label, true
			}
		}
	}
	return "", false
}

// normalizeHeader lowercases, strips decoration and trailing colons, and maps "&" to "and".
func normalizeHeader(s string) string {
	s = strings.ToLower(s)
	s = strings.TrimLeft(s, "#=-_*| ")
	s = strings.TrimRight(s, ":=-_*| ")
	s = strings.ReplaceAll(s, "&", " and ")
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			return r
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

func isUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}
