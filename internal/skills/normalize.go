package skills

import (
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

var defaultLexicon = DefaultLexicon()

// NormalizeName maps a skill name to its canonical spelling. Lexicon names
// and aliases resolve to the lexicon entry; other all-lowercase or all-caps
// single words are capitalized, and mixed-case names are kept as written.
func NormalizeName(skillName string) string {
	normalized := strings.Join(strings.Fields(skillName), " ")
	if normalized == "" {
		return ""
	}

	if entry, ok := defaultLexicon.Lookup(normalized); ok {
		return entry.Name
	}

	if strings.Contains(normalized, " ") {
		return normalized
	}

	lower := strings.ToLower(normalized)
	upper := strings.ToUpper(normalized)
	if normalized == lower || (normalized == upper && len(normalized) > 4) {
		return strings.ToUpper(normalized[:1]) + lower[1:]
	}
	return normalized
}

// Key returns the comparison key for a skill name: the lowercased canonical spelling.
func Key(skillName string) string {
	return strings.ToLower(NormalizeName(skillName))
}

// Categorize returns the lexicon category for a skill, defaulting to technical.
func Categorize(skillName string) types.SkillCategory {
	if entry, ok := defaultLexicon.Lookup(skillName); ok {
		return entry.Category
	}
	return types.CategoryTechnical
}

// NormalizeSignals canonicalizes names, fills missing categories, clamps
// confidences, and deduplicates by keeping the maximum confidence.
func NormalizeSignals(signals []types.SkillSignal) []types.SkillSignal {
	normalized := make([]types.SkillSignal, 0, len(signals))
	for _, s := range signals {
		name := NormalizeName(s.Name)
		if name == "" {
			continue
		}
		category := s.Category
		if category == "" {
			category = Categorize(name)
		}
		normalized = append(normalized, types.SkillSignal{
			Name:       name,
			Confidence: roundConfidence(s.Confidence),
			Category:   category,
		})
	}
	return Merge(normalized)
}
