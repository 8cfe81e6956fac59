// Package skills detects skills in resume text using a curated lexicon.
package skills

import (
	"math"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	// Confidence tiers by match exactness.
	confidenceExact = 0.9  // canonical phrase
	confidenceAlias = 0.7  // alternate spelling or abbreviation
	confidenceStem  = 0.55 // same word stems, soft and domain skills only

	// Each repeat beyond the first adds repeatBonus, capped at maxRepeatBonus.
	repeatBonus    = 0.02
	maxRepeatBonus = 0.1
)

// Extractor scans text for lexicon skills.
type Extractor struct {
	lexicon *Lexicon
}

// NewExtractor creates an extractor. A nil lexicon selects DefaultLexicon.
func NewExtractor(lexicon *Lexicon) *Extractor {
	if lexicon == nil {
		lexicon = DefaultLexicon()
	}
	return &Extractor{lexicon: lexicon}
}

// Lexicon returns the extractor's lexicon.
func (e *Extractor) Lexicon() *Lexicon {
	return e.lexicon
}

// Extract returns one signal per detected skill, sorted by descending
// confidence then name. The result depends only on text.
func (e *Extractor) Extract(text string) []types.SkillSignal {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	skillMap := make(map[string]*types.SkillSignal)
	for i, entry := range e.lexicon.entries {
		canonicalKey := lowerKey
		if entry.CaseSensitive {
			canonicalKey = rawKey
		}
		exact := countPhrase(tokens, e.lexicon.phrases[i], canonicalKey)
		alias := 0
		for _, phrase := range e.lexicon.aliases[i] {
			alias += countPhrase(tokens, phrase, lowerKey)
		}

		var confidence float64
		switch {
		case exact > 0:
			confidence = confidenceExact + frequencyBonus(exact+alias)
		case alias > 0:
			confidence = confidenceAlias + frequencyBonus(alias)
		case entry.Category != types.CategoryTechnical && !entry.CaseSensitive:
			stemmed := countPhrase(tokens, e.lexicon.phrases[i], stemKey)
			if stemmed == 0 {
				continue
			}
			confidence = confidenceStem + frequencyBonus(stemmed)
		default:
			continue
		}

		addOrUpdateSkill(skillMap, types.SkillSignal{
			Name:       entry.Name,
			Confidence: roundConfidence(confidence),
			Category:   entry.Category,
		})
	}

	return collect(skillMap)
}

// frequencyBonus rewards repeated mentions: occurrences beyond the first add
// repeatBonus each, up to maxRepeatBonus.
func frequencyBonus(occurrences int) float64 {
	if occurrences <= 1 {
		return 0
	}
	return math.Min(maxRepeatBonus, repeatBonus*float64(occurrences-1))
}

func roundConfidence(c float64) float64 {
	return math.Round(math.Min(1, math.Max(0, c))*1000) / 1000
}

// Merge combines signal sets, keeping the maximum confidence per skill name.
func Merge(groups ...[]types.SkillSignal) []types.SkillSignal {
	skillMap := make(map[string]*types.SkillSignal)
	for _, group := range groups {
		for _, s := range group {
			if strings.TrimSpace(s.Name) == "" {
				continue
			}
			addOrUpdateSkill(skillMap, s)
		}
	}
	return collect(skillMap)
}

// addOrUpdateSkill adds a signal or raises an existing one to the higher confidence.
func addOrUpdateSkill(skillMap map[string]*types.SkillSignal, signal types.SkillSignal) {
	key := strings.ToLower(signal.Name)
	if existing, ok := skillMap[key]; ok {
		if signal.Confidence > existing.Confidence {
			existing.Confidence = signal.Confidence
		}
		return
	}
	s := signal
	skillMap[key] = &s
}

func collect(skillMap map[string]*types.SkillSignal) []types.SkillSignal {
	if len(skillMap) == 0 {
		return nil
	}
	out := make([]types.SkillSignal, 0, len(skillMap))
	for _, s := range skillMap {
		out = append(out, *s)
	}
	types.SortSkills(out)
	return out
}
