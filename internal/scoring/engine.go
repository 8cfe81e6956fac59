// Package scoring converts a CandidateProfile into calibrated 0-100 sub-scores,
// an overall score and rule-based feedback.
package scoring

import (
	"math"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Engine scores profiles. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	params Params
	rules  []Rule
}

// NewEngine creates an Engine. A nil rules slice selects DefaultRules.
func NewEngine(params Params, rules []Rule) *Engine {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Engine{params: params, rules: rules}
}

// Params returns the engine calibration.
func (e *Engine) Params() Params {
	return e.params
}

// Score computes the AnalysisResult for a profile. It never fails; a nil or
// empty profile scores from the defaults.
func (e *Engine) Score(profile *types.CandidateProfile) types.AnalysisResult {
	if profile == nil {
		profile = &types.CandidateProfile{}
	}

	facts := Facts{
		Profile:         profile,
		TechnicalCount:  countTechnical(profile.Skills),
		SoftCount:       len(profile.SkillsByCategory(types.CategorySoftSkill)),
		SkillsScore:     SkillsScore(e.params, profile.Skills),
		ExperienceScore: ExperienceScore(e.params, profile.YearsOfExperience, profile.Industry),
		EducationScore:  educationScore(e.params, profile.EducationLevel, profile.FieldOfStudy, profile.Industry),
	}
	facts.OverallScore = OverallScore(e.params, facts.SkillsScore, facts.ExperienceScore, facts.EducationScore)

	strengths, weaknesses, suggestions := Evaluate(e.rules, facts)
	if e.params.MaxSuggestions > 0 && len(suggestions) > e.params.MaxSuggestions {
		suggestions = suggestions[:e.params.MaxSuggestions]
	}

	var warnings []string
	if len(profile.Warnings) > 0 {
		warnings = append([]string(nil), profile.Warnings...)
	}

	return types.AnalysisResult{
		OverallScore:    facts.OverallScore,
		SkillsScore:     facts.SkillsScore,
		ExperienceScore: facts.ExperienceScore,
		EducationScore:  facts.EducationScore,
		Strengths:       strengths,
		Weaknesses:      weaknesses,
		Suggestions:     suggestions,
		LowConfidence:   profile.LowConfidence,
		Warnings:        warnings,
	}
}

// SkillsScore weights mean technical and soft confidences, scales to
// 0-100 and penalizes profiles with fewer than MinSkillCount skills.
// Domain skills count toward the technical share.
func SkillsScore(p Params, skills []types.SkillSignal) int {
	if len(skills) == 0 {
		return clampScore(p.EmptySkillsScore)
	}

	var techSum, softSum float64
	var techN, softN int
	for _, s := range skills {
		if s.Category == types.CategorySoftSkill {
			softSum += s.Confidence
			softN++
			continue
		}
		techSum += s.Confidence
		techN++
	}

	score := 100 * (p.TechnicalWeight*mean(techSum, techN) + p.SoftWeight*mean(softSum, softN))
	if n := len(skills); n < p.MinSkillCount {
		score *= float64(n) / float64(p.MinSkillCount)
	}
	return clampScore(int(math.Round(score)))
}

// ExperienceScore rises linearly to TargetScore at the industry's target
// years, then with diminishing slope to 100 at SaturationYears.
func ExperienceScore(p Params, years float64, industry string) int {
	if years <= 0 {
		return 0
	}
	target := p.targetYears(industry)
	saturation := math.Max(p.SaturationYears, target)

	var score float64
	switch {
	case years >= saturation:
		score = 100
	case years <= target:
		score = p.TargetScore * years / target
	default:
		score = p.TargetScore + (100-p.TargetScore)*(years-target)/(saturation-target)
	}
	return clampScore(int(math.Round(score)))
}

// EducationScore scores an education level and field of study for an industry.
func EducationScore(p Params, level types.EducationLevel, field, industry string) int {
	return educationScore(p, level, field, industry)
}

// OverallScore combines the three sub-scores with the configured weights.
func OverallScore(p Params, skills, experience, education int) int {
	total := p.SkillsWeight*float64(skills) +
		p.ExperienceWeight*float64(experience) +
		p.EducationWeight*float64(education)
	return clampScore(int(math.Round(total)))
}

func countTechnical(skills []types.SkillSignal) int {
	n := 0
	for _, s := range skills {
		if s.Category != types.CategorySoftSkill {
			n++
		}
	}
	return n
}

func mean(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func clampScore(score int) int {
	return min(max(score, 0), 100)
}
