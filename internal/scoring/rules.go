package scoring

import "github.com/jonathan/resume-analyzer/internal/types"

// RuleKind selects which feedback list a rule contributes to.
type RuleKind string

// Rule kinds.
const (
	KindStrength   RuleKind = "strength"
	KindWeakness   RuleKind = "weakness"
	KindSuggestion RuleKind = "suggestion"
)

// Facts is the input every rule is evaluated against.
type Facts struct {
	Profile         *types.CandidateProfile
	TechnicalCount  int
	SoftCount       int
	SkillsScore     int
	ExperienceScore int
	EducationScore  int
	OverallScore    int
}

// Rule emits Message when When holds.
type Rule struct {
	ID      string
	Kind    RuleKind
	Message string
	When    func(Facts) bool
}

// Evaluate runs rules in order and groups their messages by kind.
// Duplicate messages are emitted once. The returned slices are never nil.
func Evaluate(rules []Rule, facts Facts) (strengths, weaknesses, suggestions []string) {
	strengths, weaknesses, suggestions = []string{}, []string{}, []string{}
	seen := make(map[string]bool)
	for _, r := range rules {
		if r.When == nil || !r.When(facts) || seen[r.Message] {
			continue
		}
		seen[r.Message] = true
		switch r.Kind {
		case KindStrength:
			strengths = append(strengths, r.Message)
		case KindWeakness:
			weaknesses = append(weaknesses, r.Message)
		case KindSuggestion:
			suggestions = append(suggestions, r.Message)
		}
	}
	return strengths, weaknesses, suggestions
}

func hasWarning(p *types.CandidateProfile, warning string) bool {
	for _, w := range p.Warnings {
		if w == warning {
			return true
		}
	}
	return false
}

// DefaultRules returns the built-in rule set.
func DefaultRules() []Rule {
	return []Rule{
		// Strengths
		{ID: "comprehensive-skills", Kind: KindStrength, Message: "Comprehensive skill set",
			When: func(f Facts) bool { return len(f.Profile.Skills) >= 15 }},
		{ID: "strong-technical", Kind: KindStrength, Message: "Strong technical background",
			When: func(f Facts) bool { return f.TechnicalCount >= 8 }},
		{ID: "interpersonal", Kind: KindStrength, Message: "Well-rounded interpersonal skills",
			When: func(f Facts) bool { return f.SoftCount >= 3 }},
		{ID: "extensive-experience", Kind: KindStrength, Message: "Extensive professional experience",
			When: func(f Facts) bool { return f.Profile.YearsOfExperience >= 8 }},
		{ID: "diverse-experience", Kind: KindStrength, Message: "Diverse work experience",
			When: func(f Facts) bool { return len(f.Profile.Companies) >= 3 }},
		{ID: "advanced-education", Kind: KindStrength, Message: "Advanced education",
			When: func(f Facts) bool { return f.Profile.EducationLevel >= types.EducationMaster }},
		{ID: "measurable-impact", Kind: KindStrength, Message: "Demonstrates measurable impact",
			When: func(f Facts) bool { return f.Profile.QuantifiedAchievements >= 3 }},

		// Weaknesses
		{ID: "limited-skills", Kind: KindWeakness, Message: "Limited skill set",
			When: func(f Facts) bool { return len(f.Profile.Skills) < 8 }},
		{ID: "few-soft-skills", Kind: KindWeakness, Message: "Fewer than 2 soft skills detected",
			When: func(f Facts) bool { return f.SoftCount < 2 }},
		{ID: "limited-experience", Kind: KindWeakness, Message: "Limited work experience",
			When: func(f Facts) bool { return f.Profile.YearsOfExperience < 2 }},
		{ID: "missing-education", Kind: KindWeakness, Message: "Missing educational information",
			When: func(f Facts) bool { return f.Profile.EducationLevel == types.EducationNone }},
		{ID: "unparsed-structure", Kind: KindWeakness, Message: "Resume structure could not be fully parsed",
			When: func(f Facts) bool { return f.Profile.LowConfidence }},

		// Suggestions
		{ID: "add-experience-section", Kind: KindSuggestion, Message: "Add a clearly labeled Experience section with dates for each role",
			When: func(f Facts) bool {
				return hasWarning(f.Profile, types.WarningNoExperienceSection) || hasWarning(f.Profile, types.WarningNoDateRanges)
			}},
		{ID: "add-skills", Kind: KindSuggestion, Message: "Consider adding more relevant skills to your resume",
			When: func(f Facts) bool { return len(f.Profile.Skills) < 10 }},
		{ID: "add-technical-skills", Kind: KindSuggestion, Message: "Add more technical skills to improve your profile",
			When: func(f Facts) bool { return f.TechnicalCount < 5 }},
		{ID: "quantify", Kind: KindSuggestion, Message: "Include quantifiable results and metrics",
			When: func(f Facts) bool { return f.Profile.QuantifiedAchievements == 0 }},
		{ID: "add-education", Kind: KindSuggestion, Message: "Add your educational background to your resume",
			When: func(f Facts) bool { return f.Profile.EducationLevel == types.EducationNone }},
		{ID: "gain-experience", Kind: KindSuggestion, Message: "Consider gaining more work experience or highlighting relevant projects",
			When: func(f Facts) bool { return f.Profile.YearsOfExperience < 2 }},
		{ID: "tailor", Kind: KindSuggestion, Message: "Tailor your resume to specific job requirements",
			When: func(Facts) bool { return true }},
	}
}
