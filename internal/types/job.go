package types

import (
	"fmt"
	"strings"
	"time"
)

// ExperienceLevel is a seniority bucket shared by candidates and postings.
type ExperienceLevel string

// Experience levels, most junior first.
const (
	LevelEntry     ExperienceLevel = "entry"
	LevelJunior    ExperienceLevel = "junior"
	LevelMid       ExperienceLevel = "mid"
	LevelSenior    ExperienceLevel = "senior"
	LevelLead      ExperienceLevel = "lead"
	LevelPrincipal ExperienceLevel = "principal"
	LevelExecutive ExperienceLevel = "executive"
)

// ExperienceLevels lists every level in ascending order.
var ExperienceLevels = []ExperienceLevel{
	LevelEntry, LevelJunior, LevelMid, LevelSenior, LevelLead, LevelPrincipal, LevelExecutive,
}

// Rank returns the level's position in ExperienceLevels, or -1 if unknown.
func (l ExperienceLevel) Rank() int {
	for i, level := range ExperienceLevels {
		if level == l {
			return i
		}
	}
	return -1
}

// ParseExperienceLevel accepts common spellings ("Mid-Level", "Sr", "Entry Level").
func ParseExperienceLevel(s string) (ExperienceLevel, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.TrimSuffix(normalized, " level")
	normalized = strings.TrimSuffix(normalized, "-level")
	switch normalized {
	case "entry", "intern", "graduate", "new grad":
		return LevelEntry, nil
	case "junior", "jr":
		return LevelJunior, nil
	case "mid", "intermediate", "middle":
		return LevelMid, nil
	case "senior", "sr":
		return LevelSenior, nil
	case "lead", "staff":
		return LevelLead, nil
	case "principal":
		return LevelPrincipal, nil
	case "executive", "director", "vp":
		return LevelExecutive, nil
	}
	return "", fmt.Errorf("unknown experience level %q", s)
}

// JobPosting is a catalog entry. Salary is either structured (SalaryMin/SalaryMax)
// or only available as free text in SalaryRange.
type JobPosting struct {
	ID              string          `json:"id" yaml:"id" validate:"required"`
	Title           string          `json:"title" yaml:"title" validate:"required"`
	Company         string          `json:"company" yaml:"company"`
	Location        string          `json:"location" yaml:"location"`
	RequiredSkills  []string        `json:"required_skills" yaml:"required_skills"`
	PreferredSkills []string        `json:"preferred_skills" yaml:"preferred_skills"`
	Industry        string          `json:"industry" yaml:"industry"`
	ExperienceLevel ExperienceLevel `json:"experience_level" yaml:"experience_level"`
	Remote          bool            `json:"remote" yaml:"remote"`
	SalaryMin       *int            `json:"salary_min,omitempty" yaml:"salary_min,omitempty"`
	SalaryMax       *int            `json:"salary_max,omitempty" yaml:"salary_max,omitempty"`
	SalaryRange     string          `json:"salary_range,omitempty" yaml:"salary_range,omitempty"`
	PostedDate      time.Time       `json:"posted_date" yaml:"posted_date"`
	Description     string          `json:"description,omitempty" yaml:"description,omitempty"`
}

// MatchResult explains how well one candidate fits one posting.
type MatchResult struct {
	JobID           string   `json:"job_id" validate:"required"`
	MatchScore      float64  `json:"match_score" validate:"gte=0,lte=1"`
	MatchedRequired []string `json:"matched_required"`
	MissingRequired []string `json:"missing_required"`
	ExtraSkills     []string `json:"extra_skills"`
	Reasons         []string `json:"reasons"`
}

// SortKey selects the ordering applied by ranking.
type SortKey string

// Sort keys.
const (
	SortByScore  SortKey = "score"
	SortBySalary SortKey = "salary"
	SortByDate   SortKey = "date"
)

// ParseSortKey parses a sort key; empty input selects SortByScore.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortByScore:
		return SortByScore, nil
	case SortBySalary:
		return SortBySalary, nil
	case SortByDate, "posted_date", "recent":
		return SortByDate, nil
	}
	return "", fmt.Errorf("unknown sort key %q (expected score, salary or date)", s)
}

// Recommendation is a top match with guidance for the candidate.
type Recommendation struct {
	JobID          string   `json:"job_id"`
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	MatchScore     float64  `json:"match_score"`
	WhyRecommended []string `json:"why_recommended"`
	NextSteps      []string `json:"next_steps"`
}

// SkillCount is a skill with the number of postings that ask for it.
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// MarketTrends aggregates catalog-wide statistics.
type MarketTrends struct {
	TotalJobs                   int            `json:"total_jobs"`
	TopSkills                   []SkillCount   `json:"top_skills"`
	IndustryDistribution        map[string]int `json:"industry_distribution"`
	ExperienceLevelDistribution map[string]int `json:"experience_level_distribution"`
	RemotePercentage            float64        `json:"remote_percentage"`
	AverageSalaryMin            int            `json:"average_salary_min"`
	AverageSalaryMax            int            `json:"average_salary_max"`
}
