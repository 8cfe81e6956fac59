package types

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// SkillCategory classifies a skill signal.
type SkillCategory string

// Skill categories.
const (
	CategoryTechnical SkillCategory = "technical"
	CategorySoftSkill SkillCategory = "soft_skill"
	CategoryDomain    SkillCategory = "domain"
)

// SkillSignal is one detected skill with a confidence in [0,1].
type SkillSignal struct {
	Name       string        `json:"name" validate:"required"`
	Confidence float64       `json:"confidence" validate:"gte=0,lte=1"`
	Category   SkillCategory `json:"category" validate:"omitempty,oneof=technical soft_skill domain"`
}

// EducationLevel is an ordinal education tier. Higher values rank higher.
type EducationLevel int

// Education levels, lowest first.
const (
	EducationNone EducationLevel = iota
	EducationHighSchool
	EducationCertificate
	EducationAssociate
	EducationBachelor
	EducationMaster
	EducationDoctorate
)

var educationLevelNames = map[EducationLevel]string{
	EducationNone:        "none",
	EducationHighSchool:  "high_school",
	EducationCertificate: "certificate",
	EducationAssociate:   "associate",
	EducationBachelor:    "bachelor",
	EducationMaster:      "master",
	EducationDoctorate:   "doctorate",
}

func (e EducationLevel) String() string {
	if name, ok := educationLevelNames[e]; ok {
		return name
	}
	return fmt.Sprintf("EducationLevel(%d)", int(e))
}

// ParseEducationLevel parses a level name such as "bachelor" or "phd".
func ParseEducationLevel(s string) (EducationLevel, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	switch normalized {
	case "phd", "ph.d", "ph.d.":
		return EducationDoctorate, nil
	case "masters":
		return EducationMaster, nil
	case "bachelors":
		return EducationBachelor, nil
	case "", "none":
		return EducationNone, nil
	}
	for level, name := range educationLevelNames {
		if name == normalized {
			return level, nil
		}
	}
	return EducationNone, fmt.Errorf("unknown education level %q", s)
}

// MarshalJSON encodes the level by name.
func (e EducationLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.String())
}

// UnmarshalJSON accepts either a level name or its ordinal.
func (e *EducationLevel) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		level, err := ParseEducationLevel(name)
		if err != nil {
			return err
		}
		*e = level
		return nil
	}
	var ordinal int
	if err := json.Unmarshal(data, &ordinal); err != nil {
		return fmt.Errorf("education level must be a string or integer: %w", err)
	}
	if ordinal < int(EducationNone) || ordinal > int(EducationDoctorate) {
		return fmt.Errorf("education level %d out of range", ordinal)
	}
	*e = EducationLevel(ordinal)
	return nil
}

// Extraction warnings surfaced on the profile and the analysis result.
const (
	WarningNoExperienceSection = "no experience section detected; years of experience defaulted to 0"
	WarningNoDateRanges        = "no date ranges found in experience section"
	WarningNoEducation         = "no education information detected"
	WarningNoSkills            = "no skills detected"
)

// CandidateProfile holds the structured facts extracted from one resume.
type CandidateProfile struct {
	Skills                 []SkillSignal  `json:"skills" validate:"dive"`
	YearsOfExperience      float64        `json:"years_of_experience" validate:"gte=0"`
	EducationLevel         EducationLevel `json:"education_level"`
	FieldOfStudy           string         `json:"field_of_study,omitempty"`
	Industry               string         `json:"industry"`
	JobTitles              []string       `json:"job_titles"`
	Companies              []string       `json:"companies"`
	QuantifiedAchievements int            `json:"quantified_achievements"`
	LowConfidence          bool           `json:"low_confidence"`
	Warnings               []string       `json:"warnings,omitempty"`
}

// SkillNames returns the skill names in profile order.
func (p *CandidateProfile) SkillNames() []string {
	names := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		names = append(names, s.Name)
	}
	return names
}

// SkillsByCategory returns the signals in the given category.
func (p *CandidateProfile) SkillsByCategory(category SkillCategory) []SkillSignal {
	var out []SkillSignal
	for _, s := range p.Skills {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// SortSkills orders signals by descending confidence, then name.
func SortSkills(signals []SkillSignal) {
	sort.SliceStable(signals, func(i, j int) bool {
		if signals[i].Confidence != signals[j].Confidence {
			return signals[i].Confidence > signals[j].Confidence
		}
		return signals[i].Name < signals[j].Name
	})
}

// AnalysisResult is the scored view of a CandidateProfile.
type AnalysisResult struct {
	OverallScore    int      `json:"overall_score"`
	SkillsScore     int      `json:"skills_score"`
	ExperienceScore int      `json:"experience_score"`
	EducationScore  int      `json:"education_score"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Suggestions     []string `json:"suggestions"`
	LowConfidence   bool     `json:"low_confidence"`
	Warnings        []string `json:"warnings,omitempty"`
}
