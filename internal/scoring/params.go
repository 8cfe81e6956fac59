package scoring

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Params holds every tunable constant of the scoring engine.
type Params struct {
	// Skills
	TechnicalWeight  float64 `json:"technical_weight"`
	SoftWeight       float64 `json:"soft_weight"`
	MinSkillCount    int     `json:"min_skill_count"`
	EmptySkillsScore int     `json:"empty_skills_score"`

	// Experience
	SaturationYears    float64            `json:"saturation_years"`
	DefaultTargetYears float64            `json:"default_target_years"`
	TargetYears        map[string]float64 `json:"target_years"`
	TargetScore        float64            `json:"target_score"`

	// Education
	EducationScores map[types.EducationLevel]int `json:"education_scores"`

	// Overall
	SkillsWeight     float64 `json:"skills_weight"`
	ExperienceWeight float64 `json:"experience_weight"`
	EducationWeight  float64 `json:"education_weight"`

	MaxSuggestions int `json:"max_suggestions"`
}

// DefaultParams returns the default calibration.
func DefaultParams() Params {
	return Params{
		TechnicalWeight:    0.7,
		SoftWeight:         0.3,
		MinSkillCount:      5,
		EmptySkillsScore:   0,
		SaturationYears:    10,
		DefaultTargetYears: 4,
		TargetYears: map[string]float64{
			"Technology":    5,
			"Finance":       5,
			"Healthcare":    4,
			"Education":     3,
			"Marketing":     3,
			"Sales":         3,
			"Consulting":    5,
			"Manufacturing": 4,
		},
		TargetScore: 70,
		EducationScores: map[types.EducationLevel]int{
			types.EducationNone:        0,
			types.EducationHighSchool:  25,
			types.EducationCertificate: 30,
			types.EducationAssociate:   45,
			types.EducationBachelor:    65,
			types.EducationMaster:      85,
			types.EducationDoctorate:   100,
		},
		SkillsWeight:     0.40,
		ExperienceWeight: 0.35,
		EducationWeight:  0.25,
		MaxSuggestions:   5,
	}
}

const weightTolerance = 1e-6

// Validate checks that weight groups sum to 1 and bounds are sane.
func (p Params) Validate() error {
	if d := p.TechnicalWeight + p.SoftWeight - 1; math.Abs(d) > weightTolerance {
		return fmt.Errorf("technical and soft weights must sum to 1, got %.3f", p.TechnicalWeight+p.SoftWeight)
	}
	if d := p.SkillsWeight + p.ExperienceWeight + p.EducationWeight - 1; math.Abs(d) > weightTolerance {
		return fmt.Errorf("overall weights must sum to 1, got %.3f", p.SkillsWeight+p.ExperienceWeight+p.EducationWeight)
	}
	if p.MinSkillCount < 0 {
		return fmt.Errorf("min skill count must be non-negative, got %d", p.MinSkillCount)
	}
	if p.SaturationYears <= 0 {
		return fmt.Errorf("saturation years must be positive, got %.1f", p.SaturationYears)
	}
	if p.TargetScore <= 0 || p.TargetScore > 100 {
		return fmt.Errorf("target score must be in (0,100], got %.1f", p.TargetScore)
	}
	return nil
}

// Fingerprint identifies the calibration; results computed under different
// fingerprints are not interchangeable.
func (p Params) Fingerprint() string {
	data, err := json.Marshal(p)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}

// targetYears returns the expected years for an industry.
func (p Params) targetYears(industry string) float64 {
	if years, ok := p.TargetYears[industry]; ok && years > 0 {
		return years
	}
	return p.DefaultTargetYears
}
