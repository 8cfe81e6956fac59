// Package parsing assembles a CandidateProfile from normalized resume text.
package parsing

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/experience"
	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/internal/skills"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// ProfileExtractor turns NormalizedText into a CandidateProfile.
type ProfileExtractor struct {
	skills *skills.Extractor
	now    func() time.Time
	logger *zap.Logger
}

// NewProfileExtractor creates a ProfileExtractor. now supplies the reference
// month for open-ended date ranges; nil selects time.Now.
func NewProfileExtractor(skillExtractor *skills.Extractor, now func() time.Time, logger *zap.Logger) *ProfileExtractor {
	if skillExtractor == nil {
		skillExtractor = skills.NewExtractor(nil)
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileExtractor{skills: skillExtractor, now: now, logger: logger}
}

// Extract builds a profile. It never fails: missing facts fall back to
// conservative defaults and are reported through Warnings and LowConfidence.
func (p *ProfileExtractor) Extract(text types.NormalizedText) *types.CandidateProfile {
	return p.ExtractAt(text, p.now())
}

// ExtractAt builds a profile resolving "Present" against asOf.
func (p *ProfileExtractor) ExtractAt(text types.NormalizedText, asOf time.Time) *types.CandidateProfile {
	profile := &types.CandidateProfile{
		Skills:    p.skills.Extract(text.Text),
		Industry:  InferIndustry(text.Text),
		JobTitles: []string{},
		Companies: []string{},
		Warnings:  []string{},
	}
	if profile.Skills == nil {
		profile.Skills = []types.SkillSignal{}
	}
	if len(profile.Skills) == 0 {
		profile.LowConfidence = true
		profile.Warnings = append(profile.Warnings, types.WarningNoSkills)
	}

	if text.HasSection(types.SectionExperience) {
		lines := text.SectionLines(types.SectionExperience)
		summary := experience.Years(lines, text.Text, asOf)
		profile.YearsOfExperience = summary.Years
		if !summary.Found() {
			profile.LowConfidence = true
			profile.Warnings = append(profile.Warnings, types.WarningNoDateRanges)
		}
		profile.JobTitles, profile.Companies = TitlesAndCompanies(ExtractPositions(lines))
	} else {
		profile.LowConfidence = true
		profile.Warnings = append(profile.Warnings, types.WarningNoExperienceSection)
	}

	educationLines := append(text.SectionLines(types.SectionEducation), text.SectionLines(types.SectionCertifications)...)
	if !text.HasSection(types.SectionEducation) {
		educationLines = text.Lines()
	}
	profile.EducationLevel, profile.FieldOfStudy = ExtractEducation(educationLines)
	if profile.EducationLevel == types.EducationNone {
		profile.Warnings = append(profile.Warnings, types.WarningNoEducation)
	}

	profile.QuantifiedAchievements = CountQuantifiedAchievements(text.Text)

	p.logger.Debug("extracted profile",
		zap.Int("skills", len(profile.Skills)),
		zap.Float64("years", profile.YearsOfExperience),
		zap.String("education", profile.EducationLevel.String()),
		zap.String("industry", profile.Industry),
		zap.Bool("low_confidence", profile.LowConfidence),
	)
	return profile
}

// ParseProfileJSON decodes a serialized CandidateProfile, canonicalizes its
// skills and validates it.
func ParseProfileJSON(data []byte) (*types.CandidateProfile, error) {
	var profile types.CandidateProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, &ParseError{Message: "failed to unmarshal profile JSON", Cause: err}
	}
	if err := schemas.ValidateProfileJSON(data); err != nil {
		return nil, &ValidationError{Message: "profile does not match schema", Cause: err}
	}
	if err := NormalizeProfile(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// NormalizeProfile validates a client-supplied profile and canonicalizes its
// skill names in place.
func NormalizeProfile(profile *types.CandidateProfile) error {
	if profile == nil {
		return &ValidationError{Message: "profile is required", Field: "profile"}
	}
	if err := profile.Validate(); err != nil {
		return &ValidationError{Message: "invalid profile", Cause: err}
	}
	profile.Skills = skills.NormalizeSignals(profile.Skills)
	if profile.Industry == "" {
		profile.Industry = DefaultIndustry
	}
	return nil
}
