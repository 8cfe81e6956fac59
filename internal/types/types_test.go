package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizedText_SectionLines(t *testing.T) {
	text := NormalizedText{
		Text: "Jane Doe\nExperience\nEngineer at Acme\n2019 - 2021\nEducation\nBS Computer Science",
		Sections: []Section{
			{Label: SectionExperience, HeaderLine: 1, EndLine: 4},
			{Label: SectionEducation, HeaderLine: 4, EndLine: 6},
		},
	}

	assert.Equal(t, []string{"Engineer at Acme", "2019 - 2021"}, text.SectionLines(SectionExperience))
	assert.Equal(t, "BS Computer Science", text.SectionText(SectionEducation))
	assert.Empty(t, text.SectionLines(SectionSkills))
	assert.True(t, text.HasSection(SectionEducation))
	assert.False(t, text.HasSection(SectionSummary))
	assert.Equal(t, []SectionLabel{SectionExperience, SectionEducation}, text.Labels())
}

func TestNormalizedText_EmptyText(t *testing.T) {
	assert.Nil(t, NormalizedText{}.Lines())
	assert.Empty(t, NormalizedText{}.SectionLines(SectionExperience))
}

func TestEducationLevel_JSON(t *testing.T) {
	data, err := json.Marshal(EducationMaster)
	require.NoError(t, err)
	assert.Equal(t, `"master"`, string(data))

	var fromName EducationLevel
	require.NoError(t, json.Unmarshal([]byte(`"phd"`), &fromName))
	assert.Equal(t, EducationDoctorate, fromName)

	var fromOrdinal EducationLevel
	require.NoError(t, json.Unmarshal([]byte(`4`), &fromOrdinal))
	assert.Equal(t, EducationBachelor, fromOrdinal)

	var bad EducationLevel
	assert.Error(t, json.Unmarshal([]byte(`"wizard"`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`42`), &bad))
}

func TestParseEducationLevel(t *testing.T) {
	tests := []struct {
		input string
		want  EducationLevel
	}{
		{"bachelor", EducationBachelor},
		{"Masters", EducationMaster},
		{"High School", EducationHighSchool},
		{"", EducationNone},
		{"Ph.D", EducationDoctorate},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseEducationLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEducationLevel_Ordering(t *testing.T) {
	assert.Less(t, EducationNone, EducationHighSchool)
	assert.Less(t, EducationBachelor, EducationMaster)
	assert.Less(t, EducationMaster, EducationDoctorate)
}

func TestParseExperienceLevel(t *testing.T) {
	tests := []struct {
		input string
		want  ExperienceLevel
	}{
		{"Senior", LevelSenior},
		{"mid-level", LevelMid},
		{"Entry Level", LevelEntry},
		{"jr", LevelJunior},
		{"staff", LevelLead},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseExperienceLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseExperienceLevel("wizard")
	assert.Error(t, err)
}

func TestExperienceLevel_Rank(t *testing.T) {
	assert.Equal(t, 0, LevelEntry.Rank())
	assert.Equal(t, 3, LevelSenior.Rank())
	assert.Equal(t, 6, LevelExecutive.Rank())
	assert.Equal(t, -1, ExperienceLevel("").Rank())
}

func TestParseSortKey(t *testing.T) {
	key, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortByScore, key)

	key, err = ParseSortKey("Salary")
	require.NoError(t, err)
	assert.Equal(t, SortBySalary, key)

	key, err = ParseSortKey("recent")
	require.NoError(t, err)
	assert.Equal(t, SortByDate, key)

	_, err = ParseSortKey("alphabetical")
	assert.Error(t, err)
}

func TestSortSkills(t *testing.T) {
	skills := []SkillSignal{
		{Name: "Go", Confidence: 0.9},
		{Name: "Docker", Confidence: 0.95},
		{Name: "AWS", Confidence: 0.9},
	}
	SortSkills(skills)
	assert.Equal(t, []string{"Docker", "AWS", "Go"}, (&CandidateProfile{Skills: skills}).SkillNames())
}

func TestMatchRequest_Validate(t *testing.T) {
	req := &MatchRequest{}
	assert.Error(t, req.Validate())

	req = &MatchRequest{Profile: &CandidateProfile{
		Skills: []SkillSignal{{Name: "Go", Confidence: 1.2, Category: CategoryTechnical}},
	}}
	assert.Error(t, req.Validate())

	req.Profile.Skills[0].Confidence = 0.9
	assert.NoError(t, req.Validate())
}

func TestRankRequest_Validate(t *testing.T) {
	req := &RankRequest{SortKey: "salary", Results: []MatchResult{{JobID: "a", MatchScore: 0.5}}}
	assert.NoError(t, req.Validate())

	req.SortKey = "title"
	assert.Error(t, req.Validate())

	req.SortKey = ""
	req.Results = append(req.Results, MatchResult{MatchScore: 0.2})
	assert.Error(t, req.Validate())
}
