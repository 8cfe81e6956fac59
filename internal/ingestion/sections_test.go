package ingestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/types"
)

func TestDetectSections(t *testing.T) {
	text := strings.Join([]string{
		"Jane Doe",
		"jane@example.com",
		"Professional Summary",
		"Backend engineer.",
		"WORK EXPERIENCE",
		"Senior Engineer at Acme",
		"Jan 2020 - Present",
		"Education:",
		"BSc Computer Science",
		"Technical Skills",
		"Go, Python",
	}, "\n")

	sections := DetectSections(strings.Split(text, "\n"))
	require.Len(t, sections, 4)

	assert.Equal(t, types.Section{Label: types.SectionSummary, HeaderLine: 2, EndLine: 4}, sections[0])
	assert.Equal(t, types.Section{Label: types.SectionExperience, HeaderLine: 4, EndLine: 7}, sections[1])
	assert.Equal(t, types.Section{Label: types.SectionEducation, HeaderLine: 7, EndLine: 9}, sections[2])
	assert.Equal(t, types.Section{Label: types.SectionSkills, HeaderLine: 9, EndLine: 11}, sections[3])
}

func TestHeaderLabel(t *testing.T) {
	tests := []struct {
		line      string
		wantLabel types.SectionLabel
		wantOK    bool
	}{
		{"Experience", types.SectionExperience, true},
		{"experience:", types.SectionExperience, true},
		{"## Education", types.SectionEducation, true},
		{"Skills & Abilities", types.SectionSkills, true},
		{"WORK EXPERIENCE & INTERNSHIPS", types.SectionExperience, true},
		{"Leadership Skills:", types.SectionSkills, true},
		{"Objective", types.SectionSummary, true},
		{"Projects", types.SectionProjects, true},
		{"Strong communication skills", "", false},
		{"5 YEARS EXPERIENCE", "", false},
		{"- Experience", "", false},
		{"I have broad experience building distributed systems at scale", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			label, ok := headerLabel(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantLabel, label)
		})
	}
}

func TestNormalize_SectionsMatchCleanedLines(t *testing.T) {
	normalized := Normalize("Name\r\n\r\n\r\n\r\nEXPERIENCE\r\nEngineer   at   Acme\r\n")

	assert.Equal(t, "Name\n\nEXPERIENCE\nEngineer at Acme", normalized.Text)
	assert.Equal(t, []types.SectionLabel{types.SectionExperience}, normalized.Labels())
	assert.Equal(t, []string{"Engineer at Acme"}, normalized.SectionLines(types.SectionExperience))
}

func TestNormalize_Empty(t *testing.T) {
	normalized := Normalize("")
	assert.Empty(t, normalized.Text)
	assert.Empty(t, normalized.Sections)
}
