package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/types"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"golang", "Go"},
		{"k8s", "Kubernetes"},
		{"reactjs", "React"},
		{"nodejs", "Node.js"},
		{"  python  ", "Python"},
		{"AWS", "AWS"},
		{"TERRAFORMING", "Terraforming"},
		{"iOS", "iOS"},
		{"distributed   systems", "distributed systems"},
		{"haskell", "Haskell"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.input))
		})
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "postgresql", Key("Postgres"))
	assert.Equal(t, Key("JS"), Key("javascript"))
}

func TestCategorize(t *testing.T) {
	assert.Equal(t, types.CategorySoftSkill, Categorize("leadership"))
	assert.Equal(t, types.CategoryDomain, Categorize("SEO"))
	assert.Equal(t, types.CategoryTechnical, Categorize("Haskell"))
}

func TestNormalizeSignals(t *testing.T) {
	signals := NormalizeSignals([]types.SkillSignal{
		{Name: "golang", Confidence: 0.8},
		{Name: "Go", Confidence: 0.95, Category: types.CategoryTechnical},
		{Name: "teamwork", Confidence: 1.4},
		{Name: "", Confidence: 0.5},
	})

	require.Len(t, signals, 2)
	assert.Equal(t, types.SkillSignal{Name: "Teamwork", Confidence: 1, Category: types.CategorySoftSkill}, signals[0])
	assert.Equal(t, types.SkillSignal{Name: "Go", Confidence: 0.95, Category: types.CategoryTechnical}, signals[1])
}

func TestBuildTargets(t *testing.T) {
	posting := &types.JobPosting{
		RequiredSkills:  []string{"Python", "postgres", "python", " "},
		PreferredSkills: []string{"PostgreSQL", "Docker"},
	}

	targets := BuildTargets(posting)
	require.Len(t, targets.Required, 2)
	assert.Equal(t, Target{Key: "python", Name: "Python", Required: true}, targets.Required[0])
	assert.Equal(t, Target{Key: "postgresql", Name: "postgres", Required: true}, targets.Required[1])
	require.Len(t, targets.Preferred, 1)
	assert.Equal(t, "docker", targets.Preferred[0].Key)
}

func TestKeySet(t *testing.T) {
	keys := KeySet([]types.SkillSignal{{Name: "golang"}, {Name: "Go"}, {Name: "React"}})
	assert.Equal(t, map[string]string{"go": "Go", "react": "React"}, keys)
}
