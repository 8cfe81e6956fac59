package skills

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/types"
)

func findSkill(signals []types.SkillSignal, name string) (types.SkillSignal, bool) {
	for _, s := range signals {
		if s.Name == name {
			return s, true
		}
	}
	return types.SkillSignal{}, false
}

func TestExtract_ExactMatch(t *testing.T) {
	signals := NewExtractor(nil).Extract("Backend developer working in Python.")

	python, ok := findSkill(signals, "Python")
	require.True(t, ok)
	assert.Equal(t, 0.9, python.Confidence)
	assert.Equal(t, types.CategoryTechnical, python.Category)
}

func TestExtract_RepeatBonusIsCapped(t *testing.T) {
	extractor := NewExtractor(nil)

	three, ok := findSkill(extractor.Extract("Python, Python and more Python"), "Python")
	require.True(t, ok)
	assert.InDelta(t, 0.94, three.Confidence, 1e-9)

	many, ok := findSkill(extractor.Extract(strings.Repeat("Python ", 20)), "Python")
	require.True(t, ok)
	assert.Equal(t, 1.0, many.Confidence)
}

func TestExtract_AliasMatch(t *testing.T) {
	signals := NewExtractor(nil).Extract("Built golang services on k8s with postgres")

	for _, name := range []string{"Go", "Kubernetes", "PostgreSQL"} {
		s, ok := findSkill(signals, name)
		require.True(t, ok, name)
		assert.Equal(t, 0.7, s.Confidence, name)
	}
}

func TestExtract_AliasRepeatsStayInFuzzyRange(t *testing.T) {
	s, ok := findSkill(NewExtractor(nil).Extract(strings.Repeat("k8s ", 30)), "Kubernetes")
	require.True(t, ok)
	assert.Equal(t, 0.8, s.Confidence)
}

func TestExtract_ExactAndAliasCountTogether(t *testing.T) {
	s, ok := findSkill(NewExtractor(nil).Extract("Kubernetes and k8s"), "Kubernetes")
	require.True(t, ok)
	assert.InDelta(t, 0.92, s.Confidence, 1e-9)
}

func TestExtract_CaseSensitiveEntries(t *testing.T) {
	extractor := NewExtractor(nil)

	_, ok := findSkill(extractor.Extract("Ready to go to market and express ideas"), "Go")
	assert.False(t, ok)
	_, ok = findSkill(extractor.Extract("Ready to go to market and express ideas"), "Express")
	assert.False(t, ok)

	goSkill, ok := findSkill(extractor.Extract("Services written in Go and Rust"), "Go")
	require.True(t, ok)
	assert.Equal(t, 0.9, goSkill.Confidence)
}

func TestExtract_StemMatchOnlyForSoftAndDomainSkills(t *testing.T) {
	signals := NewExtractor(nil).Extract("Mentored junior engineers and dockerized legacy apps")

	mentoring, ok := findSkill(signals, "Mentoring")
	require.True(t, ok)
	assert.Equal(t, 0.55, mentoring.Confidence)
	assert.Equal(t, types.CategorySoftSkill, mentoring.Category)

	_, ok = findSkill(signals, "Docker")
	assert.False(t, ok)
}

func TestExtract_PunctuatedNames(t *testing.T) {
	signals := NewExtractor(nil).Extract("C++, C#, Node.js, ASP.NET and CI/CD pipelines; problem-solving")

	for _, name := range []string{"C++", "C#", "Node.js", "ASP.NET", "CI/CD", "Problem Solving"} {
		s, ok := findSkill(signals, name)
		require.True(t, ok, name)
		assert.Equal(t, 0.9, s.Confidence, name)
	}
}

func TestExtract_SortedAndDeterministic(t *testing.T) {
	text := "Docker Docker Python AWS Leadership communication skills Kubernetes"
	extractor := NewExtractor(nil)

	first := extractor.Extract(text)
	second := extractor.Extract(text)
	assert.Equal(t, first, second)

	for i := 1; i < len(first); i++ {
		prev, cur := first[i-1], first[i]
		assert.True(t, prev.Confidence > cur.Confidence ||
			(prev.Confidence == cur.Confidence && prev.Name < cur.Name))
	}
}

func TestExtract_Empty(t *testing.T) {
	assert.Empty(t, NewExtractor(nil).Extract(""))
	assert.Empty(t, NewExtractor(nil).Extract("nothing relevant here at all"))
}

func TestMerge_KeepsMaximumConfidence(t *testing.T) {
	merged := Merge(
		[]types.SkillSignal{{Name: "Python", Confidence: 0.7, Category: types.CategoryTechnical}},
		[]types.SkillSignal{{Name: "python", Confidence: 0.95, Category: types.CategoryTechnical}},
		[]types.SkillSignal{{Name: "  ", Confidence: 1}},
	)

	require.Len(t, merged, 1)
	assert.Equal(t, "Python", merged[0].Name)
	assert.Equal(t, 0.95, merged[0].Confidence)
}

func TestTokenize(t *testing.T) {
	tokens := tokenize("C++, C#, Node.js. ASP.NET and .NET...Python")
	var lowers []string
	for _, tok := range tokens {
		lowers = append(lowers, tok.lower)
	}
	assert.Equal(t, []string{"c++", "c#", "node.js", "asp.net", "and", ".net", "python"}, lowers)
}

func TestCountPhrase(t *testing.T) {
	tokens := tokenize("machine learning and machine learning ops")
	assert.Equal(t, 2, countPhrase(tokens, tokenize("Machine Learning"), lowerKey))
	assert.Equal(t, 0, countPhrase(tokens, tokenize("Machine Learning"), rawKey))
	assert.Equal(t, 0, countPhrase(tokens, nil, lowerKey))
}
