package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/internal/testutil"
	"github.com/jonathan/resume-analyzer/internal/types"
)

func boolPtr(v bool) *bool { return &v }
func intPtr(v int) *int    { return &v }

func samplePostings(t *testing.T) []types.JobPosting {
	t.Helper()
	postings, err := DecodeCatalog([]byte(testutil.SampleCatalogJSON), FormatJSON)
	require.NoError(t, err)
	return postings
}

func postingIDs(postings []types.JobPosting) []string {
	ids := make([]string, 0, len(postings))
	for _, p := range postings {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestDecodeCatalog_JSON(t *testing.T) {
	postings := samplePostings(t)
	require.Len(t, postings, 3)

	assert.Equal(t, []string{"backend-1", "data-1", "platform-1"}, postingIDs(postings))
	assert.Equal(t, time.Date(2024, 5, 28, 0, 0, 0, 0, time.UTC), postings[0].PostedDate)
	assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), postings[2].PostedDate)
	assert.Equal(t, types.LevelSenior, postings[0].ExperienceLevel)
	require.NotNil(t, postings[0].SalaryMin)
	assert.Equal(t, 150000, *postings[0].SalaryMin)
	assert.Nil(t, postings[1].SalaryMin)
	assert.Equal(t, "$70k - $90k", postings[1].SalaryRange)
}

func TestDecodeCatalog_YAML(t *testing.T) {
	doc := `
postings:
  - id: y1
    title: Nurse Manager
    required_skills: [Leadership, Healthcare]
    industry: Healthcare
    experience_level: lead
    posted_date: 2024-03-10
  - id: y2
    title: Accountant
    required_skills:
      - Accounting
    salary_min: 60000
    salary_max: 75000
`
	postings, err := DecodeCatalog([]byte(doc), FormatYAML)
	require.NoError(t, err)
	require.Len(t, postings, 2)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), postings[0].PostedDate)
	assert.Equal(t, []string{"Leadership", "Healthcare"}, postings[0].RequiredSkills)
	assert.Equal(t, []string{}, postings[1].PreferredSkills)
	assert.True(t, postings[1].PostedDate.IsZero())
}

func TestDecodeCatalog_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{postings`},
		{"schema violation", `{"postings":[{"id":"a"}]}`},
		{"duplicate id", `{"postings":[{"id":"a","title":"x"},{"id":"a","title":"y"}]}`},
		{"bad date", `{"postings":[{"id":"a","title":"x","posted_date":"last week"}]}`},
		{"salary inverted", `{"postings":[{"id":"a","title":"x","salary_min":10,"salary_max":5}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCatalog([]byte(tt.doc), FormatJSON)
			var loadErr *LoadError
			assert.True(t, errors.As(err, &loadErr), "got %v", err)
		})
	}
}

func TestDecodeCatalog_SchemaErrorIsExposed(t *testing.T) {
	_, err := DecodeCatalog([]byte(`{"postings":[{"id":"a"}]}`), FormatJSON)
	var validationErr *schemas.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestEncodeCatalog_RoundTrip(t *testing.T) {
	postings := samplePostings(t)
	data, err := EncodeCatalog(postings)
	require.NoError(t, err)

	decoded, err := DecodeCatalog(data, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, postings, decoded)
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatForPath("jobs.yaml"))
	assert.Equal(t, FormatYAML, FormatForPath("JOBS.YML"))
	assert.Equal(t, FormatJSON, FormatForPath("jobs.json"))
	assert.Equal(t, FormatJSON, FormatForPath("jobs"))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jobs.json")
	require.NoError(t, os.WriteFile(path, []byte(testutil.SampleCatalogJSON), 0o600))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, loadErr.Path, "missing.json")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"postings":[{"id":"a"}]}`), 0o600))
	_, err = LoadFile(bad)
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, bad, loadErr.Path)
}

func TestStatic_ListAndGet(t *testing.T) {
	s, err := NewStatic(samplePostings(t))
	require.NoError(t, err)
	ctx := context.Background()

	all, err := s.ListPostings(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"backend-1", "data-1", "platform-1"}, postingIDs(all))

	tech, err := s.ListPostings(ctx, Filter{Industry: "technology"})
	require.NoError(t, err)
	assert.Equal(t, []string{"backend-1", "platform-1"}, postingIDs(tech))

	onsite, err := s.ListPostings(ctx, Filter{Remote: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, []string{"data-1", "platform-1"}, postingIDs(onsite))

	p, err := s.GetPosting(ctx, "data-1")
	require.NoError(t, err)
	assert.Equal(t, "Data Analyst", p.Title)

	_, err = s.GetPosting(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStatic_ListReturnsCopy(t *testing.T) {
	s, err := NewStatic(samplePostings(t))
	require.NoError(t, err)

	list, err := s.ListPostings(context.Background(), Filter{})
	require.NoError(t, err)
	list[0].Title = "changed"

	p, err := s.GetPosting(context.Background(), "backend-1")
	require.NoError(t, err)
	assert.Equal(t, "Senior Backend Engineer", p.Title)
}

func TestStatic_Errors(t *testing.T) {
	_, err := NewStatic([]types.JobPosting{{ID: "a"}, {ID: "a"}})
	assert.Error(t, err)

	_, err = NewStatic([]types.JobPosting{{Title: "no id"}})
	assert.Error(t, err)

	s, err := NewStatic(nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.ListPostings(ctx, Filter{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSQLite_ImportListGet(t *testing.T) {
	ctx := context.Background()
	store, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	postings := samplePostings(t)
	n, err := store.Import(ctx, postings)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	all, err := store.ListPostings(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, postings, all)

	remote, err := store.ListPostings(ctx, Filter{Remote: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, []string{"backend-1"}, postingIDs(remote))

	finance, err := store.ListPostings(ctx, Filter{Industry: "FINANCE"})
	require.NoError(t, err)
	assert.Equal(t, []string{"data-1"}, postingIDs(finance))

	got, err := store.GetPosting(ctx, "platform-1")
	require.NoError(t, err)
	assert.Equal(t, postings[2], *got)

	_, err = store.GetPosting(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_ImportUpdatesExisting(t *testing.T) {
	ctx := context.Background()
	store, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, err = store.Import(ctx, []types.JobPosting{{ID: "a", Title: "Old", RequiredSkills: []string{}, PreferredSkills: []string{}}})
	require.NoError(t, err)
	_, err = store.Import(ctx, []types.JobPosting{{ID: "a", Title: "New", SalaryMax: intPtr(10), RequiredSkills: []string{"Go"}, PreferredSkills: []string{}}})
	require.NoError(t, err)

	all, err := store.ListPostings(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "New", all[0].Title)
	assert.Equal(t, []string{"Go"}, all[0].RequiredSkills)
	require.NotNil(t, all[0].SalaryMax)
	assert.Equal(t, 10, *all[0].SalaryMax)
	assert.Nil(t, all[0].SalaryMin)
}

func TestComputeTrends(t *testing.T) {
	trends := ComputeTrends(samplePostings(t))

	assert.Equal(t, 3, trends.TotalJobs)
	require.NotEmpty(t, trends.TopSkills)
	assert.Equal(t, types.SkillCount{Skill: "Kubernetes", Count: 2}, trends.TopSkills[0])
	assert.Equal(t, map[string]int{"Technology": 2, "Finance": 1}, trends.IndustryDistribution)
	assert.Equal(t, map[string]int{"senior": 1, "junior": 1, "mid": 1}, trends.ExperienceLevelDistribution)
	assert.InDelta(t, 33.33, trends.RemotePercentage, 0.001)
	assert.Equal(t, 135000, trends.AverageSalaryMin)
	assert.Equal(t, 170000, trends.AverageSalaryMax)
}

func TestComputeTrends_Empty(t *testing.T) {
	trends := ComputeTrends(nil)
	assert.Equal(t, 0, trends.TotalJobs)
	assert.Empty(t, trends.TopSkills)
	assert.NotNil(t, trends.IndustryDistribution)
	assert.Zero(t, trends.RemotePercentage)
}

func TestComputeTrends_SkillsCaseInsensitive(t *testing.T) {
	trends := ComputeTrends([]types.JobPosting{
		{ID: "a", RequiredSkills: []string{"Go", "go"}},
		{ID: "b", RequiredSkills: []string{"GO", "SQL"}},
	})
	assert.Equal(t, []types.SkillCount{{Skill: "Go", Count: 2}, {Skill: "SQL", Count: 1}}, trends.TopSkills)
}
