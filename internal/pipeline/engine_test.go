package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/cache"
	"github.com/jonathan/resume-analyzer/internal/catalog"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/jonathan/resume-analyzer/internal/ranking"
	"github.com/jonathan/resume-analyzer/internal/testutil"
	"github.com/jonathan/resume-analyzer/internal/types"
)

var fixedNow = func() time.Time { return time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC) }

func boolPtr(v bool) *bool { return &v }

func sampleDocument(t *testing.T) types.ResumeDocument {
	t.Helper()
	data, err := testutil.BuildDOCX(testutil.SampleResume...)
	require.NoError(t, err)
	return types.ResumeDocument{Data: data, MIMEType: ingestion.MIMETypeDOCX, Filename: "jane.docx"}
}

func newTestEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	postings, err := catalog.DecodeCatalog([]byte(testutil.SampleCatalogJSON), catalog.FormatJSON)
	require.NoError(t, err)
	cat, err := catalog.NewStatic(postings)
	require.NoError(t, err)
	if opts.Now == nil {
		opts.Now = fixedNow
	}
	return New(cat, opts)
}

func matchIDs(results []types.MatchResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.JobID
	}
	return out
}

func TestAnalyze_SampleResume(t *testing.T) {
	var steps []string
	engine := newTestEngine(t, Options{OnProgress: func(ev ProgressEvent) { steps = append(steps, ev.Step) }})

	analysis, err := engine.Analyze(context.Background(), sampleDocument(t))
	require.NoError(t, err)

	assert.NotEmpty(t, analysis.RequestID)
	assert.False(t, analysis.Cached)
	assert.InDelta(t, 7.6, analysis.Profile.YearsOfExperience, 1e-9)
	assert.Equal(t, types.EducationBachelor, analysis.Profile.EducationLevel)
	assert.Equal(t, engine.Score(analysis.Profile), analysis.Analysis)
	assert.Equal(t, []string{"extract", "profile", "score"}, steps)
	require.NotNil(t, analysis.Metadata)
	assert.Contains(t, analysis.Metadata.Sections, types.SectionExperience)
}

func TestAnalyze_Deterministic(t *testing.T) {
	engine := newTestEngine(t, Options{})
	doc := sampleDocument(t)

	first, err := engine.Analyze(context.Background(), doc)
	require.NoError(t, err)
	second, err := engine.Analyze(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, first.Profile, second.Profile)
	assert.Equal(t, first.Analysis, second.Analysis)
	assert.NotEqual(t, first.RequestID, second.RequestID)
}

func TestAnalyze_UsesCache(t *testing.T) {
	c := cache.NewWithClient(nil, time.Minute, 10, zap.NewNop())
	engine := newTestEngine(t, Options{Cache: c})
	doc := sampleDocument(t)

	first, err := engine.Analyze(context.Background(), doc)
	require.NoError(t, err)
	second, err := engine.Analyze(context.Background(), doc)
	require.NoError(t, err)

	assert.True(t, second.Cached)
	// Empty warnings are omitted from the cached JSON.
	firstResult, secondResult := first.Analysis, second.Analysis
	firstResult.Warnings, secondResult.Warnings = nil, nil
	assert.Equal(t, firstResult, secondResult)
	assert.Equal(t, first.Profile.SkillNames(), second.Profile.SkillNames())
	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestAnalyze_Errors(t *testing.T) {
	engine := newTestEngine(t, Options{MaxBytes: 64})

	_, err := engine.Analyze(context.Background(), types.ResumeDocument{Data: []byte("hello"), MIMEType: "image/png"})
	assert.ErrorIs(t, err, ingestion.ErrUnsupportedFormat)

	_, err = engine.Analyze(context.Background(), sampleDocument(t))
	assert.ErrorIs(t, err, ingestion.ErrFileTooLarge)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.Analyze(ctx, sampleDocument(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMatch_CatalogOrderAndRanking(t *testing.T) {
	engine := newTestEngine(t, Options{})
	analysis, err := engine.Analyze(context.Background(), sampleDocument(t))
	require.NoError(t, err)
	ctx := context.Background()

	results, err := engine.Match(ctx, analysis.Profile, catalog.Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"backend-1", "data-1", "platform-1"}, matchIDs(results))

	ranked, err := engine.MatchAndRank(ctx, analysis.Profile, catalog.Filter{}, ranking.Options{})
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, "backend-1", ranked[0].JobID)
	assert.Equal(t, []string{}, ranked[0].MissingRequired)

	remote, err := engine.MatchAndRank(ctx, analysis.Profile, catalog.Filter{}, ranking.Options{Remote: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, []string{"backend-1"}, matchIDs(remote))

	tech, err := engine.Match(ctx, analysis.Profile, catalog.Filter{Industry: "Technology"})
	require.NoError(t, err)
	assert.Equal(t, []string{"backend-1", "platform-1"}, matchIDs(tech))

	reranked, err := engine.Rank(ctx, results, ranking.Options{SortKey: types.SortByDate})
	require.NoError(t, err)
	assert.Equal(t, []string{"backend-1", "platform-1", "data-1"}, matchIDs(reranked))
}

func TestMatch_Errors(t *testing.T) {
	engine := newTestEngine(t, Options{})
	_, err := engine.Match(context.Background(), nil, catalog.Filter{})
	var validationErr *parsing.ValidationError
	assert.True(t, errors.As(err, &validationErr))

	noCatalog := New(nil, Options{})
	_, err = noCatalog.Match(context.Background(), &types.CandidateProfile{}, catalog.Filter{})
	assert.Error(t, err)
	_, err = noCatalog.Trends(context.Background())
	assert.Error(t, err)
}

func TestRecommend(t *testing.T) {
	engine := newTestEngine(t, Options{})
	analysis, err := engine.Analyze(context.Background(), sampleDocument(t))
	require.NoError(t, err)

	recs, err := engine.Recommend(context.Background(), analysis.Profile, catalog.Filter{}, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "backend-1", recs[0].JobID)
	assert.Equal(t, "Initech", recs[0].Company)
	assert.NotEmpty(t, recs[0].WhyRecommended)
	assert.NotEmpty(t, recs[0].NextSteps)
}

func TestJobsAndTrends(t *testing.T) {
	engine := newTestEngine(t, Options{})
	ctx := context.Background()

	jobs, err := engine.ListJobs(ctx, catalog.Filter{}, types.SortByDate)
	require.NoError(t, err)
	ids := make([]string, len(jobs))
	for i, j := range jobs {
		ids[i] = j.ID
	}
	assert.Equal(t, []string{"backend-1", "platform-1", "data-1"}, ids)

	job, err := engine.GetJob(ctx, "data-1")
	require.NoError(t, err)
	assert.Equal(t, "Data Analyst", job.Title)

	_, err = engine.GetJob(ctx, "nope")
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	trends, err := engine.Trends(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, trends.TotalJobs)
}

func TestAnalyze_PDFMatchesDOCX(t *testing.T) {
	engine := newTestEngine(t, Options{})
	pdfDoc := types.ResumeDocument{
		Data:     testutil.BuildPDF(testutil.PDFContent(testutil.LayoutTd, testutil.SampleResume...)),
		MIMEType: ingestion.MIMETypePDF,
		Filename: "jane.pdf",
	}

	fromPDF, err := engine.Analyze(context.Background(), pdfDoc)
	require.NoError(t, err)
	fromDOCX, err := engine.Analyze(context.Background(), sampleDocument(t))
	require.NoError(t, err)

	assert.InDelta(t, 7.6, fromPDF.Profile.YearsOfExperience, 1e-9)
	assert.False(t, fromPDF.Profile.LowConfidence)
	assert.Equal(t, fromDOCX.Profile, fromPDF.Profile)
	assert.Equal(t, fromDOCX.Analysis, fromPDF.Analysis)
}
