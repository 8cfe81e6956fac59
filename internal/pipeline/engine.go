// Package pipeline wires extraction, scoring, matching and ranking into a
// single transport-free Engine used by the CLI, the HTTP server and the
// queue worker.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/cache"
	"github.com/jonathan/resume-analyzer/internal/catalog"
	"github.com/jonathan/resume-analyzer/internal/experience"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/matching"
	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/jonathan/resume-analyzer/internal/ranking"
	"github.com/jonathan/resume-analyzer/internal/scoring"
	"github.com/jonathan/resume-analyzer/internal/skills"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// ProgressEvent represents a progress update during an analysis.
type ProgressEvent struct {
	Step      string `json:"step"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs.
type ProgressCallback func(event ProgressEvent)

// Options configures an Engine. Zero values select defaults.
type Options struct {
	MaxBytes    int64
	Scoring     *scoring.Params
	Rules       []scoring.Rule
	Weights     *matching.Weights
	Concurrency int
	// Now supplies the reference month for open-ended date ranges.
	Now        func() time.Time
	Cache      *cache.Tiered
	Logger     *zap.Logger
	OnProgress ProgressCallback
}

// Analysis is the outcome of analyzing one document.
type Analysis struct {
	RequestID string                  `json:"request_id"`
	Analysis  types.AnalysisResult    `json:"analysis"`
	Profile   *types.CandidateProfile `json:"profile"`
	Metadata  *ingestion.Metadata     `json:"metadata,omitempty"`
	Cached    bool                    `json:"cached"`
}

// cachedAnalysis is the cached part of an Analysis; request IDs are per call.
type cachedAnalysis struct {
	Analysis types.AnalysisResult    `json:"analysis"`
	Profile  *types.CandidateProfile `json:"profile"`
}

// Engine runs analyses and matches against a catalog.
type Engine struct {
	extractor  *ingestion.Extractor
	profiles   *parsing.ProfileExtractor
	scorer     *scoring.Engine
	matcher    *matching.Matcher
	catalog    catalog.Catalog
	cache      *cache.Tiered
	now        func() time.Time
	logger     *zap.Logger
	onProgress ProgressCallback
}

// New creates an Engine over cat, which may be nil for analysis-only use.
func New(cat catalog.Catalog, opts Options) *Engine {
	params := scoring.DefaultParams()
	if opts.Scoring != nil {
		params = *opts.Scoring
	}
	weights := matching.DefaultWeights()
	if opts.Weights != nil {
		weights = *opts.Weights
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Engine{
		extractor:  ingestion.NewExtractor(opts.MaxBytes, opts.Logger),
		profiles:   parsing.NewProfileExtractor(skills.NewExtractor(nil), opts.Now, opts.Logger),
		scorer:     scoring.NewEngine(params, opts.Rules),
		matcher:    matching.NewMatcher(weights, opts.Concurrency, opts.Logger),
		catalog:    cat,
		cache:      opts.Cache,
		now:        opts.Now,
		logger:     opts.Logger,
		onProgress: opts.OnProgress,
	}
}

// MaxBytes returns the upload limit enforced by Analyze.
func (e *Engine) MaxBytes() int64 {
	return e.extractor.MaxBytes()
}

func (e *Engine) emit(requestID, step, message string) {
	if e.onProgress != nil {
		e.onProgress(ProgressEvent{Step: step, Message: message, RequestID: requestID})
	}
}

// Analyze extracts, profiles and scores a document. Results are cached by
// document content, scoring configuration and reference month.
func (e *Engine) Analyze(ctx context.Context, doc types.ResumeDocument) (*Analysis, error) {
	requestID := uuid.New().String()
	return e.AnalyzeWithID(ctx, requestID, doc)
}

// AnalyzeWithID is Analyze with a caller-supplied request ID.
func (e *Engine) AnalyzeWithID(ctx context.Context, requestID string, doc types.ResumeDocument) (*Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	asOf := e.now()
	log := e.logger.With(zap.String("request_id", requestID))

	var key string
	if e.cache != nil {
		fingerprint := fmt.Sprintf("%s@%s", e.scorer.Params().Fingerprint(), experience.MonthOf(asOf))
		key = cache.AnalysisKey(ingestion.DocumentHash(doc), fingerprint)
		var hit cachedAnalysis
		if e.cache.Get(ctx, key, &hit) && hit.Profile != nil {
			log.Debug("analysis served from cache")
			e.emit(requestID, "cache", "analysis served from cache")
			return &Analysis{
				RequestID: requestID,
				Analysis:  hit.Analysis,
				Profile:   hit.Profile,
				Metadata:  ingestion.NewMetadata(doc, nil),
				Cached:    true,
			}, nil
		}
	}

	e.emit(requestID, "extract", "extracting document text")
	text, err := e.extractor.Extract(ctx, doc)
	if err != nil {
		log.Info("extraction failed",
			zap.String("mime_type", doc.MIMEType),
			zap.Int64("size_bytes", doc.Size()),
			zap.Error(err))
		return nil, err
	}

	e.emit(requestID, "profile", "building candidate profile")
	profile := e.profiles.ExtractAt(*text, asOf)

	e.emit(requestID, "score", "scoring profile")
	result := e.scorer.Score(profile)

	if e.cache != nil {
		e.cache.Set(ctx, key, cachedAnalysis{Analysis: result, Profile: profile})
	}

	log.Info("analysis complete",
		zap.String("mime_type", doc.MIMEType),
		zap.Int64("size_bytes", doc.Size()),
		zap.Int("overall_score", result.OverallScore),
		zap.Bool("low_confidence", result.LowConfidence),
		zap.Duration("duration", time.Since(start)))

	return &Analysis{
		RequestID: requestID,
		Analysis:  result,
		Profile:   profile,
		Metadata:  ingestion.NewMetadata(doc, text),
	}, nil
}

// Score scores an already-extracted profile.
func (e *Engine) Score(profile *types.CandidateProfile) types.AnalysisResult {
	return e.scorer.Score(profile)
}

func (e *Engine) requireCatalog() error {
	if e.catalog == nil {
		return fmt.Errorf("no job catalog configured")
	}
	return nil
}

func requireProfile(profile *types.CandidateProfile) error {
	if profile == nil {
		return &parsing.ValidationError{Message: "profile is required", Field: "profile"}
	}
	return nil
}

// Match scores profile against every catalog posting in filter, in catalog order.
func (e *Engine) Match(ctx context.Context, profile *types.CandidateProfile, filter catalog.Filter) ([]types.MatchResult, error) {
	results, _, err := e.match(ctx, profile, filter)
	return results, err
}

func (e *Engine) match(ctx context.Context, profile *types.CandidateProfile, filter catalog.Filter) ([]types.MatchResult, map[string]types.JobPosting, error) {
	if err := requireProfile(profile); err != nil {
		return nil, nil, err
	}
	if err := e.requireCatalog(); err != nil {
		return nil, nil, err
	}
	postings, err := e.catalog.ListPostings(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list postings: %w", err)
	}
	start := time.Now()
	results, err := e.matcher.Match(ctx, profile, postings)
	if err != nil {
		return nil, nil, err
	}
	e.logger.Debug("matched profile",
		zap.Int("postings", len(postings)),
		zap.Duration("duration", time.Since(start)))
	return results, ranking.IndexPostings(postings), nil
}

// MatchAndRank matches profile against the catalog and ranks the results.
func (e *Engine) MatchAndRank(ctx context.Context, profile *types.CandidateProfile, filter catalog.Filter, opts ranking.Options) ([]types.MatchResult, error) {
	results, index, err := e.match(ctx, profile, filter)
	if err != nil {
		return nil, err
	}
	return ranking.Rank(results, index, opts), nil
}

// Rank orders previously computed results using the catalog's posting data.
func (e *Engine) Rank(ctx context.Context, results []types.MatchResult, opts ranking.Options) ([]types.MatchResult, error) {
	index := map[string]types.JobPosting{}
	if e.catalog != nil {
		postings, err := e.catalog.ListPostings(ctx, catalog.Filter{})
		if err != nil {
			return nil, fmt.Errorf("failed to list postings: %w", err)
		}
		index = ranking.IndexPostings(postings)
	}
	return ranking.Rank(results, index, opts), nil
}

// Recommend returns the top limit matches with guidance.
func (e *Engine) Recommend(ctx context.Context, profile *types.CandidateProfile, filter catalog.Filter, limit int) ([]types.Recommendation, error) {
	results, index, err := e.match(ctx, profile, filter)
	if err != nil {
		return nil, err
	}
	return ranking.Recommend(results, index, limit, e.now()), nil
}

// ListJobs returns catalog postings passing filter, ordered by key.
func (e *Engine) ListJobs(ctx context.Context, filter catalog.Filter, key types.SortKey) ([]types.JobPosting, error) {
	if err := e.requireCatalog(); err != nil {
		return nil, err
	}
	postings, err := e.catalog.ListPostings(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ranking.SortPostings(postings, key), nil
}

// GetJob returns one posting or an error wrapping catalog.ErrNotFound.
func (e *Engine) GetJob(ctx context.Context, id string) (*types.JobPosting, error) {
	if err := e.requireCatalog(); err != nil {
		return nil, err
	}
	return e.catalog.GetPosting(ctx, id)
}

// Trends aggregates market statistics over the whole catalog.
func (e *Engine) Trends(ctx context.Context) (types.MarketTrends, error) {
	if err := e.requireCatalog(); err != nil {
		return types.MarketTrends{}, err
	}
	postings, err := e.catalog.ListPostings(ctx, catalog.Filter{})
	if err != nil {
		return types.MarketTrends{}, err
	}
	return catalog.ComputeTrends(postings), nil
}
