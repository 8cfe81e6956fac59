package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/catalog"
	"github.com/jonathan/resume-analyzer/internal/fetch"
	"github.com/jonathan/resume-analyzer/internal/pipeline"
	"github.com/jonathan/resume-analyzer/internal/ranking"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Engine is the part of pipeline.Engine the worker drives.
type Engine interface {
	AnalyzeWithID(ctx context.Context, requestID string, doc types.ResumeDocument) (*pipeline.Analysis, error)
	MatchAndRank(ctx context.Context, profile *types.CandidateProfile, filter catalog.Filter, opts ranking.Options) ([]types.MatchResult, error)
}

// Publisher delivers results.
type Publisher interface {
	Publish(ctx context.Context, result Result) error
}

// Outcome tells the consumer how to settle a delivery.
type Outcome int

// Delivery outcomes.
const (
	// Ack removes the message; the job finished or can never succeed.
	Ack Outcome = iota
	// Requeue returns the message to the queue for another attempt.
	Requeue
)

func (o Outcome) String() string {
	if o == Requeue {
		return "requeue"
	}
	return "ack"
}

// Processor handles one job at a time and is safe for concurrent use.
type Processor struct {
	engine    Engine
	fetcher   fetch.Source
	publisher Publisher
	logger    *zap.Logger
}

// NewProcessor creates a Processor.
func NewProcessor(engine Engine, fetcher fetch.Source, publisher Publisher, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{engine: engine, fetcher: fetcher, publisher: publisher, logger: logger}
}

// Process runs the job in body. redelivered marks a message that already
// failed transiently once; a second transient failure is reported as failed.
// Work interrupted by ctx cancellation is always requeued.
func (p *Processor) Process(ctx context.Context, body []byte, redelivered bool) Outcome {
	var job Job
	if err := json.Unmarshal(body, &job); err != nil {
		p.logger.Warn("dropping malformed job", zap.Error(err))
		return Ack
	}
	log := p.logger.With(zap.String("request_id", job.RequestID))
	if err := job.Validate(); err != nil {
		log.Warn("invalid job", zap.Error(err))
		return p.publish(ctx, log, failed(job.RequestID, err), redelivered)
	}

	result, err := p.run(ctx, &job)
	if err != nil {
		if interrupted(ctx, err) {
			log.Info("job interrupted, requeueing", zap.Error(err))
			return Requeue
		}
		if isTransient(err) && !redelivered {
			log.Info("transient failure, requeueing", zap.Error(err))
			return Requeue
		}
		log.Info("job failed", zap.Error(err))
		return p.publish(ctx, log, failed(job.RequestID, err), redelivered)
	}
	log.Info("job completed",
		zap.Int("overall_score", result.Analysis.OverallScore),
		zap.Int("matches", len(result.Matches)))
	return p.publish(ctx, log, result, redelivered)
}

func (p *Processor) run(ctx context.Context, job *Job) (Result, error) {
	doc, err := p.fetcher.Fetch(ctx, job.Source)
	if err != nil {
		return Result{}, err
	}
	if job.MIMEType != "" {
		doc.MIMEType = job.MIMEType
	}

	analysis, err := p.engine.AnalyzeWithID(ctx, job.RequestID, *doc)
	if err != nil {
		return Result{}, err
	}
	if !job.Match {
		return completed(job.RequestID, analysis, nil), nil
	}

	key, err := types.ParseSortKey(job.SortKey)
	if err != nil {
		return Result{}, err
	}
	matches, err := p.engine.MatchAndRank(ctx, analysis.Profile,
		catalog.Filter{Industry: job.Industry},
		ranking.Options{SortKey: key, Remote: job.Remote, Limit: job.Limit})
	if err != nil {
		return Result{}, fmt.Errorf("matching failed: %w", err)
	}
	return completed(job.RequestID, analysis, matches), nil
}

// publish delivers result. A failed publish is retried through one requeue;
// after that the result is dropped so a broken publisher cannot loop a job.
func (p *Processor) publish(ctx context.Context, log *zap.Logger, result Result, redelivered bool) Outcome {
	err := p.publisher.Publish(ctx, result)
	switch {
	case err == nil:
		return Ack
	case interrupted(ctx, err) || !redelivered:
		log.Warn("failed to publish result, requeueing", zap.Error(err))
		return Requeue
	default:
		log.Error("failed to publish result, dropping job",
			zap.String("status", result.Status), zap.Error(err))
		return Ack
	}
}

// interrupted reports whether err came from the consumer shutting down.
func interrupted(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, context.Canceled)
}

// isTransient reports whether err may clear up on retry: retried fetch
// failures and deadlines.
func isTransient(err error) bool {
	var fetchErr *fetch.Error
	if errors.As(err, &fetchErr) {
		return fetchErr.Temporary
	}
	return errors.Is(err, context.DeadlineExceeded)
}
