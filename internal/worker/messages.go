// Package worker runs analysis jobs from an AMQP queue. Each job names a
// document by reference; the worker fetches it, analyzes it, optionally
// matches and ranks it, and publishes the outcome to a topic exchange.
package worker

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-analyzer/internal/pipeline"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Queue topology defaults.
const (
	DefaultQueue    = "analysis_jobs"
	ResultsExchange = "analysis_results"
)

// Result statuses.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

var validate = validator.New()

// Job is an analysis request read from the queue.
type Job struct {
	RequestID string `json:"request_id" validate:"required"`
	MIMEType  string `json:"mime_type,omitempty"`
	Source    string `json:"source" validate:"required"`
	Match     bool   `json:"match"`
	SortKey   string `json:"sort_key,omitempty" validate:"omitempty,oneof=score salary date"`
	Remote    *bool  `json:"remote,omitempty"`
	Industry  string `json:"industry,omitempty"`
	Limit     int    `json:"limit,omitempty" validate:"gte=0"`
}

// Validate checks required fields.
func (j *Job) Validate() error {
	return validate.Struct(j)
}

// Result is published once per job.
type Result struct {
	RequestID string                  `json:"request_id"`
	Status    string                  `json:"status"`
	Analysis  *types.AnalysisResult   `json:"analysis,omitempty"`
	Profile   *types.CandidateProfile `json:"profile,omitempty"`
	Matches   []types.MatchResult     `json:"matches,omitempty"`
	Error     string                  `json:"error,omitempty"`
}

func completed(requestID string, analysis *pipeline.Analysis, matches []types.MatchResult) Result {
	return Result{
		RequestID: requestID,
		Status:    StatusCompleted,
		Analysis:  &analysis.Analysis,
		Profile:   analysis.Profile,
		Matches:   matches,
	}
}

func failed(requestID string, err error) Result {
	return Result{RequestID: requestID, Status: StatusFailed, Error: err.Error()}
}

// RoutingKey is the routing key results for requestID are published under.
func RoutingKey(requestID string) string {
	return fmt.Sprintf("analysis.%s", requestID)
}
