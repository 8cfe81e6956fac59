package types

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// MatchRequest asks for matches of a profile against the catalog.
type MatchRequest struct {
	Profile  *CandidateProfile `json:"profile" validate:"required"`
	Industry string            `json:"industry,omitempty"`
}

// RankRequest orders and filters previously computed matches.
type RankRequest struct {
	Results  []MatchResult `json:"results" validate:"dive"`
	SortKey  string        `json:"sort_key,omitempty" validate:"omitempty,oneof=score salary date"`
	Remote   *bool         `json:"remote,omitempty"`
	MinScore float64       `json:"min_score,omitempty" validate:"gte=0,lte=1"`
	Limit    int           `json:"limit,omitempty" validate:"gte=0"`
}

// RecommendRequest asks for the top recommendations for a profile.
type RecommendRequest struct {
	Profile  *CandidateProfile `json:"profile" validate:"required"`
	Industry string            `json:"industry,omitempty"`
	Limit    int               `json:"limit,omitempty" validate:"gte=0,lte=50"`
}

// Validate validates the MatchRequest using the validator.
func (r *MatchRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the RankRequest using the validator.
func (r *RankRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the RecommendRequest using the validator.
func (r *RecommendRequest) Validate() error {
	return validate.Struct(r)
}

// Validate checks skill confidences and bounds on a profile.
func (p *CandidateProfile) Validate() error {
	return validate.Struct(p)
}
