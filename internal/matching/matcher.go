// Package matching scores a candidate profile against job postings.
package matching

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-analyzer/internal/experience"
	"github.com/jonathan/resume-analyzer/internal/skills"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// DefaultConcurrency bounds the number of postings scored at once.
const DefaultConcurrency = 8

// Matcher produces one MatchResult per posting.
type Matcher struct {
	weights     Weights
	concurrency int
	logger      *zap.Logger
}

// NewMatcher creates a Matcher. concurrency <= 0 selects DefaultConcurrency.
func NewMatcher(weights Weights, concurrency int, logger *zap.Logger) *Matcher {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{weights: weights, concurrency: concurrency, logger: logger}
}

// candidate is the comparison view of a profile, built once per run.
type candidate struct {
	profile *types.CandidateProfile
	keys    map[string]string
	level   types.ExperienceLevel
}

func newCandidate(profile *types.CandidateProfile) candidate {
	if profile == nil {
		profile = &types.CandidateProfile{}
	}
	return candidate{
		profile: profile,
		keys:    skills.KeySet(profile.Skills),
		level:   experience.LevelForYears(profile.YearsOfExperience),
	}
}

// Match scores profile against every posting. Results are in posting order.
// Postings are scored in parallel; the only error is ctx's.
func (m *Matcher) Match(ctx context.Context, profile *types.CandidateProfile, postings []types.JobPosting) ([]types.MatchResult, error) {
	start := time.Now()
	c := newCandidate(profile)
	results := make([]types.MatchResult, len(postings))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)
	for i := range postings {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = m.score(c, &postings[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.logger.Debug("matched profile",
		zap.Int("postings", len(postings)),
		zap.Duration("duration", time.Since(start)),
	)
	return results, nil
}

// MatchOne scores a single posting.
func (m *Matcher) MatchOne(profile *types.CandidateProfile, posting *types.JobPosting) types.MatchResult {
	return m.score(newCandidate(profile), posting)
}

func (m *Matcher) score(c candidate, posting *types.JobPosting) types.MatchResult {
	targets := skills.BuildTargets(posting)

	matched, missing := splitTargets(targets.Required, c.keys)
	preferredMatched, _ := splitTargets(targets.Preferred, c.keys)

	requiredOverlap := 1.0
	if len(targets.Required) > 0 {
		requiredOverlap = float64(len(matched)) / float64(len(targets.Required))
	}
	preferredOverlap := float64(len(preferredMatched)) / float64(max(1, len(targets.Preferred)))
	fit, distance := m.levelFit(c.level, posting.ExperienceLevel)

	score := m.weights.Required*requiredOverlap +
		m.weights.Preferred*preferredOverlap +
		m.weights.Level*fit
	score = math.Round(math.Min(1, math.Max(0, score))*1000) / 1000

	return types.MatchResult{
		JobID:           posting.ID,
		MatchScore:      score,
		MatchedRequired: sortedSet(matched),
		MissingRequired: sortedSet(missing),
		ExtraSkills:     sortedSet(extraSkills(c.keys, targets)),
		Reasons: reasons(reasonInput{
			requiredTotal:    len(targets.Required),
			requiredMatched:  len(matched),
			preferredTotal:   len(targets.Preferred),
			preferredOverlap: preferredOverlap,
			candidateLevel:   c.level,
			postingLevel:     posting.ExperienceLevel,
			levelDistance:    distance,
			industryMatch:    posting.Industry != "" && strings.EqualFold(posting.Industry, c.profile.Industry),
			industry:         posting.Industry,
			score:            score,
		}),
	}
}

// levelFit returns the fit value and bucket distance (-1 when unknown).
func (m *Matcher) levelFit(candidateLevel, postingLevel types.ExperienceLevel) (float64, int) {
	switch d := experience.Distance(candidateLevel, postingLevel); d {
	case -1:
		return m.weights.LevelUnknown, d
	case 0:
		return m.weights.LevelSame, d
	case 1:
		return m.weights.LevelAdjacent, d
	default:
		return m.weights.LevelOther, d
	}
}

// splitTargets partitions targets into those the candidate has and those it lacks,
// using the posting's spelling.
func splitTargets(targets []skills.Target, candidateKeys map[string]string) (present, absent []string) {
	for _, t := range targets {
		if _, ok := candidateKeys[t.Key]; ok {
			present = append(present, t.Name)
		} else {
			absent = append(absent, t.Name)
		}
	}
	return present, absent
}

func extraSkills(candidateKeys map[string]string, targets skills.Targets) []string {
	posting := make(map[string]bool, len(targets.Required)+len(targets.Preferred))
	for _, t := range targets.Required {
		posting[t.Key] = true
	}
	for _, t := range targets.Preferred {
		posting[t.Key] = true
	}
	var extra []string
	for key, name := range candidateKeys {
		if !posting[key] {
			extra = append(extra, name)
		}
	}
	return extra
}

// sortedSet sorts case-insensitively; the result is never nil.
func sortedSet(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	sort.Slice(out, func(i, j int) bool {
		li, lj := strings.ToLower(out[i]), strings.ToLower(out[j])
		if li != lj {
			return li < lj
		}
		return out[i] < out[j]
	})
	return out
}

type reasonInput struct {
	requiredTotal    int
	requiredMatched  int
	preferredTotal   int
	preferredOverlap float64
	candidateLevel   types.ExperienceLevel
	postingLevel     types.ExperienceLevel
	levelDistance    int
	industryMatch    bool
	industry         string
	score            float64
}

// reasons lists the terms that contributed materially to the score.
func reasons(in reasonInput) []string {
	out := []string{}

	if in.requiredTotal == 0 {
		out = append(out, "No required skills listed")
	} else {
		overlap := float64(in.requiredMatched) / float64(in.requiredTotal)
		switch {
		case overlap >= 1:
			out = append(out, "Matches all required skills")
		case overlap >= 0.75:
			out = append(out, fmt.Sprintf("Matches most required skills (%d/%d)", in.requiredMatched, in.requiredTotal))
		case overlap >= 0.5:
			out = append(out, fmt.Sprintf("Matches some required skills (%d/%d)", in.requiredMatched, in.requiredTotal))
		}
	}

	if in.preferredTotal > 0 && in.preferredOverlap >= 0.5 {
		out = append(out, "Has many preferred skills")
	}

	switch in.levelDistance {
	case 0:
		out = append(out, fmt.Sprintf("Experience level matches (%s)", in.postingLevel))
	case 1:
		out = append(out, fmt.Sprintf("Experience level is close to the role (%s vs %s)", in.candidateLevel, in.postingLevel))
	}

	if in.industryMatch {
		out = append(out, fmt.Sprintf("Background in %s industry", in.industry))
	}

	switch {
	case in.score >= 0.8:
		out = append(out, "Excellent overall match")
	case in.score >= 0.6:
		out = append(out, "Good overall match")
	case in.score >= 0.4:
		out = append(out, "Moderate overall match")
	}
	return out
}
