package ranking

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	// DefaultRecommendations is used when no limit is given.
	DefaultRecommendations = 5

	maxWhyReasons     = 3
	maxSkillsToLearn  = 3
	recentPostingDays = 7
)

// Recommend returns the top matches by score with guidance for each.
// Results whose posting is unknown are skipped.
func Recommend(results []types.MatchResult, postings map[string]types.JobPosting, limit int, now time.Time) []types.Recommendation {
	if limit <= 0 {
		limit = DefaultRecommendations
	}
	ranked := Rank(results, postings, Options{SortKey: types.SortByScore})

	recommendations := make([]types.Recommendation, 0, min(limit, len(ranked)))
	for _, r := range ranked {
		if len(recommendations) == limit {
			break
		}
		posting, ok := postings[r.JobID]
		if !ok {
			continue
		}
		recommendations = append(recommendations, types.Recommendation{
			JobID:          r.JobID,
			Title:          posting.Title,
			Company:        posting.Company,
			MatchScore:     r.MatchScore,
			WhyRecommended: whyRecommended(r),
			NextSteps:      nextSteps(r, &posting, now),
		})
	}
	return recommendations
}

func whyRecommended(r types.MatchResult) []string {
	why := make([]string, 0, maxWhyReasons)
	for _, reason := range r.Reasons {
		if len(why) == maxWhyReasons {
			break
		}
		why = append(why, reason)
	}
	return why
}

func nextSteps(r types.MatchResult, posting *types.JobPosting, now time.Time) []string {
	steps := []string{}
	if n := len(r.MissingRequired); n > 0 {
		steps = append(steps, "Consider learning: "+strings.Join(r.MissingRequired[:min(n, maxSkillsToLearn)], ", "))
	}
	if !posting.PostedDate.IsZero() && now.Sub(posting.PostedDate) <= recentPostingDays*24*time.Hour {
		steps = append(steps, "Apply soon, this role was posted recently")
	}
	if len(r.MatchedRequired) > 0 {
		steps = append(steps, fmt.Sprintf("Highlight your %s experience", r.MatchedRequired[0]))
	}
	if len(steps) == 0 {
		steps = append(steps, "Tailor your resume to this role's requirements")
	}
	return steps
}
