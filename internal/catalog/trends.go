package catalog

import (
	"math"
	"sort"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// TopSkillsLimit caps MarketTrends.TopSkills.
const TopSkillsLimit = 10

// ComputeTrends aggregates required-skill demand, industry and level
// distributions, remote share and average structured salary over postings.
// Skills are grouped case-insensitively under their first spelling.
func ComputeTrends(postings []types.JobPosting) types.MarketTrends {
	trends := types.MarketTrends{
		TotalJobs:                   len(postings),
		TopSkills:                   []types.SkillCount{},
		IndustryDistribution:        map[string]int{},
		ExperienceLevelDistribution: map[string]int{},
	}
	if len(postings) == 0 {
		return trends
	}

	counts := map[string]*types.SkillCount{}
	var remote, minCount, maxCount, minSum, maxSum int
	for i := range postings {
		p := &postings[i]
		seen := map[string]bool{}
		for _, skill := range p.RequiredSkills {
			key := strings.ToLower(strings.TrimSpace(skill))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			if c, ok := counts[key]; ok {
				c.Count++
			} else {
				counts[key] = &types.SkillCount{Skill: strings.TrimSpace(skill), Count: 1}
			}
		}
		if p.Industry != "" {
			trends.IndustryDistribution[p.Industry]++
		}
		if p.ExperienceLevel != "" {
			trends.ExperienceLevelDistribution[string(p.ExperienceLevel)]++
		}
		if p.Remote {
			remote++
		}
		if p.SalaryMin != nil {
			minSum += *p.SalaryMin
			minCount++
		}
		if p.SalaryMax != nil {
			maxSum += *p.SalaryMax
			maxCount++
		}
	}

	for _, c := range counts {
		trends.TopSkills = append(trends.TopSkills, *c)
	}
	sort.Slice(trends.TopSkills, func(i, j int) bool {
		a, b := trends.TopSkills[i], trends.TopSkills[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return strings.ToLower(a.Skill) < strings.ToLower(b.Skill)
	})
	if len(trends.TopSkills) > TopSkillsLimit {
		trends.TopSkills = trends.TopSkills[:TopSkillsLimit]
	}

	trends.RemotePercentage = math.Round(float64(remote)/float64(len(postings))*10000) / 100
	if minCount > 0 {
		trends.AverageSalaryMin = minSum / minCount
	}
	if maxCount > 0 {
		trends.AverageSalaryMax = maxSum / maxCount
	}
	return trends
}
