// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(line string) string {
	runes := []rune(line)
	if len(runes) > boxWidth-4 {
		return string(runes[:boxWidth-7]) + "..."
	}
	return line
}

func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), maxItemsToShow)
	for _, item := range items[:count] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > maxItemsToShow {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-maxItemsToShow)
	}
	sb.WriteString("\n")
}

// PrintProfile outputs a human-readable summary of an extracted candidate profile.
func (p *Printer) PrintProfile(profile *types.CandidateProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Experience: %.1f years\n", profile.YearsOfExperience)
	fmt.Fprintf(&sb, "Education:  %s", profile.EducationLevel)
	if profile.FieldOfStudy != "" {
		fmt.Fprintf(&sb, " (%s)", profile.FieldOfStudy)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Industry:   %s\n", profile.Industry)
	fmt.Fprintf(&sb, "Achievements quantified: %d\n\n", profile.QuantifiedAchievements)

	skills := make([]string, 0, len(profile.Skills))
	for _, s := range profile.Skills {
		skills = append(skills, fmt.Sprintf("%s [%s] %.2f", s.Name, s.Category, s.Confidence))
	}
	writeList(&sb, "Skills", skills)
	writeList(&sb, "Titles", profile.JobTitles)
	writeList(&sb, "Warnings", profile.Warnings)

	p.printBox("Candidate Profile", sb.String())
}

// PrintAnalysis outputs the score breakdown and feedback of an analysis.
func (p *Printer) PrintAnalysis(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Overall:    %3d/100\n", result.OverallScore)
	fmt.Fprintf(&sb, "Skills:     %3d/100\n", result.SkillsScore)
	fmt.Fprintf(&sb, "Experience: %3d/100\n", result.ExperienceScore)
	fmt.Fprintf(&sb, "Education:  %3d/100\n", result.EducationScore)
	if result.LowConfidence {
		sb.WriteString("⚠ Low confidence extraction\n")
	}
	sb.WriteString("\n")

	writeList(&sb, "Strengths", result.Strengths)
	writeList(&sb, "Weaknesses", result.Weaknesses)
	writeList(&sb, "Suggestions", result.Suggestions)

	p.printBox("Resume Analysis", sb.String())
}

// PrintMatches outputs one line per match with the missing required skills.
func (p *Printer) PrintMatches(results []types.MatchResult) {
	var sb strings.Builder
	if len(results) == 0 {
		sb.WriteString("No matching jobs\n")
	}
	for i, r := range results {
		fmt.Fprintf(&sb, "%2d. %-30s %5.1f%%\n", i+1, r.JobID, r.MatchScore*100)
		if len(r.MissingRequired) > 0 {
			fmt.Fprintf(&sb, "    missing: %s\n", strings.Join(r.MissingRequired, ", "))
		}
	}
	p.printBox(fmt.Sprintf("Job Matches (%d)", len(results)), sb.String())
}

// PrintRecommendations outputs recommended jobs with reasons and next steps.
func (p *Printer) PrintRecommendations(recs []types.Recommendation) {
	var sb strings.Builder
	if len(recs) == 0 {
		sb.WriteString("No recommendations\n")
	}
	for i, r := range recs {
		fmt.Fprintf(&sb, "%d. %s at %s (%.0f%%)\n", i+1, r.Title, r.Company, r.MatchScore*100)
		for _, why := range r.WhyRecommended {
			fmt.Fprintf(&sb, "   + %s\n", why)
		}
		for _, step := range r.NextSteps {
			fmt.Fprintf(&sb, "   → %s\n", step)
		}
	}
	p.printBox("Recommendations", sb.String())
}

// PrintTrends outputs catalog-wide market statistics.
func (p *Printer) PrintTrends(trends *types.MarketTrends) {
	if trends == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Total jobs: %d\n", trends.TotalJobs)
	fmt.Fprintf(&sb, "Remote:     %.2f%%\n", trends.RemotePercentage)
	if trends.AverageSalaryMin > 0 || trends.AverageSalaryMax > 0 {
		fmt.Fprintf(&sb, "Avg salary: %d - %d\n", trends.AverageSalaryMin, trends.AverageSalaryMax)
	}
	sb.WriteString("\n")

	skills := make([]string, 0, len(trends.TopSkills))
	for _, s := range trends.TopSkills {
		skills = append(skills, fmt.Sprintf("%s (%d)", s.Skill, s.Count))
	}
	writeList(&sb, "Top Skills", skills)
	writeList(&sb, "Industries", distribution(trends.IndustryDistribution))
	writeList(&sb, "Levels", distribution(trends.ExperienceLevelDistribution))

	p.printBox("Market Trends", sb.String())
}

// distribution renders counts by descending count, then key.
func distribution(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, fmt.Sprintf("%s: %d", k, counts[k]))
	}
	return out
}
