package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/catalog"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/jonathan/resume-analyzer/internal/ranking"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// rankFlags are shared by match and rank.
type rankFlags struct {
	sortKey  string
	remote   string
	minScore float64
	limit    int
	out      string
	verbose  bool
}

func (f *rankFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.sortKey, "sort", "score", "Sort key: score, salary or date")
	cmd.Flags().StringVar(&f.remote, "remote", "", "Keep only remote (true) or on-site (false) postings")
	cmd.Flags().Float64Var(&f.minScore, "min-score", 0, "Drop matches scoring below this value")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "Maximum number of results (0 for all)")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Write JSON output to this file instead of stdout")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Print a human-readable summary to stderr")
}

func (f *rankFlags) options() (ranking.Options, error) {
	key, err := types.ParseSortKey(f.sortKey)
	if err != nil {
		return ranking.Options{}, err
	}
	opts := ranking.Options{SortKey: key, MinScore: f.minScore, Limit: f.limit}
	if f.remote != "" {
		remote, err := strconv.ParseBool(f.remote)
		if err != nil {
			return ranking.Options{}, fmt.Errorf("--remote must be true or false, got %q", f.remote)
		}
		opts.Remote = &remote
	}
	return opts, nil
}

func newMatchCmd(a *app) *cobra.Command {
	var (
		profilePath string
		industry    string
		flags       rankFlags
	)
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match a candidate profile against the job catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(profilePath)
			if err != nil {
				return fmt.Errorf("failed to read profile: %w", err)
			}
			profile, err := loadProfile(data)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			cat, closeCatalog, err := a.requireCatalog(ctx)
			if err != nil {
				return err
			}
			defer closeCatalog()

			engine, _ := a.newEngine(ctx, cat, false)
			results, err := engine.MatchAndRank(ctx, profile, catalog.Filter{Industry: industry}, opts)
			if err != nil {
				return err
			}

			if flags.verbose {
				observability.NewPrinter(cmd.ErrOrStderr()).PrintMatches(results)
			}
			return writeJSON(cmd.OutOrStdout(), flags.out, map[string]any{"matches": results})
		},
	}
	cmd.Flags().StringVarP(&profilePath, "profile", "p", "", "Candidate profile JSON (as printed by analyze)")
	cmd.Flags().StringVar(&industry, "industry", "", "Only match postings in this industry")
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("profile")
	return cmd
}

// loadProfile accepts either a bare profile or the full analyze output.
func loadProfile(data []byte) (*types.CandidateProfile, error) {
	var wrapper struct {
		Profile json.RawMessage `json:"profile"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil && len(wrapper.Profile) > 0 {
		data = wrapper.Profile
	}
	return parsing.ParseProfileJSON(data)
}

func newRankCmd(a *app) *cobra.Command {
	var (
		resultsPath string
		flags       rankFlags
	)
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Sort and filter previously computed match results",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}

			var doc struct {
				Matches []types.MatchResult `json:"matches"`
				Results []types.MatchResult `json:"results"`
			}
			if err := readJSONFile(resultsPath, &doc); err != nil {
				return err
			}
			results := append(doc.Matches, doc.Results...)

			ctx := cmd.Context()
			cat, closeCatalog, err := a.openCatalog(ctx)
			if err != nil {
				return err
			}
			defer closeCatalog()

			engine, _ := a.newEngine(ctx, cat, false)
			ranked, err := engine.Rank(ctx, results, opts)
			if err != nil {
				return err
			}

			if flags.verbose {
				observability.NewPrinter(cmd.ErrOrStderr()).PrintMatches(ranked)
			}
			return writeJSON(cmd.OutOrStdout(), flags.out, map[string]any{"results": ranked})
		},
	}
	cmd.Flags().StringVarP(&resultsPath, "results", "r", "", `Match results JSON ({"matches": [...]} or {"results": [...]})`)
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("results")
	return cmd
}
