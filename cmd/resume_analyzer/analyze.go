package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/types"
)

type analyzeOutput struct {
	RequestID string                  `json:"request_id"`
	Analysis  types.AnalysisResult    `json:"analysis"`
	Profile   *types.CandidateProfile `json:"profile"`
}

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		file    string
		out     string
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a resume and print the profile and scores as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var doc *types.ResumeDocument
			if isRemoteRef(file) {
				fetcher, err := a.newFetcher(ctx, true)
				if err != nil {
					return err
				}
				if doc, err = fetcher.Fetch(ctx, file); err != nil {
					return err
				}
			} else {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("failed to read resume: %w", err)
				}
				doc = &types.ResumeDocument{
					Data:     data,
					MIMEType: ingestion.MIMETypeFromFilename(file),
					Filename: filepath.Base(file),
				}
			}

			engine, _ := a.newEngine(ctx, nil, false)
			analysis, err := engine.Analyze(ctx, *doc)
			if err != nil {
				return err
			}

			if verbose {
				printer := observability.NewPrinter(cmd.ErrOrStderr())
				printer.PrintProfile(analysis.Profile)
				printer.PrintAnalysis(&analysis.Analysis)
			}

			return writeJSON(cmd.OutOrStdout(), out, analyzeOutput{
				RequestID: analysis.RequestID,
				Analysis:  analysis.Analysis,
				Profile:   analysis.Profile,
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Resume file (PDF, DOC or DOCX), https:// URL or s3://bucket/key")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write JSON output to this file instead of stdout")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print a human-readable summary to stderr")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func isRemoteRef(ref string) bool {
	for _, prefix := range []string{"http://", "https://", "s3://"} {
		if strings.HasPrefix(ref, prefix) {
			return true
		}
	}
	return false
}

// writeJSON writes v as indented JSON to path, or to w when path is empty.
func writeJSON(w io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')
	if path == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// readJSONFile decodes the JSON file at path into v.
func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
