// Package types provides type definitions for structured data used throughout the resume analyzer.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// ResumeDocument is an uploaded resume: raw bytes plus the declared MIME type.
// It is consumed once by the extractor and not retained.
type ResumeDocument struct {
	Data     []byte
	MIMEType string
	Filename string
}

// Size returns the document size in bytes.
func (d ResumeDocument) Size() int64 {
	return int64(len(d.Data))
}

// SectionLabel identifies a detected resume section.
type SectionLabel string

// Section labels recognized by header matching.
const (
	SectionSummary        SectionLabel = "summary"
	SectionExperience     SectionLabel = "experience"
	SectionEducation      SectionLabel = "education"
	SectionSkills         SectionLabel = "skills"
	SectionProjects       SectionLabel = "projects"
	SectionCertifications SectionLabel = "certifications"
)

// Section marks a labeled region of NormalizedText by line index.
// HeaderLine is the index of the header itself; the body spans (HeaderLine, EndLine).
type Section struct {
	Label      SectionLabel `json:"label"`
	HeaderLine int          `json:"header_line"`
	EndLine    int          `json:"end_line"`
}

// NormalizedText is cleaned plain text with detected section boundaries, in document order.
type NormalizedText struct {
	Text     string    `json:"text"`
	Sections []Section `json:"sections"`
}

// Lines splits the text into lines.
func (n NormalizedText) Lines() []string {
	if n.Text == "" {
		return nil
	}
	return strings.Split(n.Text, "\n")
}

// Labels returns the section labels in document order.
func (n NormalizedText) Labels() []SectionLabel {
	labels := make([]SectionLabel, 0, len(n.Sections))
	for _, s := range n.Sections {
		labels = append(labels, s.Label)
	}
	return labels
}

// HasSection reports whether a section with the given label was detected.
func (n NormalizedText) HasSection(label SectionLabel) bool {
	for _, s := range n.Sections {
		if s.Label == label {
			return true
		}
	}
	return false
}

// SectionLines returns the body lines of every section with the given label,
// concatenated in document order. Headers are excluded.
func (n NormalizedText) SectionLines(label SectionLabel) []string {
	lines := n.Lines()
	var out []string
	for _, s := range n.Sections {
		if s.Label != label {
			continue
		}
		end := min(s.EndLine, len(lines))
		for i := s.HeaderLine + 1; i < end; i++ {
			out = append(out, lines[i])
		}
	}
	return out
}

// SectionText returns SectionLines joined with newlines.
func (n NormalizedText) SectionText(label SectionLabel) string {
	return strings.Join(n.SectionLines(label), "\n")
}
