package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/internal/types"
)

var validate = validator.New()

// Format is the encoding of a catalog file.
type Format string

// Supported catalog file formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from the file extension; anything other
// than .yaml/.yml is treated as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// postedDateLayouts are tried in order for posted_date values.
var postedDateLayouts = []string{time.RFC3339, "2006-01-02", "2006-01"}

type fileCatalog struct {
	Postings []filePosting `json:"postings"`
}

// filePosting accepts date-only posted_date values, which time.Time's JSON
// decoding rejects.
type filePosting struct {
	types.JobPosting
	PostedDate string `json:"posted_date"`
}

// LoadFile reads a catalog file and returns it as a Static catalog.
func LoadFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}
	postings, err := DecodeCatalog(data, FormatForPath(path))
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	s, err := NewStatic(postings)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "invalid catalog", Cause: err}
	}
	return s, nil
}

// DecodeCatalog parses a {"postings": [...]} document, validates it against
// the catalog schema and the posting struct rules, and rejects duplicate IDs.
func DecodeCatalog(data []byte, format Format) ([]types.JobPosting, error) {
	if format == FormatYAML {
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
		}
		data = converted
	}

	if err := schemas.ValidateCatalogJSON(data); err != nil {
		return nil, &LoadError{Message: "schema validation failed", Cause: err}
	}

	var doc fileCatalog
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Message: "failed to decode postings", Cause: err}
	}

	postings := make([]types.JobPosting, 0, len(doc.Postings))
	seen := make(map[string]bool, len(doc.Postings))
	for i, fp := range doc.Postings {
		p := fp.JobPosting
		posted, err := parsePostedDate(fp.PostedDate)
		if err != nil {
			return nil, &LoadError{Message: fmt.Sprintf("posting %d (%s)", i, p.ID), Cause: err}
		}
		p.PostedDate = posted
		if err := validate.Struct(&p); err != nil {
			return nil, &LoadError{Message: fmt.Sprintf("posting %d (%s)", i, p.ID), Cause: err}
		}
		if p.SalaryMin != nil && p.SalaryMax != nil && *p.SalaryMin > *p.SalaryMax {
			return nil, &LoadError{Message: fmt.Sprintf("posting %s: salary_min exceeds salary_max", p.ID)}
		}
		if seen[p.ID] {
			return nil, &LoadError{Message: fmt.Sprintf("duplicate posting id %q", p.ID)}
		}
		seen[p.ID] = true
		if p.RequiredSkills == nil {
			p.RequiredSkills = []string{}
		}
		if p.PreferredSkills == nil {
			p.PreferredSkills = []string{}
		}
		postings = append(postings, p)
	}
	return postings, nil
}

// EncodeCatalog writes postings as a JSON catalog document.
func EncodeCatalog(postings []types.JobPosting) ([]byte, error) {
	if postings == nil {
		postings = []types.JobPosting{}
	}
	return json.MarshalIndent(map[string]any{"postings": postings}, "", "  ")
}

func parsePostedDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range postedDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid posted_date %q", s)
}

// yamlToJSON re-encodes a YAML document as JSON so that both formats go
// through the same schema and decoder.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(normalizeYAML(doc))
}

// normalizeYAML converts map[any]any nodes, which encoding/json cannot
// marshal, and renders timestamps as RFC 3339.
func normalizeYAML(v any) any {
	switch node := v.(type) {
	case map[string]any:
		for k, child := range node {
			node[k] = normalizeYAML(child)
		}
		return node
	case map[any]any:
		out := make(map[string]any, len(node))
		for k, child := range node {
			out[fmt.Sprint(k)] = normalizeYAML(child)
		}
		return out
	case []any:
		for i, child := range node {
			node[i] = normalizeYAML(child)
		}
		return node
	case time.Time:
		return node.UTC().Format(time.RFC3339)
	}
	return v
}
