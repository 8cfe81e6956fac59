package scoring

import (
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Field relevance tiers.
const (
	RelevanceDirect    = 1.0
	RelevanceRelated   = 0.7
	RelevanceUnknown   = 0.5
	RelevanceUnrelated = 0.2
)

// industryFields lists fields of study that feed each industry directly,
// and fields that are adjacent to it.
var industryFields = map[string]struct {
	direct  []string
	related []string
}{
	"Technology": {
		direct:  []string{"computer", "software", "information technology", "information systems", "data science", "computing", "cs"},
		related: []string{"mathematics", "math", "statistics", "physics", "engineering", "electrical", "electronics", "machine learning"},
	},
	"Finance": {
		direct:  []string{"finance", "financial", "accounting", "economics"},
		related: []string{"mathematics", "statistics", "business", "actuarial"},
	},
	"Healthcare": {
		direct:  []string{"medicine", "medical", "nursing", "health", "pharmacy", "biomedical"},
		related: []string{"biology", "chemistry", "biochemistry", "psychology"},
	},
	"Education": {
		direct:  []string{"education", "teaching", "pedagogy"},
		related: []string{"psychology", "english", "history", "mathematics", "linguistics"},
	},
	"Marketing": {
		direct:  []string{"marketing", "advertising", "communications"},
		related: []string{"business", "journalism", "design", "psychology"},
	},
	"Sales": {
		direct:  []string{"sales", "marketing", "business"},
		related: []string{"communications", "economics"},
	},
	"Consulting": {
		direct:  []string{"business", "management", "economics"},
		related: []string{"finance", "engineering", "mathematics", "statistics"},
	},
	"Manufacturing": {
		direct:  []string{"industrial", "mechanical", "manufacturing", "materials"},
		related: []string{"engineering", "chemical", "electrical", "physics"},
	},
}

// FieldRelevance rates how well a field of study fits an industry:
// RelevanceDirect, RelevanceRelated, RelevanceUnrelated, or RelevanceUnknown
// when either side is missing or the industry has no field table.
func FieldRelevance(field, industry string) float64 {
	fieldLower := strings.ToLower(strings.TrimSpace(field))
	fields, ok := industryFields[industry]
	if fieldLower == "" || !ok {
		return RelevanceUnknown
	}
	if containsAnyWord(fieldLower, fields.direct) {
		return RelevanceDirect
	}
	if containsAnyWord(fieldLower, fields.related) {
		return RelevanceRelated
	}
	return RelevanceUnrelated
}

// containsAnyWord matches keywords on word boundaries so "cs" does not
// match "physics".
func containsAnyWord(field string, keywords []string) bool {
	padded := " " + strings.Join(strings.FieldsFunc(field, isFieldSeparator), " ") + " "
	for _, kw := range keywords {
		if strings.Contains(padded, " "+kw+" ") {
			return true
		}
	}
	return false
}

func isFieldSeparator(r rune) bool {
	return r == ' ' || r == '/' || r == '&' || r == ',' || r == '-'
}

// educationScore maps the education level to a base score and adjusts it by
// field relevance. A missing degree scores the table's None entry untouched.
func educationScore(p Params, level types.EducationLevel, field, industry string) int {
	base := p.EducationScores[level]
	if base <= 0 {
		return clampScore(base)
	}
	switch relevance := FieldRelevance(field, industry); {
	case relevance >= RelevanceDirect:
		base += 10
	case relevance >= RelevanceRelated:
		base += 5
	case relevance <= RelevanceUnrelated:
		base -= 5
	}
	return clampScore(base)
}
