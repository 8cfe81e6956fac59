package parsing

import (
	"regexp"
	"strings"
)

// DefaultIndustry is reported when no industry keyword is found.
const DefaultIndustry = "General"

type industryKeywords struct {
	name     string
	keywords []*regexp.Regexp
}

// industries is ordered; earlier entries win ties.
var industries = []industryKeywords{
	newIndustry("Technology", "software", "technology", "tech", "computer", "programming", "developer", "development", "information technology", "saas", "cloud"),
	newIndustry("Finance", "banking", "bank", "financial", "investment", "accounting", "finance", "fintech", "trading"),
	newIndustry("Healthcare", "medical", "health", "healthcare", "hospital", "pharmaceutical", "clinical", "patient", "nursing"),
	newIndustry("Education", "teaching", "teacher", "education", "academic", "curriculum", "school"),
	newIndustry("Marketing", "marketing", "advertising", "brand", "digital marketing", "social media", "seo", "campaign"),
	newIndustry("Sales", "sales", "business development", "account management", "revenue", "quota"),
	newIndustry("Consulting", "consulting", "consultant", "advisory", "strategy", "management consulting"),
	newIndustry("Manufacturing", "manufacturing", "production", "industrial", "assembly", "supply chain", "plant"),
}

func newIndustry(name string, keywords ...string) industryKeywords {
	ind := industryKeywords{name: name}
	for _, kw := range keywords {
		ind.keywords = append(ind.keywords, regexp.MustCompile(`\b`+regexp.QuoteMeta(kw)+`\b`))
	}
	return ind
}

// Industries returns the names of the recognized industries in tie-break order.
func Industries() []string {
	names := make([]string, 0, len(industries))
	for _, ind := range industries {
		names = append(names, ind.name)
	}
	return names
}

// InferIndustry returns the industry with the most keyword hits in text.
func InferIndustry(text string) string {
	lower := strings.ToLower(text)
	best := DefaultIndustry
	bestHits := 0
	for _, ind := range industries {
		hits := 0
		for _, re := range ind.keywords {
			hits += len(re.FindAllStringIndex(lower, -1))
		}
		if hits > bestHits {
			best = ind.name
			bestHits = hits
		}
	}
	return best
}
