package skills

import (
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Entry is one lexicon skill. Aliases are alternate spellings matched at the
// fuzzy confidence tier. A CaseSensitive entry's canonical name only matches
// its exact spelling ("Go" but not "go"); its aliases still match in any case.
type Entry struct {
	Name          string
	Category      types.SkillCategory
	Aliases       []string
	CaseSensitive bool
}

// Lexicon is an ordered, immutable skill dictionary.
type Lexicon struct {
	entries []Entry
	phrases [][]token // canonical phrase tokens, parallel to entries
	aliases [][][]token
	byKey   map[string]int
}

// NewLexicon indexes entries by lowercased name and alias. Later duplicates are ignored.
func NewLexicon(entries []Entry) *Lexicon {
	l := &Lexicon{byKey: make(map[string]int)}
	for _, e := range entries {
		key := strings.ToLower(e.Name)
		if _, exists := l.byKey[key]; exists || key == "" {
			continue
		}
		idx := len(l.entries)
		l.entries = append(l.entries, e)
		l.phrases = append(l.phrases, tokenize(e.Name))
		seen := map[string]bool{phraseKey(l.phrases[idx]): true}
		var aliasTokens [][]token
		for _, alias := range e.Aliases {
			if _, exists := l.byKey[strings.ToLower(alias)]; !exists {
				l.byKey[strings.ToLower(alias)] = idx
			}
			tokens := tokenize(alias)
			if key := phraseKey(tokens); len(tokens) > 0 && !seen[key] {
				seen[key] = true
				aliasTokens = append(aliasTokens, tokens)
			}
		}
		l.aliases = append(l.aliases, aliasTokens)
		l.byKey[key] = idx
	}
	return l
}

// Lookup finds an entry by canonical name or alias, case-insensitively.
func (l *Lexicon) Lookup(name string) (Entry, bool) {
	idx, ok := l.byKey[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Entry{}, false
	}
	return l.entries[idx], true
}

// Entries returns a copy of the lexicon entries in order.
func (l *Lexicon) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Lexicon) Len() int {
	return len(l.entries)
}

func tech(name string, aliases ...string) Entry {
	return Entry{Name: name, Category: types.CategoryTechnical, Aliases: aliases}
}

func techExact(name string, aliases ...string) Entry {
	return Entry{Name: name, Category: types.CategoryTechnical, Aliases: aliases, CaseSensitive: true}
}

func soft(name string, aliases ...string) Entry {
	return Entry{Name: name, Category: types.CategorySoftSkill, Aliases: aliases}
}

func domain(name string, aliases ...string) Entry {
	return Entry{Name: name, Category: types.CategoryDomain, Aliases: aliases}
}

// defaultEntries is the curated dictionary: languages, frameworks, data and
// platform tools, soft skills, then industry domain skills.
var defaultEntries = []Entry{
	// Languages
	tech("Python"),
	tech("Java"),
	tech("JavaScript", "js", "ecmascript", "es6"),
	tech("TypeScript", "ts"),
	tech("C++", "cpp"),
	tech("C#", "csharp", "c sharp"),
	techExact("Go", "golang", "go lang"),
	tech("Rust"),
	tech("Ruby"),
	tech("PHP"),
	techExact("Swift"),
	tech("Kotlin"),
	tech("Scala"),
	techExact("R"),
	tech("MATLAB"),
	tech("Perl"),
	tech("Bash", "shell scripting"),
	tech("PowerShell"),
	tech("SQL"),
	tech("HTML", "html5"),
	tech("CSS", "css3"),

	// Frameworks and libraries
	tech("React", "reactjs", "react.js"),
	tech("Angular", "angularjs"),
	tech("Vue.js", "vue", "vuejs"),
	tech("Svelte"),
	tech("Next.js", "nextjs"),
	tech("Node.js", "nodejs"),
	techExact("Express", "express.js", "expressjs"),
	tech("Django"),
	tech("Flask"),
	tech("FastAPI"),
	techExact("Spring", "spring boot"),
	tech("Laravel"),
	techExact("Rails", "ruby on rails", "ror"),
	tech("ASP.NET", "dotnet", ".net"),
	tech("jQuery"),
	tech("Bootstrap"),
	tech("Tailwind", "tailwindcss", "tailwind css"),
	tech("GraphQL"),
	tech("REST API", "rest apis", "restful", "restful api", "restful apis"),
	tech("gRPC"),
	tech("Microservices", "microservice", "micro services"),

	// Data and machine learning
	tech("Machine Learning", "ml"),
	tech("Deep Learning"),
	tech("Data Science"),
	tech("Data Analysis", "data analytics"),
	tech("Pandas"),
	tech("NumPy"),
	tech("scikit-learn", "sklearn", "scikit learn"),
	tech("TensorFlow"),
	tech("PyTorch"),
	tech("Tableau"),
	tech("Power BI", "powerbi"),
	techExact("Excel", "microsoft excel", "ms excel"),
	tech("Spark", "apache spark", "pyspark"),

	// Databases and messaging
	tech("PostgreSQL", "postgres", "psql"),
	tech("MySQL"),
	tech("MongoDB", "mongo"),
	tech("Redis"),
	tech("Elasticsearch", "elastic search"),
	tech("Kafka", "apache kafka"),
	tech("RabbitMQ"),
	tech("DynamoDB"),

	// Cloud, infrastructure and tooling
	tech("AWS", "amazon web services"),
	tech("Azure", "microsoft azure"),
	tech("GCP", "google cloud", "google cloud platform"),
	tech("Docker"),
	tech("Kubernetes", "k8s"),
	tech("Terraform"),
	tech("Ansible"),
	tech("Jenkins"),
	tech("CI/CD", "ci cd", "continuous integration", "continuous delivery"),
	tech("GitHub Actions"),
	tech("Git"),
	tech("Linux", "ubuntu", "centos"),
	tech("DevOps"),
	tech("Jira"),
	tech("Figma"),

	// Soft skills
	soft("Leadership", "team lead", "led a team", "led teams"),
	soft("Communication", "communication skills"),
	soft("Teamwork", "team player"),
	soft("Problem Solving", "problem-solving", "troubleshooting"),
	soft("Critical Thinking"),
	soft("Time Management"),
	soft("Project Management"),
	soft("Agile"),
	soft("Scrum"),
	soft("Collaboration", "collaborative", "cross-functional"),
	soft("Adaptability", "adaptable"),
	soft("Creativity", "creative"),
	soft("Analytical Thinking", "analytical"),
	soft("Attention to Detail", "detail oriented", "detail-oriented"),
	soft("Mentoring", "mentorship", "coaching"),
	soft("Presentation", "public speaking"),
	soft("Negotiation"),
	soft("Customer Service", "customer support"),
	soft("Strategic Planning", "strategic thinking"),

	// Domain skills
	domain("Financial Analysis", "financial modeling"),
	domain("Risk Management"),
	domain("Compliance", "regulatory compliance"),
	domain("Accounting", "bookkeeping"),
	domain("Healthcare", "clinical"),
	domain("E-commerce", "ecommerce"),
	domain("Digital Marketing", "online marketing"),
	domain("SEO", "search engine optimization"),
	domain("Sales", "business development"),
	domain("Supply Chain", "logistics"),
	domain("Product Management", "product owner"),
	domain("UX Design", "user experience", "ux"),
}

// DefaultLexicon returns the built-in lexicon.
func DefaultLexicon() *Lexicon {
	return NewLexicon(defaultEntries)
}
