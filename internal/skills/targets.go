package skills

import (
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Target is one posting skill keyed for comparison with candidate skills.
type Target struct {
	Key      string // lowercased canonical name
	Name     string // spelling as written in the posting
	Required bool
}

// Targets is the normalized skill set of a posting.
type Targets struct {
	Required  []Target
	Preferred []Target
}

// BuildTargets normalizes and deduplicates a posting's skills. A skill listed
// as both required and preferred counts only as required; blanks are dropped.
func BuildTargets(posting *types.JobPosting) Targets {
	seen := make(map[string]bool)
	var targets Targets

	for _, name := range posting.RequiredSkills {
		if t, ok := newTarget(name, true, seen); ok {
			targets.Required = append(targets.Required, t)
		}
	}
	for _, name := range posting.PreferredSkills {
		if t, ok := newTarget(name, false, seen); ok {
			targets.Preferred = append(targets.Preferred, t)
		}
	}
	return targets
}

func newTarget(name string, required bool, seen map[string]bool) (Target, bool) {
	key := Key(name)
	if key == "" || seen[key] {
		return Target{}, false
	}
	seen[key] = true
	return Target{Key: key, Name: strings.Join(strings.Fields(name), " "), Required: required}, true
}

// KeySet returns the comparison keys of a candidate's skills.
func KeySet(signals []types.SkillSignal) map[string]string {
	keys := make(map[string]string, len(signals))
	for _, s := range signals {
		key := Key(s.Name)
		if key == "" {
			continue
		}
		if _, exists := keys[key]; !exists {
			keys[key] = NormalizeName(s.Name)
		}
	}
	return keys
}
