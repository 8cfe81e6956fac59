package db

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// JobPosting is a stored catalog row.
type JobPosting struct {
	types.JobPosting
	ContentHash string    `json:"content_hash"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// JobPostingFilters narrows ListJobPostings.
type JobPostingFilters struct {
	Industry string
	Remote   *bool
	Limit    int
}

// ContentHash fingerprints the catalog-visible fields of a posting so
// unchanged imports can skip the write.
func ContentHash(p *types.JobPosting) string {
	data, err := json.Marshal(p)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// skillsJSON encodes a skill list for a JSONB column. nil encodes as [].
func skillsJSON(skills []string) ([]byte, error) {
	if skills == nil {
		skills = []string{}
	}
	return json.Marshal(skills)
}

func decodeSkills(data []byte) ([]string, error) {
	skills := []string{}
	if len(data) == 0 {
		return skills, nil
	}
	if err := json.Unmarshal(data, &skills); err != nil {
		return nil, err
	}
	return skills, nil
}
