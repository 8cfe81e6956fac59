package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// -----------------------------------------------------------------------------
// Job Posting Methods
// -----------------------------------------------------------------------------

const jobPostingColumns = `id, title, company, location, required_skills, preferred_skills,
		industry, experience_level, remote, salary_min, salary_max, salary_range,
		posted_date, description, content_hash, created_at, updated_at`

// scanJobPosting reads one row selected with jobPostingColumns.
func scanJobPosting(row pgx.Row) (*JobPosting, error) {
	var p JobPosting
	var requiredJSON, preferredJSON []byte
	var level string
	var postedDate *time.Time

	err := row.Scan(&p.ID, &p.Title, &p.Company, &p.Location, &requiredJSON, &preferredJSON,
		&p.Industry, &level, &p.Remote, &p.SalaryMin, &p.SalaryMax, &p.SalaryRange,
		&postedDate, &p.Description, &p.ContentHash, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if p.RequiredSkills, err = decodeSkills(requiredJSON); err != nil {
		return nil, fmt.Errorf("failed to decode required skills for %s: %w", p.ID, err)
	}
	if p.PreferredSkills, err = decodeSkills(preferredJSON); err != nil {
		return nil, fmt.Errorf("failed to decode preferred skills for %s: %w", p.ID, err)
	}
	p.ExperienceLevel = types.ExperienceLevel(level)
	if postedDate != nil {
		p.PostedDate = postedDate.UTC()
	}
	return &p, nil
}

// GetJobPosting retrieves a job posting by its ID. It returns nil, nil when
// the posting does not exist.
func (db *DB) GetJobPosting(ctx context.Context, id string) (*JobPosting, error) {
	p, err := scanJobPosting(db.pool.QueryRow(ctx,
		`SELECT `+jobPostingColumns+` FROM job_postings WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}
	return p, nil
}

// ListJobPostings returns postings matching filters, most recent first.
func (db *DB) ListJobPostings(ctx context.Context, filters JobPostingFilters) ([]JobPosting, error) {
	query, args := buildListQuery(filters)
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}
	defer rows.Close()

	var postings []JobPosting
	for rows.Next() {
		p, err := scanJobPosting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job posting: %w", err)
		}
		postings = append(postings, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job postings: %w", err)
	}
	return postings, nil
}

func buildListQuery(filters JobPostingFilters) (string, []any) {
	var sb strings.Builder
	var args []any
	sb.WriteString(`SELECT ` + jobPostingColumns + ` FROM job_postings WHERE 1=1`)

	if filters.Industry != "" {
		args = append(args, filters.Industry)
		fmt.Fprintf(&sb, " AND LOWER(industry) = LOWER($%d)", len(args))
	}
	if filters.Remote != nil {
		args = append(args, *filters.Remote)
		fmt.Fprintf(&sb, " AND remote = $%d", len(args))
	}
	sb.WriteString(" ORDER BY posted_date DESC NULLS LAST, id")
	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	return sb.String(), args
}

// UpsertJobPosting creates or updates a job posting. It reports whether a
// row was written; postings whose content hash is unchanged are skipped.
func (db *DB) UpsertJobPosting(ctx context.Context, posting *types.JobPosting) (bool, error) {
	required, err := skillsJSON(posting.RequiredSkills)
	if err != nil {
		return false, fmt.Errorf("failed to marshal required skills: %w", err)
	}
	preferred, err := skillsJSON(posting.PreferredSkills)
	if err != nil {
		return false, fmt.Errorf("failed to marshal preferred skills: %w", err)
	}
	var postedDate *time.Time
	if !posting.PostedDate.IsZero() {
		postedDate = &posting.PostedDate
	}

	var id string
	err = db.pool.QueryRow(ctx,
		`INSERT INTO job_postings (id, title, company, location, required_skills, preferred_skills,
		        industry, experience_level, remote, salary_min, salary_max, salary_range,
		        posted_date, description, content_hash)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 ON CONFLICT (id) DO UPDATE SET
		        title = EXCLUDED.title,
		        company = EXCLUDED.company,
		        location = EXCLUDED.location,
		        required_skills = EXCLUDED.required_skills,
		        preferred_skills = EXCLUDED.preferred_skills,
		        industry = EXCLUDED.industry,
		        experience_level = EXCLUDED.experience_level,
		        remote = EXCLUDED.remote,
		        salary_min = EXCLUDED.salary_min,
		        salary_max = EXCLUDED.salary_max,
		        salary_range = EXCLUDED.salary_range,
		        posted_date = EXCLUDED.posted_date,
		        description = EXCLUDED.description,
		        content_hash = EXCLUDED.content_hash,
		        updated_at = NOW()
		 WHERE job_postings.content_hash <> EXCLUDED.content_hash
		 RETURNING id`,
		posting.ID, posting.Title, posting.Company, posting.Location, required, preferred,
		posting.Industry, string(posting.ExperienceLevel), posting.Remote, posting.SalaryMin, posting.SalaryMax,
		posting.SalaryRange, postedDate, posting.Description, ContentHash(posting),
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to upsert job posting %s: %w", posting.ID, err)
	}
	return true, nil
}

// DeleteJobPosting removes a posting. Deleting a missing posting is not an error.
func (db *DB) DeleteJobPosting(ctx context.Context, id string) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM job_postings WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete job posting %s: %w", id, err)
	}
	return nil
}
