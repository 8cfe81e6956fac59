package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jonathan/resume-analyzer/internal/types"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS job_postings (
	id               TEXT PRIMARY KEY,
	title            TEXT NOT NULL,
	company          TEXT NOT NULL DEFAULT '',
	location         TEXT NOT NULL DEFAULT '',
	required_skills  TEXT NOT NULL DEFAULT '[]',
	preferred_skills TEXT NOT NULL DEFAULT '[]',
	industry         TEXT NOT NULL DEFAULT '',
	experience_level TEXT NOT NULL DEFAULT '',
	remote           INTEGER NOT NULL DEFAULT 0,
	salary_min       INTEGER,
	salary_max       INTEGER,
	salary_range     TEXT NOT NULL DEFAULT '',
	posted_date      TEXT NOT NULL DEFAULT '',
	description      TEXT NOT NULL DEFAULT ''
)`

const sqliteColumns = `id, title, company, location, required_skills, preferred_skills, industry,
	experience_level, remote, salary_min, salary_max, salary_range, posted_date, description`

// SQLite is a catalog stored in a local SQLite file. Postings are listed in
// insertion order.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the catalog database at path. Use ":memory:"
// for a throwaway catalog.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite catalog: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1) // single writer; keeps :memory: on one connection
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite catalog: init schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Import upserts postings in one transaction and returns the number written.
func (s *SQLite) Import(ctx context.Context, postings []types.JobPosting) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite catalog: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO job_postings (`+sqliteColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			company = excluded.company,
			location = excluded.location,
			required_skills = excluded.required_skills,
			preferred_skills = excluded.preferred_skills,
			industry = excluded.industry,
			experience_level = excluded.experience_level,
			remote = excluded.remote,
			salary_min = excluded.salary_min,
			salary_max = excluded.salary_max,
			salary_range = excluded.salary_range,
			posted_date = excluded.posted_date,
			description = excluded.description`)
	if err != nil {
		return 0, fmt.Errorf("sqlite catalog: prepare: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range postings {
		p := &postings[i]
		required, err := encodeSkillList(p.RequiredSkills)
		if err != nil {
			return 0, err
		}
		preferred, err := encodeSkillList(p.PreferredSkills)
		if err != nil {
			return 0, err
		}
		posted := ""
		if !p.PostedDate.IsZero() {
			posted = p.PostedDate.UTC().Format(time.RFC3339)
		}
		remote := 0
		if p.Remote {
			remote = 1
		}
		if _, err := stmt.ExecContext(ctx, p.ID, p.Title, p.Company, p.Location, required, preferred,
			p.Industry, string(p.ExperienceLevel), remote, nullableInt(p.SalaryMin), nullableInt(p.SalaryMax),
			p.SalaryRange, posted, p.Description); err != nil {
			return 0, fmt.Errorf("sqlite catalog: upsert %s: %w", p.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlite catalog: commit: %w", err)
	}
	return len(postings), nil
}

// ListPostings returns postings passing filter.
func (s *SQLite) ListPostings(ctx context.Context, filter Filter) ([]types.JobPosting, error) {
	var sb strings.Builder
	var args []any
	sb.WriteString(`SELECT ` + sqliteColumns + ` FROM job_postings WHERE 1=1`)
	if filter.Industry != "" {
		sb.WriteString(` AND LOWER(industry) = LOWER(?)`)
		args = append(args, strings.TrimSpace(filter.Industry))
	}
	if filter.Remote != nil {
		sb.WriteString(` AND remote = ?`)
		if *filter.Remote {
			args = append(args, 1)
		} else {
			args = append(args, 0)
		}
	}
	sb.WriteString(` ORDER BY rowid`)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite catalog: list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	postings := []types.JobPosting{}
	for rows.Next() {
		p, err := scanSQLitePosting(rows)
		if err != nil {
			return nil, err
		}
		postings = append(postings, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite catalog: iterate: %w", err)
	}
	return postings, nil
}

// GetPosting returns the posting with id or ErrNotFound.
func (s *SQLite) GetPosting(ctx context.Context, id string) (*types.JobPosting, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sqliteColumns+` FROM job_postings WHERE id = ?`, id)
	p, err := scanSQLitePosting(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLitePosting(row rowScanner) (*types.JobPosting, error) {
	var p types.JobPosting
	var required, preferred, level, posted string
	var remote int64
	var salaryMin, salaryMax sql.NullInt64

	err := row.Scan(&p.ID, &p.Title, &p.Company, &p.Location, &required, &preferred, &p.Industry,
		&level, &remote, &salaryMin, &salaryMax, &p.SalaryRange, &posted, &p.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("sqlite catalog: scan: %w", err)
	}

	if err := json.Unmarshal([]byte(required), &p.RequiredSkills); err != nil {
		return nil, fmt.Errorf("sqlite catalog: decode required skills for %s: %w", p.ID, err)
	}
	if err := json.Unmarshal([]byte(preferred), &p.PreferredSkills); err != nil {
		return nil, fmt.Errorf("sqlite catalog: decode preferred skills for %s: %w", p.ID, err)
	}
	p.ExperienceLevel = types.ExperienceLevel(level)
	p.Remote = remote != 0
	if salaryMin.Valid {
		v := int(salaryMin.Int64)
		p.SalaryMin = &v
	}
	if salaryMax.Valid {
		v := int(salaryMax.Int64)
		p.SalaryMax = &v
	}
	if posted != "" {
		t, err := time.Parse(time.RFC3339, posted)
		if err != nil {
			return nil, fmt.Errorf("sqlite catalog: posted_date for %s: %w", p.ID, err)
		}
		p.PostedDate = t.UTC()
	}
	return &p, nil
}

func encodeSkillList(skills []string) (string, error) {
	if skills == nil {
		skills = []string{}
	}
	data, err := json.Marshal(skills)
	if err != nil {
		return "", fmt.Errorf("sqlite catalog: encode skills: %w", err)
	}
	return string(data), nil
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}
