package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yourusername/recruitr-api/internal/model"
)

type JobRepo struct {
	pool *pgxpool.Pool
}

func NewJobRepo(pool *pgxpool.Pool) *JobRepo {
	return &JobRepo{pool: pool}
}

const jobColumns = `j.id, j.title, j.description, j.required_skills,
       j.nice_to_have_skills, j.culture_requirements, j.salary_min,
       j.salary_max, j.hours_required, j.location,
       j.visa_sponsorship_available, j.start_date_needed, j.status,
       j.created_at`

func scanJob(row pgx.Row, withMatchCount bool) (*model.Job, error) {
	var j model.Job
	dest := []any{
		&j.ID, &j.Title, &j.Description, &j.RequiredSkills,
		&j.NiceToHaveSkills, &j.CultureRequirements, &j.SalaryMin,
		&j.SalaryMax, &j.HoursRequired, &j.Location,
		&j.VisaSponsorshipAvailable, &j.StartDateNeeded, &j.Status,
		&j.CreatedAt,
	}
	if withMatchCount {
		dest = append(dest, &j.MatchCount)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &j, nil
}

// Create inserts a new job
func (r *JobRepo) Create(ctx context.Context, j *model.Job) (*model.Job, error) {
	created, err := scanJob(r.pool.QueryRow(ctx, `
		INSERT INTO jobs (title, description, required_skills,
		                  nice_to_have_skills, culture_requirements,
		                  salary_min, salary_max, hours_required, location,
		                  visa_sponsorship_available, start_date_needed, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+jobColumnsBare,
		j.Title, j.Description, j.RequiredSkills, j.NiceToHaveSkills,
		j.CultureRequirements, j.SalaryMin, j.SalaryMax, j.HoursRequired,
		j.Location, j.VisaSponsorshipAvailable, j.StartDateNeeded, j.Status,
	), false)
	if err != nil {
		return nil, fmt.Errorf("creating job: %w", err)
	}
	return created, nil
}

// List returns jobs newest first, each with its stored match count,
// optionally filtered by status
func (r *JobRepo) List(ctx context.Context, status string) ([]model.Job, error) {
	query := `
		SELECT ` + jobColumns + `,
		       (SELECT count(*) FROM matches m WHERE m.job_id = j.id) AS match_count
		FROM jobs j`
	args := []any{}

	if status != "" {
		query += " WHERE j.status = $1"
		args = append(args, status)
	}
	query += " ORDER BY j.created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		j, err := scanJob(rows, true)
		if err != nil {
			return nil, fmt.Errorf("scanning job row: %w", err)
		}
		jobs = append(jobs, *j)
	}
	return jobs, nil
}

// FindByID returns a single job with its match count, or nil when absent
func (r *JobRepo) FindByID(ctx context.Context, id int64) (*model.Job, error) {
	j, err := scanJob(r.pool.QueryRow(ctx, `
		SELECT `+jobColumns+`,
		       (SELECT count(*) FROM matches m WHERE m.job_id = j.id) AS match_count
		FROM jobs j
		WHERE j.id = $1
	`, id), true)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding job: %w", err)
	}
	return j, nil
}

// Update updates a job, returning nil when the job does not exist
func (r *JobRepo) Update(ctx context.Context, j *model.Job) (*model.Job, error) {
	updated, err := scanJob(r.pool.QueryRow(ctx, `
		UPDATE jobs
		SET title = $2, description = $3, required_skills = $4,
		    nice_to_have_skills = $5, culture_requirements = $6,
		    salary_min = $7, salary_max = $8, hours_required = $9,
		    location = $10, visa_sponsorship_available = $11,
		    start_date_needed = $12, status = $13
		WHERE id = $1
		RETURNING `+jobColumnsBare,
		j.ID, j.Title, j.Description, j.RequiredSkills, j.NiceToHaveSkills,
		j.CultureRequirements, j.SalaryMin, j.SalaryMax, j.HoursRequired,
		j.Location, j.VisaSponsorshipAvailable, j.StartDateNeeded, j.Status,
	), false)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("updating job: %w", err)
	}
	return updated, nil
}

// Delete removes a job and its matches
func (r *JobRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job not found")
	}
	return nil
}

// jobColumnsBare is jobColumns without the table alias, for RETURNING clauses.
const jobColumnsBare = `id, title, description, required_skills,
       nice_to_have_skills, culture_requirements, salary_min, salary_max,
       hours_required, location, visa_sponsorship_available,
       start_date_needed, status, created_at`
