package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yourusername/recruitr-api/internal/model"
)

type CandidateRepo struct {
	pool *pgxpool.Pool
}

func NewCandidateRepo(pool *pgxpool.Pool) *CandidateRepo {
	return &CandidateRepo{pool: pool}
}

const candidateColumns = `id, name, email, phone, linkedin_url, github_url,
       portfolio_url, location, salary_expectation_min, salary_expectation_max,
       hours_available, availability_start_date, visa_status, status,
       created_at, updated_at`

func scanCandidate(row pgx.Row) (*model.Candidate, error) {
	var c model.Candidate
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.LinkedinURL, &c.GithubURL,
		&c.PortfolioURL, &c.Location, &c.SalaryExpectationMin,
		&c.SalaryExpectationMax, &c.HoursAvailable, &c.AvailabilityStartDate,
		&c.VisaStatus, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new candidate
func (r *CandidateRepo) Create(ctx context.Context, c *model.Candidate) (*model.Candidate, error) {
	created, err := scanCandidate(r.pool.QueryRow(ctx, `
		INSERT INTO candidates (name, email, phone, linkedin_url, github_url,
		                        portfolio_url, location, salary_expectation_min,
		                        salary_expectation_max, hours_available,
		                        availability_start_date, visa_status, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+candidateColumns,
		c.Name, c.Email, c.Phone, c.LinkedinURL, c.GithubURL, c.PortfolioURL,
		c.Location, c.SalaryExpectationMin, c.SalaryExpectationMax,
		c.HoursAvailable, c.AvailabilityStartDate, c.VisaStatus, c.Status,
	))
	if err != nil {
		return nil, fmt.Errorf("creating candidate: %w", err)
	}
	return created, nil
}

// List returns all candidates, with optional status and location filters.
// Soft-deleted candidates are included only when explicitly filtered for.
func (r *CandidateRepo) List(ctx context.Context, filter CandidateFilter) ([]model.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE 1=1`
	args := []any{}
	argIdx := 1

	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	} else {
		query += fmt.Sprintf(" AND status <> $%d", argIdx)
		args = append(args, model.CandidateStatusDeleted)
		argIdx++
	}
	if filter.Location != "" {
		query += fmt.Sprintf(" AND location ILIKE $%d", argIdx)
		args = append(args, "%"+filter.Location+"%")
		argIdx++
	}

	query += " ORDER BY id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing candidates: %w", err)
	}
	defer rows.Close()

	var candidates []model.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning candidate row: %w", err)
		}
		candidates = append(candidates, *c)
	}
	return candidates, nil
}

// FindByID returns a single candidate, or nil when absent
func (r *CandidateRepo) FindByID(ctx context.Context, id int64) (*model.Candidate, error) {
	c, err := scanCandidate(r.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding candidate: %w", err)
	}
	return c, nil
}

// FindByEmail looks a candidate up by email (unique)
func (r *CandidateRepo) FindByEmail(ctx context.Context, email string) (*model.Candidate, error) {
	c, err := scanCandidate(r.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE email = $1`, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding candidate by email: %w", err)
	}
	return c, nil
}

// Update updates a candidate's mutable fields
func (r *CandidateRepo) Update(ctx context.Context, c *model.Candidate) (*model.Candidate, error) {
	updated, err := scanCandidate(r.pool.QueryRow(ctx, `
		UPDATE candidates
		SET name = $2, email = $3, phone = $4, linkedin_url = $5,
		    github_url = $6, portfolio_url = $7, location = $8,
		    salary_expectation_min = $9, salary_expectation_max = $10,
		    hours_available = $11, availability_start_date = $12,
		    visa_status = $13, status = $14, updated_at = now()
		WHERE id = $1
		RETURNING `+candidateColumns,
		c.ID, c.Name, c.Email, c.Phone, c.LinkedinURL, c.GithubURL,
		c.PortfolioURL, c.Location, c.SalaryExpectationMin,
		c.SalaryExpectationMax, c.HoursAvailable, c.AvailabilityStartDate,
		c.VisaStatus, c.Status,
	))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("updating candidate: %w", err)
	}
	return updated, nil
}

// SoftDelete marks a candidate as deleted without removing the row
func (r *CandidateRepo) SoftDelete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE candidates SET status = $2, updated_at = now() WHERE id = $1
	`, id, model.CandidateStatusDeleted)
	if err != nil {
		return fmt.Errorf("deleting candidate: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("candidate not found")
	}
	return nil
}

// CandidateFilter holds query parameters for listing candidates
type CandidateFilter struct {
	Status   string
	Location string
}
