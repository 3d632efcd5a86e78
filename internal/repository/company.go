package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yourusername/recruitr-api/internal/model"
)

type CompanyRepo struct {
	pool *pgxpool.Pool
}

func NewCompanyRepo(pool *pgxpool.Pool) *CompanyRepo {
	return &CompanyRepo{pool: pool}
}

const companyColumns = `id, company_name, about_company, mission, vision,
       "values", culture_description, website_url, created_at, updated_at`

func scanCompany(row pgx.Row) (*model.CompanyProfile, error) {
	var p model.CompanyProfile
	err := row.Scan(
		&p.ID, &p.CompanyName, &p.AboutCompany, &p.Mission, &p.Vision,
		&p.Values, &p.CultureDescription, &p.WebsiteURL,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Get returns the company profile, or nil when none has been created
func (r *CompanyRepo) Get(ctx context.Context) (*model.CompanyProfile, error) {
	p, err := scanCompany(r.pool.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM company_profiles ORDER BY id LIMIT 1`))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching company profile: %w", err)
	}
	return p, nil
}

// Save creates the company profile or overwrites the existing one.
// Only a single profile row is kept.
func (r *CompanyRepo) Save(ctx context.Context, p *model.CompanyProfile) (*model.CompanyProfile, error) {
	existing, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		saved, err := scanCompany(r.pool.QueryRow(ctx, `
			INSERT INTO company_profiles (company_name, about_company, mission,
			        vision, "values", culture_description, website_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+companyColumns,
			p.CompanyName, p.AboutCompany, p.Mission, p.Vision, p.Values,
			p.CultureDescription, p.WebsiteURL,
		))
		if err != nil {
			return nil, fmt.Errorf("creating company profile: %w", err)
		}
		return saved, nil
	}

	saved, err := scanCompany(r.pool.QueryRow(ctx, `
		UPDATE company_profiles
		SET company_name = $2, about_company = $3, mission = $4, vision = $5,
		    "values" = $6, culture_description = $7, website_url = $8,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+companyColumns,
		existing.ID, p.CompanyName, p.AboutCompany, p.Mission, p.Vision,
		p.Values, p.CultureDescription, p.WebsiteURL,
	))
	if err != nil {
		return nil, fmt.Errorf("updating company profile: %w", err)
	}
	return saved, nil
}
