package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yourusername/recruitr-api/internal/model"
)

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

const profileColumns = `id, candidate_id, technical_skills, years_experience,
       writing_quality_score, verbal_quality_score, communication_style,
       portfolio_quality_score, code_quality_score, culture_signals,
       personality_traits, strengths, concerns, best_role_fit,
       growth_potential_score, profile_completeness, last_ai_analysis`

func scanProfile(row pgx.Row) (*model.CandidateProfile, error) {
	var p model.CandidateProfile
	err := row.Scan(
		&p.ID, &p.CandidateID, &p.TechnicalSkills, &p.YearsExperience,
		&p.WritingQualityScore, &p.VerbalQualityScore, &p.CommunicationStyle,
		&p.PortfolioQualityScore, &p.CodeQualityScore, &p.CultureSignals,
		&p.PersonalityTraits, &p.Strengths, &p.Concerns, &p.BestRoleFit,
		&p.GrowthPotentialScore, &p.ProfileCompleteness, &p.LastAIAnalysis,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByCandidate returns a candidate's AI profile, or nil when none
// has been generated yet
func (r *ProfileRepo) FindByCandidate(ctx context.Context, candidateID int64) (*model.CandidateProfile, error) {
	p, err := scanProfile(r.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM candidate_profiles WHERE candidate_id = $1`,
		candidateID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding candidate profile: %w", err)
	}
	return p, nil
}

// Upsert stores the profile, replacing a previous generation for the
// same candidate
func (r *ProfileRepo) Upsert(ctx context.Context, p *model.CandidateProfile) (*model.CandidateProfile, error) {
	saved, err := scanProfile(r.pool.QueryRow(ctx, `
		INSERT INTO candidate_profiles (candidate_id, technical_skills,
		        years_experience, writing_quality_score, verbal_quality_score,
		        communication_style, portfolio_quality_score,
		        code_quality_score, culture_signals, personality_traits,
		        strengths, concerns, best_role_fit, growth_potential_score,
		        profile_completeness, last_ai_analysis)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, now())
		ON CONFLICT (candidate_id) DO UPDATE
		SET technical_skills = EXCLUDED.technical_skills,
		    years_experience = EXCLUDED.years_experience,
		    writing_quality_score = EXCLUDED.writing_quality_score,
		    verbal_quality_score = EXCLUDED.verbal_quality_score,
		    communication_style = EXCLUDED.communication_style,
		    portfolio_quality_score = EXCLUDED.portfolio_quality_score,
		    code_quality_score = EXCLUDED.code_quality_score,
		    culture_signals = EXCLUDED.culture_signals,
		    personality_traits = EXCLUDED.personality_traits,
		    strengths = EXCLUDED.strengths,
		    concerns = EXCLUDED.concerns,
		    best_role_fit = EXCLUDED.best_role_fit,
		    growth_potential_score = EXCLUDED.growth_potential_score,
		    profile_completeness = EXCLUDED.profile_completeness,
		    last_ai_analysis = now()
		RETURNING `+profileColumns,
		p.CandidateID, p.TechnicalSkills, p.YearsExperience,
		p.WritingQualityScore, p.VerbalQualityScore, p.CommunicationStyle,
		p.PortfolioQualityScore, p.CodeQualityScore, p.CultureSignals,
		p.PersonalityTraits, p.Strengths, p.Concerns, p.BestRoleFit,
		p.GrowthPotentialScore, p.ProfileCompleteness,
	))
	if err != nil {
		return nil, fmt.Errorf("saving candidate profile: %w", err)
	}
	return saved, nil
}
