package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yourusername/recruitr-api/internal/model"
)

type MatchRepo struct {
	pool *pgxpool.Pool
}

func NewMatchRepo(pool *pgxpool.Pool) *MatchRepo {
	return &MatchRepo{pool: pool}
}

// Upsert stores a match, replacing any previous score for the same
// job/candidate pair. Rescoring overwrites rather than accumulates.
func (r *MatchRepo) Upsert(ctx context.Context, m *model.Match) (*model.Match, error) {
	var saved model.Match
	err := r.pool.QueryRow(ctx, `
		INSERT INTO matches (job_id, candidate_id, overall_score, skills_score,
		                     culture_score, communication_score, quality_score,
		                     potential_score, evidence, ai_reasoning)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (job_id, candidate_id) DO UPDATE
		SET overall_score = EXCLUDED.overall_score,
		    skills_score = EXCLUDED.skills_score,
		    culture_score = EXCLUDED.culture_score,
		    communication_score = EXCLUDED.communication_score,
		    quality_score = EXCLUDED.quality_score,
		    potential_score = EXCLUDED.potential_score,
		    evidence = EXCLUDED.evidence,
		    ai_reasoning = EXCLUDED.ai_reasoning,
		    created_at = now()
		RETURNING id, job_id, candidate_id, overall_score, skills_score,
		          culture_score, communication_score, quality_score,
		          potential_score, evidence, ai_reasoning, created_at
	`, m.JobID, m.CandidateID, m.OverallScore, m.SkillsScore, m.CultureScore,
		m.CommunicationScore, m.QualityScore, m.PotentialScore, m.Evidence,
		m.AIReasoning,
	).Scan(
		&saved.ID, &saved.JobID, &saved.CandidateID, &saved.OverallScore,
		&saved.SkillsScore, &saved.CultureScore, &saved.CommunicationScore,
		&saved.QualityScore, &saved.PotentialScore, &saved.Evidence,
		&saved.AIReasoning, &saved.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("saving match: %w", err)
	}
	return &saved, nil
}

// ListByJob returns a job's stored matches, best fit first, with
// candidate identity joined in
func (r *MatchRepo) ListByJob(ctx context.Context, jobID int64) ([]model.Match, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT m.id, m.job_id, m.candidate_id, m.overall_score,
		       m.skills_score, m.culture_score, m.communication_score,
		       m.quality_score, m.potential_score, m.evidence,
		       m.ai_reasoning, m.created_at, c.name, c.email
		FROM matches m
		JOIN candidates c ON c.id = m.candidate_id
		WHERE m.job_id = $1
		ORDER BY m.overall_score DESC
	`, jobID)
	if err != nil {
		return nil, fmt.Errorf("listing matches: %w", err)
	}
	defer rows.Close()

	var matches []model.Match
	for rows.Next() {
		var m model.Match
		err := rows.Scan(
			&m.ID, &m.JobID, &m.CandidateID, &m.OverallScore, &m.SkillsScore,
			&m.CultureScore, &m.CommunicationScore, &m.QualityScore,
			&m.PotentialScore, &m.Evidence, &m.AIReasoning, &m.CreatedAt,
			&m.CandidateName, &m.CandidateEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning match row: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, nil
}
