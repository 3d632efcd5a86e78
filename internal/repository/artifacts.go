package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yourusername/recruitr-api/internal/model"
)

type ArtifactRepo struct {
	pool *pgxpool.Pool
}

func NewArtifactRepo(pool *pgxpool.Pool) *ArtifactRepo {
	return &ArtifactRepo{pool: pool}
}

// Create inserts a new artifact
func (r *ArtifactRepo) Create(ctx context.Context, a *model.Artifact) (*model.Artifact, error) {
	var created model.Artifact
	err := r.pool.QueryRow(ctx, `
		INSERT INTO artifacts (candidate_id, kind, title, storage_location,
		                       raw_url, text, ai_summary, ai_skills,
		                       ai_quality_score, uploaded_at, processed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), $10)
		RETURNING id, candidate_id, kind, title, storage_location, raw_url,
		          text, ai_summary, ai_skills, ai_quality_score,
		          uploaded_at, processed_at
	`, a.CandidateID, a.Kind, a.Title, a.StorageLocation, a.RawURL, a.Text,
		a.AISummary, a.AISkills, a.AIQualityScore, a.ProcessedAt,
	).Scan(
		&created.ID, &created.CandidateID, &created.Kind, &created.Title,
		&created.StorageLocation, &created.RawURL, &created.Text,
		&created.AISummary, &created.AISkills, &created.AIQualityScore,
		&created.UploadedAt, &created.ProcessedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating artifact: %w", err)
	}
	return &created, nil
}

// ListByCandidate returns a candidate's artifacts in upload order
func (r *ArtifactRepo) ListByCandidate(ctx context.Context, candidateID int64) ([]model.Artifact, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, candidate_id, kind, title, storage_location, raw_url,
		       text, ai_summary, ai_skills, ai_quality_score,
		       uploaded_at, processed_at
		FROM artifacts
		WHERE candidate_id = $1
		ORDER BY id
	`, candidateID)
	if err != nil {
		return nil, fmt.Errorf("listing artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []model.Artifact
	for rows.Next() {
		var a model.Artifact
		err := rows.Scan(
			&a.ID, &a.CandidateID, &a.Kind, &a.Title, &a.StorageLocation,
			&a.RawURL, &a.Text, &a.AISummary, &a.AISkills, &a.AIQualityScore,
			&a.UploadedAt, &a.ProcessedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning artifact row: %w", err)
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, nil
}

// TextsByCandidate returns just the text of a candidate's artifacts, in
// upload order. This is the ranking engine's input; candidates whose
// result is empty have nothing to score.
func (r *ArtifactRepo) TextsByCandidate(ctx context.Context, candidateID int64) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT text FROM artifacts WHERE candidate_id = $1 ORDER BY id
	`, candidateID)
	if err != nil {
		return nil, fmt.Errorf("fetching artifact texts: %w", err)
	}
	defer rows.Close()

	var texts []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("scanning artifact text: %w", err)
		}
		texts = append(texts, text)
	}
	return texts, nil
}

// CountByCandidate returns how many artifacts a candidate has
func (r *ArtifactRepo) CountByCandidate(ctx context.Context, candidateID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM artifacts WHERE candidate_id = $1`, candidateID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting artifacts: %w", err)
	}
	return count, nil
}
