package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/recruitr-api/internal/model"
	"github.com/yourusername/recruitr-api/internal/ranking"
	"github.com/yourusername/recruitr-api/internal/repository"
)

type fakeCandidateLister struct {
	candidates []model.Candidate
	err        error
}

func (f *fakeCandidateLister) List(_ context.Context, _ repository.CandidateFilter) ([]model.Candidate, error) {
	return f.candidates, f.err
}

type fakeTextSource struct {
	texts map[int64][]string
}

func (f *fakeTextSource) TextsByCandidate(_ context.Context, candidateID int64) ([]string, error) {
	return f.texts[candidateID], nil
}

func rankRouter(lister candidateLister, texts artifactTextSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewRankHandler(lister, texts, ranking.NewDefaultEngine())
	r.POST("/match/rank", h.Rank)
	return r
}

func doRank(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/match/rank", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRankOrdersByOverallScore(t *testing.T) {
	lister := &fakeCandidateLister{candidates: []model.Candidate{
		{ID: 1, Name: "Weak Fit", Email: "weak@example.com"},
		{ID: 2, Name: "Strong Fit", Email: "strong@example.com"},
	}}
	texts := &fakeTextSource{texts: map[int64][]string{
		1: {"I once saw a computer."},
		2: {"Shipped a Python and FastAPI service on Postgres,", "owned and documented the Docker deployment."},
	}}

	w := doRank(t, rankRouter(lister, texts),
		`{"description": "Looking for python fastapi postgres docker experience"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var scores []ranking.Score
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scores))
	require.Len(t, scores, 2)

	assert.Equal(t, int64(2), scores[0].ID)
	assert.Equal(t, "Strong Fit", scores[0].Name)
	assert.Equal(t, []string{"python", "fastapi", "postgres", "docker"}, scores[0].MatchedSkills)
	assert.Equal(t, 1.0, scores[0].SkillsScore)
	assert.Greater(t, scores[0].OverallScore, scores[1].OverallScore)

	assert.Equal(t, int64(1), scores[1].ID)
	assert.Empty(t, scores[1].MatchedSkills)
	assert.Equal(t, []string{"python", "fastapi", "postgres", "docker"}, scores[1].MissingSkills)
}

func TestRankJoinsArtifactTextsWithSpace(t *testing.T) {
	// "pyth" + "on" across two artifacts must not merge into a skill hit.
	lister := &fakeCandidateLister{candidates: []model.Candidate{
		{ID: 7, Name: "Split", Email: "split@example.com"},
	}}
	texts := &fakeTextSource{texts: map[int64][]string{
		7: {"pyth", "on"},
	}}

	w := doRank(t, rankRouter(lister, texts), `{"description": "python"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var scores []ranking.Score
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scores))
	require.Len(t, scores, 1)
	assert.Empty(t, scores[0].MatchedSkills)
}

func TestRankExcludesCandidatesWithoutArtifacts(t *testing.T) {
	lister := &fakeCandidateLister{candidates: []model.Candidate{
		{ID: 1, Name: "Has Artifacts", Email: "a@example.com"},
		{ID: 2, Name: "No Artifacts", Email: "b@example.com"},
	}}
	texts := &fakeTextSource{texts: map[int64][]string{
		1: {"python developer"},
	}}

	w := doRank(t, rankRouter(lister, texts), `{"description": "python"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var scores []ranking.Score
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scores))
	require.Len(t, scores, 1)
	assert.Equal(t, int64(1), scores[0].ID)
}

func TestRankEmptyStoreReturnsEmptyArray(t *testing.T) {
	w := doRank(t, rankRouter(&fakeCandidateLister{}, &fakeTextSource{}),
		`{"description": "python"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRankRequiresDescription(t *testing.T) {
	w := doRank(t, rankRouter(&fakeCandidateLister{}, &fakeTextSource{}), `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRankListFailureIs500(t *testing.T) {
	lister := &fakeCandidateLister{err: errors.New("connection refused")}
	w := doRank(t, rankRouter(lister, &fakeTextSource{}), `{"description": "python"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRankUsesExplicitRequiredSkills(t *testing.T) {
	lister := &fakeCandidateLister{candidates: []model.Candidate{
		{ID: 1, Name: "Dev", Email: "dev@example.com"},
	}}
	texts := &fakeTextSource{texts: map[int64][]string{
		1: {"react and docker work"},
	}}

	// Description mentions python, but the explicit list wins.
	w := doRank(t, rankRouter(lister, texts),
		`{"description": "python needed", "required_skills": ["react", "kubernetes"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var scores []ranking.Score
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scores))
	require.Len(t, scores, 1)
	assert.Equal(t, []string{"react"}, scores[0].MatchedSkills)
	assert.Equal(t, []string{"kubernetes"}, scores[0].MissingSkills)
	assert.Equal(t, 0.5, scores[0].SkillsScore)
}
