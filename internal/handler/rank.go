package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/recruitr-api/internal/model"
	"github.com/yourusername/recruitr-api/internal/ranking"
	"github.com/yourusername/recruitr-api/internal/repository"
)

type candidateLister interface {
	List(ctx context.Context, filter repository.CandidateFilter) ([]model.Candidate, error)
}

type artifactTextSource interface {
	TextsByCandidate(ctx context.Context, candidateID int64) ([]string, error)
}

type RankHandler struct {
	candidates candidateLister
	artifacts  artifactTextSource
	engine     *ranking.Engine
}

func NewRankHandler(candidates candidateLister, artifacts artifactTextSource, engine *ranking.Engine) *RankHandler {
	return &RankHandler{candidates: candidates, artifacts: artifacts, engine: engine}
}

type rankRequest struct {
	Description    string   `json:"description" binding:"required"`
	RequiredSkills []string `json:"required_skills"`
}

// Rank handles POST /match/rank. It scores every stored candidate with
// at least one artifact against the given job description, entirely
// locally. Candidates come back ordered by overall score.
func (h *RankHandler) Rank(c *gin.Context) {
	var req rankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Job description is required"})
		return
	}

	candidates, err := h.candidates.List(c.Request.Context(), repository.CandidateFilter{})
	if err != nil {
		log.Error().Err(err).Msg("Failed to list candidates for ranking")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rank candidates"})
		return
	}

	var inputs []ranking.CandidateText
	for _, cand := range candidates {
		texts, err := h.artifacts.TextsByCandidate(c.Request.Context(), cand.ID)
		if err != nil {
			log.Error().Err(err).Int64("candidate_id", cand.ID).Msg("Failed to load artifact texts")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rank candidates"})
			return
		}
		if len(texts) == 0 {
			continue
		}
		inputs = append(inputs, ranking.CandidateText{
			ID:    cand.ID,
			Name:  cand.Name,
			Email: cand.Email,
			Text:  strings.Join(texts, " "),
		})
	}

	scores := h.engine.Rank(req.Description, req.RequiredSkills, inputs)
	if scores == nil {
		scores = []ranking.Score{}
	}
	c.JSON(http.StatusOK, scores)
}
