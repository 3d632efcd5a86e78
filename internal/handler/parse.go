package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/recruitr-api/internal/model"
	"github.com/yourusername/recruitr-api/internal/service"
)

type ParseHandler struct {
	ai *service.OpenAIClient
}

func NewParseHandler(ai *service.OpenAIClient) *ParseHandler {
	return &ParseHandler{ai: ai}
}

type parseJobRequest struct {
	Text string `json:"text" binding:"required"`
}

// ParseJob handles POST /parse/job: structured extraction from raw job
// posting text, including any screening questions the posting lists.
func (h *ParseHandler) ParseJob(c *gin.Context) {
	var req parseJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Job posting text is required"})
		return
	}

	if !h.ai.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI parsing is not configured"})
		return
	}

	parsed, err := h.ai.ParseJobPosting(c.Request.Context(), req.Text)
	if err != nil {
		log.Error().Err(err).Msg("Failed to parse job posting")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Job parsing failed. Please try again."})
		return
	}

	c.JSON(http.StatusOK, parsed)
}

type parseArtifactRequest struct {
	Text string `json:"text" binding:"required"`
	Kind string `json:"kind"`
}

// ParseArtifact handles POST /parse/artifact: runs artifact analysis on
// arbitrary text without storing anything. Useful for previewing what
// the analyzer would extract.
func (h *ParseHandler) ParseArtifact(c *gin.Context) {
	var req parseArtifactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Artifact text is required"})
		return
	}
	if req.Kind == "" {
		req.Kind = model.ArtifactKindTextResponse
	}

	if !h.ai.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI analysis is not configured"})
		return
	}

	analysis, err := h.ai.AnalyzeArtifact(c.Request.Context(), req.Text, req.Kind)
	if err != nil {
		log.Error().Err(err).Msg("Failed to analyze artifact text")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Artifact analysis failed. Please try again."})
		return
	}

	c.JSON(http.StatusOK, analysis)
}
