package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/recruitr-api/internal/model"
	"github.com/yourusername/recruitr-api/internal/repository"
	"github.com/yourusername/recruitr-api/internal/service"
)

type MatchHandler struct {
	jobRepo       *repository.JobRepo
	candidateRepo *repository.CandidateRepo
	profileRepo   *repository.ProfileRepo
	artifactRepo  *repository.ArtifactRepo
	matchRepo     *repository.MatchRepo
	ai            *service.OpenAIClient
}

func NewMatchHandler(
	jobRepo *repository.JobRepo,
	candidateRepo *repository.CandidateRepo,
	profileRepo *repository.ProfileRepo,
	artifactRepo *repository.ArtifactRepo,
	matchRepo *repository.MatchRepo,
	ai *service.OpenAIClient,
) *MatchHandler {
	return &MatchHandler{
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		profileRepo:   profileRepo,
		artifactRepo:  artifactRepo,
		matchRepo:     matchRepo,
		ai:            ai,
	}
}

// Score handles POST /jobs/:id/matches/:candidateId. It runs the AI
// scorer for the pair and stores the result; rescoring the same pair
// overwrites the previous match.
func (h *MatchHandler) Score(c *gin.Context) {
	jobID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return
	}
	candidateID, ok := pathID(c, "candidateId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid candidate ID"})
		return
	}

	if !h.ai.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI scoring is not configured"})
		return
	}

	job, err := h.jobRepo.FindByID(c.Request.Context(), jobID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get job for scoring")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to score candidate"})
		return
	}
	if job == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	candidate, err := h.candidateRepo.FindByID(c.Request.Context(), candidateID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get candidate for scoring")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to score candidate"})
		return
	}
	if candidate == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Candidate not found"})
		return
	}

	profile, err := h.profileRepo.FindByCandidate(c.Request.Context(), candidateID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get candidate profile for scoring")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to score candidate"})
		return
	}

	profileSummary, err := h.candidateSummary(c, candidate, profile)
	if err != nil {
		log.Error().Err(err).Msg("Failed to build candidate summary")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to score candidate"})
		return
	}

	jobSummary, err := json.Marshal(gin.H{
		"title":                job.Title,
		"description":          job.Description,
		"required_skills":      job.RequiredSkills,
		"nice_to_have_skills":  job.NiceToHaveSkills,
		"culture_requirements": job.CultureRequirements,
		"location":             job.Location,
		"hours_required":       job.HoursRequired,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to build job summary")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to score candidate"})
		return
	}

	fit, err := h.ai.ScoreCandidate(c.Request.Context(), profileSummary, string(jobSummary))
	if err != nil {
		log.Error().Err(err).Msg("AI scoring failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI scoring failed. Please try again."})
		return
	}

	match, err := h.matchRepo.Upsert(c.Request.Context(), &model.Match{
		JobID:              jobID,
		CandidateID:        candidateID,
		OverallScore:       fit.OverallScore,
		SkillsScore:        fit.SkillsScore,
		CultureScore:       fit.CultureScore,
		CommunicationScore: fit.CommunicationScore,
		QualityScore:       fit.QualityScore,
		PotentialScore:     fit.PotentialScore,
		Evidence:           string(fit.Evidence),
		AIReasoning:        fit.AIReasoning,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to save match")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save match"})
		return
	}

	c.JSON(http.StatusCreated, match)
}

// candidateSummary serializes what the scorer sees: the AI profile when
// one exists, otherwise raw artifact texts.
func (h *MatchHandler) candidateSummary(c *gin.Context, candidate *model.Candidate, profile *model.CandidateProfile) (string, error) {
	summary := gin.H{
		"name":     candidate.Name,
		"location": candidate.Location,
		"status":   candidate.Status,
	}
	if profile != nil {
		summary["profile"] = profile
	} else {
		texts, err := h.artifactRepo.TextsByCandidate(c.Request.Context(), candidate.ID)
		if err != nil {
			return "", err
		}
		summary["artifact_texts"] = texts
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// List handles GET /jobs/:id/matches
func (h *MatchHandler) List(c *gin.Context) {
	jobID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return
	}

	job, err := h.jobRepo.FindByID(c.Request.Context(), jobID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get job")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list matches"})
		return
	}
	if job == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	matches, err := h.matchRepo.ListByJob(c.Request.Context(), jobID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list matches")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list matches"})
		return
	}
	if matches == nil {
		matches = []model.Match{}
	}

	c.JSON(http.StatusOK, matches)
}
