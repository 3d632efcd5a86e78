package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/recruitr-api/internal/model"
	"github.com/yourusername/recruitr-api/internal/repository"
)

type CandidateHandler struct {
	candidateRepo *repository.CandidateRepo
	artifactRepo  *repository.ArtifactRepo
	profileRepo   *repository.ProfileRepo
}

func NewCandidateHandler(
	candidateRepo *repository.CandidateRepo,
	artifactRepo *repository.ArtifactRepo,
	profileRepo *repository.ProfileRepo,
) *CandidateHandler {
	return &CandidateHandler{
		candidateRepo: candidateRepo,
		artifactRepo:  artifactRepo,
		profileRepo:   profileRepo,
	}
}

type candidateRequest struct {
	Name                  string     `json:"name" binding:"required"`
	Email                 string     `json:"email" binding:"required,email"`
	Phone                 string     `json:"phone"`
	LinkedinURL           string     `json:"linkedin_url"`
	GithubURL             string     `json:"github_url"`
	PortfolioURL          string     `json:"portfolio_url"`
	Location              string     `json:"location"`
	SalaryExpectationMin  int        `json:"salary_expectation_min"`
	SalaryExpectationMax  int        `json:"salary_expectation_max"`
	HoursAvailable        int        `json:"hours_available"`
	AvailabilityStartDate *time.Time `json:"availability_start_date"`
	VisaStatus            string     `json:"visa_status"`
	Status                string     `json:"status"`
}

func (r *candidateRequest) toModel() *model.Candidate {
	hours := r.HoursAvailable
	if hours == 0 {
		hours = 40
	}
	status := r.Status
	if status == "" {
		status = model.CandidateStatusNew
	}
	return &model.Candidate{
		Name:                  r.Name,
		Email:                 r.Email,
		Phone:                 r.Phone,
		LinkedinURL:           r.LinkedinURL,
		GithubURL:             r.GithubURL,
		PortfolioURL:          r.PortfolioURL,
		Location:              r.Location,
		SalaryExpectationMin:  r.SalaryExpectationMin,
		SalaryExpectationMax:  r.SalaryExpectationMax,
		HoursAvailable:        hours,
		AvailabilityStartDate: r.AvailabilityStartDate,
		VisaStatus:            r.VisaStatus,
		Status:                status,
	}
}

// Create handles POST /candidates
func (h *CandidateHandler) Create(c *gin.Context) {
	var req candidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and a valid email are required"})
		return
	}

	existing, err := h.candidateRepo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		log.Error().Err(err).Msg("Failed to check for existing candidate")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create candidate"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Candidate with this email already exists"})
		return
	}

	created, err := h.candidateRepo.Create(c.Request.Context(), req.toModel())
	if err != nil {
		log.Error().Err(err).Msg("Failed to create candidate")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create candidate"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// List handles GET /candidates
func (h *CandidateHandler) List(c *gin.Context) {
	filter := repository.CandidateFilter{
		Status:   c.Query("status"),
		Location: c.Query("location"),
	}

	candidates, err := h.candidateRepo.List(c.Request.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list candidates")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list candidates"})
		return
	}

	for i := range candidates {
		count, err := h.artifactRepo.CountByCandidate(c.Request.Context(), candidates[i].ID)
		if err != nil {
			log.Error().Err(err).Int64("candidate_id", candidates[i].ID).Msg("Failed to count artifacts")
			continue
		}
		candidates[i].ArtifactCount = count
	}

	if candidates == nil {
		candidates = []model.Candidate{}
	}
	c.JSON(http.StatusOK, candidates)
}

// candidateDetail joins the candidate with artifacts and AI profile
type candidateDetail struct {
	model.Candidate
	Artifacts []model.Artifact        `json:"artifacts"`
	Profile   *model.CandidateProfile `json:"profile"`
}

// Get handles GET /candidates/:id
func (h *CandidateHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid candidate ID"})
		return
	}

	candidate, err := h.candidateRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get candidate")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get candidate"})
		return
	}
	if candidate == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Candidate not found"})
		return
	}

	artifacts, err := h.artifactRepo.ListByCandidate(c.Request.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list candidate artifacts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get candidate"})
		return
	}
	if artifacts == nil {
		artifacts = []model.Artifact{}
	}

	profile, err := h.profileRepo.FindByCandidate(c.Request.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch candidate profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get candidate"})
		return
	}

	candidate.ArtifactCount = len(artifacts)

	c.JSON(http.StatusOK, candidateDetail{
		Candidate: *candidate,
		Artifacts: artifacts,
		Profile:   profile,
	})
}

// Update handles PUT /candidates/:id
func (h *CandidateHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid candidate ID"})
		return
	}

	var req candidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and a valid email are required"})
		return
	}

	candidate := req.toModel()
	candidate.ID = id

	updated, err := h.candidateRepo.Update(c.Request.Context(), candidate)
	if err != nil {
		log.Error().Err(err).Msg("Failed to update candidate")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update candidate"})
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Candidate not found"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /candidates/:id (soft delete)
func (h *CandidateHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid candidate ID"})
		return
	}

	if err := h.candidateRepo.SoftDelete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Candidate not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Candidate deleted successfully", "id": id})
}

// ListArtifacts handles GET /candidates/:id/artifacts
func (h *CandidateHandler) ListArtifacts(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid candidate ID"})
		return
	}

	candidate, err := h.candidateRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get candidate")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list artifacts"})
		return
	}
	if candidate == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Candidate not found"})
		return
	}

	artifacts, err := h.artifactRepo.ListByCandidate(c.Request.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list artifacts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list artifacts"})
		return
	}
	if artifacts == nil {
		artifacts = []model.Artifact{}
	}

	c.JSON(http.StatusOK, artifacts)
}
