package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/recruitr-api/internal/model"
	"github.com/yourusername/recruitr-api/internal/repository"
)

type JobHandler struct {
	jobRepo *repository.JobRepo
}

func NewJobHandler(jobRepo *repository.JobRepo) *JobHandler {
	return &JobHandler{jobRepo: jobRepo}
}

type jobRequest struct {
	Title                    string     `json:"title" binding:"required"`
	Description              string     `json:"description"`
	RequiredSkills           []string   `json:"required_skills"`
	NiceToHaveSkills         []string   `json:"nice_to_have_skills"`
	CultureRequirements      string     `json:"culture_requirements"`
	SalaryMin                int        `json:"salary_min"`
	SalaryMax                int        `json:"salary_max"`
	HoursRequired            int        `json:"hours_required"`
	Location                 string     `json:"location"`
	VisaSponsorshipAvailable bool       `json:"visa_sponsorship_available"`
	StartDateNeeded          *time.Time `json:"start_date_needed"`
	Status                   string     `json:"status"`
}

func (r *jobRequest) toModel() *model.Job {
	hours := r.HoursRequired
	if hours == 0 {
		hours = 40
	}
	status := r.Status
	if status == "" {
		status = model.JobStatusOpen
	}
	required := r.RequiredSkills
	if required == nil {
		required = []string{}
	}
	niceToHave := r.NiceToHaveSkills
	if niceToHave == nil {
		niceToHave = []string{}
	}
	return &model.Job{
		Title:                    r.Title,
		Description:              r.Description,
		RequiredSkills:           required,
		NiceToHaveSkills:         niceToHave,
		CultureRequirements:      r.CultureRequirements,
		SalaryMin:                r.SalaryMin,
		SalaryMax:                r.SalaryMax,
		HoursRequired:            hours,
		Location:                 r.Location,
		VisaSponsorshipAvailable: r.VisaSponsorshipAvailable,
		StartDateNeeded:          r.StartDateNeeded,
		Status:                   status,
	}
}

// Create handles POST /jobs
func (h *JobHandler) Create(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Job title is required"})
		return
	}

	created, err := h.jobRepo.Create(c.Request.Context(), req.toModel())
	if err != nil {
		log.Error().Err(err).Msg("Failed to create job")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// List handles GET /jobs
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobRepo.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		log.Error().Err(err).Msg("Failed to list jobs")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list jobs"})
		return
	}
	if jobs == nil {
		jobs = []model.Job{}
	}
	c.JSON(http.StatusOK, jobs)
}

// Get handles GET /jobs/:id
func (h *JobHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return
	}

	job, err := h.jobRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get job")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get job"})
		return
	}
	if job == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	c.JSON(http.StatusOK, job)
}

// Update handles PUT /jobs/:id
func (h *JobHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return
	}

	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Job title is required"})
		return
	}

	job := req.toModel()
	job.ID = id

	updated, err := h.jobRepo.Update(c.Request.Context(), job)
	if err != nil {
		log.Error().Err(err).Msg("Failed to update job")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update job"})
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /jobs/:id
func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return
	}

	if err := h.jobRepo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully", "id": id})
}
