package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/recruitr-api/internal/model"
	"github.com/yourusername/recruitr-api/internal/ranking"
	"github.com/yourusername/recruitr-api/internal/repository"
	"github.com/yourusername/recruitr-api/internal/service"
)

type IngestHandler struct {
	candidateRepo *repository.CandidateRepo
	artifactRepo  *repository.ArtifactRepo
	profileRepo   *repository.ProfileRepo
	ai            *service.OpenAIClient
	store         func(filename string, data []byte) (string, error)
}

func NewIngestHandler(
	candidateRepo *repository.CandidateRepo,
	artifactRepo *repository.ArtifactRepo,
	profileRepo *repository.ProfileRepo,
	ai *service.OpenAIClient,
	artifacts *ArtifactHandler,
) *IngestHandler {
	return &IngestHandler{
		candidateRepo: candidateRepo,
		artifactRepo:  artifactRepo,
		profileRepo:   profileRepo,
		ai:            ai,
		store:         artifacts.storeFile,
	}
}

type ingestResponse struct {
	Candidate      *model.Candidate `json:"candidate"`
	Artifact       *model.Artifact  `json:"artifact"`
	SkillsDetected []string         `json:"skills_detected"`
	CultureSignals []string         `json:"culture_signals"`
	AIAnalyzed     bool             `json:"ai_analyzed"`
}

// Upload handles POST /ingest/upload: one multipart request that
// creates the candidate, stores their resume as an artifact, and kicks
// off analysis. The response always includes the locally detected
// skill and culture keywords even when AI is unavailable.
func (h *IngestHandler) Upload(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	email := strings.TrimSpace(c.PostForm("email"))
	if name == "" || email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and email are required"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large (max 10MB)"})
		return
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}

	text, err := extractFileText(header.Filename, fileBytes)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No text could be extracted from the file"})
		return
	}

	existing, err := h.candidateRepo.FindByEmail(c.Request.Context(), email)
	if err != nil {
		log.Error().Err(err).Msg("Failed to check for existing candidate")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to ingest candidate"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Candidate with this email already exists"})
		return
	}

	candidate, err := h.candidateRepo.Create(c.Request.Context(), &model.Candidate{
		Name:           name,
		Email:          email,
		HoursAvailable: 40,
		Status:         model.CandidateStatusNew,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to create candidate")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to ingest candidate"})
		return
	}

	stored, err := h.store(header.Filename, fileBytes)
	if err != nil {
		log.Error().Err(err).Msg("Failed to store resume file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	artifact := &model.Artifact{
		CandidateID:     candidate.ID,
		Kind:            model.ArtifactKindResume,
		Title:           header.Filename,
		StorageLocation: stored,
		Text:            text,
	}

	resp := ingestResponse{
		SkillsDetected: ranking.FindKeywords(text, ranking.DefaultSkillsVocabulary),
		CultureSignals: ranking.FindKeywords(text, ranking.DefaultCultureVocabulary),
	}
	if resp.SkillsDetected == nil {
		resp.SkillsDetected = []string{}
	}
	if resp.CultureSignals == nil {
		resp.CultureSignals = []string{}
	}

	// AI enrichment is best-effort; failures are logged, not fatal.
	if h.ai.Configured() {
		analysis, err := h.ai.AnalyzeArtifact(c.Request.Context(), text, model.ArtifactKindResume)
		if err != nil {
			log.Warn().Err(err).Int64("candidate_id", candidate.ID).Msg("Resume analysis failed")
		} else {
			artifact.AISummary = analysis.Summary
			artifact.AIQualityScore = &analysis.QualityScore
			for _, s := range analysis.Skills {
				artifact.AISkills = append(artifact.AISkills, s.Name)
			}
			now := time.Now()
			artifact.ProcessedAt = &now
			resp.AIAnalyzed = true

			if err := h.generateProfile(c, candidate.ID, analysis, text); err != nil {
				log.Warn().Err(err).Int64("candidate_id", candidate.ID).Msg("Profile generation failed")
			}
		}
	}

	created, err := h.artifactRepo.Create(c.Request.Context(), artifact)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create resume artifact")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to ingest candidate"})
		return
	}

	resp.Candidate = candidate
	resp.Artifact = created
	c.JSON(http.StatusCreated, resp)
}

func (h *IngestHandler) generateProfile(c *gin.Context, candidateID int64, analysis *service.ArtifactAnalysis, text string) error {
	data, err := json.Marshal(gin.H{
		"artifacts": []gin.H{{
			"kind":     model.ArtifactKindResume,
			"analysis": analysis,
			"excerpt":  text,
		}},
	})
	if err != nil {
		return err
	}

	generated, err := h.ai.GenerateProfile(c.Request.Context(), string(data))
	if err != nil {
		return err
	}

	_, err = h.profileRepo.Upsert(c.Request.Context(), &model.CandidateProfile{
		CandidateID:           candidateID,
		TechnicalSkills:       generated.TechnicalSkills,
		YearsExperience:       generated.YearsExperience,
		WritingQualityScore:   generated.WritingQualityScore,
		VerbalQualityScore:    generated.VerbalQualityScore,
		CommunicationStyle:    generated.CommunicationStyle,
		PortfolioQualityScore: generated.PortfolioQualityScore,
		CodeQualityScore:      generated.CodeQualityScore,
		CultureSignals:        generated.CultureSignals,
		PersonalityTraits:     generated.PersonalityTraits,
		Strengths:             generated.Strengths,
		Concerns:              generated.Concerns,
		BestRoleFit:           generated.BestRoleFit,
		GrowthPotentialScore:  generated.GrowthPotentialScore,
		ProfileCompleteness:   generated.ProfileCompleteness,
	})
	return err
}
