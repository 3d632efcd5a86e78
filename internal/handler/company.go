package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/recruitr-api/internal/model"
	"github.com/yourusername/recruitr-api/internal/repository"
)

type CompanyHandler struct {
	companyRepo *repository.CompanyRepo
}

func NewCompanyHandler(companyRepo *repository.CompanyRepo) *CompanyHandler {
	return &CompanyHandler{companyRepo: companyRepo}
}

// Get handles GET /company/profile
func (h *CompanyHandler) Get(c *gin.Context) {
	profile, err := h.companyRepo.Get(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch company profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch company profile"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Company profile not set up yet"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

type companyRequest struct {
	CompanyName        string `json:"company_name" binding:"required"`
	AboutCompany       string `json:"about_company"`
	Mission            string `json:"mission"`
	Vision             string `json:"vision"`
	Values             string `json:"values"`
	CultureDescription string `json:"culture_description"`
	WebsiteURL         string `json:"website_url"`
}

// Save handles POST /company/profile. A second save replaces the first;
// there is only ever one company.
func (h *CompanyHandler) Save(c *gin.Context) {
	var req companyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company name is required"})
		return
	}

	saved, err := h.companyRepo.Save(c.Request.Context(), &model.CompanyProfile{
		CompanyName:        req.CompanyName,
		AboutCompany:       req.AboutCompany,
		Mission:            req.Mission,
		Vision:             req.Vision,
		Values:             req.Values,
		CultureDescription: req.CultureDescription,
		WebsiteURL:         req.WebsiteURL,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to save company profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save company profile"})
		return
	}

	c.JSON(http.StatusOK, saved)
}
