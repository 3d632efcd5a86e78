package handler

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/recruitr-api/internal/model"
	"github.com/yourusername/recruitr-api/internal/repository"
	"github.com/yourusername/recruitr-api/internal/service"
)

const maxUploadBytes = 10 << 20 // 10 MB

type ArtifactHandler struct {
	candidateRepo *repository.CandidateRepo
	artifactRepo  *repository.ArtifactRepo
	ai            *service.OpenAIClient
	uploadDir     string
}

func NewArtifactHandler(
	candidateRepo *repository.CandidateRepo,
	artifactRepo *repository.ArtifactRepo,
	ai *service.OpenAIClient,
	uploadDir string,
) *ArtifactHandler {
	return &ArtifactHandler{
		candidateRepo: candidateRepo,
		artifactRepo:  artifactRepo,
		ai:            ai,
		uploadDir:     uploadDir,
	}
}

// Upload handles POST /candidates/:id/artifacts. Accepts multipart form
// data with exactly one of: a file, a url field, or a text field. The
// artifact kind is inferred from whichever was provided.
func (h *ArtifactHandler) Upload(c *gin.Context) {
	candidateID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid candidate ID"})
		return
	}

	candidate, err := h.candidateRepo.FindByID(c.Request.Context(), candidateID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to look up candidate for artifact upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload artifact"})
		return
	}
	if candidate == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Candidate not found"})
		return
	}

	artifact := &model.Artifact{
		CandidateID: candidateID,
		Title:       c.PostForm("title"),
	}

	file, header, fileErr := c.Request.FormFile("file")
	rawURL := strings.TrimSpace(c.PostForm("url"))
	text := strings.TrimSpace(c.PostForm("text"))

	switch {
	case fileErr == nil:
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

		extracted, err := extractFileText(header.Filename, fileBytes)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		stored, err := h.storeFile(header.Filename, fileBytes)
		if err != nil {
			log.Error().Err(err).Msg("Failed to store uploaded file")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
			return
		}

		artifact.Kind = kindForFilename(header.Filename)
		artifact.StorageLocation = stored
		artifact.Text = extracted
		if artifact.Title == "" {
			artifact.Title = header.Filename
		}

	case rawURL != "":
		artifact.Kind = kindForURL(rawURL)
		artifact.RawURL = rawURL
		artifact.Text = rawURL
		if artifact.Title == "" {
			artifact.Title = rawURL
		}

	case text != "":
		artifact.Kind = model.ArtifactKindTextResponse
		artifact.Text = text

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide a file, url, or text"})
		return
	}

	// Analysis is best-effort: the artifact is saved either way.
	if h.ai.Configured() && artifact.Text != "" {
		analysis, err := h.ai.AnalyzeArtifact(c.Request.Context(), artifact.Text, artifact.Kind)
		if err != nil {
			log.Warn().Err(err).Int64("candidate_id", candidateID).Msg("Artifact analysis failed")
		} else {
			artifact.AISummary = analysis.Summary
			artifact.AIQualityScore = &analysis.QualityScore
			for _, s := range analysis.Skills {
				artifact.AISkills = append(artifact.AISkills, s.Name)
			}
			now := time.Now()
			artifact.ProcessedAt = &now
		}
	}

	created, err := h.artifactRepo.Create(c.Request.Context(), artifact)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create artifact")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload artifact"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// storeFile persists the upload under a random name so original
// filenames can never collide or escape the upload directory.
func (h *ArtifactHandler) storeFile(originalName string, data []byte) (string, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload directory: %w", err)
	}
	name := uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
	path := filepath.Join(h.uploadDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}
	return path, nil
}

// ── Shared extraction and kind inference helpers ──────

var codeExtensions = map[string]bool{
	".py": true, ".js": true, ".ts": true, ".tsx": true, ".jsx": true,
	".go": true, ".java": true, ".rb": true, ".rs": true, ".c": true,
	".cpp": true, ".cs": true, ".php": true, ".swift": true, ".kt": true,
}

func kindForFilename(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case ext == ".pdf", ext == ".doc", ext == ".docx":
		return model.ArtifactKindResume
	case codeExtensions[ext]:
		return model.ArtifactKindCodeSample
	default:
		return model.ArtifactKindFileUpload
	}
}

func kindForURL(rawURL string) string {
	lower := strings.ToLower(rawURL)
	switch {
	case strings.Contains(lower, "github.com"):
		return model.ArtifactKindGithubURL
	case strings.Contains(lower, "behance.net"),
		strings.Contains(lower, "dribbble.com"),
		strings.Contains(lower, "portfolio"):
		return model.ArtifactKindPortfolioURL
	default:
		return model.ArtifactKindExternalURL
	}
}

// extractFileText pulls plain text out of an uploaded file. PDFs go
// through the PDF reader; everything else is decoded as UTF-8 with a
// Latin-1 fallback for stray bytes.
func extractFileText(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		if len(data) < 4 || string(data[:4]) != "%PDF" {
			return "", fmt.Errorf("invalid PDF file")
		}
		text, err := extractPDFText(data)
		if err != nil {
			log.Error().Err(err).Msg("Failed to extract text from PDF")
			return "", fmt.Errorf("could not extract text from this PDF; it may be image-based or corrupted")
		}
		return strings.TrimSpace(text), nil
	case ".txt", ".md", ".doc", ".docx":
		return strings.TrimSpace(decodeText(data)), nil
	default:
		if codeExtensions[ext] {
			return strings.TrimSpace(decodeText(data)), nil
		}
		return "", fmt.Errorf("unsupported file format: %s", ext)
	}
}

func extractPDFText(data []byte) (string, error) {
	// ledongthuc/pdf needs a seekable file, so stage through a temp file
	tmpFile, err := os.CreateTemp("", "artifact-*.pdf")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())
	defer tmpFile.Close()

	if _, err := tmpFile.Write(data); err != nil {
		return "", fmt.Errorf("writing temp file: %w", err)
	}

	f, reader, err := pdf.Open(tmpFile.Name())
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	numPages := reader.NumPage()

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Warn().Int("page", i).Err(err).Msg("Failed to extract text from PDF page")
			continue
		}

		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(text)
	}

	return sb.String(), nil
}

// decodeText interprets bytes as UTF-8 when valid, otherwise maps each
// byte through Latin-1 so nothing is silently dropped.
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}
