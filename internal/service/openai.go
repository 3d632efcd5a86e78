package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// OpenAIClient wraps the OpenAI Chat Completions API
type OpenAIClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

const (
	openAIModel       = "gpt-4o-mini"
	openAITemperature = 0.3
)

func NewOpenAIClient(apiKey, baseURL string) *OpenAIClient {
	return &OpenAIClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Configured reports whether an API key is set. Handlers use this to
// degrade gracefully instead of sending doomed requests.
func (c *OpenAIClient) Configured() bool {
	return c.apiKey != ""
}

// KeyPreview returns a masked form of the API key for health reporting.
func (c *OpenAIClient) KeyPreview() string {
	if len(c.apiKey) < 14 {
		return ""
	}
	return c.apiKey[:10] + "..." + c.apiKey[len(c.apiKey)-4:]
}

// ── OpenAI API request/response types ─────────────────

type chatRequest struct {
	Model          string          `json:"model"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
	Messages       []chatMessage   `json:"messages"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// completeJSON sends one system+user exchange and decodes the JSON
// object the model returns into out.
func (c *OpenAIClient) completeJSON(ctx context.Context, system, user string, out any) error {
	if c.apiKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}

	reqBody := chatRequest{
		Model:          openAIModel,
		Temperature:    openAITemperature,
		ResponseFormat: &responseFormat{Type: "json_object"},
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling OpenAI API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("OpenAI API returned %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return fmt.Errorf("parsing OpenAI response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return fmt.Errorf("empty response from OpenAI")
	}

	text := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	text = stripCodeFences(text)

	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("parsing model output: %w (raw: %s)", err, text)
	}
	return nil
}

// ── Artifact analysis ─────────────────────────────────

// ArtifactAnalysis is the structured result of analyzing one candidate
// artifact (resume, email thread, video transcript, code sample).
type ArtifactAnalysis struct {
	Skills             []SkillMention `json:"skills"`
	QualityScore       float64        `json:"quality_score"`
	Summary            string         `json:"summary"`
	Concerns           []string       `json:"concerns"`
	CommunicationStyle string         `json:"communication_style"`
}

type SkillMention struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

const analyzeSystemPrompt = `You are an expert recruiter analyzing candidate materials. Always return valid JSON.`

// AnalyzeArtifact extracts skills, a quality score, and a summary from
// a single artifact's text.
func (c *OpenAIClient) AnalyzeArtifact(ctx context.Context, artifactText, artifactKind string) (*ArtifactAnalysis, error) {
	prompt := fmt.Sprintf(`Analyze this %s and extract structured information.

Artifact content:
%s

Extract:
1. Skills mentioned (with confidence 0-1 for each)
2. Overall quality assessment (0-1 score)
3. Brief summary of key points
4. Any concerns or red flags
5. Communication style (if discernible from the content)

Return a JSON object with this exact structure:
{
  "skills": [{"name": "skill_name", "confidence": 0.8}],
  "quality_score": 0.75,
  "summary": "brief summary",
  "concerns": ["concern 1", "concern 2"],
  "communication_style": "professional/casual/technical/etc"
}`, artifactKind, truncate(artifactText, 4000))

	var analysis ArtifactAnalysis
	if err := c.completeJSON(ctx, analyzeSystemPrompt, prompt, &analysis); err != nil {
		return nil, fmt.Errorf("analyzing artifact: %w", err)
	}
	return &analysis, nil
}

// ── Candidate profile generation ──────────────────────

// GeneratedProfile is the AI synthesis of all a candidate's artifacts.
type GeneratedProfile struct {
	TechnicalSkills       []string `json:"technical_skills"`
	YearsExperience       float64  `json:"years_experience"`
	WritingQualityScore   float64  `json:"writing_quality_score"`
	VerbalQualityScore    float64  `json:"verbal_quality_score"`
	CommunicationStyle    string   `json:"communication_style"`
	PortfolioQualityScore float64  `json:"portfolio_quality_score"`
	CodeQualityScore      float64  `json:"code_quality_score"`
	CultureSignals        []string `json:"culture_signals"`
	PersonalityTraits     []string `json:"personality_traits"`
	Strengths             string   `json:"strengths"`
	Concerns              string   `json:"concerns"`
	BestRoleFit           string   `json:"best_role_fit"`
	GrowthPotentialScore  float64  `json:"growth_potential_score"`
	ProfileCompleteness   float64  `json:"profile_completeness"`
}

const profileSystemPrompt = `You are an expert recruiter creating detailed candidate profiles. Always return valid JSON.`

// GenerateProfile synthesizes a holistic candidate profile from the
// artifact data provided (analyses plus raw excerpts, pre-serialized).
func (c *OpenAIClient) GenerateProfile(ctx context.Context, artifactsData string) (*GeneratedProfile, error) {
	prompt := fmt.Sprintf(`Analyze all artifacts for this candidate and create a comprehensive profile.

Artifacts data:
%s

Create a holistic profile that synthesizes all information. Return a JSON object with this structure:
{
  "technical_skills": ["skill1", "skill2"],
  "years_experience": 5.5,
  "writing_quality_score": 0.8,
  "verbal_quality_score": 0.7,
  "communication_style": "clear and concise",
  "portfolio_quality_score": 0.85,
  "code_quality_score": 0.75,
  "culture_signals": ["shipped products", "takes ownership", "documented work"],
  "personality_traits": ["detail-oriented", "collaborative", "proactive"],
  "strengths": "Strong technical background with...",
  "concerns": "Limited experience with...",
  "best_role_fit": "Senior Full-Stack Engineer",
  "growth_potential_score": 0.8,
  "profile_completeness": 0.9
}

Ensure all scores are between 0 and 1. Base years_experience on evidence in the artifacts.`, truncate(artifactsData, 6000))

	var profile GeneratedProfile
	if err := c.completeJSON(ctx, profileSystemPrompt, prompt, &profile); err != nil {
		return nil, fmt.Errorf("generating candidate profile: %w", err)
	}
	return &profile, nil
}

// ── Job posting parsing ───────────────────────────────

// ParsedJob is the structured data extracted from a raw job posting,
// including any screening questions the posting lists.
type ParsedJob struct {
	JobTitle           string              `json:"job_title"`
	Description        string              `json:"description"`
	RequiredSkills     []string            `json:"required_skills"`
	NiceToHaveSkills   []string            `json:"nice_to_have_skills"`
	SalaryMin          *int                `json:"salary_min"`
	SalaryMax          *int                `json:"salary_max"`
	Location           *string             `json:"location"`
	MustHaveQuestions  []ScreeningQuestion `json:"must_have_questions"`
	PreferredQuestions []ScreeningQuestion `json:"preferred_questions"`
}

type ScreeningQuestion struct {
	Question    string `json:"question"`
	IdealAnswer string `json:"ideal_answer"`
}

const parseJobSystemPrompt = `You are an expert recruiter parsing job posts. Extract all relevant information and screening questions. Always return valid JSON.`

// ParseJobPosting extracts structured job data from raw posting text.
func (c *OpenAIClient) ParseJobPosting(ctx context.Context, postingText string) (*ParsedJob, error) {
	prompt := fmt.Sprintf(`Parse this job post and extract all relevant information.

Job Post Text:
%s

Extract and structure the following information:
1. job_title - The position title
2. description - Clean job description (remove company branding fluff, keep core responsibilities and requirements)
3. required_skills - Array of must-have technical and soft skills
4. nice_to_have_skills - Array of preferred/bonus skills
5. salary_min and salary_max - If salary range is mentioned (annual USD, null if not mentioned)
6. location - Location info (Remote/Hybrid/City, null if not mentioned)
7. must_have_questions - Screening questions labeled as "must-have" or "required" with their ideal answers
8. preferred_questions - Screening questions labeled as "preferred" or "nice-to-have" with their ideal answers

Each question object should have:
- question: The actual question text
- ideal_answer: The expected/ideal answer or qualification

Return a JSON object with this exact structure:
{
  "job_title": "Senior Full-Stack Engineer",
  "description": "We are seeking a talented engineer to...",
  "required_skills": ["Python", "React", "PostgreSQL", "AWS"],
  "nice_to_have_skills": ["Docker", "Kubernetes", "GraphQL"],
  "salary_min": 120000,
  "salary_max": 180000,
  "location": "Remote",
  "must_have_questions": [
    {"question": "How many years of Python experience do you have?", "ideal_answer": "5+ years"}
  ],
  "preferred_questions": [
    {"question": "Do you have experience with Docker?", "ideal_answer": "Yes, used in production"}
  ]
}

Be robust - handle different posting formats, missing sections, and varying question styles.`, truncate(postingText, 12000))

	var parsed ParsedJob
	if err := c.completeJSON(ctx, parseJobSystemPrompt, prompt, &parsed); err != nil {
		return nil, fmt.Errorf("parsing job posting: %w", err)
	}
	return &parsed, nil
}

// ── Candidate-job fit scoring ─────────────────────────

// FitScore is the AI-computed candidate-job fit, all dimensions 0-100.
// Evidence stays raw JSON; it is stored and returned verbatim.
type FitScore struct {
	OverallScore       float64         `json:"overall_score"`
	SkillsScore        float64         `json:"skills_score"`
	CultureScore       float64         `json:"culture_score"`
	CommunicationScore float64         `json:"communication_score"`
	QualityScore       float64         `json:"quality_score"`
	PotentialScore     float64         `json:"potential_score"`
	Evidence           json.RawMessage `json:"evidence"`
	AIReasoning        string          `json:"ai_reasoning"`
}

const scoreSystemPrompt = `You are an expert recruiter scoring candidate-job fit. Always return valid JSON with realistic, evidence-based scores.`

// ScoreCandidate scores a candidate profile against job requirements.
// Both arguments are pre-serialized JSON summaries.
func (c *OpenAIClient) ScoreCandidate(ctx context.Context, profileSummary, jobSummary string) (*FitScore, error) {
	prompt := fmt.Sprintf(`Score this candidate against the job requirements.

Candidate Profile:
%s

Job Requirements:
%s

Provide detailed scoring (0-100 for each dimension) and reasoning. Return JSON with this structure:
{
  "overall_score": 85.0,
  "skills_score": 90.0,
  "culture_score": 80.0,
  "communication_score": 85.0,
  "quality_score": 88.0,
  "potential_score": 82.0,
  "evidence": {
    "skills_match": ["quote showing skill X", "evidence of skill Y"],
    "culture_fit": ["shows ownership", "documented work"],
    "quality_indicators": ["strong portfolio", "clean code samples"]
  },
  "ai_reasoning": "This candidate is a strong match because..."
}

All scores should be 0-100. Be realistic and evidence-based.`,
		truncate(profileSummary, 3000), truncate(jobSummary, 2000))

	var score FitScore
	if err := c.completeJSON(ctx, scoreSystemPrompt, prompt, &score); err != nil {
		return nil, fmt.Errorf("scoring candidate: %w", err)
	}
	return &score, nil
}

// ── Helpers ───────────────────────────────────────────

// stripCodeFences removes markdown ```json ... ``` wrappers some models
// still emit around JSON bodies.
func stripCodeFences(text string) string {
	if strings.HasPrefix(text, "```") {
		if idx := strings.Index(text, "\n"); idx != -1 {
			text = text[idx+1:]
		}
		if idx := strings.LastIndex(text, "```"); idx != -1 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}
	return text
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
