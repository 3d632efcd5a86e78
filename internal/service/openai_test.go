package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chatStub returns an httptest server that answers every chat-completions
// request with the given message content.
func chatStub(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestAnalyzeArtifact(t *testing.T) {
	srv := chatStub(t, `{
		"skills": [{"name": "python", "confidence": 0.9}],
		"quality_score": 0.8,
		"summary": "Strong backend resume",
		"concerns": [],
		"communication_style": "technical"
	}`)
	defer srv.Close()

	client := NewOpenAIClient("test-key", srv.URL)
	analysis, err := client.AnalyzeArtifact(context.Background(), "resume text", "resume")
	require.NoError(t, err)

	require.Len(t, analysis.Skills, 1)
	assert.Equal(t, "python", analysis.Skills[0].Name)
	assert.Equal(t, 0.8, analysis.QualityScore)
	assert.Equal(t, "technical", analysis.CommunicationStyle)
}

func TestAnalyzeArtifactStripsCodeFences(t *testing.T) {
	srv := chatStub(t, "```json\n{\"skills\": [], \"quality_score\": 0.5, \"summary\": \"ok\", \"concerns\": [], \"communication_style\": \"unknown\"}\n```")
	defer srv.Close()

	client := NewOpenAIClient("test-key", srv.URL)
	analysis, err := client.AnalyzeArtifact(context.Background(), "text", "resume")
	require.NoError(t, err)
	assert.Equal(t, 0.5, analysis.QualityScore)
}

func TestScoreCandidate(t *testing.T) {
	srv := chatStub(t, `{
		"overall_score": 85,
		"skills_score": 90,
		"culture_score": 80,
		"communication_score": 85,
		"quality_score": 88,
		"potential_score": 82,
		"evidence": {"skills_match": ["built python services"]},
		"ai_reasoning": "Strong match"
	}`)
	defer srv.Close()

	client := NewOpenAIClient("test-key", srv.URL)
	score, err := client.ScoreCandidate(context.Background(), `{"skills":["python"]}`, `{"title":"Backend"}`)
	require.NoError(t, err)

	assert.Equal(t, 85.0, score.OverallScore)
	assert.Equal(t, "Strong match", score.AIReasoning)
	assert.Contains(t, string(score.Evidence), "skills_match")
}

func TestParseJobPosting(t *testing.T) {
	srv := chatStub(t, `{
		"job_title": "Backend Engineer",
		"description": "Build services",
		"required_skills": ["python", "postgres"],
		"nice_to_have_skills": ["docker"],
		"salary_min": 120000,
		"salary_max": 160000,
		"location": "Remote",
		"must_have_questions": [{"question": "Years of Python?", "ideal_answer": "5+"}],
		"preferred_questions": []
	}`)
	defer srv.Close()

	client := NewOpenAIClient("test-key", srv.URL)
	parsed, err := client.ParseJobPosting(context.Background(), "raw posting")
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer", parsed.JobTitle)
	assert.Equal(t, []string{"python", "postgres"}, parsed.RequiredSkills)
	require.NotNil(t, parsed.SalaryMin)
	assert.Equal(t, 120000, *parsed.SalaryMin)
	require.Len(t, parsed.MustHaveQuestions, 1)
}

func TestMissingAPIKey(t *testing.T) {
	client := NewOpenAIClient("", "https://api.openai.com")
	assert.False(t, client.Configured())

	_, err := client.AnalyzeArtifact(context.Background(), "text", "resume")
	assert.ErrorContains(t, err, "not configured")
}

func TestAPIErrorSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewOpenAIClient("test-key", srv.URL)
	_, err := client.AnalyzeArtifact(context.Background(), "text", "resume")
	assert.ErrorContains(t, err, "429")
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fences", `{"a":1}`, `{"a":1}`},
		{"json fences", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fences", "```\n{\"a\":1}\n```", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFences(tt.in))
		})
	}
}

func TestKeyPreview(t *testing.T) {
	client := NewOpenAIClient("sk-proj-abcdefghijklmnop", "")
	assert.Equal(t, "sk-proj-ab...mnop", client.KeyPreview())

	short := NewOpenAIClient("short", "")
	assert.Equal(t, "", short.KeyPreview())
}
