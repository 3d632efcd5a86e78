package ranking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindKeywords(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		vocabulary []string
		want       []string
	}{
		{
			name:       "case insensitive",
			text:       "PYTHON",
			vocabulary: []string{"python"},
			want:       []string{"python"},
		},
		{
			name:       "whole word only, no substring match",
			text:       "reactive framework",
			vocabulary: []string{"react"},
			want:       nil,
		},
		{
			name:       "output follows vocabulary order, not text order",
			text:       "docker then python then react",
			vocabulary: []string{"python", "react", "docker"},
			want:       []string{"python", "react", "docker"},
		},
		{
			name:       "repeated keyword reported once",
			text:       "python python python",
			vocabulary: []string{"python"},
			want:       []string{"python"},
		},
		{
			name:       "punctuation still a word boundary",
			text:       "We use Python, React and Postgres.",
			vocabulary: []string{"python", "react", "postgres", "kubernetes"},
			want:       []string{"python", "react", "postgres"},
		},
		{
			name:       "empty text",
			text:       "",
			vocabulary: []string{"python"},
			want:       nil,
		},
		{
			name:       "empty vocabulary",
			text:       "python",
			vocabulary: nil,
			want:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindKeywords(tt.text, tt.vocabulary))
		})
	}
}

func TestSimilarity(t *testing.T) {
	t.Run("identical text scores 1.0", func(t *testing.T) {
		assert.Equal(t, 1.0, Similarity("build fast ship faster", "build fast ship faster"))
	})

	t.Run("symmetric", func(t *testing.T) {
		a := "python backend services"
		b := "frontend react apps with some python"
		assert.Equal(t, Similarity(a, b), Similarity(b, a))
	})

	t.Run("empty input scores 0.0", func(t *testing.T) {
		assert.Equal(t, 0.0, Similarity("", "anything"))
		assert.Equal(t, 0.0, Similarity("anything", ""))
		assert.Equal(t, 0.0, Similarity("", ""))
	})

	t.Run("punctuation only scores 0.0", func(t *testing.T) {
		assert.Equal(t, 0.0, Similarity("... !!!", "anything"))
	})

	t.Run("known overlap", func(t *testing.T) {
		// {a,b} vs {b,c}: intersection 1, union 3
		assert.InDelta(t, 1.0/3.0, Similarity("a b", "b c"), 1e-9)
	})

	t.Run("duplicate words collapse into the token set", func(t *testing.T) {
		assert.Equal(t, 1.0, Similarity("go go go", "go"))
	})

	t.Run("result stays in range", func(t *testing.T) {
		s := Similarity("completely different words here", "nothing shared at all")
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	})
}

func TestEvidenceSnippets(t *testing.T) {
	t.Run("first occurrence only per keyword", func(t *testing.T) {
		text := "python first" + strings.Repeat(" filler", 50) + " python second"
		snippets := EvidenceSnippets(text, []string{"python"}, 10)
		require.Len(t, snippets, 1)
		assert.Contains(t, snippets[0], "python first")
		assert.NotContains(t, snippets[0], "second")
	})

	t.Run("unmatched keyword contributes nothing", func(t *testing.T) {
		snippets := EvidenceSnippets("all about python", []string{"python", "kubernetes"}, 100)
		assert.Len(t, snippets, 1)
	})

	t.Run("order follows keyword input order", func(t *testing.T) {
		text := "docker is listed before python in this text"
		snippets := EvidenceSnippets(text, []string{"python", "docker"}, 5)
		require.Len(t, snippets, 2)
		assert.Contains(t, snippets[0], "python")
		assert.Contains(t, snippets[1], "docker")
	})

	t.Run("snippet clipped to text bounds and wrapped", func(t *testing.T) {
		snippets := EvidenceSnippets("short python text", []string{"python"}, 100)
		require.Len(t, snippets, 1)
		assert.Equal(t, "...short python text...", snippets[0])
	})

	t.Run("snippet trims surrounding whitespace", func(t *testing.T) {
		snippets := EvidenceSnippets("   python   ", []string{"python"}, 100)
		require.Len(t, snippets, 1)
		assert.Equal(t, "...python...", snippets[0])
	})

	t.Run("match is case insensitive but snippet keeps original case", func(t *testing.T) {
		snippets := EvidenceSnippets("Shipped the API", []string{"shipped"}, 100)
		require.Len(t, snippets, 1)
		assert.Contains(t, snippets[0], "Shipped the API")
	})

	t.Run("no keywords yields nothing", func(t *testing.T) {
		assert.Empty(t, EvidenceSnippets("some text", nil, 100))
	})
}

func TestEngineRank(t *testing.T) {
	engine := NewDefaultEngine()

	t.Run("worked example scores", func(t *testing.T) {
		candidates := []CandidateText{{
			ID:    1,
			Name:  "Ada",
			Email: "ada@example.com",
			Text:  "Shipped the Python service, documented the API, and launched it,",
		}}

		results := engine.Rank("Backend role", []string{"python"}, candidates)
		require.Len(t, results, 1)

		r := results[0]
		assert.Equal(t, []string{"python"}, r.MatchedSkills)
		assert.Empty(t, r.MissingSkills)
		assert.Equal(t, 1.0, r.SkillsScore)
		// shipped, launched, documented = 3 signals out of 4
		assert.Equal(t, 0.75, r.CultureScore)
		assert.Equal(t, 0.5, r.DomainScore)
		assert.Equal(t, 0.5, r.LogisticsScore)
	})

	t.Run("candidate with no artifact text is excluded", func(t *testing.T) {
		candidates := []CandidateText{
			{ID: 1, Name: "Empty", Email: "e@example.com", Text: ""},
			{ID: 2, Name: "Full", Email: "f@example.com", Text: "python developer"},
		}

		results := engine.Rank("python role", nil, candidates)
		require.Len(t, results, 1)
		assert.Equal(t, int64(2), results[0].ID)
	})

	t.Run("sorted by overall score descending", func(t *testing.T) {
		candidates := []CandidateText{
			{ID: 1, Name: "Weak", Email: "w@example.com", Text: "wrote some perl once"},
			{ID: 2, Name: "Strong", Email: "s@example.com", Text: "python react postgres docker, shipped and launched and owned and documented everything"},
		}

		results := engine.Rank("Need python react postgres docker", nil, candidates)
		require.Len(t, results, 2)
		assert.Equal(t, int64(2), results[0].ID)
		assert.Greater(t, results[0].OverallScore, results[1].OverallScore)
	})

	t.Run("required skills derived from description when empty", func(t *testing.T) {
		candidates := []CandidateText{
			{ID: 1, Name: "A", Email: "a@example.com", Text: "python and docker work"},
		}

		results := engine.Rank("Looking for python and kubernetes experience", nil, candidates)
		require.Len(t, results, 1)
		assert.Equal(t, []string{"python"}, results[0].MatchedSkills)
		assert.Equal(t, []string{"kubernetes"}, results[0].MissingSkills)
		assert.InDelta(t, 0.5, results[0].SkillsScore, 1e-9)
	})

	t.Run("no required skills anywhere scores skills at zero", func(t *testing.T) {
		candidates := []CandidateText{
			{ID: 1, Name: "A", Email: "a@example.com", Text: "shipped a lot of things"},
		}

		results := engine.Rank("a description mentioning no known skill", nil, candidates)
		require.Len(t, results, 1)
		assert.Equal(t, 0.0, results[0].SkillsScore)
	})

	t.Run("overall is the weighted blend of sub-scores", func(t *testing.T) {
		candidates := []CandidateText{
			{ID: 1, Name: "A", Email: "a@example.com", Text: "python engineer who shipped and documented services"},
		}

		results := engine.Rank("python services", []string{"python", "react"}, candidates)
		require.Len(t, results, 1)

		r := results[0]
		want := round3(0.45*r.SkillsScore + 0.20*r.CultureScore + 0.20*r.PotentialScore + 0.10*0.5 + 0.05*0.5)
		assert.Equal(t, want, r.OverallScore)
	})

	t.Run("culture score saturates at four signals", func(t *testing.T) {
		candidates := []CandidateText{
			{ID: 1, Name: "A", Email: "a@example.com", Text: "shipped launched owned documented"},
		}

		results := engine.Rank("anything", []string{"python"}, candidates)
		require.Len(t, results, 1)
		assert.Equal(t, 1.0, results[0].CultureScore)
	})

	t.Run("evidence capped at five keywords", func(t *testing.T) {
		candidates := []CandidateText{
			{ID: 1, Name: "A", Email: "a@example.com", Text: "python fastapi react postgres docker kubernetes shipped launched owned documented"},
		}

		results := engine.Rank("anything", DefaultSkillsVocabulary, candidates)
		require.Len(t, results, 1)
		assert.LessOrEqual(t, len(results[0].Evidence), 5)
	})

	t.Run("evidence no longer than distinct matched plus culture keywords", func(t *testing.T) {
		candidates := []CandidateText{
			{ID: 1, Name: "A", Email: "a@example.com", Text: "just python, shipped"},
		}

		results := engine.Rank("anything", []string{"python"}, candidates)
		require.Len(t, results, 1)
		assert.LessOrEqual(t, len(results[0].Evidence), 2)
	})

	t.Run("ties keep input order", func(t *testing.T) {
		text := "identical python resume, shipped"
		candidates := []CandidateText{
			{ID: 10, Name: "First", Email: "1@example.com", Text: text},
			{ID: 20, Name: "Second", Email: "2@example.com", Text: text},
		}

		results := engine.Rank("python", nil, candidates)
		require.Len(t, results, 2)
		assert.Equal(t, results[0].OverallScore, results[1].OverallScore)
		assert.Equal(t, int64(10), results[0].ID)
		assert.Equal(t, int64(20), results[1].ID)
	})

	t.Run("identical inputs rank identically", func(t *testing.T) {
		candidates := []CandidateText{
			{ID: 1, Name: "A", Email: "a@example.com", Text: "python react, shipped and owned the launch"},
			{ID: 2, Name: "B", Email: "b@example.com", Text: "postgres docker specialist, documented"},
		}

		first := engine.Rank("python react postgres team", nil, candidates)
		second := engine.Rank("python react postgres team", nil, candidates)
		assert.Equal(t, first, second)
	})

	t.Run("empty candidate set yields empty result", func(t *testing.T) {
		assert.Empty(t, engine.Rank("python", nil, nil))
	})

	t.Run("custom vocabularies are honored", func(t *testing.T) {
		custom := NewEngine([]string{"golang", "grpc"}, []string{"mentored"})
		candidates := []CandidateText{
			{ID: 1, Name: "A", Email: "a@example.com", Text: "golang services over grpc, mentored juniors"},
		}

		results := custom.Rank("golang grpc backend", nil, candidates)
		require.Len(t, results, 1)
		assert.Equal(t, []string{"golang", "grpc"}, results[0].MatchedSkills)
		assert.Equal(t, 0.25, results[0].CultureScore)
	})

	t.Run("scores rounded to three decimals", func(t *testing.T) {
		candidates := []CandidateText{
			{ID: 1, Name: "A", Email: "a@example.com", Text: "python and react and more words here"},
		}

		results := engine.Rank("python react postgres", nil, candidates)
		require.Len(t, results, 1)

		for _, v := range []float64{
			results[0].OverallScore, results[0].SkillsScore,
			results[0].CultureScore, results[0].PotentialScore,
		} {
			assert.Equal(t, round3(v), v)
		}
	})
}
