// Package ranking implements the local, deterministic candidate-ranking
// engine behind POST /match/rank. Unlike the AI-backed matcher it makes
// no network calls: scoring is keyword matching plus word-set Jaccard
// overlap over in-memory strings.
package ranking

import (
	"math"
	"sort"
)

// Sub-score weights. They sum to 1.0 and are fixed constants of the
// algorithm.
const (
	weightSkills    = 0.45
	weightCulture   = 0.20
	weightPotential = 0.20
	weightDomain    = 0.10
	weightLogistics = 0.05

	// cultureSaturation is the number of distinct culture signals that
	// earns a full culture score.
	cultureSaturation = 4.0

	// Domain fit and logistics compatibility are computed by the
	// AI-backed matcher, not here; this path always reports the neutral
	// midpoint.
	domainPlaceholder    = 0.5
	logisticsPlaceholder = 0.5

	// evidenceKeywordCap bounds how many matched keywords contribute
	// evidence snippets.
	evidenceKeywordCap = 5
)

// CandidateText is one candidate's scoring input: identity plus the
// concatenation (single-space joined, retrieval order) of every stored
// text artifact. A candidate with no artifacts has Text == "" and is
// excluded from ranking output entirely.
type CandidateText struct {
	ID    int64
	Name  string
	Email string
	Text  string
}

// Score is the ranked result for a single candidate. Field names follow
// the wire contract of POST /match/rank.
type Score struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	OverallScore   float64  `json:"overall_score"`
	SkillsScore    float64  `json:"skills_score"`
	CultureScore   float64  `json:"culture_score"`
	PotentialScore float64  `json:"potential_score"`
	DomainScore    float64  `json:"domain_score"`
	LogisticsScore float64  `json:"logistics_score"`
	MatchedSkills  []string `json:"matched_skills"`
	MissingSkills  []string `json:"missing_skills"`
	Evidence       []string `json:"evidence"`
}

// Engine scores candidates against a job using explicit vocabularies.
// Vocabularies are passed in rather than read from globals so tests can
// substitute their own.
type Engine struct {
	skills  []string
	culture []string
}

// NewEngine returns an engine using the given skill and culture-signal
// vocabularies.
func NewEngine(skills, culture []string) *Engine {
	return &Engine{skills: skills, culture: culture}
}

// NewDefaultEngine returns an engine with the built-in vocabularies.
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultSkillsVocabulary, DefaultCultureVocabulary)
}

// Rank scores every candidate with artifact text against the job and
// returns the results sorted by overall score descending. The sort is
// stable, so candidates with equal scores keep their input order. If
// requiredSkills is empty it is derived once from the job description
// and that derived list is used for every candidate. Rank performs no
// I/O and never fails: degenerate inputs yield an empty slice.
func (e *Engine) Rank(jobDescription string, requiredSkills []string, candidates []CandidateText) []Score {
	if len(requiredSkills) == 0 {
		requiredSkills = FindKeywords(jobDescription, e.skills)
	}

	results := make([]Score, 0, len(candidates))
	for _, cand := range candidates {
		if cand.Text == "" {
			continue
		}

		candidateSkills := FindKeywords(cand.Text, e.skills)
		cultureSignals := FindKeywords(cand.Text, e.culture)

		matched, missing := partitionSkills(candidateSkills, requiredSkills)

		skillsScore := 0.0
		if len(requiredSkills) > 0 {
			skillsScore = float64(len(matched)) / float64(len(requiredSkills))
		}
		cultureScore := math.Min(float64(len(cultureSignals))/cultureSaturation, 1.0)
		potentialScore := Similarity(cand.Text, jobDescription)

		overall := weightSkills*skillsScore +
			weightCulture*cultureScore +
			weightPotential*potentialScore +
			weightDomain*domainPlaceholder +
			weightLogistics*logisticsPlaceholder

		keywords := make([]string, 0, len(matched)+len(cultureSignals))
		keywords = append(keywords, matched...)
		keywords = append(keywords, cultureSignals...)
		if len(keywords) > evidenceKeywordCap {
			keywords = keywords[:evidenceKeywordCap]
		}
		evidence := EvidenceSnippets(cand.Text, keywords, DefaultContextChars)
		if evidence == nil {
			evidence = []string{}
		}

		results = append(results, Score{
			ID:             cand.ID,
			Name:           cand.Name,
			Email:          cand.Email,
			OverallScore:   round3(overall),
			SkillsScore:    round3(skillsScore),
			CultureScore:   round3(cultureScore),
			PotentialScore: round3(potentialScore),
			DomainScore:    round3(domainPlaceholder),
			LogisticsScore: round3(logisticsPlaceholder),
			MatchedSkills:  matched,
			MissingSkills:  missing,
			Evidence:       evidence,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].OverallScore > results[j].OverallScore
	})

	return results
}

// partitionSkills splits the required skills into those the candidate
// has and those they lack. Matched skills keep candidate-skill order
// (which follows the vocabulary) and missing skills keep required-list
// order, so identical inputs always rank identically.
func partitionSkills(candidateSkills, requiredSkills []string) (matched, missing []string) {
	required := make(map[string]bool, len(requiredSkills))
	for _, s := range requiredSkills {
		required[s] = true
	}
	has := make(map[string]bool, len(candidateSkills))
	for _, s := range candidateSkills {
		has[s] = true
	}

	matched = []string{}
	for _, s := range candidateSkills {
		if required[s] {
			matched = append(matched, s)
		}
	}
	missing = []string{}
	for _, s := range requiredSkills {
		if !has[s] {
			missing = append(missing, s)
		}
	}
	return matched, missing
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
