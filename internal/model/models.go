package model

import "time"

// Candidate is a person in the hiring pipeline.
type Candidate struct {
	ID                    int64      `json:"id"`
	Name                  string     `json:"name"`
	Email                 string     `json:"email"`
	Phone                 string     `json:"phone,omitempty"`
	LinkedinURL           string     `json:"linkedin_url,omitempty"`
	GithubURL             string     `json:"github_url,omitempty"`
	PortfolioURL          string     `json:"portfolio_url,omitempty"`
	Location              string     `json:"location,omitempty"`
	SalaryExpectationMin  int        `json:"salary_expectation_min,omitempty"`
	SalaryExpectationMax  int        `json:"salary_expectation_max,omitempty"`
	HoursAvailable        int        `json:"hours_available"`
	AvailabilityStartDate *time.Time `json:"availability_start_date,omitempty"`
	VisaStatus            string     `json:"visa_status,omitempty"`
	Status                string     `json:"status"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`

	// Populated by the handler layer, not stored
	ArtifactCount int `json:"artifact_count"`
}

// Valid candidate statuses
const (
	CandidateStatusNew       = "new"
	CandidateStatusScreening = "screening"
	CandidateStatusActive    = "active"
	CandidateStatusHired     = "hired"
	CandidateStatusArchived  = "archived"
	CandidateStatusDeleted   = "deleted"
)

// Artifact is a stored piece of candidate-submitted material (resume,
// link, text response) used as scoring input.
type Artifact struct {
	ID              int64      `json:"id"`
	CandidateID     int64      `json:"candidate_id"`
	Kind            string     `json:"kind"`
	Title           string     `json:"title,omitempty"`
	StorageLocation string     `json:"storage_location,omitempty"`
	RawURL          string     `json:"raw_url,omitempty"`
	Text            string     `json:"text,omitempty"`
	AISummary       string     `json:"ai_summary,omitempty"`
	AISkills        []string   `json:"ai_skills,omitempty"`
	AIQualityScore  *float64   `json:"ai_quality_score,omitempty"`
	UploadedAt      time.Time  `json:"uploaded_at"`
	ProcessedAt     *time.Time `json:"processed_at,omitempty"`
}

// Artifact kinds inferred at upload time
const (
	ArtifactKindResume       = "resume"
	ArtifactKindCodeSample   = "code_sample"
	ArtifactKindFileUpload   = "file_upload"
	ArtifactKindGithubURL    = "github_url"
	ArtifactKindPortfolioURL = "portfolio_url"
	ArtifactKindExternalURL  = "external_url"
	ArtifactKindTextResponse = "text_response"
)

// CandidateProfile is the AI-synthesized view of a candidate across all
// their artifacts. One row per candidate, regenerated on demand.
type CandidateProfile struct {
	ID                    int64     `json:"id"`
	CandidateID           int64     `json:"candidate_id"`
	TechnicalSkills       []string  `json:"technical_skills"`
	YearsExperience       float64   `json:"years_experience"`
	WritingQualityScore   float64   `json:"writing_quality_score"`
	VerbalQualityScore    float64   `json:"verbal_quality_score"`
	CommunicationStyle    string    `json:"communication_style"`
	PortfolioQualityScore float64   `json:"portfolio_quality_score"`
	CodeQualityScore      float64   `json:"code_quality_score"`
	CultureSignals        []string  `json:"culture_signals"`
	PersonalityTraits     []string  `json:"personality_traits"`
	Strengths             string    `json:"strengths"`
	Concerns              string    `json:"concerns"`
	BestRoleFit           string    `json:"best_role_fit"`
	GrowthPotentialScore  float64   `json:"growth_potential_score"`
	ProfileCompleteness   float64   `json:"profile_completeness"`
	LastAIAnalysis        time.Time `json:"last_ai_analysis"`
}

// Job is an open position candidates are matched against.
type Job struct {
	ID                       int64      `json:"id"`
	Title                    string     `json:"title"`
	Description              string     `json:"description,omitempty"`
	RequiredSkills           []string   `json:"required_skills"`
	NiceToHaveSkills         []string   `json:"nice_to_have_skills"`
	CultureRequirements      string     `json:"culture_requirements,omitempty"`
	SalaryMin                int        `json:"salary_min,omitempty"`
	SalaryMax                int        `json:"salary_max,omitempty"`
	HoursRequired            int        `json:"hours_required"`
	Location                 string     `json:"location,omitempty"`
	VisaSponsorshipAvailable bool       `json:"visa_sponsorship_available"`
	StartDateNeeded          *time.Time `json:"start_date_needed,omitempty"`
	Status                   string     `json:"status"`
	CreatedAt                time.Time  `json:"created_at"`

	// Populated from the matches table
	MatchCount int `json:"match_count"`
}

// Valid job statuses
const (
	JobStatusOpen   = "open"
	JobStatusPaused = "paused"
	JobStatusFilled = "filled"
	JobStatusClosed = "closed"
)

// Match is a persisted AI-computed fit between a candidate and a job.
// Scores are 0-100 as returned by the AI scorer, unlike the local
// ranking path which reports 0-1 fractions and is never persisted.
type Match struct {
	ID                 int64     `json:"id"`
	JobID              int64     `json:"job_id"`
	CandidateID        int64     `json:"candidate_id"`
	OverallScore       float64   `json:"overall_score"`
	SkillsScore        float64   `json:"skills_score"`
	CultureScore       float64   `json:"culture_score"`
	CommunicationScore float64   `json:"communication_score"`
	QualityScore       float64   `json:"quality_score"`
	PotentialScore     float64   `json:"potential_score"`
	Evidence           string    `json:"evidence"`
	AIReasoning        string    `json:"ai_reasoning"`
	CreatedAt          time.Time `json:"created_at"`

	// Joined for list views
	CandidateName  string `json:"candidate_name,omitempty"`
	CandidateEmail string `json:"candidate_email,omitempty"`
}

// CompanyProfile describes the hiring company. At most one row exists;
// saving again overwrites it.
type CompanyProfile struct {
	ID                 int64     `json:"id"`
	CompanyName        string    `json:"company_name"`
	AboutCompany       string    `json:"about_company,omitempty"`
	Mission            string    `json:"mission,omitempty"`
	Vision             string    `json:"vision,omitempty"`
	Values             string    `json:"values,omitempty"`
	CultureDescription string    `json:"culture_description,omitempty"`
	WebsiteURL         string    `json:"website_url,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
