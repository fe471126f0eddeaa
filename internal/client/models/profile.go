package models

// CandidateProfile is the candidate's own profile at /candidates/me.
type CandidateProfile struct {
	ID              string `json:"id,omitempty"`
	UserID          string `json:"user_id,omitempty"`
	Headline        string `json:"headline,omitempty"`
	ExperienceYears int    `json:"experience_years"`
	Location        string `json:"location,omitempty"`
	SkillsText      string `json:"skills_text,omitempty"`
	Phone           string `json:"phone,omitempty"`
	LinkedinURL     string `json:"linkedin_url,omitempty"`
	GithubURL       string `json:"github_url,omitempty"`
	ResumeURL       string `json:"resume_url,omitempty"`
}
