package models

import "time"

// Company is the employer a job belongs to.
type Company struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Size        string `json:"size,omitempty"`
	Location    string `json:"location,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`
}

// Job is a posting as returned by GET /jobs and GET /jobs/{id}.
type Job struct {
	ID             string    `json:"id"`
	CompanyID      string    `json:"company_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Location       string    `json:"location,omitempty"`
	RemoteType     string    `json:"remote_type"`
	EmploymentType string    `json:"employment_type"`
	SkillsRequired string    `json:"skills_required,omitempty"`
	SalaryMin      *float64  `json:"salary_min,omitempty"`
	SalaryMax      *float64  `json:"salary_max,omitempty"`
	Currency       string    `json:"currency,omitempty"`
	ExperienceMin  int       `json:"experience_min"`
	ExperienceMax  *int      `json:"experience_max,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	Company        *Company  `json:"company,omitempty"`
}

// JobDraft is the body of POST /jobs and PATCH /jobs/{id}. The whole form
// is sent on edit too.
type JobDraft struct {
	CompanyID      string   `json:"company_id,omitempty"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Location       string   `json:"location,omitempty"`
	RemoteType     string   `json:"remote_type"`
	EmploymentType string   `json:"employment_type"`
	SkillsRequired string   `json:"skills_required,omitempty"`
	SalaryMin      *float64 `json:"salary_min,omitempty"`
	SalaryMax      *float64 `json:"salary_max,omitempty"`
	Currency       string   `json:"currency,omitempty"`
	ExperienceMin  int      `json:"experience_min"`
	ExperienceMax  *int     `json:"experience_max,omitempty"`
	Status         string   `json:"status"`
}

// NewJobDraft returns the form defaults for a new posting.
func NewJobDraft(companyID string) JobDraft {
	return JobDraft{
		CompanyID:      companyID,
		RemoteType:     "on-site",
		EmploymentType: "full-time",
		Currency:       "USD",
		Status:         "draft",
	}
}

// Draft turns an existing job back into an editable form.
func (j Job) Draft() JobDraft {
	return JobDraft{
		CompanyID:      j.CompanyID,
		Title:          j.Title,
		Description:    j.Description,
		Location:       j.Location,
		RemoteType:     j.RemoteType,
		EmploymentType: j.EmploymentType,
		SkillsRequired: j.SkillsRequired,
		SalaryMin:      j.SalaryMin,
		SalaryMax:      j.SalaryMax,
		Currency:       j.Currency,
		ExperienceMin:  j.ExperienceMin,
		ExperienceMax:  j.ExperienceMax,
		Status:         j.Status,
	}
}

// JobFilter narrows GET /jobs. Empty fields are not sent.
type JobFilter struct {
	Search     string
	Location   string
	RemoteType string
	Skip       int
	Limit      int
}

// RemoteTypes lists the work arrangements the backend filters on.
var RemoteTypes = []string{"on-site", "remote", "hybrid"}

// EmploymentTypes and JobStatuses list the values the backend accepts.
var (
	EmploymentTypes = []string{"full-time", "part-time", "contract", "internship"}
	JobStatuses     = []string{"draft", "published", "closed"}
)

// ValidRemoteType reports whether s is empty or one of RemoteTypes.
func ValidRemoteType(s string) bool {
	if s == "" {
		return true
	}
	for _, v := range RemoteTypes {
		if v == s {
			return true
		}
	}
	return false
}
