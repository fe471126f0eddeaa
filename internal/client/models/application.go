package models

import "time"

// ApplicationStatus is the pipeline stage of an application.
type ApplicationStatus string

const (
	ApplicationApplied     ApplicationStatus = "applied"
	ApplicationScreening   ApplicationStatus = "screening"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationInterview   ApplicationStatus = "interview"
	ApplicationRejected    ApplicationStatus = "rejected"
	ApplicationOffer       ApplicationStatus = "offer"
	ApplicationAccepted    ApplicationStatus = "accepted"
	ApplicationDeclined    ApplicationStatus = "declined"
)

var applicationStatuses = []ApplicationStatus{
	ApplicationApplied, ApplicationScreening, ApplicationShortlisted, ApplicationInterview,
	ApplicationRejected, ApplicationOffer, ApplicationAccepted, ApplicationDeclined,
}

// ApplicationStatuses lists every stage the backend accepts, in pipeline order.
func ApplicationStatuses() []ApplicationStatus {
	return append([]ApplicationStatus(nil), applicationStatuses...)
}

// Valid reports whether s is accepted by the backend.
func (s ApplicationStatus) Valid() bool {
	for _, v := range applicationStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Application links a candidate to a job. MatchScore is computed by the
// backend and only displayed here.
type Application struct {
	ID             string            `json:"id"`
	JobID          string            `json:"job_id"`
	CandidateID    string            `json:"candidate_id"`
	Status         ApplicationStatus `json:"status"`
	MatchScore     float64           `json:"match_score"`
	ScreeningScore *float64          `json:"screening_score,omitempty"`
	CoverLetter    string            `json:"cover_letter,omitempty"`
	Notes          string            `json:"notes,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	Job            *Job              `json:"job,omitempty"`
	Candidate      *CandidateProfile `json:"candidate,omitempty"`
}

// NewApplication is the body of POST /applications.
type NewApplication struct {
	JobID       string `json:"job_id"`
	CoverLetter string `json:"cover_letter,omitempty"`
}

// ApplicationUpdate is the body of PATCH /applications/{id}.
type ApplicationUpdate struct {
	Status ApplicationStatus `json:"status,omitempty"`
	Notes  string            `json:"notes,omitempty"`
}
