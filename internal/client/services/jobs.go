package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/hirepad/internal/client/models"
)

const defaultPageSize = 20

const minDescriptionLength = 10

var (
	ErrMissingID             = errors.New("id is required")
	ErrInvalidRemoteType     = fmt.Errorf("remote type must be one of %s", strings.Join(models.RemoteTypes, ", "))
	ErrInvalidEmploymentType = fmt.Errorf("employment type must be one of %s", strings.Join(models.EmploymentTypes, ", "))
	ErrInvalidJobStatus      = fmt.Errorf("job status must be one of %s", strings.Join(models.JobStatuses, ", "))
	ErrMissingTitle          = errors.New("job title is required")
	ErrShortDescription      = fmt.Errorf("description must be at least %d characters", minDescriptionLength)
	ErrMissingCompany        = errors.New("create a company profile before posting jobs")
	ErrNegativeAmount        = errors.New("salary and experience cannot be negative")
)

// JobsAPI is the job board part of the backend.
type JobsAPI interface {
	ListJobs(ctx context.Context, f models.JobFilter) ([]models.Job, error)
	GetJob(ctx context.Context, id string) (models.Job, error)
	MyJobs(ctx context.Context) ([]models.Job, error)
	DeleteJob(ctx context.Context, id string) error
	CreateJob(ctx context.Context, d models.JobDraft) (models.Job, error)
	UpdateJob(ctx context.Context, id string, d models.JobDraft) (models.Job, error)
}

type JobService interface {
	List(ctx context.Context, f models.JobFilter) ([]models.Job, error)
	Get(ctx context.Context, id string) (models.Job, error)
	Mine(ctx context.Context) ([]models.Job, error)
	Delete(ctx context.Context, id string) error
	Create(ctx context.Context, d models.JobDraft) (models.Job, error)
	Update(ctx context.Context, id string, d models.JobDraft) (models.Job, error)
}

type jobService struct {
	api JobsAPI
}

func NewJobService(api JobsAPI) JobService {
	return &jobService{api: api}
}

// List applies the default page size when none is given.
func (s *jobService) List(ctx context.Context, f models.JobFilter) ([]models.Job, error) {
	if !models.ValidRemoteType(f.RemoteType) {
		return nil, ErrInvalidRemoteType
	}
	if f.Limit <= 0 {
		f.Limit = defaultPageSize
	}
	if f.Skip < 0 {
		f.Skip = 0
	}
	return s.api.ListJobs(ctx, f)
}

func (s *jobService) Get(ctx context.Context, id string) (models.Job, error) {
	if strings.TrimSpace(id) == "" {
		return models.Job{}, ErrMissingID
	}
	return s.api.GetJob(ctx, id)
}

func (s *jobService) Mine(ctx context.Context) ([]models.Job, error) {
	return s.api.MyJobs(ctx)
}

func (s *jobService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrMissingID
	}
	return s.api.DeleteJob(ctx, id)
}

// Create posts a job. The draft must name the recruiter's company.
func (s *jobService) Create(ctx context.Context, d models.JobDraft) (models.Job, error) {
	if strings.TrimSpace(d.CompanyID) == "" {
		return models.Job{}, ErrMissingCompany
	}
	if err := validateDraft(&d); err != nil {
		return models.Job{}, err
	}
	return s.api.CreateJob(ctx, d)
}

func (s *jobService) Update(ctx context.Context, id string, d models.JobDraft) (models.Job, error) {
	if strings.TrimSpace(id) == "" {
		return models.Job{}, ErrMissingID
	}
	if err := validateDraft(&d); err != nil {
		return models.Job{}, err
	}
	return s.api.UpdateJob(ctx, id, d)
}

// validateDraft trims text fields and applies the backend's field rules.
func validateDraft(d *models.JobDraft) error {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)

	switch {
	case d.Title == "":
		return ErrMissingTitle
	case len([]rune(d.Description)) < minDescriptionLength:
		return ErrShortDescription
	case !slices.Contains(models.RemoteTypes, d.RemoteType):
		return ErrInvalidRemoteType
	case !slices.Contains(models.EmploymentTypes, d.EmploymentType):
		return ErrInvalidEmploymentType
	case !slices.Contains(models.JobStatuses, d.Status):
		return ErrInvalidJobStatus
	case negative(d.SalaryMin) || negative(d.SalaryMax) || d.ExperienceMin < 0 ||
		(d.ExperienceMax != nil && *d.ExperienceMax < 0):
		return ErrNegativeAmount
	}
	return nil
}

func negative(v *float64) bool {
	return v != nil && *v < 0
}
