package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/dmitrijs2005/hirepad/internal/client/models"
)

var ErrInvalidStatus = errors.New("unknown application status")

// ApplicationsAPI is the applications part of the backend.
type ApplicationsAPI interface {
	Apply(ctx context.Context, a models.NewApplication) (models.Application, error)
	MyApplications(ctx context.Context) ([]models.Application, error)
	JobApplications(ctx context.Context, jobID string) ([]models.Application, error)
	UpdateApplication(ctx context.Context, id string, u models.ApplicationUpdate) (models.Application, error)
}

type ApplicationService interface {
	Apply(ctx context.Context, jobID, coverLetter string) (models.Application, error)
	Mine(ctx context.Context) ([]models.Application, error)
	// ForJob returns a job's applicants, best match first.
	ForJob(ctx context.Context, jobID string) ([]models.Application, error)
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus, notes string) (models.Application, error)
}

type applicationService struct {
	api ApplicationsAPI
}

func NewApplicationService(api ApplicationsAPI) ApplicationService {
	return &applicationService{api: api}
}

func (s *applicationService) Apply(ctx context.Context, jobID, coverLetter string) (models.Application, error) {
	if strings.TrimSpace(jobID) == "" {
		return models.Application{}, ErrMissingID
	}
	return s.api.Apply(ctx, models.NewApplication{JobID: jobID, CoverLetter: strings.TrimSpace(coverLetter)})
}

func (s *applicationService) Mine(ctx context.Context) ([]models.Application, error) {
	return s.api.MyApplications(ctx)
}

func (s *applicationService) ForJob(ctx context.Context, jobID string) ([]models.Application, error) {
	if strings.TrimSpace(jobID) == "" {
		return nil, ErrMissingID
	}
	apps, err := s.api.JobApplications(ctx, jobID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(apps, func(i, j int) bool { return apps[i].MatchScore > apps[j].MatchScore })
	return apps, nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus, notes string) (models.Application, error) {
	if strings.TrimSpace(id) == "" {
		return models.Application{}, ErrMissingID
	}
	if !status.Valid() {
		return models.Application{}, ErrInvalidStatus
	}
	return s.api.UpdateApplication(ctx, id, models.ApplicationUpdate{Status: status, Notes: notes})
}
