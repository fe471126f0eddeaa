package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/hirepad/internal/client/models"
)

var ErrNegativeExperience = errors.New("experience years cannot be negative")

// ProfileAPI is the candidate profile part of the backend.
type ProfileAPI interface {
	MyProfile(ctx context.Context) (models.CandidateProfile, error)
	UpdateProfile(ctx context.Context, p models.CandidateProfile) (models.CandidateProfile, error)
}

type ProfileService interface {
	Get(ctx context.Context) (models.CandidateProfile, error)
	Update(ctx context.Context, p models.CandidateProfile) (models.CandidateProfile, error)
}

type profileService struct {
	api ProfileAPI
}

func NewProfileService(api ProfileAPI) ProfileService {
	return &profileService{api: api}
}

func (s *profileService) Get(ctx context.Context) (models.CandidateProfile, error) {
	return s.api.MyProfile(ctx)
}

func (s *profileService) Update(ctx context.Context, p models.CandidateProfile) (models.CandidateProfile, error) {
	if p.ExperienceYears < 0 {
		return models.CandidateProfile{}, ErrNegativeExperience
	}
	return s.api.UpdateProfile(ctx, p)
}
