package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/hirepad/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService(t *testing.T) {
	fb := &fakeBackend{Profile: models.CandidateProfile{Headline: "Gopher", ExperienceYears: 3}}
	svc := NewProfileService(fb)

	p, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Gopher", p.Headline)

	p.ExperienceYears = 4
	updated, err := svc.Update(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.ExperienceYears)

	p.ExperienceYears = -1
	_, err = svc.Update(context.Background(), p)
	require.ErrorIs(t, err, ErrNegativeExperience)
	assert.Equal(t, 2, fb.Calls)
}
