package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/hirepad/internal/client/api"
	"github.com/dmitrijs2005/hirepad/internal/client/models"
)

var ErrMissingCompanyName = errors.New("company name is required")

// CompanyAPI is the recruiter's company part of the backend.
type CompanyAPI interface {
	MyCompany(ctx context.Context) (models.Company, error)
	SaveCompany(ctx context.Context, c models.Company) (models.Company, error)
}

type CompanyService interface {
	// Mine returns the recruiter's company; ok is false when there is none yet.
	Mine(ctx context.Context) (c models.Company, ok bool, err error)
	Save(ctx context.Context, c models.Company) (models.Company, error)
}

type companyService struct {
	api CompanyAPI
}

func NewCompanyService(api CompanyAPI) CompanyService {
	return &companyService{api: api}
}

func (s *companyService) Mine(ctx context.Context) (models.Company, bool, error) {
	c, err := s.api.MyCompany(ctx)
	if err != nil {
		if api.StatusCode(err) == http.StatusNotFound {
			return models.Company{}, false, nil
		}
		return models.Company{}, false, err
	}
	return c, true, nil
}

func (s *companyService) Save(ctx context.Context, c models.Company) (models.Company, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return models.Company{}, ErrMissingCompanyName
	}
	return s.api.SaveCompany(ctx, c)
}
