package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/hirepad/internal/client/models"
)

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// Login exchanges email and password for a token. It is sent without the
// current token, and its 401 is not reported to the unauthorized listener.
func (c *Client) Login(ctx context.Context, email, password string) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.doAnonymous(ctx, http.MethodPost, "/auth/login", models.LoginRequest{Email: email, Password: password}, &resp)
	return resp, err
}

func (c *Client) Signup(ctx context.Context, reg models.Registration) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.doAnonymous(ctx, http.MethodPost, "/auth/signup", reg, &resp)
	return resp, err
}

// Me fetches the user the current token belongs to.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var u models.User
	err := c.Do(ctx, http.MethodGet, "/auth/me", nil, &u)
	return u, err
}

// Ping checks backend liveness.
func (c *Client) Ping(ctx context.Context) error {
	return c.Do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *Client) ListJobs(ctx context.Context, f models.JobFilter) ([]models.Job, error) {
	q := url.Values{}
	if f.Search != "" {
		q.Set("title", f.Search)
	}
	if f.Location != "" {
		q.Set("location", f.Location)
	}
	if f.RemoteType != "" {
		q.Set("remote_type", f.RemoteType)
	}
	if f.Skip > 0 {
		q.Set("skip", strconv.Itoa(f.Skip))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}

	var jobs []models.Job
	err := c.Do(ctx, http.MethodGet, withQuery("/jobs", q), nil, &jobs)
	return jobs, err
}

func (c *Client) GetJob(ctx context.Context, id string) (models.Job, error) {
	var job models.Job
	err := c.Do(ctx, http.MethodGet, "/jobs/"+url.PathEscape(id), nil, &job)
	return job, err
}

// MyJobs lists the postings of the signed-in recruiter.
func (c *Client) MyJobs(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	err := c.Do(ctx, http.MethodGet, "/jobs/my", nil, &jobs)
	return jobs, err
}

func (c *Client) DeleteJob(ctx context.Context, id string) error {
	return c.Do(ctx, http.MethodDelete, "/jobs/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Apply(ctx context.Context, a models.NewApplication) (models.Application, error) {
	var app models.Application
	err := c.Do(ctx, http.MethodPost, "/applications", a, &app)
	return app, err
}

func (c *Client) MyApplications(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	err := c.Do(ctx, http.MethodGet, "/applications/my", nil, &apps)
	return apps, err
}

// JobApplications lists applicants of one of the recruiter's jobs.
func (c *Client) JobApplications(ctx context.Context, jobID string) ([]models.Application, error) {
	var apps []models.Application
	err := c.Do(ctx, http.MethodGet, "/applications/job/"+url.PathEscape(jobID), nil, &apps)
	return apps, err
}

func (c *Client) UpdateApplication(ctx context.Context, id string, u models.ApplicationUpdate) (models.Application, error) {
	var app models.Application
	err := c.Do(ctx, http.MethodPatch, "/applications/"+url.PathEscape(id), u, &app)
	return app, err
}

func (c *Client) MyProfile(ctx context.Context) (models.CandidateProfile, error) {
	var p models.CandidateProfile
	err := c.Do(ctx, http.MethodGet, "/candidates/me", nil, &p)
	return p, err
}

func (c *Client) UpdateProfile(ctx context.Context, p models.CandidateProfile) (models.CandidateProfile, error) {
	var out models.CandidateProfile
	err := c.Do(ctx, http.MethodPatch, "/candidates/me", p, &out)
	return out, err
}

// CreateJob posts a new job for the recruiter's company.
func (c *Client) CreateJob(ctx context.Context, d models.JobDraft) (models.Job, error) {
	var job models.Job
	err := c.Do(ctx, http.MethodPost, "/jobs", d, &job)
	return job, err
}

func (c *Client) UpdateJob(ctx context.Context, id string, d models.JobDraft) (models.Job, error) {
	var job models.Job
	err := c.Do(ctx, http.MethodPatch, "/jobs/"+url.PathEscape(id), d, &job)
	return job, err
}

// MyCompany returns the company of the signed-in recruiter. A recruiter
// without one gets a 404.
func (c *Client) MyCompany(ctx context.Context) (models.Company, error) {
	var co models.Company
	err := c.Do(ctx, http.MethodGet, "/companies/my", nil, &co)
	return co, err
}

// SaveCompany creates the company when it has no ID yet and updates it
// otherwise.
func (c *Client) SaveCompany(ctx context.Context, co models.Company) (models.Company, error) {
	var out models.Company
	if co.ID == "" {
		err := c.Do(ctx, http.MethodPost, "/companies", co, &out)
		return out, err
	}
	err := c.Do(ctx, http.MethodPatch, "/companies/"+url.PathEscape(co.ID), co, &out)
	return out, err
}
