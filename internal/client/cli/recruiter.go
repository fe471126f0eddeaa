package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/hirepad/internal/client/api"
	"github.com/dmitrijs2005/hirepad/internal/client/guard"
	"github.com/dmitrijs2005/hirepad/internal/client/models"
	"github.com/dmitrijs2005/hirepad/internal/client/services"
)

// clearValue typed at a form prompt empties an optional field.
const clearValue = "-"

var errBadNumber = errors.New("not a number")

func (a *App) companyPage(ctx context.Context, _ request) error {
	co, ok, err := a.companyService.Mine(ctx)
	if err != nil {
		a.printf("%s\n", api.ErrorMessage(err, "Failed to load company profile"))
		return err
	}
	if !ok {
		a.printf("No company profile yet. Type 'company edit' to create one.\n")
		return nil
	}

	a.printf("%s\n\n", co.Name)
	a.table([]string{"FIELD", "VALUE"}, [][]string{
		{"Industry", orDash(co.Industry)},
		{"Size", orDash(co.Size)},
		{"Location", orDash(co.Location)},
		{"Website", orDash(co.Website)},
	})
	if co.Description != "" {
		a.printf("\n%s\n", co.Description)
	}
	a.printf("\nType 'company edit' to change it.\n")
	return nil
}

// editCompanyPage creates the company on first use and updates it after.
func (a *App) editCompanyPage(ctx context.Context, _ request) error {
	co, _, err := a.companyService.Mine(ctx)
	if err != nil {
		a.printf("%s\n", api.ErrorMessage(err, "Failed to load company profile"))
		return err
	}

	if co.Name, err = GetTextWithDefault(a.reader, "Company name", co.Name, a.out); err != nil {
		return err
	}
	fields := []struct {
		prompt string
		value  *string
	}{
		{"Description", &co.Description},
		{"Website", &co.Website},
		{"Industry", &co.Industry},
		{"Size (e.g. 11-50)", &co.Size},
		{"Location", &co.Location},
	}
	for _, f := range fields {
		if *f.value, err = a.optionalText(f.prompt, *f.value); err != nil {
			return err
		}
	}

	if _, err := a.companyService.Save(ctx, co); err != nil {
		a.printf("%s\n", api.ErrorMessage(err, "Failed to update company profile"))
		return err
	}
	a.printf("Company profile saved.\n")
	a.refreshUser(ctx)
	return nil
}

func (a *App) newJobPage(ctx context.Context, _ request) error {
	co, ok, err := a.companyService.Mine(ctx)
	if err != nil {
		a.printf("%s\n", api.ErrorMessage(err, "Failed to load company"))
		return err
	}
	if !ok {
		a.printf("Please create a company profile before posting jobs. Type 'company edit'.\n")
		return services.ErrMissingCompany
	}

	a.printf("Post a new job for %s\n", co.Name)
	d := models.NewJobDraft(co.ID)
	if err := a.jobForm(&d); err != nil {
		return err
	}

	job, err := a.jobService.Create(ctx, d)
	if err != nil {
		a.printf("%s\n", api.ErrorMessage(err, "Failed to save job"))
		return err
	}
	a.printf("Job %s saved as %s.\n", job.ID, job.Status)
	return a.Navigate(ctx, guard.PathRecruiterJobs)
}

func (a *App) editJobPage(ctx context.Context, r request) error {
	id := r.params["id"]

	job, err := a.jobService.Get(ctx, id)
	if err != nil {
		a.printf("%s\n", api.ErrorMessage(err, "Failed to load job"))
		return err
	}

	a.printf("Edit %s\n", job.Title)
	d := job.Draft()
	if err := a.jobForm(&d); err != nil {
		return err
	}

	if _, err := a.jobService.Update(ctx, id, d); err != nil {
		a.printf("%s\n", api.ErrorMessage(err, "Failed to save job"))
		return err
	}
	a.printf("Job updated.\n")
	return a.Navigate(ctx, guard.PathRecruiterJobs)
}

// jobForm prompts for every field of d, offering the current values as
// defaults. An empty description keeps the current one.
func (a *App) jobForm(d *models.JobDraft) error {
	var err error

	if d.Title, err = GetTextWithDefault(a.reader, "Job title", d.Title, a.out); err != nil {
		return err
	}
	desc, err := GetMultiline(a.reader, "Description (at least 10 characters)", a.out)
	if err != nil {
		return err
	}
	if desc != "" {
		d.Description = desc
	}

	if d.Location, err = a.optionalText("Location", d.Location); err != nil {
		return err
	}
	if d.RemoteType, err = a.choice("Remote type", models.RemoteTypes, d.RemoteType); err != nil {
		return err
	}
	if d.EmploymentType, err = a.choice("Employment type", models.EmploymentTypes, d.EmploymentType); err != nil {
		return err
	}
	if d.SkillsRequired, err = a.optionalText("Skills (comma separated)", d.SkillsRequired); err != nil {
		return err
	}
	if d.SalaryMin, err = a.optionalFloat("Minimum salary", d.SalaryMin); err != nil {
		return err
	}
	if d.SalaryMax, err = a.optionalFloat("Maximum salary", d.SalaryMax); err != nil {
		return err
	}
	if d.Currency, err = GetTextWithDefault(a.reader, "Currency", d.Currency, a.out); err != nil {
		return err
	}

	minExp, err := GetTextWithDefault(a.reader, "Minimum years of experience", strconv.Itoa(d.ExperienceMin), a.out)
	if err != nil {
		return err
	}
	if d.ExperienceMin, err = strconv.Atoi(minExp); err != nil {
		a.printf("Years of experience must be a number.\n")
		return errBadNumber
	}
	if d.ExperienceMax, err = a.optionalInt("Maximum years of experience", d.ExperienceMax); err != nil {
		return err
	}

	d.Status, err = a.choice("Status", models.JobStatuses, d.Status)
	return err
}

func (a *App) choice(prompt string, options []string, def string) (string, error) {
	return GetTextWithDefault(a.reader, fmt.Sprintf("%s (%s)", prompt, strings.Join(options, "/")), def, a.out)
}

func (a *App) optionalText(prompt, def string) (string, error) {
	if def != "" {
		prompt += " ('" + clearValue + "' to clear)"
	}
	s, err := GetTextWithDefault(a.reader, prompt, def, a.out)
	if s == clearValue {
		s = ""
	}
	return s, err
}

func (a *App) optionalFloat(prompt string, def *float64) (*float64, error) {
	cur := ""
	if def != nil {
		cur = strconv.FormatFloat(*def, 'f', -1, 64)
	}
	s, err := a.optionalText(prompt, cur)
	if err != nil || s == "" {
		return nil, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		a.printf("%s must be a number.\n", prompt)
		return nil, errBadNumber
	}
	return &v, nil
}

func (a *App) optionalInt(prompt string, def *int) (*int, error) {
	cur := ""
	if def != nil {
		cur = strconv.Itoa(*def)
	}
	s, err := a.optionalText(prompt, cur)
	if err != nil || s == "" {
		return nil, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		a.printf("%s must be a number.\n", prompt)
		return nil, errBadNumber
	}
	return &v, nil
}

// refreshUser re-reads the account after an edit so the prompt and whoami
// show what the backend now has. Failure only costs freshness.
func (a *App) refreshUser(ctx context.Context) {
	if _, err := a.authService.RefreshUser(ctx); err != nil {
		a.logger.Warn(ctx, "could not refresh account", "error", err)
	}
}
