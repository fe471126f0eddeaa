package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/hirepad/internal/client/api"
	"github.com/dmitrijs2005/hirepad/internal/client/guard"
	"github.com/dmitrijs2005/hirepad/internal/client/models"
)

// landingPage sends signed-in users with a dashboard to it. Users whose
// role has no dashboard stay here, since the dashboard would send them back.
func (a *App) landingPage(ctx context.Context, _ request) error {
	if s := a.sessions.Session(); s.Authenticated() && s.User.Role.Known() {
		return a.Navigate(ctx, guard.PathDashboard)
	}

	a.printf("hirepad: find your next role, or your next hire.\n")
	a.printf("Browse open positions with 'jobs', or 'login' / 'signup' to get started.\n")
	return nil
}

func (a *App) loginPage(context.Context, request) error {
	a.printf("Please log in: type 'login' (or 'signup' to create an account).\n")
	return nil
}

func (a *App) signupPage(context.Context, request) error {
	a.printf("Create an account: type 'signup'.\n")
	return nil
}

// jobsPage lists published jobs. Query keys: title, location, remote_type,
// skip, limit.
func (a *App) jobsPage(ctx context.Context, r request) error {
	f := models.JobFilter{
		Search:     r.query.Get("title"),
		Location:   r.query.Get("location"),
		RemoteType: r.query.Get("remote_type"),
	}
	f.Skip, _ = strconv.Atoi(r.query.Get("skip"))
	f.Limit, _ = strconv.Atoi(r.query.Get("limit"))

	jobs, err := a.jobService.List(ctx, f)
	if err != nil {
		a.printf("%s\n", api.ErrorMessage(err, "Failed to load jobs"))
		return err
	}
	if len(jobs) == 0 {
		a.printf("No jobs found.\n")
		return nil
	}

	a.table(jobHeaders, jobRows(jobs))
	a.printf("\n%d job(s). Use 'job <id>' for details.\n", len(jobs))
	return nil
}

func (a *App) jobPage(ctx context.Context, r request) error {
	job, err := a.jobService.Get(ctx, r.params["id"])
	if err != nil {
		a.printf("%s\n", api.ErrorMessage(err, "Failed to load job"))
		return err
	}

	a.printf("%s\n%s\n\n", job.Title, strings.Repeat("=", len([]rune(job.Title))))
	a.table([]string{"FIELD", "VALUE"}, [][]string{
		{"Company", companyName(job)},
		{"Location", orDash(job.Location)},
		{"Remote", orDash(job.RemoteType)},
		{"Type", orDash(job.EmploymentType)},
		{"Salary", salary(job)},
		{"Skills", orDash(job.SkillsRequired)},
		{"Status", orDash(job.Status)},
	})
	a.printf("\n%s\n", job.Description)

	if a.role() == models.RoleCandidate {
		a.printf("\nType 'apply %s' to apply.\n", job.ID)
	}
	return nil
}

func (a *App) applyPage(ctx context.Context, r request) error {
	jobID := r.params["id"]

	cover, err := GetMultiline(a.reader, "Cover letter (optional)", a.out)
	if err != nil {
		return err
	}

	app, err := a.appService.Apply(ctx, jobID, cover)
	if err != nil {
		a.printf("%s\n", api.ErrorMessage(err, "Failed to submit application"))
		return err
	}

	a.printf("Application submitted! Match score: %s\n", a.score(app.MatchScore))
	return nil
}

func (a *App) candidateDashboardPage(ctx context.Context, _ request) error {
	apps, err := a.appService.Mine(ctx)
	if err != nil {
		a.printf("%s\n", api.ErrorMessage(err, "Failed to load applications"))
		return err
	}

	a.printf("My applications\n\n")
	if len(apps) == 0 {
		a.printf("You have not applied to any jobs yet. Browse them with 'jobs'.\n")
		return nil
	}

	counts := map[models.ApplicationStatus]int{}
	rows := make([][]string, 0, len(apps))
	for _, app := range apps {
		counts[app.Status]++
		title := app.JobID
		if app.Job != nil {
			title = truncate(app.Job.Title, 40)
		}
		rows = append(rows, []string{app.ID, title, string(app.Status), a.score(app.MatchScore), formatDate(app)})
	}
	a.table([]string{"ID", "JOB", "STATUS", "MATCH", "APPLIED"}, rows)

	var summary []string
	for _, st := range models.ApplicationStatuses() {
		if n := counts[st]; n > 0 {
			summary = append(summary, fmt.Sprintf("%s: %d", st, n))
		}
	}
	a.printf("\nTotal: %d (%s)\n", len(apps), strings.Join(summary, ", "))
	return nil
}

func (a *App) candidateProfilePage(ctx context.Context, _ request) error {
	p, err := a.profileService.Get(ctx)
	if err != nil {
		a.printf("%s\n", api.ErrorMessage(err, "Failed to load profile"))
		return err
	}

	a.table([]string{"FIELD", "VALUE"}, [][]string{
		{"Headline", orDash(p.Headline)},
		{"Experience", fmt.Sprintf("%d year(s)", p.ExperienceYears)},
		{"Location", orDash(p.Location)},
		{"Skills", orDash(p.SkillsText)},
		{"Phone", orDash(p.Phone)},
		{"LinkedIn", orDash(p.LinkedinURL)},
		{"GitHub", orDash(p.GithubURL)},
		{"Resume", orDash(p.ResumeURL)},
	})
	a.printf("\nType 'profile edit' to change it.\n")
	return nil
}

func (a *App) editProfilePage(ctx context.Context, _ request) error {
	p, err := a.profileService.Get(ctx)
	if err != nil {
		a.printf("%s\n", api.ErrorMessage(err, "Failed to load profile"))
		return err
	}

	fields := []struct {
		prompt string
		value  *string
	}{
		{"Headline", &p.Headline},
		{"Location", &p.Location},
		{"Skills (comma separated)", &p.SkillsText},
		{"Phone", &p.Phone},
		{"LinkedIn URL", &p.LinkedinURL},
		{"GitHub URL", &p.GithubURL},
	}
	for _, f := range fields {
		v, err := GetTextWithDefault(a.reader, f.prompt, *f.value, a.out)
		if err != nil {
			return err
		}
		*f.value = v
	}

	years, err := GetTextWithDefault(a.reader, "Years of experience", strconv.Itoa(p.ExperienceYears), a.out)
	if err != nil {
		return err
	}
	if p.ExperienceYears, err = strconv.Atoi(years); err != nil {
		a.printf("Years of experience must be a number.\n")
		return err
	}

	if _, err := a.profileService.Update(ctx, p); err != nil {
		a.printf("%s\n", api.ErrorMessage(err, "Failed to update profile"))
		return err
	}
	a.printf("Profile updated.\n")
	a.refreshUser(ctx)
	return nil
}

func (a *App) recruiterDashboardPage(ctx context.Context, _ request) error {
	jobs, err := a.jobService.Mine(ctx)
	if err != nil {
		a.printf("%s\n", api.ErrorMessage(err, "Failed to load your jobs"))
		return err
	}

	open := 0
	for _, j := range jobs {
		if j.Status == "published" {
			open++
		}
	}
	a.printf("Recruiter dashboard\n\n")
	a.printf("Jobs posted: %d, published: %d\n", len(jobs), open)
	a.printf("Use 'postjob' to publish a position, 'myjobs' to manage postings and 'applicants <job-id>' to review candidates.\n")
	return nil
}

func (a *App) recruiterJobsPage(ctx context.Context, _ request) error {
	jobs, err := a.jobService.Mine(ctx)
	if err != nil {
		a.printf("%s\n", api.ErrorMessage(err, "Failed to load your jobs"))
		return err
	}
	if len(jobs) == 0 {
		a.printf("You have not posted any jobs yet.\n")
		return nil
	}

	rows := make([][]string, 0, len(jobs))
	for _, j := range jobs {
		rows = append(rows, []string{j.ID, truncate(j.Title, 40), orDash(j.Status), orDash(j.Location), orDash(j.RemoteType)})
	}
	a.table([]string{"ID", "TITLE", "STATUS", "LOCATION", "REMOTE"}, rows)
	return nil
}

func (a *App) applicantsPage(ctx context.Context, r request) error {
	jobID := r.params["id"]

	job, err := a.jobService.Get(ctx, jobID)
	if err != nil {
		a.printf("%s\n", api.ErrorMessage(err, "Failed to load job"))
		return err
	}
	apps, err := a.appService.ForJob(ctx, jobID)
	if err != nil {
		a.printf("%s\n", api.ErrorMessage(err, "Failed to load applicants"))
		return err
	}

	a.printf("Applicants for %s\n\n", job.Title)
	if len(apps) == 0 {
		a.printf("No applications yet.\n")
		return nil
	}

	rows := make([][]string, 0, len(apps))
	for _, app := range apps {
		headline := "-"
		if app.Candidate != nil {
			headline = truncate(orDash(app.Candidate.Headline), 30)
		}
		rows = append(rows, []string{app.ID, headline, a.score(app.MatchScore), string(app.Status), truncate(orDash(app.CoverLetter), 40)})
	}
	a.table([]string{"ID", "CANDIDATE", "MATCH", "STATUS", "COVER LETTER"}, rows)
	a.printf("\nUse 'status <application-id> <status> [notes]' to move a candidate along.\n")
	return nil
}

func (a *App) deleteJobPage(ctx context.Context, r request) error {
	id := r.params["id"]

	ok, err := Confirm(a.reader, fmt.Sprintf("Delete job %s?", id), a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.printf("Cancelled.\n")
		return nil
	}

	if err := a.jobService.Delete(ctx, id); err != nil {
		a.printf("%s\n", api.ErrorMessage(err, "Failed to delete job"))
		return err
	}
	a.printf("Job deleted.\n")
	return nil
}

// updateStatusPage applies ?status=...&notes=... to an application.
func (a *App) updateStatusPage(ctx context.Context, r request) error {
	status := models.ApplicationStatus(r.query.Get("status"))

	app, err := a.appService.UpdateStatus(ctx, r.params["id"], status, r.query.Get("notes"))
	if err != nil {
		a.printf("%s\n", api.ErrorMessage(err, "Failed to update status"))
		return err
	}
	a.printf("Application %s is now %s.\n", app.ID, app.Status)
	return nil
}
