package cli

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/hirepad/internal/client/guard"
	"github.com/dmitrijs2005/hirepad/internal/client/models"
)

var ErrNoSuchPage = errors.New("no such page")

const maxRedirects = 5

// access says how a route is gated.
type access int

const (
	public access = iota
	protected
	dispatcher
)

// request is what a page handler receives.
type request struct {
	path   string
	params map[string]string
	query  url.Values
}

type pageFunc func(a *App, ctx context.Context, r request) error

type route struct {
	pattern string
	access  access
	role    models.Role // for protected routes; empty means any signed-in user
	page    pageFunc
}

// routes lists every page of the client. Actions that change data are
// routes too, so they pass through the same guard as the pages. Filled in
// init because pages navigate, which reads the table.
var routes []route

func init() {
	routes = []route{
		{pattern: guard.PathLanding, access: public, page: (*App).landingPage},
		{pattern: guard.PathLogin, access: public, page: (*App).loginPage},
		{pattern: guard.PathSignup, access: public, page: (*App).signupPage},
		{pattern: guard.PathJobs, access: public, page: (*App).jobsPage},
		{pattern: "/jobs/{id}", access: public, page: (*App).jobPage},
		{pattern: "/jobs/{id}/apply", access: protected, role: models.RoleCandidate, page: (*App).applyPage},
		{pattern: guard.PathDashboard, access: dispatcher},
		{pattern: guard.PathCandidateDashboard, access: protected, role: models.RoleCandidate, page: (*App).candidateDashboardPage},
		{pattern: guard.PathCandidateProfile, access: protected, role: models.RoleCandidate, page: (*App).candidateProfilePage},
		{pattern: "/candidate/profile/edit", access: protected, role: models.RoleCandidate, page: (*App).editProfilePage},
		{pattern: guard.PathRecruiterDashboard, access: protected, role: models.RoleRecruiter, page: (*App).recruiterDashboardPage},
		{pattern: guard.PathRecruiterJobs, access: protected, role: models.RoleRecruiter, page: (*App).recruiterJobsPage},
		{pattern: "/recruiter/jobs/new", access: protected, role: models.RoleRecruiter, page: (*App).newJobPage},
		{pattern: "/recruiter/jobs/{id}/edit", access: protected, role: models.RoleRecruiter, page: (*App).editJobPage},
		{pattern: "/recruiter/company", access: protected, role: models.RoleRecruiter, page: (*App).companyPage},
		{pattern: "/recruiter/company/edit", access: protected, role: models.RoleRecruiter, page: (*App).editCompanyPage},
		{pattern: "/recruiter/jobs/{id}/applicants", access: protected, role: models.RoleRecruiter, page: (*App).applicantsPage},
		{pattern: "/recruiter/jobs/{id}/delete", access: protected, role: models.RoleRecruiter, page: (*App).deleteJobPage},
		{pattern: "/recruiter/applications/{id}", access: protected, role: models.RoleRecruiter, page: (*App).updateStatusPage},
	}
}

// match finds the route for path (without query) and extracts {params}.
func match(path string) (route, map[string]string, bool) {
	segs := splitPath(path)

	for _, r := range routes {
		pat := splitPath(r.pattern)
		if len(pat) != len(segs) {
			continue
		}
		params := map[string]string{}
		ok := true
		for i, p := range pat {
			if strings.HasPrefix(p, "{") && strings.HasSuffix(p, "}") {
				v, err := url.PathUnescape(segs[i])
				if err != nil || v == "" {
					ok = false
					break
				}
				params[p[1:len(p)-1]] = v
				continue
			}
			if p != segs[i] {
				ok = false
				break
			}
		}
		if ok {
			return r, params, true
		}
	}
	return route{}, nil, false
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// decide runs the guard for a route.
func decide(r route, s models.Session) guard.Decision {
	switch r.access {
	case protected:
		return guard.Authorize(s, r.role)
	case dispatcher:
		return guard.Dispatch(s)
	default:
		return guard.Allowed()
	}
}

// Navigate shows the page at target, following guard redirects.
func (a *App) Navigate(ctx context.Context, target string) error {
	for hop := 0; hop <= maxRedirects; hop++ {
		u, err := url.Parse(target)
		if err != nil {
			return err
		}

		r, params, ok := match(u.Path)
		if !ok {
			a.printf("Page not found: %s\n", u.Path)
			return ErrNoSuchPage
		}

		d := decide(r, a.sessions.Session())
		switch d.Action {
		case guard.ShowLoading:
			a.printf("Loading...\n")
			return nil
		case guard.Redirect:
			a.logger.Debug(ctx, "redirect", "from", u.Path, "to", d.Target)
			target = d.Target
			continue
		}

		a.mu.Lock()
		a.path = u.Path
		a.mu.Unlock()

		return r.page(a, ctx, request{path: u.Path, params: params, query: u.Query()})
	}

	a.logger.Warn(ctx, "too many redirects", "target", target)
	return nil
}

func (a *App) currentPath() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.path == "" {
		return "/"
	}
	return a.path
}
