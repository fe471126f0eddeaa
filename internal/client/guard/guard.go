// Package guard decides whether a route may be shown for a session.
//
// All functions are pure: they look at a session snapshot and return a
// Decision. Redirect targets for a signed-in user always come from
// RoleHome, so there is exactly one place that maps a role to its landing
// route.
package guard

import "github.com/dmitrijs2005/hirepad/internal/client/models"

// Route paths known to the client.
const (
	PathLanding            = "/"
	PathLogin              = "/login"
	PathSignup             = "/signup"
	PathJobs               = "/jobs"
	PathDashboard          = "/dashboard"
	PathCandidateDashboard = "/candidate/dashboard"
	PathCandidateProfile   = "/candidate/profile"
	PathRecruiterDashboard = "/recruiter/dashboard"
	PathRecruiterJobs      = "/recruiter/jobs"
)

// Action is what the caller should do with a route.
type Action int

const (
	ShowLoading Action = iota + 1
	Redirect
	Allow
)

func (a Action) String() string {
	switch a {
	case ShowLoading:
		return "loading"
	case Redirect:
		return "redirect"
	case Allow:
		return "allow"
	default:
		return "unknown"
	}
}

// Decision is the outcome of a guard check. Target is set only for
// Redirect.
type Decision struct {
	Action Action
	Target string
}

func Loading() Decision { return Decision{Action: ShowLoading} }

func RedirectTo(path string) Decision { return Decision{Action: Redirect, Target: path} }

func Allowed() Decision { return Decision{Action: Allow} }

// Authorize checks a protected route. An empty required role means any
// signed-in user may pass.
func Authorize(s models.Session, required models.Role) Decision {
	switch s.Status {
	case models.StatusInitializing:
		return Loading()
	case models.StatusAuthenticated:
		if s.User == nil {
			return RedirectTo(PathLogin)
		}
		if required != "" && s.User.Role != required {
			return RedirectTo(RoleHome(s.User.Role))
		}
		return Allowed()
	default:
		return RedirectTo(PathLogin)
	}
}

// RoleHome is the landing route for a role. Roles without a dashboard go
// to the public landing page.
func RoleHome(r models.Role) string {
	switch r {
	case models.RoleCandidate:
		return PathCandidateDashboard
	case models.RoleRecruiter:
		return PathRecruiterDashboard
	default:
		return PathLanding
	}
}

// Dispatch resolves the generic dashboard route. It never allows: a
// signed-in user is always sent on to their role's home.
func Dispatch(s models.Session) Decision {
	switch s.Status {
	case models.StatusInitializing:
		return Loading()
	case models.StatusAuthenticated:
		if s.User == nil {
			return RedirectTo(PathLogin)
		}
		return RedirectTo(RoleHome(s.User.Role))
	default:
		return RedirectTo(PathLogin)
	}
}
