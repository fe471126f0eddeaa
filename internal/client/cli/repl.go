package cli

import (
	"bufio"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/hirepad/internal/client/guard"
	"github.com/dmitrijs2005/hirepad/internal/client/models"
)

// printlnFn and printFn are test seams for user-facing output. In tests,
// replace them with stubs.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	role() models.Role
	isLoggedIn() bool
	drainNotices() []string
	Navigate(ctx context.Context, target string) error
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI()
}

// runREPL starts a simple read–eval–print loop for the hirepad CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches it. Most commands are translated into a route (see
// commandPath) and shown through Navigate, so the route guard decides what
// the user may see. The loop exits on EOF, on "exit" / "quit", or when ctx
// is done.
//
// Any errors returned by command handlers are ignored here; handlers print
// their own messages. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		for _, n := range a.drainNotices() {
			printlnFn(n)
		}

		printFn(fmt.Sprintf("hirepad %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			printlnFn()
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText(a.role(), a.isLoggedIn()))

		case "login":
			_ = a.Login(ctx)

		case "signup", "register":
			_ = a.Signup(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			a.WhoAmI()

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			path, usage, ok := commandPath(cmd, args)
			if !ok {
				if usage != "" {
					printlnFn("Usage:", usage)
				} else {
					printlnFn("Unknown command:", cmd)
				}
				continue
			}
			_ = a.Navigate(ctx, path)
		}
	}
}

// commandPath maps a navigation command to its route. When the command is
// known but its arguments are wrong, usage is returned with ok=false.
func commandPath(cmd string, args []string) (path, usage string, ok bool) {
	id := func() string { return url.PathEscape(args[0]) }

	switch cmd {
	case "home":
		return guard.PathLanding, "", true

	case "dashboard":
		return guard.PathDashboard, "", true

	case "jobs":
		return jobsPath(args), "", true

	case "job":
		if len(args) != 1 {
			return "", "job <id>", false
		}
		return "/jobs/" + id(), "", true

	case "apply":
		if len(args) != 1 {
			return "", "apply <job-id>", false
		}
		return "/jobs/" + id() + "/apply", "", true

	case "applications":
		return guard.PathCandidateDashboard, "", true

	case "profile":
		if len(args) == 1 && args[0] == "edit" {
			return "/candidate/profile/edit", "", true
		}
		if len(args) != 0 {
			return "", "profile [edit]", false
		}
		return guard.PathCandidateProfile, "", true

	case "myjobs":
		return guard.PathRecruiterJobs, "", true

	case "postjob":
		return "/recruiter/jobs/new", "", true

	case "editjob":
		if len(args) != 1 {
			return "", "editjob <job-id>", false
		}
		return "/recruiter/jobs/" + id() + "/edit", "", true

	case "company":
		if len(args) == 1 && args[0] == "edit" {
			return "/recruiter/company/edit", "", true
		}
		if len(args) != 0 {
			return "", "company [edit]", false
		}
		return "/recruiter/company", "", true

	case "applicants":
		if len(args) != 1 {
			return "", "applicants <job-id>", false
		}
		return "/recruiter/jobs/" + id() + "/applicants", "", true

	case "deletejob":
		if len(args) != 1 {
			return "", "deletejob <job-id>", false
		}
		return "/recruiter/jobs/" + id() + "/delete", "", true

	case "status":
		if len(args) < 2 {
			return "", "status <application-id> <status> [notes]", false
		}
		q := url.Values{"status": {args[1]}}
		if len(args) > 2 {
			q.Set("notes", strings.Join(args[2:], " "))
		}
		return "/recruiter/applications/" + id() + "?" + q.Encode(), "", true

	case "go":
		if len(args) != 1 {
			return "", "go <path>", false
		}
		return args[0], "", true
	}

	return "", "", false
}

// jobsPath builds the job list route from "key=value" filters and free
// text, e.g. "jobs golang location=Berlin remote=remote".
func jobsPath(args []string) string {
	q := url.Values{}
	var words []string

	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found {
			words = append(words, arg)
			continue
		}
		switch key {
		case "location":
			q.Set("location", value)
		case "remote", "remote_type":
			q.Set("remote_type", value)
		case "skip", "limit":
			q.Set(key, value)
		default:
			words = append(words, arg)
		}
	}
	if len(words) > 0 {
		q.Set("title", strings.Join(words, " "))
	}

	if len(q) == 0 {
		return guard.PathJobs
	}
	return guard.PathJobs + "?" + q.Encode()
}

func helpText(role models.Role, loggedIn bool) string {
	common := []string{"home", "jobs [text] [location=..] [remote=on-site|remote|hybrid]", "job <id>", "whoami", "help", "exit"}

	if !loggedIn {
		return "Available commands: " + strings.Join(append([]string{"login", "signup"}, common...), ", ")
	}

	var own []string
	switch role {
	case models.RoleCandidate:
		own = []string{"dashboard", "applications", "apply <job-id>", "profile [edit]"}
	case models.RoleRecruiter:
		own = []string{"dashboard", "myjobs", "postjob", "editjob <job-id>", "company [edit]", "applicants <job-id>", "status <application-id> <status> [notes]", "deletejob <job-id>"}
	}
	return "Available commands: " + strings.Join(append(append(own, common...), "logout"), ", ")
}
