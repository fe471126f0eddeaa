package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/hirepad/internal/client/api"
	"github.com/dmitrijs2005/hirepad/internal/client/guard"
	"github.com/dmitrijs2005/hirepad/internal/client/models"
	"github.com/dmitrijs2005/hirepad/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials, signs in and opens the user's dashboard.
// Failures are printed; the returned error is for the caller's benefit only.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.authService.Login(ctx, email, string(password))
	if err != nil {
		a.printf("%s\n", api.ErrorMessage(err, "Login failed. Please try again."))
		return err
	}

	a.printf("Welcome back, %s!\n", user.FullName)
	return a.Navigate(ctx, guard.RoleHome(user.Role))
}

// Signup prompts for a new account and signs it in.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	role, err := GetTextWithDefault(a.reader, "I am a (candidate/recruiter)", string(models.RoleCandidate), a.out)
	if err != nil {
		return err
	}

	user, err := a.authService.Signup(ctx, models.Registration{
		FullName: name,
		Email:    email,
		Password: string(password),
		Role:     models.Role(strings.ToLower(role)),
	})
	if err != nil {
		a.printf("%s\n", api.ErrorMessage(err, "Signup failed. Please try again."))
		return err
	}

	a.printf("Account created. Welcome, %s!\n", user.FullName)
	return a.Navigate(ctx, guard.RoleHome(user.Role))
}

// Logout ends the session and returns to the landing page.
func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout(ctx)

	a.printf("Logged out.\n")
	return a.Navigate(ctx, guard.PathLanding)
}

// WhoAmI prints the current session.
func (a *App) WhoAmI() {
	s := a.sessions.Session()
	if !s.Authenticated() {
		a.printf("Not logged in (%s).\n", s.Status)
		return
	}
	a.printf("%s <%s>, %s\n", s.User.FullName, s.User.Email, s.User.Role)
}

// getStatus renders the prompt decoration: user, mode and current page.
func (a *App) getStatus() string {
	var parts []string
	if s := a.sessions.Session(); s.Authenticated() {
		parts = append(parts, s.User.FullName)
	}
	if m := a.currentMode(); m != "" {
		parts = append(parts, string(m))
	}

	status := ""
	if len(parts) > 0 {
		status = "(" + strings.Join(parts, " ") + ") "
	}
	return status + a.currentPath()
}
