// Package services contains the application services behind the hirepad
// REPL: authentication, the job board, applications, the candidate profile
// and the recruiter's company. Services validate input locally before
// touching the network and leave error presentation to the caller.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/hirepad/internal/client/models"
)

const minPasswordLength = 8

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", minPasswordLength)
	ErrMissingName        = errors.New("full name is required")
	ErrInvalidRole        = errors.New("role must be candidate or recruiter")
)

// SessionManager is the subset of session.Manager the services use.
type SessionManager interface {
	Login(ctx context.Context, email, password string) (models.User, error)
	Signup(ctx context.Context, reg models.Registration) (models.User, error)
	Logout(ctx context.Context)
	UpdateUser(ctx context.Context, user models.User)
	Session() models.Session
}

// AccountAPI is the part of the backend that reports liveness and the
// signed-in account.
type AccountAPI interface {
	Ping(ctx context.Context) error
	Me(ctx context.Context) (models.User, error)
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login / Signup: validate input, then delegate to the session manager.
//   - Logout: drop the local session; never fails.
//   - RefreshUser: re-read the account after an edit and update the session.
//   - Ping: check server liveness.
//   - Session: current session snapshot.
type AuthService interface {
	Login(ctx context.Context, email, password string) (models.User, error)
	Signup(ctx context.Context, reg models.Registration) (models.User, error)
	Logout(ctx context.Context)
	RefreshUser(ctx context.Context) (models.User, error)
	Ping(ctx context.Context) error
	Session() models.Session
}

type authService struct {
	sessions SessionManager
	account  AccountAPI
}

// NewAuthService constructs an AuthService over the session manager and the
// account endpoints.
func NewAuthService(sessions SessionManager, account AccountAPI) AuthService {
	return &authService{sessions: sessions, account: account}
}

func (a *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.User{}, ErrMissingCredentials
	}
	return a.sessions.Login(ctx, email, password)
}

// Signup checks the registration the way the backend would before sending
// it, so obvious mistakes do not cost a round trip.
func (a *authService) Signup(ctx context.Context, reg models.Registration) (models.User, error) {
	reg.FullName = strings.TrimSpace(reg.FullName)
	reg.Email = strings.TrimSpace(reg.Email)

	switch {
	case reg.FullName == "":
		return models.User{}, ErrMissingName
	case !validEmail(reg.Email):
		return models.User{}, ErrInvalidEmail
	case len(reg.Password) < minPasswordLength:
		return models.User{}, ErrWeakPassword
	case !reg.Role.Known():
		return models.User{}, ErrInvalidRole
	}
	return a.sessions.Signup(ctx, reg)
}

func (a *authService) Logout(ctx context.Context) {
	a.sessions.Logout(ctx)
}

// RefreshUser fetches the signed-in account and hands it to the session
// manager. A failed fetch leaves the session as it was.
func (a *authService) RefreshUser(ctx context.Context) (models.User, error) {
	user, err := a.account.Me(ctx)
	if err != nil {
		return models.User{}, err
	}
	a.sessions.UpdateUser(ctx, user)
	return user, nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.account.Ping(ctx)
}

func (a *authService) Session() models.Session {
	return a.sessions.Session()
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
