package session

import (
	"errors"

	"github.com/dmitrijs2005/hirepad/internal/client/api"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAuthServer         = errors.New("authentication server error")
	ErrAuthNetwork        = errors.New("authentication network error")
)

// AuthErrorKind classifies a failed login or signup.
type AuthErrorKind int

const (
	AuthInvalidCredentials AuthErrorKind = iota + 1
	AuthServer
	AuthNetwork
)

// AuthError is returned by Login and Signup. Detail is the human-readable
// reason reported by the backend, if any.
type AuthError struct {
	Kind   AuthErrorKind
	Detail string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.sentinel().Error()
}

func (e *AuthError) sentinel() error {
	switch e.Kind {
	case AuthInvalidCredentials:
		return ErrInvalidCredentials
	case AuthNetwork:
		return ErrAuthNetwork
	default:
		return ErrAuthServer
	}
}

func (e *AuthError) Is(target error) bool { return target == e.sentinel() }

func (e *AuthError) Unwrap() error { return e.Err }

func newAuthError(err error) *AuthError {
	ae := &AuthError{Kind: AuthServer, Detail: api.ErrorMessage(err, ""), Err: err}
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		ae.Kind = AuthInvalidCredentials
	case errors.Is(err, api.ErrNetwork):
		ae.Kind = AuthNetwork
	}
	return ae
}
