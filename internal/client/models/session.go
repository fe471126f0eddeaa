package models

// Status is the authentication state of the one session the client owns.
type Status int

const (
	StatusInitializing Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusInitializing:
		return "initializing"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Session is a read-only snapshot. User is non-nil exactly when Status is
// StatusAuthenticated. Expired is set on an unauthenticated snapshot when
// the backend rejected the session, as opposed to the user logging out.
type Session struct {
	Status  Status
	User    *User
	Expired bool
}

// Authenticated reports whether the session carries a user.
func (s Session) Authenticated() bool {
	return s.Status == StatusAuthenticated && s.User != nil
}

// Role returns the user's role, or "" when nobody is signed in.
func (s Session) Role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}
