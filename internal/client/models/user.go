// Package models defines the client-side data shapes of hirepad: the user
// and session records owned by the session manager, and the job board DTOs
// exchanged with the recruiting backend.
package models

// Role determines which dashboard and protected routes a user may reach.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
)

// Known reports whether r is one of the roles the client has a home for.
func (r Role) Known() bool {
	return r == RoleCandidate || r == RoleRecruiter
}

// User is the identity returned by the backend. The client never edits it
// locally except after a server round trip.
type User struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// Credential is what survives a restart: the opaque access token and the
// last known user record. No expiry is tracked on the client.
type Credential struct {
	Token string
	User  User
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the body of POST /auth/signup.
type Registration struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// AuthResponse is returned by both login and signup.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	User        User   `json:"user"`
}
