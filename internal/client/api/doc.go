// Package api is the HTTP gateway to the recruiting backend.
//
// Every request carries a JSON body (when there is one), a fresh
// X-Request-ID and, if the configured TokenSource yields one, a bearer
// token. Failures come back as *Error values whose Kind can be tested with
// errors.Is against ErrNetwork, ErrUnauthorized, ErrServer and
// ErrValidation.
//
// The client never retries and never touches session state. A 401 is
// reported to the registered unauthorized listener together with the token
// that was rejected; what to do about it is the listener's decision.
package api
