// Package common contains small constants and helpers shared by the hirepad
// client packages.
package common

const (
	// AuthorizationHeader carries the bearer access token on outbound requests.
	AuthorizationHeader = "Authorization"

	// RequestIDHeader tags every outbound request so it can be traced in backend logs.
	RequestIDHeader = "X-Request-ID"

	// BearerScheme prefixes the access token in AuthorizationHeader.
	BearerScheme = "Bearer"
)
