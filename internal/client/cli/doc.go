// Package cli provides the interactive hirepad command-line client.
//
// It wires configuration, the local session database, the backend gateway
// and the session manager, then runs a REPL. Every page of the client is a
// route; commands are translated into routes and each route passes through
// the guard before it is shown, so a recruiter asking for a candidate page
// lands on the recruiter dashboard and a signed-out user lands on /login.
//
// A background watcher pings the backend and shows online/offline in the
// prompt. Session changes the user did not initiate (an expired token, for
// example) are announced before the next prompt.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, Navigate, StartOnlineStatusWatcher and runREPL for details.
package cli
