// Package errs defines the error shapes returned to API clients.
//
// Every failed request is rendered as an HTTPError: a machine code, a
// message, optional per-field errors and an optional action hint such as
// a redirect.
package errs
