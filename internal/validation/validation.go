// Package validation contains the logic for validating
// registration data.
//
// It uses the `validator` library to enforce the registration
// rules (presence, username and email format, password length,
// charset and confirmation) in a fixed order, and extracts
// request-shape validation errors into a format the client can
// understand.
package validation
