// Package registration orchestrates a single registration form.
//
// The Controller sits between a View (the terminal form, an HTTP request,
// anything that can show a message and reset inputs) and a Registrar
// (the collaborator that persists users). It owns no rendering and no
// storage: it validates a submission, tells the view what to show, and
// hands validated credentials to the registrar.
package registration

import (
	"context"

	"github.com/deppfellow/go-registration/internal/validation"
)

// Registrar persists a new user.
//
// RegisterUser returns true when the account was created. On false the
// registrar is expected to have reported its own reason (duplicate
// username, storage failure) through its own channel.
type Registrar interface {
	RegisterUser(ctx context.Context, username, email, password string) bool
}

// RegistrarFunc adapts a plain function to the Registrar interface.
type RegistrarFunc func(ctx context.Context, username, email, password string) bool

// RegisterUser calls f.
func (f RegistrarFunc) RegisterUser(ctx context.Context, username, email, password string) bool {
	return f(ctx, username, email, password)
}

// Severity classifies a message shown to the user.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// View is the surface a Controller drives.
//
// ShowMessage is modal: the controller assumes the user acknowledged the
// message once it returns.
type View interface {
	ShowMessage(severity Severity, title, text string)
	ClearPasswords()
	Focus(field validation.Field)
	Close()
}
