package registration

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/deppfellow/go-registration/internal/validation"
)

// ErrClosed is returned when a submission reaches a controller whose view was torn down.
var ErrClosed = errors.New("registration view is closed")

// State is the lifecycle of a Controller.
type State int

const (
	// StateEditing is the initial state: the form accepts submissions.
	StateEditing State = iota
	// StateClosed is terminal: reached after navigating to login or closing.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Result is what one submission led to.
type Result int

const (
	// ResultRejected means a validation rule failed; the registrar was not called.
	ResultRejected Result = iota + 1
	// ResultRegistered means the registrar accepted the user and the view moved to login.
	ResultRegistered
	// ResultFailed means the registrar refused the user; the form stays open.
	ResultFailed
)

func (r Result) String() string {
	switch r {
	case ResultRejected:
		return "rejected"
	case ResultRegistered:
		return "registered"
	case ResultFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Submission describes the outcome of Controller.Submit.
type Submission struct {
	Result Result
	// Rejection is set when Result is ResultRejected.
	Rejection *validation.Rejection
}

// Controller runs registration submissions for one view.
//
// It is not safe for concurrent use; a view drives one submission at a time.
type Controller struct {
	validator *validation.RegistrationValidator
	registrar Registrar
	view      View
	openLogin func()
	messages  Messages
	logger    *zerolog.Logger
	state     State
}

// NewController wires a controller to its view and collaborators.
//
// openLogin may be nil when there is nowhere to navigate to. A nil logger
// disables logging.
func NewController(
	validator *validation.RegistrationValidator,
	registrar Registrar,
	view View,
	openLogin func(),
	messages Messages,
	logger *zerolog.Logger,
) *Controller {
	if openLogin == nil {
		openLogin = func() {}
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	if messages == nil {
		messages = DefaultMessages()
	}

	return &Controller{
		validator: validator,
		registrar: registrar,
		view:      view,
		openLogin: openLogin,
		messages:  messages,
		logger:    logger,
		state:     StateEditing,
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Submit validates req and, when it passes, registers the user.
func (c *Controller) Submit(ctx context.Context, req validation.RegistrationRequest) (Submission, error) {
	if c.state == StateClosed {
		return Submission{}, ErrClosed
	}

	outcome := c.validator.Validate(req)
	if !outcome.OK() {
		c.reject(outcome.Rejection)
		return Submission{Result: ResultRejected, Rejection: outcome.Rejection}, nil
	}

	creds := outcome.Credentials
	c.logger.Info().
		Str("username", creds.Username).
		Msg("attempting to register user")

	if !c.registrar.RegisterUser(ctx, creds.Username, creds.Email, creds.Password) {
		c.logger.Warn().
			Str("username", creds.Username).
			Msg("registration refused by registrar")

		c.view.ShowMessage(SeverityError, c.messages.Text(KeyTitle), c.messages.Text(KeyFailed))
		return Submission{Result: ResultFailed}, nil
	}

	c.logger.Info().
		Str("username", creds.Username).
		Msg("user registered")

	c.view.ShowMessage(SeverityInfo, c.messages.Text(KeyTitle), c.messages.Text(KeyRegistered))
	c.GoToLogin()

	return Submission{Result: ResultRegistered}, nil
}

// GoToLogin tears the view down and opens the login view.
//
// The login callback runs at most once per controller.
func (c *Controller) GoToLogin() {
	if c.state == StateClosed {
		return
	}
	c.teardown()
	c.openLogin()
}

// Close tears the view down without navigating anywhere.
func (c *Controller) Close() {
	if c.state == StateClosed {
		return
	}
	c.logger.Info().Msg("closing registration view")
	c.teardown()
}

func (c *Controller) reject(r *validation.Rejection) {
	c.logger.Debug().
		Str("reason", string(r.Reason)).
		Str("field", string(r.Field)).
		Msg("registration rejected")

	c.view.ShowMessage(severityFor(r.Reason), c.messages.Text(KeyTitle), c.messages.Reason(r.Reason))

	if r.ClearPasswords {
		c.view.ClearPasswords()
	}
	if r.Field != validation.FieldNone {
		c.view.Focus(r.Field)
	}
}

func (c *Controller) teardown() {
	c.state = StateClosed
	c.view.Close()
}

// severityFor reports a mismatch as an error, every other rule as a warning.
func severityFor(reason validation.Reason) Severity {
	if reason == validation.ReasonPasswordMismatch {
		return SeverityError
	}
	return SeverityWarning
}
