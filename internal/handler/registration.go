package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/go-registration/internal/errs"
	"github.com/deppfellow/go-registration/internal/middleware"
	"github.com/deppfellow/go-registration/internal/registration"
	"github.com/deppfellow/go-registration/internal/server"
	"github.com/deppfellow/go-registration/internal/validation"
)

// CodeRegistrationFailed is returned when the user store refuses a valid submission.
const CodeRegistrationFailed = "REGISTRATION_FAILED"

var payloadValidator = validation.NewPayloadValidator()

// RegisterUserRequest is the JSON body of POST /api/v1/registrations.
//
// Only size limits are enforced here; the registration rules run in the
// controller so HTTP and terminal clients see the same rejections.
// An incomplete form skips the size limits so it is reported as missing
// fields first.
type RegisterUserRequest struct {
	Username       string `json:"username" validate:"max=256"`
	Email          string `json:"email" validate:"max=256"`
	Password       string `json:"password" validate:"max=256"`
	PasswordRepeat string `json:"password_repeat" validate:"max=256"`
}

func NewRegisterUserRequest() *RegisterUserRequest {
	return &RegisterUserRequest{}
}

func (r *RegisterUserRequest) Validate() error {
	if r.incomplete() {
		return nil
	}
	return payloadValidator.Struct(r)
}

func (r *RegisterUserRequest) incomplete() bool {
	return validation.TrimField(r.Username) == "" ||
		validation.TrimField(r.Email) == "" ||
		r.Password == "" ||
		r.PasswordRepeat == ""
}

// RegistrationResponse tells the client the account exists and where to log in.
type RegistrationResponse struct {
	Message string       `json:"message"`
	Action  *errs.Action `json:"action"`
}

type RegistrationHandler struct {
	Handler
	validator *validation.RegistrationValidator
	registrar registration.Registrar
	messages  registration.Messages
}

func NewRegistrationHandler(s *server.Server, registrar registration.Registrar) *RegistrationHandler {
	return &RegistrationHandler{
		Handler:   NewHandler(s),
		validator: validation.NewRegistrationValidator(),
		registrar: registrar,
		messages:  registration.DefaultMessages().With(s.Config.Messages),
	}
}

// Register runs one submission through a controller bound to this request.
func (h *RegistrationHandler) Register(c echo.Context, req *RegisterUserRequest) (*RegistrationResponse, error) {
	view := &responseView{}
	redirected := false

	controller := registration.NewController(
		h.validator,
		h.registrar,
		view,
		func() { redirected = true },
		h.messages,
		middleware.GetLogger(c),
	)

	submission, err := controller.Submit(c.Request().Context(), validation.RegistrationRequest{
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		PasswordRepeat: req.PasswordRepeat,
	})
	if err != nil {
		return nil, err
	}

	switch submission.Result {
	case registration.ResultRejected:
		return nil, rejectionError(submission.Rejection, view.text)
	case registration.ResultFailed:
		code := CodeRegistrationFailed
		return nil, errs.NewConflictError(view.text, true, &code)
	}

	response := &RegistrationResponse{Message: view.text}
	if redirected {
		response.Action = &errs.Action{
			Type:    errs.ActionTypeRedirect,
			Message: h.messages.Text(registration.KeyRegistered),
			Value:   h.server.Config.Registration.LoginURL,
		}
	}
	return response, nil
}

func rejectionError(rejection *validation.Rejection, text string) *errs.HTTPError {
	code := strings.ToUpper(string(rejection.Reason))

	var fieldErrors []errs.FieldError
	if rejection.Field != validation.FieldNone {
		fieldErrors = []errs.FieldError{{Field: string(rejection.Field), Error: text}}
	}

	return errs.NewBadRequestError(text, true, &code, fieldErrors, nil)
}

// responseView records what the controller wanted to show so it can be
// turned into a response body.
type responseView struct {
	text string
}

func (v *responseView) ShowMessage(_ registration.Severity, _, text string) {
	v.text = text
}

func (v *responseView) ClearPasswords() {}

func (v *responseView) Focus(validation.Field) {}

func (v *responseView) Close() {}
