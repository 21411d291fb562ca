package errs

import (
	"net/http"
)

// newHTTPError fills in the default code derived from status when code is nil.
func newHTTPError(status int, message string, override bool, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(status))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   status,
		Override: override,
	}
}

// NewBadRequestError builds a 400. A nil code defaults to BAD_REQUEST.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	err := newHTTPError(http.StatusBadRequest, message, override, code)
	err.Errors = errors
	err.Action = action
	return err
}

func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	return newHTTPError(http.StatusNotFound, message, override, code)
}

// NewConflictError builds a 409, used when the user store refuses a
// well-formed registration.
func NewConflictError(message string, override bool, code *string) *HTTPError {
	return newHTTPError(http.StatusConflict, message, override, code)
}

// NewTooManyRequestsError builds a 429.
func NewTooManyRequestsError(message string, code *string) *HTTPError {
	return newHTTPError(http.StatusTooManyRequests, message, false, code)
}

// NewInternalServerError never carries the underlying error text.
func NewInternalServerError() *HTTPError {
	return newHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), false, nil)
}

func ValidationError(err error) *HTTPError {
	return NewBadRequestError("Validation failed: "+err.Error(), false, nil, nil, nil)
}
