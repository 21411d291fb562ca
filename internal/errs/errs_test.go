package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "CONFLICT", MakeUpperCaseWithUnderscores("Conflict"))
}

func TestNewBadRequestError_CustomCode(t *testing.T) {
	code := "INVALID_EMAIL"
	fieldErrors := []FieldError{{Field: "email", Error: "invalid"}}
	action := &Action{Type: ActionTypeRedirect, Value: "/login"}

	err := NewBadRequestError("bad email", true, &code, fieldErrors, action)

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "INVALID_EMAIL", err.Code)
	assert.True(t, err.Override)
	assert.Equal(t, fieldErrors, err.Errors)
	assert.Same(t, action, err.Action)
	assert.Equal(t, "bad email", err.Error())
}

func TestNewConflictError_DefaultCode(t *testing.T) {
	err := NewConflictError("taken", false, nil)

	assert.Equal(t, http.StatusConflict, err.Status)
	assert.Equal(t, "CONFLICT", err.Code)
}

func TestNewTooManyRequestsError(t *testing.T) {
	code := "RATE_LIMITED"
	err := NewTooManyRequestsError("slow down", &code)

	assert.Equal(t, http.StatusTooManyRequests, err.Status)
	assert.Equal(t, "RATE_LIMITED", err.Code)
	assert.False(t, err.Override)
}

func TestHTTPError_IsAndWithMessage(t *testing.T) {
	base := NewNotFoundError("missing", false, nil)
	wrapped := fmt.Errorf("lookup: %w", base.WithMessage("user not found"))

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, "user not found", httpErr.Message)
	assert.Equal(t, "missing", base.Message)
	assert.True(t, errors.Is(wrapped, NewInternalServerError()))
}
