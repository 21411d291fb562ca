package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/go-registration/internal/errs"
)

func TestHandleError_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        `duplicate key value violates unique constraint "users_username_key"`,
		TableName:      "users",
		ConstraintName: "users_username_key",
	}

	err := HandleError(fmt.Errorf("insert user: %w", pgErr))

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Status)
	assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A User with this Username already exists", httpErr.Message)
	assert.True(t, httpErr.Override)
	assert.Equal(t, []errs.FieldError{{Field: "username", Error: "is already taken"}}, httpErr.Errors)
}

func TestHandleError_ConstraintViolations(t *testing.T) {
	tests := []struct {
		name    string
		pgErr   *pgconn.PgError
		status  int
		code    string
		message string
	}{
		{
			name:    "not null",
			pgErr:   &pgconn.PgError{Code: "23502", TableName: "users", ColumnName: "email"},
			status:  http.StatusBadRequest,
			code:    "USER_REQUIRED",
			message: "The Email is required",
		},
		{
			name:    "check",
			pgErr:   &pgconn.PgError{Code: "23514", TableName: "users", ColumnName: "username"},
			status:  http.StatusBadRequest,
			code:    "USER_INVALID",
			message: "The Username value does not meet required conditions",
		},
		{
			name:    "unknown",
			pgErr:   &pgconn.PgError{Code: "23503", TableName: "users"},
			status:  http.StatusInternalServerError,
			code:    "INTERNAL_SERVER_ERROR",
			message: http.StatusText(http.StatusInternalServerError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var httpErr *errs.HTTPError
			require.ErrorAs(t, HandleError(tt.pgErr), &httpErr)
			assert.Equal(t, tt.status, httpErr.Status)
			assert.Equal(t, tt.code, httpErr.Code)
			assert.Equal(t, tt.message, httpErr.Message)
		})
	}
}

func TestHandleError_PassesHTTPErrorsThrough(t *testing.T) {
	original := errs.NewNotFoundError("gone", true, nil)
	assert.Same(t, original, HandleError(original))
}

func TestHandleError_UnknownError(t *testing.T) {
	var httpErr *errs.HTTPError
	require.ErrorAs(t, HandleError(errors.New("boom")), &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestConvertPgError(t *testing.T) {
	pgErr := &pgconn.PgError{Severity: "FATAL", Code: "23505", Message: "dup"}

	sqlErr := ConvertPgError(pgErr)

	assert.Equal(t, UniqueViolation, sqlErr.Code)
	assert.Equal(t, SeverityFatal, sqlErr.Severity)
	assert.Equal(t, UniqueViolation, ErrCode(fmt.Errorf("wrapped: %w", sqlErr)))
	assert.ErrorIs(t, sqlErr, pgErr)
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
	assert.Equal(t, CheckViolation, ErrCode(fmt.Errorf("insert user: %w", &pgconn.PgError{Code: "23514"})))
	assert.Equal(t, Other, ErrCode(&pgconn.PgError{Code: "23503"}))
	assert.Equal(t, SeverityError, MapSeverity("weird"))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "email", extractColumnForUniqueViolation("users_email_key"))
	assert.Equal(t, "email", extractColumnForUniqueViolation("unique_users_email"))
	assert.Equal(t, "", extractColumnForUniqueViolation("users_pkey"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
}
