package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/go-registration/internal/errs"
)

// Validatable is implemented by request payloads, usually by running
// validator.Struct over their tags.
type Validatable interface {
	Validate() error
}

// NewPayloadValidator returns a validator that reports fields by their
// json tag, so field errors use the names clients sent.
func NewPayloadValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	return v
}

// BindAndValidate binds the request into payload, which must be a pointer,
// and validates it. Failures come back as a 400 *errs.HTTPError.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		message := "Invalid request body"
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			if msg, ok := echoErr.Message.(string); ok && msg != "" {
				message = msg
			}
		}
		return errs.NewBadRequestError(message, false, nil, nil, nil)
	}

	if err := payload.Validate(); err != nil {
		fieldErrors := extractFieldErrors(err)
		if len(fieldErrors) == 0 {
			return errs.ValidationError(err)
		}
		return errs.NewBadRequestError("Validation failed", true, nil, fieldErrors, nil)
	}

	return nil
}

func extractFieldErrors(err error) []errs.FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	fieldErrors := make([]errs.FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: e.Field(),
			Error: describeTag(e),
		})
	}
	return fieldErrors
}

func describeTag(e validator.FieldError) string {
	if e.Tag() == "max" {
		if e.Type().Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", e.Param())
		}
		return fmt.Sprintf("must not exceed %s", e.Param())
	}

	if e.Param() != "" {
		return fmt.Sprintf("failed %s=%s", e.Tag(), e.Param())
	}
	return fmt.Sprintf("failed %s", e.Tag())
}
