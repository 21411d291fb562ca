package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	// MinUsernameLength and MaxUsernameLength bound the username, inclusive.
	MinUsernameLength = 4
	MaxUsernameLength = 16

	// MinPasswordLength is counted in characters, the password is never trimmed.
	MinPasswordLength = 8
)

// Reason is a stable, machine-friendly code describing why a submission was rejected.
// It doubles as the key for user-facing message text.
type Reason string

const (
	ReasonMissingFields        Reason = "missing_fields"
	ReasonInvalidUsername      Reason = "invalid_username"
	ReasonInvalidEmail         Reason = "invalid_email"
	ReasonPasswordTooShort     Reason = "password_too_short"
	ReasonInvalidPasswordChars Reason = "invalid_password_characters"
	ReasonPasswordMismatch     Reason = "passwords_do_not_match"
)

// Reasons lists every rejection reason in the order the rules run.
var Reasons = []Reason{
	ReasonMissingFields,
	ReasonInvalidUsername,
	ReasonInvalidEmail,
	ReasonPasswordTooShort,
	ReasonInvalidPasswordChars,
	ReasonPasswordMismatch,
}

// Field names a form input. FieldNone is used when a rule has no single offending field.
type Field string

const (
	FieldNone           Field = ""
	FieldUsername       Field = "username"
	FieldEmail          Field = "email"
	FieldPassword       Field = "password"
	FieldPasswordRepeat Field = "password_repeat"
)

// RegistrationRequest holds the four raw form inputs of one submission attempt.
type RegistrationRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	PasswordRepeat string `json:"password_repeat"`
}

// Credentials are the validated values handed to the registration collaborator.
//
// Username and Email are trimmed, Password is passed through untouched.
type Credentials struct {
	Username string
	Email    string
	Password string
}

// Rejection describes the first rule a submission failed.
type Rejection struct {
	Reason Reason
	// Field is the input that should receive focus, FieldNone if there is none.
	Field Field
	// ClearPasswords tells the view to empty both password inputs.
	ClearPasswords bool
}

// Error makes a Rejection usable as a plain error.
func (r *Rejection) Error() string {
	return fmt.Sprintf("registration rejected: %s", r.Reason)
}

// Outcome is the result of validating a RegistrationRequest.
//
// Exactly one of Credentials and Rejection is set.
type Outcome struct {
	Credentials *Credentials
	Rejection   *Rejection
}

// OK reports whether the submission passed every rule.
func (o Outcome) OK() bool {
	return o.Credentials != nil
}

var (
	// usernameRegex is anchored so the whole string must match, not a substring.
	usernameRegex = regexp.MustCompile(fmt.Sprintf(`^[a-zA-Z0-9_-]{%d,%d}$`, MinUsernameLength, MaxUsernameLength))

	// emailRegex is the basic local@domain.tld shape.
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// normalized is a request after trimming, the shape every rule reads from.
type normalized struct {
	username       string
	email          string
	password       string
	passwordRepeat string
}

// rule is a single ordered check. check returns nil when the rule passes.
type rule struct {
	reason         Reason
	field          Field
	clearPasswords bool
	check          func(v *validator.Validate, n normalized) error
}

// rules are evaluated top to bottom, the first failure wins.
var rules = []rule{
	{
		reason: ReasonMissingFields,
		field:  FieldNone,
		check: func(v *validator.Validate, n normalized) error {
			for _, value := range []string{n.username, n.email, n.password, n.passwordRepeat} {
				if err := v.Var(value, "required"); err != nil {
					return err
				}
			}
			return nil
		},
	},
	{
		reason: ReasonInvalidUsername,
		field:  FieldUsername,
		check: func(v *validator.Validate, n normalized) error {
			return v.Var(n.username, "username")
		},
	},
	{
		reason: ReasonInvalidEmail,
		field:  FieldEmail,
		check: func(v *validator.Validate, n normalized) error {
			// ascii is redundant with the pattern but kept as its own check.
			return v.Var(n.email, "basic_email,ascii")
		},
	},
	{
		reason:         ReasonPasswordTooShort,
		field:          FieldPassword,
		clearPasswords: true,
		check: func(v *validator.Validate, n normalized) error {
			return v.Var(n.password, fmt.Sprintf("min=%d", MinPasswordLength))
		},
	},
	{
		reason:         ReasonInvalidPasswordChars,
		field:          FieldPassword,
		clearPasswords: true,
		check: func(v *validator.Validate, n normalized) error {
			// printascii is the 0x20-0x7E range.
			return v.Var(n.password, "printascii")
		},
	},
	{
		reason:         ReasonPasswordMismatch,
		field:          FieldPassword,
		clearPasswords: true,
		check: func(v *validator.Validate, n normalized) error {
			return v.VarWithValue(n.password, n.passwordRepeat, "eqcsfield")
		},
	},
}

// RegistrationValidator applies the registration rules to a RegistrationRequest.
//
// It holds no per-submission state and is safe to share.
type RegistrationValidator struct {
	validate *validator.Validate
}

// NewRegistrationValidator builds a validator with the custom "username"
// and "basic_email" tags registered.
func NewRegistrationValidator() *RegistrationValidator {
	v := validator.New()

	// RegisterValidation only fails on an empty tag or a nil func, neither can happen here.
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("basic_email", func(fl validator.FieldLevel) bool {
		return emailRegex.MatchString(fl.Field().String())
	})

	return &RegistrationValidator{validate: v}
}

// TrimField is the trimming applied to username and email: Unicode
// whitespace plus the ASCII separators U+001C..U+001F, which
// strings.TrimSpace keeps.
func TrimField(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
	})
}

// Validate runs the rules in order and returns on the first failure.
func (rv *RegistrationValidator) Validate(req RegistrationRequest) Outcome {
	n := normalized{
		username:       TrimField(req.Username),
		email:          TrimField(req.Email),
		password:       req.Password,
		passwordRepeat: req.PasswordRepeat,
	}

	for _, r := range rules {
		if err := r.check(rv.validate, n); err != nil {
			return Outcome{Rejection: &Rejection{
				Reason:         r.reason,
				Field:          r.field,
				ClearPasswords: r.clearPasswords,
			}}
		}
	}

	return Outcome{Credentials: &Credentials{
		Username: n.username,
		Email:    n.email,
		Password: n.password,
	}}
}
