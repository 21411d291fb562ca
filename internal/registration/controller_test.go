package registration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/go-registration/internal/validation"
)

type shownMessage struct {
	severity Severity
	title    string
	text     string
}

type fakeView struct {
	messages     []shownMessage
	clearedTimes int
	focused      []validation.Field
	closedTimes  int
}

func (v *fakeView) ShowMessage(severity Severity, title, text string) {
	v.messages = append(v.messages, shownMessage{severity: severity, title: title, text: text})
}

func (v *fakeView) ClearPasswords() { v.clearedTimes++ }

func (v *fakeView) Focus(field validation.Field) { v.focused = append(v.focused, field) }

func (v *fakeView) Close() { v.closedTimes++ }

type registerCall struct {
	username, email, password string
}

type fakeRegistrar struct {
	result bool
	calls  []registerCall
}

func (r *fakeRegistrar) RegisterUser(_ context.Context, username, email, password string) bool {
	r.calls = append(r.calls, registerCall{username, email, password})
	return r.result
}

type harness struct {
	view       *fakeView
	registrar  *fakeRegistrar
	loginCalls int
	controller *Controller
}

func newHarness(registered bool) *harness {
	h := &harness{
		view:      &fakeView{},
		registrar: &fakeRegistrar{result: registered},
	}
	h.controller = NewController(
		validation.NewRegistrationValidator(),
		h.registrar,
		h.view,
		func() { h.loginCalls++ },
		DefaultMessages(),
		nil,
	)
	return h
}

func validRequest() validation.RegistrationRequest {
	return validation.RegistrationRequest{
		Username:       "validUser1",
		Email:          "user@example.com",
		Password:       "Secur3Pass",
		PasswordRepeat: "Secur3Pass",
	}
}

func TestController_SubmitRegisters(t *testing.T) {
	h := newHarness(true)

	submission, err := h.controller.Submit(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, ResultRegistered, submission.Result)
	assert.Nil(t, submission.Rejection)
	require.Len(t, h.registrar.calls, 1)
	assert.Equal(t, registerCall{"validUser1", "user@example.com", "Secur3Pass"}, h.registrar.calls[0])

	require.Len(t, h.view.messages, 1)
	assert.Equal(t, SeverityInfo, h.view.messages[0].severity)
	assert.Equal(t, DefaultMessages().Text(KeyTitle), h.view.messages[0].title)
	assert.Equal(t, DefaultMessages().Text(KeyRegistered), h.view.messages[0].text)

	assert.Equal(t, 1, h.view.closedTimes)
	assert.Equal(t, 1, h.loginCalls)
	assert.Equal(t, StateClosed, h.controller.State())
}

func TestController_SubmitPassesTrimmedValues(t *testing.T) {
	h := newHarness(true)

	req := validRequest()
	req.Username = "  validUser1 "
	req.Email = "\tuser@example.com "

	_, err := h.controller.Submit(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, h.registrar.calls, 1)
	assert.Equal(t, "validUser1", h.registrar.calls[0].username)
	assert.Equal(t, "user@example.com", h.registrar.calls[0].email)
}

func TestController_RejectionSideEffects(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(r *validation.RegistrationRequest)
		reason   validation.Reason
		severity Severity
		cleared  bool
		focused  []validation.Field
	}{
		{
			name:     "missing fields",
			mutate:   func(r *validation.RegistrationRequest) { r.Email = "" },
			reason:   validation.ReasonMissingFields,
			severity: SeverityWarning,
		},
		{
			name:     "invalid username",
			mutate:   func(r *validation.RegistrationRequest) { r.Username = "ab" },
			reason:   validation.ReasonInvalidUsername,
			severity: SeverityWarning,
			focused:  []validation.Field{validation.FieldUsername},
		},
		{
			name:     "invalid email",
			mutate:   func(r *validation.RegistrationRequest) { r.Email = "пошта@example.com" },
			reason:   validation.ReasonInvalidEmail,
			severity: SeverityWarning,
			focused:  []validation.Field{validation.FieldEmail},
		},
		{
			name: "short password",
			mutate: func(r *validation.RegistrationRequest) {
				r.Password = "short"
				r.PasswordRepeat = "short"
			},
			reason:   validation.ReasonPasswordTooShort,
			severity: SeverityWarning,
			cleared:  true,
			focused:  []validation.Field{validation.FieldPassword},
		},
		{
			name: "non printable password",
			mutate: func(r *validation.RegistrationRequest) {
				r.Password = "пароль123"
				r.PasswordRepeat = "пароль123"
			},
			reason:   validation.ReasonInvalidPasswordChars,
			severity: SeverityWarning,
			cleared:  true,
			focused:  []validation.Field{validation.FieldPassword},
		},
		{
			name: "mismatch",
			mutate: func(r *validation.RegistrationRequest) {
				r.Password = "Passw0rd!"
				r.PasswordRepeat = "Passw0rd?"
			},
			reason:   validation.ReasonPasswordMismatch,
			severity: SeverityError,
			cleared:  true,
			focused:  []validation.Field{validation.FieldPassword},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(true)
			req := validRequest()
			tt.mutate(&req)

			submission, err := h.controller.Submit(context.Background(), req)
			require.NoError(t, err)

			assert.Equal(t, ResultRejected, submission.Result)
			require.NotNil(t, submission.Rejection)
			assert.Equal(t, tt.reason, submission.Rejection.Reason)

			require.Len(t, h.view.messages, 1)
			assert.Equal(t, tt.severity, h.view.messages[0].severity)
			assert.Equal(t, DefaultMessages().Reason(tt.reason), h.view.messages[0].text)

			if tt.cleared {
				assert.Equal(t, 1, h.view.clearedTimes)
			} else {
				assert.Zero(t, h.view.clearedTimes)
			}
			assert.Equal(t, tt.focused, h.view.focused)

			assert.Empty(t, h.registrar.calls)
			assert.Zero(t, h.view.closedTimes)
			assert.Zero(t, h.loginCalls)
			assert.Equal(t, StateEditing, h.controller.State())
		})
	}
}

func TestController_RegistrarFailureShowsNotice(t *testing.T) {
	h := newHarness(false)

	submission, err := h.controller.Submit(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, ResultFailed, submission.Result)
	require.Len(t, h.registrar.calls, 1)
	require.Len(t, h.view.messages, 1)
	assert.Equal(t, SeverityError, h.view.messages[0].severity)
	assert.Equal(t, DefaultMessages().Text(KeyFailed), h.view.messages[0].text)

	assert.Zero(t, h.loginCalls)
	assert.Zero(t, h.view.closedTimes)
	assert.Equal(t, StateEditing, h.controller.State())

	// The form stays usable: a second attempt goes through.
	h.registrar.result = true
	submission, err = h.controller.Submit(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, ResultRegistered, submission.Result)
}

func TestController_ClosedRejectsSubmissions(t *testing.T) {
	h := newHarness(true)

	_, err := h.controller.Submit(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = h.controller.Submit(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrClosed)
	assert.Len(t, h.registrar.calls, 1)
}

func TestController_GoToLoginRunsOnce(t *testing.T) {
	h := newHarness(true)

	h.controller.GoToLogin()
	h.controller.GoToLogin()
	h.controller.Close()

	assert.Equal(t, 1, h.loginCalls)
	assert.Equal(t, 1, h.view.closedTimes)
	assert.Equal(t, StateClosed, h.controller.State())
}

func TestController_CloseDoesNotNavigate(t *testing.T) {
	h := newHarness(true)

	h.controller.Close()
	h.controller.Close()
	h.controller.GoToLogin()

	assert.Zero(t, h.loginCalls)
	assert.Equal(t, 1, h.view.closedTimes)
	assert.Empty(t, h.view.messages)

	_, err := h.controller.Submit(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestController_CustomMessages(t *testing.T) {
	view := &fakeView{}
	messages := DefaultMessages().With(map[string]string{
		KeyTitle:                              "Sign up",
		string(validation.ReasonInvalidEmail): "Invalid email",
	})
	c := NewController(validation.NewRegistrationValidator(), RegistrarFunc(
		func(context.Context, string, string, string) bool { return true },
	), view, nil, messages, nil)

	req := validRequest()
	req.Email = "bad-email"
	_, err := c.Submit(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, view.messages, 1)
	assert.Equal(t, "Sign up", view.messages[0].title)
	assert.Equal(t, "Invalid email", view.messages[0].text)
}

func TestStateAndResultStrings(t *testing.T) {
	assert.Equal(t, "editing", StateEditing.String())
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "rejected", ResultRejected.String())
	assert.Equal(t, "registered", ResultRegistered.String())
	assert.Equal(t, "failed", ResultFailed.String())
}
