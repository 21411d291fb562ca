package registration

import (
	"fmt"
	"maps"

	"github.com/deppfellow/go-registration/internal/validation"
)

// Message keys that are not rejection reasons.
const (
	KeyTitle      = "title"
	KeyRegistered = "registration_succeeded"
	KeyFailed     = "registration_failed"
)

// Messages maps message keys (rejection reason codes plus the Key* constants)
// to user-facing text.
type Messages map[string]string

// DefaultMessages returns the Ukrainian texts the form ships with.
func DefaultMessages() Messages {
	return Messages{
		KeyTitle: "Реєстрація",

		string(validation.ReasonMissingFields): "Будь ласка, заповніть усі поля.",
		string(validation.ReasonInvalidUsername): fmt.Sprintf(
			"Логін повинен містити від %d до %d символів.\n"+
				"Дозволені символи: латинські літери (a-z, A-Z), цифри (0-9), "+
				"знаки підкреслення (_) та дефіс (-).",
			validation.MinUsernameLength, validation.MaxUsernameLength,
		),
		string(validation.ReasonInvalidEmail): "Будь ласка, введіть дійсну адресу електронної пошти, " +
			"використовуючи лише латинські літери, цифри та стандартні символи (@ . _ % + -).",
		string(validation.ReasonPasswordTooShort): fmt.Sprintf(
			"Пароль повинен містити щонайменше %d символів.", validation.MinPasswordLength,
		),
		string(validation.ReasonInvalidPasswordChars): "Пароль може містити лише латинські літери, цифри " +
			"та стандартні символи (~!@#$%^&*()_+=-`...).",
		string(validation.ReasonPasswordMismatch): "Паролі не співпадають.",

		KeyRegistered: "Реєстрація успішна! Тепер ви можете увійти.",
		KeyFailed:     "Не вдалося завершити реєстрацію. Спробуйте ще раз.",
	}
}

// With returns a copy of m where every non-empty override replaces the default.
func (m Messages) With(overrides map[string]string) Messages {
	merged := maps.Clone(m)
	if merged == nil {
		merged = Messages{}
	}
	for key, text := range overrides {
		if text != "" {
			merged[key] = text
		}
	}
	return merged
}

// Text returns the text for key, or the key itself when no text is configured.
func (m Messages) Text(key string) string {
	if text, ok := m[key]; ok && text != "" {
		return text
	}
	return key
}

// Reason returns the text for a rejection reason.
func (m Messages) Reason(reason validation.Reason) string {
	return m.Text(string(reason))
}
