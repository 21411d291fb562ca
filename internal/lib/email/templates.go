package email

type Template string

const (
	TemplateWelcome Template = "welcome"
)

// subjects are the Ukrainian subject lines sent with each template.
var subjects = map[Template]string{
	TemplateWelcome: "Ласкаво просимо!",
}

// Subject returns the subject line for t, falling back to the template name.
func (t Template) Subject() string {
	if subject, ok := subjects[t]; ok {
		return subject
	}
	return string(t)
}
