// Package terminal renders the registration form on a line-oriented
// terminal.
//
// Fields are prompted one per line. After a rejection the prompt restarts
// at the offending field and earlier answers are kept. Typing :login or
// :quit at any prompt leaves the form; on password prompts only the exact
// command counts, so padded passwords are never mistaken for one.
// Passwords are read without echo when a secret reader is installed.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/deppfellow/go-registration/internal/registration"
	"github.com/deppfellow/go-registration/internal/validation"
)

const (
	CommandLogin = ":login"
	CommandQuit  = ":quit"
)

// Form is the controller side the window drives. *registration.Controller
// implements it.
type Form interface {
	Submit(ctx context.Context, req validation.RegistrationRequest) (registration.Submission, error)
	GoToLogin()
	Close()
}

type field struct {
	id     validation.Field
	label  string
	secret bool
}

var fields = []field{
	{id: validation.FieldUsername, label: "Логін"},
	{id: validation.FieldEmail, label: "Електронна пошта"},
	{id: validation.FieldPassword, label: "Пароль", secret: true},
	{id: validation.FieldPasswordRepeat, label: "Повторіть пароль", secret: true},
}

// Window implements registration.View over a reader and a writer.
type Window struct {
	in     *bufio.Scanner
	out    io.Writer
	values map[validation.Field]string
	focus  validation.Field
	closed bool
	styles map[registration.Severity]*color.Color
	prompt *color.Color
	// secrets reads password fields; nil falls back to the line scanner.
	secrets SecretReader
}

// SecretReader reads one line without echoing it.
type SecretReader func() (string, error)

// TerminalSecrets reads passwords from the terminal behind fd with echo
// disabled. The newline the user typed is not echoed either, so one is
// written to out.
func TerminalSecrets(fd int, out io.Writer) SecretReader {
	return func() (string, error) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

// WithSecretReader makes the window read password fields through r.
func (w *Window) WithSecretReader(r SecretReader) *Window {
	w.secrets = r
	return w
}

// NewWindow builds a window. With colored false every escape sequence is
// suppressed, which is what tests and non-tty outputs want.
func NewWindow(in io.Reader, out io.Writer, colored bool) *Window {
	w := &Window{
		in:     bufio.NewScanner(in),
		out:    out,
		values: make(map[validation.Field]string, len(fields)),
		styles: map[registration.Severity]*color.Color{
			registration.SeverityInfo:    color.New(color.FgGreen, color.Bold),
			registration.SeverityWarning: color.New(color.FgYellow, color.Bold),
			registration.SeverityError:   color.New(color.FgRed, color.Bold),
		},
		prompt: color.New(color.FgCyan),
	}

	if !colored {
		for _, c := range w.styles {
			c.DisableColor()
		}
		w.prompt.DisableColor()
	}
	return w
}

func (w *Window) ShowMessage(severity registration.Severity, title, text string) {
	style, ok := w.styles[severity]
	if !ok {
		style = w.styles[registration.SeverityInfo]
	}
	style.Fprintf(w.out, "[%s] %s\n", title, strings.ToUpper(string(severity)))
	fmt.Fprintln(w.out, text)
}

func (w *Window) ClearPasswords() {
	w.values[validation.FieldPassword] = ""
	w.values[validation.FieldPasswordRepeat] = ""
}

func (w *Window) Focus(f validation.Field) {
	w.focus = f
}

func (w *Window) Close() {
	w.closed = true
}

// Closed reports whether the controller tore the window down.
func (w *Window) Closed() bool {
	return w.closed
}

var (
	errLogin = errors.New("login requested")
	errQuit  = errors.New("quit requested")
)

// Run prompts for submissions until the form closes or input ends.
// End of input closes the form like :quit.
func (w *Window) Run(ctx context.Context, form Form) error {
	fmt.Fprintf(w.out, "Введіть %s, щоб перейти до входу, або %s, щоб вийти.\n", CommandLogin, CommandQuit)

	for !w.closed {
		if err := ctx.Err(); err != nil {
			form.Close()
			return err
		}

		req, err := w.readForm()
		switch {
		case errors.Is(err, errLogin):
			form.GoToLogin()
			continue
		case errors.Is(err, errQuit), errors.Is(err, io.EOF):
			form.Close()
			continue
		case err != nil:
			form.Close()
			return err
		}

		// Focus is reset before each submission; a rejection sets it again.
		w.focus = validation.FieldNone
		if _, err := form.Submit(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

// readForm prompts from the focused field to the last one.
func (w *Window) readForm() (validation.RegistrationRequest, error) {
	start := 0
	for i, f := range fields {
		if f.id == w.focus {
			start = i
		}
	}

	for _, f := range fields[start:] {
		value, err := w.readLine(f)
		if err != nil {
			return validation.RegistrationRequest{}, err
		}
		w.values[f.id] = value
	}

	return validation.RegistrationRequest{
		Username:       w.values[validation.FieldUsername],
		Email:          w.values[validation.FieldEmail],
		Password:       w.values[validation.FieldPassword],
		PasswordRepeat: w.values[validation.FieldPasswordRepeat],
	}, nil
}

func (w *Window) readLine(f field) (string, error) {
	w.prompt.Fprintf(w.out, "%s: ", f.label)

	var line string
	if f.secret && w.secrets != nil {
		secret, err := w.secrets()
		if err != nil {
			return "", err
		}
		line = secret
	} else {
		if !w.in.Scan() {
			if err := w.in.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		line = w.in.Text()
	}
	line = strings.TrimRight(line, "\r")

	command := line
	if !f.secret {
		command = strings.TrimSpace(line)
	}
	switch command {
	case CommandLogin:
		return "", errLogin
	case CommandQuit:
		return "", errQuit
	}
	return line, nil
}
