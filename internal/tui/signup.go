package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/oyildirim/kimlik/internal/locale"
	"github.com/oyildirim/kimlik/pkg/client"
)

type signupField int

const (
	signupFieldUsername signupField = iota
	signupFieldEmail
	signupFieldPassword
	signupFieldPasswordRepeat
	numSignupFields
)

// signupFieldNames match the server's validation error keys.
var signupFieldNames = [numSignupFields]string{"username", "email", "password", "passwordRepeat"}

// signUpDoneMsg carries the result of a sign-up attempt.
type signUpDoneMsg struct {
	err error
}

// showActivateMsg asks the app to open the activation view.
type showActivateMsg struct{}

type signupModel struct {
	client    *client.Client
	locales   *locale.Bundle
	fields    [numSignupFields]string
	focus     signupField
	status    apiStatus
	fieldErrs map[string]string
	banner    string
	done      bool
}

func newSignupModel(c *client.Client, loc *locale.Bundle) signupModel {
	return signupModel{client: c, locales: loc, fieldErrs: make(map[string]string)}
}

func (m signupModel) Init() tea.Cmd {
	return nil
}

func (m signupModel) Update(msg tea.Msg) (signupModel, tea.Cmd) {
	switch msg := msg.(type) {
	case signUpDoneMsg:
		if msg.err == nil {
			m.status = statusSuccess
			m.done = true
			return m, nil
		}
		m.status = statusError
		if vErr, ok := client.AsValidation(msg.err); ok {
			m.fieldErrs = vErr.Errors
		} else {
			m.banner = apiErrMessage(msg.err, m.locales)
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m signupModel) updateKeys(msg tea.KeyMsg) (signupModel, tea.Cmd) {
	if m.done {
		if msg.String() == "a" {
			return m, func() tea.Msg { return showActivateMsg{} }
		}
		return m, nil
	}

	key := msg.String()
	switch key {
	case "tab", "down":
		m.focus = (m.focus + 1) % numSignupFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numSignupFields) % numSignupFields
	case "enter":
		if m.focus == signupFieldPasswordRepeat {
			return m.submit()
		}
		m.focus = (m.focus + 1) % numSignupFields
	case "ctrl+s":
		return m.submit()
	default:
		if isEditKey(key) {
			f := &m.fields[m.focus]
			*f = editRune(*f, key)
			// Editing a field clears its error and resets the flow.
			delete(m.fieldErrs, signupFieldNames[m.focus])
			m.status = statusIdle
			m.banner = ""
		}
	}
	return m, nil
}

// passwordMismatch reports whether both password fields are filled in and
// disagree. Checked reactively on every render.
func (m signupModel) passwordMismatch() bool {
	p, r := m.fields[signupFieldPassword], m.fields[signupFieldPasswordRepeat]
	return p != "" && r != "" && p != r
}

func (m signupModel) submitDisabled() bool {
	p, r := m.fields[signupFieldPassword], m.fields[signupFieldPasswordRepeat]
	if p == "" || r == "" || p != r {
		return true
	}
	return m.status == statusPending
}

func (m signupModel) submit() (signupModel, tea.Cmd) {
	if m.submitDisabled() {
		return m, nil
	}
	m.status = statusPending
	req := client.SignUpRequest{
		Username: m.fields[signupFieldUsername],
		Email:    m.fields[signupFieldEmail],
		Password: m.fields[signupFieldPassword],
	}
	c := m.client
	return m, func() tea.Msg {
		return signUpDoneMsg{err: c.SignUp(context.Background(), req)}
	}
}

func (m signupModel) View() string {
	var b strings.Builder

	b.WriteString(" " + titleStyle.Render(m.locales.T("signUp")) + "\n\n")

	if m.done {
		b.WriteString(" " + successStyle.Render(m.locales.T("checkEmail")) + "\n\n")
		b.WriteString(" " + helpEntry("a", m.locales.T("activation")) + "\n")
		return b.String()
	}

	labels := [numSignupFields]string{
		m.locales.T("username"),
		m.locales.T("email"),
		m.locales.T("password"),
		m.locales.T("passwordRepeat"),
	}
	for i := signupField(0); i < numSignupFields; i++ {
		cursor := " "
		style := metaStyle
		if i == m.focus {
			cursor = ">"
			style = selectedStyle
		}
		value := m.fields[i]
		if i == signupFieldPassword || i == signupFieldPasswordRepeat {
			value = maskRunes(value)
		}
		if i == m.focus {
			value += "█"
		}
		fmt.Fprintf(&b, " %s %s: %s\n", cursor, style.Render(label(labels[i])), value)

		if errMsg := m.fieldErrs[signupFieldNames[i]]; errMsg != "" {
			fmt.Fprintf(&b, "   %s\n", errStyle.Render(errMsg))
		}
		if i == signupFieldPasswordRepeat && m.passwordMismatch() {
			fmt.Fprintf(&b, "   %s\n", errStyle.Render(m.locales.T("passwordMissmatchValidation")))
		}
	}

	b.WriteString("\n")
	switch {
	case m.status == statusPending:
		b.WriteString(" " + dimStyle.Render(m.locales.T("loading")) + "\n")
	case m.banner != "":
		b.WriteString(" " + errStyle.Render(m.banner) + "\n")
	case m.submitDisabled():
		b.WriteString(" " + inputPlaceholderStyle.Render(m.locales.T("submit")) + "\n")
	default:
		b.WriteString(" " + accentStyle.Render(m.locales.T("submit")) + " " + dimStyle.Render("(enter)") + "\n")
	}

	return b.String()
}
