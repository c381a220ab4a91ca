package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/oyildirim/kimlik/internal/locale"
	"github.com/oyildirim/kimlik/internal/session"
	"github.com/oyildirim/kimlik/pkg/client"
	"github.com/oyildirim/kimlik/pkg/domain"
)

type loginField int

const (
	loginFieldEmail loginField = iota
	loginFieldPassword
	numLoginFields
)

// loginDoneMsg carries the result of a login attempt. auth is the
// credential header value to store on success.
type loginDoneMsg struct {
	user *domain.User
	auth string
	err  error
}

type loginModel struct {
	client   *client.Client
	sessions *session.Manager
	locales  *locale.Bundle
	fields   [numLoginFields]string
	focus    loginField
	status   apiStatus
	banner   string
}

func newLoginModel(c *client.Client, sessions *session.Manager, loc *locale.Bundle) loginModel {
	return loginModel{client: c, sessions: sessions, locales: loc}
}

func (m loginModel) Init() tea.Cmd {
	return nil
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		if msg.err != nil {
			m.status = statusError
			m.banner = apiErrMessage(msg.err, m.locales)
			return m, nil
		}
		m.status = statusSuccess
		m.banner = ""
		m.fields = [numLoginFields]string{}
		m.focus = loginFieldEmail
		// The single authorized mutation path for the session.
		m.sessions.Update(domain.Session{ //nolint:errcheck // surfaced on next read
			LoggedIn:   true,
			ID:         msg.user.ID,
			Username:   msg.user.Username,
			AuthHeader: msg.auth,
		})
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m loginModel) updateKeys(msg tea.KeyMsg) (loginModel, tea.Cmd) {
	key := msg.String()
	switch key {
	case "tab", "down":
		m.focus = (m.focus + 1) % numLoginFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numLoginFields) % numLoginFields
	case "enter":
		if m.focus == loginFieldEmail {
			m.focus = loginFieldPassword
			return m, nil
		}
		return m.submit()
	default:
		if isEditKey(key) {
			f := &m.fields[m.focus]
			*f = editRune(*f, key)
			// A stale error never lingers past the next keystroke.
			m.status = statusIdle
			m.banner = ""
		}
	}
	return m, nil
}

func (m loginModel) submitDisabled() bool {
	return (m.fields[loginFieldEmail] == "" && m.fields[loginFieldPassword] == "") ||
		m.status == statusPending
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	if m.submitDisabled() {
		return m, nil
	}
	m.status = statusPending
	email := m.fields[loginFieldEmail]
	password := m.fields[loginFieldPassword]
	c := m.client
	return m, func() tea.Msg {
		user, err := c.LogIn(context.Background(), email, password)
		if err != nil {
			return loginDoneMsg{err: err}
		}
		return loginDoneMsg{user: user, auth: client.BasicAuth(email, password)}
	}
}

func (m loginModel) View() string {
	var b strings.Builder

	b.WriteString(" " + titleStyle.Render(m.locales.T("login")) + "\n\n")

	labels := [numLoginFields]string{m.locales.T("email"), m.locales.T("password")}
	for i := loginField(0); i < numLoginFields; i++ {
		cursor := " "
		style := metaStyle
		if i == m.focus {
			cursor = ">"
			style = selectedStyle
		}
		value := m.fields[i]
		if i == loginFieldPassword {
			value = maskRunes(value)
		}
		if i == m.focus {
			value += "█"
		}
		fmt.Fprintf(&b, " %s %s: %s\n", cursor, style.Render(label(labels[i])), value)
	}

	b.WriteString("\n")
	switch {
	case m.status == statusPending:
		b.WriteString(" " + dimStyle.Render(m.locales.T("loading")) + "\n")
	case m.status == statusError && m.banner != "":
		b.WriteString(" " + errStyle.Render(m.banner) + "\n")
	case m.submitDisabled():
		b.WriteString(" " + inputPlaceholderStyle.Render(m.locales.T("submit")) + "\n")
	default:
		b.WriteString(" " + accentStyle.Render(m.locales.T("submit")) + " " + dimStyle.Render("(enter)") + "\n")
	}

	return b.String()
}

// label pads field labels to a common width.
func label(s string) string {
	return fmt.Sprintf("%-16s", s)
}
