package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/oyildirim/kimlik/internal/locale"
	"github.com/oyildirim/kimlik/internal/session"
	"github.com/oyildirim/kimlik/pkg/client"
	"github.com/oyildirim/kimlik/pkg/domain"
)

type profileLoadedMsg struct {
	user *domain.User
	err  error
}

type profileSavedMsg struct {
	user *domain.User
	err  error
}

type profileDeletedMsg struct {
	err error
}

type logoutDoneMsg struct {
	err error
}

type profileModel struct {
	client   *client.Client
	sessions *session.Manager
	locales  *locale.Bundle

	userID        int64
	user          *domain.User
	status        apiStatus
	errMsg        string // page-level message (404)
	banner        string
	notice        string
	editing       bool
	editValue     string
	confirmDelete bool
}

func newProfileModel(c *client.Client, sessions *session.Manager, loc *locale.Bundle) profileModel {
	return profileModel{client: c, sessions: sessions, locales: loc}
}

// load fetches the user with the given ID.
func (m profileModel) load(id int64) (profileModel, tea.Cmd) {
	m.userID = id
	m.user = nil
	m.errMsg = ""
	m.banner = ""
	m.notice = ""
	m.editing = false
	m.confirmDelete = false
	m.status = statusPending
	c := m.client
	return m, func() tea.Msg {
		user, err := c.GetUser(context.Background(), id)
		return profileLoadedMsg{user: user, err: err}
	}
}

// own reports whether the shown profile belongs to the logged-in user.
func (m profileModel) own() bool {
	s := m.sessions.Read()
	return s.LoggedIn && s.ID == m.userID
}

func (m profileModel) Update(msg tea.Msg) (profileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		m.status = statusIdle
		if msg.err != nil {
			m.errMsg = apiErrMessage(msg.err, m.locales)
		} else {
			m.user = msg.user
		}
		return m, nil

	case profileSavedMsg:
		if msg.err != nil {
			m.status = statusError
			m.banner = apiErrMessage(msg.err, m.locales)
			return m, nil
		}
		m.status = statusIdle
		m.user = msg.user
		m.editing = false
		// Keep the session's display name in step with the server.
		s := m.sessions.Read()
		if s.LoggedIn && s.ID == msg.user.ID {
			s.Username = msg.user.Username
			m.sessions.Update(s) //nolint:errcheck // surfaced on next read
		}
		return m, nil

	case profileDeletedMsg:
		if msg.err != nil {
			// Deletion clears the session only on confirmed success.
			m.status = statusError
			m.banner = apiErrMessage(msg.err, m.locales)
			m.confirmDelete = false
			return m, nil
		}
		m.status = statusIdle
		m.sessions.Update(domain.LoggedOut()) //nolint:errcheck
		return m, nil

	case logoutDoneMsg:
		// Best-effort on the server side: local state clears regardless.
		m.status = statusIdle
		m.sessions.Update(domain.LoggedOut()) //nolint:errcheck
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m profileModel) updateKeys(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	key := msg.String()

	if m.confirmDelete {
		switch key {
		case "y", "enter":
			return m.deleteAccount()
		case "n", "esc":
			m.confirmDelete = false
		}
		return m, nil
	}

	if m.editing {
		switch key {
		case "enter":
			return m.save()
		case "esc":
			m.editing = false
		default:
			if isEditKey(key) {
				m.editValue = editRune(m.editValue, key)
				m.status = statusIdle
				m.banner = ""
			}
		}
		return m, nil
	}

	switch key {
	case "e":
		if m.own() && m.user != nil {
			m.editing = true
			m.editValue = m.user.Username
			m.notice = ""
		}
	case "d":
		if m.own() && m.user != nil && m.status != statusPending {
			m.confirmDelete = true
			m.notice = ""
		}
	case "x":
		if m.own() && m.status != statusPending {
			return m.logout()
		}
	case "c":
		if m.user != nil {
			if err := clipboard.WriteAll(m.user.Username); err == nil {
				m.notice = m.locales.T("copied")
			}
		}
	case "r":
		if m.errMsg != "" {
			return m.load(m.userID)
		}
	}
	return m, nil
}

func (m profileModel) save() (profileModel, tea.Cmd) {
	name := strings.TrimSpace(m.editValue)
	if name == "" || m.status == statusPending {
		return m, nil
	}
	m.status = statusPending
	id := m.userID
	c := m.client
	return m, func() tea.Msg {
		user, err := c.UpdateUser(context.Background(), id, name)
		return profileSavedMsg{user: user, err: err}
	}
}

func (m profileModel) deleteAccount() (profileModel, tea.Cmd) {
	m.status = statusPending
	m.confirmDelete = false
	id := m.userID
	c := m.client
	return m, func() tea.Msg {
		return profileDeletedMsg{err: c.DeleteUser(context.Background(), id)}
	}
}

func (m profileModel) logout() (profileModel, tea.Cmd) {
	m.status = statusPending
	c := m.client
	return m, func() tea.Msg {
		return logoutDoneMsg{err: c.LogOut(context.Background())}
	}
}

func (m profileModel) View() string {
	var b strings.Builder

	if m.status == statusPending && m.user == nil && m.errMsg == "" {
		b.WriteString(" " + dimStyle.Render(m.locales.T("loading")) + "\n")
		return b.String()
	}
	if m.errMsg != "" {
		b.WriteString(" " + errStyle.Render(m.errMsg) + "  " + helpEntry("r", m.locales.T("retry")) + "\n")
		return b.String()
	}
	if m.user == nil {
		return ""
	}

	b.WriteString(" " + titleStyle.Render(m.user.Username) + "  " + metaStyle.Render(fmt.Sprintf("#%d", m.user.ID)) + "\n")
	if m.user.Email != "" {
		b.WriteString(" " + dimStyle.Render(m.user.Email) + "\n")
	}
	b.WriteString("\n")

	switch {
	case m.confirmDelete:
		b.WriteString(" " + errStyle.Render(m.locales.T("deleteConfirm")) + "  " + helpEntry("y", "yes") + "  " + helpEntry("n", "no") + "\n")
	case m.editing:
		b.WriteString(" > " + selectedStyle.Render(label(m.locales.T("username"))) + ": " + m.editValue + "█\n")
	case m.status == statusPending:
		b.WriteString(" " + dimStyle.Render(m.locales.T("loading")) + "\n")
	case m.banner != "":
		b.WriteString(" " + errStyle.Render(m.banner) + "\n")
	case m.notice != "":
		b.WriteString(" " + noticeStyle.Render(m.notice) + "\n")
	}

	return b.String()
}

// helpKeys returns the help-bar entries for the profile view.
func (m profileModel) helpKeys() string {
	if m.editing {
		return helpEntry("enter", "save") + "  " + helpEntry("esc", "cancel")
	}
	if m.confirmDelete {
		return helpEntry("y/n", "confirm")
	}
	if m.own() {
		return helpEntry("e", m.locales.T("edit")) + "  " + helpEntry("d", m.locales.T("delete")) + "  " + helpEntry("x", m.locales.T("logout")) + "  " + helpEntry("c", "copy")
	}
	return helpEntry("c", "copy") + "  " + helpEntry("esc", "back")
}
