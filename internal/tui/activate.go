package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/oyildirim/kimlik/internal/locale"
	"github.com/oyildirim/kimlik/pkg/client"
)

// activateDoneMsg carries the result of redeeming an activation token.
type activateDoneMsg struct {
	err error
}

type activateModel struct {
	client  *client.Client
	locales *locale.Bundle
	token   string
	status  apiStatus
}

func newActivateModel(c *client.Client, loc *locale.Bundle) activateModel {
	return activateModel{client: c, locales: loc}
}

func (m activateModel) Init() tea.Cmd {
	return nil
}

func (m activateModel) Update(msg tea.Msg) (activateModel, tea.Cmd) {
	switch msg := msg.(type) {
	case activateDoneMsg:
		if msg.err != nil {
			m.status = statusError
		} else {
			m.status = statusSuccess
		}
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "enter":
			return m.submit()
		default:
			if isEditKey(key) {
				m.token = editRune(m.token, key)
				m.status = statusIdle
			}
		}
	}
	return m, nil
}

func (m activateModel) submit() (activateModel, tea.Cmd) {
	if m.token == "" || m.status == statusPending {
		return m, nil
	}
	m.status = statusPending
	token := m.token
	c := m.client
	return m, func() tea.Msg {
		return activateDoneMsg{err: c.Activate(context.Background(), token)}
	}
}

func (m activateModel) View() string {
	var b strings.Builder

	b.WriteString(" " + titleStyle.Render(m.locales.T("activation")) + "\n\n")
	b.WriteString(" > " + selectedStyle.Render(label(m.locales.T("activationToken"))) + ": " + m.token + "█\n\n")

	switch m.status {
	case statusPending:
		b.WriteString(" " + dimStyle.Render(m.locales.T("loading")) + "\n")
	case statusSuccess:
		b.WriteString(" " + successStyle.Render(m.locales.T("activationSuccess")) + "\n")
	case statusError:
		b.WriteString(" " + errStyle.Render(m.locales.T("activationFail")) + "\n")
	default:
		if m.token == "" {
			b.WriteString(" " + inputPlaceholderStyle.Render(m.locales.T("submit")) + "\n")
		} else {
			b.WriteString(" " + accentStyle.Render(m.locales.T("submit")) + " " + dimStyle.Render("(enter)") + "\n")
		}
	}

	return b.String()
}
