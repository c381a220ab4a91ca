package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/oyildirim/kimlik/internal/locale"
	"github.com/oyildirim/kimlik/internal/pager"
	"github.com/oyildirim/kimlik/pkg/client"
)

// usersPageMsg carries a finished page fetch back to the list.
type usersPageMsg struct {
	res pager.Result
}

// showProfileMsg asks the app to open the profile view for a user.
type showProfileMsg struct {
	id int64
}

// usersModel is the paginated user listing.
type usersModel struct {
	client  *client.Client
	locales *locale.Bundle
	pager   *pager.Controller
	cursor  int
	width   int
	height  int
}

func newUsersModel(c *client.Client, loc *locale.Bundle) usersModel {
	m := usersModel{client: c, locales: loc}
	m.pager = pager.New(m.fetchPage, pager.DefaultPageSize)
	return m
}

func (m usersModel) fetchPage(ctx context.Context, index, size int) (pager.Page, error) {
	up, err := m.client.ListUsers(ctx, index, size)
	if err != nil {
		return pager.Page{}, err
	}
	items := make([]pager.Entry, 0, len(up.Content))
	for _, u := range up.Content {
		items = append(items, pager.Entry{ID: u.ID, DisplayName: u.Username})
	}
	return pager.Page{Items: items, Index: up.Page, Size: up.Size, TotalPages: up.TotalPages}, nil
}

func (m usersModel) Init() tea.Cmd {
	return m.load(0)
}

func (m usersModel) load(index int) tea.Cmd {
	run, ok := m.pager.Start(index)
	if !ok {
		return nil
	}
	return func() tea.Msg {
		return usersPageMsg{res: run(context.Background())}
	}
}

func (m usersModel) Update(msg tea.Msg) (usersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case usersPageMsg:
		m.pager.Finish(msg.res)
		if n := len(m.pager.Page().Items); m.cursor >= n && n > 0 {
			m.cursor = n - 1
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.pager.Page().Items)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "l", "right", "n":
			if run, ok := m.pager.Next(); ok {
				m.cursor = 0
				return m, func() tea.Msg { return usersPageMsg{res: run(context.Background())} }
			}
		case "h", "left", "p":
			if run, ok := m.pager.Previous(); ok {
				m.cursor = 0
				return m, func() tea.Msg { return usersPageMsg{res: run(context.Background())} }
			}
		case "r":
			if m.pager.Err() != nil {
				return m, m.load(m.pager.Page().Index)
			}
		case "enter":
			items := m.pager.Page().Items
			if m.cursor < len(items) {
				id := items[m.cursor].ID
				return m, func() tea.Msg { return showProfileMsg{id: id} }
			}
		}
	}
	return m, nil
}

func (m usersModel) View() string {
	var b strings.Builder

	b.WriteString(" " + titleStyle.Render(m.locales.T("users")) + "\n\n")

	if m.pager.Pending() && len(m.pager.Page().Items) == 0 {
		b.WriteString(" " + dimStyle.Render(m.locales.T("loading")) + "\n")
		return b.String()
	}

	for i, e := range m.pager.Page().Items {
		name := truncStr(e.DisplayName, 40)
		line := fmt.Sprintf("  %s  %s", metaStyle.Render(fmt.Sprintf("#%-4d", e.ID)), normalStyle.Render(name))
		if i == m.cursor {
			line = selectedRowBg.Render(fmt.Sprintf("> %s  %s", metaStyle.Render(fmt.Sprintf("#%-4d", e.ID)), selectedStyle.Render(name)))
		}
		b.WriteString(" " + line + "\n")
	}

	b.WriteString("\n")

	if m.pager.Pending() {
		b.WriteString(" " + dimStyle.Render(m.locales.T("loading")) + "\n")
	} else if err := m.pager.Err(); err != nil {
		b.WriteString(" " + errStyle.Render(m.locales.T("genericError")) + "  " + helpEntry("r", m.locales.T("retry")) + "\n")
	} else {
		// Boundary affordances derive from controller state.
		var footer []string
		if m.pager.CanPrevious() {
			footer = append(footer, accentStyle.Render(m.locales.T("previousPage")))
		}
		if m.pager.CanNext() {
			footer = append(footer, accentStyle.Render(m.locales.T("nextPage")))
		}
		if len(footer) > 0 {
			b.WriteString(" " + strings.Join(footer, "   ") + "\n")
		}
	}

	return b.String()
}

// helpKeys returns the help-bar entries for the list view.
func (m usersModel) helpKeys() string {
	return helpEntry("j/k", "nav") + "  " + helpEntry("h/l", "page") + "  " + helpEntry("enter", "open")
}
