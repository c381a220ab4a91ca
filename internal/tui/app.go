package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/oyildirim/kimlik/internal/browser"
	"github.com/oyildirim/kimlik/internal/locale"
	"github.com/oyildirim/kimlik/internal/session"
	"github.com/oyildirim/kimlik/pkg/client"
	"github.com/oyildirim/kimlik/pkg/domain"
)

type view int

const (
	viewUsers view = iota
	viewLogin
	viewSignup
	viewActivate
	viewProfile
)

// SessionChangedMsg is delivered whenever the session manager notifies a
// change. The entry point wires Manager.Subscribe to program.Send so the
// whole UI re-renders on every session mutation.
type SessionChangedMsg struct {
	Session domain.Session
}

// App is the root Bubbletea model.
type App struct {
	client   *client.Client
	sessions *session.Manager
	locales  *locale.Bundle

	view     view
	users    usersModel
	login    loginModel
	signup   signupModel
	activate activateModel
	profile  profileModel

	helpOpen   bool
	helpCursor int
	width      int
	height     int
	frame      int // logo shimmer animation frame
}

// NewApp creates the TUI application.
func NewApp(c *client.Client, sessions *session.Manager, locales *locale.Bundle) App {
	return App{
		client:   c,
		sessions: sessions,
		locales:  locales,
		users:    newUsersModel(c, locales),
		login:    newLoginModel(c, sessions, locales),
		signup:   newSignupModel(c, locales),
		activate: newActivateModel(c, locales),
		profile:  newProfileModel(c, sessions, locales),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.users.Init(), shimmerTickCmd())
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + help(1) = 4 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 4}
		a.users, _ = a.users.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case SessionChangedMsg:
		if !msg.Session.LoggedIn && a.view == viewProfile {
			a.view = viewUsers
			return a, a.users.Init()
		}
		return a, nil

	case showProfileMsg:
		a.view = viewProfile
		var cmd tea.Cmd
		a.profile, cmd = a.profile.load(msg.id)
		return a, cmd

	case showActivateMsg:
		a.view = viewActivate
		return a, nil

	// Flow results go to their owning model regardless of the active view;
	// a slow response must not get lost to a tab switch.
	case usersPageMsg:
		var cmd tea.Cmd
		a.users, cmd = a.users.Update(msg)
		return a, cmd

	case loginDoneMsg:
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		if msg.err == nil {
			a.view = viewUsers
			return a, tea.Batch(cmd, a.users.Init())
		}
		return a, cmd

	case signUpDoneMsg:
		var cmd tea.Cmd
		a.signup, cmd = a.signup.Update(msg)
		return a, cmd

	case activateDoneMsg:
		var cmd tea.Cmd
		a.activate, cmd = a.activate.Update(msg)
		return a, cmd

	case profileLoadedMsg, profileSavedMsg:
		var cmd tea.Cmd
		a.profile, cmd = a.profile.Update(msg)
		return a, cmd

	case profileDeletedMsg:
		var cmd tea.Cmd
		a.profile, cmd = a.profile.Update(msg)
		if msg.err == nil {
			a.view = viewUsers
			return a, tea.Batch(cmd, a.users.Init())
		}
		return a, cmd

	case logoutDoneMsg:
		var cmd tea.Cmd
		a.profile, cmd = a.profile.Update(msg)
		a.view = viewUsers
		return a, tea.Batch(cmd, a.users.Init())

	case tea.KeyMsg:
		return a.updateKeys(msg)
	}

	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Help overlay captures all keys when open.
	if a.helpOpen {
		switch key {
		case "?", "esc":
			a.helpOpen = false
		case "q", "ctrl+c":
			return a, tea.Quit
		case "j", "down":
			if a.helpCursor < len(helpItems)-1 {
				a.helpCursor++
			}
		case "k", "up":
			if a.helpCursor > 0 {
				a.helpCursor--
			}
		case "enter":
			item := helpItems[a.helpCursor]
			if item.url != "" {
				browser.Open(item.url) //nolint:errcheck // best-effort browser open
			}
		}
		return a, nil
	}

	// Keys that work everywhere, forms included.
	switch key {
	case "ctrl+c":
		return a, tea.Quit
	case "ctrl+l":
		a.locales.Toggle()
		return a, nil
	}

	if !a.isEditing() {
		switch key {
		case "q":
			return a, tea.Quit
		case "?":
			a.helpOpen = true
			a.helpCursor = 0
			return a, nil
		case "1":
			if a.view != viewUsers {
				a.view = viewUsers
				return a, a.users.Init()
			}
			return a, nil
		case "2":
			if s := a.sessions.Read(); s.LoggedIn {
				if a.view != viewProfile {
					a.view = viewProfile
					var cmd tea.Cmd
					a.profile, cmd = a.profile.load(s.ID)
					return a, cmd
				}
			} else if a.view != viewLogin {
				a.view = viewLogin
				a.login = newLoginModel(a.client, a.sessions, a.locales)
				return a, nil
			}
			return a, nil
		case "3":
			if !a.sessions.Read().LoggedIn && a.view != viewSignup {
				a.view = viewSignup
				a.signup = newSignupModel(a.client, a.locales)
				return a, nil
			}
			return a, nil
		case "4":
			if !a.sessions.Read().LoggedIn && a.view != viewActivate {
				a.view = viewActivate
				a.activate = newActivateModel(a.client, a.locales)
				return a, nil
			}
			return a, nil
		case "esc":
			if a.view != viewUsers {
				a.view = viewUsers
				return a, a.users.Init()
			}
			return a, nil
		}
	} else if key == "esc" && a.view != viewProfile {
		// Leave a form with esc; the profile view handles esc itself while
		// editing or confirming.
		a.view = viewUsers
		return a, a.users.Init()
	}

	var cmd tea.Cmd
	switch a.view {
	case viewUsers:
		a.users, cmd = a.users.Update(msg)
	case viewLogin:
		a.login, cmd = a.login.Update(msg)
	case viewSignup:
		a.signup, cmd = a.signup.Update(msg)
	case viewActivate:
		a.activate, cmd = a.activate.Update(msg)
	case viewProfile:
		a.profile, cmd = a.profile.Update(msg)
	}
	return a, cmd
}

func (a App) isEditing() bool {
	switch a.view {
	case viewLogin, viewActivate:
		return true
	case viewSignup:
		return !a.signup.done
	case viewProfile:
		return a.profile.editing || a.profile.confirmDelete
	}
	return false
}

// tab is one entry of the tab bar.
type tab struct {
	key  string
	name string
	v    view
}

// tabs returns the tab entries derived from the session state.
func (a App) tabs() []tab {
	if a.sessions.Read().LoggedIn {
		return []tab{
			{"1", a.locales.T("users"), viewUsers},
			{"2", a.locales.T("myProfile"), viewProfile},
		}
	}
	return []tab{
		{"1", a.locales.T("users"), viewUsers},
		{"2", a.locales.T("login"), viewLogin},
		{"3", a.locales.T("signUp"), viewSignup},
		{"4", a.locales.T("activation"), viewActivate},
	}
}

func (a App) View() string {
	// Header: centered shimmer logo plus a session line.
	logo := renderShimmerLogo(a.frame)

	var statusLine string
	if s := a.sessions.Read(); s.LoggedIn {
		statusLine = metaStyle.Render(fmt.Sprintf("@%s . #%d . %s", s.Username, s.ID, strings.ToUpper(a.locales.Language())))
	} else {
		statusLine = metaStyle.Render(strings.ToUpper(a.locales.Language()) + " . ctrl+l")
	}

	header := centerLine(logo, a.width) + "\n" + centerLine(statusLine, a.width)

	// Tab bar: equal-width columns spread across the terminal.
	tabs := a.tabs()
	colWidth := 20
	if len(tabs) > 0 && a.width > 0 {
		colWidth = a.width / len(tabs)
	}
	var tabBar strings.Builder
	for _, t := range tabs {
		var tabLabel string
		if t.v == a.view {
			tabLabel = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			tabLabel = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		labelWidth := lipgloss.Width(tabLabel)
		leftPad := (colWidth - labelWidth) / 2
		if leftPad < 0 {
			leftPad = 0
		}
		rightPad := colWidth - labelWidth - leftPad
		if rightPad < 0 {
			rightPad = 0
		}
		tabBar.WriteString(strings.Repeat(" ", leftPad) + tabLabel + strings.Repeat(" ", rightPad))
	}

	// Body and help bar.
	var body, help string
	switch a.view {
	case viewUsers:
		body = a.users.View()
		help = " " + a.users.helpKeys() + "  " + helpEntry("?", "help") + "  " + helpEntry("q", "quit")
	case viewLogin:
		body = a.login.View()
		help = " " + helpEntry("tab", "next") + "  " + helpEntry("enter", "submit") + "  " + helpEntry("esc", "back")
	case viewSignup:
		body = a.signup.View()
		help = " " + helpEntry("tab", "next") + "  " + helpEntry("enter", "submit") + "  " + helpEntry("esc", "back")
	case viewActivate:
		body = a.activate.View()
		help = " " + helpEntry("enter", "submit") + "  " + helpEntry("esc", "back")
	case viewProfile:
		body = a.profile.View()
		help = " " + a.profile.helpKeys()
	}

	if a.helpOpen {
		body = helpView(a.helpCursor)
		help = " " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("esc", "close")
	}

	// header(2) + tabs(1) + help(1) = 4 chrome lines around the body
	body = strings.TrimRight(truncateToHeight(body, a.height-4), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, tabBar.String(), body, help)
}

// centerLine pads s to the center of a width-wide terminal.
func centerLine(s string, width int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}
