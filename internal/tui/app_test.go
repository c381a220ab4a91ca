package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/oyildirim/kimlik/pkg/client"
	"github.com/oyildirim/kimlik/pkg/domain"
)

func newTestApp(t *testing.T) App {
	t.Helper()
	a := NewApp(nil, newTestSessions(t), newTestLocales(t))
	a.width = 80
	a.height = 24
	return a
}

func press(t *testing.T, a App, key tea.KeyMsg) App {
	t.Helper()
	model, _ := a.Update(key)
	return model.(App)
}

func keyRune(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAppTabsDependOnLoginState(t *testing.T) {
	a := newTestApp(t)

	view := a.View()
	for _, want := range []string{"Users", "Login", "Sign Up", "Activation"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected logged-out tab %q, got:\n%s", want, view)
		}
	}

	a.sessions.Update(domain.Session{LoggedIn: true, ID: 5, Username: "user5"}) //nolint:errcheck
	view = a.View()
	if !strings.Contains(view, "My Profile") {
		t.Errorf("expected profile tab when logged in, got:\n%s", view)
	}
	if strings.Contains(view, "Sign Up") {
		t.Errorf("did not expect sign-up tab when logged in, got:\n%s", view)
	}
}

func TestAppNumberKeysSwitchViews(t *testing.T) {
	a := newTestApp(t)

	a = press(t, a, keyRune("2"))
	if a.view != viewLogin {
		t.Fatalf("expected login view after 2, got %d", a.view)
	}
	a = press(t, a, keyRune("3"))
	if a.view != viewLogin {
		t.Error("expected number keys ignored while a form is focused")
	}

	a = press(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.view != viewUsers {
		t.Fatalf("expected esc to return to the listing, got %d", a.view)
	}
	a = press(t, a, keyRune("4"))
	if a.view != viewActivate {
		t.Fatalf("expected activation view after 4, got %d", a.view)
	}
}

func TestAppProfileTabUsesOwnID(t *testing.T) {
	a := newTestApp(t)
	a.sessions.Update(domain.Session{LoggedIn: true, ID: 5, Username: "user5"}) //nolint:errcheck

	model, cmd := a.Update(keyRune("2"))
	a = model.(App)
	if a.view != viewProfile {
		t.Fatalf("expected profile view, got %d", a.view)
	}
	if a.profile.userID != 5 {
		t.Errorf("expected own profile id 5, got %d", a.profile.userID)
	}
	if cmd == nil {
		t.Error("expected a profile fetch command")
	}
}

func TestAppLanguageToggle(t *testing.T) {
	a := newTestApp(t)

	a = press(t, a, tea.KeyMsg{Type: tea.KeyCtrlL})
	if got := a.locales.Language(); got != "tr" {
		t.Fatalf("expected language tr after toggle, got %q", got)
	}
	if view := a.View(); !strings.Contains(view, "TR") {
		t.Errorf("expected TR indicator in header, got:\n%s", view)
	}

	// The toggle must also work while a form is focused.
	a = press(t, a, keyRune("2"))
	a = press(t, a, tea.KeyMsg{Type: tea.KeyCtrlL})
	if got := a.locales.Language(); got != "en" {
		t.Errorf("expected language en after second toggle, got %q", got)
	}
}

func TestAppLoginSuccessSwitchesToListing(t *testing.T) {
	a := newTestApp(t)
	a = press(t, a, keyRune("2"))

	model, cmd := a.Update(loginDoneMsg{
		user: &domain.User{ID: 5, Username: "user5"},
		auth: client.BasicAuth("user5@mail.com", "P4ssword"),
	})
	a = model.(App)

	if a.view != viewUsers {
		t.Errorf("expected listing after successful login, got %d", a.view)
	}
	if cmd == nil {
		t.Error("expected listing refresh command")
	}
	if !a.sessions.Read().LoggedIn {
		t.Error("expected session logged in")
	}
}

func TestAppDeleteSuccessReturnsToListing(t *testing.T) {
	a := newTestApp(t)
	a.sessions.Update(domain.Session{LoggedIn: true, ID: 5, Username: "user5"}) //nolint:errcheck
	a.view = viewProfile
	a.profile.userID = 5

	model, _ := a.Update(profileDeletedMsg{})
	a = model.(App)

	if a.view != viewUsers {
		t.Errorf("expected listing after account deletion, got %d", a.view)
	}
	if a.sessions.Read().LoggedIn {
		t.Error("expected session cleared after deletion")
	}
}

func TestAppExternalLogoutLeavesProfileView(t *testing.T) {
	a := newTestApp(t)
	a.view = viewProfile

	model, _ := a.Update(SessionChangedMsg{Session: domain.LoggedOut()})
	a = model.(App)

	if a.view != viewUsers {
		t.Errorf("expected listing after external logout, got %d", a.view)
	}
}

func TestAppHelpOverlay(t *testing.T) {
	a := newTestApp(t)

	a = press(t, a, keyRune("?"))
	if !a.helpOpen {
		t.Fatal("expected help overlay to open")
	}
	if view := a.View(); !strings.Contains(view, "Commands") {
		t.Errorf("expected command list in help overlay, got:\n%s", view)
	}

	a = press(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.helpOpen {
		t.Error("expected esc to close the help overlay")
	}
}

func TestAppQuitKeys(t *testing.T) {
	a := newTestApp(t)

	if _, cmd := a.Update(keyRune("q")); cmd == nil {
		t.Error("expected quit command from q")
	}

	// ctrl+c quits even while a form is focused.
	a = press(t, a, keyRune("2"))
	if _, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC}); cmd == nil {
		t.Error("expected quit command from ctrl+c")
	}
}
