package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oyildirim/kimlik/internal/store"
	"github.com/oyildirim/kimlik/pkg/domain"
)

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	dir := t.TempDir()
	st, err := store.Open(dir)
	if err != nil {
		t.Fatalf("store.Open() error: %v", err)
	}
	return NewManager(st), dir
}

func TestInitializeWithoutPersistedKey(t *testing.T) {
	m, _ := newTestManager(t)

	s := m.Initialize()
	if s.LoggedIn {
		t.Error("LoggedIn = true, want false")
	}
	if s.ID != 0 || s.Username != "" || s.AuthHeader != "" {
		t.Errorf("expected zero session, got %+v", s)
	}
}

func TestUpdateThenInitializeRoundTrip(t *testing.T) {
	m, dir := newTestManager(t)
	m.Initialize()

	want := domain.Session{
		LoggedIn:   true,
		ID:         5,
		Username:   "user5",
		AuthHeader: "Basic dXNlcjVAbWFpbC5jb206UDRzc3dvcmQ=",
	}
	if err := m.Update(want); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	// Simulate a process restart: a fresh manager over the same directory.
	st, err := store.Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	got := NewManager(st).Initialize()
	if got != want {
		t.Errorf("Initialize() after reload = %+v, want %+v", got, want)
	}
}

func TestInitializeMalformedValueDegradesToRaw(t *testing.T) {
	m, dir := newTestManager(t)

	if err := os.WriteFile(filepath.Join(dir, "auth.json"), []byte("{{corrupt"), 0600); err != nil {
		t.Fatal(err)
	}

	s := m.Initialize()
	if s.LoggedIn {
		t.Error("LoggedIn = true for corrupt value, want false")
	}
	if s.Raw != "{{corrupt" {
		t.Errorf("Raw = %q, want %q", s.Raw, "{{corrupt")
	}
}

func TestReadReturnsCurrentValueWithoutIO(t *testing.T) {
	m, _ := newTestManager(t)
	m.Initialize()

	s := domain.Session{LoggedIn: true, ID: 7, Username: "u7", AuthHeader: "Basic abc"}
	if err := m.Update(s); err != nil {
		t.Fatal(err)
	}
	if got := m.Read(); got != s {
		t.Errorf("Read() = %+v, want %+v", got, s)
	}
}

func TestSubscribeNotifiesOnUpdate(t *testing.T) {
	m, _ := newTestManager(t)
	m.Initialize()

	var notified []domain.Session
	cancel := m.Subscribe(func(s domain.Session) {
		notified = append(notified, s)
	})

	s := domain.Session{LoggedIn: true, ID: 1, AuthHeader: "Basic x"}
	if err := m.Update(s); err != nil {
		t.Fatal(err)
	}
	if len(notified) != 1 || notified[0] != s {
		t.Fatalf("notified = %+v, want one update %+v", notified, s)
	}

	cancel()
	if err := m.Update(domain.LoggedOut()); err != nil {
		t.Fatal(err)
	}
	if len(notified) != 1 {
		t.Errorf("subscriber ran after cancel, notified %d times", len(notified))
	}
}

func TestAuthorizationEmptyWhenLoggedOut(t *testing.T) {
	m, _ := newTestManager(t)
	m.Initialize()

	if got := m.Authorization(); got != "" {
		t.Errorf("Authorization() = %q for logged-out session, want empty", got)
	}

	// A credential left over in the struct must not leak once logged out.
	if err := m.Update(domain.Session{LoggedIn: false, AuthHeader: "Basic stale"}); err != nil {
		t.Fatal(err)
	}
	if got := m.Authorization(); got != "" {
		t.Errorf("Authorization() = %q, want empty while LoggedIn is false", got)
	}
}
