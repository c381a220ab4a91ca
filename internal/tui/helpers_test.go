package tui

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oyildirim/kimlik/internal/locale"
	"github.com/oyildirim/kimlik/internal/session"
	"github.com/oyildirim/kimlik/internal/store"
	"github.com/oyildirim/kimlik/pkg/client"
)

func newTestLocales(t *testing.T) *locale.Bundle {
	t.Helper()
	loc, err := locale.New("en")
	if err != nil {
		t.Fatalf("locale.New: %v", err)
	}
	return loc
}

func newTestSessions(t *testing.T) *session.Manager {
	t.Helper()
	st, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	m := session.NewManager(st)
	m.Initialize()
	return m
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *client.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return client.New(srv.URL, nil)
}
