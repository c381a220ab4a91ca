package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("KIMLIK_API_URL", "")
	t.Setenv("KIMLIK_LANG", "")
	t.Setenv("KIMLIK_STATE_DIR", "")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.APIURL != "http://localhost:8080" {
		t.Errorf("unexpected default api url %q", cfg.APIURL)
	}
	if cfg.Language != "en" {
		t.Errorf("unexpected default language %q", cfg.Language)
	}
	if want := filepath.Join(home, ".kimlik", "state"); cfg.StateDir != want {
		t.Errorf("expected state dir %q, got %q", want, cfg.StateDir)
	}
}

func TestLoadConfigReadsFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("KIMLIK_API_URL", "")
	t.Setenv("KIMLIK_LANG", "")
	t.Setenv("KIMLIK_STATE_DIR", "")

	dir := filepath.Join(home, ".kimlik")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := "api_url: https://id.example.com\nlanguage: tr\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.APIURL != "https://id.example.com" {
		t.Errorf("unexpected api url %q", cfg.APIURL)
	}
	if cfg.Language != "tr" {
		t.Errorf("unexpected language %q", cfg.Language)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("KIMLIK_API_URL", "https://override.example.com")
	t.Setenv("KIMLIK_LANG", "")
	t.Setenv("KIMLIK_STATE_DIR", "")

	dir := filepath.Join(home, ".kimlik")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("api_url: https://id.example.com\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.APIURL != "https://override.example.com" {
		t.Errorf("expected env override to win, got %q", cfg.APIURL)
	}
}
