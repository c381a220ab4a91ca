package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/oyildirim/kimlik/internal/config"
	"github.com/oyildirim/kimlik/internal/locale"
	"github.com/oyildirim/kimlik/internal/session"
	"github.com/oyildirim/kimlik/internal/store"
	"github.com/oyildirim/kimlik/internal/tui"
	"github.com/oyildirim/kimlik/pkg/client"
	"github.com/oyildirim/kimlik/pkg/domain"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// configDir returns ~/.kimlik.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".kimlik"), nil
}

func loadConfig() (*config.Config, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	if cfg.StateDir == "" {
		cfg.StateDir = filepath.Join(dir, "state")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run() error {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("kimlik " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "logout":
			return runLogout()
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.StateDir)
	if err != nil {
		return fmt.Errorf("open state dir: %w", err)
	}

	sessions := session.NewManager(st)
	sessions.Initialize()

	locales, err := locale.New(cfg.Language)
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}

	c := client.New(cfg.APIURL, client.HeaderDecorator(locales.Language, sessions.Authorization))

	app := tui.NewApp(c, sessions, locales)

	p := tea.NewProgram(app, tea.WithAltScreen())

	// Repaint on every session mutation, wherever it originates.
	unsubscribe := sessions.Subscribe(func(s domain.Session) {
		p.Send(tui.SessionChangedMsg{Session: s})
	})
	defer unsubscribe()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// runLogout clears the on-disk session state without starting the TUI.
func runLogout() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if _, err := os.Stat(cfg.StateDir); os.IsNotExist(err) {
		fmt.Println("Already logged out.")
		return nil
	}
	st, err := store.Open(cfg.StateDir)
	if err != nil {
		return fmt.Errorf("open state dir: %w", err)
	}
	if err := st.Clear(); err != nil {
		return fmt.Errorf("clear state: %w", err)
	}
	fmt.Println("Logged out.")
	return nil
}

func printHelp() {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#60a5fa")).
		Bold(true).
		Render("K I M L I K")

	tagline := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("A terminal front end for your user directory.")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"kimlik", "Start the interactive TUI"},
		{"kimlik logout", "Clear your local session"},
		{"kimlik --version", "Show version"},
		{"kimlik help", "You are here"},
	}

	fmt.Printf("\n  %s\n\n  %s\n\n  Commands:\n", title, tagline)
	for _, c := range commands {
		fmt.Printf("    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", c.cmd)), descStyle.Render(c.desc))
	}
	url := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("https://github.com/oyildirim/kimlik")
	fmt.Printf("\n  %s\n\n", url)
}
