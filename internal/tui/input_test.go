package tui

import (
	"strings"
	"testing"
)

func TestEditRuneAddCharacters(t *testing.T) {
	tests := []struct {
		name  string
		start string
		key   string
		want  string
	}{
		{"append to empty", "", "a", "a"},
		{"append letter", "use", "r", "user"},
		{"append digit", "user", "5", "user5"},
		{"append at sign", "user5", "@", "user5@"},
		{"append turkish letter", "k", "ı", "kı"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := editRune(tc.start, tc.key)
			if got != tc.want {
				t.Errorf("editRune(%q, %q) = %q, want %q", tc.start, tc.key, got, tc.want)
			}
		})
	}
}

func TestEditRuneBackspace(t *testing.T) {
	tests := []struct {
		name  string
		start string
		want  string
	}{
		{"backspace on single char", "a", ""},
		{"backspace on longer string", "user5", "user"},
		{"backspace on empty does nothing", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := editRune(tc.start, "backspace")
			if got != tc.want {
				t.Errorf("editRune(%q, 'backspace') = %q, want %q", tc.start, got, tc.want)
			}
		})
	}
}

func TestEditRuneBackspaceMultibyte(t *testing.T) {
	// Backspace removes a full rune, not a single byte.
	got := editRune("kimlık", "backspace")
	if got != "kimlı" {
		t.Errorf("editRune(multi-byte, backspace) = %q, want %q", got, "kimlı")
	}
}

func TestEditRuneIgnoresNamedKeys(t *testing.T) {
	for _, key := range []string{"enter", "esc", "tab", "left", "ctrl+s"} {
		if got := editRune("text", key); got != "text" {
			t.Errorf("editRune(%q, %q) = %q, want unchanged", "text", key, got)
		}
	}
}

func TestEditRuneClampsLength(t *testing.T) {
	long := strings.Repeat("x", maxInputLen)
	if got := editRune(long, "y"); got != long {
		t.Error("expected input at the limit to stay unchanged")
	}
}

func TestMaskRunesCountsRunes(t *testing.T) {
	if got := maskRunes("şifre"); got != "*****" {
		t.Errorf("maskRunes = %q, want five asterisks", got)
	}
}

func TestTruncateToHeight(t *testing.T) {
	s := "a\nb\nc\nd"
	if got := truncateToHeight(s, 2); got != "a\nb\n" {
		t.Errorf("truncateToHeight = %q, want %q", got, "a\nb\n")
	}
	if got := truncateToHeight(s, 0); got != s {
		t.Errorf("expected no truncation for non-positive height, got %q", got)
	}
	if got := truncateToHeight(s, 10); got != s {
		t.Errorf("expected no truncation when it fits, got %q", got)
	}
}
