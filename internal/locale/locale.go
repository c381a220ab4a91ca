// Package locale is the key-to-string lookup service for the UI. The
// translation tables ship embedded; English is the fallback.
package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"golang.org/x/text/language"
)

//go:embed languages/*.json
var languageFS embed.FS

// supported lists the shipped languages; the first entry is the fallback.
var supported = []language.Tag{language.English, language.Turkish}

// Bundle resolves translation keys for the active language. Language may be
// read from request-decorator goroutines while the UI switches it, hence
// the lock.
type Bundle struct {
	mu      sync.RWMutex
	active  language.Tag
	tables  map[string]map[string]string
	matcher language.Matcher
}

// New loads the embedded tables and activates the language closest to code
// (so "tr-TR" resolves to "tr"). An unknown code falls back to English.
func New(code string) (*Bundle, error) {
	b := &Bundle{
		tables:  make(map[string]map[string]string),
		matcher: language.NewMatcher(supported),
	}
	for _, tag := range supported {
		name := tag.String()
		data, err := languageFS.ReadFile("languages/" + name + ".json")
		if err != nil {
			return nil, fmt.Errorf("read %s table: %w", name, err)
		}
		table := make(map[string]string)
		if err := json.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("parse %s table: %w", name, err)
		}
		b.tables[name] = table
	}
	b.SetLanguage(code)
	return b, nil
}

// T returns the translation for key in the active language, falling back to
// English and then to the key itself.
func (b *Bundle) T(key string) string {
	b.mu.RLock()
	active := b.active.String()
	b.mu.RUnlock()

	if s, ok := b.tables[active][key]; ok {
		return s
	}
	if s, ok := b.tables[supported[0].String()][key]; ok {
		return s
	}
	return key
}

// SetLanguage switches the active language to the supported tag closest to
// code.
func (b *Bundle) SetLanguage(code string) {
	tag, _ := language.MatchStrings(b.matcher, code)
	base, _ := tag.Base()
	matched, err := language.Parse(base.String())
	if err != nil {
		matched = supported[0]
	}

	b.mu.Lock()
	b.active = matched
	b.mu.Unlock()
}

// Language returns the active language code, e.g. "en" or "tr". This is the
// value stamped into Accept-Language on every request.
func (b *Bundle) Language() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.active.String()
}

// Toggle cycles to the next supported language and returns the new code.
func (b *Bundle) Toggle() string {
	b.mu.Lock()
	for i, tag := range supported {
		if tag == b.active {
			b.active = supported[(i+1)%len(supported)]
			break
		}
	}
	code := b.active.String()
	b.mu.Unlock()
	return code
}
