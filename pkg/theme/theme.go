// Package theme holds the color palettes a card can be rendered with.
//
// Built-in palettes are registered in [Builtin]. A [Registry] is immutable:
// [Registry.With] returns a new registry with extra or overriding themes,
// which is how palettes from the config file are added.
//
//	r := theme.Builtin()
//	t := r.Get("cyan")       // falls back to the default theme on a miss
//	_, ok := r.Lookup("pink") // false
package theme

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultName is the theme used when a name is missing or unknown.
const DefaultName = "orange"

// FallbackLanguageColor is used for languages without a known color.
const FallbackLanguageColor = "#586069"

// Theme is a named set of card colors.
type Theme struct {
	Name       string            `json:"name" toml:"name" yaml:"name"`
	Background string            `json:"background" toml:"background" yaml:"background"`
	Border     string            `json:"border" toml:"border" yaml:"border"`
	Title      string            `json:"title" toml:"title" yaml:"title"`
	Accent     string            `json:"accent" toml:"accent" yaml:"accent"`
	Text       string            `json:"text" toml:"text" yaml:"text"`
	Muted      string            `json:"muted" toml:"muted" yaml:"muted"`
	Track      string            `json:"track,omitempty" toml:"track" yaml:"track,omitempty"`
	Error      string            `json:"error,omitempty" toml:"error" yaml:"error,omitempty"`
	Languages  map[string]string `json:"languages,omitempty" toml:"languages" yaml:"languages,omitempty"`
}

// LanguageColor returns the theme's color for lang, then the shared GitHub
// color, then [FallbackLanguageColor].
func (t Theme) LanguageColor(lang string) string {
	if c, ok := t.Languages[lang]; ok {
		return c
	}
	if c, ok := languageColors[lang]; ok {
		return c
	}
	return FallbackLanguageColor
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// IsHexColor reports whether s is #rgb or #rrggbb.
func IsHexColor(s string) bool { return hexColor.MatchString(s) }

// Validate checks the name and that every color is a hex color.
// Track and Error may be empty; they are filled from defaults.
func (t Theme) Validate() error {
	if t.Name == "" || strings.ToLower(t.Name) != t.Name {
		return fmt.Errorf("theme name %q must be non-empty lowercase", t.Name)
	}
	required := []struct{ field, value string }{
		{"background", t.Background},
		{"border", t.Border},
		{"title", t.Title},
		{"accent", t.Accent},
		{"text", t.Text},
		{"muted", t.Muted},
	}
	for _, c := range required {
		if !IsHexColor(c.value) {
			return fmt.Errorf("theme %s: %s color %q is not #rgb or #rrggbb", t.Name, c.field, c.value)
		}
	}
	for field, value := range map[string]string{"track": t.Track, "error": t.Error} {
		if value != "" && !IsHexColor(value) {
			return fmt.Errorf("theme %s: %s color %q is not #rgb or #rrggbb", t.Name, field, value)
		}
	}
	for lang, c := range t.Languages {
		if !IsHexColor(c) {
			return fmt.Errorf("theme %s: language %s color %q is not #rgb or #rrggbb", t.Name, lang, c)
		}
	}
	return nil
}

func (t Theme) withDefaults() Theme {
	if t.Track == "" {
		t.Track = defaultTrack
	}
	if t.Error == "" {
		t.Error = defaultError
	}
	return t
}
