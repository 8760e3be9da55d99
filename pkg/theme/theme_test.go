package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin(t *testing.T) {
	r := Builtin()
	assert.Equal(t, []string{"amber", "crimson", "cyan", "emerald", "orange", "purple", "red", "slate"}, r.Names())
	assert.Equal(t, "orange", r.Default().Name)

	cyan, ok := r.Lookup("cyan")
	require.True(t, ok)
	assert.Equal(t, "#050f12", cyan.Background)
	assert.Equal(t, "#26c6da", cyan.Title)
	assert.Equal(t, defaultTrack, cyan.Track)
	assert.NotEmpty(t, cyan.Error)
}

func TestGetFallsBackToDefault(t *testing.T) {
	r := Builtin()
	_, ok := r.Lookup("pink")
	assert.False(t, ok)
	assert.Equal(t, "orange", r.Get("pink").Name)
	assert.Equal(t, "orange", r.Get("").Name)
}

func TestWith(t *testing.T) {
	base := Builtin()
	pink := Theme{Name: "pink", Background: "#000", Border: "#f0f", Title: "#f6c", Accent: "#fcf", Text: "#fff", Muted: "#999"}

	r, err := base.With(pink)
	require.NoError(t, err)
	assert.Contains(t, r.Names(), "pink")
	assert.Equal(t, "orange", r.Default().Name)

	_, ok := base.Lookup("pink")
	assert.False(t, ok, "With must not modify the receiver")

	override := pink
	override.Name = "cyan"
	r, err = base.With(override)
	require.NoError(t, err)
	assert.Equal(t, "#f6c", r.Get("cyan").Title)
}

func TestWithRejectsBadColors(t *testing.T) {
	bad := Theme{Name: "bad", Background: "black", Border: "#fff", Title: "#fff", Accent: "#fff", Text: "#fff", Muted: "#fff"}
	_, err := Builtin().With(bad)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	ok := Theme{Name: "x", Background: "#000", Border: "#111111", Title: "#abc", Accent: "#ABCDEF", Text: "#fff", Muted: "#999"}
	assert.NoError(t, ok.Validate())

	tests := map[string]func(*Theme){
		"empty name":     func(t *Theme) { t.Name = "" },
		"uppercase name": func(t *Theme) { t.Name = "Dark" },
		"short hex":      func(t *Theme) { t.Text = "#ff" },
		"bad track":      func(t *Theme) { t.Track = "grey" },
		"bad language":   func(t *Theme) { t.Languages = map[string]string{"Go": "blue"} },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			th := ok
			mutate(&th)
			assert.Error(t, th.Validate())
		})
	}
}

func TestLanguageColor(t *testing.T) {
	th := Builtin().Default()
	assert.Equal(t, "#00add8", th.LanguageColor("Go"))
	assert.Equal(t, FallbackLanguageColor, th.LanguageColor("Brainfork"))

	th.Languages = map[string]string{"Go": "#123456"}
	assert.Equal(t, "#123456", th.LanguageColor("Go"))
}

func TestNewRegistryEmpty(t *testing.T) {
	_, err := NewRegistry()
	assert.Error(t, err)
}
