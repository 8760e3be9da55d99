package theme

import (
	"fmt"
	"slices"
	"sync"
)

// Registry maps theme names to palettes. It is safe for concurrent use and
// never changes after construction.
type Registry struct {
	themes      map[string]Theme
	defaultName string
}

// NewRegistry builds a registry from themes. Later themes replace earlier
// ones with the same name. The default is [DefaultName] when present,
// otherwise the first theme.
func NewRegistry(themes ...Theme) (*Registry, error) {
	if len(themes) == 0 {
		return nil, fmt.Errorf("theme registry needs at least one theme")
	}
	r := &Registry{themes: make(map[string]Theme, len(themes))}
	for _, t := range themes {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		r.themes[t.Name] = t.withDefaults()
	}
	r.defaultName = themes[0].Name
	if _, ok := r.themes[DefaultName]; ok {
		r.defaultName = DefaultName
	}
	return r, nil
}

var builtin = sync.OnceValue(func() *Registry {
	r, err := NewRegistry(builtinThemes...)
	if err != nil {
		panic(err)
	}
	return r
})

// Builtin returns the registry of built-in themes.
func Builtin() *Registry { return builtin() }

// With returns a new registry holding r's themes plus extra. Extra themes
// override built-ins of the same name; r is unchanged.
func (r *Registry) With(extra ...Theme) (*Registry, error) {
	all := make([]Theme, 0, len(r.themes)+len(extra))
	for _, name := range r.Names() {
		all = append(all, r.themes[name])
	}
	all = append(all, extra...)
	next, err := NewRegistry(all...)
	if err != nil {
		return nil, err
	}
	next.defaultName = r.defaultName
	return next, nil
}

// Lookup returns the theme registered under name.
func (r *Registry) Lookup(name string) (Theme, bool) {
	t, ok := r.themes[name]
	return t, ok
}

// Get returns the theme registered under name, or the default theme.
func (r *Registry) Get(name string) Theme {
	if t, ok := r.themes[name]; ok {
		return t
	}
	return r.Default()
}

// Default returns the fallback theme.
func (r *Registry) Default() Theme {
	return r.themes[r.defaultName]
}

// Names returns all theme names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.themes))
	for name := range r.themes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Themes returns all themes sorted by name.
func (r *Registry) Themes() []Theme {
	out := make([]Theme, 0, len(r.themes))
	for _, name := range r.Names() {
		out = append(out, r.themes[name])
	}
	return out
}
