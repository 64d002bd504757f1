package settings

import (
	"fmt"

	"github.com/muesli/termenv"

	"tableflip.dev/dreem/pkg/store"
)

// Preference is the stored theme choice.
type Preference string

const (
	Light  Preference = "light"
	Dark   Preference = "dark"
	System Preference = "system"
)

// ParsePreference validates user input.
func ParsePreference(v string) (Preference, error) {
	switch Preference(v) {
	case Light, Dark, System:
		return Preference(v), nil
	}
	return "", fmt.Errorf("settings: unknown theme %q, want light, dark, or system", v)
}

// LoadTheme reads the stored preference. Anything missing or unrecognized
// degrades to System, never to an error.
func LoadTheme(p store.Persistence) Preference {
	raw, err := p.ReadRaw(store.NamespaceTheme)
	if err != nil {
		return System
	}
	switch Preference(string(raw)) {
	case Light:
		return Light
	case Dark:
		return Dark
	}
	return System
}

// SaveTheme stores the preference.
func SaveTheme(p store.Persistence, pref Preference) error {
	return p.WriteRaw(store.NamespaceTheme, []byte(pref))
}

// Resolve turns System into a concrete choice using the terminal background.
func Resolve(pref Preference) Preference {
	if pref != System {
		return pref
	}
	if termenv.HasDarkBackground() {
		return Dark
	}
	return Light
}
