package settings

import (
	"testing"

	"tableflip.dev/dreem/pkg/store"
)

type testConfig struct {
	path string
}

func (c *testConfig) BasePath() string { return c.path }

func newPersistence(t *testing.T) store.Persistence {
	t.Helper()
	p, err := store.Load(&testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("failed to load persistence: %v", err)
	}
	return p
}

func TestParsePreference(t *testing.T) {
	for _, v := range []string{"light", "dark", "system"} {
		if _, err := ParsePreference(v); err != nil {
			t.Fatalf("%q rejected: %v", v, err)
		}
	}
	if _, err := ParsePreference("solarized"); err == nil {
		t.Fatalf("expected unknown theme rejected")
	}
}

func TestLoadThemeDefaultsToSystem(t *testing.T) {
	p := newPersistence(t)
	if got := LoadTheme(p); got != System {
		t.Fatalf("missing preference should read as system, got %s", got)
	}

	// Garbage on disk degrades the same way.
	if err := p.WriteRaw(store.NamespaceTheme, []byte("plaid")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if got := LoadTheme(p); got != System {
		t.Fatalf("unknown stored value should read as system, got %s", got)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	p := newPersistence(t)
	if err := SaveTheme(p, Dark); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if got := LoadTheme(p); got != Dark {
		t.Fatalf("roundtrip changed the preference: %s", got)
	}
}

func TestResolveConcreteChoicesPassThrough(t *testing.T) {
	if Resolve(Dark) != Dark {
		t.Fatalf("dark should resolve to itself")
	}
	if Resolve(Light) != Light {
		t.Fatalf("light should resolve to itself")
	}
	if got := Resolve(System); got != Light && got != Dark {
		t.Fatalf("system must resolve to a concrete choice, got %s", got)
	}
}
