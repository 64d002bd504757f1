package secret

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetGetClear(t *testing.T) {
	t.Setenv(KeyName, "")
	s := &Store{BasePath: t.TempDir()}

	if _, ok := s.Get(); ok {
		t.Fatalf("fresh store should have no key")
	}

	if err := s.Set("  sk-test-123  \n"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got, ok := s.Get()
	if !ok {
		t.Fatalf("key not found after set")
	}
	if got != "sk-test-123" {
		t.Fatalf("key not trimmed: %q", got)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, ok := s.Get(); ok {
		t.Fatalf("key survived clear")
	}
	// Clearing twice is fine.
	if err := s.Clear(); err != nil {
		t.Fatalf("second clear errored: %v", err)
	}
}

func TestEnvironmentWins(t *testing.T) {
	s := &Store{BasePath: t.TempDir()}
	if err := s.Set("sk-on-disk"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	t.Setenv(KeyName, "sk-from-env")
	got, ok := s.Get()
	if !ok {
		t.Fatalf("key not found")
	}
	if got != "sk-from-env" {
		t.Fatalf("environment should win, got %q", got)
	}
}

func TestSetRefusesEmptyKey(t *testing.T) {
	s := &Store{BasePath: t.TempDir()}
	if err := s.Set("   "); err == nil {
		t.Fatalf("expected an error for an empty key")
	}
}

func TestKeyFileMode(t *testing.T) {
	s := &Store{BasePath: t.TempDir()}
	if err := s.Set("sk-test"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(s.BasePath, KeyName))
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("key file should be private, got %v", info.Mode().Perm())
	}
}
