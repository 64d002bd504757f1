package secret

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// KeyName is the credential slot for the interpretation service. The name is
// fixed for compatibility with earlier releases.
const KeyName = "OPENAI_API_KEY"

// Store keeps the API credential in a mode-0600 file beside the journal
// database. The environment variable of the same name always wins, so keys
// can live in the shell or a .env instead of on disk.
type Store struct {
	BasePath string
}

func (s *Store) path() string {
	return filepath.Join(s.BasePath, KeyName)
}

// Get returns the credential, or ok=false when none is configured anywhere.
func (s *Store) Get() (string, bool) {
	if env := strings.TrimSpace(os.Getenv(KeyName)); env != "" {
		return env, true
	}
	data, err := os.ReadFile(s.path())
	if err != nil {
		return "", false
	}
	key := strings.TrimSpace(string(data))
	return key, key != ""
}

// Set writes the credential. The content is not inspected or validated; use
// `dreem ai verify` for that.
func (s *Store) Set(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("secret: refusing to store an empty key")
	}
	if err := os.MkdirAll(s.BasePath, 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path(), []byte(key+"\n"), 0o600)
}

// Clear removes the stored credential. Missing is fine.
func (s *Store) Clear() error {
	err := os.Remove(s.path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
