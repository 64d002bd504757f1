package theme

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/dreem/pkg/settings"
	"tableflip.dev/dreem/pkg/store"
)

// Theme reads or writes the theme preference. An empty Pref prints the
// current choice and what it resolves to.
type Theme struct {
	Persistence store.Persistence
	Pref        string
}

func (t *Theme) Do(ctx context.Context) error {
	if t.Persistence == nil {
		return errors.New("can not manage theme, no persistence")
	}

	if t.Pref == "" {
		current := settings.LoadTheme(t.Persistence)
		fmt.Printf("theme: %s (resolves to %s)\n", current, settings.Resolve(current))
		return nil
	}

	pref, err := settings.ParsePreference(t.Pref)
	if err != nil {
		return err
	}
	if err := settings.SaveTheme(t.Persistence, pref); err != nil {
		return err
	}
	fmt.Printf("theme set to %s\n", pref)
	return nil
}
