package edit

import (
	"context"
	"errors"

	"tableflip.dev/dreem/pkg/ai"
	"tableflip.dev/dreem/pkg/app"
	"tableflip.dev/dreem/pkg/session"
	"tableflip.dev/dreem/pkg/settings"
	"tableflip.dev/dreem/pkg/store"
	"tableflip.dev/dreem/pkg/tui/editor"
	"tableflip.dev/dreem/pkg/tui/theme"
)

// Edit opens the full-screen editor for one day.
type Edit struct {
	Service     *app.Service
	Client      *ai.Client
	Persistence store.Persistence
	DateKey     string
}

func (e *Edit) Do(ctx context.Context) error {
	if e.Service == nil {
		return errors.New("can not edit, no service")
	}

	day, err := e.Service.LoadDay(ctx, e.DateKey)
	if err != nil {
		return err
	}

	pref := settings.System
	if e.Persistence != nil {
		pref = settings.LoadTheme(e.Persistence)
	}
	th := theme.ForPreference(settings.Resolve(pref))

	guard := session.NewGuard()
	return editor.Run(e.Service, e.Client, guard, day, th)
}
