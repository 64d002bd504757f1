package list

import (
	"context"
	"errors"

	"tableflip.dev/dreem/pkg/app"
	"tableflip.dev/dreem/pkg/printers"
	"tableflip.dev/dreem/pkg/store"
)

type List struct {
	Service *app.Service

	// Watch keeps the process alive and reprints the journal whenever the
	// store changes on disk. Persistence must be set when Watch is.
	Watch       bool
	Persistence store.Persistence
}

func (l *List) Do(ctx context.Context) error {
	if l.Service == nil {
		return errors.New("can not list, no service")
	}

	l.print(ctx)
	if !l.Watch {
		return nil
	}
	if l.Persistence == nil {
		return errors.New("can not watch, no persistence")
	}

	events, err := l.Persistence.Watch(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-events:
			if !ok {
				return nil
			}
			l.print(ctx)
		}
	}
}

func (l *List) print(ctx context.Context) {
	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Title("Journal")
	pp.NewLine()
	pp.Items(l.Service.List(ctx)...)
}
