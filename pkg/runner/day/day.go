package day

import (
	"context"
	"errors"
	"fmt"
	"os"

	"tableflip.dev/dreem/pkg/app"
	"tableflip.dev/dreem/pkg/printers"
)

// Show prints one day's entry or draft.
type Show struct {
	Service *app.Service
	DateKey string
}

func (s *Show) Do(ctx context.Context) error {
	if s.Service == nil {
		return errors.New("can not show, no service")
	}

	for _, item := range s.Service.List(ctx) {
		if item.DateKey == s.DateKey {
			pp := printers.PrettyPrint{}
			pp.NewLine()
			pp.Day(item)
			return nil
		}
	}
	return fmt.Errorf("no entry for %s", s.DateKey)
}

// Remove deletes a day's entry along with any draft for it.
type Remove struct {
	Service *app.Service
	DateKey string
}

func (r *Remove) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("can not remove, no service")
	}

	if err := r.Service.CommitDelete(ctx, r.DateKey); err != nil {
		if app.IsResidualDraft(err) {
			// The entry itself is gone; the leftover draft stays hidden
			// behind the reconciler until a later cleanup succeeds.
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			return nil
		}
		return err
	}
	fmt.Printf("deleted %s\n", r.DateKey)
	return nil
}
