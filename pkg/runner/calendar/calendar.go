package calendar

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/dreem/pkg/app"
	"tableflip.dev/dreem/pkg/printers"
)

type Calendar struct {
	Service *app.Service
	On      time.Time
}

func (c *Calendar) Do(ctx context.Context) error {
	if c.Service == nil {
		return errors.New("can not print calendar, no service")
	}

	on := c.On
	if on.IsZero() {
		on = time.Now()
	}

	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Calendar(on, c.Service.List(ctx)...)
	return nil
}
