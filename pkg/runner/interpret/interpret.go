package interpret

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/dreem/pkg/ai"
	"tableflip.dev/dreem/pkg/app"
	"tableflip.dev/dreem/pkg/printers"
)

// Interpret runs the remote interpretation for a saved day and persists the
// result. An analysis already on the entry is reopened without a remote call.
type Interpret struct {
	Service *app.Service
	Client  *ai.Client
	DateKey string
}

func (i *Interpret) Do(ctx context.Context) error {
	if i.Service == nil {
		return errors.New("can not interpret, no service")
	}

	day, err := i.Service.LoadDay(ctx, i.DateKey)
	if err != nil {
		return err
	}
	if strings.TrimSpace(day.Text) == "" {
		return fmt.Errorf("nothing to interpret for %s, write the dream first", i.DateKey)
	}

	answer, err := i.Service.Interpret(ctx, i.Client, day, day.Text)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Title("Luna's analysis")
	fmt.Println(wordwrap.String(answer, 78))
	return nil
}

// Verify checks the stored credential against the remote service.
type Verify struct {
	Client *ai.Client
}

func (v *Verify) Do(ctx context.Context) error {
	if v.Client == nil {
		return errors.New("can not verify, no client")
	}
	if err := v.Client.Verify(ctx); err != nil {
		return err
	}
	fmt.Println("API key is valid")
	return nil
}
