// Package options defines shared flag helpers for CLI commands.
package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/dreem/pkg/timeutil"
)

// DateOptions selects the journal day a command operates on.
type DateOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *DateOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2026-02-28". Defaults to today.`)
}

// DateKey resolves the flag and any positional date argument to a canonical
// day key. The positional argument wins; empty means today.
func (o *DateOptions) DateKey(args []string) (string, error) {
	raw := o.OnString
	if len(args) > 0 {
		raw = args[0]
	}
	if raw == "" {
		return timeutil.ToDateKey(time.Now()), nil
	}
	if !timeutil.ValidDateKey(raw) {
		return "", fmt.Errorf("bad date %q, want YYYY-MM-DD", raw)
	}
	return raw, nil
}

// On resolves the flag to a time, defaulting to now.
func (o *DateOptions) On() (time.Time, error) {
	if o.OnString == "" {
		return time.Now(), nil
	}
	return timeutil.ParseDateKey(o.OnString)
}
