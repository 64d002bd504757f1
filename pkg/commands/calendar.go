package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/dreem/pkg/commands/options"
	"tableflip.dev/dreem/pkg/runner/calendar"
)

func addCalendar(topLevel *cobra.Command) {
	do := &options.DateOptions{}

	cmd := &cobra.Command{
		Use:     "calendar [month]",
		Aliases: []string{"cal"},
		Short:   "Show a month with journaled days marked.",
		Example: `
dreem calendar
dreem cal 2026-02
dreem cal --on="2026-02-01"
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := do.On()
			if err != nil {
				return err
			}
			if len(args) > 0 {
				on, err = time.ParseInLocation("2006-01", args[0], time.Local)
				if err != nil {
					return fmt.Errorf("bad month %q, want YYYY-MM", args[0])
				}
			}
			_, _, svc, err := loadStack()
			if err != nil {
				return err
			}
			c := calendar.Calendar{Service: svc, On: on}
			return c.Do(context.Background())
		},
	}

	options.AddOnArgs(cmd, do)
	topLevel.AddCommand(cmd)
}
