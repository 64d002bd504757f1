package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/dreem/pkg/commands/options"
	"tableflip.dev/dreem/pkg/runner/day"
)

func addGet(topLevel *cobra.Command) {
	do := &options.DateOptions{}

	cmd := &cobra.Command{
		Use:   "get [date]",
		Short: "Print one day's entry.",
		Example: `
dreem get
dreem get 2026-02-28
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dateKey, err := do.DateKey(args)
			if err != nil {
				return err
			}
			_, _, svc, err := loadStack()
			if err != nil {
				return err
			}
			s := day.Show{Service: svc, DateKey: dateKey}
			return s.Do(context.Background())
		},
	}

	options.AddOnArgs(cmd, do)
	topLevel.AddCommand(cmd)
}
