package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/dreem/pkg/commands/options"
	"tableflip.dev/dreem/pkg/runner/day"
)

func addRm(topLevel *cobra.Command) {
	do := &options.DateOptions{}

	cmd := &cobra.Command{
		Use:   "rm [date]",
		Short: "Delete one day's entry and any draft for it.",
		Example: `
dreem rm 2026-02-28
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
			r := day.Remove{Service: svc, DateKey: dateKey}
			return r.Do(context.Background())
		},
	}

	options.AddOnArgs(cmd, do)
	topLevel.AddCommand(cmd)
}
