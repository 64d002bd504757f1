package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/dreem/pkg/commands/options"
	"tableflip.dev/dreem/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	do := &options.DateOptions{}

	cmd := &cobra.Command{
		Use:   "edit [date]",
		Short: "Open the editor for a day.",
		Example: `
dreem edit
dreem edit 2026-02-28
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dateKey, err := do.DateKey(args)
			if err != nil {
				return err
			}
			cfg, p, svc, err := loadStack()
			if err != nil {
				return err
			}
			e := edit.Edit{
				Service:     svc,
				Client:      aiClient(cfg),
				Persistence: p,
				DateKey:     dateKey,
			}
			return e.Do(context.Background())
		},
	}

	options.AddOnArgs(cmd, do)
	topLevel.AddCommand(cmd)
}
