package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/dreem/pkg/runner/theme"
)

func addTheme(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:       "theme [light|dark|system]",
		Short:     "Show or set the editor theme.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark", "system"},
		Example: `
dreem theme
dreem theme dark
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, p, _, err := loadStack()
			if err != nil {
				return err
			}
			t := theme.Theme{Persistence: p}
			if len(args) > 0 {
				t.Pref = args[0]
			}
			return t.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
