package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/dreem/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	watch := false

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the journal, entries and drafts together, newest first.",
		Example: `
dreem list
dreem list --watch
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, p, svc, err := loadStack()
			if err != nil {
				return err
			}

			ctx := context.Background()
			if watch {
				var stop context.CancelFunc
				ctx, stop = signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
				defer stop()
			}

			l := list.List{Service: svc, Watch: watch, Persistence: p}
			return l.Do(ctx)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false,
		"Keep running and reprint when the journal changes on disk.")

	topLevel.AddCommand(cmd)
}
