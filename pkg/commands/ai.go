package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/dreem/pkg/commands/options"
	"tableflip.dev/dreem/pkg/runner/interpret"
)

func addAI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ai",
		Short: "Interpretation service commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addAIAsk(cmd)
	addAIVerify(cmd)

	topLevel.AddCommand(cmd)
}

func addAIAsk(topLevel *cobra.Command) {
	do := &options.DateOptions{}

	cmd := &cobra.Command{
		Use:   "ask [date]",
		Short: "Ask Luna to interpret a day's dream. Reuses a stored analysis.",
		Example: `
dreem ai ask
dreem ai ask 2026-02-28
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dateKey, err := do.DateKey(args)
			if err != nil {
				return err
			}
			cfg, _, svc, err := loadStack()
			if err != nil {
				return err
			}
			i := interpret.Interpret{
				Service: svc,
				Client:  aiClient(cfg),
				DateKey: dateKey,
			}
			return i.Do(context.Background())
		},
	}

	options.AddOnArgs(cmd, do)
	topLevel.AddCommand(cmd)
}

func addAIVerify(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check the saved API key against the service.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigOnly()
			if err != nil {
				return err
			}
			v := interpret.Verify{Client: aiClient(cfg)}
			return v.Do(context.Background())
		},
	}
	topLevel.AddCommand(cmd)
}
