package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/dreem/pkg/runner/key"
	"tableflip.dev/dreem/pkg/secret"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the OpenAI API key.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addKeySet(cmd)
	addKeyShow(cmd)
	addKeyClear(cmd)

	topLevel.AddCommand(cmd)
}

func secrets() (*secret.Store, error) {
	cfg, err := loadConfigOnly()
	if err != nil {
		return nil, err
	}
	return &secret.Store{BasePath: cfg.BasePath()}, nil
}

func addKeySet(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Prompt for the API key and store it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := secrets()
			if err != nil {
				return err
			}
			s := key.Set{Secrets: st}
			return s.Do(context.Background())
		},
	}
	topLevel.AddCommand(cmd)
}

func addKeyShow(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored key, masked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := secrets()
			if err != nil {
				return err
			}
			s := key.Show{Secrets: st}
			return s.Do(context.Background())
		},
	}
	topLevel.AddCommand(cmd)
}

func addKeyClear(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored key.",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := secrets()
			if err != nil {
				return err
			}
			if err := st.Clear(); err != nil {
				return err
			}
			fmt.Println("key cleared")
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}
