package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/dreem/pkg/chat"
	"tableflip.dev/dreem/pkg/runner/chats"
)

func addChat(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk with Luna outside of any one dream.",
		Example: `
dreem chat list
dreem chat new
dreem chat send 1756700000000 tell me about recurring dreams
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, p, _, err := loadStack()
			if err != nil {
				return err
			}
			l := chats.List{Repo: &chat.Repository{Persistence: p}}
			return l.Do(context.Background())
		},
	}

	addChatList(cmd)
	addChatNew(cmd)
	addChatShow(cmd)
	addChatSend(cmd)
	addChatRm(cmd)

	topLevel.AddCommand(cmd)
}

func addChatList(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List chats, most recent activity first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, p, _, err := loadStack()
			if err != nil {
				return err
			}
			l := chats.List{Repo: &chat.Repository{Persistence: p}}
			return l.Do(context.Background())
		},
	}
	topLevel.AddCommand(cmd)
}

func addChatNew(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start an empty chat.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, p, _, err := loadStack()
			if err != nil {
				return err
			}
			n := chats.New{Repo: &chat.Repository{Persistence: p}}
			return n.Do(context.Background())
		},
	}
	topLevel.AddCommand(cmd)
}

func addChatShow(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a chat transcript.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, p, _, err := loadStack()
			if err != nil {
				return err
			}
			s := chats.Show{Repo: &chat.Repository{Persistence: p}, ChatID: args[0]}
			return s.Do(context.Background())
		},
	}
	topLevel.AddCommand(cmd)
}

func addChatSend(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "send <id> <message...>",
		Short: "Send a message to Luna in a chat.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, p, _, err := loadStack()
			if err != nil {
				return err
			}
			s := chats.Send{
				Repo:   &chat.Repository{Persistence: p},
				Client: aiClient(cfg),
				ChatID: args[0],
				Text:   strings.Join(args[1:], " "),
			}
			return s.Do(context.Background())
		},
	}
	topLevel.AddCommand(cmd)
}

func addChatRm(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a chat.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, p, _, err := loadStack()
			if err != nil {
				return err
			}
			r := chats.Remove{Repo: &chat.Repository{Persistence: p}, ChatID: args[0]}
			return r.Do(context.Background())
		},
	}
	topLevel.AddCommand(cmd)
}
