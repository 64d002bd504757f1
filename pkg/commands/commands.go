package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/dreem/pkg/ai"
	"tableflip.dev/dreem/pkg/app"
	"tableflip.dev/dreem/pkg/secret"
	"tableflip.dev/dreem/pkg/store"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "dreem",
		Short: base.Wrap80("Dream journaling on the command line, with a little help from Luna."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addEdit(topLevel)
	addList(topLevel)
	addGet(topLevel)
	addRm(topLevel)
	addCalendar(topLevel)
	addChat(topLevel)
	addAI(topLevel)
	addKey(topLevel)
	addTheme(topLevel)
	addVersion(topLevel)
}

// loadStack opens the persistence layer and the service over it.
func loadStack() (store.Config, store.Persistence, *app.Service, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, p, app.New(p), nil
}

// loadConfigOnly is for commands that touch no journal data.
func loadConfigOnly() (store.Config, error) {
	return store.LoadConfig()
}

// aiClient builds the interpretation client. With no credential saved the
// client still constructs; remote calls will fail with ErrNoAPIKey.
func aiClient(cfg store.Config) *ai.Client {
	s := &secret.Store{BasePath: cfg.BasePath()}
	k, _ := s.Get()
	return ai.NewClient(k)
}
