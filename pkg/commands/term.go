package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/mycmd/pkg/store"
	"tableflip.dev/mycmd/pkg/terminal"
	"tableflip.dev/mycmd/pkg/tui/app"
)

func runTerminal() error {
	cfg, err := store.LoadConfig()
	if err != nil {
		return err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return err
	}
	s := terminal.NewSession(context.Background(), p, cfg)
	return app.Run(s)
}

func addTerm(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "term",
		Short: "open the interactive terminal",
		Example: `
mycmd term
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTerminal()
		},
	}

	topLevel.AddCommand(cmd)
}
