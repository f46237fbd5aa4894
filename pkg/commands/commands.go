package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "mycmd",
		Short: base.Wrap80("A password-gated terminal for bookmarks, notes, and URL aliases."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTerminal()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addTerm(topLevel)
	addShow(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addVersion(topLevel)
}
