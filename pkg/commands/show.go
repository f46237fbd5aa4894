package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/mycmd/pkg/printers"
	"tableflip.dev/mycmd/pkg/store"
	"tableflip.dev/mycmd/pkg/terminal"
)

func addShow(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "print stored categories and aliases",
		Example: `
mycmd show
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			cats, aliases := terminal.LoadContent(context.Background(), p)

			pp := printers.PrettyPrint{}
			pp.Categories(cats)
			pp.Aliases(aliases)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
