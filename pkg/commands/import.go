package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/mycmd/pkg/store"
	"tableflip.dev/mycmd/pkg/terminal"
	"tableflip.dev/mycmd/pkg/transfer"
)

func addImport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "merge a previously exported snapshot into the store",
		Example: `
mycmd import mycmd-export-2024-03-01.json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			snap, err := transfer.Decode(raw)
			if err != nil {
				return err
			}

			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			ctx := context.Background()
			cats, aliases := terminal.LoadContent(ctx, p)
			nc, na := transfer.Merge(snap, cats, aliases)
			if err := terminal.SaveContent(ctx, p, cats, aliases); err != nil {
				return err
			}
			fmt.Printf("Imported %d categories and %d aliases from %s\n", nc, na, args[0])
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
