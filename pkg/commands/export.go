package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/mycmd/pkg/printers"
	"tableflip.dev/mycmd/pkg/store"
	"tableflip.dev/mycmd/pkg/terminal"
	"tableflip.dev/mycmd/pkg/transfer"
)

func addExport(topLevel *cobra.Command) {
	output := ""
	cmd := &cobra.Command{
		Use:   "export",
		Short: "write a snapshot of categories and aliases to a JSON file",
		Example: `
mycmd export
mycmd export -o backup.json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			cats, aliases := terminal.LoadContent(context.Background(), p)

			now := time.Now()
			data, err := transfer.Encode(cats, aliases, now)
			if err != nil {
				return err
			}
			path := output
			if path == "" {
				path = transfer.Filename(now)
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return err
			}
			pp := printers.PrettyPrint{}
			pp.Categories(cats)
			pp.Aliases(aliases)
			fmt.Printf("Exported %d categories and %d aliases to %s\n",
				len(cats.Names()), aliases.Len(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file. Defaults to mycmd-export-<date>.json.")

	topLevel.AddCommand(cmd)
}
