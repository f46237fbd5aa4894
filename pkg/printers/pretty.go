package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/mycmd/pkg/alias"
	"tableflip.dev/mycmd/pkg/category"
	"tableflip.dev/mycmd/pkg/urlutil"
)

// PrettyPrint renders stored content for the batch subcommands.
type PrettyPrint struct{}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" entry")
	default:
		_, _ = c.Println(" entries")
	}
}

// Categories lists every category with its items, links marked apart from
// plain notes.
func (pp *PrettyPrint) Categories(cats *category.Store) {
	names := cats.Names()
	if len(names) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	t := color.New()
	for _, name := range names {
		items, _ := cats.Items(name)
		pp.TitleWithCount(name, len(items))
		for i, item := range items {
			marker := "📝"
			if urlutil.IsURL(item) {
				marker = "🔗"
			}
			_, _ = t.Printf("%d. %s %s\n", i+1, marker, item)
		}
		_, _ = t.Println("")
	}
}

// Aliases renders the alias table.
func (pp *PrettyPrint) Aliases(aliases *alias.Registry) {
	names := aliases.Names()
	pp.TitleWithCount("Aliases", len(names))
	if len(names) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	b := color.New(color.Bold)
	tbl.AddRow(b.Sprint("Alias"), b.Sprint("Target"))
	for _, name := range names {
		url, _ := aliases.Resolve(name)
		tbl.AddRow(name, url)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}
