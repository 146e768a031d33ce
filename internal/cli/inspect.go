package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benoitkugler/paginate/document"
	"github.com/benoitkugler/paginate/utils/testutils/tracer"
)

type inspectOpts struct {
	tree bool // dump the placed elements
	draw bool // dump the drawing instructions
}

func (c *CLI) inspectCommand() *cobra.Command {
	var opts inspectOpts
	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print the pages of a markup document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd, args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.tree, "tree", false, "print the element tree of each placement")
	cmd.Flags().BoolVar(&opts.draw, "draw", false, "print the drawing instructions")
	return cmd
}

func (c *CLI) runInspect(cmd *cobra.Command, path string, opts inspectOpts) error {
	j, err := c.load(path)
	if err != nil {
		return err
	}
	doc, err := c.layout(cmd.Context(), j)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for i, page := range doc.Pages {
		printTitle(w, "Page %d", i+1)
		printKeyValue(w, "size", page.Size.String())
		printKeyValue(w, "content", page.Content.String())
		printKeyValue(w, "placements", fmt.Sprint(len(page.Placements)))
		if page.Overflow {
			printWarning(w, "an element overflows the page")
		}
	}
	if opts.tree {
		tracer.DumpPages(w, doc.Pages)
	}
	if opts.draw {
		return document.Draw(doc.Pages, tracer.NewDrawer(w))
	}
	return nil
}
