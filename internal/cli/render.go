package cli

import (
	"github.com/spf13/cobra"

	"github.com/benoitkugler/paginate/backend/raster"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string  // output directory, overriding the configuration
	pattern string  // file name pattern, overriding the configuration
	scale   float64 // pixels per point, overriding the configuration
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a markup document to PNG images, one per page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory")
	cmd.Flags().StringVar(&opts.pattern, "pattern", "", "file name pattern, with a verb for the page number")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "pixels per point")
	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts renderOpts) error {
	j, err := c.load(path)
	if err != nil {
		return err
	}
	out := j.cfg.Output
	if opts.output != "" {
		out.Dir = opts.output
	} else {
		out.Dir = j.cfg.Path(out.Dir)
	}
	if opts.pattern != "" {
		out.Pattern = opts.pattern
	}
	if opts.scale > 0 {
		out.Scale = opts.scale
	}

	doc, err := c.layout(cmd.Context(), j)
	if err != nil {
		return err
	}
	target := raster.New(j.metrics, out.Scale)
	if err := doc.Write(cmd.Context(), target); err != nil {
		return err
	}
	paths, err := target.WritePNGs(out.Dir, out.Pattern)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	printSuccess(w, "Rendered %d page(s)", len(paths))
	for _, p := range paths {
		printFile(w, p)
	}
	return nil
}
