package tracer

import (
	"fmt"
	"io"
	"strings"

	"github.com/benoitkugler/paginate/boxes"
	"github.com/benoitkugler/paginate/layout"
	"github.com/benoitkugler/paginate/utils"
)

func formatSize(e boxes.Element) string {
	st := e.Box().State()
	if st.Status != boxes.Prepared {
		return "unprepared"
	}
	return fmt.Sprintf("%gx%g", utils.Round(st.Size.Width), utils.Round(st.Size.Height))
}

func children(e boxes.Element) []boxes.Element {
	switch e := e.(type) {
	case *boxes.Wrapper:
		return []boxes.Element{e.Child}
	case *boxes.VStack:
		return e.Children
	case *boxes.HStack:
		return e.Children
	case *boxes.Table:
		var out []boxes.Element
		for _, row := range e.Rows {
			out = append(out, row...)
		}
		return out
	}
	return nil
}

// DumpTree writes one line per element of the tree, with its type
// and prepared size, indented by depth.
func DumpTree(out io.Writer, e boxes.Element) {
	var printer func(e boxes.Element, indent int)
	printer = func(e boxes.Element, indent int) {
		fmt.Fprint(out, strings.Repeat("  ", indent))
		fmt.Fprintf(out, "%s: %s", e.Type(), formatSize(e))
		if r := e.Box().Style.Rotation; r != boxes.R0 {
			fmt.Fprintf(out, " rotated %d", r.Degrees())
		}
		switch e := e.(type) {
		case *boxes.Text:
			fmt.Fprintf(out, " %q", e.Text)
		case *boxes.Table:
			fmt.Fprintf(out, " %d rows, %d header", len(e.Rows), e.HeaderRows)
		case *boxes.PageBreak:
			if e.Forced {
				fmt.Fprint(out, " forced")
			}
		}
		fmt.Fprintln(out)

		for _, child := range children(e) {
			printer(child, indent+1)
		}
	}
	printer(e, 0)
}

// DumpPages writes the placements of each page, followed by
// the tree of the placed elements.
func DumpPages(out io.Writer, pages []*layout.Page) {
	for _, page := range pages {
		fmt.Fprintf(out, "Page %d: %s content %s", page.Index, page.Size, page.Content)
		if page.Overflow {
			fmt.Fprint(out, " (overflow)")
		}
		fmt.Fprintln(out)
		for _, pl := range page.Placements {
			fmt.Fprintf(out, "  at %g %g\n", utils.Round(pl.X), utils.Round(pl.Y))
			var buf strings.Builder
			DumpTree(&buf, pl.Element)
			for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
				fmt.Fprintln(out, "    "+line)
			}
		}
	}
}
