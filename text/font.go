// Package text implements the font metrics used to lay out text leaves:
// advance widths, vertical extents and line breaking.
package text

import (
	"fmt"
	"strings"

	"github.com/benoitkugler/paginate/utils"
)

type Fl = utils.Fl

// DefaultFamily is the family of the Go fonts, always available.
const DefaultFamily = "Go"

// Font selects a face: a family, a size in points and a style.
// It is comparable and used as map key.
type Font struct {
	Family string
	Size   Fl
	Bold   bool
	Italic bool
}

// DefaultFont is used when no font is specified.
var DefaultFont = Font{Family: DefaultFamily, Size: 11}

func (f Font) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %g", f.Family, f.Size)
	if f.Bold {
		b.WriteString(" bold")
	}
	if f.Italic {
		b.WriteString(" italic")
	}
	return b.String()
}

// Extents are the vertical metrics of a font, in points.
type Extents struct {
	Ascent, Descent Fl
	// LineHeight is the distance between two consecutive baselines.
	LineHeight Fl
}

// Metrics is the font metrics collaborator used during layout.
type Metrics interface {
	// Advance returns the width of `s` drawn with `font`.
	Advance(s string, font Font) (Fl, error)
	// LineBreaks wraps `s` in lines no wider than `maxWidth` (when possible),
	// and returns the byte offsets where each line starts.
	// The first offset is always 0 and mandatory breaks are honored.
	LineBreaks(s string, font Font, maxWidth Fl) ([]int, error)
	// Extents returns the vertical metrics of `font`.
	Extents(font Font) (Extents, error)
}
