package layout

import (
	"sort"
	"strings"

	"github.com/benoitkugler/paginate/boxes"
)

// Standard page sizes, in points.
var (
	// ISO A series
	A0 = boxes.Size{Width: 2384, Height: 3370}
	A1 = boxes.Size{Width: 1684, Height: 2384}
	A2 = boxes.Size{Width: 1191, Height: 1684}
	A3 = boxes.Size{Width: 842, Height: 1191}
	A4 = boxes.Size{Width: 595, Height: 842}
	A5 = boxes.Size{Width: 420, Height: 595}
	A6 = boxes.Size{Width: 298, Height: 420}

	// ISO B series
	B4 = boxes.Size{Width: 709, Height: 1001}
	B5 = boxes.Size{Width: 499, Height: 709}

	// US sizes
	Letter    = boxes.Size{Width: 612, Height: 792}
	Legal     = boxes.Size{Width: 612, Height: 1008}
	Tabloid   = boxes.Size{Width: 792, Height: 1224}
	Executive = boxes.Size{Width: 522, Height: 756}
)

var pageSizes = map[string]boxes.Size{
	"a0": A0, "a1": A1, "a2": A2, "a3": A3, "a4": A4, "a5": A5, "a6": A6,
	"b4": B4, "b5": B5,
	"letter": Letter, "legal": Legal, "tabloid": Tabloid, "executive": Executive,
}

// LookupPageSize returns the portrait size of a named page format,
// like "A4" or "letter" (case insensitive).
func LookupPageSize(name string) (boxes.Size, bool) {
	s, ok := pageSizes[strings.ToLower(name)]
	return s, ok
}

// PageSizeNames returns the supported page formats, sorted.
func PageSizeNames() []string {
	out := make([]string, 0, len(pageSizes))
	for name := range pageSizes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Landscape returns the page size in landscape orientation.
func Landscape(s boxes.Size) boxes.Size {
	if s.Width < s.Height {
		return s.Swap()
	}
	return s
}
