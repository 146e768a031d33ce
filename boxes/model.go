package boxes

import (
	"fmt"

	"github.com/benoitkugler/paginate/backend"
	"github.com/benoitkugler/paginate/utils"
)

// Size is a concrete (width, height) pair, in points.
type Size struct {
	Width, Height Fl
}

// Swap exchanges the width and the height.
func (s Size) Swap() Size { return Size{Width: s.Height, Height: s.Width} }

func (s Size) String() string { return fmt.Sprintf("%gx%g", s.Width, s.Height) }

// Sides stores one value per side of a box.
type Sides struct {
	Top, Right, Bottom, Left Fl
}

// UniformSides returns Sides with the same value `v` on every side.
func UniformSides(v Fl) Sides { return Sides{v, v, v, v} }

// Horizontal returns Left + Right
func (s Sides) Horizontal() Fl { return s.Left + s.Right }

// Vertical returns Top + Bottom
func (s Sides) Vertical() Fl { return s.Top + s.Bottom }

func (s Sides) add(o Sides) Sides {
	return Sides{s.Top + o.Top, s.Right + o.Right, s.Bottom + o.Bottom, s.Left + o.Left}
}

// Deflate removes the sides from `r`, clipping the size at zero.
func (s Sides) Deflate(r backend.Rect) backend.Rect {
	return backend.Rect{
		X:      r.X + s.Left,
		Y:      r.Y + s.Top,
		Width:  utils.Clip0(r.Width - s.Horizontal()),
		Height: utils.Clip0(r.Height - s.Vertical()),
	}
}

// BorderStyle is the stroke style of a border.
type BorderStyle uint8

const (
	Solid BorderStyle = iota
	Dashed
	Dotted
	// NoBorder hides the border, which still takes space.
	NoBorder
)

func (bs BorderStyle) String() string {
	switch bs {
	case Solid:
		return "solid"
	case Dashed:
		return "dashed"
	case Dotted:
		return "dotted"
	case NoBorder:
		return "none"
	default:
		return fmt.Sprintf("<unknown BorderStyle %d>", bs)
	}
}

// dashes returns the dash pattern for a line of the given width.
func (bs BorderStyle) dashes(width Fl) []Fl {
	switch bs {
	case Dashed:
		return []Fl{3 * width, 3 * width}
	case Dotted:
		return []Fl{width, width}
	default:
		return nil
	}
}

// Border is the border of a box.
type Border struct {
	Widths Sides
	Style  BorderStyle
	Color  backend.Color
}

// Outline returns the sum of margin, border and padding on each axis.
func (st *Style) Outline() (horizontal, vertical Fl) {
	o := st.outlineSides()
	return o.Horizontal(), o.Vertical()
}

func (st *Style) outlineSides() Sides {
	return st.Margin.add(st.Border.Widths).add(st.Padding)
}

// Deflate returns the content size of a box with outer size `outer`.
func (st *Style) Deflate(outer Size) Size {
	h, v := st.Outline()
	return Size{utils.Clip0(outer.Width - h), utils.Clip0(outer.Height - v)}
}

// contentRect returns the content box of a box with outer rectangle `outer`.
func (st *Style) contentRect(outer backend.Rect) backend.Rect {
	return st.outlineSides().Deflate(outer)
}

// borderRect returns the border box (outer box minus margins).
func (st *Style) borderRect(outer backend.Rect) backend.Rect {
	return st.Margin.Deflate(outer)
}
