package boxes

import (
	"fmt"

	"github.com/benoitkugler/paginate/backend"
	"github.com/benoitkugler/paginate/utils"
)

// Rotation is a quarter turn rotation, clockwise on the page.
type Rotation uint8

const (
	R0 Rotation = iota
	R90
	R180
	R270
)

// NewRotation normalizes an angle in degrees, which must be a multiple of 90.
func NewRotation(degrees int) (Rotation, error) {
	if degrees%90 != 0 {
		return 0, utils.NewError(utils.CodeInvalidValue, "rotation %d is not a multiple of 90", degrees)
	}
	return Rotation(((degrees/90)%4 + 4) % 4), nil
}

// Degrees returns the angle of the rotation.
func (r Rotation) Degrees() int { return int(r) * 90 }

// Swaps returns true if the rotation exchanges the width and height axes.
func (r Rotation) Swaps() bool { return r == R90 || r == R270 }

// HAlign is the horizontal alignment of a box in the space given by its parent.
// It also aligns the lines of text leaves.
type HAlign uint8

const (
	Left HAlign = iota
	Center
	Right
)

// Offset returns the offset of a box in a space with `free` unused length.
func (a HAlign) Offset(free Fl) Fl {
	free = utils.Clip0(free)
	switch a {
	case Center:
		return free / 2
	case Right:
		return free
	default:
		return 0
	}
}

func (a HAlign) String() string {
	switch a {
	case Left:
		return "left"
	case Center:
		return "center"
	case Right:
		return "right"
	}
	return fmt.Sprintf("<unknown HAlign %d>", a)
}

// VAlign is the vertical alignment of a box in the space given by its parent.
type VAlign uint8

const (
	Top VAlign = iota
	Middle
	Bottom
)

// Offset returns the offset of a box in a space with `free` unused length.
func (a VAlign) Offset(free Fl) Fl {
	free = utils.Clip0(free)
	switch a {
	case Middle:
		return free / 2
	case Bottom:
		return free
	default:
		return 0
	}
}

func (a VAlign) String() string {
	switch a {
	case Top:
		return "top"
	case Middle:
		return "middle"
	case Bottom:
		return "bottom"
	}
	return fmt.Sprintf("<unknown VAlign %d>", a)
}

// Style groups the properties shared by every element.
// It is a plain value: copying a Style never aliases another element.
type Style struct {
	Margin, Padding Sides
	Border          Border

	// Width and Height request the outer (margin box) size.
	// A proportional Height is treated as [Auto].
	Width, Height Length

	// Limits of the content box, applied after Width and Height.
	// A zero maximum means no limit.
	MinWidth, MaxWidth   Fl
	MinHeight, MaxHeight Fl

	Rotation Rotation

	// Fill paints the border box.
	Fill backend.Color

	HAlign HAlign
	VAlign VAlign

	// Link, if not empty, is an URL attached to the border box.
	Link string
}

// hasFixedHeight returns true for fixed and percentage heights.
func (st *Style) hasFixedHeight() bool {
	return st.Height.Kind == KindFixed || st.Height.Kind == KindPercent
}

func clamp(v, min, max Fl) Fl {
	if max > 0 && v > max {
		v = max
	}
	if v < min {
		v = min
	}
	return v
}
