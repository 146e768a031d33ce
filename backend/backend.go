// Package backend defines the output writer interface, providing the
// graphics primitives used to draw laid out pages.
//
// It aims at supporting various output formats (raster images, vector
// documents, or simple recordings for tests) in an output-agnostic manner.
// The y axis grows downward and lengths are expressed in points.
package backend

import (
	"fmt"
	"image"
	"image/color"

	"github.com/benoitkugler/paginate/matrix"
	"github.com/benoitkugler/paginate/text"
	"github.com/benoitkugler/paginate/utils"
)

type Fl = utils.Fl

// Color is a RGBA color, with components in [0, 1].
// The zero value is the transparent color, which is never painted.
type Color struct {
	R, G, B, A Fl
}

var (
	Black = Color{A: 1}
	White = Color{R: 1, G: 1, B: 1, A: 1}
)

// IsNone returns true for fully transparent colors.
func (c Color) IsNone() bool { return c.A == 0 }

// RGBA implements color.Color
func (c Color) RGBA() (r, g, b, a uint32) {
	conv := func(v Fl) uint32 {
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		return uint32(v*0xffff + 0.5)
	}
	// premultiplied
	a = conv(c.A)
	return conv(c.R * c.A), conv(c.G * c.A), conv(c.B * c.A), a
}

func (c Color) String() string {
	return fmt.Sprintf("rgba(%g, %g, %g, %g)", c.R, c.G, c.B, c.A)
}

var _ color.Color = Color{}

// Rect is a rectangle, with (X, Y) its top left corner.
type Rect struct {
	X, Y, Width, Height Fl
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g %g %g %g]", r.X, r.Y, r.Width, r.Height)
}

// Stroke describes how lines are painted.
type Stroke struct {
	Width Fl
	Color Color
	// Dashes alternate on and off lengths. Empty for a solid line.
	Dashes []Fl
}

// TextRun is one line of text, drawn with a single font.
type TextRun struct {
	Text string
	Font text.Font
	// X, Y is the origin of the run, on the baseline.
	X, Y Fl
	// Width is the advance of the run, as measured during layout.
	Width Fl
	Color Color
}

// Document is the main target to hold the laid out pages.
type Document interface {
	// AddPage creates a new page with the given dimensions and returns
	// it to be painted on.
	AddPage(width, height Fl) (Page, error)

	// Close is called once every page has been drawn.
	Close() error
}

// Page is the target of one laid out page.
// Coordinates are relative to the top left corner of the page,
// transformed by the current transformation matrix.
type Page interface {
	// FillRectangle paints the given rectangle with a solid color.
	FillRectangle(r Rect, c Color) error

	// StrokeLine draws a straight line from (x0, y0) to (x1, y1).
	StrokeLine(x0, y0, x1, y1 Fl, s Stroke) error

	// DrawText draws a line of text.
	DrawText(run TextRun) error

	// DrawImage draws the image, scaled to fill the given rectangle.
	DrawImage(img image.Image, r Rect) error

	// AddLink shows a link on the page, pointing to the given url.
	AddLink(r Rect, url string) error

	// OnNewStack save the current graphic state,
	// execute the given closure, and restore the state,
	// returning the closure error.
	OnNewStack(func() error) error

	// Transform modifies the current transformation matrix
	// by applying `mt` before the existing transformation.
	Transform(mt matrix.Transform)
}
