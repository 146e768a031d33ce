// Package tracer implements a recording backend, used for debugging
// and tests, and dumps of the layout tree.
package tracer

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/benoitkugler/paginate/backend"
	"github.com/benoitkugler/paginate/matrix"
)

var (
	_ backend.Document = (*Drawer)(nil)
	_ backend.Page     = (*Drawer)(nil)
)

// Drawer writes one line per drawing instruction.
type Drawer struct {
	out    io.Writer
	buf    *bytes.Buffer // if created with NewRecorder
	indent int

	// Fail, if not nil, is called with the name of each
	// instruction, and its error is returned.
	Fail func(op string) error
}

// NewDrawer writes the instructions to `out`.
func NewDrawer(out io.Writer) *Drawer { return &Drawer{out: out} }

func NewDrawerNoOp() *Drawer { return &Drawer{out: io.Discard} }

// NewRecorder keeps the instructions in memory, see [Drawer.String].
func NewRecorder() *Drawer {
	buf := new(bytes.Buffer)
	return &Drawer{out: buf, buf: buf}
}

// String returns the recorded instructions, for drawers
// created by [NewRecorder].
func (dr *Drawer) String() string {
	if dr.buf == nil {
		return ""
	}
	return dr.buf.String()
}

type fl = backend.Fl

func (dr *Drawer) println(args ...interface{}) {
	fmt.Fprint(dr.out, strings.Repeat("  ", dr.indent))
	fmt.Fprintln(dr.out, args...)
}

func (dr *Drawer) printf(f string, args ...interface{}) {
	fmt.Fprintf(dr.out, strings.Repeat("  ", dr.indent)+f+"\n", args...)
}

func (dr *Drawer) fail(op string) error {
	if dr.Fail == nil {
		return nil
	}
	return dr.Fail(op)
}

func (dr *Drawer) AddPage(width, height fl) (backend.Page, error) {
	if err := dr.fail("AddPage"); err != nil {
		return nil, err
	}
	dr.indent = 0
	dr.printf("AddPage : %g %g", width, height)
	return dr, nil
}

func (dr *Drawer) Close() error {
	if err := dr.fail("Close"); err != nil {
		return err
	}
	dr.println("Close :")
	return nil
}

func (dr *Drawer) FillRectangle(r backend.Rect, c backend.Color) error {
	if err := dr.fail("FillRectangle"); err != nil {
		return err
	}
	dr.println("FillRectangle :", r, c)
	return nil
}

func (dr *Drawer) StrokeLine(x0, y0, x1, y1 fl, s backend.Stroke) error {
	if err := dr.fail("StrokeLine"); err != nil {
		return err
	}
	dr.printf("StrokeLine : %g %g %g %g width %g %s dashes %v", x0, y0, x1, y1, s.Width, s.Color, s.Dashes)
	return nil
}

func (dr *Drawer) DrawText(run backend.TextRun) error {
	if err := dr.fail("DrawText"); err != nil {
		return err
	}
	dr.printf("DrawText : %q %s at %g %g width %g %s", run.Text, run.Font, run.X, run.Y, run.Width, run.Color)
	return nil
}

func (dr *Drawer) DrawImage(img image.Image, r backend.Rect) error {
	if err := dr.fail("DrawImage"); err != nil {
		return err
	}
	dr.println("DrawImage :", img.Bounds(), r)
	return nil
}

func (dr *Drawer) AddLink(r backend.Rect, url string) error {
	if err := dr.fail("AddLink"); err != nil {
		return err
	}
	dr.println("AddLink :", r, url)
	return nil
}

func (dr *Drawer) OnNewStack(f func() error) error {
	if err := dr.fail("OnNewStack"); err != nil {
		return err
	}
	dr.println("OnNewStack :")
	dr.indent++
	defer func() { dr.indent-- }()
	return f()
}

func (dr *Drawer) Transform(mt matrix.Transform) {
	dr.println("Transform :", mt)
}
