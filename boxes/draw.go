package boxes

import (
	"github.com/benoitkugler/paginate/backend"
	"github.com/benoitkugler/paginate/matrix"
)

// DrawContext provides the output page elements are drawn on.
type DrawContext struct {
	Page backend.Page
}

// placement returns the transformation mapping the local frame of
// a box with prepared size `size` to the page, when its rotated
// bounding box has its top left corner at (x, y).
func (r Rotation) placement(x, y Fl, size Size) matrix.Transform {
	var tx, ty Fl
	switch r {
	case R90:
		tx, ty = x+size.Height, y
	case R180:
		tx, ty = x+size.Width, y+size.Height
	case R270:
		tx, ty = x, y+size.Width
	default:
		tx, ty = x, y
	}
	return matrix.Mul(matrix.Translation(tx, ty), matrix.QuarterRotation(int(r)))
}

// Draw draws the prepared element `e`, with the top left corner
// of its (rotated) margin box at (x, y).
// It paints the fill, then the borders, then the content, and
// finally attaches the link of the element, if any.
// Drawing never modifies the element.
func Draw(ctx *DrawContext, e Element, x, y Fl) error {
	box := e.Box()
	if !box.IsPrepared() {
		return &LifecycleError{Op: "render", Element: e, Err: ErrNotPrepared}
	}
	rot := box.Style.Rotation
	if rot == R0 {
		return drawBox(ctx, e, backend.Rect{X: x, Y: y, Width: box.Size().Width, Height: box.Size().Height})
	}
	return ctx.Page.OnNewStack(func() error {
		ctx.Page.Transform(rot.placement(x, y, box.Size()))
		return drawBox(ctx, e, backend.Rect{Width: box.Size().Width, Height: box.Size().Height})
	})
}

func drawBox(ctx *DrawContext, e Element, outer backend.Rect) error {
	st := &e.Box().Style
	border := st.borderRect(outer)
	if !st.Fill.IsNone() {
		if err := ctx.Page.FillRectangle(border, st.Fill); err != nil {
			return err
		}
	}
	if err := drawBorder(ctx, &st.Border, border); err != nil {
		return err
	}
	if err := e.drawContent(ctx, st.contentRect(outer)); err != nil {
		return err
	}
	if st.Link != "" {
		return ctx.Page.AddLink(border, st.Link)
	}
	return nil
}

// drawBorder strokes each side in the middle of its border strip.
func drawBorder(ctx *DrawContext, b *Border, r backend.Rect) error {
	if b.Style == NoBorder || b.Color.IsNone() {
		return nil
	}
	w := b.Widths
	left, top := r.X, r.Y
	right, bottom := r.X+r.Width, r.Y+r.Height
	sides := [4]struct {
		width          Fl
		x0, y0, x1, y1 Fl
	}{
		{w.Top, left, top + w.Top/2, right, top + w.Top/2},
		{w.Right, right - w.Right/2, top, right - w.Right/2, bottom},
		{w.Bottom, right, bottom - w.Bottom/2, left, bottom - w.Bottom/2},
		{w.Left, left + w.Left/2, bottom, left + w.Left/2, top},
	}
	for _, side := range sides {
		if side.width <= 0 {
			continue
		}
		stroke := backend.Stroke{Width: side.width, Color: b.Color, Dashes: b.Style.dashes(side.width)}
		if err := ctx.Page.StrokeLine(side.x0, side.y0, side.x1, side.y1, stroke); err != nil {
			return err
		}
	}
	return nil
}
