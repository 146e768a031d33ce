package document

import (
	"github.com/benoitkugler/paginate/backend"
	"github.com/benoitkugler/paginate/boxes"
	"github.com/benoitkugler/paginate/layout"
)

// DrawPage adds a page to `out`, paints its background and draws
// its placements, in order.
// It performs no layout: the elements of the page must be prepared.
func DrawPage(page *layout.Page, out backend.Document) error {
	dst, err := out.AddPage(page.Size.Width, page.Size.Height)
	if err != nil {
		return err
	}
	if !page.Background.IsNone() {
		bg := backend.Rect{Width: page.Size.Width, Height: page.Size.Height}
		if err := dst.FillRectangle(bg, page.Background); err != nil {
			return err
		}
	}
	ctx := &boxes.DrawContext{Page: dst}
	for _, pl := range page.Placements {
		if err := boxes.Draw(ctx, pl.Element, pl.X, pl.Y); err != nil {
			return err
		}
	}
	return nil
}

// Draw draws every page on `out`, without closing it.
func Draw(pages []*layout.Page, out backend.Document) error {
	for _, page := range pages {
		if err := DrawPage(page, out); err != nil {
			return err
		}
	}
	return nil
}
