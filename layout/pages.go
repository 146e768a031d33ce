// Package layout distributes the top level elements of a page set
// on pages, splitting the elements overflowing a page.
//
// The laid out pages are ready to be drawn, which is done by
// the higher level `document` package.
package layout

import (
	"fmt"
	"io"

	"github.com/benoitkugler/paginate/backend"
	"github.com/benoitkugler/paginate/boxes"
	"github.com/benoitkugler/paginate/utils"
)

type Fl = utils.Fl

// PageSet is a sequence of elements sharing the same page geometry.
type PageSet struct {
	Size   boxes.Size
	Margin boxes.Sides

	Elements []boxes.Element

	// BlankFirstPage controls forced page breaks at the very start of
	// the set: if true, they produce an empty first page,
	// otherwise they are ignored.
	BlankFirstPage bool

	// Background, if not transparent, paints every page.
	Background backend.Color
}

// ContentBox returns the area of a page available for the elements.
func (ps *PageSet) ContentBox() backend.Rect {
	return ps.Margin.Deflate(backend.Rect{Width: ps.Size.Width, Height: ps.Size.Height})
}

// Placement is an element positioned on a page:
// (X, Y) is the top left corner of its (rotated) margin box.
type Placement struct {
	Element boxes.Element
	X, Y    Fl
}

// Page is a laid out page.
type Page struct {
	Index      int // 0-based, in its page set
	Size       boxes.Size
	Content    backend.Rect
	Background backend.Color

	Placements []Placement

	// Overflow is true if an element higher than the page
	// has been accepted on it.
	Overflow bool

	forced bool // opened by a forced page break
}

// State is the state of a [Paginator].
type State uint8

const (
	AwaitingElement State = iota
	PlacingOnCurrentPage
	PageFull
	NewPage
	Done
)

func (s State) String() string {
	switch s {
	case AwaitingElement:
		return "AwaitingElement"
	case PlacingOnCurrentPage:
		return "PlacingOnCurrentPage"
	case PageFull:
		return "PageFull"
	case NewPage:
		return "NewPage"
	case Done:
		return "Done"
	default:
		return fmt.Sprintf("<unknown State %d>", s)
	}
}

// Paginator produces the pages of a page set, one at a time.
// Top level elements are prepared lazily, when they are reached.
// A Paginator is not restartable: the elements of the set are
// consumed (prepared and possibly split).
type Paginator struct {
	ctx *boxes.Context
	set PageSet

	content backend.Rect
	state   State

	index   int           // next element of set.Elements
	pending boxes.Element // prepared element (or tail) waiting for placement

	page       *Page
	cursor     Fl   // used height on the current page
	sinceBreak bool // content placed since the last page break
	emitted    int  // number of pages returned
}

func NewPaginator(ctx *boxes.Context, set PageSet) *Paginator {
	return &Paginator{ctx: ctx, set: set, content: set.ContentBox()}
}

// State returns the current state of the paginator.
func (p *Paginator) State() State { return p.state }

// Next returns the next page, or io.EOF when every element has been placed.
func (p *Paginator) Next() (*Page, error) {
	if p.state == Done {
		return nil, io.EOF
	}
	if p.page == nil {
		p.openPage(false)
	}
	for {
		p.state = AwaitingElement
		elem, err := p.nextElement()
		if err != nil {
			return nil, err
		}
		if elem == nil {
			return p.finish()
		}
		p.state = PlacingOnCurrentPage
		page, err := p.place(elem)
		if err != nil {
			return nil, err
		}
		if page != nil {
			return page, nil
		}
	}
}

// finish returns the last page, if needed.
func (p *Paginator) finish() (*Page, error) {
	p.state = Done
	page := p.page
	p.page = nil
	// do not emit a trailing empty page, unless it was explicitly asked for
	// or the page set has no content at all
	if len(page.Placements) == 0 && !page.forced && p.emitted > 0 {
		return nil, io.EOF
	}
	p.emitted++
	p.ctx.Debug("page finalized", "index", page.Index, "placements", len(page.Placements))
	return page, nil
}

// nextElement returns the pending element, or prepares the next one.
// It returns nil when all the elements have been placed.
func (p *Paginator) nextElement() (boxes.Element, error) {
	if p.pending != nil {
		return p.pending, nil
	}
	if p.index >= len(p.set.Elements) {
		return nil, nil
	}
	elem := p.set.Elements[p.index]
	p.index++
	available := boxes.Size{Width: p.content.Width, Height: p.content.Height}
	if _, err := boxes.PrepareChild(p.ctx, elem, available); err != nil {
		return nil, err
	}
	p.pending = elem
	return elem, nil
}

func (p *Paginator) openPage(forced bool) {
	index := 0
	if p.page != nil {
		index = p.page.Index + 1
	}
	p.page = &Page{
		Index:      index,
		Size:       p.set.Size,
		Content:    p.content,
		Background: p.set.Background,
		forced:     forced,
	}
	p.cursor = 0
	p.sinceBreak = false
}

// closePage finalizes the current page, opens the next one and
// returns the finalized page.
func (p *Paginator) closePage(forced bool) *Page {
	p.state = PageFull
	page := p.page
	p.emitted++
	p.ctx.Debug("page finalized", "index", page.Index, "placements", len(page.Placements))
	p.state = NewPage
	p.openPage(forced)
	return page
}

func (p *Paginator) isEmpty() bool { return len(p.page.Placements) == 0 }

func (p *Paginator) add(elem boxes.Element) {
	size := boxes.EffectiveSize(elem)
	x := p.content.X + elem.Box().Style.HAlign.Offset(p.content.Width-size.Width)
	p.page.Placements = append(p.page.Placements, Placement{Element: elem, X: x, Y: p.content.Y + p.cursor})
	p.cursor += size.Height
	p.sinceBreak = true
}

// place handles the pending element `elem`, returning the finalized
// page if the current page has been closed.
func (p *Paginator) place(elem boxes.Element) (*Page, error) {
	if pb, ok := elem.(*boxes.PageBreak); ok {
		p.pending = nil
		return p.handleBreak(pb), nil
	}

	size := boxes.EffectiveSize(elem)
	remaining := p.content.Height - p.cursor
	if utils.LessOrClose(size.Height, remaining) {
		p.add(elem)
		p.pending = nil
		return nil, nil
	}

	if !p.isEmpty() {
		head, tail, err := boxes.SplitAt(p.ctx, elem, remaining)
		if err != nil {
			return nil, err
		}
		if head != nil {
			p.add(head)
			p.pending = tail
		}
		// the tail, or the whole element, goes on a new page
		return p.closePage(false), nil
	}

	// on an empty page, an oversized piece of content is accepted,
	// and the content following it is paginated normally
	head, tail, err := boxes.ForceSplit(p.ctx, elem, remaining)
	if err != nil {
		return nil, err
	}
	if head == nil {
		head = elem
	}
	if headHeight := boxes.EffectiveSize(head).Height; !utils.LessOrClose(headHeight, remaining) {
		p.ctx.Debug("forcing element on page", "index", p.page.Index)
		p.ctx.Warn(boxes.Warning{
			Code:    utils.CodeUnsplittableOverflow,
			Element: elem,
			Message: fmt.Sprintf("content of height %g does not fit in the page content height %g", headHeight, p.content.Height),
		})
		p.page.Overflow = true
	}
	p.add(head)
	p.pending = tail
	return p.closePage(false), nil
}

func (p *Paginator) handleBreak(pb *boxes.PageBreak) *Page {
	if pb.Forced {
		if p.emitted == 0 && p.isEmpty() && !p.sinceBreak && !p.set.BlankFirstPage {
			return nil
		}
		return p.closePage(true)
	}
	if p.sinceBreak {
		return p.closePage(false)
	}
	return nil
}

// Paginate lays out the whole page set.
func Paginate(ctx *boxes.Context, set PageSet) ([]*Page, error) {
	p := NewPaginator(ctx, set)
	var pages []*Page
	for {
		page, err := p.Next()
		if err == io.EOF {
			return pages, nil
		}
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
}
