package boxes

import "github.com/benoitkugler/paginate/backend"

// Wrapper decorates a single child with its own box model.
// An inline wrapper shrinks to its child, while a block wrapper
// fills the available width.
type Wrapper struct {
	BoxFields

	Child Element
	Block bool
}

// NewInline returns a wrapper shrinking to `child`.
func NewInline(child Element) *Wrapper {
	return &Wrapper{BoxFields: newBoxFields(), Child: child}
}

// NewBlock returns a wrapper filling the available width.
func NewBlock(child Element) *Wrapper {
	return &Wrapper{BoxFields: newBoxFields(), Child: child, Block: true}
}

func (w *Wrapper) Type() string {
	if w.Block {
		return "Block"
	}
	return "Inline"
}

func (w *Wrapper) Prepare(ctx *Context, available Size) (Size, error) {
	return prepareBox(w, available, func(inner bounds) (Size, error) {
		size, err := PrepareChild(ctx, w.Child, inner.Size)
		if err != nil {
			return Size{}, err
		}
		if w.Block && size.Width < inner.Width {
			size.Width = inner.Width
		}
		return size, nil
	})
}

func (w *Wrapper) Reset() {
	w.reset()
	w.Child.Reset()
}

func (w *Wrapper) Splittable() bool { return w.splittable() && w.Child.Splittable() }

// wrap returns a prepared fragment of w around `child`.
func (w *Wrapper) wrap(child Element) *Wrapper {
	out := &Wrapper{BoxFields: w.BoxFields.fragment(), Child: child, Block: w.Block}
	_, v := out.Style.Outline()
	out.setPrepared(Size{Width: w.Size().Width, Height: EffectiveSize(child).Height + v})
	return out
}

func (w *Wrapper) Split(ctx *Context, targetHeight Fl) (head, tail Element, err error) {
	return w.splitChild(ctx, targetHeight, SplitAt)
}

func (w *Wrapper) forceSplit(ctx *Context, targetHeight Fl) (head, tail Element, err error) {
	return w.splitChild(ctx, targetHeight, ForceSplit)
}

func (w *Wrapper) splitChild(ctx *Context, targetHeight Fl,
	split func(*Context, Element, Fl) (Element, Element, error),
) (head, tail Element, err error) {
	_, v := w.Style.Outline()
	childHead, childTail, err := split(ctx, w.Child, targetHeight-v)
	if err != nil || childHead == nil {
		return nil, nil, err
	}
	head = w.wrap(childHead)
	if childTail != nil {
		tail = w.wrap(childTail)
	}
	return head, tail, nil
}

func (w *Wrapper) Copy() Element {
	out := &Wrapper{BoxFields: w.BoxFields.fragment(), Child: w.Child.Copy(), Block: w.Block}
	return out
}

func (w *Wrapper) drawContent(ctx *DrawContext, content backend.Rect) error {
	size := EffectiveSize(w.Child)
	x := content.X + w.Child.Box().Style.HAlign.Offset(content.Width-size.Width)
	return Draw(ctx, w.Child, x, content.Y)
}
