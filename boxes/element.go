// Package boxes implements the elements composing a document:
// text and image leaves, wrappers, stacks and tables.
//
// Elements go through two phases: Prepare computes and freezes their size,
// then they are drawn at the position chosen by the pagination.
// Between these phases, an element too tall for a page may be
// split in a head and a tail.
package boxes

import (
	"fmt"

	"github.com/benoitkugler/paginate/backend"
	"github.com/benoitkugler/paginate/text"
	"github.com/benoitkugler/paginate/utils"
	"github.com/google/uuid"
)

// Context provides the collaborators used during layout.
// A zero Observer ignores warnings.
type Context struct {
	Metrics  text.Metrics
	Observer Observer
}

func (ctx *Context) observer() Observer {
	if ctx.Observer == nil {
		return NoopObserver{}
	}
	return ctx.Observer
}

func (ctx *Context) warn(code utils.Code, e Element, format string, args ...interface{}) {
	ctx.Warn(Warning{Code: code, Element: e, Message: fmt.Sprintf(format, args...)})
}

// Warn forwards a warning to the observer.
func (ctx *Context) Warn(w Warning) { ctx.observer().Warn(w) }

// Debug forwards a trace message to the observer.
func (ctx *Context) Debug(msg string, keyvals ...interface{}) {
	ctx.observer().Debug(msg, keyvals...)
}

// Element is a node of the document tree.
//
// The set of elements is closed: it is implemented by
// [*Text], [*Image], [*Spacer], [*Wrapper], [*HStack], [*VStack],
// [*Table] and [*PageBreak].
type Element interface {
	Box() *BoxFields

	// Type returns a short name for the variant.
	Type() string

	// Prepare computes, stores and returns the outer (margin box) size
	// of the element, given the space `available`.
	// Containers resolve the Width of their children, so that
	// `available.Width` is the exact outer width of elements
	// with a non auto Width. See [PrepareChild].
	// Preparing a prepared element fails with [ErrAlreadyPrepared].
	Prepare(ctx *Context, available Size) (Size, error)

	// Split partitions a prepared element taller than `targetHeight`.
	// The prepared head fits in `targetHeight` and the prepared tail,
	// which may be nil, holds the remaining content.
	// A nil head means the element can't be split at this height.
	// Use [SplitAt] instead of calling this method directly.
	Split(ctx *Context, targetHeight Fl) (head, tail Element, err error)

	// Reset returns the element and its children to the unprepared state.
	Reset()

	// Splittable returns true if the element may be split vertically.
	Splittable() bool

	// Copy returns a deep copy, unprepared, with a fresh identity.
	Copy() Element

	// drawContent draws the content of the prepared element
	// in the given content box.
	drawContent(ctx *DrawContext, content backend.Rect) error
}

// Status is the lifecycle state of an element.
type Status uint8

const (
	Unprepared Status = iota
	Prepared
)

func (s Status) String() string {
	if s == Prepared {
		return "prepared"
	}
	return "unprepared"
}

// PreparedState is the lifecycle state of an element,
// with its size once prepared.
type PreparedState struct {
	Status Status
	Size   Size // valid if Status is Prepared
}

// BoxFields stores the data shared by every element.
type BoxFields struct {
	Style Style
	// ID identifies the node. Fragments and copies get a fresh one.
	ID uuid.UUID

	state PreparedState
}

func newBoxFields() BoxFields { return BoxFields{ID: uuid.New()} }

func (b *BoxFields) Box() *BoxFields { return b }

// State returns the lifecycle state of the element.
func (b *BoxFields) State() PreparedState { return b.state }

// IsPrepared returns true if the element has been prepared.
func (b *BoxFields) IsPrepared() bool { return b.state.Status == Prepared }

// Size returns the prepared outer size, or the zero size
// if the element is not prepared.
func (b *BoxFields) Size() Size { return b.state.Size }

func (b *BoxFields) setPrepared(size Size) {
	b.state = PreparedState{Status: Prepared, Size: size}
}

func (b *BoxFields) reset() { b.state = PreparedState{} }

// fragment returns the fields of a new node sharing the style of b:
// it has a fresh identity and is not prepared.
func (b *BoxFields) fragment() BoxFields {
	return BoxFields{Style: b.Style, ID: uuid.New()}
}

// splittable returns false for rotated boxes and boxes with constrained heights.
func (b *BoxFields) splittable() bool {
	st := &b.Style
	return st.Rotation == R0 && !st.hasFixedHeight() && st.MinHeight == 0 && st.MaxHeight == 0
}

// bounds is the space available for the content of a box.
type bounds struct {
	Size
	// the content must use exactly the given width or height
	exactWidth, exactHeight bool
}

// prepareBox implements the steps shared by every element:
// it removes the outline from `available`, calls `measure` with the
// remaining space, applies the dimension requests and limits, and
// stores the outer size.
func prepareBox(e Element, available Size, measure func(inner bounds) (Size, error)) (Size, error) {
	box := e.Box()
	if box.IsPrepared() {
		return Size{}, &LifecycleError{Op: "prepare", Element: e, Err: ErrAlreadyPrepared}
	}
	st := &box.Style
	h, v := st.Outline()

	inner := bounds{Size: Size{utils.Clip0(available.Width - h), utils.Clip0(available.Height - v)}}
	if !st.Width.IsAuto() {
		inner.exactWidth = true
		inner.Width = clamp(inner.Width, st.MinWidth, st.MaxWidth)
	} else if st.MaxWidth > 0 {
		inner.Width = utils.MinF(inner.Width, st.MaxWidth)
	}
	if st.hasFixedHeight() {
		inner.exactHeight = true
		inner.Height = clamp(utils.Clip0(st.Height.Resolve(available.Height)-v), st.MinHeight, st.MaxHeight)
	} else if st.MaxHeight > 0 {
		inner.Height = utils.MinF(inner.Height, st.MaxHeight)
	}

	content, err := measure(inner)
	if err != nil {
		return Size{}, err
	}
	if inner.exactWidth {
		content.Width = inner.Width
	}
	if inner.exactHeight {
		content.Height = inner.Height
	}
	content.Width = clamp(content.Width, st.MinWidth, st.MaxWidth)
	content.Height = clamp(content.Height, st.MinHeight, st.MaxHeight)

	outer := Size{Width: content.Width + h, Height: content.Height + v}
	box.setPrepared(outer)
	return outer, nil
}

// EffectiveSize returns the prepared size of `e` as seen by its parent,
// that is with the axes swapped for quarter rotations.
func EffectiveSize(e Element) Size {
	b := e.Box()
	if b.Style.Rotation.Swaps() {
		return b.Size().Swap()
	}
	return b.Size()
}

// PrepareChild prepares `child` in the content box `available` of its parent:
// it resolves the Width of the child and swaps the axes of rotated children.
// It returns the effective size of the child.
func PrepareChild(ctx *Context, child Element, available Size) (Size, error) {
	st := &child.Box().Style
	local := available
	if st.Rotation.Swaps() {
		local = local.Swap()
	}
	if !st.Width.IsAuto() {
		local.Width = st.Width.Resolve(local.Width)
	}
	if _, err := child.Prepare(ctx, local); err != nil {
		return Size{}, err
	}
	return EffectiveSize(child), nil
}

// prepareInSlot prepares a child whose width has been resolved
// together with its siblings.
func prepareInSlot(ctx *Context, child Element, slot Size) (Size, error) {
	if child.Box().Style.Rotation.Swaps() {
		return PrepareChild(ctx, child, slot)
	}
	if _, err := child.Prepare(ctx, slot); err != nil {
		return Size{}, err
	}
	return EffectiveSize(child), nil
}

// slotSpec returns the length used to share space between siblings:
// auto and rotated children get a proportional share.
func slotSpec(child Element) Length {
	st := &child.Box().Style
	if st.Width.IsAuto() || st.Rotation.Swaps() {
		return Star(1)
	}
	return st.Width
}

// resolveSlots shares `available` between the given specs,
// reporting over-commitment to the observer.
func resolveSlots(ctx *Context, e Element, available Fl, specs []Length) []Fl {
	slots, overCommitted := ResolveLengths(available, specs)
	if overCommitted {
		ctx.warn(utils.CodeUnresolvableDimension, e,
			"siblings request more than the available %g pt", available)
	}
	return slots
}

// SplitAt splits the prepared element `e` so that its head fits in `targetHeight`.
// If `e` already fits, it is returned as head, with a nil tail.
// A nil head means `e` can't be split at this height.
func SplitAt(ctx *Context, e Element, targetHeight Fl) (head, tail Element, err error) {
	if !e.Box().IsPrepared() {
		return nil, nil, &LifecycleError{Op: "split", Element: e, Err: ErrNotPrepared}
	}
	if utils.LessOrClose(EffectiveSize(e).Height, targetHeight) {
		return e, nil, nil
	}
	if targetHeight <= utils.Epsilon || !e.Splittable() {
		return nil, nil, nil
	}
	return e.Split(ctx, targetHeight)
}

// forceSplitter is implemented by the containers able to give up
// their first piece of content when nothing fits.
type forceSplitter interface {
	forceSplit(ctx *Context, targetHeight Fl) (head, tail Element, err error)
}

// ForceSplit is like [SplitAt], but when no content of `e` fits in `targetHeight`,
// the head holds the first piece of content which can't be divided,
// so that the head overflows while the remaining content goes to the tail.
// It is used to keep paginating the content following an oversized piece.
// A nil head means `e` has a single piece of content.
func ForceSplit(ctx *Context, e Element, targetHeight Fl) (head, tail Element, err error) {
	head, tail, err = SplitAt(ctx, e, targetHeight)
	if err != nil || head != nil || !e.Splittable() {
		return head, tail, err
	}
	if fs, ok := e.(forceSplitter); ok {
		return fs.forceSplit(ctx, utils.Clip0(targetHeight))
	}
	return nil, nil, nil
}

// Content returns the content of the leaves of `e`, in order:
// the lines of text leaves (or the whole text if `e` is not prepared),
// and a description of the other leaves.
// Splitting an element partitions its content.
func Content(e Element) []string {
	switch e := e.(type) {
	case *Text:
		if e.IsPrepared() {
			return append([]string(nil), e.lines...)
		}
		return []string{e.Text}
	case *Image:
		return []string{fmt.Sprintf("image %s", e.ID)}
	case *Spacer:
		return []string{fmt.Sprintf("spacer %s", e.ID)}
	case *PageBreak:
		return nil
	case *Wrapper:
		return Content(e.Child)
	case *HStack:
		return childrenContent(e.Children)
	case *VStack:
		return childrenContent(e.Children)
	case *Table:
		var out []string
		for _, row := range e.Rows {
			out = append(out, childrenContent(row)...)
		}
		return out
	}
	return nil
}

func childrenContent(children []Element) []string {
	var out []string
	for _, child := range children {
		out = append(out, Content(child)...)
	}
	return out
}

func copyChildren(children []Element) []Element {
	out := make([]Element, len(children))
	for i, c := range children {
		out[i] = c.Copy()
	}
	return out
}

func resetChildren(children []Element) {
	for _, c := range children {
		c.Reset()
	}
}
