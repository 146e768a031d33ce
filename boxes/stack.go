package boxes

import (
	"github.com/benoitkugler/paginate/backend"
	"github.com/benoitkugler/paginate/utils"
)

// VStack stacks its children vertically.
// It is split between children, or inside the first
// child crossing the split height.
type VStack struct {
	BoxFields

	Children []Element
}

func NewVStack(children ...Element) *VStack {
	return &VStack{BoxFields: newBoxFields(), Children: children}
}

func (vs *VStack) Type() string { return "VStack" }

func (vs *VStack) Prepare(ctx *Context, available Size) (Size, error) {
	return prepareBox(vs, available, func(inner bounds) (Size, error) {
		var out Size
		for _, child := range vs.Children {
			size, err := PrepareChild(ctx, child, inner.Size)
			if err != nil {
				return Size{}, err
			}
			out.Width = utils.MaxF(out.Width, size.Width)
			out.Height += size.Height
		}
		return out, nil
	})
}

func (vs *VStack) Reset() {
	vs.reset()
	resetChildren(vs.Children)
}

func (vs *VStack) Splittable() bool { return vs.splittable() }

// stack returns a prepared fragment of vs with the given children.
func (vs *VStack) stack(children []Element) *VStack {
	out := &VStack{BoxFields: vs.BoxFields.fragment(), Children: children}
	_, v := out.Style.Outline()
	height := v
	for _, child := range children {
		height += EffectiveSize(child).Height
	}
	out.setPrepared(Size{Width: vs.Size().Width, Height: height})
	return out
}

func (vs *VStack) Split(ctx *Context, targetHeight Fl) (head, tail Element, err error) {
	_, v := vs.Style.Outline()
	inner := targetHeight - v

	var y Fl
	for i, child := range vs.Children {
		childHeight := EffectiveSize(child).Height
		if utils.LessOrClose(y+childHeight, inner) {
			y += childHeight
			continue
		}

		// child crosses the split height
		var headChildren, tailChildren []Element
		childHead, childTail, err := SplitAt(ctx, child, inner-y)
		if err != nil {
			return nil, nil, err
		}
		if childHead != nil {
			headChildren = append(append(headChildren, vs.Children[:i]...), childHead)
			if childTail != nil {
				tailChildren = append(tailChildren, childTail)
			}
			tailChildren = append(tailChildren, vs.Children[i+1:]...)
		} else {
			headChildren = append(headChildren, vs.Children[:i]...)
			tailChildren = append(tailChildren, vs.Children[i:]...)
		}
		if len(headChildren) == 0 {
			return nil, nil, nil
		}
		ctx.Debug("splitting vertical stack", "id", vs.ID, "head", len(headChildren), "tail", len(tailChildren))
		head = vs.stack(headChildren)
		if len(tailChildren) != 0 {
			tail = vs.stack(tailChildren)
		}
		return head, tail, nil
	}
	// every child fits: only the outline overflows
	return nil, nil, nil
}

// forceSplit puts the first child, or its forced head, alone in the head.
func (vs *VStack) forceSplit(ctx *Context, targetHeight Fl) (head, tail Element, err error) {
	if len(vs.Children) == 0 {
		return nil, nil, nil
	}
	_, v := vs.Style.Outline()
	first := vs.Children[0]
	childHead, childTail, err := ForceSplit(ctx, first, utils.Clip0(targetHeight-v))
	if err != nil {
		return nil, nil, err
	}
	var tailChildren []Element
	if childHead == nil {
		childHead = first
	} else if childTail != nil {
		tailChildren = append(tailChildren, childTail)
	}
	tailChildren = append(tailChildren, vs.Children[1:]...)
	if len(tailChildren) == 0 {
		return nil, nil, nil
	}
	ctx.Debug("forcing split of vertical stack", "id", vs.ID, "tail", len(tailChildren))
	return vs.stack([]Element{childHead}), vs.stack(tailChildren), nil
}

func (vs *VStack) Copy() Element {
	return &VStack{BoxFields: vs.BoxFields.fragment(), Children: copyChildren(vs.Children)}
}

func (vs *VStack) drawContent(ctx *DrawContext, content backend.Rect) error {
	y := content.Y
	for _, child := range vs.Children {
		size := EffectiveSize(child)
		x := content.X + child.Box().Style.HAlign.Offset(content.Width-size.Width)
		if err := Draw(ctx, child, x, y); err != nil {
			return err
		}
		y += size.Height
	}
	return nil
}

// HStack places its children side by side.
// The available width is shared between the children according
// to their Width, auto widths counting as proportional.
// An horizontal stack is never split.
type HStack struct {
	BoxFields

	Children []Element

	slots []Fl // width of each slot, computed by Prepare
}

func NewHStack(children ...Element) *HStack {
	return &HStack{BoxFields: newBoxFields(), Children: children}
}

func (hs *HStack) Type() string { return "HStack" }

func (hs *HStack) Prepare(ctx *Context, available Size) (Size, error) {
	return prepareBox(hs, available, func(inner bounds) (Size, error) {
		specs := make([]Length, len(hs.Children))
		for i, child := range hs.Children {
			specs[i] = slotSpec(child)
		}
		shares := resolveSlots(ctx, hs, inner.Width, specs)

		hs.slots = make([]Fl, len(hs.Children))
		var out Size
		for i, child := range hs.Children {
			size, err := prepareInSlot(ctx, child, Size{shares[i], inner.Height})
			if err != nil {
				return Size{}, err
			}
			hs.slots[i] = utils.MaxF(shares[i], size.Width)
			out.Width += hs.slots[i]
			out.Height = utils.MaxF(out.Height, size.Height)
		}
		return out, nil
	})
}

func (hs *HStack) Reset() {
	hs.reset()
	hs.slots = nil
	resetChildren(hs.Children)
}

func (hs *HStack) Splittable() bool { return false }

func (hs *HStack) Split(*Context, Fl) (head, tail Element, err error) { return nil, nil, nil }

func (hs *HStack) Copy() Element {
	return &HStack{BoxFields: hs.BoxFields.fragment(), Children: copyChildren(hs.Children)}
}

func (hs *HStack) drawContent(ctx *DrawContext, content backend.Rect) error {
	x := content.X
	for i, child := range hs.Children {
		size := EffectiveSize(child)
		st := &child.Box().Style
		cx := x + st.HAlign.Offset(hs.slots[i]-size.Width)
		cy := content.Y + st.VAlign.Offset(content.Height-size.Height)
		if err := Draw(ctx, child, cx, cy); err != nil {
			return err
		}
		x += hs.slots[i]
	}
	return nil
}
