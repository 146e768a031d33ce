package boxes

import (
	"fmt"
	"image"
	"io"

	// registered image formats
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/benoitkugler/paginate/backend"
)

// Image is a leaf displaying a raster image.
// Its natural size is one point per pixel.
// Images are never split.
type Image struct {
	BoxFields

	Image image.Image
}

func NewImage(img image.Image) *Image {
	return &Image{BoxFields: newBoxFields(), Image: img}
}

// DecodeImage reads an image in one of the registered formats
// (PNG, JPEG, GIF, BMP, TIFF or WebP).
func DecodeImage(r io.Reader) (*Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return NewImage(img), nil
}

func (im *Image) Type() string { return "Image" }

func (im *Image) naturalSize() Size {
	b := im.Image.Bounds()
	return Size{Fl(b.Dx()), Fl(b.Dy())}
}

// Prepare keeps the aspect ratio when only one dimension is requested,
// and scales the image down to the available width.
func (im *Image) Prepare(ctx *Context, available Size) (Size, error) {
	return prepareBox(im, available, func(inner bounds) (Size, error) {
		size := im.naturalSize()
		if size.Width == 0 || size.Height == 0 {
			return Size{}, nil
		}
		ratio := size.Height / size.Width
		switch {
		case inner.exactWidth && inner.exactHeight:
			return inner.Size, nil
		case inner.exactWidth:
			return Size{inner.Width, inner.Width * ratio}, nil
		case inner.exactHeight:
			return Size{inner.Height / ratio, inner.Height}, nil
		case size.Width > inner.Width:
			return Size{inner.Width, inner.Width * ratio}, nil
		}
		return size, nil
	})
}

func (im *Image) Reset() { im.reset() }

func (im *Image) Splittable() bool { return false }

func (im *Image) Split(*Context, Fl) (head, tail Element, err error) { return nil, nil, nil }

func (im *Image) Copy() Element {
	out := NewImage(im.Image)
	out.Style = im.Style
	return out
}

func (im *Image) drawContent(ctx *DrawContext, content backend.Rect) error {
	if content.Width == 0 || content.Height == 0 {
		return nil
	}
	return ctx.Page.DrawImage(im.Image, content)
}

// Spacer is an empty leaf, sized by its Width and Height.
type Spacer struct {
	BoxFields
}

// NewSpacer returns a spacer of the given size.
// Auto and proportional heights resolve to 0.
func NewSpacer(width, height Length) *Spacer {
	sp := &Spacer{BoxFields: newBoxFields()}
	sp.Style.Width, sp.Style.Height = width, height
	return sp
}

func (sp *Spacer) Type() string { return "Spacer" }

func (sp *Spacer) Prepare(ctx *Context, available Size) (Size, error) {
	return prepareBox(sp, available, func(bounds) (Size, error) { return Size{}, nil })
}

func (sp *Spacer) Reset() { sp.reset() }

func (sp *Spacer) Splittable() bool { return false }

func (sp *Spacer) Split(*Context, Fl) (head, tail Element, err error) { return nil, nil, nil }

func (sp *Spacer) Copy() Element {
	out := &Spacer{BoxFields: sp.BoxFields.fragment()}
	return out
}

func (sp *Spacer) drawContent(*DrawContext, backend.Rect) error { return nil }

// PageBreak is a zero size marker, ending the current page.
// A normal break is ignored if nothing has been placed since the
// previous break, while a forced break always starts a new page.
// Page breaks are only meaningful as top level elements of a page set.
type PageBreak struct {
	BoxFields

	Forced bool
}

func NewPageBreak(forced bool) *PageBreak {
	return &PageBreak{BoxFields: newBoxFields(), Forced: forced}
}

func (pb *PageBreak) Type() string { return "PageBreak" }

func (pb *PageBreak) Prepare(ctx *Context, available Size) (Size, error) {
	if pb.IsPrepared() {
		return Size{}, &LifecycleError{Op: "prepare", Element: pb, Err: ErrAlreadyPrepared}
	}
	pb.setPrepared(Size{})
	return Size{}, nil
}

func (pb *PageBreak) Reset() { pb.reset() }

func (pb *PageBreak) Splittable() bool { return false }

func (pb *PageBreak) Split(*Context, Fl) (head, tail Element, err error) { return nil, nil, nil }

func (pb *PageBreak) Copy() Element {
	return &PageBreak{BoxFields: pb.BoxFields.fragment(), Forced: pb.Forced}
}

func (pb *PageBreak) drawContent(*DrawContext, backend.Rect) error { return nil }
