// Package raster implements a backend drawing each page on
// an RGBA image, using github.com/fogleman/gg.
package raster

import (
	"errors"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"

	"github.com/benoitkugler/paginate/backend"
	"github.com/benoitkugler/paginate/matrix"
	"github.com/benoitkugler/paginate/text"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

type Fl = backend.Fl

var (
	_ backend.Document = (*Document)(nil)
	_ backend.Page     = (*Page)(nil)
)

// FaceSource provides the font faces used to draw text.
// It is implemented by [text.FaceMetrics], so that
// glyphs are drawn with the faces used to measure them.
type FaceSource interface {
	Face(ft text.Font) (font.Face, error)
}

// Link is a link area, in pixels.
type Link struct {
	Bounds image.Rectangle
	URL    string
}

// Document stores one image per page.
type Document struct {
	faces FaceSource
	scale Fl

	// Background is painted on every new page.
	// The default is white.
	Background backend.Color

	pages  []*Page
	closed bool
}

// New returns a raster document, where one point maps to `scale` pixels.
func New(faces FaceSource, scale Fl) *Document {
	if scale <= 0 {
		scale = 1
	}
	return &Document{faces: faces, scale: scale, Background: backend.White}
}

func (doc *Document) AddPage(width, height Fl) (backend.Page, error) {
	if doc.closed {
		return nil, errors.New("raster: document is closed")
	}
	w, h := int(math.Ceil(width*doc.scale)), int(math.Ceil(height*doc.scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("raster: invalid page size %gx%g", width, height)
	}
	dc := gg.NewContext(w, h)
	if !doc.Background.IsNone() {
		dc.SetColor(doc.Background)
		dc.Clear()
	}
	dc.Scale(doc.scale, doc.scale)
	page := &Page{dc: dc, faces: doc.faces, scale: doc.scale}
	doc.pages = append(doc.pages, page)
	return page, nil
}

func (doc *Document) Close() error {
	doc.closed = true
	return nil
}

// Pages returns the drawn pages.
func (doc *Document) Pages() []*Page { return doc.pages }

// Images returns the images of the drawn pages.
func (doc *Document) Images() []image.Image {
	out := make([]image.Image, len(doc.pages))
	for i, p := range doc.pages {
		out[i] = p.dc.Image()
	}
	return out
}

// WritePNGs saves each page in `dir`, as a PNG file named by
// formatting `pattern` with the page number (starting at 1).
// It returns the paths of the files.
func (doc *Document) WritePNGs(dir, pattern string) ([]string, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, err
	}
	paths := make([]string, len(doc.pages))
	for i, p := range doc.pages {
		paths[i] = filepath.Join(dir, fmt.Sprintf(pattern, i+1))
		if err := p.dc.SavePNG(paths[i]); err != nil {
			return nil, fmt.Errorf("raster: saving page %d: %w", i+1, err)
		}
	}
	return paths, nil
}

// Page is a page drawn on an image.
type Page struct {
	dc    *gg.Context
	faces FaceSource
	scale Fl

	// Links are the link areas added to the page.
	Links []Link
}

// Image returns the drawing of the page.
func (p *Page) Image() image.Image { return p.dc.Image() }

func (p *Page) FillRectangle(r backend.Rect, c backend.Color) error {
	p.dc.SetColor(c)
	p.dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	p.dc.Fill()
	return nil
}

// gg strokes in device space
func (p *Page) deviceLength(v Fl) Fl { return v * p.scale }

func (p *Page) StrokeLine(x0, y0, x1, y1 Fl, s backend.Stroke) error {
	p.dc.SetColor(s.Color)
	p.dc.SetLineWidth(p.deviceLength(s.Width))
	dashes := make([]float64, len(s.Dashes))
	for i, d := range s.Dashes {
		dashes[i] = p.deviceLength(d)
	}
	p.dc.SetDash(dashes...)
	p.dc.DrawLine(x0, y0, x1, y1)
	p.dc.Stroke()
	p.dc.SetDash()
	return nil
}

func (p *Page) DrawText(run backend.TextRun) error {
	if p.faces == nil {
		return errors.New("raster: no font source")
	}
	face, err := p.faces.Face(run.Font)
	if err != nil {
		return err
	}
	p.dc.SetFontFace(face)
	p.dc.SetColor(run.Color)
	p.dc.DrawString(run.Text, run.X, run.Y)
	return nil
}

func (p *Page) DrawImage(img image.Image, r backend.Rect) error {
	b := img.Bounds()
	if b.Empty() {
		return nil
	}
	p.dc.Push()
	defer p.dc.Pop()
	p.dc.Translate(r.X, r.Y)
	p.dc.Scale(r.Width/Fl(b.Dx()), r.Height/Fl(b.Dy()))
	p.dc.DrawImage(img, -b.Min.X, -b.Min.Y)
	return nil
}

func (p *Page) AddLink(r backend.Rect, url string) error {
	x0, y0 := p.dc.TransformPoint(r.X, r.Y)
	x1, y1 := p.dc.TransformPoint(r.X+r.Width, r.Y+r.Height)
	bounds := image.Rect(int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)))
	p.Links = append(p.Links, Link{Bounds: bounds, URL: url})
	return nil
}

func (p *Page) OnNewStack(f func() error) error {
	p.dc.Push()
	defer p.dc.Pop()
	return f()
}

// Transform decomposes `mt` as translation, rotation, shear and scaling,
// which are the operations supported by gg.
func (p *Page) Transform(mt matrix.Transform) {
	p.dc.Translate(mt.E, mt.F)
	sx := math.Hypot(mt.A, mt.B)
	if sx == 0 {
		p.dc.Scale(0, 0)
		return
	}
	sy := mt.Determinant() / sx
	p.dc.Rotate(math.Atan2(mt.B, mt.A))
	if sy != 0 {
		if k := (mt.A*mt.C + mt.B*mt.D) / (sx * sy); k != 0 {
			p.dc.Shear(k, 0)
		}
	}
	p.dc.Scale(sx, sy)
}
