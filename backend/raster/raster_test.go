package raster

import (
	"image"
	"image/color"
	"math"
	"os"
	"testing"

	"github.com/benoitkugler/paginate/backend"
	"github.com/benoitkugler/paginate/matrix"
	"github.com/benoitkugler/paginate/text"
)

var (
	red   = backend.Color{R: 1, A: 1}
	green = backend.Color{G: 1, A: 1}
)

func newPage(t *testing.T, scale Fl) (*Document, *Page) {
	t.Helper()
	doc := New(text.NewFaceMetrics(), scale)
	page, err := doc.AddPage(100, 100)
	if err != nil {
		t.Fatal(err)
	}
	return doc, page.(*Page)
}

func assertPixel(t *testing.T, img image.Image, x, y int, exp color.RGBA) {
	t.Helper()
	got := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
	if got != exp {
		t.Fatalf("pixel (%d, %d): expected %v, got %v", x, y, exp, got)
	}
}

var (
	pxWhite = color.RGBA{255, 255, 255, 255}
	pxRed   = color.RGBA{255, 0, 0, 255}
	pxGreen = color.RGBA{0, 255, 0, 255}
)

func TestFillScaled(t *testing.T) {
	doc, page := newPage(t, 2)
	if err := page.FillRectangle(backend.Rect{X: 10, Y: 10, Width: 20, Height: 20}, red); err != nil {
		t.Fatal(err)
	}
	img := doc.Images()[0]
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 200 {
		t.Fatalf("unexpected bounds %v", b)
	}
	assertPixel(t, img, 30, 30, pxRed)
	assertPixel(t, img, 70, 70, pxWhite)
	assertPixel(t, img, 10, 10, pxWhite)
}

func TestTransformStack(t *testing.T) {
	doc, page := newPage(t, 1)
	err := page.OnNewStack(func() error {
		page.Transform(matrix.Mul(matrix.Translation(50, 0), matrix.QuarterRotation(1)))
		return page.FillRectangle(backend.Rect{Width: 20, Height: 10}, red)
	})
	if err != nil {
		t.Fatal(err)
	}
	_ = page.FillRectangle(backend.Rect{Width: 5, Height: 5}, green)

	img := doc.Images()[0]
	assertPixel(t, img, 45, 10, pxRed)
	assertPixel(t, img, 55, 5, pxWhite)
	assertPixel(t, img, 45, 25, pxWhite)
	// the transformation is restored
	assertPixel(t, img, 2, 2, pxGreen)
}

func TestTransformDecomposition(t *testing.T) {
	for _, mt := range []matrix.Transform{
		{A: 2, B: 1, C: 0.5, D: 3, E: 7, F: 8},
		{A: 0, B: -1, C: 1, D: 0, E: 0, F: 40},
		{A: -1, B: 0, C: 0, D: -1, E: 30, F: 20},
		{A: 1, B: 0, C: 0.3, D: 1, E: 0, F: 0},
	} {
		_, page := newPage(t, 1)
		page.Transform(mt)
		for _, pt := range [][2]Fl{{0, 0}, {1, 0}, {0, 1}, {3.5, -2}} {
			x, y := page.dc.TransformPoint(pt[0], pt[1])
			ex, ey := mt.Apply(pt[0], pt[1])
			if math.Abs(x-ex) > 1e-9 || math.Abs(y-ey) > 1e-9 {
				t.Fatalf("%v: (%g, %g) -> (%g, %g), expected (%g, %g)", mt, pt[0], pt[1], x, y, ex, ey)
			}
		}
	}
}

func TestStrokeAndImage(t *testing.T) {
	doc, page := newPage(t, 1)
	if err := page.StrokeLine(0, 50.5, 100, 50.5, backend.Stroke{Width: 3, Color: red}); err != nil {
		t.Fatal(err)
	}
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	src.Set(0, 0, pxGreen)
	if err := page.DrawImage(src, backend.Rect{X: 10, Y: 10, Width: 20, Height: 20}); err != nil {
		t.Fatal(err)
	}

	img := doc.Images()[0]
	assertPixel(t, img, 20, 50, pxRed)
	assertPixel(t, img, 20, 45, pxWhite)
	// the top left source pixel covers [10, 20]x[10, 20]
	if c := color.RGBAModel.Convert(img.At(12, 12)).(color.RGBA); c.G < 200 || c.R > 60 {
		t.Fatalf("expected a green pixel, got %v", c)
	}
	assertPixel(t, img, 5, 5, pxWhite)
}

func TestDrawText(t *testing.T) {
	doc, page := newPage(t, 1)
	err := page.DrawText(backend.TextRun{Text: "H", Font: text.Font{Family: text.DefaultFamily, Size: 40}, X: 10, Y: 50, Color: backend.Black})
	if err != nil {
		t.Fatal(err)
	}
	img := doc.Images()[0]
	dark := 0
	for y := 10; y < 50; y++ {
		for x := 10; x < 50; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r < 0x8000 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Fatal("expected glyph pixels")
	}

	noFaces := New(nil, 1)
	p, _ := noFaces.AddPage(10, 10)
	if err := p.DrawText(backend.TextRun{Text: "a"}); err == nil {
		t.Fatal("expected error without font source")
	}
}

func TestLinksAndOutput(t *testing.T) {
	doc, page := newPage(t, 2)
	_ = page.AddLink(backend.Rect{X: 10, Y: 10, Width: 20, Height: 20}, "https://example.com")
	if len(page.Links) != 1 || page.Links[0].Bounds != image.Rect(20, 20, 60, 60) {
		t.Fatalf("unexpected links %v", page.Links)
	}
	if _, err := doc.AddPage(50, 50); err != nil {
		t.Fatal(err)
	}
	if err := doc.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := doc.AddPage(50, 50); err == nil {
		t.Fatal("expected error on closed document")
	}

	paths, err := doc.WritePNGs(t.TempDir(), "page-%02d.png")
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 files, got %v", paths)
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			t.Fatal(err)
		}
	}
}
