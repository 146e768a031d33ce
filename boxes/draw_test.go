package boxes_test

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/benoitkugler/paginate/backend"
	"github.com/benoitkugler/paginate/boxes"
	"github.com/benoitkugler/paginate/text"
	tu "github.com/benoitkugler/paginate/utils/testutils"
	"github.com/benoitkugler/paginate/utils/testutils/tracer"
)

var red = backend.Color{R: 1, A: 1}

func prepared(t *testing.T, e boxes.Element) boxes.Element {
	t.Helper()
	ctx := &boxes.Context{Metrics: tu.NewMetrics()}
	if _, err := boxes.PrepareChild(ctx, e, boxes.Size{Width: 200, Height: 500}); err != nil {
		t.Fatal(err)
	}
	return e
}

func draw(t *testing.T, e boxes.Element, x, y boxes.Fl) []string {
	t.Helper()
	rec := tracer.NewRecorder()
	page, _ := rec.AddPage(200, 500)
	if err := boxes.Draw(&boxes.DrawContext{Page: page}, e, x, y); err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimSpace(rec.String()), "\n")[1:]
}

func TestDrawDecorations(t *testing.T) {
	txt := boxes.NewText("hi", text.DefaultFont)
	txt.Style.Fill = red
	txt.Style.Border = boxes.Border{Widths: boxes.UniformSides(2), Style: boxes.Solid, Color: backend.Black}
	txt.Style.Padding = boxes.UniformSides(3)
	txt.Style.Link = "https://example.com"
	prepared(t, txt)
	tu.AssertEqual(t, txt.Size(), boxes.Size{Width: 20, Height: 20})

	lines := draw(t, txt, 5, 7)
	tu.AssertEqual(t, lines, []string{
		"FillRectangle : [5 7 20 20] rgba(1, 0, 0, 1)",
		"StrokeLine : 5 8 25 8 width 2 rgba(0, 0, 0, 1) dashes []",
		"StrokeLine : 24 7 24 27 width 2 rgba(0, 0, 0, 1) dashes []",
		"StrokeLine : 25 26 5 26 width 2 rgba(0, 0, 0, 1) dashes []",
		"StrokeLine : 6 27 6 7 width 2 rgba(0, 0, 0, 1) dashes []",
		`DrawText : "hi" Go 11 at 10 20 width 10 rgba(0, 0, 0, 1)`,
		"AddLink : [5 7 20 20] https://example.com",
	})
}

func TestDrawDashedBorder(t *testing.T) {
	sp := boxes.NewSpacer(boxes.Fixed(10), boxes.Fixed(10))
	sp.Style.Border = boxes.Border{Widths: boxes.Sides{Top: 1}, Style: boxes.Dashed, Color: red}
	prepared(t, sp)
	tu.AssertEqual(t, draw(t, sp, 0, 0), []string{"StrokeLine : 0 0.5 10 0.5 width 1 rgba(1, 0, 0, 1) dashes [3 3]"})

	sp.Style.Border.Style = boxes.NoBorder
	tu.AssertEqual(t, len(draw(t, sp, 0, 0)), 0)
}

func TestDrawRotated(t *testing.T) {
	txt := boxes.NewText("hello", text.DefaultFont)
	txt.Style.Rotation = boxes.R90
	prepared(t, txt)

	lines := draw(t, txt, 10, 20)
	tu.AssertEqual(t, lines, []string{
		"OnNewStack :",
		"  Transform : {0 1 -1 0 20 20}",
		`  DrawText : "hello" Go 11 at 0 8 width 25 rgba(0, 0, 0, 1)`,
	})
}

func TestDrawLayout(t *testing.T) {
	left, right := boxes.NewText("a", text.DefaultFont), boxes.NewText("b", text.DefaultFont)
	right.Style.HAlign = boxes.Right
	right.Style.VAlign = boxes.Bottom
	img := boxes.NewImage(image.NewRGBA(image.Rect(0, 0, 4, 30)))
	img.Style.Width = boxes.Fixed(4)
	hs := boxes.NewHStack(left, right, img)
	vs := boxes.NewVStack(hs, boxes.NewText("c", text.DefaultFont))
	prepared(t, vs)

	// slots are 98, 98 and 4 wide, the row is 30 high
	tu.AssertEqual(t, draw(t, vs, 0, 0), []string{
		`DrawText : "a" Go 11 at 0 8 width 5 rgba(0, 0, 0, 1)`,
		`DrawText : "b" Go 11 at 191 28 width 5 rgba(0, 0, 0, 1)`,
		"DrawImage : (0,0)-(4,30) [196 0 4 30]",
		`DrawText : "c" Go 11 at 0 38 width 5 rgba(0, 0, 0, 1)`,
	})
}

func TestDrawIdempotent(t *testing.T) {
	table := boxes.NewTable([]boxes.Length{boxes.Fixed(40), boxes.Auto},
		[]boxes.Element{boxes.NewText("one two three", text.DefaultFont), boxes.NewBlock(boxes.NewText("x", text.DefaultFont))},
	)
	table.Style.Fill = red
	rotated := boxes.NewText("rotated", text.DefaultFont)
	rotated.Style.Rotation = boxes.R270
	vs := boxes.NewVStack(table, rotated)
	prepared(t, vs)
	before := vs.Size()

	first, second := draw(t, vs, 3, 4), draw(t, vs, 3, 4)
	tu.AssertEqual(t, first, second)
	tu.AssertEqual(t, vs.Size(), before)
}

func TestDrawNotPrepared(t *testing.T) {
	err := boxes.Draw(&boxes.DrawContext{Page: tracer.NewDrawerNoOp()}, boxes.NewVStack(), 0, 0)
	if !errors.Is(err, boxes.ErrNotPrepared) {
		t.Fatalf("expected ErrNotPrepared, got %v", err)
	}

	// a child not prepared is detected too
	vs := boxes.NewVStack(boxes.NewText("a", text.DefaultFont))
	prepared(t, vs)
	vs.Children[0].Reset()
	err = boxes.Draw(&boxes.DrawContext{Page: tracer.NewDrawerNoOp()}, vs, 0, 0)
	var le *boxes.LifecycleError
	if !errors.As(err, &le) || le.Op != "render" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestDrawWriterFailure(t *testing.T) {
	failure := errors.New("disk full")
	rec := tracer.NewRecorder()
	rec.Fail = func(op string) error {
		if op == "DrawText" {
			return failure
		}
		return nil
	}
	page, _ := rec.AddPage(100, 100)
	err := boxes.Draw(&boxes.DrawContext{Page: page}, prepared(t, boxes.NewBlock(boxes.NewText("a", text.DefaultFont))), 0, 0)
	if !errors.Is(err, failure) {
		t.Fatalf("expected writer error, got %v", err)
	}
}
