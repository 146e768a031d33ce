package boxes

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/benoitkugler/paginate/text"
	"github.com/benoitkugler/paginate/utils"
	tu "github.com/benoitkugler/paginate/utils/testutils"
)

var font = text.DefaultFont

func newContext() (*Context, *Collector) {
	c := &Collector{}
	return &Context{Metrics: tu.NewMetrics(), Observer: c}, c
}

// textLines returns a text leaf with n lines of 4 characters,
// that is 20pt wide and n * 10pt high with the test metrics.
func textLines(n int) *Text {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = "line"
	}
	return NewText(strings.Join(lines, "\n"), font)
}

func prepare(t *testing.T, ctx *Context, e Element, available Size) Size {
	t.Helper()
	size, err := PrepareChild(ctx, e, available)
	if err != nil {
		t.Fatal(err)
	}
	return size
}

func TestLifecycle(t *testing.T) {
	ctx, _ := newContext()
	for _, e := range []Element{
		NewText("hello", font),
		NewImage(image.NewRGBA(image.Rect(0, 0, 4, 4))),
		NewSpacer(Fixed(2), Fixed(3)),
		NewPageBreak(false),
		NewBlock(NewText("a", font)),
		NewVStack(NewText("a", font), NewText("b", font)),
		NewHStack(NewText("a", font)),
		NewTable([]Length{Auto}, []Element{NewText("a", font)}),
	} {
		tu.AssertEqual(t, e.Box().State().Status, Unprepared)
		if _, err := e.Prepare(ctx, Size{100, 100}); err != nil {
			t.Fatal(err)
		}
		tu.AssertEqual(t, e.Box().State().Status, Prepared)

		_, err := e.Prepare(ctx, Size{100, 100})
		if !errors.Is(err, ErrAlreadyPrepared) {
			t.Fatalf("%s: expected ErrAlreadyPrepared, got %v", e.Type(), err)
		}
		var le *LifecycleError
		if !errors.As(err, &le) || le.Op != "prepare" || le.Element != e {
			t.Fatalf("unexpected error %v", err)
		}

		e.Reset()
		tu.AssertEqual(t, e.Box().State(), PreparedState{})
		if _, err := e.Prepare(ctx, Size{100, 100}); err != nil {
			t.Fatalf("%s: prepare after reset: %v", e.Type(), err)
		}
	}
}

func TestResetChildren(t *testing.T) {
	ctx, _ := newContext()
	child := NewText("a", font)
	vs := NewVStack(NewBlock(child))
	prepare(t, ctx, vs, Size{100, 100})
	tu.AssertEqual(t, child.IsPrepared(), true)
	vs.Reset()
	tu.AssertEqual(t, child.IsPrepared(), false)
}

func TestSplitNotPrepared(t *testing.T) {
	ctx, _ := newContext()
	_, _, err := SplitAt(ctx, textLines(3), 10)
	if !errors.Is(err, ErrNotPrepared) {
		t.Fatalf("expected ErrNotPrepared, got %v", err)
	}
}

func TestPrepareText(t *testing.T) {
	ctx, _ := newContext()

	txt := NewText("hello world", font)
	tu.AssertEqual(t, prepare(t, ctx, txt, Size{1000, 1000}), Size{55, 10})
	tu.AssertEqual(t, txt.Lines(), []string{"hello world"})

	txt = NewText("hello world", font)
	txt.Style.Padding = UniformSides(5)
	txt.Style.Margin = UniformSides(2)
	txt.Style.Border.Widths = UniformSides(1)
	// 40 - 16 = 24 pt for the content: one word per line
	tu.AssertEqual(t, prepare(t, ctx, txt, Size{40, 1000}), Size{25 + 16, 20 + 16})
	tu.AssertEqual(t, txt.Lines(), []string{"hello ", "world"})

	// NFC normalization
	txt = NewText("e\u0301", font)
	tu.AssertEqual(t, txt.Text, "\u00e9")

	// invalid bytes are replaced
	txt = NewText("ab\xff cd", font)
	tu.AssertEqual(t, txt.Text, "ab\uFFFD cd")
	prepare(t, ctx, txt, Size{20, 1000})
	tu.AssertEqual(t, strings.Join(txt.Lines(), ""), "ab\uFFFD cd")
}

func TestPrepareDimensions(t *testing.T) {
	ctx, _ := newContext()

	for _, test := range []struct {
		name  string
		style Style
		exp   Size
	}{
		{"auto", Style{}, Size{10, 10}},
		{"fixed width", Style{Width: Fixed(100)}, Size{100, 10}},
		{"percent width", Style{Width: Percent(50)}, Size{150, 10}},
		{"star width", Style{Width: Star(2)}, Size{300, 10}},
		{"fixed height", Style{Height: Fixed(42)}, Size{10, 42}},
		{"percent height", Style{Height: Percent(10)}, Size{10, 50}},
		{"star height is auto", Style{Height: Star(1)}, Size{10, 10}},
		{"min size", Style{MinWidth: 80, MinHeight: 30}, Size{80, 30}},
		{"max width", Style{Width: Fixed(200), MaxWidth: 60}, Size{60, 10}},
		{"limits apply to the content box", Style{MinWidth: 80, Padding: UniformSides(5)}, Size{90, 20}},
		{"fixed size includes outline", Style{Width: Fixed(100), Height: Fixed(40), Margin: UniformSides(10)}, Size{100, 40}},
	} {
		t.Run(test.name, func(t *testing.T) {
			txt := NewText("ab", font)
			txt.Style = test.style
			tu.AssertEqual(t, prepare(t, ctx, txt, Size{300, 500}), test.exp)
		})
	}
}

func TestPrepareRotated(t *testing.T) {
	ctx, _ := newContext()

	txt := NewText("hello", font)
	txt.Style.Rotation = R90
	tu.AssertEqual(t, prepare(t, ctx, txt, Size{300, 500}), Size{10, 25})
	// the prepared size is in the local frame
	tu.AssertEqual(t, txt.Size(), Size{25, 10})
	tu.AssertEqual(t, txt.Splittable(), false)

	// the available height becomes the available width
	txt = NewText("hello world", font)
	txt.Style.Rotation = R270
	tu.AssertEqual(t, prepare(t, ctx, txt, Size{300, 40}), Size{20, 25})
}

func TestPrepareImage(t *testing.T) {
	ctx, _ := newContext()
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))

	for _, test := range []struct {
		name      string
		style     Style
		available Size
		exp       Size
	}{
		{"natural", Style{}, Size{300, 300}, Size{40, 20}},
		{"fixed width", Style{Width: Fixed(80)}, Size{300, 300}, Size{80, 40}},
		{"fixed height", Style{Height: Fixed(40)}, Size{300, 300}, Size{80, 40}},
		{"both", Style{Width: Fixed(10), Height: Fixed(40)}, Size{300, 300}, Size{10, 40}},
		{"scaled down", Style{}, Size{20, 300}, Size{20, 10}},
	} {
		t.Run(test.name, func(t *testing.T) {
			im := NewImage(img)
			im.Style = test.style
			tu.AssertEqual(t, prepare(t, ctx, im, test.available), test.exp)
		})
	}
}

func TestPrepareSpacer(t *testing.T) {
	ctx, _ := newContext()
	tu.AssertEqual(t, prepare(t, ctx, NewSpacer(Fixed(10), Fixed(30)), Size{300, 500}), Size{10, 30})
	tu.AssertEqual(t, prepare(t, ctx, NewSpacer(Auto, Percent(10)), Size{300, 500}), Size{0, 50})
	tu.AssertEqual(t, prepare(t, ctx, NewPageBreak(true), Size{300, 500}), Size{0, 0})
}

func TestPrepareWrappers(t *testing.T) {
	ctx, _ := newContext()
	tu.AssertEqual(t, prepare(t, ctx, NewBlock(NewText("hello", font)), Size{300, 500}), Size{300, 10})
	tu.AssertEqual(t, prepare(t, ctx, NewInline(NewText("hello", font)), Size{300, 500}), Size{25, 10})

	inline := NewInline(NewText("hello", font))
	inline.Style.Padding = Sides{Left: 5, Top: 3}
	tu.AssertEqual(t, prepare(t, ctx, inline, Size{300, 500}), Size{30, 13})
}

func TestPrepareStacks(t *testing.T) {
	ctx, collector := newContext()

	vs := NewVStack(NewText("hello", font), NewBlock(NewText("a", font)), textLines(3))
	tu.AssertEqual(t, prepare(t, ctx, vs, Size{300, 500}), Size{300, 50})

	fixed, auto, star := NewText("a", font), NewText("ab", font), NewText("abc", font)
	fixed.Style.Width = Fixed(100)
	star.Style.Width = Star(3)
	hs := NewHStack(fixed, auto, star, textLines(2))
	tu.AssertEqual(t, prepare(t, ctx, hs, Size{300, 500}), Size{300, 20})
	// 100 fixed, then 200 shared with weights 1, 3, 1
	tu.AssertEqual(t, hs.slots, []Fl{100, 40, 120, 40})
	tu.AssertEqual(t, EffectiveSize(star), Size{120, 10})
	tu.AssertEqual(t, len(collector.Warnings), 0)

	a, b := NewText("a", font), NewText("b", font)
	a.Style.Width, b.Style.Width = Fixed(200), Fixed(200)
	hs = NewHStack(a, b)
	tu.AssertEqual(t, prepare(t, ctx, hs, Size{300, 500}), Size{400, 10})
	tu.AssertEqual(t, collector.Codes(), []utils.Code{utils.CodeUnresolvableDimension})
}

func TestPrepareTable(t *testing.T) {
	ctx, _ := newContext()

	table := NewTable([]Length{Fixed(50), Auto},
		[]Element{NewText("a", font), textLines(2)},
		[]Element{NewText("b", font)},
	)
	tu.AssertEqual(t, prepare(t, ctx, table, Size{200, 500}), Size{200, 30})
	tu.AssertEqual(t, table.ColumnWidths(), []Fl{50, 150})
	tu.AssertEqual(t, table.RowHeights(), []Fl{20, 10})

	invalid := NewTable([]Length{Auto}, []Element{NewText("a", font), NewText("b", font)})
	_, err := invalid.Prepare(ctx, Size{200, 500})
	if !utils.HasCode(err, utils.CodeInvalidValue) {
		t.Fatalf("expected invalid value error, got %v", err)
	}
}

func TestPrepareMetricsFailure(t *testing.T) {
	failure := errors.New("no font")
	ctx := &Context{Metrics: tu.Metrics{Err: failure}}
	_, err := NewVStack(NewText("a", font)).Prepare(ctx, Size{100, 100})
	if !errors.Is(err, failure) {
		t.Fatalf("expected metrics error, got %v", err)
	}
}

func TestCopy(t *testing.T) {
	ctx, _ := newContext()
	txt := NewText("hello", font)
	txt.Style.Padding = UniformSides(3)
	table := NewTable([]Length{Auto}, []Element{NewVStack(txt)})
	prepare(t, ctx, table, Size{100, 100})

	cp := table.Copy().(*Table)
	tu.AssertEqual(t, cp.IsPrepared(), false)
	if cp.ID == table.ID {
		t.Fatal("copy must have a fresh identity")
	}
	cell := cp.Rows[0][0].(*VStack).Children[0].(*Text)
	if cell == txt || cell.ID == txt.ID || cell.IsPrepared() {
		t.Fatal("children must be deep copied")
	}
	tu.AssertEqual(t, cell.Style, txt.Style)
	tu.AssertEqual(t, Content(cp), []string{"hello"})
}
