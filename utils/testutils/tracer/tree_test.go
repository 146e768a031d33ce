package tracer

import (
	"strings"
	"testing"

	"github.com/benoitkugler/paginate/boxes"
	"github.com/benoitkugler/paginate/layout"
	"github.com/benoitkugler/paginate/text"
	tu "github.com/benoitkugler/paginate/utils/testutils"
)

func TestDumpTree(t *testing.T) {
	txt := boxes.NewText("a", text.DefaultFont)
	txt.Style.Rotation = boxes.R90
	vs := boxes.NewVStack(boxes.NewBlock(txt), boxes.NewPageBreak(true))

	var buf strings.Builder
	DumpTree(&buf, vs)
	tu.AssertEqual(t, buf.String(), "VStack: unprepared\n"+
		"  Block: unprepared\n"+
		"    Text: unprepared rotated 90 \"a\"\n"+
		"  PageBreak: unprepared forced\n")
}

func TestDumpPages(t *testing.T) {
	ctx := &boxes.Context{Metrics: tu.NewMetrics()}
	table := boxes.NewTable([]boxes.Length{boxes.Auto}, []boxes.Element{boxes.NewText("ab", text.DefaultFont)})
	pages, err := layout.Paginate(ctx, layout.PageSet{
		Size:     boxes.Size{Width: 100, Height: 50},
		Margin:   boxes.UniformSides(5),
		Elements: []boxes.Element{table},
	})
	if err != nil {
		t.Fatal(err)
	}
	var buf strings.Builder
	DumpPages(&buf, pages)
	tu.AssertEqual(t, buf.String(), "Page 0: 100x50 content [5 5 90 40]\n"+
		"  at 5 5\n"+
		"    Table: 90x10 1 rows, 0 header\n"+
		"      Text: 10x10 \"ab\"\n")
}
