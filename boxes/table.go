package boxes

import (
	"github.com/benoitkugler/paginate/backend"
	"github.com/benoitkugler/paginate/utils"
)

// Table is a grid of cells, split at row boundaries.
// The first HeaderRows rows are the header, which is repeated
// at the top of each tail when RepeatHeader is true.
type Table struct {
	BoxFields

	// Columns are resolved together, auto widths counting as proportional.
	Columns []Length
	// Rows may be shorter than Columns, but not longer.
	Rows [][]Element

	HeaderRows   int
	RepeatHeader bool

	// computed by Prepare
	colWidths  []Fl
	rowHeights []Fl
	cellHeight Fl // height available to cells
}

func NewTable(columns []Length, rows ...[]Element) *Table {
	return &Table{BoxFields: newBoxFields(), Columns: columns, Rows: rows}
}

func (t *Table) Type() string { return "Table" }

// ColumnWidths returns the widths computed by Prepare.
func (t *Table) ColumnWidths() []Fl { return t.colWidths }

// RowHeights returns the heights computed by Prepare.
func (t *Table) RowHeights() []Fl { return t.rowHeights }

func (t *Table) Prepare(ctx *Context, available Size) (Size, error) {
	return prepareBox(t, available, func(inner bounds) (Size, error) {
		specs := make([]Length, len(t.Columns))
		for i, col := range t.Columns {
			if col.IsAuto() {
				col = Star(1)
			}
			specs[i] = col
		}
		t.colWidths = resolveSlots(ctx, t, inner.Width, specs)
		t.cellHeight = inner.Height

		t.rowHeights = make([]Fl, len(t.Rows))
		var out Size
		for _, w := range t.colWidths {
			out.Width += w
		}
		for i, row := range t.Rows {
			h, err := t.prepareRow(ctx, i, row)
			if err != nil {
				return Size{}, err
			}
			t.rowHeights[i] = h
			out.Height += h
		}
		return out, nil
	})
}

// prepareRow prepares the cells of a row and returns its height.
func (t *Table) prepareRow(ctx *Context, index int, row []Element) (Fl, error) {
	if len(row) > len(t.colWidths) {
		return 0, utils.NewError(utils.CodeInvalidValue, "row %d has %d cells for %d columns", index, len(row), len(t.colWidths))
	}
	var height Fl
	for j, cell := range row {
		size, err := prepareInSlot(ctx, cell, Size{t.colWidths[j], t.cellHeight})
		if err != nil {
			return 0, err
		}
		height = utils.MaxF(height, size.Height)
	}
	return height, nil
}

func (t *Table) Reset() {
	t.reset()
	t.colWidths, t.rowHeights = nil, nil
	for _, row := range t.Rows {
		resetChildren(row)
	}
}

func (t *Table) Splittable() bool { return t.splittable() }

// table returns a prepared fragment of t with the given rows,
// sharing the column layout.
func (t *Table) table(rows [][]Element, heights []Fl, headerRows int) *Table {
	out := &Table{
		BoxFields:    t.BoxFields.fragment(),
		Columns:      t.Columns,
		Rows:         rows,
		HeaderRows:   headerRows,
		RepeatHeader: t.RepeatHeader,
		colWidths:    t.colWidths,
		rowHeights:   heights,
		cellHeight:   t.cellHeight,
	}
	_, v := out.Style.Outline()
	height := v
	for _, h := range heights {
		height += h
	}
	out.setPrepared(Size{Width: t.Size().Width, Height: height})
	return out
}

func (t *Table) headerCount() int {
	if t.HeaderRows > len(t.Rows) {
		return len(t.Rows)
	}
	return t.HeaderRows
}

func (t *Table) Split(ctx *Context, targetHeight Fl) (head, tail Element, err error) {
	_, v := t.Style.Outline()
	inner := targetHeight - v

	var (
		y Fl
		k int // number of rows in head
	)
	for k < len(t.Rows) && utils.LessOrClose(y+t.rowHeights[k], inner) {
		y += t.rowHeights[k]
		k++
	}
	header := t.headerCount()
	// at least one body row must go with the header
	if k <= header || k == len(t.Rows) {
		return nil, nil, nil
	}
	return t.splitRows(ctx, k)
}

// forceSplit puts the header and the first body row in the head.
func (t *Table) forceSplit(ctx *Context, _ Fl) (head, tail Element, err error) {
	k := t.headerCount() + 1
	if k >= len(t.Rows) {
		return nil, nil, nil
	}
	return t.splitRows(ctx, k)
}

// splitRows puts the k first rows in the head, repeating the header
// in the tail if needed.
func (t *Table) splitRows(ctx *Context, k int) (head, tail Element, err error) {
	header := t.headerCount()
	tailRows := append([][]Element(nil), t.Rows[k:]...)
	tailHeights := append([]Fl(nil), t.rowHeights[k:]...)
	tailHeader := 0
	if t.RepeatHeader && header > 0 {
		copies := make([][]Element, header)
		heights := make([]Fl, header)
		for i, row := range t.Rows[:header] {
			copies[i] = copyChildren(row)
			heights[i], err = t.prepareRow(ctx, i, copies[i])
			if err != nil {
				return nil, nil, err
			}
		}
		tailRows = append(copies, tailRows...)
		tailHeights = append(heights, tailHeights...)
		tailHeader = header
	}

	ctx.Debug("splitting table", "id", t.ID, "rows", len(t.Rows), "head", k)
	head = t.table(t.Rows[:k:k], t.rowHeights[:k:k], t.HeaderRows)
	tail = t.table(tailRows, tailHeights, tailHeader)
	return head, tail, nil
}

func (t *Table) Copy() Element {
	out := &Table{
		BoxFields:    t.BoxFields.fragment(),
		Columns:      append([]Length(nil), t.Columns...),
		Rows:         make([][]Element, len(t.Rows)),
		HeaderRows:   t.HeaderRows,
		RepeatHeader: t.RepeatHeader,
	}
	for i, row := range t.Rows {
		out.Rows[i] = copyChildren(row)
	}
	return out
}

func (t *Table) drawContent(ctx *DrawContext, content backend.Rect) error {
	y := content.Y
	for i, row := range t.Rows {
		x := content.X
		for j, cell := range row {
			size := EffectiveSize(cell)
			st := &cell.Box().Style
			cx := x + st.HAlign.Offset(t.colWidths[j]-size.Width)
			cy := y + st.VAlign.Offset(t.rowHeights[i]-size.Height)
			if err := Draw(ctx, cell, cx, cy); err != nil {
				return err
			}
			x += t.colWidths[j]
		}
		y += t.rowHeights[i]
	}
	return nil
}
