package boxes

import (
	"strings"

	"github.com/benoitkugler/paginate/backend"
	"github.com/benoitkugler/paginate/text"
	"github.com/benoitkugler/paginate/utils"
	"golang.org/x/text/unicode/norm"
)

// Text is a leaf displaying a paragraph with a single font.
// It is split at line boundaries.
type Text struct {
	BoxFields

	Text  string
	Font  text.Font
	Color backend.Color

	// computed by Prepare
	lines      []string // concatenated, they give back Text
	widths     []Fl     // without trailing spaces
	lineHeight Fl
	ascent     Fl
}

// NewText returns a text leaf, drawn in black.
// Invalid UTF-8 sequences are replaced by U+FFFD and the
// text is normalized to the NFC form.
func NewText(s string, font text.Font) *Text {
	s = norm.NFC.String(strings.ToValidUTF8(s, "\uFFFD"))
	return &Text{BoxFields: newBoxFields(), Text: s, Font: font, Color: backend.Black}
}

func (t *Text) Type() string { return "Text" }

// Lines returns the lines computed by Prepare.
func (t *Text) Lines() []string { return t.lines }

func (t *Text) Prepare(ctx *Context, available Size) (Size, error) {
	return prepareBox(t, available, func(inner bounds) (Size, error) {
		starts, err := ctx.Metrics.LineBreaks(t.Text, t.Font, inner.Width)
		if err != nil {
			return Size{}, err
		}
		extents, err := ctx.Metrics.Extents(t.Font)
		if err != nil {
			return Size{}, err
		}
		lines := text.SplitLines(t.Text, starts)
		widths := make([]Fl, len(lines))
		var width Fl
		for i, line := range lines {
			widths[i], err = ctx.Metrics.Advance(text.TrimLine(line), t.Font)
			if err != nil {
				return Size{}, err
			}
			width = utils.MaxF(width, widths[i])
		}
		t.lines, t.widths = lines, widths
		t.lineHeight, t.ascent = extents.LineHeight, extents.Ascent
		return Size{Width: width, Height: Fl(len(lines)) * t.lineHeight}, nil
	})
}

func (t *Text) Reset() {
	t.reset()
	t.lines, t.widths = nil, nil
}

func (t *Text) Splittable() bool { return t.splittable() }

// fragment returns an unprepared leaf with the lines [start:end].
func (t *Text) fragment(start, end int) *Text {
	out := &Text{
		BoxFields:  t.BoxFields.fragment(),
		Text:       strings.Join(t.lines[start:end], ""),
		Font:       t.Font,
		Color:      t.Color,
		lines:      t.lines[start:end:end],
		widths:     t.widths[start:end:end],
		lineHeight: t.lineHeight,
		ascent:     t.ascent,
	}
	_, v := out.Style.Outline()
	out.setPrepared(Size{Width: t.Size().Width, Height: Fl(end-start)*t.lineHeight + v})
	return out
}

func (t *Text) Split(ctx *Context, targetHeight Fl) (head, tail Element, err error) {
	if t.lineHeight <= 0 {
		return nil, nil, nil
	}
	_, v := t.Style.Outline()
	n := int((targetHeight-v)/t.lineHeight + utils.Epsilon)
	if n < 1 {
		return nil, nil, nil
	}
	if n >= len(t.lines) {
		return t, nil, nil
	}
	ctx.Debug("splitting text", "id", t.ID, "lines", len(t.lines), "head", n)
	return t.fragment(0, n), t.fragment(n, len(t.lines)), nil
}

func (t *Text) Copy() Element {
	out := NewText(t.Text, t.Font)
	out.Style = t.Style
	out.Color = t.Color
	return out
}

func (t *Text) drawContent(ctx *DrawContext, content backend.Rect) error {
	for i, line := range t.lines {
		line = text.TrimLine(line)
		if line == "" {
			continue
		}
		err := ctx.Page.DrawText(backend.TextRun{
			Text:  line,
			Font:  t.Font,
			X:     content.X + t.Style.HAlign.Offset(content.Width-t.widths[i]),
			Y:     content.Y + Fl(i)*t.lineHeight + t.ascent,
			Width: t.widths[i],
			Color: t.Color,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
