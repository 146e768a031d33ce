package markup

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/benoitkugler/paginate/boxes"
	"github.com/benoitkugler/paginate/layout"
	"github.com/benoitkugler/paginate/text"
	"github.com/benoitkugler/paginate/utils"
)

// Opener returns the content of an image resource.
type Opener func(src string) (io.ReadCloser, error)

// DirOpener opens files, resolving relative paths against `dir`.
func DirOpener(dir string) Opener {
	return func(src string) (io.ReadCloser, error) {
		if !filepath.IsAbs(src) {
			src = filepath.Join(dir, src)
		}
		return os.Open(src)
	}
}

// Options provides the defaults used when attributes are missing.
type Options struct {
	// Page provides the geometry, policy and background of page sets.
	// Its Elements are ignored.
	Page layout.PageSet
	// Font is the font of text without a font attribute.
	Font text.Font
	// Open loads images. If nil, images are loaded from
	// the working directory.
	Open Opener
}

// DefaultOptions uses A4 pages with 36pt margins.
func DefaultOptions() Options {
	return Options{
		Page: layout.PageSet{Size: layout.A4, Margin: boxes.UniformSides(36)},
		Font: text.DefaultFont,
	}
}

// Parse reads a document and returns its page sets.
// Top level elements outside of a <pageset> tag are gathered
// in implicit page sets using the default page.
func Parse(r io.Reader, opts Options) ([]layout.PageSet, error) {
	root, err := parseTree(r)
	if err != nil {
		return nil, err
	}
	if opts.Open == nil {
		opts.Open = DirOpener(".")
	}
	if opts.Font.Size == 0 {
		opts.Font = text.DefaultFont
	}
	b := builder{opts: opts}

	top := root.children
	if roots := nonBlank(top); len(roots) == 1 && roots[0].tag == "document" {
		top = roots[0].children
	}

	var (
		out      []layout.PageSet
		implicit *layout.PageSet
	)
	for _, n := range top {
		if n.isBlank() {
			continue
		}
		if n.tag == "pageset" {
			implicit = nil
			ps, err := b.pageSet(n)
			if err != nil {
				return nil, err
			}
			out = append(out, ps)
			continue
		}
		elem, err := b.element(n, b.opts.Font)
		if err != nil {
			return nil, err
		}
		if implicit == nil {
			out = append(out, b.defaultPageSet())
			implicit = &out[len(out)-1]
		}
		implicit.Elements = append(implicit.Elements, elem)
	}
	return out, nil
}

func nonBlank(nodes []*node) []*node {
	var out []*node
	for _, n := range nodes {
		if !n.isBlank() {
			out = append(out, n)
		}
	}
	return out
}

type builder struct {
	opts Options
}

func (b *builder) defaultPageSet() layout.PageSet {
	ps := b.opts.Page
	ps.Elements = nil
	return ps
}

func (b *builder) pageSet(n *node) (layout.PageSet, error) {
	ps := b.defaultPageSet()
	landscape := false
	for _, a := range n.attrs {
		var err error
		switch a.Key {
		case "size":
			ps.Size, err = ParsePageSize(a.Val)
		case "landscape":
			landscape, err = ParseBool(a.Key, a.Val)
		case "margin":
			ps.Margin, err = ParseSides(a.Val)
		case "blank-first-page":
			ps.BlankFirstPage, err = ParseBool(a.Key, a.Val)
		case "background":
			ps.Background, err = ParseColor(a.Val)
		default:
			err = markupError("unknown attribute %q", a.Key)
		}
		if err != nil {
			return ps, attrError(n, a.Key, err)
		}
	}
	if landscape {
		ps.Size = layout.Landscape(ps.Size)
	}
	font := b.opts.Font
	for _, child := range n.children {
		if child.isBlank() {
			continue
		}
		elem, err := b.element(child, font)
		if err != nil {
			return ps, err
		}
		ps.Elements = append(ps.Elements, elem)
	}
	return ps, nil
}

// ParsePageSize accepts a named format like "A4" or "letter",
// or "width height" in points.
func ParsePageSize(s string) (boxes.Size, error) {
	if size, ok := layout.LookupPageSize(strings.TrimSpace(s)); ok {
		return size, nil
	}
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return boxes.Size{}, invalid("invalid page size %q (known formats: %s)", s, strings.Join(layout.PageSizeNames(), ", "))
	}
	w, err := parsePositive(fields[0])
	if err != nil {
		return boxes.Size{}, err
	}
	h, err := parsePositive(fields[1])
	if err != nil {
		return boxes.Size{}, err
	}
	if w == 0 || h == 0 {
		return boxes.Size{}, invalid("empty page size %q", s)
	}
	return boxes.Size{Width: w, Height: h}, nil
}

func attrError(n *node, attr string, err error) error {
	return utils.WrapError(utils.CodeInvalidMarkup, err, "%s: attribute %s", n, attr)
}

// element builds the element for `n`, using `font` for text.
func (b *builder) element(n *node, font text.Font) (boxes.Element, error) {
	if n.tag == "" {
		// bare character data is a text leaf
		return boxes.NewText(collapse(n.data), font), nil
	}

	// the font is inherited
	if v, ok := n.attr("font"); ok {
		var err error
		font, err = ParseFont(v, font)
		if err != nil {
			return nil, attrError(n, "font", err)
		}
	}

	var (
		elem boxes.Element
		err  error
	)
	switch n.tag {
	case "text":
		elem, err = b.text(n, font)
	case "vstack", "hstack":
		var children []boxes.Element
		children, err = b.children(n, font)
		if n.tag == "vstack" {
			elem = boxes.NewVStack(children...)
		} else {
			elem = boxes.NewHStack(children...)
		}
	case "inline", "block":
		var child boxes.Element
		child, err = b.single(n, font)
		if n.tag == "inline" {
			elem = boxes.NewInline(child)
		} else {
			elem = boxes.NewBlock(child)
		}
	case "table":
		elem, err = b.table(n, font)
	case "img":
		elem, err = b.image(n)
	case "spacer":
		elem = boxes.NewSpacer(boxes.Auto, boxes.Auto)
	case "page-break":
		forced := false
		if v, ok := n.attr("forced"); ok {
			forced, err = ParseBool("forced", v)
		}
		elem = boxes.NewPageBreak(forced)
	default:
		return nil, markupError("unknown tag %s", n)
	}
	if err != nil {
		return nil, err
	}
	if err := b.applyStyle(n, elem); err != nil {
		return nil, err
	}
	return elem, nil
}

// attributes handled by specific tags
var specificAttrs = map[string]utils.Set{
	"text":       utils.NewSet("color", "pre"),
	"table":      utils.NewSet("columns", "header-rows", "repeat-header"),
	"img":        utils.NewSet("src"),
	"page-break": utils.NewSet("forced"),
}

func (b *builder) applyStyle(n *node, elem boxes.Element) error {
	st := &elem.Box().Style
	for _, a := range n.attrs {
		var err error
		switch a.Key {
		case "font":
		case "margin":
			st.Margin, err = ParseSides(a.Val)
		case "padding":
			st.Padding, err = ParseSides(a.Val)
		case "border":
			st.Border, err = ParseBorder(a.Val)
		case "border-width":
			st.Border.Widths, err = ParseSides(a.Val)
		case "width":
			st.Width, err = ParseLength(a.Val)
		case "height":
			st.Height, err = ParseLength(a.Val)
		case "min-width":
			st.MinWidth, err = parsePositive(a.Val)
		case "max-width":
			st.MaxWidth, err = parsePositive(a.Val)
		case "min-height":
			st.MinHeight, err = parsePositive(a.Val)
		case "max-height":
			st.MaxHeight, err = parsePositive(a.Val)
		case "rotate":
			var deg int
			deg, err = strconv.Atoi(strings.TrimSpace(a.Val))
			if err == nil {
				st.Rotation, err = boxes.NewRotation(deg)
			} else {
				err = invalid("invalid rotation %q", a.Val)
			}
		case "fill":
			st.Fill, err = ParseColor(a.Val)
		case "halign":
			st.HAlign, err = parseHAlign(a.Val)
		case "valign":
			st.VAlign, err = parseVAlign(a.Val)
		case "link":
			st.Link = a.Val
		default:
			if !specificAttrs[n.tag].Has(a.Key) {
				err = markupError("unknown attribute %q", a.Key)
			}
		}
		if err != nil {
			return attrError(n, a.Key, err)
		}
	}
	return nil
}

// collapse replaces runs of white space by a single space,
// and trims the result.
func collapse(s string) string { return strings.Join(strings.Fields(s), " ") }

func (b *builder) text(n *node, font text.Font) (boxes.Element, error) {
	pre := false
	if v, ok := n.attr("pre"); ok {
		var err error
		if pre, err = ParseBool("pre", v); err != nil {
			return nil, attrError(n, "pre", err)
		}
	}
	var (
		lines   []string
		current strings.Builder
	)
	for _, child := range n.children {
		switch child.tag {
		case "":
			current.WriteString(child.data)
		case "br":
			lines = append(lines, current.String())
			current.Reset()
		default:
			return nil, markupError("%s is not allowed in <text>", child)
		}
	}
	lines = append(lines, current.String())
	if !pre {
		for i, l := range lines {
			lines[i] = collapse(l)
		}
	}
	out := boxes.NewText(strings.Join(lines, "\n"), font)
	if v, ok := n.attr("color"); ok {
		c, err := ParseColor(v)
		if err != nil {
			return nil, attrError(n, "color", err)
		}
		out.Color = c
	}
	return out, nil
}

func (b *builder) children(n *node, font text.Font) ([]boxes.Element, error) {
	var out []boxes.Element
	for _, child := range n.children {
		if child.isBlank() {
			continue
		}
		elem, err := b.element(child, font)
		if err != nil {
			return nil, err
		}
		out = append(out, elem)
	}
	return out, nil
}

// single returns the only child of `n`
func (b *builder) single(n *node, font text.Font) (boxes.Element, error) {
	children, err := b.children(n, font)
	if err != nil {
		return nil, err
	}
	if len(children) != 1 {
		return nil, markupError("%s expects exactly one child, got %d", n, len(children))
	}
	return children[0], nil
}

func (b *builder) table(n *node, font text.Font) (boxes.Element, error) {
	var rows [][]boxes.Element
	for _, tr := range nonBlank(n.children) {
		if tr.tag != "tr" {
			return nil, markupError("%s is not allowed in <table>", tr)
		}
		var row []boxes.Element
		for _, td := range nonBlank(tr.children) {
			if td.tag != "td" {
				return nil, markupError("%s is not allowed in <tr>", td)
			}
			if len(td.attrs) != 0 {
				return nil, markupError("<td> has no attributes, style its content instead")
			}
			cell, err := b.single(td, font)
			if err != nil {
				return nil, err
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}

	var columns []boxes.Length
	if v, ok := n.attr("columns"); ok {
		var err error
		if columns, err = ParseLengths(v); err != nil {
			return nil, attrError(n, "columns", err)
		}
	} else {
		// one proportional column per cell of the widest row
		for _, row := range rows {
			for len(columns) < len(row) {
				columns = append(columns, boxes.Star(1))
			}
		}
	}
	out := boxes.NewTable(columns, rows...)
	if v, ok := n.attr("header-rows"); ok {
		h, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || h < 0 || h > len(rows) {
			return nil, attrError(n, "header-rows", invalid("invalid header row count %q", v))
		}
		out.HeaderRows = h
	}
	if v, ok := n.attr("repeat-header"); ok {
		var err error
		if out.RepeatHeader, err = ParseBool("repeat-header", v); err != nil {
			return nil, attrError(n, "repeat-header", err)
		}
	}
	return out, nil
}

func (b *builder) image(n *node) (boxes.Element, error) {
	src, _ := n.attr("src")
	if src == "" {
		return nil, markupError("<img> requires a src attribute")
	}
	f, err := b.opts.Open(src)
	if err != nil {
		return nil, utils.WrapError(utils.CodeInvalidMarkup, err, "loading image %q", src)
	}
	defer f.Close()
	img, err := boxes.DecodeImage(f)
	if err != nil {
		return nil, utils.WrapError(utils.CodeInvalidMarkup, err, "decoding image %q", src)
	}
	return img, nil
}
