package markup

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/paginate/backend"
	"github.com/benoitkugler/paginate/boxes"
	"github.com/benoitkugler/paginate/text"
	"github.com/benoitkugler/paginate/utils"
)

type Fl = utils.Fl

func invalid(format string, args ...interface{}) error {
	return utils.NewError(utils.CodeInvalidValue, format, args...)
}

// parseNumber accepts an optional "pt" unit.
func parseNumber(s string) (Fl, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "pt")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, invalid("invalid number %q", s)
	}
	return v, nil
}

func parsePositive(s string) (Fl, error) {
	v, err := parseNumber(s)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, invalid("negative value %q", s)
	}
	return v, nil
}

// ParseLength parses a dimension: "auto" (or empty), "50" (points),
// "20%" or "3*" (a proportional share with weight 3, "*" meaning "1*").
func ParseLength(s string) (boxes.Length, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "" || s == "auto":
		return boxes.Auto, nil
	case strings.HasSuffix(s, "%"):
		v, err := parsePositive(strings.TrimSuffix(s, "%"))
		if err != nil {
			return boxes.Length{}, err
		}
		return boxes.Percent(v), nil
	case strings.HasSuffix(s, "*"):
		w := strings.TrimSuffix(s, "*")
		if w == "" {
			return boxes.Star(1), nil
		}
		v, err := parsePositive(w)
		if err != nil {
			return boxes.Length{}, err
		}
		if v == 0 {
			return boxes.Length{}, invalid("proportional weight must be positive in %q", s)
		}
		return boxes.Star(v), nil
	default:
		v, err := parsePositive(s)
		if err != nil {
			return boxes.Length{}, err
		}
		return boxes.Fixed(v), nil
	}
}

// FormatLength is the inverse of [ParseLength].
func FormatLength(l boxes.Length) string { return l.String() }

// ParseLengths parses a space separated list of lengths.
func ParseLengths(s string) ([]boxes.Length, error) {
	fields := strings.Fields(s)
	out := make([]boxes.Length, len(fields))
	for i, f := range fields {
		var err error
		out[i], err = ParseLength(f)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ParseSides parses one to four values, with the CSS
// shorthand order: top, right, bottom, left.
func ParseSides(s string) (boxes.Sides, error) {
	fields := strings.Fields(s)
	values := make([]Fl, len(fields))
	for i, f := range fields {
		var err error
		values[i], err = parsePositive(f)
		if err != nil {
			return boxes.Sides{}, err
		}
	}
	switch len(values) {
	case 1:
		return boxes.UniformSides(values[0]), nil
	case 2:
		return boxes.Sides{Top: values[0], Right: values[1], Bottom: values[0], Left: values[1]}, nil
	case 3:
		return boxes.Sides{Top: values[0], Right: values[1], Bottom: values[2], Left: values[1]}, nil
	case 4:
		return boxes.Sides{Top: values[0], Right: values[1], Bottom: values[2], Left: values[3]}, nil
	default:
		return boxes.Sides{}, invalid("expected 1 to 4 values, got %q", s)
	}
}

// FormatSides returns the shortest form accepted by [ParseSides].
func FormatSides(s boxes.Sides) string {
	switch {
	case s.Top == s.Bottom && s.Left == s.Right && s.Top == s.Left:
		return fmt.Sprintf("%g", s.Top)
	case s.Top == s.Bottom && s.Left == s.Right:
		return fmt.Sprintf("%g %g", s.Top, s.Right)
	case s.Left == s.Right:
		return fmt.Sprintf("%g %g %g", s.Top, s.Right, s.Bottom)
	default:
		return fmt.Sprintf("%g %g %g %g", s.Top, s.Right, s.Bottom, s.Left)
	}
}

var namedColors = map[string]backend.Color{
	"transparent": {},
	"none":        {},
	"black":       backend.Black,
	"white":       backend.White,
	"red":         {R: 1, A: 1},
	"green":       {G: 0.5, A: 1},
	"lime":        {G: 1, A: 1},
	"blue":        {B: 1, A: 1},
	"yellow":      {R: 1, G: 1, A: 1},
	"gray":        {R: 0.5, G: 0.5, B: 0.5, A: 1},
	"grey":        {R: 0.5, G: 0.5, B: 0.5, A: 1},
}

// ParseColor parses a color: "#rgb", "#rrggbb", "#rrggbbaa" or
// a basic name like "red" or "transparent".
func ParseColor(s string) (backend.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return backend.Color{}, invalid("unknown color %q", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return backend.Color{}, invalid("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return backend.Color{}, invalid("invalid color %q", s)
	}
	comp := func(shift uint) Fl { return Fl((v>>shift)&0xff) / 255 }
	return backend.Color{R: comp(24), G: comp(16), B: comp(8), A: comp(0)}, nil
}

// FormatColor returns the hexadecimal form of the color,
// "transparent" for invisible colors.
func FormatColor(c backend.Color) string {
	if c.IsNone() {
		return "transparent"
	}
	comp := func(v Fl) uint8 { return uint8(math.Round(utils.MinF(utils.Clip0(v), 1) * 255)) }
	s := fmt.Sprintf("#%02x%02x%02x", comp(c.R), comp(c.G), comp(c.B))
	if c.A < 1 {
		s += fmt.Sprintf("%02x", comp(c.A))
	}
	return s
}

// ParseFont parses a font description "family size [bold] [italic]",
// where each part is optional and missing ones are taken from `base`.
// The family may have several words, like "Go Mono 9".
func ParseFont(s string, base text.Font) (text.Font, error) {
	out := base
	var family []string
	for _, f := range strings.Fields(s) {
		switch strings.ToLower(f) {
		case "bold":
			out.Bold = true
		case "italic":
			out.Italic = true
		case "regular", "normal":
			out.Bold, out.Italic = false, false
		default:
			if v, err := strconv.ParseFloat(strings.TrimSuffix(f, "pt"), 64); err == nil {
				if v <= 0 {
					return text.Font{}, invalid("font size must be positive in %q", s)
				}
				out.Size = v
			} else {
				family = append(family, f)
			}
		}
	}
	if len(family) != 0 {
		out.Family = strings.Join(family, " ")
	}
	return out, nil
}

// ParseBorder parses "width [style] [color]", for instance "1 dashed #f00".
// The style defaults to solid and the color to black.
func ParseBorder(s string) (boxes.Border, error) {
	out := boxes.Border{Style: boxes.Solid, Color: backend.Black}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return boxes.Border{}, nil
	}
	w, err := parsePositive(fields[0])
	if err != nil {
		return boxes.Border{}, err
	}
	out.Widths = boxes.UniformSides(w)
	for _, f := range fields[1:] {
		if st, ok := parseBorderStyle(f); ok {
			out.Style = st
			continue
		}
		c, err := ParseColor(f)
		if err != nil {
			return boxes.Border{}, err
		}
		out.Color = c
	}
	return out, nil
}

func parseBorderStyle(s string) (boxes.BorderStyle, bool) {
	for _, st := range [...]boxes.BorderStyle{boxes.Solid, boxes.Dashed, boxes.Dotted, boxes.NoBorder} {
		if st.String() == s {
			return st, true
		}
	}
	return 0, false
}

func parseHAlign(s string) (boxes.HAlign, error) {
	for _, a := range [...]boxes.HAlign{boxes.Left, boxes.Center, boxes.Right} {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, invalid("invalid horizontal alignment %q", s)
}

func parseVAlign(s string) (boxes.VAlign, error) {
	for _, a := range [...]boxes.VAlign{boxes.Top, boxes.Middle, boxes.Bottom} {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, invalid("invalid vertical alignment %q", s)
}

// ParseBool accepts the HTML convention: an attribute present with
// an empty value (or its own name) is true.
func ParseBool(name, value string) (bool, error) {
	switch strings.ToLower(value) {
	case "", "true", "yes", "1", name:
		return true, nil
	case "false", "no", "0":
		return false, nil
	}
	return false, invalid("invalid boolean %q for %s", value, name)
}
