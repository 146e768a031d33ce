package text

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/benoitkugler/paginate/utils"
	"github.com/go-text/typesetting/segmenter"
)

// Break is a line break opportunity.
type Break struct {
	// Offset is the byte offset of the segment following the break.
	Offset int
	// Mandatory is true for hard breaks, like newlines.
	Mandatory bool
}

func isMandatory(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// BreakOpportunities returns the positions after which a line may be
// broken, following the Unicode line breaking algorithm.
// The last opportunity is always at len(s).
func BreakOpportunities(s string) []Break {
	if s == "" {
		return nil
	}
	// invalid bytes decode to one rune each, so that
	// the offsets stay aligned on s
	runes := make([]rune, 0, len(s))
	sizes := make([]int, 0, len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		runes = append(runes, r)
		sizes = append(sizes, size)
		i += size
	}
	var seg segmenter.Segmenter
	seg.Init(runes)
	iter := seg.LineIterator()

	var (
		out                  []Break
		byteIndex, runeIndex int
	)
	for iter.Next() {
		line := iter.Line()
		for range line.Text {
			byteIndex += sizes[runeIndex]
			runeIndex++
		}
		last := line.Text[len(line.Text)-1]
		out = append(out, Break{Offset: byteIndex, Mandatory: isMandatory(last)})
	}
	return out
}

// TrimLine removes the trailing whitespace and line terminators of a line.
func TrimLine(line string) string {
	return strings.TrimRightFunc(line, unicode.IsSpace)
}

// WrapLines greedily fills lines no wider than `maxWidth`, measuring
// candidate lines (without trailing whitespace) with `advance`.
// It returns the byte offsets where each line starts: the lines
// s[starts[i]:starts[i+1]] concatenate back to s.
// A segment wider than `maxWidth` is kept alone on its line.
func WrapLines(s string, maxWidth Fl, advance func(string) (Fl, error)) ([]int, error) {
	starts := []int{0}
	if s == "" {
		return starts, nil
	}
	lineStart, lineEnd := 0, 0 // current line is s[lineStart:lineEnd]
	for _, br := range BreakOpportunities(s) {
		if lineEnd > lineStart {
			w, err := advance(TrimLine(s[lineStart:br.Offset]))
			if err != nil {
				return nil, err
			}
			if !utils.LessOrClose(w, maxWidth) {
				starts = append(starts, lineEnd)
				lineStart = lineEnd
			}
		}
		lineEnd = br.Offset
		if br.Mandatory && lineEnd < len(s) {
			starts = append(starts, lineEnd)
			lineStart = lineEnd
		}
	}
	return starts, nil
}

// SplitLines returns the lines delimited by `starts`, as returned by [WrapLines].
func SplitLines(s string, starts []int) []string {
	out := make([]string, len(starts))
	for i, start := range starts {
		end := len(s)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		out[i] = s[start:end]
	}
	return out
}
