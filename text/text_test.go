package text

import (
	"reflect"
	"strings"
	"testing"

	"golang.org/x/image/font/basicfont"
)

func TestBreakOpportunities(t *testing.T) {
	breaks := BreakOpportunities("hello world\nfoo")
	exp := []Break{{6, false}, {12, true}, {15, false}}
	if !reflect.DeepEqual(breaks, exp) {
		t.Fatalf("expected %v, got %v", exp, breaks)
	}

	// offsets are in bytes
	breaks = BreakOpportunities("été là")
	if last := breaks[len(breaks)-1].Offset; last != len("été là") {
		t.Fatalf("unexpected last offset %d", last)
	}

	if BreakOpportunities("") != nil {
		t.Fatal("expected no break for empty text")
	}
}

func TestBreakOpportunitiesInvalidUTF8(t *testing.T) {
	for _, s := range []string{"ab\xff cd ef gh ij", "\xff\xfe", "é\xc3 x\n\x80y"} {
		breaks := BreakOpportunities(s)
		prev := 0
		for _, b := range breaks {
			if b.Offset <= prev || b.Offset > len(s) {
				t.Fatalf("invalid offsets for %q: %v", s, breaks)
			}
			prev = b.Offset
		}
		if prev != len(s) {
			t.Fatalf("expected last offset %d for %q, got %d", len(s), s, prev)
		}

		metrics := NewFixedMetrics(basicfont.Face7x13)
		starts, err := metrics.LineBreaks(s, DefaultFont, 10)
		if err != nil {
			t.Fatal(err)
		}
		if joined := strings.Join(SplitLines(s, starts), ""); joined != s {
			t.Fatalf("lines do not partition %q: %q", s, joined)
		}
	}
}

func TestWrapLines(t *testing.T) {
	metrics := NewFixedMetrics(basicfont.Face7x13)
	for _, test := range []struct {
		name     string
		text     string
		maxWidth Fl
		want     []int
	}{
		{"empty", "", 100, []int{0}},
		{"fits", "hello world", 100, []int{0}},
		{"greedy", "hello world foo", 80, []int{0, 12}},
		{"trailing space ignored", "hello world foo", 77, []int{0, 12}},
		{"every word", "hello world foo", 10, []int{0, 6, 12}},
		{"mandatory", "a\nb", 100, []int{0, 2}},
		{"empty line", "a\n\nb", 100, []int{0, 2, 3}},
		{"final newline", "a\n", 100, []int{0}},
		{"long word", "abcdefghij xy", 20, []int{0, 11}},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, err := metrics.LineBreaks(test.text, DefaultFont, test.maxWidth)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, test.want) {
				t.Fatalf("expected %v, got %v", test.want, got)
			}
			if joined := strings.Join(SplitLines(test.text, got), ""); joined != test.text {
				t.Fatalf("lines do not partition the text: %q", joined)
			}
		})
	}
}

func TestFixedMetrics(t *testing.T) {
	metrics := NewFixedMetrics(basicfont.Face7x13)
	w, err := metrics.Advance("abc", Font{Family: "whatever", Size: 40})
	if err != nil {
		t.Fatal(err)
	}
	if w != 21 {
		t.Fatalf("expected 21, got %f", w)
	}
	ext, err := metrics.Extents(DefaultFont)
	if err != nil {
		t.Fatal(err)
	}
	if ext != (Extents{Ascent: 11, Descent: 2, LineHeight: 13}) {
		t.Fatalf("unexpected extents %v", ext)
	}
}

func TestFaceMetrics(t *testing.T) {
	metrics := NewFaceMetrics()

	small, err := metrics.Advance("Hello", Font{Family: DefaultFamily, Size: 10})
	if err != nil {
		t.Fatal(err)
	}
	large, err := metrics.Advance("Hello", Font{Family: DefaultFamily, Size: 20})
	if err != nil {
		t.Fatal(err)
	}
	if small <= 0 || large <= small {
		t.Fatalf("unexpected advances %f %f", small, large)
	}

	ext, err := metrics.Extents(Font{Family: "Go Mono", Size: 12, Italic: true})
	if err != nil {
		t.Fatal(err)
	}
	if ext.Ascent <= 0 || ext.LineHeight < ext.Ascent {
		t.Fatalf("unexpected extents %v", ext)
	}

	if _, err := metrics.Advance("a", Font{Family: "unknown", Size: 10}); err == nil {
		t.Fatal("expected error for unknown family")
	}

	if err := metrics.Register("broken", false, false, []byte("not a font")); err == nil {
		t.Fatal("expected error for invalid font file")
	}
}

func TestFontString(t *testing.T) {
	if s := (Font{Family: "Go", Size: 12.5, Bold: true}).String(); s != "Go 12.5 bold" {
		t.Fatalf("unexpected %s", s)
	}
}
