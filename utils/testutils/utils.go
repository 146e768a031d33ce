// Package testutils provides helpers shared by the tests.
package testutils

import (
	"math"
	"reflect"
	"testing"
	"unicode/utf8"

	"github.com/benoitkugler/paginate/text"
	"github.com/benoitkugler/paginate/utils"
)

type Fl = utils.Fl

func AssertEqual(t *testing.T, got, exp interface{}) {
	t.Helper()
	if !reflect.DeepEqual(exp, got) {
		t.Fatalf("expected\n%v\n got \n%v", exp, got)
	}
}

// AssertClose checks that two lengths are equal, up to utils.Epsilon.
func AssertClose(t *testing.T, got, exp Fl) {
	t.Helper()
	if math.Abs(got-exp) > utils.Epsilon {
		t.Fatalf("expected %g, got %g", exp, got)
	}
}

// Metrics is a deterministic text.Metrics, where
// every rune has the same advance.
type Metrics struct {
	CharWidth, LineHeight Fl
	// Err, if not nil, is returned by every method.
	Err error
}

// NewMetrics returns metrics with 5pt wide characters and 10pt lines.
func NewMetrics() Metrics { return Metrics{CharWidth: 5, LineHeight: 10} }

var _ text.Metrics = Metrics{}

func (m Metrics) Advance(s string, _ text.Font) (Fl, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return Fl(utf8.RuneCountInString(s)) * m.CharWidth, nil
}

func (m Metrics) LineBreaks(s string, font text.Font, maxWidth Fl) ([]int, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return text.WrapLines(s, maxWidth, func(line string) (Fl, error) { return m.Advance(line, font) })
}

func (m Metrics) Extents(text.Font) (text.Extents, error) {
	if m.Err != nil {
		return text.Extents{}, m.Err
	}
	return text.Extents{Ascent: 0.8 * m.LineHeight, Descent: 0.2 * m.LineHeight, LineHeight: m.LineHeight}, nil
}
