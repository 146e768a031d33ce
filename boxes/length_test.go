package boxes

import (
	"testing"

	tu "github.com/benoitkugler/paginate/utils/testutils"
)

func TestResolveWorkedExample(t *testing.T) {
	resolved, over := ResolveLengths(300, []Length{Fixed(50), Percent(20), Star(1), Star(3)})
	tu.AssertEqual(t, over, false)
	tu.AssertEqual(t, resolved, []Fl{50, 60, 47.5, 142.5})
}

func TestResolveConservation(t *testing.T) {
	for _, test := range []struct {
		name      string
		available Fl
		specs     []Length
	}{
		{"stars only", 100, []Length{Star(1), Star(1), Star(1)}},
		{"odd weights", 1000, []Length{Star(0.3), Fixed(17.3), Star(7), Percent(12.5)}},
		{"exact reservation", 200, []Length{Fixed(150), Percent(25), Star(2)}},
		{"with auto", 321.7, []Length{Auto, Star(1), Fixed(3), Star(5)}},
		{"single", 42, []Length{Star(4)}},
	} {
		t.Run(test.name, func(t *testing.T) {
			resolved, over := ResolveLengths(test.available, test.specs)
			if over {
				t.Fatal("unexpected over commitment")
			}
			var sum Fl
			for _, v := range resolved {
				if v < 0 {
					t.Fatalf("negative length %g", v)
				}
				sum += v
			}
			tu.AssertClose(t, sum, test.available)
		})
	}
}

func TestResolveOverCommitted(t *testing.T) {
	resolved, over := ResolveLengths(100, []Length{Fixed(80), Percent(50), Star(1)})
	tu.AssertEqual(t, over, true)
	// fixed and percentage lengths are kept, the remainder is clipped
	tu.AssertEqual(t, resolved, []Fl{80, 50, 0})
}

func TestResolveNoProportional(t *testing.T) {
	resolved, over := ResolveLengths(100, []Length{Fixed(10), Percent(10), Auto})
	tu.AssertEqual(t, over, false)
	tu.AssertEqual(t, resolved, []Fl{10, 10, 0})
}

func TestLength(t *testing.T) {
	tu.AssertEqual(t, Fixed(-4), Fixed(0))
	tu.AssertEqual(t, Star(0), Star(1))
	tu.AssertEqual(t, Auto.IsAuto(), true)
	tu.AssertEqual(t, Length{}.IsAuto(), true)

	tu.AssertClose(t, Fixed(12).Resolve(400), 12)
	tu.AssertClose(t, Percent(25).Resolve(400), 100)
	tu.AssertClose(t, Star(3).Resolve(400), 400)
	tu.AssertClose(t, Auto.Resolve(400), 0)

	for l, exp := range map[Length]string{
		Fixed(12.5): "12.5",
		Percent(20): "20%",
		Star(2):     "2*",
		Auto:        "auto",
	} {
		tu.AssertEqual(t, l.String(), exp)
	}
}
