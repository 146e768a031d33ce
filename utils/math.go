package utils

import (
	"math"
)

// Fl is the floating point type used for every length, expressed in points.
type Fl = float64

// Epsilon is the tolerance used when comparing lengths,
// so that rounding errors never trigger a page break.
const Epsilon Fl = 1e-6

func MinF(x, y Fl) Fl {
	if x < y {
		return x
	}
	return y
}

func MaxF(x, y Fl) Fl {
	if x > y {
		return x
	}
	return y
}

// Clip0 returns v, or 0 if v is negative.
func Clip0(v Fl) Fl {
	if v < 0 {
		return 0
	}
	return v
}

// LessOrClose returns true if a <= b, up to Epsilon.
func LessOrClose(a, b Fl) bool {
	return a <= b+Epsilon
}

// RoundPrec rounds f with n digits precision
func RoundPrec(f Fl, n int) Fl {
	n10 := math.Pow10(n)
	return math.Round(f*n10) / n10
}

// Round rounds f with 6 digits precision
func Round(f Fl) Fl {
	return RoundPrec(f, 6)
}
