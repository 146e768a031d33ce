// Package matrix provides 2D affine transformations.
package matrix

import "github.com/benoitkugler/paginate/utils"

type fl = utils.Fl

// Transform encode a (2D) linear transformation
//
// The encoded transformation is given by :
//
//	x_new = a * x + c * y + e
//	y_new = b * x + d * y + f
//
// which is equivalent to the vector notation Y = AX + B, with
//
//	A = | a c | ;  B = | e |
//	    | b d |        | f |
//
// The y axis grows downward, as in the output pages.
type Transform struct {
	A, B, C, D, E, F fl
}

// Translation returns the translation by (tx, ty).
func Translation(tx, ty fl) Transform {
	return Transform{1, 0, 0, 1, tx, ty}
}

// QuarterRotation returns the rotation by `turns` quarter turns,
// with exact coefficients. Negative values rotate backward.
// Positive turns rotate from the X axis toward the Y axis.
func QuarterRotation(turns int) Transform {
	switch ((turns % 4) + 4) % 4 {
	case 1:
		return Transform{0, 1, -1, 0, 0, 0}
	case 2:
		return Transform{-1, 0, 0, -1, 0, 0}
	case 3:
		return Transform{0, -1, 1, 0, 0, 0}
	default:
		return Transform{1, 0, 0, 1, 0, 0}
	}
}

// Determinant returns the determinant of the matrix, which is
// non zero if and only if the transformation is reversible.
func (t Transform) Determinant() fl {
	return t.A*t.D - t.B*t.C
}

// Mul returns the transform T * U,
// which apply U then T.
func Mul(T, U Transform) Transform {
	return Transform{
		A: T.A*U.A + T.C*U.B,
		B: T.B*U.A + T.D*U.B,
		C: T.A*U.C + T.C*U.D,
		D: T.B*U.C + T.D*U.D,
		E: T.A*U.E + T.C*U.F + T.E,
		F: T.B*U.E + T.D*U.F + T.F,
	}
}

// Apply transforms the point `(x, y)` by this matrix, that is
// compute AX + B
func (T Transform) Apply(x, y fl) (outX, outY fl) {
	outX = T.A*x + T.C*y + T.E
	outY = T.B*x + T.D*y + T.F
	return
}
