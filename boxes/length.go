package boxes

import (
	"fmt"

	"github.com/benoitkugler/paginate/utils"
)

type Fl = utils.Fl

// LengthKind is the kind of a dimension request.
type LengthKind uint8

const (
	// KindAuto is the absence of request: the size comes from the content.
	KindAuto LengthKind = iota
	KindFixed
	KindPercent
	// KindStar claims a weighted share of the space
	// remaining after fixed and percentage siblings are reserved.
	KindStar
)

// Length is a width or height request.
// The zero value is [Auto].
type Length struct {
	Kind  LengthKind
	Value Fl
}

// Auto sizes from the content.
var Auto = Length{}

// Fixed returns a length of `v` points. Negative values are clamped to zero.
func Fixed(v Fl) Length { return Length{Kind: KindFixed, Value: utils.Clip0(v)} }

// Percent returns a length of `p` percents of the available space,
// so that Percent(20) is 20%. Negative values are clamped to zero.
func Percent(p Fl) Length { return Length{Kind: KindPercent, Value: utils.Clip0(p)} }

// Star returns a proportional length, with weight `w`.
// Non positive weights are replaced by 1.
func Star(w Fl) Length {
	if w <= 0 {
		w = 1
	}
	return Length{Kind: KindStar, Value: w}
}

func (l Length) IsAuto() bool { return l.Kind == KindAuto }

func (l Length) String() string {
	switch l.Kind {
	case KindFixed:
		return fmt.Sprintf("%g", l.Value)
	case KindPercent:
		return fmt.Sprintf("%g%%", l.Value)
	case KindStar:
		return fmt.Sprintf("%g*", l.Value)
	default:
		return "auto"
	}
}

// Resolve resolves the length alone against `available`:
// a proportional length takes all of it, and [Auto] resolves to 0.
func (l Length) Resolve(available Fl) Fl {
	switch l.Kind {
	case KindFixed:
		return l.Value
	case KindPercent:
		return l.Value / 100 * available
	case KindStar:
		return utils.Clip0(available)
	default:
		return 0
	}
}

// ResolveLengths distributes `available` between siblings.
// Fixed and percentage lengths are reserved first, then the remainder
// is shared between proportional lengths according to their weights.
// Auto lengths resolve to 0 and do not consume the remainder.
//
// When the reserved space exceeds `available`, the remainder is clipped
// to zero and `overCommitted` is true.
func ResolveLengths(available Fl, specs []Length) (resolved []Fl, overCommitted bool) {
	resolved = make([]Fl, len(specs))
	var (
		reserved, totalWeight Fl
		lastStar              = -1
	)
	for i, spec := range specs {
		switch spec.Kind {
		case KindFixed, KindPercent:
			resolved[i] = spec.Resolve(available)
			reserved += resolved[i]
		case KindStar:
			totalWeight += spec.Value
			lastStar = i
		}
	}

	remainder := available - reserved
	if remainder < -utils.Epsilon {
		overCommitted = true
	}
	remainder = utils.Clip0(remainder)

	if lastStar == -1 {
		return resolved, overCommitted
	}
	// the last proportional sibling takes what is left,
	// so that rounding errors do not leak
	var distributed Fl
	for i, spec := range specs {
		if spec.Kind != KindStar {
			continue
		}
		if i == lastStar {
			resolved[i] = utils.Clip0(remainder - distributed)
		} else {
			resolved[i] = remainder * spec.Value / totalWeight
			distributed += resolved[i]
		}
	}
	return resolved, overCommitted
}
