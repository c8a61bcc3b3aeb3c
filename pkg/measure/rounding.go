package measure

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RoundingMode selects how ScaleWith discards digits.
type RoundingMode int

const (
	// RoundHalfUp rounds to nearest, ties away from zero. This is the
	// default for every operation in the package.
	RoundHalfUp RoundingMode = iota
	// RoundUp rounds away from zero.
	RoundUp
	// RoundDown rounds toward zero.
	RoundDown
	// RoundCeiling rounds toward positive infinity.
	RoundCeiling
	// RoundFloor rounds toward negative infinity.
	RoundFloor
	// RoundHalfEven rounds to nearest, ties to the even neighbor.
	RoundHalfEven
)

var roundingNames = map[RoundingMode]string{
	RoundHalfUp:   "half-up",
	RoundUp:       "up",
	RoundDown:     "down",
	RoundCeiling:  "ceiling",
	RoundFloor:    "floor",
	RoundHalfEven: "half-even",
}

func (r RoundingMode) String() string {
	if name, ok := roundingNames[r]; ok {
		return name
	}
	return fmt.Sprintf("RoundingMode(%d)", int(r))
}

// ParseRoundingMode reads a mode name such as "half-up" or "floor".
func ParseRoundingMode(name string) (RoundingMode, error) {
	for mode, n := range roundingNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("unknown rounding mode %q", name)
}

func (r RoundingMode) round(d decimal.Decimal, places int32) decimal.Decimal {
	switch r {
	case RoundUp:
		return d.RoundUp(places)
	case RoundDown:
		return d.RoundDown(places)
	case RoundCeiling:
		return d.RoundCeil(places)
	case RoundFloor:
		return d.RoundFloor(places)
	case RoundHalfEven:
		return d.RoundBank(places)
	default:
		return d.Round(places)
	}
}
