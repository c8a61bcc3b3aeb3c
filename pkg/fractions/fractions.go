// Package fractions renders decimal numbers as the nearest fraction over a
// fixed power-of-two style denominator, the way lengths are read off a tape
// measure: 12.1875 at sixteenths is "12-3/16", 13.64 at eighths is "~13-5/8".
//
// The search walks numerators 0..precision and stops at the first candidate
// that is no closer than its predecessor. It is a greedy scan over a fixed
// grid, not a continued-fraction approximation.
package fractions

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// ErrInvalidPrecision is returned for a precision that is not a positive
// even number.
var ErrInvalidPrecision = errors.New("precision must be a positive even number")

// ApproximationMarker prefixes rendered values that are not exact.
const ApproximationMarker = "~"

// Fraction is the result of a nearest-fraction search. A zero Numerator
// means the value renders as the whole number alone.
type Fraction struct {
	Whole       decimal.Decimal // truncated toward zero, carries the sign
	Numerator   int
	Denominator int
	Negative    bool // the input number was below zero
	Approximate bool
}

// String renders "whole-n/d", "n/d" or "whole", with a leading "-" for a
// negative value under one and "~" when the fraction is approximate.
func (f Fraction) String() string {
	var s string
	switch {
	case f.Numerator == 0:
		s = f.Whole.String()
	case !f.Whole.IsZero():
		s = f.Whole.String() + "-" + f.ratio()
	case f.Negative:
		s = "-" + f.ratio()
	default:
		s = f.ratio()
	}
	if f.Approximate {
		return ApproximationMarker + s
	}
	return s
}

func (f Fraction) ratio() string {
	return strconv.Itoa(f.Numerator) + "/" + strconv.Itoa(f.Denominator)
}

// IsWhole reports whether the fraction renders as a whole number.
func (f Fraction) IsWhole() bool {
	return f.Numerator == 0
}

// Nearest finds the fraction with denominator precision closest to number
// under the stepwise scan described in the package documentation, then
// reduces it by halving numerator and denominator while both are even.
func Nearest(number decimal.Decimal, precision int) (Fraction, error) {
	if err := ValidatePrecision(precision); err != nil {
		return Fraction{}, err
	}

	abs := number.Abs()
	f := Fraction{
		Whole:       number.Truncate(0),
		Denominator: precision,
		Negative:    number.Sign() < 0,
	}

	part := abs.Sub(abs.Truncate(0))
	if part.IsZero() {
		return f, nil
	}

	// Distances are compared in units of 1/precision so every candidate
	// numerator is an exact integer.
	scaled := part.Mul(decimal.NewFromInt(int64(precision)))
	previous := decimal.NewFromInt(int64(precision))

	for i := 0; i <= precision; i++ {
		candidate := decimal.NewFromInt(int64(i))
		if scaled.Equal(candidate) {
			f.Numerator = i
			break
		}

		distance := scaled.Sub(candidate).Abs()
		if distance.LessThan(previous) {
			previous = distance
			if i == precision {
				f.Whole = awayFromZero(f.Whole, f.Negative)
				f.Approximate = true
				return f, nil
			}
			continue
		}

		f.Approximate = true
		if i == 1 {
			return f, nil
		}
		f.Numerator = i - 1
		break
	}

	for f.Numerator%2 == 0 && f.Denominator%2 == 0 {
		f.Numerator /= 2
		f.Denominator /= 2
	}
	return f, nil
}

// ValidatePrecision returns ErrInvalidPrecision unless precision is a
// positive even number.
func ValidatePrecision(precision int) error {
	if precision <= 0 || precision%2 != 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPrecision, precision)
	}
	return nil
}

// String is Nearest rendered as text.
func String(number decimal.Decimal, precision int) (string, error) {
	f, err := Nearest(number, precision)
	if err != nil {
		return "", err
	}
	return f.String(), nil
}

func awayFromZero(whole decimal.Decimal, negative bool) decimal.Decimal {
	if negative {
		return whole.Sub(decimal.NewFromInt(1))
	}
	return whole.Add(decimal.NewFromInt(1))
}
