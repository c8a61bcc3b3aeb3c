package format

import (
	"strings"

	"github.com/mesh-intelligence/yardstick/pkg/fractions"
	"github.com/mesh-intelligence/yardstick/pkg/measure"
	"github.com/mesh-intelligence/yardstick/pkg/units"
)

// Fraction renders the smallest piece as the nearest fraction over a fixed
// denominator, e.g. "2yd 1ft 5-1/4in" or "~-2ft 1-1/8in".
type Fraction struct {
	breakdown
	denominator int
}

var _ Formatter = (*Fraction)(nil)

// NewFraction returns a Fraction formatter. denominator is the finest
// fraction shown and must be a positive even number.
func NewFraction(denominator int, list ...units.Unit) (*Fraction, error) {
	if err := fractions.ValidatePrecision(denominator); err != nil {
		return nil, err
	}
	b, err := newBreakdown(list)
	if err != nil {
		return nil, err
	}
	return &Fraction{breakdown: b, denominator: denominator}, nil
}

// Denominator returns the configured fraction precision.
func (f *Fraction) Denominator() int {
	return f.denominator
}

// Format renders m. A fraction that comes out as zero is dropped unless
// nothing else would be shown. A Fraction not built by NewFraction has no
// units and renders m.String().
func (f *Fraction) Format(m measure.Measurement) string {
	if len(f.units) == 0 {
		return m.String()
	}
	pieces := f.Decompose(m)
	n := len(pieces)
	if m.IsZero() {
		return pieces[n-1].String()
	}

	showSignOnce(pieces)
	roundedUp := carry(pieces, f.shouldRoundUp)
	last := pieces[n-1]
	nearest := f.nearest(last)

	parts := make([]string, 0, n)
	zeros := 0
	for _, p := range pieces[:n-1] {
		if p.IsZero() {
			zeros++
			continue
		}
		parts = append(parts, p.String())
	}

	estimated := nearest.Approximate
	nearest.Approximate = false
	text := nearest.String()
	if text != "0" || zeros == n-1 {
		parts = append(parts, text+last.Unit().Abbreviation())
	}
	return approximate(strings.Join(parts, " "), estimated || roundedUp)
}

// shouldRoundUp reports whether the nearest fraction of piece is the next
// whole unit away from zero.
func (f *Fraction) shouldRoundUp(piece measure.Measurement) bool {
	nearest := f.nearest(piece)
	if !nearest.IsWhole() {
		return false
	}
	length := piece.Length()
	roundedUp := length.RoundUp(0)

	return !length.Equal(nearest.Whole) && nearest.Whole.Equal(roundedUp)
}

func (f *Fraction) nearest(piece measure.Measurement) fractions.Fraction {
	// The denominator was validated by NewFraction.
	nearest, _ := fractions.Nearest(piece.Length(), f.denominator)
	return nearest
}
