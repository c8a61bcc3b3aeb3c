package format

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/yardstick/pkg/measure"
	"github.com/mesh-intelligence/yardstick/pkg/units"
)

// Decimal renders the smallest piece with a fixed number of fractional
// digits, e.g. "1ft 5.25in" or "~41.339in".
type Decimal struct {
	breakdown
	scale int32
}

var _ Formatter = (*Decimal)(nil)

// NewDecimal returns a Decimal formatter rounding the smallest piece to
// scale fractional digits. Units must be listed largest first.
func NewDecimal(scale int, list ...units.Unit) (*Decimal, error) {
	if scale < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidScale, scale)
	}
	b, err := newBreakdown(list)
	if err != nil {
		return nil, err
	}
	return &Decimal{breakdown: b, scale: int32(scale)}, nil
}

// Scale returns the number of fractional digits shown.
func (f *Decimal) Scale() int {
	return int(f.scale)
}

// Format renders m, skipping zero pieces. A Decimal not built by NewDecimal
// has no units and renders m.String().
func (f *Decimal) Format(m measure.Measurement) string {
	if len(f.units) == 0 {
		return m.String()
	}
	pieces := f.Decompose(m)
	n := len(pieces)
	if m.IsZero() {
		return pieces[n-1].String()
	}

	roundedUp := carry(pieces, f.shouldRoundUp)
	last := pieces[n-1]
	rounded := last.Scale(f.scale)
	pieces[n-1] = rounded

	approx := roundedUp || !last.Equal(rounded)
	showSignOnce(pieces)

	parts := make([]string, 0, n)
	for _, p := range pieces {
		if p.IsZero() {
			continue
		}
		parts = append(parts, p.String())
	}
	if len(parts) == 0 {
		parts = append(parts, pieces[n-1].String())
	}
	return approximate(strings.Join(parts, " "), approx)
}

// shouldRoundUp reports whether rounding piece to the configured scale lands
// exactly on the next whole unit away from zero.
func (f *Decimal) shouldRoundUp(piece measure.Measurement) bool {
	length := piece.Length()
	rounded := length.Round(f.scale)
	roundedUp := length.RoundUp(0)

	return !length.Equal(rounded) && rounded.Equal(roundedUp)
}
