// Package format renders measurements as human-readable text across a
// descending list of units, e.g. "2yd 1ft 5-1/4in" or "~-2.667yd".
//
// Both renderers share one algorithm: the measurement is decomposed into one
// piece per unit, a rounding policy decides whether the smallest piece tips
// over into a whole unit (carrying upward through the larger pieces), and the
// overall sign is shown once on the leading piece. A "~" prefix marks output
// that is not exact.
package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/yardstick/pkg/fractions"
	"github.com/mesh-intelligence/yardstick/pkg/measure"
	"github.com/mesh-intelligence/yardstick/pkg/types"
	"github.com/mesh-intelligence/yardstick/pkg/units"
)

// Formatter renders a Measurement as text.
type Formatter interface {
	Format(m measure.Measurement) string
}

// Construction errors.
var (
	ErrNoUnits            = errors.New("must specify a list of units")
	ErrUnitsNotDescending = errors.New("units not in descending length")
	ErrInvalidScale       = errors.New("scale must not be negative")
)

// breakdown holds the validated unit list shared by both renderers.
type breakdown struct {
	units []units.Unit
}

func newBreakdown(list []units.Unit) (breakdown, error) {
	if len(list) == 0 {
		return breakdown{}, ErrNoUnits
	}
	for i, u := range list {
		if !u.Valid() {
			return breakdown{}, fmt.Errorf("%w: %d", units.ErrUnrecognizedUnit, int(u))
		}
		if i > 0 && u.MillimetersPerUnit().Cmp(list[i-1].MillimetersPerUnit()) >= 0 {
			return breakdown{}, fmt.Errorf("%w: %s", ErrUnitsNotDescending, units.Abbreviations(list))
		}
	}
	return breakdown{units: append([]units.Unit(nil), list...)}, nil
}

// Units returns the configured units, largest first.
func (b breakdown) Units() []units.Unit {
	return append([]units.Unit(nil), b.units...)
}

// Decompose splits m into one piece per configured unit. Every piece but the
// last is a whole number of its unit; the last piece absorbs the remainder.
func (b breakdown) Decompose(m measure.Measurement) []measure.Measurement {
	pieces := make([]measure.Measurement, 0, len(b.units))
	remaining := m.Millimeters()

	for i, u := range b.units {
		quotient, remainder := remaining.QuoRem(u.MillimetersPerUnit(), 0)
		piece := measure.New(quotient, u)

		if i == len(b.units)-1 {
			piece = piece.Add(measure.New(remainder, units.Millimeter))
		} else {
			remaining = remainder
		}
		pieces = append(pieces, piece)
	}
	return pieces
}

// carry rounds the last piece up to a whole unit when shouldRoundUp says its
// rendering would, then propagates any piece that has grown to a full unit of
// its larger neighbor. It reports whether rounding happened.
func carry(pieces []measure.Measurement, shouldRoundUp func(measure.Measurement) bool) bool {
	n := len(pieces)
	if !shouldRoundUp(pieces[n-1]) {
		return false
	}
	pieces[n-1] = pieces[n-1].ScaleWith(0, measure.RoundUp)

	for i := n - 1; i > 0; i-- {
		current, next := pieces[i], pieces[i-1]
		if !current.Millimeters().Abs().Equal(next.Unit().MillimetersPerUnit()) {
			continue
		}

		// Grow the larger piece away from zero. A zero larger piece takes
		// the direction of the piece being carried.
		step := next.Sign()
		if step == 0 {
			step = current.Sign()
		}
		pieces[i] = measure.FromInt(0, current.Unit())
		pieces[i-1] = next.Add(measure.FromInt(int64(step), next.Unit()))
	}
	return true
}

// showSignOnce keeps the minus sign on the first negative piece and renders
// every later negative piece as its magnitude.
func showSignOnce(pieces []measure.Measurement) {
	seen := false
	for i, p := range pieces {
		if !p.IsNegative() {
			continue
		}
		if seen {
			pieces[i] = measure.NewIn(p.Millimeters().Abs(), p.Unit(), units.Millimeter)
			continue
		}
		seen = true
	}
}

func approximate(text string, approx bool) string {
	if approx {
		return fractions.ApproximationMarker + text
	}
	return text
}

// FromConfig builds the renderer selected by cfg.Style.
func FromConfig(cfg types.FormatConfig) (Formatter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	list, err := units.ParseList(cfg.Units)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(cfg.Style, types.StyleDecimal) {
		return NewDecimal(cfg.Scale, list...)
	}
	return NewFraction(cfg.Denominator, list...)
}
