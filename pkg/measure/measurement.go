// Package measure provides Measurement, an immutable exact-decimal length
// tied to a display unit. Every operation returns a new value; a Measurement
// is safe to share between goroutines.
package measure

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/yardstick/pkg/units"
)

// displayScale is the number of fractional digits kept when a millimeter
// value is divided back into a display unit.
const displayScale = 10

// Measurement errors.
var (
	ErrNumberFormat   = errors.New("malformed number")
	ErrDivisionByZero = errors.New("division by zero length")
)

var parsePattern = regexp.MustCompile(`^(.*[^a-zA-Z\s])\s?([a-zA-Z]+)$`)

// Measurement is a length stored exactly in millimeters together with the
// unit it is displayed in. The zero value is 0mm.
type Measurement struct {
	millis decimal.Decimal
	unit   units.Unit
}

// New creates a Measurement of length in unit.
func New(length decimal.Decimal, unit units.Unit) Measurement {
	return NewIn(length, unit, unit)
}

// NewIn creates a Measurement whose length is expressed in input but which
// displays in display. NewIn(d, units.Yard, units.Millimeter) holds d
// millimeters shown as yards.
func NewIn(length decimal.Decimal, display, input units.Unit) Measurement {
	return Measurement{
		millis: normalize(length.Mul(input.MillimetersPerUnit())),
		unit:   display,
	}
}

// FromInt creates a Measurement from an integral length.
func FromInt(length int64, unit units.Unit) Measurement {
	return New(decimal.NewFromInt(length), unit)
}

// FromString creates a Measurement from a decimal literal such as "-.875".
func FromString(length string, unit units.Unit) (Measurement, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(length))
	if err != nil {
		return Measurement{}, fmt.Errorf("%w: %q", ErrNumberFormat, length)
	}
	return New(d, unit), nil
}

// MustFromString is like FromString but panics on a malformed literal.
// It is intended for constants and tests.
func MustFromString(length string, unit units.Unit) Measurement {
	m, err := FromString(length, unit)
	if err != nil {
		panic(err)
	}
	return m
}

// Parse reads the String form of a Measurement, e.g. "23 yd", "23yd" or
// "-1005 millimeters". Unit names match abbreviations and display names,
// ignoring case.
func Parse(text string) (Measurement, error) {
	match := parsePattern.FindStringSubmatch(strings.TrimSpace(text))
	if match == nil {
		return Measurement{}, fmt.Errorf("%w: %q", ErrNumberFormat, text)
	}
	unit, err := units.Lookup(match[2])
	if err != nil {
		return Measurement{}, err
	}
	return FromString(match[1], unit)
}

// Length returns the length in the display unit, rounded half-up to ten
// fractional digits. Use Millimeters for the exact value.
func (m Measurement) Length() decimal.Decimal {
	return normalize(m.millis.DivRound(m.unit.MillimetersPerUnit(), displayScale))
}

// Millimeters returns the exact length in millimeters.
func (m Measurement) Millimeters() decimal.Decimal {
	return m.millis
}

// Unit returns the display unit.
func (m Measurement) Unit() units.Unit {
	return m.unit
}

// IsZero reports whether the length is exactly zero.
func (m Measurement) IsZero() bool {
	return m.millis.Sign() == 0
}

// IsNegative reports whether the length is less than zero.
func (m Measurement) IsNegative() bool {
	return m.millis.Sign() < 0
}

// IsPositive reports whether the length is greater than zero.
func (m Measurement) IsPositive() bool {
	return m.millis.Sign() > 0
}

// Sign returns -1, 0 or +1.
func (m Measurement) Sign() int {
	return m.millis.Sign()
}

// Add returns m + other, displayed in m's unit.
func (m Measurement) Add(other Measurement) Measurement {
	return NewIn(m.millis.Add(other.millis), m.unit, units.Millimeter)
}

// Subtract returns m - other, displayed in m's unit.
func (m Measurement) Subtract(other Measurement) Measurement {
	return NewIn(m.millis.Sub(other.millis), m.unit, units.Millimeter)
}

// Multiply converts other into m's unit and multiplies the two display
// lengths. 3in × 3ft is 108in.
func (m Measurement) Multiply(other Measurement) Measurement {
	return New(m.Length().Mul(other.Convert(m.unit).Length()), m.unit)
}

// Divide converts other into m's unit and divides the two display lengths,
// rounding half-up to ten fractional digits. 9cm ÷ 30mm is 3cm.
func (m Measurement) Divide(other Measurement) (Measurement, error) {
	divisor := other.Convert(m.unit).Length()
	if divisor.IsZero() {
		return Measurement{}, fmt.Errorf("%w: %s ÷ %s", ErrDivisionByZero, m, other)
	}
	return New(m.Length().DivRound(divisor, displayScale), m.unit), nil
}

// Convert returns the same length displayed in unit.
func (m Measurement) Convert(unit units.Unit) Measurement {
	return New(m.millis.DivRound(unit.MillimetersPerUnit(), displayScale), unit)
}

// Scale rounds the display length half-up to places fractional digits.
func (m Measurement) Scale(places int32) Measurement {
	return m.ScaleWith(places, RoundHalfUp)
}

// ScaleWith rounds the display length to places fractional digits using
// mode and re-derives the millimeter value from the rounded length.
func (m Measurement) ScaleWith(places int32, mode RoundingMode) Measurement {
	return New(mode.round(m.Length(), places), m.unit)
}

// String renders the display length followed by the unit abbreviation,
// e.g. "4ft" or "103.3789in".
func (m Measurement) String() string {
	return m.Length().String() + m.unit.Abbreviation()
}

// Equal reports whether both measurements have the same length, regardless
// of display unit. 1ft equals 12in.
func (m Measurement) Equal(other Measurement) bool {
	return m.millis.Equal(other.millis)
}

// Compare orders measurements by length: -1 if m is shorter than other,
// 0 if equal, +1 if longer.
func (m Measurement) Compare(other Measurement) int {
	return m.millis.Cmp(other.millis)
}

// Key returns a canonical text of the millimeter value. Equal measurements
// have equal keys, so Key can index maps.
func (m Measurement) Key() string {
	return m.millis.String()
}

// MarshalText encodes the String form.
func (m Measurement) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes the String form.
func (m *Measurement) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

var ten = big.NewInt(10)

// normalize strips trailing fractional zeros; zero becomes canonical 0.
func normalize(d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}
	coef, exp := d.Coefficient(), d.Exponent()
	rem := new(big.Int)
	for exp < 0 {
		q, r := new(big.Int).QuoRem(coef, ten, rem)
		if r.Sign() != 0 {
			break
		}
		coef = q
		exp++
	}
	return decimal.NewFromBigInt(coef, exp)
}
