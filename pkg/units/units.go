// Package units defines the fixed table of linear length units and their
// exact ratios to millimeters. The table is read-only and safe for
// concurrent use.
package units

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Unit identifies one of the supported linear length units.
type Unit int

// Supported units, in table order.
const (
	Millimeter Unit = iota
	Centimeter
	Meter
	Inch
	Foot
	Yard
)

// ErrUnrecognizedUnit is returned when a name matches no abbreviation or
// display name in the table.
var ErrUnrecognizedUnit = errors.New("unrecognized unit")

type definition struct {
	abbreviation string
	displayName  string
	perUnit      decimal.Decimal
}

// table holds one definition per Unit. Ratios are exact decimal literals.
var table = [...]definition{
	Millimeter: {"mm", "Millimeters", decimal.RequireFromString("1")},
	Centimeter: {"cm", "Centimeters", decimal.RequireFromString("10")},
	Meter:      {"m", "Meters", decimal.RequireFromString("1000")},
	Inch:       {"in", "Inches", decimal.RequireFromString("25.4")},
	Foot:       {"ft", "Feet", decimal.RequireFromString("304.8")},
	Yard:       {"yd", "Yards", decimal.RequireFromString("914.4")},
}

// All returns every supported unit in table order.
func All() []Unit {
	return []Unit{Millimeter, Centimeter, Meter, Inch, Foot, Yard}
}

// Valid reports whether u is one of the table's units.
func (u Unit) Valid() bool {
	return u >= Millimeter && int(u) < len(table)
}

// Abbreviation returns the lowercase short code, e.g. "in".
func (u Unit) Abbreviation() string {
	return u.def().abbreviation
}

// DisplayName returns the unit's full name, e.g. "Inches".
func (u Unit) DisplayName() string {
	return u.def().displayName
}

// MillimetersPerUnit returns the exact number of millimeters in one unit.
func (u Unit) MillimetersPerUnit() decimal.Decimal {
	return u.def().perUnit
}

// String returns the abbreviation.
func (u Unit) String() string {
	if !u.Valid() {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return u.Abbreviation()
}

// MarshalText encodes the unit as its abbreviation.
func (u Unit) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnrecognizedUnit, int(u))
	}
	return []byte(u.Abbreviation()), nil
}

// UnmarshalText decodes an abbreviation or display name.
func (u *Unit) UnmarshalText(text []byte) error {
	parsed, err := Lookup(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

func (u Unit) def() definition {
	if !u.Valid() {
		panic(fmt.Sprintf("units: invalid unit %d", int(u)))
	}
	return table[u]
}

// Lookup finds the unit whose abbreviation or display name matches name,
// ignoring case. It returns ErrUnrecognizedUnit naming the token otherwise.
func Lookup(name string) (Unit, error) {
	for _, u := range All() {
		d := table[u]
		if strings.EqualFold(name, d.abbreviation) || strings.EqualFold(name, d.displayName) {
			return u, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnrecognizedUnit, name)
}

// ParseList parses a comma-separated list of unit names such as "yd,ft,in".
// Blank entries are ignored.
func ParseList(list string) ([]Unit, error) {
	var out []Unit
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		u, err := Lookup(field)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

// Abbreviations renders units as a comma-separated abbreviation list, the
// inverse of ParseList.
func Abbreviations(list []Unit) string {
	names := make([]string, len(list))
	for i, u := range list {
		names[i] = u.String()
	}
	return strings.Join(names, ",")
}
