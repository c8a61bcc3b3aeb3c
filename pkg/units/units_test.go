package units

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		want Unit
	}{
		{"mm", Millimeter},
		{"MM", Millimeter},
		{"millimeters", Millimeter},
		{"Centimeters", Centimeter},
		{"m", Meter},
		{"in", Inch},
		{"INCHES", Inch},
		{"ft", Foot},
		{"feet", Foot},
		{"yd", Yard},
		{"Yards", Yard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lookup(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookup_Unrecognized(t *testing.T) {
	for _, name := range []string{"", "inn", "furlong", "mile"} {
		_, err := Lookup(name)
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, ErrUnrecognizedUnit))
		assert.Contains(t, err.Error(), name)
	}
}

func TestMillimetersPerUnit(t *testing.T) {
	want := map[Unit]string{
		Millimeter: "1",
		Centimeter: "10",
		Meter:      "1000",
		Inch:       "25.4",
		Foot:       "304.8",
		Yard:       "914.4",
	}
	for u, ratio := range want {
		assert.Equal(t, ratio, u.MillimetersPerUnit().String(), u.DisplayName())
	}
}

func TestAllIsTableOrder(t *testing.T) {
	all := All()
	require.Len(t, all, 6)
	assert.Equal(t, "mm,cm,m,in,ft,yd", Abbreviations(all))
}

func TestParseList(t *testing.T) {
	got, err := ParseList(" yd, Feet ,in,")
	require.NoError(t, err)
	assert.Equal(t, []Unit{Yard, Foot, Inch}, got)

	_, err = ParseList("yd,parsec")
	assert.ErrorIs(t, err, ErrUnrecognizedUnit)
}

func TestTextRoundTrip(t *testing.T) {
	for _, u := range All() {
		text, err := u.MarshalText()
		require.NoError(t, err)

		var back Unit
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, u, back)
	}

	_, err := Unit(42).MarshalText()
	assert.ErrorIs(t, err, ErrUnrecognizedUnit)
	assert.Equal(t, "Unit(42)", Unit(42).String())
}
