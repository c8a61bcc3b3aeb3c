package measure

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/yardstick/pkg/units"
)

func mustParse(t *testing.T, text string) Measurement {
	t.Helper()
	m, err := Parse(text)
	require.NoError(t, err)
	return m
}

// assertMeasurement checks the String form, the display unit (taken from the
// expected text) and the exact millimeter value.
func assertMeasurement(t *testing.T, m Measurement, want, wantMillis string) {
	t.Helper()
	assert.Equal(t, want, m.String())
	assert.Equal(t, mustParse(t, want).Unit(), m.Unit())
	assert.Equal(t, wantMillis, m.Millimeters().String())
}

func TestAdd(t *testing.T) {
	tests := []struct {
		a, b       Measurement
		want       string
		wantMillis string
	}{
		{MustFromString("1", units.Inch), MustFromString("3", units.Foot), "37in", "939.8"},
		{MustFromString("2", units.Foot), MustFromString("3", units.Yard), "11ft", "3352.8"},
		{MustFromString("5", units.Yard), MustFromString("3", units.Inch), "5.0833333333yd", "4648.2"},
		{MustFromString("1", units.Yard), MustFromString("1", units.Millimeter), "1.0010936133yd", "915.4"},
		{MustFromString("2.125", units.Inch), MustFromString(".875", units.Inch), "3in", "76.2"},
		{MustFromString("10", units.Foot), MustFromString("2", units.Inch), "10.1666666667ft", "3098.8"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assertMeasurement(t, tt.a.Add(tt.b), tt.want, tt.wantMillis)
		})
	}
}

func TestSubtract(t *testing.T) {
	tests := []struct {
		a, b       Measurement
		want       string
		wantMillis string
	}{
		{MustFromString("100.5", units.Meter), MustFromString("3", units.Inch), "100.4238m", "100423.8"},
		{MustFromString("1", units.Yard), MustFromString("3", units.Foot), "0yd", "0"},
		{MustFromString("1600", units.Meter), MustFromString("25", units.Millimeter), "1599.975m", "1599975"},
		{MustFromString("11", units.Foot), MustFromString("10", units.Inch), "10.1666666667ft", "3098.8"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assertMeasurement(t, tt.a.Subtract(tt.b), tt.want, tt.wantMillis)
		})
	}
}

func TestSubtract_ZeroIsCanonical(t *testing.T) {
	a := MustFromString("2.500", units.Inch)
	diff := a.Subtract(MustFromString("2.5", units.Inch))

	assert.True(t, diff.IsZero())
	assert.Equal(t, "0in", diff.String())
	assert.Equal(t, "0", diff.Millimeters().String())
}

func TestMultiply(t *testing.T) {
	tests := []struct {
		a, b       Measurement
		want       string
		wantMillis string
	}{
		{MustFromString("3", units.Inch), MustFromString("3", units.Foot), "108in", "2743.2"},
		{MustFromString("8.25", units.Centimeter), MustFromString("400", units.Meter), "330000cm", "3300000"},
		{MustFromString("109.7", units.Millimeter), MustFromString("3.125", units.Foot), "104489.25mm", "104489.25"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assertMeasurement(t, tt.a.Multiply(tt.b), tt.want, tt.wantMillis)
		})
	}
}

func TestDivide(t *testing.T) {
	tests := []struct {
		a, b       Measurement
		want       string
		wantMillis string
	}{
		{MustFromString("9", units.Centimeter), MustFromString("30", units.Millimeter), "3cm", "30"},
		{MustFromString("12", units.Foot), MustFromString("2.23", units.Yard), "1.7937219731ft", "546.72645740088"},
		{MustFromString("31", units.Foot), MustFromString("3.9", units.Meter), "2.4227692308ft", "738.46006154784"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := tt.a.Divide(tt.b)
			require.NoError(t, err)
			assertMeasurement(t, got, tt.want, tt.wantMillis)
		})
	}
}

func TestDivide_ByZero(t *testing.T) {
	_, err := FromInt(3, units.Foot).Divide(FromInt(0, units.Inch))
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestConvert(t *testing.T) {
	assertMeasurement(t, MustFromString("3", units.Foot).Convert(units.Yard), "1yd", "914.4")
	assertMeasurement(t, MustFromString("1005", units.Millimeter).Convert(units.Meter), "1.005m", "1005")
	assertMeasurement(t, MustFromString("40", units.Inch).Convert(units.Foot), "3.3333333333ft", "1015.99999998984")
}

func TestScale(t *testing.T) {
	assertMeasurement(t, MustFromString("103.378913", units.Inch).Scale(4), "103.3789in", "2625.82406")
	assertMeasurement(t, MustFromString(".824", units.Centimeter).Scale(2), "0.82cm", "8.2")
}

func TestScaleWith(t *testing.T) {
	m := MustFromString("-2.345", units.Inch)

	tests := []struct {
		mode RoundingMode
		want string
	}{
		{RoundHalfUp, "-2.35in"},
		{RoundUp, "-2.35in"},
		{RoundDown, "-2.34in"},
		{RoundCeiling, "-2.34in"},
		{RoundFloor, "-2.35in"},
		{RoundHalfEven, "-2.34in"},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, m.ScaleWith(2, tt.mode).String())
		})
	}

	assert.Equal(t, "-3in", m.ScaleWith(0, RoundUp).String())
}

func TestParseRoundingMode(t *testing.T) {
	mode, err := ParseRoundingMode("Half-Even")
	require.NoError(t, err)
	assert.Equal(t, RoundHalfEven, mode)

	_, err = ParseRoundingMode("sideways")
	assert.Error(t, err)
}

func TestPositiveNegativeZero(t *testing.T) {
	m := MustFromString("1", units.Foot)
	assert.True(t, m.IsPositive())
	assert.False(t, m.IsNegative())
	assert.False(t, m.IsZero())

	m = MustFromString("-1", units.Foot)
	assert.False(t, m.IsPositive())
	assert.True(t, m.IsNegative())
	assert.False(t, m.IsZero())
	assert.Equal(t, -1, m.Sign())

	m = MustFromString("0", units.Foot)
	assert.False(t, m.IsPositive())
	assert.False(t, m.IsNegative())
	assert.True(t, m.IsZero())

	var zero Measurement
	assert.True(t, zero.IsZero())
	assert.Equal(t, "0mm", zero.String())
}

func TestNewIn(t *testing.T) {
	m := NewIn(decimal.RequireFromString("914.4"), units.Yard, units.Millimeter)
	assertMeasurement(t, m, "1yd", "914.4")
}

func TestParse(t *testing.T) {
	tests := []struct {
		text       string
		want       string
		wantMillis string
	}{
		{"23 yd", "23yd", "21031.2"},
		{"23yd", "23yd", "21031.2"},
		{"23 YD", "23yd", "21031.2"},
		{"-1005millimeters", "-1005mm", "-1005"},
		{"-1005 millimeters", "-1005mm", "-1005"},
		{"-.875 Inches", "-0.875in", "-22.225"},
		{"1e3mm", "1000mm", "1000"},
		{"6feet", "6ft", "1828.8"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assertMeasurement(t, mustParse(t, tt.text), tt.want, tt.wantMillis)
		})
	}
}

func TestParse_BadNumber(t *testing.T) {
	for _, text := range []string{"6..5ft", "abc ft", "ft", "inches", " yd", ""} {
		_, err := Parse(text)
		assert.ErrorIs(t, err, ErrNumberFormat, text)
		assert.NotErrorIs(t, err, units.ErrUnrecognizedUnit, text)
	}
}

func TestParse_BadUnit(t *testing.T) {
	_, err := Parse("9.875inn")
	require.ErrorIs(t, err, units.ErrUnrecognizedUnit)
	assert.Contains(t, err.Error(), "inn")
}

func TestParse_RoundTrip(t *testing.T) {
	values := []Measurement{
		MustFromString("103.3789", units.Inch),
		MustFromString("-1005", units.Millimeter),
		MustFromString("0.000125", units.Meter),
		FromInt(7, units.Yard),
		MustFromString("12.5", units.Centimeter),
	}
	for _, m := range values {
		back := mustParse(t, m.String())
		assert.True(t, m.Equal(back), "%s round-tripped to %s", m, back)
		assert.Equal(t, m.Unit(), back.Unit())
	}
}

func TestEqual(t *testing.T) {
	x := FromInt(3, units.Foot)
	y := MustFromString("3", units.Foot)
	z := New(decimal.RequireFromString("3"), units.Foot)

	assert.True(t, x.Equal(x))
	assert.True(t, x.Equal(y))
	assert.True(t, y.Equal(x))
	assert.True(t, x.Equal(z))
	assert.False(t, x.Equal(FromInt(4, units.Foot)))
	assert.True(t, x.Equal(FromInt(36, units.Inch)))
}

func TestEqual_UnitIndependent(t *testing.T) {
	m := MustFromString("17.25", units.Inch)
	for _, u := range []units.Unit{units.Millimeter, units.Centimeter, units.Meter, units.Inch, units.Foot} {
		assert.True(t, m.Equal(m.Convert(u)), "17.25in as %s", u)
	}

	// 17.25in is a repeating fraction of a yard, so the ten-digit view differs.
	assert.False(t, m.Equal(m.Convert(units.Yard)))
	assert.True(t, FromInt(1, units.Yard).Equal(FromInt(1, units.Yard).Convert(units.Foot)))
}

func TestCompareAndKey(t *testing.T) {
	foot := FromInt(1, units.Foot)
	inches := FromInt(12, units.Inch)
	yard := FromInt(1, units.Yard)

	assert.Equal(t, 0, foot.Compare(inches))
	assert.Equal(t, -1, foot.Compare(yard))
	assert.Equal(t, 1, yard.Compare(inches))

	seen := map[string]Measurement{foot.Key(): foot}
	_, ok := seen[inches.Key()]
	assert.True(t, ok)
	assert.Equal(t, FromInt(1005, units.Millimeter).Key(), MustFromString("1005.000", units.Millimeter).Key())
}

func TestJSON(t *testing.T) {
	type payload struct {
		Length Measurement `json:"length"`
	}
	data, err := json.Marshal(payload{Length: MustFromString("5.25", units.Inch)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"length":"5.25in"}`, string(data))

	var back payload
	require.NoError(t, json.Unmarshal([]byte(`{"length":"-2 ft"}`), &back))
	assert.Equal(t, "-2ft", back.Length.String())

	assert.Error(t, json.Unmarshal([]byte(`{"length":"2 parsecs"}`), &back))
}
