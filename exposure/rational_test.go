package exposure

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRational(t *testing.T) {
	t.Run("parses fractions", func(t *testing.T) {
		r, err := ParseRational("1/15")
		require.NoError(t, err)
		assert.Equal(t, Rational{Numerator: 1, Denominator: 15}, r)
	})

	t.Run("parses whole seconds with denominator 1", func(t *testing.T) {
		r, err := ParseRational("15")
		require.NoError(t, err)
		assert.Equal(t, Rational{Numerator: 15, Denominator: 1}, r)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, in := range []string{"", "abc", "1/", "/2", "1/2/3", "-1/60", "1/-60", "0.5/2", "1/0", " 1/60"} {
			_, err := ParseRational(in)
			require.Error(t, err, in)

			var pe *ParseError
			assert.True(t, errors.As(err, &pe), in)
			assert.ErrorIs(t, err, ErrMalformed, in)
			assert.Equal(t, in, pe.Input)
		}
	})
}

func TestRationalSet(t *testing.T) {
	t.Run("keeps the previous value on bad input", func(t *testing.T) {
		r := Rational{Numerator: 1, Denominator: 60}

		err := r.Set("1/x")

		assert.ErrorIs(t, err, ErrMalformed)
		assert.Equal(t, Rational{Numerator: 1, Denominator: 60}, r)
	})

	t.Run("replaces the value on good input", func(t *testing.T) {
		r := Rational{Numerator: 1, Denominator: 60}

		require.NoError(t, r.Set("2"))
		assert.Equal(t, Rational{Numerator: 2, Denominator: 1}, r)
	})
}

func TestRationalRoundTrip(t *testing.T) {
	for _, r := range []Rational{
		{Numerator: 1, Denominator: 1},
		{Numerator: 30, Denominator: 1},
		{Numerator: 1, Denominator: 15},
		{Numerator: 10, Denominator: 600},
		{Numerator: 0, Denominator: 1},
		{Numerator: 4294967295, Denominator: 4294967295},
	} {
		got, err := ParseRational(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}
}

func TestRationalString(t *testing.T) {
	assert.Equal(t, "15", Rational{Numerator: 15, Denominator: 1}.String())
	assert.Equal(t, "1/250", Rational{Numerator: 1, Denominator: 250}.String())
}

func TestParseShutter(t *testing.T) {
	tests := []struct {
		in   string
		want Rational
	}{
		{"1/60", Rational{Numerator: 1, Denominator: 60}},
		{"3", Rational{Numerator: 3, Denominator: 1}},
		{"0.8", Rational{Numerator: 4, Denominator: 5}},
		{"2.5", Rational{Numerator: 5, Denominator: 2}},
		{"1.3", Rational{Numerator: 13, Denominator: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseShutter(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, in := range []string{".5", "1.", "1.x", "1.2345"} {
		_, err := ParseShutter(in)
		assert.ErrorIs(t, err, ErrMalformed, in)
	}
}

func TestFormatShutter(t *testing.T) {
	assert.Equal(t, "1/60", FormatShutter(Rational{Numerator: 10, Denominator: 600}))
	assert.Equal(t, "0.8", FormatShutter(Rational{Numerator: 8, Denominator: 10}))
	assert.Equal(t, "2.5", FormatShutter(Rational{Numerator: 5, Denominator: 2}))
	assert.Equal(t, "30", FormatShutter(Rational{Numerator: 30, Denominator: 1}))
	assert.Equal(t, "2/3", FormatShutter(Rational{Numerator: 2, Denominator: 3}))

	// every decimal display string in the shutter table survives a round trip
	for _, s := range ShutterStrings() {
		r, err := ParseShutter(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, FormatShutter(r), s)
	}
}

func TestRationalFloat64(t *testing.T) {
	assert.InDelta(t, 1.0/60, Rational{Numerator: 1, Denominator: 60}.Float64(), 1e-12)
	assert.InDelta(t, 2.5, Rational{Numerator: 5, Denominator: 2}.Float64(), 1e-12)
	assert.Zero(t, Rational{Numerator: 1}.Float64())
}
