package exposure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertISO(t *testing.T) {
	tests := []struct {
		iso  uint32
		want ISOSpeed
		ok   bool
	}{
		{50, ISO50, true},
		{100, ISO100, true},
		{400, ISO400, true},
		{1600, ISO1600, true},
		{3200, ISO3200, true},
		{999, ISO100, false},
		{0, ISO100, false},
		{6400, ISO100, false},
	}
	for _, tt := range tests {
		got, ok := ConvertISO(tt.iso)
		assert.Equal(t, tt.want, got, tt.iso)
		assert.Equal(t, tt.ok, ok, tt.iso)
	}

	// EDSDK property codes
	assert.Equal(t, ISOSpeed(0x68), ISO1600)
	assert.Equal(t, ISOSpeed(0x70), ISO3200)
	assert.Equal(t, "ISO3200", ISO3200.String())
}

func TestConvertAperture(t *testing.T) {
	t.Run("matches canonical strings", func(t *testing.T) {
		v, ok := ConvertAperture("4.0")
		assert.True(t, ok)
		assert.Equal(t, DefaultAperture, v)
		assert.Equal(t, "f/4.0", v.String())

		v, ok = ConvertAperture("2.8")
		assert.True(t, ok)
		assert.Equal(t, ApertureValue(0x20), v)
	})

	t.Run("match is exact", func(t *testing.T) {
		for _, in := range []string{"4", "f/4.0", "4.00", " 4.0", "", "33.0"} {
			v, ok := ConvertAperture(in)
			assert.False(t, ok, in)
			assert.Equal(t, DefaultAperture, v, in)
		}
	})

	t.Run("table covers the lens detents", func(t *testing.T) {
		strs := ApertureStrings()
		assert.Len(t, strs, 35)
		assert.Equal(t, "1.0", strs[0])
		assert.Equal(t, "32.0", strs[len(strs)-1])
	})
}

func TestConvertShutter(t *testing.T) {
	v, ok := ConvertShutter("1/60")
	assert.True(t, ok)
	assert.Equal(t, ShutterSpeed(0x68), v)
	assert.Equal(t, "1/60", v.String())

	v, ok = ConvertShutter("3")
	assert.True(t, ok)
	assert.Equal(t, "3", v.String())

	for _, in := range []string{"1/64", "1/500", "4", "1/15 ", "0.50"} {
		v, ok := ConvertShutter(in)
		assert.False(t, ok, in)
		assert.Equal(t, DefaultShutter, v, in)
	}

	strs := ShutterStrings()
	assert.Len(t, strs, 35)
	assert.Equal(t, "3", strs[0])
	assert.Equal(t, "1/250", strs[len(strs)-1])
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "ISO1600", ISO1600.String())
	assert.Equal(t, "1/15", DefaultShutter.String())
	assert.Equal(t, "ISOSpeed(0x01)", ISOSpeed(1).String())
	assert.Equal(t, "ApertureValue(0xFF)", ApertureValue(0xFF).String())
	assert.Equal(t, "ShutterSpeed(0x0C)", ShutterSpeed(0x0C).String())
}
