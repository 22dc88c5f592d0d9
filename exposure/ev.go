package exposure

import (
	"errors"
	"math"
	"strconv"
)

// Marketing shutter denominators mapped to the power-of-two timing base the
// camera actually uses.
var timingDenominators = map[uint32]uint32{
	15:    16,
	30:    32,
	60:    64,
	125:   128,
	250:   256,
	500:   512,
	1000:  1024,
	2000:  2048,
	4000:  4096,
	8000:  8192,
	16000: 16384,
	32000: 32768,
	64000: 65536,
}

// EffectiveDenominator returns the internal timing denominator for a printed one.
func EffectiveDenominator(d uint32) uint32 {
	if v, ok := timingDenominators[d]; ok {
		return v
	}
	return d
}

// CalcEV returns the exposure value for the given ISO, f-number and shutter speed.
// ISO 100, f/1.0 and 1s is 0 EV.
func CalcEV(iso, aperture float64, shutter Rational) float64 {
	return isoStops(iso) + apertureStops(aperture) + shutterStops(shutter)
}

func isoStops(iso float64) float64 {
	return math.Log2(iso / 100)
}

func apertureStops(aperture float64) float64 {
	return math.Log2(aperture * aperture)
}

func shutterStops(shutter Rational) float64 {
	seconds := float64(shutter.Numerator) / float64(EffectiveDenominator(shutter.Denominator))
	return -math.Log2(seconds)
}

var errNotPositive = errors.New("must be positive")

// ParseISO parses an ISO display string such as "400".
func ParseISO(s string) (float64, error) {
	return parsePositive("iso", s)
}

// ParseAperture parses an f-number display string such as "2.8".
func ParseAperture(s string) (float64, error) {
	return parsePositive("aperture", s)
}

func parsePositive(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ParseError{Field: field, Input: s, Err: err}
	}
	if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, &ParseError{Field: field, Input: s, Err: errNotPositive}
	}
	return v, nil
}
