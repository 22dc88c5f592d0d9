package exposure

import (
	"errors"
	"strconv"
	"strings"
)

// Rational is a shutter speed in seconds, kept as the fraction printed on the dial.
type Rational struct {
	Numerator   uint32
	Denominator uint32
}

var errZeroDenominator = errors.New("zero denominator")

// ParseRational parses "1/15" style fractions and whole seconds such as "15".
func ParseRational(s string) (Rational, error) {
	num, den, found := strings.Cut(s, "/")
	if !found {
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return Rational{}, &ParseError{Field: "shutter", Input: s, Err: err}
		}
		return Rational{Numerator: uint32(n), Denominator: 1}, nil
	}
	if strings.Contains(den, "/") {
		return Rational{}, &ParseError{Field: "shutter", Input: s, Err: errors.New("more than one '/'")}
	}

	n, err := strconv.ParseUint(num, 10, 32)
	if err != nil {
		return Rational{}, &ParseError{Field: "shutter", Input: s, Err: err}
	}
	d, err := strconv.ParseUint(den, 10, 32)
	if err != nil {
		return Rational{}, &ParseError{Field: "shutter", Input: s, Err: err}
	}
	if d == 0 {
		return Rational{}, &ParseError{Field: "shutter", Input: s, Err: errZeroDenominator}
	}
	return Rational{Numerator: uint32(n), Denominator: uint32(d)}, nil
}

// Set replaces r with the parsed value of s.
// On error r is left untouched.
func (r *Rational) Set(s string) error {
	v, err := ParseRational(s)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

func (r Rational) String() string {
	if r.Denominator == 1 {
		return strconv.FormatUint(uint64(r.Numerator), 10)
	}
	return strconv.FormatUint(uint64(r.Numerator), 10) + "/" + strconv.FormatUint(uint64(r.Denominator), 10)
}

// Float64 returns the value in seconds. A zero denominator yields 0.
func (r Rational) Float64() float64 {
	if r.Denominator == 0 {
		return 0
	}
	return float64(r.Numerator) / float64(r.Denominator)
}

// Reduce divides out the greatest common divisor.
func (r Rational) Reduce() Rational {
	if r.Denominator == 0 {
		return r
	}
	a, b := r.Numerator, r.Denominator
	for b != 0 {
		a, b = b, a%b
	}
	if a <= 1 {
		return r
	}
	return Rational{Numerator: r.Numerator / a, Denominator: r.Denominator / a}
}

// ParseShutter accepts everything ParseRational does plus the decimal
// seconds printed for slow speeds ("0.8", "2.5").
func ParseShutter(s string) (Rational, error) {
	whole, frac, found := strings.Cut(s, ".")
	if !found {
		return ParseRational(s)
	}
	if whole == "" || frac == "" || len(frac) > 3 {
		return Rational{}, &ParseError{Field: "shutter", Input: s, Err: errors.New("bad decimal seconds")}
	}
	n, err := strconv.ParseUint(whole+frac, 10, 32)
	if err != nil {
		return Rational{}, &ParseError{Field: "shutter", Input: s, Err: err}
	}
	den := uint32(1)
	for range len(frac) {
		den *= 10
	}
	return Rational{Numerator: uint32(n), Denominator: den}.Reduce(), nil
}

// FormatShutter renders r the way the camera dial shows it: fractions of a
// second as "1/n", slow non-integral speeds as tenths ("0.8", "2.5").
func FormatShutter(r Rational) string {
	r = r.Reduce()
	if r.Denominator <= 1 {
		return r.String()
	}
	tenths := float64(r.Numerator) * 10 / float64(r.Denominator)
	if tenths >= 3 && tenths == float64(uint64(tenths)) {
		return strconv.FormatFloat(tenths/10, 'f', -1, 64)
	}
	return r.String()
}
