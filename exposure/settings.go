package exposure

import (
	"encoding/json"
	"errors"
)

// Default display strings for a fresh project.
const (
	DefaultISOString      = "100"
	DefaultApertureString = "4.0"
	DefaultShutterString  = "1/15"
)

var errZeroExposureTime = errors.New("exposure time must be positive")

// Settings keeps ISO, aperture and shutter speed as the strings the user
// picked so they survive save/load untouched. The numeric view is parsed
// on first use and dropped whenever a string changes.
type Settings struct {
	iso      string
	aperture string
	shutter  string

	cache *parsedSettings
}

type parsedSettings struct {
	iso         float64
	isoErr      error
	aperture    float64
	apertureErr error
	shutter     Rational
	shutterErr  error
}

// NewSettings returns ISO 100, f/4.0, 1/15.
func NewSettings() Settings {
	return Settings{
		iso:      DefaultISOString,
		aperture: DefaultApertureString,
		shutter:  DefaultShutterString,
	}
}

// SettingsFrom builds Settings from display strings without validating them.
func SettingsFrom(iso, aperture, shutter string) Settings {
	return Settings{iso: iso, aperture: aperture, shutter: shutter}
}

func (s *Settings) ISOString() string      { return s.iso }
func (s *Settings) ApertureString() string { return s.aperture }
func (s *Settings) ShutterString() string  { return s.shutter }

func (s *Settings) SetISO(v string) {
	s.iso = v
	s.cache = nil
}

func (s *Settings) SetAperture(v string) {
	s.aperture = v
	s.cache = nil
}

func (s *Settings) SetShutter(v string) {
	s.shutter = v
	s.cache = nil
}

func (s *Settings) parsed() *parsedSettings {
	if s.cache != nil {
		return s.cache
	}
	p := &parsedSettings{}
	p.iso, p.isoErr = ParseISO(s.iso)
	p.aperture, p.apertureErr = ParseAperture(s.aperture)
	p.shutter, p.shutterErr = ParseShutter(s.shutter)
	if p.shutterErr == nil && p.shutter.Numerator == 0 {
		p.shutterErr = &ParseError{Field: "shutter", Input: s.shutter, Err: errZeroExposureTime}
	}
	s.cache = p
	return p
}

func (s *Settings) ISO() (float64, error) {
	p := s.parsed()
	return p.iso, p.isoErr
}

func (s *Settings) Aperture() (float64, error) {
	p := s.parsed()
	return p.aperture, p.apertureErr
}

func (s *Settings) Shutter() (Rational, error) {
	p := s.parsed()
	return p.shutter, p.shutterErr
}

// EV computes the exposure value of the current settings.
// Every malformed field is reported.
func (s *Settings) EV() (float64, error) {
	p := s.parsed()
	if err := errors.Join(p.isoErr, p.apertureErr, p.shutterErr); err != nil {
		return 0, err
	}
	return CalcEV(p.iso, p.aperture, p.shutter), nil
}

type settingsJSON struct {
	ISO           string `json:"iso"`
	ApertureValue string `json:"aperture_value"`
	TimeValue     string `json:"time_value"`
}

func (s Settings) MarshalJSON() ([]byte, error) {
	return json.Marshal(settingsJSON{
		ISO:           s.iso,
		ApertureValue: s.aperture,
		TimeValue:     s.shutter,
	})
}

// UnmarshalJSON fills missing fields with the defaults.
func (s *Settings) UnmarshalJSON(b []byte) error {
	v := settingsJSON{
		ISO:           DefaultISOString,
		ApertureValue: DefaultApertureString,
		TimeValue:     DefaultShutterString,
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*s = SettingsFrom(v.ISO, v.ApertureValue, v.TimeValue)
	return nil
}
