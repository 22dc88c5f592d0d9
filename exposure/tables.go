package exposure

import (
	"cmp"
	"fmt"
	"slices"
)

// ISOSpeed is the camera's ISO property code (kEdsPropID_ISOSpeed).
type ISOSpeed uint32

const (
	ISO50   ISOSpeed = 0x40
	ISO100  ISOSpeed = 0x48
	ISO200  ISOSpeed = 0x50
	ISO400  ISOSpeed = 0x58
	ISO800  ISOSpeed = 0x60
	ISO1600 ISOSpeed = 0x68
	ISO3200 ISOSpeed = 0x70
)

// ApertureValue is the camera's Av property code (kEdsPropID_Av).
type ApertureValue uint32

// ShutterSpeed is the camera's Tv property code (kEdsPropID_Tv).
type ShutterSpeed uint32

// Values used when a setting has no exact match.
const (
	DefaultISO      = ISO100
	DefaultAperture = ApertureValue(0x28) // f/4.0
	DefaultShutter  = ShutterSpeed(0x58)  // 1/15
)

var isoTable = map[uint32]ISOSpeed{
	50:   ISO50,
	100:  ISO100,
	200:  ISO200,
	400:  ISO400,
	800:  ISO800,
	1600: ISO1600,
	3200: ISO3200,
}

var apertureTable = map[string]ApertureValue{
	"1.0":  0x08,
	"1.1":  0x0B,
	"1.2":  0x0C,
	"1.4":  0x10,
	"1.6":  0x13,
	"1.8":  0x14,
	"2.0":  0x18,
	"2.2":  0x1B,
	"2.5":  0x1C,
	"2.8":  0x20,
	"3.2":  0x23,
	"3.5":  0x24,
	"4.0":  0x28,
	"4.5":  0x2B,
	"5.0":  0x2D,
	"5.6":  0x30,
	"6.3":  0x33,
	"6.7":  0x34,
	"7.1":  0x35,
	"8.0":  0x38,
	"9.0":  0x3B,
	"9.5":  0x3C,
	"10.0": 0x3D,
	"11.0": 0x40,
	"13.0": 0x44,
	"14.0": 0x45,
	"16.0": 0x48,
	"18.0": 0x4B,
	"19.0": 0x4C,
	"20.0": 0x4D,
	"22.0": 0x50,
	"25.0": 0x53,
	"27.0": 0x54,
	"29.0": 0x55,
	"32.0": 0x58,
}

var shutterTable = map[string]ShutterSpeed{
	"3":     0x2C,
	"2.5":   0x2D,
	"2":     0x30,
	"1.6":   0x33,
	"1.5":   0x34,
	"1.3":   0x35,
	"1":     0x38,
	"0.8":   0x3B,
	"0.7":   0x3C,
	"0.6":   0x3D,
	"0.5":   0x40,
	"0.4":   0x43,
	"0.3":   0x44,
	"1/4":   0x48,
	"1/5":   0x4B,
	"1/6":   0x4C,
	"1/8":   0x50,
	"1/10":  0x54,
	"1/13":  0x55,
	"1/15":  0x58,
	"1/20":  0x5C,
	"1/25":  0x5D,
	"1/30":  0x60,
	"1/40":  0x63,
	"1/45":  0x64,
	"1/50":  0x65,
	"1/60":  0x68,
	"1/80":  0x6B,
	"1/90":  0x6C,
	"1/100": 0x6D,
	"1/125": 0x70,
	"1/160": 0x73,
	"1/180": 0x74,
	"1/200": 0x75,
	"1/250": 0x78,
}

// reverse lookups for String()
var (
	isoNames      = invert(isoTable, func(k uint32) string { return fmt.Sprintf("ISO%d", k) })
	apertureNames = invert(apertureTable, func(k string) string { return "f/" + k })
	shutterNames  = invert(shutterTable, func(k string) string { return k })
)

func invert[K comparable, V comparable](m map[K]V, name func(K) string) map[V]string {
	out := make(map[V]string, len(m))
	for k, v := range m {
		out[v] = name(k)
	}
	return out
}

// ConvertISO maps a numeric ISO to the camera code.
// ok is false when iso is not supported and DefaultISO was substituted.
func ConvertISO(iso uint32) (v ISOSpeed, ok bool) {
	if v, ok := isoTable[iso]; ok {
		return v, true
	}
	return DefaultISO, false
}

// ConvertAperture maps an f-number display string to the camera code.
// The match is exact: "4" does not match "4.0".
func ConvertAperture(s string) (v ApertureValue, ok bool) {
	if v, ok := apertureTable[s]; ok {
		return v, true
	}
	return DefaultAperture, false
}

// ConvertShutter maps a shutter display string to the camera code.
func ConvertShutter(s string) (v ShutterSpeed, ok bool) {
	if v, ok := shutterTable[s]; ok {
		return v, true
	}
	return DefaultShutter, false
}

func (v ISOSpeed) String() string {
	if name, ok := isoNames[v]; ok {
		return name
	}
	return fmt.Sprintf("ISOSpeed(0x%02X)", uint32(v))
}

func (v ApertureValue) String() string {
	if name, ok := apertureNames[v]; ok {
		return name
	}
	return fmt.Sprintf("ApertureValue(0x%02X)", uint32(v))
}

func (v ShutterSpeed) String() string {
	if name, ok := shutterNames[v]; ok {
		return name
	}
	return fmt.Sprintf("ShutterSpeed(0x%02X)", uint32(v))
}

// ApertureStrings returns the supported f-number display strings, widest first.
func ApertureStrings() []string {
	return keysByValue(apertureTable)
}

// ShutterStrings returns the supported shutter display strings, longest first.
func ShutterStrings() []string {
	return keysByValue(shutterTable)
}

func keysByValue[V cmp.Ordered](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int { return cmp.Compare(m[a], m[b]) })
	return keys
}
