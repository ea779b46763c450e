package layout

import (
	"strconv"
	"strings"
)

// This file defines unit-safe helpers. The engine works in inches; renderers
// convert at their boundary (points for fonts, millimeters for canvas).

// Unit represents the original unit of a length value as specified in a script.
type Unit int

const (
	UnitNone Unit = iota // bare numbers, read as inches
	UnitMM               // millimeters
	UnitCM               // centimeters
	UnitIN               // inches
	UnitPT               // points
)

// Conversion constants.
const (
	PtPerIn = 72.0
	MmPerIn = 25.4
	PtToMm  = MmPerIn / PtPerIn
	MmToPt  = 1.0 / PtToMm
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

// ToIN converts the length to inches. Unit-less values are already inches.
func (l Length) ToIN() float64 {
	switch l.Unit {
	case UnitMM:
		return l.Value / MmPerIn
	case UnitCM:
		return l.Value * 10 / MmPerIn
	case UnitPT:
		return l.Value / PtPerIn
	default:
		return l.Value
	}
}

// ToPT converts the length to points.
func (l Length) ToPT() float64 { return l.ToIN() * PtPerIn }

// ToMM converts the length to millimeters.
func (l Length) ToMM() float64 { return l.ToIN() * MmPerIn }

// ParseLength parses a script length such as "1in", "12.5mm" or "0.3".
// ok is false when the numeric part is not a number.
func ParseLength(value string) (Length, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, false
	}
	unit := UnitNone
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, false
	}
	return Length{Value: f, Unit: unit}, true
}

// InToPt converts inches to points.
func InToPt(in float64) float64 { return in * PtPerIn }

// InToMm converts inches to millimeters.
func InToMm(in float64) float64 { return in * MmPerIn }
