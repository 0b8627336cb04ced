// Package units converts scalar activity values between compatible
// physical units (energy, volume, mass).
//
// All supported units are ratio units, so conversion is scalar
// multiplication only — no additive offsets. The converter performs no
// rounding; rounding is a presentation concern owned by callers.
package units

import (
	"math"
	"strings"
)

// family identifies a group of mutually convertible units.
type family int

const (
	familyEnergy family = iota
	familyVolume
	familyMass
)

// unitDef maps a canonical unit to its family and its factor relative to
// the family's base unit (kWh for energy, liter for volume, kg for mass).
// Both conversion directions for every supported pair derive from these
// base factors.
type unitDef struct {
	family family
	toBase float64
}

// Base-unit factors.
//
// Energy factors are expressed in kWh: 1 MMBtu = 293.07107 kWh (EIA),
// 1 MJ = 1/3.6 kWh. Volume factors are expressed in liters:
// 1 US gallon = 3.78541 L. Mass factors are expressed in kilograms:
// 1 lb = 0.453592 kg.
const (
	mmbtuToKWh  = 293.07107
	mjToKWh     = 1.0 / 3.6
	gallonToL   = 3.78541
	cubicMeterL = 1000.0
	poundToKg   = 0.453592
)

// canonicalUnit normalizes a unit string to its table key.
// Matching is case-insensitive and accepts common aliases.
func canonicalUnit(unit string) string {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "kwh":
		return "kWh"
	case "mwh":
		return "MWh"
	case "gwh":
		return "GWh"
	case "mmbtu":
		return "MMBtu"
	case "mj":
		return "MJ"
	case "gallon", "gallons", "gal":
		return "gallon"
	case "liter", "liters", "litre", "litres", "l":
		return "liter"
	case "m3", "m^3", "cubic_meter", "cubic_meters":
		return "m3"
	case "kg", "kilogram", "kilograms":
		return "kg"
	case "tonne", "tonnes", "t", "metric_ton", "metric_tons":
		return "tonne"
	case "lb", "lbs", "pound", "pounds":
		return "lb"
	default:
		return ""
	}
}

// conversionTable holds every supported unit keyed by canonical name.
var conversionTable = map[string]unitDef{
	"kWh":    {familyEnergy, 1.0},
	"MWh":    {familyEnergy, 1000.0},
	"GWh":    {familyEnergy, 1_000_000.0},
	"MMBtu":  {familyEnergy, mmbtuToKWh},
	"MJ":     {familyEnergy, mjToKWh},
	"gallon": {familyVolume, gallonToL},
	"liter":  {familyVolume, 1.0},
	"m3":     {familyVolume, cubicMeterL},
	"kg":     {familyMass, 1.0},
	"tonne":  {familyMass, 1000.0},
	"lb":     {familyMass, poundToKg},
}

// Convert maps value from one unit to another.
//
// Identical units (after canonicalization) return the value unchanged.
// Returns ErrInvalidValue for NaN or infinite input and
// ErrUnsupportedConversion when no path exists between the two units.
func Convert(value float64, fromUnit, toUnit string) (float64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, ErrInvalidValue
	}

	// Identity applies to any equal pair, including units outside the
	// conversion table (passenger-km, tonne-km, currency units).
	if strings.EqualFold(strings.TrimSpace(fromUnit), strings.TrimSpace(toUnit)) {
		return value, nil
	}

	from := canonicalUnit(fromUnit)
	to := canonicalUnit(toUnit)

	if from != "" && from == to {
		return value, nil
	}

	fromDef, fromOK := conversionTable[from]
	toDef, toOK := conversionTable[to]
	if !fromOK || !toOK || fromDef.family != toDef.family {
		return 0, ErrUnsupportedConversion
	}

	result := value * fromDef.toBase / toDef.toBase
	if math.IsInf(result, 0) {
		return 0, ErrInvalidValue
	}

	return result, nil
}

// ConvertLenient converts value between units, returning the original
// value unchanged when no conversion path exists. This is the
// display-facing helper only; the scope calculators treat unsupported
// conversions as fatal and must use Convert.
func ConvertLenient(value float64, fromUnit, toUnit string) float64 {
	converted, err := Convert(value, fromUnit, toUnit)
	if err != nil {
		return value
	}
	return converted
}

// IsSupported reports whether the unit string names a supported unit.
func IsSupported(unit string) bool {
	_, ok := conversionTable[canonicalUnit(unit)]
	return ok
}
