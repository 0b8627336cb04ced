package engine

import (
	"fmt"
	"math"
)

// EPA greenhouse-gas equivalency factors (2024 edition), kg CO2e per
// activity. Source: EPA GHG Equivalencies Calculator. An equivalency is
// kg CO2e divided by the factor.
const (
	epaMilesDrivenFactor  = 0.192
	epaSmartphoneFactor   = 0.00822
	epaTreeSeedlingFactor = 60.0
)

// minEquivalencyTonnes is the footprint below which equivalencies are
// meaninglessly small and omitted from reports.
const minEquivalencyTonnes = 0.001

// Equivalency translates a footprint into one relatable real-world
// quantity for report output.
type Equivalency struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// Equivalencies converts an assessment total in tonnes CO2e into EPA
// real-world equivalencies. Purely presentational, regenerated per
// run. Returns nil below the reporting threshold or for non-finite
// input.
func Equivalencies(totalTonnes float64) []Equivalency {
	if math.IsNaN(totalTonnes) || math.IsInf(totalTonnes, 0) || totalTonnes < minEquivalencyTonnes {
		return nil
	}

	kg := totalTonnes * kgPerTonne

	return []Equivalency{
		{Value: kg / epaMilesDrivenFactor, Label: "miles driven in an average passenger vehicle"},
		{Value: kg / epaSmartphoneFactor, Label: "smartphones charged"},
		{Value: kg / epaTreeSeedlingFactor, Label: "tree seedlings grown for 10 years"},
	}
}

// EquivalencyText renders equivalencies as a single prose line, e.g.
// "Equivalent to driving ~436,823 miles or charging ~10.2 million
// smartphones". Empty when no equivalencies apply.
func EquivalencyText(totalTonnes float64) string {
	eqs := Equivalencies(totalTonnes)
	if len(eqs) < 2 {
		return ""
	}

	return fmt.Sprintf("Equivalent to driving ~%s miles or charging ~%s smartphones",
		FormatCount(eqs[0].Value), FormatCount(eqs[1].Value))
}
