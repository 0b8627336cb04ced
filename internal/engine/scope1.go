package engine

import (
	"context"
	"fmt"

	"github.com/carbonex/footprint/internal/logging"
	"github.com/carbonex/footprint/internal/units"
)

// Fixed combustion gas profile for Scope 1: 98% CO2, 1% CH4, 1% N2O by
// CO2e mass. A simplification mirroring typical combustion profiles,
// not a per-fuel measurement.
// TODO: key the split by fuelType; diesel and natural gas have
// different real-world CH4/N2O shares.
const (
	scope1CO2Share = 0.98
	scope1CH4Share = 0.01
	scope1N2OShare = 0.01
)

const kgPerTonne = 1000.0

// scope1FactorCategory maps a source category to its factor-lookup
// category. Mobile combustion resolves against transport factors;
// everything else against fuel factors.
func scope1FactorCategory(sourceCategory string) string {
	if sourceCategory == SourceMobileCombustion {
		return "transport"
	}
	return "fuel"
}

// CalculateScope1 computes direct emissions for one activity entry.
//
// Activity data is converted to the resolved factor's native unit;
// an unsupported conversion is fatal — Scope 1 never guesses.
func (e *Engine) CalculateScope1(ctx context.Context, entry Scope1Entry, region string) (EmissionResult, error) {
	log := logging.FromContext(ctx)

	factor, err := e.resolver.Resolve(ctx, scope1FactorCategory(entry.SourceCategory), entry.FuelType, 1, region)
	if err != nil {
		return EmissionResult{}, err
	}

	activity, err := units.Convert(entry.ActivityData, entry.ActivityUnit, factor.Unit)
	if err != nil {
		return EmissionResult{}, fmt.Errorf("%w: %s to %s: %v",
			ErrUnitConversionFailed, entry.ActivityUnit, factor.Unit, err)
	}

	totalKg := activity * factor.Factor

	result := EmissionResult{
		CO2Emissions:         totalKg * scope1CO2Share / kgPerTonne,
		CH4Emissions:         totalKg * scope1CH4Share / kgPerTonne,
		N2OEmissions:         totalKg * scope1N2OShare / kgPerTonne,
		TotalEmissions:       totalKg / kgPerTonne,
		EmissionFactor:       factor.Factor,
		EmissionFactorSource: factor.Source,
		ConfidenceLevel:      scope1Confidence(factor.Provenance, entry.ActivityUnit),
	}

	log.Debug().
		Str("component", "engine").
		Str("operation", "scope1").
		Str("fuel_type", entry.FuelType).
		Str("source", factor.Source).
		Float64("total_tonnes", result.TotalEmissions).
		Msg("scope 1 entry calculated")

	return result, nil
}
