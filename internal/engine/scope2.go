package engine

import (
	"context"
	"fmt"

	"github.com/carbonex/footprint/internal/logging"
	"github.com/carbonex/footprint/internal/units"
)

const (
	supplierFactorSource = "Supplier-specific"
	kWhPerMWh            = 1000.0
	defaultGridKey       = "grid_us_national"
)

// gridKeyForRegion maps a target region to its default grid
// subcategory when the entry carries no explicit grid region.
func gridKeyForRegion(region string) string {
	switch region {
	case "US":
		return "grid_us_national"
	case "GB", "UK":
		return "grid_uk"
	case "DE":
		return "grid_germany"
	case "FR":
		return "grid_france"
	case "CN":
		return "grid_china"
	case "IN":
		return "grid_india"
	default:
		return defaultGridKey
	}
}

// CalculateScope2 computes purchased-energy emissions for one entry.
//
// Market-based entries with a supplier factor skip factor resolution
// entirely. All emissions are attributed to CO2: grid electricity is
// treated as CO2-only, unlike the Scope 1 combustion split.
func (e *Engine) CalculateScope2(ctx context.Context, entry Scope2Entry, region string) (EmissionResult, error) {
	log := logging.FromContext(ctx)

	var (
		factorValue float64
		source      string
		confidence  float64
	)

	if entry.CalculationMethod == MethodMarketBased && entry.SupplierEmissionFactor != nil {
		factorValue = *entry.SupplierEmissionFactor
		source = supplierFactorSource
		confidence = scope2MarketConfidence
	} else {
		gridKey := entry.GridRegion
		if gridKey == "" {
			gridKey = gridKeyForRegion(region)
		}

		factor, err := e.resolver.Resolve(ctx, "electricity", gridKey, 2, region)
		if err != nil {
			return EmissionResult{}, err
		}

		factorValue = factor.Factor
		source = factor.Source
		if entry.CalculationMethod == MethodMarketBased {
			confidence = scope2MarketConfidence
		} else {
			confidence = scope2LocationConfidence
		}
	}

	activityKWh, err := units.Convert(entry.ActivityData, entry.ActivityUnit, "kWh")
	if err != nil {
		return EmissionResult{}, fmt.Errorf("%w: %s to kWh: %v",
			ErrUnitConversionFailed, entry.ActivityUnit, err)
	}

	// RECs reduce attributed consumption but never invert it.
	if entry.RenewableEnergyCertificates != nil {
		activityKWh -= *entry.RenewableEnergyCertificates * kWhPerMWh
		if activityKWh < 0 {
			activityKWh = 0
		}
	}

	totalKg := activityKWh * factorValue

	result := EmissionResult{
		CO2Emissions:         totalKg / kgPerTonne,
		TotalEmissions:       totalKg / kgPerTonne,
		EmissionFactor:       factorValue,
		EmissionFactorSource: source,
		ConfidenceLevel:      confidence,
	}

	log.Debug().
		Str("component", "engine").
		Str("operation", "scope2").
		Str("method", entry.CalculationMethod).
		Str("source", source).
		Float64("total_tonnes", result.TotalEmissions).
		Msg("scope 2 entry calculated")

	return result, nil
}
