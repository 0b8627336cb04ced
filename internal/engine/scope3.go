package engine

import (
	"context"
	"fmt"

	"github.com/carbonex/footprint/internal/logging"
	"github.com/carbonex/footprint/internal/units"
)

// scope3Mapping ties a GHG Protocol value-chain category number to its
// factor lookup and native unit.
type scope3Mapping struct {
	FactorCategory string
	Subcategory    string
	NativeUnit     string
}

// scope3Categories is the static table for categories 1-15. Spend-based
// calculations reuse the same subcategory against the "spend_based"
// factor category.
var scope3Categories = map[int]scope3Mapping{
	1:  {"purchased_goods", "goods_and_services", "USD"},
	2:  {"capital_goods", "capital_goods", "USD"},
	3:  {"fuel_energy", "upstream_fuel_energy", "kWh"},
	4:  {"freight", "upstream_transport", "tonne-km"},
	5:  {"waste", "waste_generated", "tonne"},
	6:  {"business_travel", "air_travel", "passenger-km"},
	7:  {"employee_commuting", "commuting", "passenger-km"},
	8:  {"leased_assets", "upstream_leased", "kWh"},
	9:  {"freight", "downstream_transport", "tonne-km"},
	10: {"processing", "processing_sold_products", "tonne"},
	11: {"product_use", "use_of_sold_products", "kWh"},
	12: {"end_of_life", "sold_product_disposal", "tonne"},
	13: {"leased_assets", "downstream_leased", "kWh"},
	14: {"franchises", "franchise_operations", "kWh"},
	15: {"investments", "investments", "USD"},
}

// dataQualityMultiplier scales emissions by the declared 1-5 data
// quality. Low-quality data is deliberately inflated and high-quality
// data discounted — the GHG Protocol's conservative-estimate policy for
// uncertain value-chain data, not a correction for a known bias.
var dataQualityMultiplier = map[int]float64{
	1: 1.5,
	2: 1.3,
	3: 1.0,
	4: 0.9,
	5: 0.8,
}

// CalculateScope3 computes value-chain emissions for one entry.
func (e *Engine) CalculateScope3(ctx context.Context, entry Scope3Entry, region string) (EmissionResult, error) {
	log := logging.FromContext(ctx)

	mapping, ok := scope3Categories[entry.CategoryNumber]
	if !ok {
		return EmissionResult{}, fmt.Errorf("%w: category %d", ErrInvalidScope3Category, entry.CategoryNumber)
	}

	factorCategory := mapping.FactorCategory
	nativeUnit := mapping.NativeUnit
	if entry.CalculationMethod == MethodSpendBased {
		factorCategory = "spend_based"
		nativeUnit = "USD"
	}

	factor, err := e.resolver.Resolve(ctx, factorCategory, mapping.Subcategory, 3, region)
	if err != nil {
		return EmissionResult{}, err
	}

	activity, err := units.Convert(entry.ActivityData, entry.ActivityUnit, nativeUnit)
	if err != nil {
		return EmissionResult{}, fmt.Errorf("%w: %s to %s: %v",
			ErrUnitConversionFailed, entry.ActivityUnit, nativeUnit, err)
	}

	multiplier, ok := dataQualityMultiplier[entry.DataQuality]
	if !ok {
		return EmissionResult{}, &ValidationError{
			Field:   "dataQuality",
			Message: fmt.Sprintf("data quality %d outside 1-5", entry.DataQuality),
		}
	}

	totalKg := activity * factor.Factor * multiplier

	result := EmissionResult{
		CO2Emissions:         totalKg / kgPerTonne,
		TotalEmissions:       totalKg / kgPerTonne,
		EmissionFactor:       factor.Factor,
		EmissionFactorSource: factor.Source,
		ConfidenceLevel:      scope3Confidence(entry.CalculationMethod, entry.DataQuality),
	}

	log.Debug().
		Str("component", "engine").
		Str("operation", "scope3").
		Int("category", entry.CategoryNumber).
		Str("method", entry.CalculationMethod).
		Int("data_quality", entry.DataQuality).
		Float64("total_tonnes", result.TotalEmissions).
		Msg("scope 3 entry calculated")

	return result, nil
}
