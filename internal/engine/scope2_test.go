package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateScope2LocationBased(t *testing.T) {
	e := newTestEngine()

	result, err := e.CalculateScope2(context.Background(), Scope2Entry{
		EnergyType:        EnergyElectricity,
		CalculationMethod: MethodLocationBased,
		ActivityData:      50000,
		ActivityUnit:      "kWh",
	}, "US")
	require.NoError(t, err)

	// 50,000 kWh x 0.386 kg/kWh = 19.3 tonnes, all CO2.
	assert.InDelta(t, 19.3, result.TotalEmissions, 0.001)
	assert.InDelta(t, 19.3, result.CO2Emissions, 0.001)
	assert.Zero(t, result.CH4Emissions)
	assert.Zero(t, result.N2OEmissions)
	assert.InDelta(t, 75.0, result.ConfidenceLevel, 1e-9)
}

func TestCalculateScope2MarketBasedSupplierFactor(t *testing.T) {
	e := newTestEngine()
	supplier := 0.05

	result, err := e.CalculateScope2(context.Background(), Scope2Entry{
		EnergyType:             EnergyElectricity,
		CalculationMethod:      MethodMarketBased,
		ActivityData:           100000,
		ActivityUnit:           "kWh",
		SupplierEmissionFactor: &supplier,
	}, "US")
	require.NoError(t, err)

	// Supplier path skips the resolver entirely.
	assert.Equal(t, "Supplier-specific", result.EmissionFactorSource)
	assert.InDelta(t, 5.0, result.TotalEmissions, 1e-9)
	assert.InDelta(t, 90.0, result.ConfidenceLevel, 1e-9)
}

func TestCalculateScope2MarketBasedWithoutSupplierFactorUsesGrid(t *testing.T) {
	e := newTestEngine()

	result, err := e.CalculateScope2(context.Background(), Scope2Entry{
		EnergyType:        EnergyElectricity,
		CalculationMethod: MethodMarketBased,
		ActivityData:      10000,
		ActivityUnit:      "kWh",
	}, "US")
	require.NoError(t, err)

	assert.Equal(t, "EPA eGRID 2022", result.EmissionFactorSource)
	assert.InDelta(t, 3.86, result.TotalEmissions, 1e-6)
	assert.InDelta(t, 90.0, result.ConfidenceLevel, 1e-9)
}

func TestCalculateScope2RegionGridMapping(t *testing.T) {
	e := newTestEngine()

	result, err := e.CalculateScope2(context.Background(), Scope2Entry{
		EnergyType:        EnergyElectricity,
		CalculationMethod: MethodLocationBased,
		ActivityData:      10000,
		ActivityUnit:      "kWh",
	}, "GB")
	require.NoError(t, err)

	// GB maps to the UK grid factor of 0.193 kg/kWh.
	assert.InDelta(t, 1.93, result.TotalEmissions, 1e-6)
	assert.Equal(t, "DEFRA 2023", result.EmissionFactorSource)
}

func TestCalculateScope2ExplicitGridRegionWins(t *testing.T) {
	e := newTestEngine()

	result, err := e.CalculateScope2(context.Background(), Scope2Entry{
		EnergyType:        EnergyElectricity,
		CalculationMethod: MethodLocationBased,
		ActivityData:      10000,
		ActivityUnit:      "kWh",
		GridRegion:        "grid_france",
	}, "US")
	require.NoError(t, err)

	assert.InDelta(t, 0.52, result.TotalEmissions, 1e-6)
}

func TestCalculateScope2ConvertsMWh(t *testing.T) {
	e := newTestEngine()

	result, err := e.CalculateScope2(context.Background(), Scope2Entry{
		EnergyType:        EnergyElectricity,
		CalculationMethod: MethodLocationBased,
		ActivityData:      50,
		ActivityUnit:      "MWh",
	}, "US")
	require.NoError(t, err)

	// 50 MWh = 50,000 kWh.
	assert.InDelta(t, 19.3, result.TotalEmissions, 0.001)
}

func TestCalculateScope2RECsReduceButNeverInvert(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name string
		recs float64
		want float64
	}{
		{"partial offset", 20, 19.3 * 0.6}, // 20 MWh of 50 MWh offset
		{"full offset", 50, 0},
		{"over-offset floors at zero", 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := tt.recs
			result, err := e.CalculateScope2(context.Background(), Scope2Entry{
				EnergyType:                  EnergyElectricity,
				CalculationMethod:           MethodLocationBased,
				ActivityData:                50000,
				ActivityUnit:                "kWh",
				RenewableEnergyCertificates: &recs,
			}, "US")
			require.NoError(t, err)
			assert.InDelta(t, tt.want, result.TotalEmissions, 0.001)
			assert.GreaterOrEqual(t, result.TotalEmissions, 0.0)
		})
	}
}

func TestCalculateScope2UnsupportedUnitIsFatal(t *testing.T) {
	e := newTestEngine()

	_, err := e.CalculateScope2(context.Background(), Scope2Entry{
		EnergyType:        EnergyElectricity,
		CalculationMethod: MethodLocationBased,
		ActivityData:      100,
		ActivityUnit:      "therms",
	}, "US")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnitConversionFailed)
}
