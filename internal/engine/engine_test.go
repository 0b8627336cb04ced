package engine

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonex/footprint/internal/factors"
)

// fullInput combines the three canonical fixtures: natural gas,
// grid electricity, and business air travel.
func fullInput() CalculationInput {
	return CalculationInput{
		Metadata: AssessmentMetadata{OrganizationName: "Acme Manufacturing", ReportingYear: 2024},
		Region:   "US",
		Scope1: []Scope1Entry{{
			SourceCategory: SourceStationaryCombustion,
			FuelType:       "natural_gas_commercial",
			ActivityData:   1000,
			ActivityUnit:   "MMBtu",
		}},
		Scope2: []Scope2Entry{{
			EnergyType:        EnergyElectricity,
			CalculationMethod: MethodLocationBased,
			ActivityData:      50000,
			ActivityUnit:      "kWh",
		}},
		Scope3: []Scope3Entry{{
			CategoryNumber:    6,
			CalculationMethod: MethodActivityBased,
			ActivityData:      100000,
			ActivityUnit:      "passenger-km",
			DataQuality:       3,
		}},
	}
}

func TestCalculateFullAssessment(t *testing.T) {
	e := newTestEngine()

	result, err := e.Calculate(context.Background(), fullInput())
	require.NoError(t, err)

	// 53.06 + 19.3 + 11.5 = 83.86 tonnes.
	assert.InDelta(t, 83.86, result.Summary.TotalEmissions, 0.01)
	assert.Greater(t, result.Summary.AverageConfidence, 70.0)

	shares := result.Summary.EmissionsByScope
	assert.InDelta(t, 100.0, shares.Scope1+shares.Scope2+shares.Scope3, 1e-6)

	require.Len(t, result.Scope1Results, 1)
	require.Len(t, result.Scope2Results, 1)
	require.Len(t, result.Scope3Results, 1)

	// Scope 1 dominates at >60%, so insights include the distribution
	// finding and recommendations lead with scope 1.
	ins, ok := findInsight(result.Insights, InsightScopeDistribution)
	require.True(t, ok)
	assert.Contains(t, ins.Message, "Scope 1")

	require.NotEmpty(t, result.Recommendations)
	assert.Equal(t, 1, result.Recommendations[0].Scope)
	assert.Equal(t, PriorityHigh, result.Recommendations[0].Priority)
}

func TestCalculateOneBadEntryAbortsWholeAssessment(t *testing.T) {
	e := newTestEngine()

	input := fullInput()
	input.Scope1 = append(input.Scope1, Scope1Entry{
		SourceCategory: SourceStationaryCombustion,
		FuelType:       "whale_oil",
		ActivityData:   10,
		ActivityUnit:   "gallon",
	})

	result, err := e.Calculate(context.Background(), input)
	require.Error(t, err)
	assert.ErrorIs(t, err, factors.ErrFactorNotFound)
	assert.Nil(t, result, "no partial totals on failure")
}

func TestCalculateValidationFailures(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name   string
		mutate func(*CalculationInput)
	}{
		{
			name:   "missing organization name",
			mutate: func(in *CalculationInput) { in.Metadata.OrganizationName = "" },
		},
		{
			name:   "negative activity data",
			mutate: func(in *CalculationInput) { in.Scope1[0].ActivityData = -5 },
		},
		{
			name:   "NaN activity data",
			mutate: func(in *CalculationInput) { in.Scope2[0].ActivityData = math.NaN() },
		},
		{
			name:   "bad source category",
			mutate: func(in *CalculationInput) { in.Scope1[0].SourceCategory = "volcanic" },
		},
		{
			name:   "scope 3 category out of range",
			mutate: func(in *CalculationInput) { in.Scope3[0].CategoryNumber = 16 },
		},
		{
			name:   "data quality out of range",
			mutate: func(in *CalculationInput) { in.Scope3[0].DataQuality = 6 },
		},
		{
			name: "no entries at all",
			mutate: func(in *CalculationInput) {
				in.Scope1, in.Scope2, in.Scope3 = nil, nil, nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := fullInput()
			tt.mutate(&input)

			_, err := e.Calculate(context.Background(), input)
			require.Error(t, err)

			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestCalculateEmptyRegionDefaultsToGlobal(t *testing.T) {
	e := newTestEngine()

	input := fullInput()
	input.Region = ""

	result, err := e.Calculate(context.Background(), input)
	require.NoError(t, err)

	// GLOBAL natural gas factor (56.1) applies instead of the US one.
	assert.InDelta(t, 56.1, result.Scope1Results[0].TotalEmissions, 0.001)
}

func TestCalculateManyEntriesConcurrently(t *testing.T) {
	e := newTestEngine()

	input := CalculationInput{
		Metadata: AssessmentMetadata{OrganizationName: "Acme"},
		Region:   "US",
	}
	for i := 0; i < 50; i++ {
		input.Scope3 = append(input.Scope3, Scope3Entry{
			CategoryNumber:    6,
			CalculationMethod: MethodActivityBased,
			ActivityData:      1000,
			ActivityUnit:      "passenger-km",
			DataQuality:       3,
		})
	}

	result, err := e.Calculate(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, result.Scope3Results, 50)

	// Results land in entry order regardless of dispatch order.
	for i, r := range result.Scope3Results {
		assert.InDelta(t, 0.115, r.TotalEmissions, 1e-9, "entry %d", i)
	}
	assert.InDelta(t, 50*0.115, result.Summary.TotalEmissions, 1e-6)
}
