package engine

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/carbonex/footprint/internal/factors"
	"github.com/carbonex/footprint/internal/logging"
)

// Engine is the carbon footprint calculation engine. It holds no
// mutable state: the resolver is read-only for the duration of an
// assessment and every entry calculation is pure given its inputs.
type Engine struct {
	resolver   *factors.Resolver
	thresholds Thresholds
}

// New creates an Engine using the given factor resolver. Passing the
// resolver explicitly keeps calculations deterministic and unit tests
// free of global client state.
func New(resolver *factors.Resolver, thresholds Thresholds) *Engine {
	return &Engine{resolver: resolver, thresholds: thresholds}
}

// Calculate runs a full assessment: validation, per-entry scope
// calculations, aggregation, and insight generation.
//
// Entry calculations are independent and dispatched concurrently; the
// aggregation step waits for all of them. One failed entry aborts the
// whole assessment — partial or corrupt totals are worse than a clear
// failure for a compliance-adjacent number.
func (e *Engine) Calculate(ctx context.Context, input CalculationInput) (*CalculationResult, error) {
	log := logging.FromContext(ctx)
	start := time.Now()

	if err := ValidateInput(input); err != nil {
		return nil, err
	}

	region := input.Region
	if region == "" {
		region = factors.GlobalRegion
	}

	log.Debug().
		Str("component", "engine").
		Str("operation", "calculate").
		Str("organization", input.Metadata.OrganizationName).
		Str("region", region).
		Int("scope1_entries", len(input.Scope1)).
		Int("scope2_entries", len(input.Scope2)).
		Int("scope3_entries", len(input.Scope3)).
		Msg("starting assessment calculation")

	scope1Results := make([]EmissionResult, len(input.Scope1))
	scope2Results := make([]EmissionResult, len(input.Scope2))
	scope3Results := make([]EmissionResult, len(input.Scope3))

	g, gctx := errgroup.WithContext(ctx)

	for i, entry := range input.Scope1 {
		i, entry := i, entry
		g.Go(func() error {
			result, err := e.CalculateScope1(gctx, entry, region)
			if err != nil {
				return err
			}
			scope1Results[i] = result
			return nil
		})
	}

	for i, entry := range input.Scope2 {
		i, entry := i, entry
		g.Go(func() error {
			result, err := e.CalculateScope2(gctx, entry, region)
			if err != nil {
				return err
			}
			scope2Results[i] = result
			return nil
		})
	}

	for i, entry := range input.Scope3 {
		i, entry := i, entry
		g.Go(func() error {
			result, err := e.CalculateScope3(gctx, entry, region)
			if err != nil {
				return err
			}
			scope3Results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error().
			Str("component", "engine").
			Str("operation", "calculate").
			Err(err).
			Msg("assessment calculation failed")
		return nil, err
	}

	summary := Aggregate(scope1Results, scope2Results, scope3Results)
	insights, recommendations := GenerateInsights(summary, e.thresholds)

	log.Info().
		Str("component", "engine").
		Str("operation", "calculate").
		Float64("total_tonnes", summary.TotalEmissions).
		Float64("average_confidence", summary.AverageConfidence).
		Dur("duration", time.Since(start)).
		Msg("assessment calculation complete")

	return &CalculationResult{
		Summary:         summary,
		Insights:        insights,
		Recommendations: recommendations,
		Scope1Results:   scope1Results,
		Scope2Results:   scope2Results,
		Scope3Results:   scope3Results,
	}, nil
}
