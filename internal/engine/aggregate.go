package engine

// Aggregate sums per-entry results into scope subtotals, a grand total,
// a combined mean confidence, and percentage shares per scope.
//
// The average is the arithmetic mean over all entries from all three
// scopes combined, not scope-weighted. When the grand total is zero all
// shares are defined as zero. Aggregation only runs over entries that
// succeeded; a failed entry aborts the whole assessment upstream, so no
// partial totals ever reach this function.
func Aggregate(scope1, scope2, scope3 []EmissionResult) AssessmentSummary {
	summary := AssessmentSummary{
		Scope1Total: sumEmissions(scope1),
		Scope2Total: sumEmissions(scope2),
		Scope3Total: sumEmissions(scope3),
	}
	summary.TotalEmissions = summary.Scope1Total + summary.Scope2Total + summary.Scope3Total

	var confidenceSum float64
	count := len(scope1) + len(scope2) + len(scope3)
	for _, results := range [][]EmissionResult{scope1, scope2, scope3} {
		for _, r := range results {
			confidenceSum += r.ConfidenceLevel
		}
	}
	if count > 0 {
		summary.AverageConfidence = confidenceSum / float64(count)
	}

	if summary.TotalEmissions > 0 {
		summary.EmissionsByScope = ScopeShares{
			Scope1: summary.Scope1Total / summary.TotalEmissions * 100,
			Scope2: summary.Scope2Total / summary.TotalEmissions * 100,
			Scope3: summary.Scope3Total / summary.TotalEmissions * 100,
		}
	}

	return summary
}

func sumEmissions(results []EmissionResult) float64 {
	var total float64
	for _, r := range results {
		total += r.TotalEmissions
	}
	return total
}
