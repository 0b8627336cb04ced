package engine

import (
	"fmt"
	"sort"
)

// Thresholds configures insight generation.
type Thresholds struct {
	// LargeFootprintTonnes is the total above which a high_emissions
	// insight fires.
	LargeFootprintTonnes float64

	// DominantScopeShare is the percentage above which a single scope
	// is called out as dominating the footprint.
	DominantScopeShare float64

	// ConfidenceFloor separates the data-quality warning from the
	// positive note.
	ConfidenceFloor float64
}

// DefaultThresholds are the values the assessment corpus was tuned
// against.
func DefaultThresholds() Thresholds {
	return Thresholds{
		LargeFootprintTonnes: 10000,
		DominantScopeShare:   60,
		ConfidenceFloor:      70,
	}
}

// scopeRecommendation is the canned reduction action for one scope.
var scopeRecommendations = map[int]Recommendation{
	1: {
		Scope:              1,
		Action:             "Switch to Renewable Energy",
		Description:        "Replace fossil-fuel combustion with electrified equipment and renewable fuels at owned facilities.",
		PotentialReduction: "30-50%",
	},
	2: {
		Scope:              2,
		Action:             "Procure Renewable Electricity",
		Description:        "Move purchased electricity to renewable tariffs, PPAs, or certificates for the highest-consumption sites.",
		PotentialReduction: "40-70%",
	},
	3: {
		Scope:              3,
		Action:             "Engage Suppliers on Emissions",
		Description:        "Collect primary data from top suppliers and shift procurement toward lower-carbon goods and logistics.",
		PotentialReduction: "10-25%",
	},
}

// GenerateInsights derives qualitative findings and prioritized
// reduction recommendations from an assessment summary. Pure function;
// every rule that matches contributes an insight.
func GenerateInsights(summary AssessmentSummary, thresholds Thresholds) ([]Insight, []Recommendation) {
	var insights []Insight

	if summary.TotalEmissions > thresholds.LargeFootprintTonnes {
		insights = append(insights, Insight{
			Type:     InsightHighEmissions,
			Priority: PriorityHigh,
			Message: fmt.Sprintf("Total footprint of %.1f tCO2e exceeds the %.0f tCO2e large-footprint threshold.",
				summary.TotalEmissions, thresholds.LargeFootprintTonnes),
		})
	}

	shares := scopeShareList(summary)
	if len(shares) > 0 && shares[0].share > thresholds.DominantScopeShare {
		insights = append(insights, Insight{
			Type:     InsightScopeDistribution,
			Priority: PriorityMedium,
			Message: fmt.Sprintf("Scope %d dominates the footprint at %.1f%% of total emissions.",
				shares[0].scope, shares[0].share),
		})
	}

	if summary.AverageConfidence < thresholds.ConfidenceFloor {
		insights = append(insights, Insight{
			Type:     InsightDataQuality,
			Priority: PriorityMedium,
			Message: fmt.Sprintf("Average confidence is %.0f%%; improving activity-data collection would strengthen this assessment.",
				summary.AverageConfidence),
		})
	} else {
		insights = append(insights, Insight{
			Type:     InsightDataQuality,
			Priority: PriorityLow,
			Message: fmt.Sprintf("Average confidence of %.0f%% reflects good underlying activity data.",
				summary.AverageConfidence),
		})
	}

	return insights, buildRecommendations(shares)
}

// scopeShare pairs a scope number with its percentage of the total.
type scopeShare struct {
	scope int
	share float64
	total float64
}

// scopeShareList returns scopes with nonzero emissions, largest share
// first.
func scopeShareList(summary AssessmentSummary) []scopeShare {
	all := []scopeShare{
		{1, summary.EmissionsByScope.Scope1, summary.Scope1Total},
		{2, summary.EmissionsByScope.Scope2, summary.Scope2Total},
		{3, summary.EmissionsByScope.Scope3, summary.Scope3Total},
	}

	var shares []scopeShare
	for _, s := range all {
		if s.total > 0 {
			shares = append(shares, s)
		}
	}

	sort.SliceStable(shares, func(i, j int) bool { return shares[i].share > shares[j].share })
	return shares
}

// buildRecommendations emits one recommendation per scope with nonzero
// emissions. Priority follows share rank: the largest scope gets high,
// the next medium, the rest low.
func buildRecommendations(shares []scopeShare) []Recommendation {
	priorities := []string{PriorityHigh, PriorityMedium, PriorityLow}

	var recs []Recommendation
	for i, s := range shares {
		rec := scopeRecommendations[s.scope]
		if i < len(priorities) {
			rec.Priority = priorities[i]
		} else {
			rec.Priority = PriorityLow
		}
		recs = append(recs, rec)
	}

	return recs
}
