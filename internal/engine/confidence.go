package engine

import (
	"strings"

	"github.com/carbonex/footprint/internal/factors"
)

// Confidence scores are 0-100. Each scope has its own scoring policy;
// the shared pieces live here.
const (
	scope1BaseConfidence = 80
	scope1MaxConfidence  = 95

	scope2MarketConfidence   = 90
	scope2LocationConfidence = 75

	scope3ActivityBaseConfidence = 70
	scope3HybridBaseConfidence   = 60
	scope3SpendBaseConfidence    = 50
	scope3MinConfidence          = 30
	scope3MaxConfidence          = 90
)

// provenanceBonus maps a factor's provenance tier to its Scope 1
// confidence bonus. The tier is assigned at factor ingestion, so the
// calculation path never re-parses source strings.
var provenanceBonus = map[factors.Provenance]float64{
	factors.ProvenanceGovernmentStandard: 10,
	factors.ProvenanceIndustryStandard:   8,
}

// meteredUnitBonus rewards activity units that look metered rather than
// estimated. A weak proxy, kept for parity with the assessment corpus.
func meteredUnitBonus(activityUnit string) float64 {
	u := strings.ToLower(activityUnit)
	if strings.Contains(u, "meter") || strings.Contains(u, "exact") {
		return 5
	}
	return 0
}

// scope1Confidence scores a Scope 1 result from the resolved factor's
// provenance and the activity unit, clamped to scope1MaxConfidence.
func scope1Confidence(provenance factors.Provenance, activityUnit string) float64 {
	score := float64(scope1BaseConfidence)
	score += provenanceBonus[provenance]
	score += meteredUnitBonus(activityUnit)
	return min(score, scope1MaxConfidence)
}

// scope3Confidence scores a Scope 3 result from the calculation method
// and declared data quality, clamped to [30, 90].
func scope3Confidence(method string, dataQuality int) float64 {
	var base float64
	switch method {
	case MethodSpendBased:
		base = scope3SpendBaseConfidence
	case MethodHybrid:
		base = scope3HybridBaseConfidence
	default:
		base = scope3ActivityBaseConfidence
	}

	score := base + float64(dataQuality-3)*10
	return clamp(score, scope3MinConfidence, scope3MaxConfidence)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
