// Package factors resolves emission factors — coefficients converting a
// physical activity quantity into mass of CO2-equivalent — from an
// external store, with regional fallback to global defaults and a
// built-in table for offline operation.
package factors

import (
	"context"
	"strings"
)

// GlobalRegion is the sentinel region code matching any requested region.
// A region-specific record always outranks a GlobalRegion record.
const GlobalRegion = "GLOBAL"

// Provenance classifies where an emission factor came from. The tier is
// assigned once at ingestion time; confidence scoring reads the tier
// rather than re-parsing free-text source strings per calculation.
type Provenance string

const (
	// ProvenanceGovernmentStandard covers factors published by
	// government bodies (EPA, IPCC, national inventories).
	ProvenanceGovernmentStandard Provenance = "government_standard"

	// ProvenanceIndustryStandard covers factors from industry datasets
	// such as DEFRA conversion factors.
	ProvenanceIndustryStandard Provenance = "industry_standard"

	// ProvenanceSupplierSpecific covers factors attested directly by an
	// energy supplier (market-based Scope 2).
	ProvenanceSupplierSpecific Provenance = "supplier_specific"

	// ProvenanceEstimated covers modeled or averaged factors with no
	// authoritative publication behind them.
	ProvenanceEstimated Provenance = "estimated"
)

// Valid reports whether p is a known provenance tier.
func (p Provenance) Valid() bool {
	switch p {
	case ProvenanceGovernmentStandard, ProvenanceIndustryStandard,
		ProvenanceSupplierSpecific, ProvenanceEstimated:
		return true
	}
	return false
}

// ClassifyProvenance derives a provenance tier from a free-text source
// string. Used only at dataset ingestion for rows that carry no explicit
// tier, never on the calculation path.
func ClassifyProvenance(source string) Provenance {
	s := strings.ToUpper(source)
	switch {
	case strings.Contains(s, "EPA"), strings.Contains(s, "IPCC"):
		return ProvenanceGovernmentStandard
	case strings.Contains(s, "DEFRA"):
		return ProvenanceIndustryStandard
	case strings.Contains(s, "SUPPLIER"):
		return ProvenanceSupplierSpecific
	default:
		return ProvenanceEstimated
	}
}

// EmissionFactor is immutable reference data: mass of CO2e emitted per
// unit of activity. Resolved by lookup, never mutated by the engine.
type EmissionFactor struct {
	Category    string     `json:"category" yaml:"category"`
	Subcategory string     `json:"subcategory" yaml:"subcategory"`
	Scope       int        `json:"scope" yaml:"scope"`
	Factor      float64    `json:"emission_factor" yaml:"factor"`
	Unit        string     `json:"unit" yaml:"unit"`
	Source      string     `json:"source" yaml:"source"`
	Provenance  Provenance `json:"provenance" yaml:"provenance"`
	Region      string     `json:"region" yaml:"region"`
	Year        int        `json:"year" yaml:"year"`
}

// Key is the composite lookup key for the built-in table. Keying by the
// full tuple prevents the silent multi-match ambiguity of scanning a
// list for the first loose string match.
type Key struct {
	Category    string
	Subcategory string
	Scope       int
	Region      string
}

// Store is the external factor store collaborator. Implementations must
// return every record matching category, subcategory, and scope whose
// region is in regions; the resolver applies the specific-over-GLOBAL
// tie-break itself.
type Store interface {
	QueryFactors(ctx context.Context, category, subcategory string, scope int, regions []string) ([]EmissionFactor, error)
}
