// Package assessdb persists completed assessments.
package assessdb

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/carbonex/footprint/internal/engine"
)

type constError string

func (e constError) Error() string { return string(e) }

// ErrNotFound indicates no assessment exists with the requested ID.
const ErrNotFound = constError("assessment not found")

// Record is a stored assessment: the input metadata plus the computed
// summary, insights, and recommendations.
type Record struct {
	ID               string                   `json:"id"`
	OrganizationName string                   `json:"organization_name"`
	ReportingYear    int                      `json:"reporting_year"`
	Region           string                   `json:"region"`
	Summary          engine.AssessmentSummary `json:"summary"`
	Insights         []engine.Insight         `json:"insights"`
	Recommendations  []engine.Recommendation  `json:"recommendations"`
	Scope1Results    []engine.EmissionResult  `json:"scope1_results,omitempty"`
	Scope2Results    []engine.EmissionResult  `json:"scope2_results,omitempty"`
	Scope3Results    []engine.EmissionResult  `json:"scope3_results,omitempty"`
	CreatedAt        time.Time                `json:"created_at"`
}

// Saver stores assessment records. The engine depends on this
// interface, not on a concrete database.
type Saver interface {
	SaveAssessment(ctx context.Context, rec *Record) error
}

// Loader retrieves stored assessments.
type Loader interface {
	GetAssessment(ctx context.Context, id string) (*Record, error)
	ListAssessments(ctx context.Context, organization string, limit int) ([]*Record, error)
}

// Store combines persistence and retrieval.
type Store interface {
	Saver
	Loader
}

// NewRecord builds a Record from a calculation's input and result,
// stamping a fresh ULID and creation time.
func NewRecord(input engine.CalculationInput, result *engine.CalculationResult) *Record {
	now := time.Now().UTC()
	return &Record{
		ID:               ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		OrganizationName: input.Metadata.OrganizationName,
		ReportingYear:    input.Metadata.ReportingYear,
		Region:           input.Region,
		Summary:          result.Summary,
		Insights:         result.Insights,
		Recommendations:  result.Recommendations,
		Scope1Results:    result.Scope1Results,
		Scope2Results:    result.Scope2Results,
		Scope3Results:    result.Scope3Results,
		CreatedAt:        now,
	}
}
