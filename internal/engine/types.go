// Package engine converts heterogeneous scope-1/2/3 activity data into
// standardized greenhouse-gas emission totals: unit normalization,
// emission-factor resolution, data-quality-weighted confidence scoring,
// aggregation, and insight generation across the three GHG Protocol
// scopes.
package engine

// Scope 1 source categories.
const (
	SourceStationaryCombustion = "stationary_combustion"
	SourceMobileCombustion     = "mobile_combustion"
	SourceProcess              = "process"
	SourceFugitive             = "fugitive"
)

// Scope 2 energy types.
const (
	EnergyElectricity = "electricity"
	EnergySteam       = "steam"
	EnergyHeating     = "heating"
	EnergyCooling     = "cooling"
)

// Scope 2 calculation methods.
const (
	MethodLocationBased = "location_based"
	MethodMarketBased   = "market_based"
)

// Scope 3 calculation methods.
const (
	MethodSpendBased    = "spend_based"
	MethodActivityBased = "activity_based"
	MethodHybrid        = "hybrid"
)

// Scope1Entry is one direct-emissions activity record: fuel burned in
// stationary or mobile equipment, process emissions, or fugitive
// releases.
type Scope1Entry struct {
	SourceCategory string  `json:"sourceCategory" yaml:"source_category" validate:"required,oneof=stationary_combustion mobile_combustion process fugitive"`
	FuelType       string  `json:"fuelType" yaml:"fuel_type" validate:"required"`
	ActivityData   float64 `json:"activityData" yaml:"activity_data"`
	ActivityUnit   string  `json:"activityUnit" yaml:"activity_unit" validate:"required"`
	Facility       string  `json:"facility,omitempty" yaml:"facility,omitempty"`
	Location       string  `json:"location,omitempty" yaml:"location,omitempty"`
	Notes          string  `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Scope2Entry is one purchased-energy activity record.
type Scope2Entry struct {
	EnergyType        string  `json:"energyType" yaml:"energy_type" validate:"required,oneof=electricity steam heating cooling"`
	CalculationMethod string  `json:"calculationMethod" yaml:"calculation_method" validate:"required,oneof=location_based market_based"`
	ActivityData      float64 `json:"activityData" yaml:"activity_data"`
	ActivityUnit      string  `json:"activityUnit" yaml:"activity_unit" validate:"required"`
	GridRegion        string  `json:"gridRegion,omitempty" yaml:"grid_region,omitempty"`

	// SupplierEmissionFactor (kg CO2e per kWh) is honored only for the
	// market_based method.
	SupplierEmissionFactor *float64 `json:"supplierEmissionFactor,omitempty" yaml:"supplier_emission_factor,omitempty"`

	// RenewableEnergyCertificates is REC volume in MWh, subtracted from
	// consumption before attribution, floored at zero.
	RenewableEnergyCertificates *float64 `json:"renewableEnergyCertificates,omitempty" yaml:"renewable_energy_certificates,omitempty"`
}

// Scope3Entry is one value-chain activity record, keyed to a GHG
// Protocol category number (1-15).
type Scope3Entry struct {
	CategoryNumber    int     `json:"categoryNumber" yaml:"category_number" validate:"required,min=1,max=15"`
	CalculationMethod string  `json:"calculationMethod" yaml:"calculation_method" validate:"required,oneof=spend_based activity_based hybrid"`
	ActivityData      float64 `json:"activityData" yaml:"activity_data"`
	ActivityUnit      string  `json:"activityUnit" yaml:"activity_unit" validate:"required"`

	// DataQuality is a 1-5 self-declared rating of input reliability
	// (1 = low, 5 = high), used to scale uncertainty.
	DataQuality int `json:"dataQuality" yaml:"data_quality" validate:"required,min=1,max=5"`
}

// EmissionResult is the outcome of calculating one activity entry. All
// gas masses are tonnes of CO2-equivalent. Results are ephemeral, owned
// by the calculation call that produced them.
type EmissionResult struct {
	CO2Emissions      float64 `json:"co2Emissions"`
	CH4Emissions      float64 `json:"ch4Emissions"`
	N2OEmissions      float64 `json:"n2oEmissions"`
	OtherGHGEmissions float64 `json:"otherGhgEmissions"`
	TotalEmissions    float64 `json:"totalEmissions"`

	EmissionFactor       float64 `json:"emissionFactor"`
	EmissionFactorSource string  `json:"emissionFactorSource"`

	// ConfidenceLevel is 0-100.
	ConfidenceLevel float64 `json:"confidenceLevel"`
}

// ScopeShares is the percentage breakdown of emissions by scope. Shares
// sum to ~100 when total emissions are nonzero, and are all zero when
// the grand total is zero.
type ScopeShares struct {
	Scope1 float64 `json:"scope1"`
	Scope2 float64 `json:"scope2"`
	Scope3 float64 `json:"scope3"`
}

// AssessmentSummary is derived from per-entry results and recomputed on
// every calculation, never partially updated.
type AssessmentSummary struct {
	Scope1Total       float64     `json:"scope1Total"`
	Scope2Total       float64     `json:"scope2Total"`
	Scope3Total       float64     `json:"scope3Total"`
	TotalEmissions    float64     `json:"totalEmissions"`
	AverageConfidence float64     `json:"averageConfidence"`
	EmissionsByScope  ScopeShares `json:"emissionsByScope"`
}

// Insight priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Insight types.
const (
	InsightHighEmissions     = "high_emissions"
	InsightScopeDistribution = "scope_distribution"
	InsightDataQuality       = "data_quality"
)

// Insight is a qualitative finding derived from the assessment summary.
type Insight struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

// Recommendation is a prioritized reduction action for one scope.
type Recommendation struct {
	Scope              int    `json:"scope"`
	Action             string `json:"action"`
	Description        string `json:"description"`
	PotentialReduction string `json:"potentialReduction"`
	Priority           string `json:"priority"`
}

// AssessmentMetadata describes the organization and period being
// assessed.
type AssessmentMetadata struct {
	OrganizationName string `json:"organizationName" yaml:"organization_name" validate:"required"`
	AssessmentName   string `json:"assessmentName,omitempty" yaml:"assessment_name,omitempty"`
	ReportingYear    int    `json:"reportingYear,omitempty" yaml:"reporting_year,omitempty"`
}

// CalculationInput is the full payload for one assessment run.
type CalculationInput struct {
	Metadata AssessmentMetadata `json:"metadata" yaml:"metadata"`
	Scope1   []Scope1Entry      `json:"scope1Data" yaml:"scope1"`
	Scope2   []Scope2Entry      `json:"scope2Data" yaml:"scope2"`
	Scope3   []Scope3Entry      `json:"scope3Data" yaml:"scope3"`
	Region   string             `json:"region" yaml:"region"`
}

// CalculationResult is the complete outcome of one assessment run.
// Per-scope results are retained so a persistence adapter can write
// detail rows; the engine itself never persists anything.
type CalculationResult struct {
	Summary         AssessmentSummary `json:"summary"`
	Insights        []Insight         `json:"insights"`
	Recommendations []Recommendation  `json:"recommendations"`

	Scope1Results []EmissionResult `json:"scope1Results,omitempty"`
	Scope2Results []EmissionResult `json:"scope2Results,omitempty"`
	Scope3Results []EmissionResult `json:"scope3Results,omitempty"`
}
