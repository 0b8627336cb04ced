package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonex/footprint/internal/engine"
)

const activityYAML = `metadata:
  organization_name: Acme Manufacturing
  reporting_year: 2024
region: US
scope1_data:
  - source_category: stationary_combustion
    fuel_type: natural_gas_commercial
    activity_data: 1000
    activity_unit: MMBtu
scope2_data:
  - energy_type: electricity
    calculation_method: location_based
    activity_data: 50000
    activity_unit: kWh
scope3_data:
  - category_number: 6
    calculation_method: activity_based
    activity_data: 100000
    activity_unit: passenger-km
    data_quality: 3
`

const activityJSON = `{
  "metadata": {"organizationName": "Acme Manufacturing", "reportingYear": 2024},
  "scope2Data": [
    {"energyType": "electricity", "calculationMethod": "market_based",
     "activityData": 50000, "activityUnit": "kWh",
     "supplierEmissionFactor": 0.12}
  ]
}`

func TestParseYAML(t *testing.T) {
	file, err := Parse(context.Background(), []byte(activityYAML), "yaml")
	require.NoError(t, err)

	assert.Equal(t, "Acme Manufacturing", file.Metadata.OrganizationName)
	assert.Equal(t, 2024, file.Metadata.ReportingYear)
	assert.Equal(t, "US", file.Region)
	require.Len(t, file.Scope1, 1)
	assert.Equal(t, "natural_gas_commercial", file.Scope1[0].FuelType)
	assert.Equal(t, 1000.0, file.Scope1[0].ActivityData)
	require.Len(t, file.Scope3, 1)
	assert.Equal(t, 6, file.Scope3[0].CategoryNumber)
	assert.Equal(t, 3, file.Scope3[0].DataQuality)
}

func TestParseJSON(t *testing.T) {
	file, err := Parse(context.Background(), []byte(activityJSON), "json")
	require.NoError(t, err)

	require.Len(t, file.Scope2, 1)
	entry := file.Scope2[0]
	assert.Equal(t, engine.MethodMarketBased, entry.CalculationMethod)
	require.NotNil(t, entry.SupplierEmissionFactor)
	assert.Equal(t, 0.12, *entry.SupplierEmissionFactor)
}

func TestParseUnsupportedFormat(t *testing.T) {
	_, err := Parse(context.Background(), []byte("a,b,c"), "csv")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse(context.Background(), []byte("{not json"), "json")
	assert.Error(t, err)

	_, err = Parse(context.Background(), []byte("metadata: [unclosed"), "yaml")
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.yaml")
	require.NoError(t, os.WriteFile(path, []byte(activityYAML), 0o600))

	file, err := LoadFile(context.Background(), path)
	require.NoError(t, err)

	input := file.Input()
	assert.Equal(t, "Acme Manufacturing", input.Metadata.OrganizationName)
	assert.Len(t, input.Scope1, 1)
	assert.Len(t, input.Scope2, 1)
	assert.Len(t, input.Scope3, 1)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadFileExtensionInference(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.json")
	require.NoError(t, os.WriteFile(path, []byte(activityJSON), 0o600))

	file, err := LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, file.Scope2, 1)
}
