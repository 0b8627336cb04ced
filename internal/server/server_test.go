package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonex/footprint/internal/assessdb"
	"github.com/carbonex/footprint/internal/engine"
	"github.com/carbonex/footprint/internal/factors"
)

type fakeStore struct {
	saved     []*assessdb.Record
	saveErr   error
	lastLimit int
}

func (f *fakeStore) SaveAssessment(_ context.Context, rec *assessdb.Record) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, rec)
	return nil
}

func (f *fakeStore) GetAssessment(_ context.Context, id string) (*assessdb.Record, error) {
	for _, rec := range f.saved {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", assessdb.ErrNotFound, id)
}

func (f *fakeStore) ListAssessments(_ context.Context, organization string, limit int) ([]*assessdb.Record, error) {
	f.lastLimit = limit
	var out []*assessdb.Record
	for _, rec := range f.saved {
		if organization != "" && rec.OrganizationName != organization {
			continue
		}
		out = append(out, rec)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func newTestServer(store assessdb.Store) *httptest.Server {
	eng := engine.New(factors.NewResolver(nil), engine.DefaultThresholds())
	return httptest.NewServer(New(eng, store).Router())
}

const calculateBody = `{
  "metadata": {"organizationName": "Acme Manufacturing", "reportingYear": 2024},
  "region": "US",
  "scope1Data": [
    {"sourceCategory": "stationary_combustion", "fuelType": "natural_gas_commercial",
     "activityData": 1000, "activityUnit": "MMBtu"}
  ],
  "scope2Data": [
    {"energyType": "electricity", "calculationMethod": "location_based",
     "activityData": 50000, "activityUnit": "kWh"}
  ],
  "scope3Data": [
    {"categoryNumber": 6, "calculationMethod": "activity_based",
     "activityData": 100000, "activityUnit": "passenger-km", "dataQuality": 3}
  ]
}`

func TestHealthz(t *testing.T) {
	ts := newTestServer(nil)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCalculate(t *testing.T) {
	ts := newTestServer(nil)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/v1/assessments/calculate", "application/json",
		strings.NewReader(calculateBody))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result engine.CalculationResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	assert.InDelta(t, 83.86, result.Summary.TotalEmissions, 0.01)
	assert.NotEmpty(t, result.Insights)
	assert.NotEmpty(t, result.Recommendations)
}

func TestCalculateValidationFailure(t *testing.T) {
	ts := newTestServer(nil)
	defer ts.Close()

	body := `{"metadata": {"organizationName": ""}, "scope1Data": [
      {"sourceCategory": "stationary_combustion", "fuelType": "diesel",
       "activityData": 10, "activityUnit": "gallon"}]}`
	resp, err := http.Post(ts.URL+"/v1/assessments/calculate", "application/json",
		strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	msg, ok := payload["error"].(string)
	require.True(t, ok)
	assert.NotEmpty(t, msg)
	// The failure response carries no totals.
	assert.NotContains(t, payload, "summary")
}

func TestCalculateMalformedJSON(t *testing.T) {
	ts := newTestServer(nil)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/v1/assessments/calculate", "application/json",
		strings.NewReader("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCalculateUnknownFactor(t *testing.T) {
	ts := newTestServer(nil)
	defer ts.Close()

	body := `{"metadata": {"organizationName": "Acme"}, "scope1Data": [
      {"sourceCategory": "stationary_combustion", "fuelType": "whale_oil",
       "activityData": 10, "activityUnit": "gallon"}]}`
	resp, err := http.Post(ts.URL+"/v1/assessments/calculate", "application/json",
		strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestCalculateWithSave(t *testing.T) {
	store := &fakeStore{}
	ts := newTestServer(store)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/v1/assessments/calculate?save=true", "application/json",
		strings.NewReader(calculateBody))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var payload struct {
		ID      string                   `json:"id"`
		Summary engine.AssessmentSummary `json:"summary"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.NotEmpty(t, payload.ID)

	require.Len(t, store.saved, 1)
	assert.Equal(t, payload.ID, store.saved[0].ID)
	assert.InDelta(t, 83.86, store.saved[0].Summary.TotalEmissions, 0.01)
}

func TestGetAssessment(t *testing.T) {
	store := &fakeStore{saved: []*assessdb.Record{{ID: "01ABC", OrganizationName: "Acme"}}}
	ts := newTestServer(store)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/assessments/01ABC")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rec assessdb.Record
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	assert.Equal(t, "Acme", rec.OrganizationName)

	resp, err = http.Get(ts.URL + "/v1/assessments/missing")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListAssessments(t *testing.T) {
	store := &fakeStore{saved: []*assessdb.Record{
		{ID: "01A", OrganizationName: "Acme"},
		{ID: "01B", OrganizationName: "Globex"},
	}}
	ts := newTestServer(store)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/assessments/?organization=Acme")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Assessments []*assessdb.Record `json:"assessments"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Len(t, payload.Assessments, 1)
	assert.Equal(t, "01A", payload.Assessments[0].ID)
}

func TestListAssessmentsLimitClamped(t *testing.T) {
	store := &fakeStore{}
	ts := newTestServer(store)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/assessments/?limit=1000000000")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 200, store.lastLimit)

	resp, err = http.Get(ts.URL + "/v1/assessments/?limit=-1")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStorageEndpointsWithoutStore(t *testing.T) {
	ts := newTestServer(nil)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/assessments/01A")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
