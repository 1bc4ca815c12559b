package reportapp

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/micutio/jettrack/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const flightLog = "date,from,to,distance_miles,extra\n" +
	"2021-05-01, City A(BTL), City B (PBI), 500, extra\n" +
	"2021-05-03, City B (PBI), City A (BTL), 500, \n" +
	"2021-05-04, City A (BTL), City B (PBI), 500, \n" +
	"2021-05-05, City A (BTL), Nowhere (XXX), 500, \n"

func testConfig(t *testing.T, content string) *internal.Config {
	t.Helper()

	dir := t.TempDir()
	input := filepath.Join(dir, "flights.csv")
	require.NoError(t, os.WriteFile(input, []byte(content), 0o600))

	cfg := internal.DefaultConfig()
	cfg.Input = input
	cfg.CleanedOutput = filepath.Join(dir, "cleaned.csv")
	cfg.Export.GeoJSON = filepath.Join(dir, "routes.geojson")

	return cfg
}

func TestRunPrintsReport(t *testing.T) {
	cfg := testConfig(t, flightLog)

	var stdout, stderr bytes.Buffer
	err := Run("jettrack", cfg, Options{}, internal.LogParams{ConsoleOut: &stdout, ErrorOut: &stderr})
	require.NoError(t, err)

	report := stdout.String()
	assert.Contains(t, report, "=== Summary ===")
	assert.Contains(t, report, "     2 - BTL→PBI (low-medium)")
	assert.Contains(t, report, "2021-05-04 BTL→PBI")
	assert.Contains(t, stderr.String(), "flight table built")

	assert.FileExists(t, cfg.CleanedOutput)
	assert.FileExists(t, cfg.Export.GeoJSON)
}

func TestRunUntil(t *testing.T) {
	cfg := testConfig(t, flightLog)

	var stdout, stderr bytes.Buffer
	options := Options{Until: time.Date(2021, time.May, 3, 0, 0, 0, 0, time.UTC), Notify: false}
	require.NoError(t, Run("jettrack", cfg, options, internal.LogParams{ConsoleOut: &stdout, ErrorOut: &stderr}))

	report := stdout.String()
	assert.Contains(t, report, "2021-05-03 PBI→BTL")
	assert.NotContains(t, report, "2021-05-04 BTL→PBI")
}

func TestRunUntilRanksFilteredRoutes(t *testing.T) {
	cfg := testConfig(t, flightLog)

	var stdout, stderr bytes.Buffer
	options := Options{Until: time.Date(2021, time.May, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, Run("jettrack", cfg, options, internal.LogParams{ConsoleOut: &stdout, ErrorOut: &stderr}))

	_, routes, found := strings.Cut(stdout.String(), "=== Routes from most to least flown ===")
	require.True(t, found)
	routes, _, _ = strings.Cut(routes, "=== Flights ===")

	assert.Contains(t, routes, "     1 - BTL→PBI (single)")
	assert.NotContains(t, routes, "PBI→BTL")
}

func TestRunWithoutFlights(t *testing.T) {
	cfg := testConfig(t, "2021-05-05, City A (BTL), Nowhere (XXX), 500, \n")

	var stdout, stderr bytes.Buffer
	err := Run("jettrack", cfg, Options{}, internal.LogParams{ConsoleOut: &stdout, ErrorOut: &stderr})
	require.ErrorIs(t, err, errNoFlights)
	assert.Contains(t, stdout.String(), "=== Data quality ===")
}

func TestReportTitle(t *testing.T) {
	records := []internal.FlightRecord{
		{Date: time.Date(2021, time.May, 3, 0, 0, 0, 0, time.UTC)},
		{Date: time.Date(2021, time.May, 1, 0, 0, 0, 0, time.UTC)},
	}

	assert.Equal(t, "jettrack: flights 2021-05-01 to 2021-05-03", ReportTitle("jettrack", records))
	assert.Equal(t, "jettrack: no flights", ReportTitle("jettrack", nil))
}
