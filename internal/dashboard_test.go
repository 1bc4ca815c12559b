package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2021, time.May, d, 0, 0, 0, 0, time.UTC)
}

func dashboardFixture(style LineStyle) *Dashboard {
	records := []FlightRecord{
		{Date: day(3), OriginCode: "BTL", DestinationCode: "PBI", DistanceKm: 800, Origin: "A (BTL)", Destination: "B (PBI)"},
		{Date: day(1), OriginCode: "BTL", DestinationCode: "PBI", DistanceKm: 800, Origin: "A (BTL)", Destination: "B (PBI)"},
		{Date: day(2), OriginCode: "PBI", DestinationCode: "TEB", DistanceKm: 400, Origin: "B (PBI)", Destination: "C (TEB)"},
		{Date: day(3), OriginCode: "TEB", DestinationCode: "BTL", DistanceKm: 1000, Origin: "C (TEB)", Destination: "A (BTL)"},
	}
	counts := Aggregate(records)

	table := &FlightTable{Records: records, RouteCounts: counts, Stats: PipelineStats{}}
	emissions := EmissionSettings{KgPerKm: 2.5, ReferenceName: "Town", ReferenceTonnes: 5000}

	return NewDashboard(table, emissions, style)
}

func TestDashboardDates(t *testing.T) {
	db := dashboardFixture(LineStyle{Policy: WidthFixed, FixedWidth: 3})

	assert.Equal(t, []time.Time{day(1), day(2), day(3)}, db.Dates())

	first, last, ok := db.DateRange()
	require.True(t, ok)
	assert.Equal(t, day(1), first)
	assert.Equal(t, day(3), last)

	empty := NewDashboard(&FlightTable{}, EmissionSettings{}, LineStyle{})
	_, _, ok = empty.DateRange()
	assert.False(t, ok)
}

func TestDashboardFilterUntil(t *testing.T) {
	db := dashboardFixture(LineStyle{Policy: WidthFixed, FixedWidth: 3})

	filtered := db.FilterUntil(day(2))
	require.Len(t, filtered, 2)
	assert.Equal(t, day(1), filtered[0].Date)
	assert.Equal(t, day(2), filtered[1].Date)

	assert.Len(t, db.FilterUntil(day(3)), 4)
	assert.Empty(t, db.FilterUntil(day(0)))
}

func TestDashboardSummarize(t *testing.T) {
	db := dashboardFixture(LineStyle{Policy: WidthFixed, FixedWidth: 3})

	summary := db.Summarize(db.Records)
	assert.Equal(t, 4, summary.Flights)
	assert.InDelta(t, 3000.0, summary.TotalKm, 1e-9)
	assert.InDelta(t, 750.0, summary.MeanKm, 1e-9)
	assert.InDelta(t, 7.5, summary.CO2Tonnes, 1e-9)
	assert.InDelta(t, 0.15, summary.ReferencePercent, 1e-9)

	assert.Equal(t, Summary{}, db.Summarize(nil))
}

func TestDashboardRoutesSorted(t *testing.T) {
	db := dashboardFixture(LineStyle{Policy: WidthFixed, FixedWidth: 3})

	require.Len(t, db.Routes, 3)
	assert.Equal(t, RouteCountTuple{Route: RouteKey{Origin: "BTL", Destination: "PBI"}, Count: 2}, db.Routes[0])
	assert.Equal(t, RouteKey{Origin: "PBI", Destination: "TEB"}, db.Routes[1].Route)
	assert.Equal(t, RouteKey{Origin: "TEB", Destination: "BTL"}, db.Routes[2].Route)
}

func TestDashboardSegments(t *testing.T) {
	fixed := dashboardFixture(LineStyle{Policy: WidthFixed, FixedWidth: 3})
	scaled := dashboardFixture(LineStyle{Policy: WidthScaled, FixedWidth: 3})

	fixedSegments := fixed.Segments(fixed.Records)
	scaledSegments := scaled.Segments(scaled.Records)
	require.Len(t, fixedSegments, 4)
	require.Len(t, scaledSegments, 4)

	first := fixedSegments[0]
	assert.Equal(t, RouteKey{Origin: "BTL", Destination: "PBI"}, first.Route)
	assert.Equal(t, TierLowMedium, first.Tier)
	assert.Equal(t, "#FFC107", first.Color)
	assert.Equal(t, 2, first.Count)
	assert.Equal(t, "A (BTL) → B (PBI) (800 km, 2x flown)", first.Label)
	assert.Same(t, &fixed.Records[0], first.Flight)

	for i := range fixedSegments {
		assert.InDelta(t, 3.0, fixedSegments[i].Width, 1e-9)
		assert.Equal(t, fixedSegments[i].Color, scaledSegments[i].Color)
	}

	assert.InDelta(t, 4.0, scaledSegments[0].Width, 1e-9)
	assert.InDelta(t, 2.0, scaledSegments[2].Width, 1e-9)
}

func TestDashboardRankRoutes(t *testing.T) {
	db := dashboardFixture(LineStyle{Policy: WidthFixed, FixedWidth: 3})

	ranked := db.RankRoutes(db.FilterUntil(day(2)))
	assert.Equal(t, []RouteCountTuple{
		{Route: RouteKey{Origin: "BTL", Destination: "PBI"}, Count: 1},
		{Route: RouteKey{Origin: "PBI", Destination: "TEB"}, Count: 1},
	}, ranked)

	assert.Equal(t, db.Routes, db.RankRoutes(db.Records))
	assert.Empty(t, db.RankRoutes(nil))
}
