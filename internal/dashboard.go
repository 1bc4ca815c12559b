// Package internal provides the flight log pipeline, the Dashboard type and all associated
// program logic.
package internal

import (
	"sort"
	"time"
)

const kgPerTonne = 1000.0

// EmissionSettings describe how CO2 is estimated and what it is compared to.
type EmissionSettings struct {
	KgPerKm         float64
	ReferenceName   string
	ReferenceTonnes float64
}

// Summary holds the headline metrics of a set of flights.
type Summary struct {
	Flights          int
	TotalKm          float64
	MeanKm           float64
	CO2Tonnes        float64
	ReferencePercent float64
}

// Segment is everything needed to draw one flight on a map.
type Segment struct {
	From   Coordinates
	To     Coordinates
	Route  RouteKey
	Tier   Tier
	Color  string
	Width  float64
	Count  int
	Label  string
	Flight *FlightRecord
}

// Dashboard is the presentation contract over a built flight table. It never goes back to the
// raw text; every view is recomputed from Records.
type Dashboard struct {
	Records   []FlightRecord
	Routes    []RouteCountTuple
	Stats     PipelineStats
	Emissions EmissionSettings
	Style     LineStyle
	dates     []time.Time
}

func NewDashboard(table *FlightTable, emissions EmissionSettings, style LineStyle) *Dashboard {
	db := Dashboard{
		Records:   table.Records,
		Routes:    GetSortedRouteCounts(table.RouteCounts),
		Stats:     table.Stats,
		Emissions: emissions,
		Style:     style,
		dates:     nil,
	}
	db.dates = distinctDates(db.Records)

	return &db
}

// EmissionSettingsFrom extracts the emission settings of a configuration.
func EmissionSettingsFrom(cfg *Config) EmissionSettings {
	return EmissionSettings{
		KgPerKm:         cfg.Emissions.KgPerKm,
		ReferenceName:   cfg.Emissions.ReferenceName,
		ReferenceTonnes: cfg.Emissions.ReferenceTonnes,
	}
}

func distinctDates(records []FlightRecord) []time.Time {
	seen := make(map[time.Time]struct{}, len(records))
	dates := make([]time.Time, 0, len(records))

	for i := range records {
		day := records[i].Date
		if _, ok := seen[day]; ok {
			continue
		}

		seen[day] = struct{}{}
		dates = append(dates, day)
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	return dates
}

// Dates returns the distinct flight dates in ascending order.
func (db *Dashboard) Dates() []time.Time {
	return db.dates
}

// DateRange returns the first and last flight date. ok is false for an empty table.
func (db *Dashboard) DateRange() (first, last time.Time, ok bool) {
	if len(db.dates) == 0 {
		return time.Time{}, time.Time{}, false
	}

	return db.dates[0], db.dates[len(db.dates)-1], true
}

// FilterUntil returns the records flown on or before bound, in input order.
func (db *Dashboard) FilterUntil(bound time.Time) []FlightRecord {
	filtered := make([]FlightRecord, 0, len(db.Records))
	for i := range db.Records {
		if db.Records[i].Date.After(bound) {
			continue
		}

		filtered = append(filtered, db.Records[i])
	}

	return filtered
}

// Summarize computes the headline metrics for records.
func (db *Dashboard) Summarize(records []FlightRecord) Summary {
	summary := Summary{Flights: len(records)}
	if len(records) == 0 {
		return summary
	}

	for i := range records {
		summary.TotalKm += records[i].DistanceKm
	}

	summary.MeanKm = summary.TotalKm / float64(len(records))
	summary.CO2Tonnes = summary.TotalKm * db.Emissions.KgPerKm / kgPerTonne

	if db.Emissions.ReferenceTonnes > 0 {
		summary.ReferencePercent = summary.CO2Tonnes / db.Emissions.ReferenceTonnes * 100 //nolint: mnd // percent
	}

	return summary
}

// Segments turns records into drawable route segments.
func (db *Dashboard) Segments(records []FlightRecord) []Segment {
	segments := make([]Segment, len(records))
	for i := range records {
		record := &records[i]
		segments[i] = Segment{
			From:   record.OriginPos,
			To:     record.DestinationPos,
			Route:  record.Route(),
			Tier:   record.Tier,
			Color:  record.Tier.Color(),
			Width:  db.Style.Width(record.RouteCount),
			Count:  record.RouteCount,
			Label:  record.HoverLabel(),
			Flight: record,
		}
	}

	return segments
}

// RankRoutes counts the routes of records alone and sorts them with ByCount. Unlike
// RouteCount on a record, the counts only cover the given records.
func (db *Dashboard) RankRoutes(records []FlightRecord) []RouteCountTuple {
	counts := make(map[RouteKey]int)
	for i := range records {
		counts[records[i].Route()]++
	}

	return GetSortedRouteCounts(counts)
}
