package internal

import (
	"fmt"
	"io"
	"log" //nolint:depguard // plain line printer for the report

	"github.com/gen2brain/beeep"
)

const (
	// appIcon is a freedesktop theme icon name, so no image file ships with the binary.
	appIcon    = "dialog-warning"
	dateFormat = "2006-01-02"
)

// notifyFunc sends one desktop notification; replaced in tests.
type notifyFunc func(title, message string) error

func desktopNotify(title, message string) error {
	return beeep.Notify(title, message, appIcon)
}

// Notify prints reports to the console and raises desktop notifications.
type Notify struct {
	Stdout log.Logger
	notify notifyFunc
}

func NewNotify(appName string, consoleOut io.Writer) *Notify {
	beeep.AppName = appName //nolint:reassign // This is the only way to set app name in beeep.
	return &Notify{
		Stdout: *log.New(consoleOut, "", 0),
		notify: desktopNotify,
	}
}

// NotifyDataQuality raises a desktop notification if any line or record was dropped.
// It returns whether a notification was sent.
func (notify *Notify) NotifyDataQuality(stats PipelineStats) (bool, error) {
	if stats.Dropped() == 0 {
		return false, nil
	}

	msgBody := fmt.Sprintf(
		"%d of %d lines dropped\n%d malformed, %d bad date, %d bad distance, %d unknown airport",
		stats.Dropped(),
		stats.Normalize.Lines-stats.Normalize.Header,
		stats.Normalize.Malformed,
		stats.Build.BadDate,
		stats.Build.BadDistance,
		stats.Build.Unresolved)

	if err := notify.notify("Flight Log Incomplete", msgBody); err != nil {
		return false, fmt.Errorf("NotifyDataQuality: %w", err)
	}

	return true, nil
}

// PrintSummary prints the headline metrics of the given records.
func (notify *Notify) PrintSummary(db *Dashboard, records []FlightRecord) {
	summary := db.Summarize(records)

	notify.Stdout.Println("=== Summary ===")
	notify.Stdout.Printf("%-22s %10d\n", "flights", summary.Flights)
	notify.Stdout.Printf("%-22s %10.0f\n", "total distance (km)", summary.TotalKm)
	notify.Stdout.Printf("%-22s %10.0f\n", "mean distance (km)", summary.MeanKm)
	notify.Stdout.Printf("%-22s %10.2f\n", "CO2 (t)", summary.CO2Tonnes)
	notify.Stdout.Printf("That is about %.2f%% of the yearly CO2 emissions of %s (≈ %.0f t/year).\n",
		summary.ReferencePercent, db.Emissions.ReferenceName, db.Emissions.ReferenceTonnes)
}

// PrintLegend prints the tier legend with the current width policy.
func (notify *Notify) PrintLegend(db *Dashboard) {
	notify.Stdout.Printf("=== Legend (width policy: %s) ===\n", db.Style.Policy)
	for _, tier := range Tiers {
		notify.Stdout.Printf("%-12s %-10s %s\n", tier, tier.CountLabel(), tier.Color())
	}
}

// PrintRoutes prints the routes of the given records from most to least flown.
func (notify *Notify) PrintRoutes(db *Dashboard, records []FlightRecord) {
	notify.Stdout.Println("=== Routes from most to least flown ===")
	for _, route := range db.RankRoutes(records) {
		notify.Stdout.Printf("%6d - %s (%s)\n", route.Count, route.Route, TierForCount(route.Count))
	}
}

// PrintFlights prints one line per flight.
func (notify *Notify) PrintFlights(db *Dashboard, records []FlightRecord) {
	notify.Stdout.Println("=== Flights ===")
	for i := range records {
		notify.Stdout.Println(flightToString(&records[i], db.Style))
	}
}

// PrintStats prints the drop counters of the pipeline run.
func (notify *Notify) PrintStats(stats PipelineStats) {
	notify.Stdout.Println("=== Data quality ===")
	notify.Stdout.Printf("%-22s %6d\n", "lines read", stats.Normalize.Lines)
	notify.Stdout.Printf("%-22s %6d\n", "header skipped", stats.Normalize.Header)
	notify.Stdout.Printf("%-22s %6d\n", "merged destinations", stats.Normalize.Merged)
	notify.Stdout.Printf("%-22s %6d\n", "malformed lines", stats.Normalize.Malformed)
	notify.Stdout.Printf("%-22s %6d\n", "unparseable dates", stats.Build.BadDate)
	notify.Stdout.Printf("%-22s %6d\n", "unparseable distances", stats.Build.BadDistance)
	notify.Stdout.Printf("%-22s %6d\n", "unknown origin", stats.Build.UnresolvedOrigin)
	notify.Stdout.Printf("%-22s %6d\n", "unknown destination", stats.Build.UnresolvedDestination)
	notify.Stdout.Printf("%-22s %6d\n", "unknown airport rows", stats.Build.Unresolved)
	notify.Stdout.Printf("%-22s %6d\n", "flights kept", stats.Build.Kept)
}

// flightToString generates a one-liner consisting of the most relevant information about the
// given flight.
func flightToString(flight *FlightRecord, style LineStyle) string {
	return fmt.Sprintf("%s %s→%s %6.0f mi %6.0f km (gc %6.0f km) %-18s %-11s w%.0f  %s",
		flight.Date.Format(dateFormat),
		flight.OriginCode,
		flight.DestinationCode,
		flight.DistanceMiles,
		flight.DistanceKm,
		flight.GreatCircleKm,
		flight.Direction,
		flight.Tier,
		style.Width(flight.RouteCount),
		flight.HoverLabel())
}
