package internal

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MilesToKm converts statute miles to kilometers. Applied once, without rounding.
const MilesToKm = 1.609344

// dateLayouts are tried in order when parsing the date field.
var dateLayouts = []string{ //nolint: gochecknoglobals // read-only table
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02.01.2006",
	"2 Jan 2006",
	"January 2 2006",
}

// reCodeGroup captures the content of the first parenthesized group.
var reCodeGroup = regexp.MustCompile(`\(([^)]*)\)`)

// FlightRecord is one flight whose endpoints both resolved against the airport directory.
type FlightRecord struct {
	Date            time.Time
	Origin          string
	Destination     string
	OriginCode      AirportCode
	DestinationCode AirportCode
	OriginPos       Coordinates
	DestinationPos  Coordinates
	DistanceMiles   float64
	DistanceKm      float64
	GreatCircleKm   float64 // haversine distance between the endpoints, for plausibility checks
	Direction       string  // initial compass heading
	Extra           string
	// derived by the route aggregator
	RouteCount int
	Tier       Tier
}

// Route returns the direction-sensitive route key of the flight.
func (f *FlightRecord) Route() RouteKey {
	return RouteKey{Origin: f.OriginCode, Destination: f.DestinationCode}
}

// HoverLabel is the one-line description shown for a route segment.
func (f *FlightRecord) HoverLabel() string {
	return fmt.Sprintf("%s → %s (%.0f km, %dx flown)",
		f.Origin, f.Destination, f.DistanceKm, f.RouteCount)
}

// ParseFlightDate tries all known layouts. The second return value is false if none matched.
func ParseFlightDate(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, text); err == nil {
			return date, true
		}
	}

	return time.Time{}, false
}

// parseMiles reads the distance field. Negative or non-numeric values are rejected.
func parseMiles(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	text = strings.TrimSpace(strings.TrimSuffix(strings.ToLower(text), "mi"))

	miles, err := strconv.ParseFloat(text, 64)
	if err != nil || miles < 0 || math.IsNaN(miles) || math.IsInf(miles, 0) {
		return 0, false
	}

	return miles, true
}

// extractCode returns the code in the first parenthesized group of a location text,
// with stray commas removed. No group means no code.
func extractCode(location string) (AirportCode, bool) {
	match := reCodeGroup.FindStringSubmatch(location)
	if match == nil {
		return "", false
	}

	code := strings.ToUpper(strings.TrimSpace(strings.ReplaceAll(match[1], ",", "")))
	if code == "" {
		return "", false
	}

	return AirportCode(code), true
}
