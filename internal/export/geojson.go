// Package export writes the flight dashboard to files: a GeoJSON route map and a PDF report.
package export

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/micutio/jettrack/internal"
	geojson "github.com/paulmach/go.geojson"
)

// GeoJSON property keys, shared with the tests.
const (
	propKind   = "kind"
	propRoute  = "route"
	propDate   = "date"
	propColor  = "stroke"
	propWidth  = "stroke-width"
	propTier   = "tier"
	propCount  = "count"
	propLabel  = "label"
	propKm     = "distance_km"
	propCode   = "code"
	propDeps   = "departures"
	propArrs   = "arrivals"
	kindFlight = "flight"
	kindPort   = "airport"
)

type airportUse struct {
	pos        internal.Coordinates
	departures int
	arrivals   int
}

// FeatureCollection builds one LineString per flight and one Point per airport touched by
// records. Coordinates are [lon, lat].
func FeatureCollection(db *internal.Dashboard, records []internal.FlightRecord) *geojson.FeatureCollection {
	collection := geojson.NewFeatureCollection()
	airports := make(map[internal.AirportCode]*airportUse)

	for _, segment := range db.Segments(records) {
		feature := geojson.NewLineStringFeature([][]float64{
			{segment.From.Longitude, segment.From.Latitude},
			{segment.To.Longitude, segment.To.Latitude},
		})
		feature.SetProperty(propKind, kindFlight)
		feature.SetProperty(propRoute, segment.Route.String())
		feature.SetProperty(propDate, segment.Flight.Date.Format("2006-01-02"))
		feature.SetProperty(propColor, segment.Color)
		feature.SetProperty(propWidth, segment.Width)
		feature.SetProperty(propTier, segment.Tier.String())
		feature.SetProperty(propCount, segment.Count)
		feature.SetProperty(propLabel, segment.Label)
		feature.SetProperty(propKm, segment.Flight.DistanceKm)
		collection.AddFeature(feature)

		useAirport(airports, segment.Route.Origin, segment.From).departures++
		useAirport(airports, segment.Route.Destination, segment.To).arrivals++
	}

	codes := make([]internal.AirportCode, 0, len(airports))
	for code := range airports {
		codes = append(codes, code)
	}

	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	for _, code := range codes {
		use := airports[code]
		feature := geojson.NewPointFeature([]float64{use.pos.Longitude, use.pos.Latitude})
		feature.SetProperty(propKind, kindPort)
		feature.SetProperty(propCode, string(code))
		feature.SetProperty(propDeps, use.departures)
		feature.SetProperty(propArrs, use.arrivals)
		collection.AddFeature(feature)
	}

	return collection
}

func useAirport(
	airports map[internal.AirportCode]*airportUse,
	code internal.AirportCode,
	pos internal.Coordinates,
) *airportUse {
	use, ok := airports[code]
	if !ok {
		use = &airportUse{pos: pos, departures: 0, arrivals: 0}
		airports[code] = use
	}

	return use
}

// WriteGeoJSON encodes the route map of records to w.
func WriteGeoJSON(w io.Writer, db *internal.Dashboard, records []internal.FlightRecord) error {
	data, err := FeatureCollection(db, records).MarshalJSON()
	if err != nil {
		return fmt.Errorf("WriteGeoJSON: failed to encode: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("WriteGeoJSON: %w", err)
	}

	return nil
}

// SaveGeoJSON writes the route map of records to filePath.
func SaveGeoJSON(filePath string, db *internal.Dashboard, records []internal.FlightRecord) (err error) {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("SaveGeoJSON: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("SaveGeoJSON: error while closing file %s: %w", filePath, closeErr)
		}
	}()

	return WriteGeoJSON(file, db, records)
}
