package internal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

const (
	airportHeaderMinLen = 3
)

var (
	errParseCSV        = errors.New("error parsing CSV")
	errHeaderLen       = errors.New("unexpected header length")
	errParseCoordinate = errors.New("unable to parse coordinate")
)

// AirportCode is a three-letter IATA identifier, upper case.
type AirportCode string

// builtinAirports covers every airport that appears in the flight log.
var builtinAirports = map[AirportCode]Coordinates{ //nolint: gochecknoglobals // read-only table
	"BTL": {42.3073, -85.2515},   // Battle Creek, Michigan
	"PBI": {26.6832, -80.0956},   // Palm Beach, Florida
	"HVN": {41.2637, -72.8868},   // New Haven, Connecticut
	"VNY": {34.2098, -118.4890},  // Van Nuys, California
	"AUS": {30.1945, -97.6699},   // Austin, Texas
	"SVD": {13.1567, -61.1499},   // Kingstown, St. Vincent
	"BOS": {42.3656, -71.0096},   // Boston
	"VCE": {45.5053, 12.3519},    // Venice
	"MUC": {48.3538, 11.7861},    // Munich
	"ZRH": {47.4581, 8.5555},     // Zurich
	"NCE": {43.6584, 7.2159},     // Nice
	"LBG": {48.9695, 2.4412},     // Paris Le Bourget
	"AMS": {52.3105, 4.7683},     // Amsterdam
	"WAL": {37.9402, -75.4666},   // Wallops, Virginia
	"DAL": {32.8471, -96.8518},   // Dallas Love Field
	"NCO": {41.5971, -71.4121},   // Quonset State, Rhode Island
	"YYT": {47.6186, -52.7519},   // St. John's, Canada
	"CIA": {41.7999, 12.5949},    // Rome Ciampino
	"IOR": {53.1067, -9.6536},    // Inishmore, Ireland
	"HPN": {41.0670, -73.7076},   // Westchester, New York
	"GJT": {39.1224, -108.5270},  // Grand Junction, Colorado
	"ACY": {39.4576, -74.5772},   // Atlantic City, New Jersey
	"HIO": {45.5404, -122.9490},  // Hillsboro, Oregon
	"MSO": {46.9163, -114.0906},  // Missoula, Montana
	"LAS": {36.0840, -115.1537},  // Las Vegas
	"TEB": {40.8501, -74.0608},   // Teterboro, New Jersey
	"NAS": {25.0390, -77.4662},   // Nassau, Bahamas
	"LAX": {33.9416, -118.4085},  // Los Angeles
	"BFI": {47.5290, -122.3010},  // Seattle Boeing Field
	"ISM": {28.2898, -81.4371},   // Kissimmee, Florida
	"SXM": {18.0410, -63.1089},   // Sint Maarten
	"ATL": {33.6407, -84.4277},   // Atlanta
}

// AirportDirectory maps airport codes to coordinates. It is built once and never mutated.
type AirportDirectory struct {
	coords map[AirportCode]Coordinates
}

// NewAirportDirectory returns the built-in directory, merged with extra entries.
// Extra entries never replace a built-in code.
func NewAirportDirectory(extra map[AirportCode]Coordinates) *AirportDirectory {
	coords := make(map[AirportCode]Coordinates, len(builtinAirports)+len(extra))
	for code, pos := range extra {
		coords[code] = pos
	}

	for code, pos := range builtinAirports {
		coords[code] = pos
	}

	return &AirportDirectory{coords: coords}
}

// Lookup returns the coordinates of an airport. A miss is a normal outcome.
func (dir *AirportDirectory) Lookup(code AirportCode) (Coordinates, bool) {
	pos, found := dir.coords[code]
	return pos, found
}

func (dir *AirportDirectory) Len() int {
	return len(dir.coords)
}

// Codes returns all known codes in alphabetical order.
func (dir *AirportDirectory) Codes() []AirportCode {
	codes := make([]AirportCode, 0, len(dir.coords))
	for code := range dir.coords {
		codes = append(codes, code)
	}

	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	return codes
}

// LoadAirportsCSV reads additional airports from a CSV file with the columns code, lat, lon
// and an optional name.
func LoadAirportsCSV(filePath string) (map[AirportCode]Coordinates, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("LoadAirportsCSV: failed to open file: %w", err)
	}

	return readAirportsCSV(file, filePath)
}

// readAirportsCSV parses and closes rc. A close error is returned when parsing succeeded.
func readAirportsCSV(rc io.ReadCloser, name string) (airports map[AirportCode]Coordinates, err error) {
	defer func() {
		if closeErr := rc.Close(); closeErr != nil && err == nil {
			airports = nil
			err = fmt.Errorf("LoadAirportsCSV: error while closing file %s: %w", name, closeErr)
		}
	}()

	airports, err = parseAirportsCSV(rc)
	if err != nil {
		return nil, fmt.Errorf("LoadAirportsCSV: %w: %w", errParseCSV, err)
	}

	return airports, nil
}

func parseAirportsCSV(r io.Reader) (map[AirportCode]Coordinates, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, headerErr := reader.Read()
	if headerErr != nil {
		return nil, fmt.Errorf("parseAirportsCSV: failed to read header: %w", headerErr)
	}

	if len(headers) < airportHeaderMinLen {
		return nil, fmt.Errorf("parseAirportsCSV: %w", errHeaderLen)
	}

	airports := make(map[AirportCode]Coordinates)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("parseAirportsCSV: failed to read record: %w", err)
		}

		if len(record) < airportHeaderMinLen {
			continue
		}

		code := AirportCode(strings.ToUpper(strings.TrimSpace(record[0])))
		if code == "" {
			continue
		}

		lat, latErr := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		lon, lonErr := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		if latErr != nil || lonErr != nil {
			return nil, fmt.Errorf("parseAirportsCSV: %w for %s", errParseCoordinate, code)
		}

		airports[code] = NewCoordinates(lat, lon)
	}

	return airports, nil
}
