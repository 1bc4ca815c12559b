package internal

import (
	"github.com/micutio/jettrack/pkg/logger"
)

// BuildStats counts why normalized rows did not make it into the flight table.
type BuildStats struct {
	Rows                  int
	BadDate               int
	BadDistance           int
	UnresolvedOrigin      int
	UnresolvedDestination int
	Unresolved            int // rows dropped for an unknown airport on either side
	Kept                  int
}

// Dropped is the number of rows excluded from the table.
func (s BuildStats) Dropped() int {
	return s.Rows - s.Kept
}

// TableBuilder turns normalized rows into flight records resolved against the directory.
type TableBuilder struct {
	directory *AirportDirectory
	log       *logger.Logger
}

func NewTableBuilder(directory *AirportDirectory, log *logger.Logger) *TableBuilder {
	if log == nil {
		log = logger.Nop()
	}

	return &TableBuilder{directory: directory, log: log.Named("builder")}
}

// Build returns the resolvable records in input order. Rows with an unparseable date or
// distance, or with an endpoint missing from the directory, are dropped and counted.
func (b *TableBuilder) Build(rows []Row) ([]FlightRecord, BuildStats) {
	stats := BuildStats{Rows: len(rows)}
	records := make([]FlightRecord, 0, len(rows))

	for i := range rows {
		record, ok := b.buildRecord(&rows[i], &stats)
		if !ok {
			continue
		}

		records = append(records, record)
	}

	stats.Kept = len(records)

	return records, stats
}

func (b *TableBuilder) buildRecord(row *Row, stats *BuildStats) (FlightRecord, bool) {
	date, dateOk := ParseFlightDate(row.Date())
	if !dateOk {
		stats.BadDate++
		b.log.Debug("dropping row with unparseable date", logger.String("date", row.Date()))
		return FlightRecord{}, false
	}

	originPos, originCode, originOk := b.resolve(row.Origin())
	destPos, destCode, destOk := b.resolve(row.Destination())

	if !originOk {
		stats.UnresolvedOrigin++
	}

	if !destOk {
		stats.UnresolvedDestination++
	}

	if !originOk || !destOk {
		stats.Unresolved++
		b.log.Debug("dropping row with unresolved airport",
			logger.String("from", row.Origin()),
			logger.String("to", row.Destination()))
		return FlightRecord{}, false
	}

	miles, milesOk := parseMiles(row.Distance())
	if !milesOk {
		stats.BadDistance++
		b.log.Debug("dropping row with unparseable distance", logger.String("distance", row.Distance()))
		return FlightRecord{}, false
	}

	return FlightRecord{
		Date:            date,
		Origin:          row.Origin(),
		Destination:     row.Destination(),
		OriginCode:      originCode,
		DestinationCode: destCode,
		OriginPos:       originPos,
		DestinationPos:  destPos,
		DistanceMiles:   miles,
		DistanceKm:      miles * MilesToKm,
		GreatCircleKm:   GreatCircleKm(originPos, destPos),
		Direction:       CompassDirection(originPos, destPos),
		Extra:           row.Extra(),
		RouteCount:      0,
		Tier:            TierSingle,
	}, true
}

func (b *TableBuilder) resolve(location string) (Coordinates, AirportCode, bool) {
	code, found := extractCode(location)
	if !found {
		return Coordinates{}, "", false
	}

	pos, known := b.directory.Lookup(code)

	return pos, code, known
}
