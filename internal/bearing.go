package internal

import (
	"math"
)

const compassSector = 360.0 / 32

var compassPoints = [32]string{ //nolint: gochecknoglobals // fixed lookup table
	"north", "north by east", "north-northeast", "northeast by north",
	"northeast", "northeast by east", "east-northeast", "east by north",
	"east", "east by south", "east-southeast", "southeast by east",
	"southeast", "southeast by south", "south-southeast", "south by east",
	"south", "south by west", "south-southwest", "southwest by south",
	"southwest", "southwest by west", "west-southwest", "west by south",
	"west", "west by north", "west-northwest", "northwest by west",
	"northwest", "northwest by north", "north-northwest", "north by west",
}

// CompassDirection names the initial heading from origin to destination on a 32-point compass.
func CompassDirection(origin, destination Coordinates) string {
	bearing := calculateBearing(origin, destination)

	// Sectors are centered on their heading, so shift by half a sector before bucketing.
	idx := int(math.Floor((bearing+compassSector/2)/compassSector)) % len(compassPoints)

	return compassPoints[idx]
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0 //nolint: mnd // readability
}

func toDegrees(rad float64) float64 {
	return rad * 180.0 / math.Pi //nolint: mnd // readability
}

// calculateBearing calculates the initial bearing (forward azimuth) from one point to another,
// normalized to [0, 360).
func calculateBearing(from, to Coordinates) float64 {
	fLat := toRadians(from.Latitude)
	tLat := toRadians(to.Latitude)
	dLon := toRadians(to.Longitude - from.Longitude)

	y := math.Sin(dLon) * math.Cos(tLat)
	x := math.Cos(fLat)*math.Sin(tLat) - math.Sin(fLat)*math.Cos(tLat)*math.Cos(dLon)

	// Atan2 yields -180..180
	return math.Mod(toDegrees(math.Atan2(y, x))+360.0, 360.0) //nolint: mnd // readability
}
