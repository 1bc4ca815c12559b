package internal

import (
	"github.com/umahmood/haversine"
)

// Coordinates is a position in decimal degrees.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// NewCoordinates returns a Coordinates struct based on parameters passed.
func NewCoordinates(latitude, longitude float64) Coordinates {
	return Coordinates{
		Latitude:  latitude,
		Longitude: longitude,
	}
}

func (c Coordinates) toCoord() haversine.Coord {
	return haversine.Coord{Lat: c.Latitude, Lon: c.Longitude}
}

// GreatCircleKm returns the haversine distance between p and q in kilometers.
func GreatCircleKm(p, q Coordinates) float64 {
	_, km := haversine.Distance(p.toCoord(), q.toCoord())
	return km
}
