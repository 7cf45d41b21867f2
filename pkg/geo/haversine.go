// Package geo implements the distance functions the router can be
// parameterized over.
package geo

import (
	"math"

	"github.com/azybler/routegraph/pkg/graph"
)

const earthRadiusKm = 6_371.0

// Haversine returns the great-circle distance in kilometers between two
// coordinates. This is the router's default distance_measurement.
func Haversine(a, b graph.Coordinate) float64 {
	lat1r := a.Lat * math.Pi / 180
	lat2r := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// Equirectangular returns an approximate distance in kilometers. ~3x faster
// than Haversine and accurate to well under 1% at city scale; unsuitable
// near the poles or for edges spanning a large fraction of the globe.
func Equirectangular(a, b graph.Coordinate) float64 {
	x := (b.Lng - a.Lng) * math.Cos((a.Lat+b.Lat)/2*math.Pi/180) * math.Pi / 180
	y := (b.Lat - a.Lat) * math.Pi / 180
	return math.Sqrt(x*x+y*y) * earthRadiusKm
}
