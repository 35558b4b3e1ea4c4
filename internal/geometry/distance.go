package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// PointFromLatLng builds an orb point from a latitude/longitude pair.
// orb points are (x, y) = (lng, lat).
func PointFromLatLng(lat, lng float64) orb.Point {
	return orb.Point{lng, lat}
}

// DistanceMeters returns the great-circle distance between two points,
// rounded to whole meters.
func DistanceMeters(a, b orb.Point) uint {
	return uint(math.Round(geo.Distance(a, b)))
}

// WalkingTimeMinutes estimates walking time for a distance at roughly
// 80 meters per minute, rounded up, minimum one minute for any non-zero
// distance.
func WalkingTimeMinutes(distanceMeters uint) uint {
	if distanceMeters == 0 {
		return 0
	}
	minutes := uint(math.Ceil(float64(distanceMeters) / 80.0))
	if minutes == 0 {
		minutes = 1
	}
	return minutes
}
