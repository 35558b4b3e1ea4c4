package geocoding

import (
	"regexp"
	"strconv"
)

// Coordinate patterns supported in shared Google Maps links. The "@lat,lng"
// segment that map URLs embed is tried first; a bare "lat,lng" pair is the
// fallback.
var (
	atPairPattern   = regexp.MustCompile(`@(-?\d+\.\d+),(-?\d+\.\d+)`)
	barePairPattern = regexp.MustCompile(`(-?\d+\.\d+),(-?\d+\.\d+)`)
)

// ExtractCoordinates pulls a latitude/longitude pair out of a Google Maps
// link. The second return value is false when the link contains no
// recognizable pair.
func ExtractCoordinates(mapsLink string) (lat, lng float64, ok bool) {
	match := atPairPattern.FindStringSubmatch(mapsLink)
	if match == nil {
		match = barePairPattern.FindStringSubmatch(mapsLink)
	}
	if match == nil {
		return 0, 0, false
	}

	lat, errLat := strconv.ParseFloat(match[1], 64)
	lng, errLng := strconv.ParseFloat(match[2], 64)
	if errLat != nil || errLng != nil {
		return 0, 0, false
	}
	return lat, lng, true
}
