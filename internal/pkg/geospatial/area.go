package geospatial

import (
	"github.com/TomiHiltunen/geohash-golang"
	"github.com/golang/geo/s2"

	"github.com/samirrijal/pluscodes/internal/core/domain"
)

// MaxGeohashPrecision is the length of the hashes geohash.Encode produces.
const MaxGeohashPrecision = 12

// Geohash returns the geohash of a point truncated to precision characters.
// A geohash prefix names the cell containing the longer hash.
func Geohash(lat, lng float64, precision int) string {
	gh := geohash.Encode(lat, lng)
	if precision <= 0 || precision >= len(gh) {
		return gh
	}
	return gh[:precision]
}

// GeohashCenter decodes a geohash and returns the center of its cell.
func GeohashCenter(gh string) domain.GeoPoint {
	c := geohash.Decode(gh).Center()
	return domain.GeoPoint{Lat: c.Lat(), Lon: c.Lng()}
}

// GeohashPrecisionFor picks a geohash length whose cell is roughly as
// large as a plus code of the given length.
func GeohashPrecisionFor(codeLength int) int {
	switch {
	case codeLength <= 2:
		return 2
	case codeLength <= 4:
		return 3
	case codeLength <= 6:
		return 5
	case codeLength <= 8:
		return 6
	case codeLength <= 10:
		return 8
	case codeLength <= 12:
		return 10
	default:
		return MaxGeohashPrecision
	}
}

// AreaSize returns the width and height in meters of a rectangle, measured
// along its center parallel and meridian on the unit sphere.
func AreaSize(b domain.Bounds) domain.Size {
	midLat := (b.MinLat + b.MaxLat) / 2
	midLon := (b.MinLon + b.MaxLon) / 2

	west := s2.LatLngFromDegrees(midLat, b.MinLon)
	east := s2.LatLngFromDegrees(midLat, b.MaxLon)
	south := s2.LatLngFromDegrees(b.MinLat, midLon)
	north := s2.LatLngFromDegrees(b.MaxLat, midLon)

	return domain.Size{
		Width:  west.Distance(east).Radians() * earthRadiusM,
		Height: south.Distance(north).Radians() * earthRadiusM,
	}
}
