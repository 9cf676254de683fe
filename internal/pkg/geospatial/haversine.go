package geospatial

import "math"

// earthRadiusM is the mean Earth radius used for reference distances.
const earthRadiusM = 6371000.0

// Haversine returns the great-circle distance in meters between two points
// given in degrees. The code service uses it for the distance from a shorten
// or recover reference point to the center of the resulting code.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	sinLat, sinLng := math.Sin(dLat/2), math.Sin(dLng/2)
	a := sinLat*sinLat + math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*sinLng*sinLng
	return 2 * earthRadiusM * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
