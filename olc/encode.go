package olc

import (
	"fmt"
	"math"
	"strings"
)

// Encode returns the Plus Code of the given length for a coordinate.
//
// Latitude is clipped to [-90, 90] and longitude wrapped into [-180, 180).
// codeLength must be at least 2 and, below 10, even; lengths above 15 are
// clamped to 15.
func Encode(lat, lng float64, codeLength int) (string, error) {
	if codeLength < MinCodeLength || (codeLength < pairCodeLen && codeLength%2 == 1) {
		return "", fmt.Errorf("%w: code length %d", ErrInvalidArgument, codeLength)
	}
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return "", fmt.Errorf("%w: coordinate (%v, %v)", ErrInvalidArgument, lat, lng)
	}
	if codeLength > MaxCodeLength {
		codeLength = MaxCodeLength
	}

	lat = clipLatitude(lat)
	lng = normalizeLongitude(lng)
	// 90 would encode to a digit one past the top row.
	if lat == maxLat {
		lat -= computeLatitudePrecision(codeLength)
	}

	latVal := int64(math.Round((lat+maxLat)*finalLatPrecision*1e6) / 1e6)
	lngVal := int64(math.Round((lng+maxLng)*finalLngPrecision*1e6) / 1e6)

	var digits [MaxCodeLength]byte
	if codeLength > pairCodeLen {
		for i := MaxCodeLength - 1; i >= pairCodeLen; i-- {
			row := latVal % gridRows
			col := lngVal % gridCols
			digits[i] = Alphabet[row*gridCols+col]
			latVal /= gridRows
			lngVal /= gridCols
		}
	} else {
		latVal /= gridRows * gridRows * gridRows * gridRows * gridRows
		lngVal /= gridCols * gridCols * gridCols * gridCols * gridCols
	}
	for i := pairCodeLen - 1; i > 0; i -= 2 {
		digits[i] = Alphabet[lngVal%int64(encBase)]
		digits[i-1] = Alphabet[latVal%int64(encBase)]
		latVal /= int64(encBase)
		lngVal /= int64(encBase)
	}

	var b strings.Builder
	b.Grow(MaxCodeLength + 1)
	if codeLength >= sepPos {
		b.Write(digits[:sepPos])
		b.WriteByte(Separator)
		b.Write(digits[sepPos:codeLength])
		return b.String(), nil
	}
	b.Write(digits[:codeLength])
	for i := codeLength; i < sepPos; i++ {
		b.WriteByte(Padding)
	}
	b.WriteByte(Separator)
	return b.String(), nil
}

// MustEncode is like Encode but panics on an invalid code length.
func MustEncode(lat, lng float64, codeLength int) string {
	code, err := Encode(lat, lng, codeLength)
	if err != nil {
		panic(err)
	}
	return code
}
