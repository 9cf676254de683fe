// Package olc implements Open Location Codes ("Plus Codes"): encoding a
// latitude/longitude into a short alphanumeric area code, decoding it back to
// a bounding rectangle, and shortening/recovering codes relative to a nearby
// reference point.
//
// Every function is a pure transform of its inputs and is safe for
// concurrent use.
package olc

import (
	"errors"
	"math"
)

const (
	// Separator is placed after the eighth digit of a full code.
	Separator = '+'
	// Padding fills pair digits dropped from codes shorter than eight digits.
	Padding = '0'
	// Alphabet lists the twenty digit symbols in value order.
	Alphabet = "23456789CFGHJMPQRVWX"

	// DefaultCodeLength gives a ~14m x 14m area.
	DefaultCodeLength = 10
	// MaxCodeLength is the longest code with meaningful precision.
	MaxCodeLength = 15
	// MinCodeLength is the shortest code Encode will produce.
	MinCodeLength = 2
)

const (
	sepPos  = 8
	encBase = len(Alphabet)

	maxLat = 90
	maxLng = 180

	pairCodeLen = 10
	gridCodeLen = MaxCodeLength - pairCodeLen
	gridCols    = 4
	gridRows    = 5

	minTrimmableCodeLen = 6

	// pairFirstPlaceValue is the value of the first pair digit, 20^4.
	pairFirstPlaceValue = 160000
	// pairPrecision turns pair-section degrees into integers, 20^3.
	pairPrecision = 8000
	// gridLatFirstPlaceValue is 5^4, gridLngFirstPlaceValue is 4^4.
	gridLatFirstPlaceValue = 625
	gridLngFirstPlaceValue = 256
	// finalLatPrecision is pairPrecision * 5^5.
	finalLatPrecision = pairPrecision * 3125
	// finalLngPrecision is pairPrecision * 4^5.
	finalLngPrecision = pairPrecision * 1024
)

// pairResolutions holds the cell size in degrees after each pair digit.
var pairResolutions = [...]float64{20.0, 1.0, 0.05, 0.0025, 0.000125}

var (
	// ErrInvalidArgument is returned for an unusable code length or coordinate.
	ErrInvalidArgument = errors.New("olc: invalid argument")
	// ErrInvalidCode is returned when a code is malformed or of the wrong kind.
	ErrInvalidCode = errors.New("olc: invalid code")
)

// digitValue maps a code byte to its alphabet index, -1 if not a digit.
func digitValue(c byte) int {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	for i := 0; i < encBase; i++ {
		if Alphabet[i] == c {
			return i
		}
	}
	return -1
}

func clipLatitude(lat float64) float64 {
	return math.Min(maxLat, math.Max(-maxLat, lat))
}

func normalizeLongitude(lng float64) float64 {
	if lng >= -maxLng && lng < maxLng {
		return lng
	}
	lng = math.Mod(lng, 2*maxLng)
	for lng < -maxLng {
		lng += 2 * maxLng
	}
	for lng >= maxLng {
		lng -= 2 * maxLng
	}
	return lng
}

// computeLatitudePrecision returns the height in degrees of a code of the
// given length.
func computeLatitudePrecision(codeLength int) float64 {
	if codeLength <= pairCodeLen {
		return math.Pow(float64(encBase), float64(codeLength/-2+2))
	}
	return math.Pow(float64(encBase), -3) / math.Pow(gridRows, float64(codeLength-pairCodeLen))
}
