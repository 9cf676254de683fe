package olc

import (
	"fmt"
	"math"
	"strings"
)

// Shorten removes as many leading digits from a full code as the reference
// point allows while keeping the code recoverable with RecoverNearest.
//
// The reference must be within roughly 0.3 of a cell at the trimmed depth
// of the code's center; otherwise the code is returned unchanged.
func Shorten(code string, lat, lng float64) (string, error) {
	if err := CheckFull(code); err != nil {
		return "", err
	}
	if strings.IndexByte(code, Padding) >= 0 {
		return "", fmt.Errorf("%w: cannot shorten padded code %q", ErrInvalidCode, code)
	}
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return "", fmt.Errorf("%w: reference (%v, %v)", ErrInvalidArgument, lat, lng)
	}
	code = strings.ToUpper(code)

	area, err := Decode(code)
	if err != nil {
		return "", err
	}
	if area.CodeLength < minTrimmableCodeLen {
		return "", fmt.Errorf("%w: %q is too short to shorten", ErrInvalidCode, code)
	}

	lat = clipLatitude(lat)
	lng = normalizeLongitude(lng)
	rng := math.Max(math.Abs(area.LatCenter()-lat), math.Abs(area.LngCenter()-lng))

	// Try the most aggressive trim first. 0.3 rather than 0.5 leaves a
	// margin against recovering into the neighbouring cell.
	for i := len(pairResolutions) - 2; i >= 1; i-- {
		if rng < pairResolutions[i]*0.3 {
			return code[(i+1)*2:], nil
		}
	}
	return code, nil
}

// RecoverNearest returns the full code nearest to the reference point that
// matches a short code. Full codes are returned upper-cased.
func RecoverNearest(code string, lat, lng float64) (string, error) {
	if err := CheckShort(code); err != nil {
		if CheckFull(code) == nil {
			return strings.ToUpper(code), nil
		}
		return "", err
	}
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return "", fmt.Errorf("%w: reference (%v, %v)", ErrInvalidArgument, lat, lng)
	}

	lat = clipLatitude(lat)
	lng = normalizeLongitude(lng)
	code = strings.ToUpper(code)

	paddingLength := sepPos - strings.IndexByte(code, Separator)
	resolution := math.Pow(float64(encBase), float64(2-paddingLength/2))
	half := resolution / 2

	ref, err := Encode(lat, lng, DefaultCodeLength)
	if err != nil {
		return "", err
	}
	area, err := Decode(ref[:paddingLength] + code)
	if err != nil {
		return "", err
	}

	// The cell sharing the reference's prefix may not be the closest one.
	latCenter, lngCenter := area.Center()
	if lat+half < latCenter && latCenter-resolution >= -maxLat {
		latCenter -= resolution
	} else if lat-half > latCenter && latCenter+resolution <= maxLat {
		latCenter += resolution
	}
	if lng+half < lngCenter {
		lngCenter -= resolution
	} else if lng-half > lngCenter {
		lngCenter += resolution
	}

	return Encode(latCenter, lngCenter, area.CodeLength)
}
