package olc

import (
	"math"
	"strconv"
	"strings"
)

// CodeArea is the rectangle a code represents. The lower edges are
// inclusive and the upper edges exclusive.
type CodeArea struct {
	LatLo, LngLo float64
	LatHi, LngHi float64
	CodeLength   int
}

// LatCenter returns the latitude of the area's center, capped at 90.
func (a CodeArea) LatCenter() float64 {
	return math.Min(a.LatLo+(a.LatHi-a.LatLo)/2, maxLat)
}

// LngCenter returns the longitude of the area's center, capped at 180.
func (a CodeArea) LngCenter() float64 {
	return math.Min(a.LngLo+(a.LngHi-a.LngLo)/2, maxLng)
}

// Center returns LatCenter and LngCenter.
func (a CodeArea) Center() (lat, lng float64) {
	return a.LatCenter(), a.LngCenter()
}

// Contains reports whether the coordinate lies inside the area.
func (a CodeArea) Contains(lat, lng float64) bool {
	return a.LatLo <= lat && lat < a.LatHi && a.LngLo <= lng && lng < a.LngHi
}

// Decode returns the area represented by a full code.
func Decode(code string) (CodeArea, error) {
	if err := CheckFull(code); err != nil {
		return CodeArea{}, err
	}

	code = strings.ToUpper(stripCode(code))
	n := len(code)

	normalLat := int64(-maxLat * pairPrecision)
	normalLng := int64(-maxLng * pairPrecision)
	var gridLat, gridLng int64

	digits := n
	if digits > pairCodeLen {
		digits = pairCodeLen
	}
	pv := int64(pairFirstPlaceValue)
	for i := 0; i < digits; i += 2 {
		normalLat += int64(digitValue(code[i])) * pv
		normalLng += int64(digitValue(code[i+1])) * pv
		if i < digits-2 {
			pv /= int64(encBase)
		}
	}
	latPrecision := float64(pv) / pairPrecision
	lngPrecision := float64(pv) / pairPrecision

	if n > pairCodeLen {
		rowPV := int64(gridLatFirstPlaceValue)
		colPV := int64(gridLngFirstPlaceValue)
		digits = n
		if digits > MaxCodeLength {
			digits = MaxCodeLength
		}
		for i := pairCodeLen; i < digits; i++ {
			d := int64(digitValue(code[i]))
			gridLat += d / gridCols * rowPV
			gridLng += d % gridCols * colPV
			if i < digits-1 {
				rowPV /= gridRows
				colPV /= gridCols
			}
		}
		latPrecision = float64(rowPV) / finalLatPrecision
		lngPrecision = float64(colPV) / finalLngPrecision
	}

	lat := float64(normalLat)/pairPrecision + float64(gridLat)/finalLatPrecision
	lng := float64(normalLng)/pairPrecision + float64(gridLng)/finalLngPrecision

	length := n
	if length > MaxCodeLength {
		length = MaxCodeLength
	}
	return CodeArea{
		LatLo:      roundDecimals(lat, 14),
		LngLo:      roundDecimals(lng, 14),
		LatHi:      roundDecimals(lat+latPrecision, 14),
		LngHi:      roundDecimals(lng+lngPrecision, 14),
		CodeLength: length,
	}, nil
}

// stripCode removes the separator and padding, leaving significant digits.
func stripCode(code string) string {
	return strings.Map(func(r rune) rune {
		if r == Separator || r == Padding {
			return -1
		}
		return r
	}, code)
}

// roundDecimals rounds x to n decimal places, cancelling the float noise
// left by the fixed-point accumulation.
func roundDecimals(x float64, n int) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', n, 64), 64)
	if err != nil {
		return x
	}
	return v
}
