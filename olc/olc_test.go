package olc_test

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/samirrijal/pluscodes/olc"
)

func TestValidity(t *testing.T) {
	tests := []struct {
		code               string
		valid, short, full bool
	}{
		{"8FWC2345+G6", true, false, true},
		{"8FWC2345+G6G", true, false, true},
		{"8fwc2345+", true, false, true},
		{"8FWCX400+", true, false, true},
		{"WC2345+G6g", true, true, false},
		{"2345+G6", true, true, false},
		{"45+G6", true, true, false},
		{"+G6", true, true, false},
		{"G+", false, false, false},
		{"+", false, false, false},
		{"", false, false, false},
		{"8FWC2345+G", false, false, false},
		{"8FWC2_45+G6", false, false, false},
		{"8FWC2η45+G6", false, false, false},
		{"8FWC2345+G6+", false, false, false},
		{"8FWC2345G6+", false, false, false},
		{"8FWC2300+G6", false, false, false},
		{"WC2300+G6g", false, false, false},
		{"WC2345+G", false, false, false},
		{"WC2300+", false, false, false},
		{"08FWC234+", false, false, false},
		{"8F000000+", true, false, true},
		{"80000000+", false, false, false},
		{"8FW00C00+", false, false, false},
		{"8FWC2345", false, false, false},
		// First digit overshoots latitude, second overshoots longitude.
		{"F2000000+", true, false, false},
		{"CW000000+", true, false, false},
		{"CV000000+", true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := olc.IsValid(tt.code); got != tt.valid {
				t.Errorf("IsValid(%q) = %v, want %v", tt.code, got, tt.valid)
			}
			if got := olc.IsShort(tt.code); got != tt.short {
				t.Errorf("IsShort(%q) = %v, want %v", tt.code, got, tt.short)
			}
			if got := olc.IsFull(tt.code); got != tt.full {
				t.Errorf("IsFull(%q) = %v, want %v", tt.code, got, tt.full)
			}
		})
	}
}

func TestValidity_CaseInsensitive(t *testing.T) {
	for _, code := range []string{"8FVC9G8F+6X", "9G8F+6X", "8FVC0000+", "7FG49QCJ+2VXGJ", "CF000000+"} {
		lower := strings.ToLower(code)
		if olc.IsValid(lower) != olc.IsValid(code) ||
			olc.IsShort(lower) != olc.IsShort(code) ||
			olc.IsFull(lower) != olc.IsFull(code) {
			t.Errorf("predicates differ between %q and %q", code, lower)
		}
	}
}

func TestCheckErrorsWrapInvalidCode(t *testing.T) {
	for _, code := range []string{"", "+", "8FWC2345G6+", "9G8F+6X"} {
		if err := olc.CheckFull(code); !errors.Is(err, olc.ErrInvalidCode) {
			t.Errorf("CheckFull(%q) = %v, want ErrInvalidCode", code, err)
		}
	}
	if err := olc.CheckShort("8FVC9G8F+6X"); !errors.Is(err, olc.ErrInvalidCode) {
		t.Errorf("CheckShort on a full code = %v, want ErrInvalidCode", err)
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		lat, lng float64
		length   int
		want     string
	}{
		{47.365590, 8.524997, 10, "8FVC9G8F+6X"},
		{47.365590, 8.524997, 2, "8F000000+"},
		{47.365590, 8.524997, 4, "8FVC0000+"},
		{47.365590, 8.524997, 6, "8FVC9G00+"},
		{47.365590, 8.524997, 8, "8FVC9G8F+"},
		{47.365590, 8.524997, 11, "8FVC9G8F+6XQ"},
		{47.365590, 8.524997, 15, "8FVC9G8F+6XQQ435"},
		{47.365590, 8.524997, 20, "8FVC9G8F+6XQQ435"},
		{20.375, 2.775, 6, "7FG49Q00+"},
		{20.3700625, 2.7821875, 10, "7FG49QCJ+2V"},
		{20.3701125, 2.782234375, 11, "7FG49QCJ+2VX"},
		{20.3701135, 2.78223535156, 13, "7FG49QCJ+2VXGJ"},
		{47.0000625, 8.0000625, 10, "8FVC2222+22"},
		{-41.2730625, 174.7859375, 10, "4VCPPQGP+Q9"},
		{0.5, -179.5, 4, "62G20000+"},
		{-89.5, -179.5, 4, "22220000+"},
		{1, 1, 2, "6F000000+"},
		{-90, -180, 10, "22222222+22"},
		{37.539669125, -122.375069724, 15, "849VGJQF+VX7QR3J"},
		{-0.000001, -0.000001, 10, "6CFXXXXX+XX"},
		// Out of range coordinates are clipped and wrapped.
		{-100, 1, 2, "2F000000+"},
		{1, 181, 10, "62H32222+22"},
		{1, 180, 10, "62H22222+22"},
		{1, 540, 10, "62H22222+22"},
		{1, -540, 10, "62H22222+22"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v,%v/%d", tt.lat, tt.lng, tt.length), func(t *testing.T) {
			got, err := olc.Encode(tt.lat, tt.lng, tt.length)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Encode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncode_InvalidLength(t *testing.T) {
	for _, n := range []int{-1, 0, 1, 3, 5, 7, 9} {
		if _, err := olc.Encode(47.3, 8.5, n); !errors.Is(err, olc.ErrInvalidArgument) {
			t.Errorf("Encode(length=%d) error = %v, want ErrInvalidArgument", n, err)
		}
	}
	for _, n := range []int{2, 4, 6, 8, 10, 11, 12, 13, 14, 15} {
		if _, err := olc.Encode(47.3, 8.5, n); err != nil {
			t.Errorf("Encode(length=%d) unexpected error: %v", n, err)
		}
	}
}

func TestEncode_InvalidCoordinate(t *testing.T) {
	for _, c := range [][2]float64{{math.NaN(), 0}, {0, math.NaN()}, {0, math.Inf(1)}, {0, math.Inf(-1)}} {
		if _, err := olc.Encode(c[0], c[1], 10); !errors.Is(err, olc.ErrInvalidArgument) {
			t.Errorf("Encode(%v, %v) error = %v, want ErrInvalidArgument", c[0], c[1], err)
		}
	}
}

func TestEncode_NorthPole(t *testing.T) {
	for _, n := range []int{2, 4, 6, 8, 10, 11, 15} {
		code, err := olc.Encode(90, 45, n)
		if err != nil {
			t.Fatalf("Encode(90, 45, %d): %v", n, err)
		}
		area, err := olc.Decode(code)
		if err != nil {
			t.Fatalf("Decode(%q): %v", code, err)
		}
		if area.LatHi != 90 {
			t.Errorf("%q: LatHi = %v, want 90", code, area.LatHi)
		}
		if area.LatCenter() > 90 || area.LatLo >= 90 {
			t.Errorf("%q: area %+v does not reach the pole from below", code, area)
		}
	}
}

func TestDecode(t *testing.T) {
	area, err := olc.Decode("8FVC9G8F+6X")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if area.CodeLength != 10 {
		t.Errorf("CodeLength = %d, want 10", area.CodeLength)
	}
	lat, lng := area.Center()
	if math.Abs(lat-47.3655) > 0.000125 || math.Abs(lng-8.525) > 0.000125 {
		t.Errorf("center = (%v, %v), want ~(47.3655, 8.525)", lat, lng)
	}
	if area.LatLo != 47.3655 || area.LngLo != 8.524875 || area.LngHi != 8.525 {
		t.Errorf("unexpected bounds %+v", area)
	}
}

func TestDecode_Areas(t *testing.T) {
	tests := []struct {
		code                       string
		latLo, lngLo, latHi, lngHi float64
		length                     int
	}{
		{"8FVC0000+", 47, 8, 48, 9, 4},
		{"7FG49Q00+", 20.35, 2.75, 20.4, 2.8, 6},
		{"7FG49QCJ+2V", 20.37, 2.782125, 20.370125, 2.78225, 10},
		{"7FG49QCJ+2VX", 20.3701, 2.78221875, 20.370125, 2.78225, 11},
		{"7FG49QCJ+2VXGJ", 20.370113, 2.782234375, 20.370114, 2.782236328125, 13},
		{"62G20000+", 0, -180, 1, -179, 4},
		{"CF000000+", 70, 0, 90, 20, 2},
		{"7fg49qcj+2vxgj", 20.370113, 2.782234375, 20.370114, 2.782236328125, 13},
		// Digits past the fifteenth carry no extra precision.
		{"8FVC9G8F+6XQQ435XX", 47.36559, 8.52499694824219, 47.36559004, 8.5249970703125, 15},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			area, err := olc.Decode(tt.code)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			const eps = 1e-10
			if math.Abs(area.LatLo-tt.latLo) > eps || math.Abs(area.LngLo-tt.lngLo) > eps ||
				math.Abs(area.LatHi-tt.latHi) > eps || math.Abs(area.LngHi-tt.lngHi) > eps {
				t.Errorf("area = %+v, want [%v,%v]-[%v,%v]", area, tt.latLo, tt.lngLo, tt.latHi, tt.lngHi)
			}
			if area.CodeLength != tt.length {
				t.Errorf("CodeLength = %d, want %d", area.CodeLength, tt.length)
			}
		})
	}
}

func TestDecode_Invalid(t *testing.T) {
	for _, code := range []string{"invalid", "", "9G8F+6X", "F2000000+", "8FWC2345+G", "8FWC2300+G6"} {
		if _, err := olc.Decode(code); !errors.Is(err, olc.ErrInvalidCode) {
			t.Errorf("Decode(%q) error = %v, want ErrInvalidCode", code, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	lengths := []int{2, 4, 6, 8, 10, 11, 12, 13, 14, 15}
	for lat := -89.95; lat < 90; lat += 7.31 {
		for lng := -179.9; lng < 180; lng += 13.7 {
			for _, n := range lengths {
				code, err := olc.Encode(lat, lng, n)
				if err != nil {
					t.Fatalf("Encode(%v, %v, %d): %v", lat, lng, n, err)
				}
				if !olc.IsFull(code) {
					t.Fatalf("Encode(%v, %v, %d) = %q is not a full code", lat, lng, n, code)
				}
				area, err := olc.Decode(code)
				if err != nil {
					t.Fatalf("Decode(%q): %v", code, err)
				}
				if area.CodeLength != n {
					t.Errorf("Decode(%q).CodeLength = %d, want %d", code, area.CodeLength, n)
				}
				const eps = 1e-9
				if lat < area.LatLo-eps || lat > area.LatHi+eps || lng < area.LngLo-eps || lng > area.LngHi+eps {
					t.Errorf("Decode(%q) = %+v does not contain (%v, %v)", code, area, lat, lng)
				}
			}
		}
	}
}

func TestMonotonicPrecision(t *testing.T) {
	lengths := []int{2, 4, 6, 8, 10, 11, 12, 13, 14, 15}
	lat, lng := 51.3701125, -1.217765625
	var prev olc.CodeArea
	for i, n := range lengths {
		area, err := olc.Decode(olc.MustEncode(lat, lng, n))
		if err != nil {
			t.Fatal(err)
		}
		if i > 0 {
			const eps = 1e-9
			if area.LatLo < prev.LatLo-eps || area.LngLo < prev.LngLo-eps || area.LatHi > prev.LatHi+eps || area.LngHi > prev.LngHi+eps {
				t.Errorf("length %d area %+v escapes length %d area %+v", n, area, lengths[i-1], prev)
			}
			if area.LatHi-area.LatLo >= prev.LatHi-prev.LatLo {
				t.Errorf("length %d is not finer than length %d", n, lengths[i-1])
			}
		}
		prev = area
	}
}

func TestShorten(t *testing.T) {
	tests := []struct {
		code     string
		lat, lng float64
		want     string
	}{
		{"8FVC9G8F+6X", 47.5, 8.5, "9G8F+6X"},
		{"8fvc9g8f+6x", 47.5, 8.5, "9G8F+6X"},
		{"8FVC9G8F+6X", 47.365, 8.525, "+6X"},
		{"9C3W9QCJ+2VX", 51.3701125, -1.217765625, "+2VX"},
		{"9C3W9QCJ+2VX", 51.3708675, -1.217765625, "CJ+2VX"},
		{"9C3W9QCJ+2VX", 51.3693575, -1.217765625, "CJ+2VX"},
		{"9C3W9QCJ+2VX", 51.3701125, -1.218520625, "CJ+2VX"},
		{"9C3W9QCJ+2VX", 51.3701125, -1.217010625, "CJ+2VX"},
		{"9C3W9QCJ+2VX", 51.3852125, -1.217765625, "9QCJ+2VX"},
		{"9C3W9QCJ+2VX", 51.4701125, -1.217765625, "9QCJ+2VX"},
		{"9C3W9QCJ+2VX", 52.0701125, -1.217765625, "9C3W9QCJ+2VX"},
		{"9C3W9QCJ+2VX", 57.0701125, -1.217765625, "9C3W9QCJ+2VX"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s@%v,%v", tt.code, tt.lat, tt.lng), func(t *testing.T) {
			got, err := olc.Shorten(tt.code, tt.lat, tt.lng)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Shorten = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShorten_Invalid(t *testing.T) {
	for _, code := range []string{"9G8F+6X", "8FVC0000+", "8FV00000+", "invalid"} {
		if _, err := olc.Shorten(code, 47.5, 8.5); !errors.Is(err, olc.ErrInvalidCode) {
			t.Errorf("Shorten(%q) error = %v, want ErrInvalidCode", code, err)
		}
	}
}

func TestShorten_InvalidReference(t *testing.T) {
	refs := []struct{ lat, lng float64 }{
		{math.NaN(), 8.5},
		{47.5, math.NaN()},
		{47.5, math.Inf(1)},
		{47.5, math.Inf(-1)},
	}
	for _, r := range refs {
		if _, err := olc.Shorten("8FVC9G8F+6X", r.lat, r.lng); !errors.Is(err, olc.ErrInvalidArgument) {
			t.Errorf("Shorten at (%v, %v) error = %v, want ErrInvalidArgument", r.lat, r.lng, err)
		}
	}
}

func TestRecoverNearest(t *testing.T) {
	tests := []struct {
		code     string
		lat, lng float64
		want     string
	}{
		{"9G8F+6X", 47.4, 8.6, "8FVC9G8F+6X"},
		{"9g8f+6x", 47.4, 8.6, "8FVC9G8F+6X"},
		{"8FVC9G8F+6X", 0, 0, "8FVC9G8F+6X"},
		{"8fvc9g8f+6x", 0, 0, "8FVC9G8F+6X"},
		{"+2VX", 51.3701125, -1.217765625, "9C3W9QCJ+2VX"},
		{"CJ+2VX", 51.3708675, -1.217765625, "9C3W9QCJ+2VX"},
		{"9QCJ+2VX", 51.4701125, -1.217765625, "9C3W9QCJ+2VX"},
		// The reference prefix names the cell to the north; the nearest match is south.
		{"9G8F+6X", 47.3, 8.4, "8FVC9G8F+6X"},
		{"8F+GG", 47.4, 8.6, "8FVCCJ8F+GG"},
		// Near the poles the shift must not leave the valid range.
		{"XXXX+XX", 89.99, 179.99, "CVXXXXXX+XX"},
		// Across the antimeridian.
		{"2222+22", 0, -179.999, "62G22222+22"},
		{"C2+23", -89.95, -179.95, "222233C2+23"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s@%v,%v", tt.code, tt.lat, tt.lng), func(t *testing.T) {
			got, err := olc.RecoverNearest(tt.code, tt.lat, tt.lng)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("RecoverNearest = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecoverNearest_Invalid(t *testing.T) {
	for _, code := range []string{"", "invalid", "G+", "8FWC2300+G6", "F2000000+"} {
		if _, err := olc.RecoverNearest(code, 47.4, 8.6); !errors.Is(err, olc.ErrInvalidCode) {
			t.Errorf("RecoverNearest(%q) error = %v, want ErrInvalidCode", code, err)
		}
	}
}

func TestShortenRecoverInverse(t *testing.T) {
	for lat := -80.1; lat < 80; lat += 11.3 {
		for lng := -179.3; lng < 180; lng += 17.9 {
			code := olc.MustEncode(lat, lng, 10)
			area, err := olc.Decode(code)
			if err != nil {
				t.Fatal(err)
			}
			refLat, refLng := area.LatLo+0.0001, area.LngLo+0.0001
			short, err := olc.Shorten(code, refLat, refLng)
			if err != nil {
				t.Fatalf("Shorten(%q): %v", code, err)
			}
			got, err := olc.RecoverNearest(short, refLat, refLng)
			if err != nil {
				t.Fatalf("RecoverNearest(%q): %v", short, err)
			}
			if got != code {
				t.Errorf("RecoverNearest(Shorten(%q)) = %q (short %q)", code, got, short)
			}
		}
	}
}

func TestConcurrentUse(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			lat, lng := -60+float64(i)*1.7, -170+float64(i)*5.1
			code, err := olc.Encode(lat, lng, 11)
			if err != nil {
				errs <- err
				return
			}
			short, err := olc.Shorten(code, lat, lng)
			if err != nil {
				errs <- err
				return
			}
			got, err := olc.RecoverNearest(short, lat, lng)
			if err != nil {
				errs <- err
				return
			}
			if got != code {
				errs <- fmt.Errorf("goroutine %d: got %q, want %q", i, got, code)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
