package olc

import (
	"fmt"
	"strings"
)

// CheckValid reports why code is not a valid code, or nil if it is.
func CheckValid(code string) error {
	if code == "" {
		return fmt.Errorf("%w: empty code", ErrInvalidCode)
	}

	sep := strings.IndexByte(code, Separator)
	if sep < 0 {
		return fmt.Errorf("%w: %q has no separator", ErrInvalidCode, code)
	}
	if strings.LastIndexByte(code, Separator) != sep {
		return fmt.Errorf("%w: %q has more than one separator", ErrInvalidCode, code)
	}
	if len(code) == 1 {
		return fmt.Errorf("%w: separator alone is not a code", ErrInvalidCode)
	}
	if sep > sepPos || sep%2 == 1 {
		return fmt.Errorf("%w: %q has the separator at position %d", ErrInvalidCode, code, sep)
	}

	if pad := strings.IndexByte(code, Padding); pad >= 0 {
		if sep < sepPos {
			return fmt.Errorf("%w: %q is short and padded", ErrInvalidCode, code)
		}
		if pad == 0 {
			return fmt.Errorf("%w: %q starts with padding", ErrInvalidCode, code)
		}
		end := pad
		for end < len(code) && code[end] == Padding {
			end++
		}
		n := end - pad
		if end != sep || n%2 == 1 || n > sepPos-2 {
			return fmt.Errorf("%w: %q has malformed padding", ErrInvalidCode, code)
		}
		if sep != len(code)-1 {
			return fmt.Errorf("%w: %q has digits after the separator of a padded code", ErrInvalidCode, code)
		}
	}

	if len(code)-sep-1 == 1 {
		return fmt.Errorf("%w: %q has a single digit after the separator", ErrInvalidCode, code)
	}

	for i := 0; i < len(code); i++ {
		c := code[i]
		if c == Separator || c == Padding {
			continue
		}
		if digitValue(c) < 0 {
			return fmt.Errorf("%w: %q contains %q", ErrInvalidCode, code, c)
		}
	}
	return nil
}

// CheckShort returns nil if code is a valid short code.
func CheckShort(code string) error {
	if err := CheckValid(code); err != nil {
		return err
	}
	if strings.IndexByte(code, Separator) >= sepPos {
		return fmt.Errorf("%w: %q is not a short code", ErrInvalidCode, code)
	}
	return nil
}

// CheckFull returns nil if code is a valid full code.
func CheckFull(code string) error {
	if err := CheckValid(code); err != nil {
		return err
	}
	if strings.IndexByte(code, Separator) < sepPos {
		return fmt.Errorf("%w: %q is a short code", ErrInvalidCode, code)
	}
	// The first pair digit alone can overshoot the coordinate range.
	if digitValue(code[0])*encBase >= 2*maxLat {
		return fmt.Errorf("%w: %q latitude out of range", ErrInvalidCode, code)
	}
	if len(code) > 1 {
		if v := digitValue(code[1]); v >= 0 && v*encBase >= 2*maxLng {
			return fmt.Errorf("%w: %q longitude out of range", ErrInvalidCode, code)
		}
	}
	return nil
}

// IsValid reports whether code is a syntactically valid short or full code.
func IsValid(code string) bool { return CheckValid(code) == nil }

// IsShort reports whether code is a valid short code.
func IsShort(code string) bool { return CheckShort(code) == nil }

// IsFull reports whether code is a valid full code.
func IsFull(code string) bool { return CheckFull(code) == nil }
