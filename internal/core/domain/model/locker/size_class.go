package locker

import (
	"fmt"

	"lockerhub/internal/pkg/errs"
)

// SizeClass represents the physical size category of a cell.
type SizeClass int

const (
	// UnknownSizeClass represents an invalid or undefined size class.
	UnknownSizeClass SizeClass = iota

	Small
	Medium
	Large
)

func getSizeClassStrings() map[SizeClass]string {
	return map[SizeClass]string{
		UnknownSizeClass: "Unknown",
		Small:            "Small",
		Medium:           "Medium",
		Large:            "Large",
	}
}

func getValidSizeClassStrings() map[SizeClass]string {
	//nolint:exhaustive // UnknownSizeClass is intentionally excluded as it's invalid
	return map[SizeClass]string{
		Small:  "Small",
		Medium: "Medium",
		Large:  "Large",
	}
}

// SizeClassFromString parses a size class name. Parsing is exact; unknown
// names yield an error.
func SizeClassFromString(s string) (SizeClass, error) {
	for size, name := range getValidSizeClassStrings() {
		if name == s {
			return size, nil
		}
	}
	return UnknownSizeClass, errs.NewValueIsInvalidErrorWithCause(
		"size class is invalid", fmt.Errorf("%q is not a known size class", s))
}

// Validate checks if the SizeClass value is valid.
func (s SizeClass) Validate() error {
	if _, ok := getValidSizeClassStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"size class is invalid", fmt.Errorf("%d is not a valid size class", s))
	}
	return nil
}

// String returns the human-readable name of the size class.
// It implements fmt.Stringer and is safe on any SizeClass value.
func (s SizeClass) String() string {
	if str, ok := getSizeClassStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
