package parcel

import (
	"fmt"

	"lockerhub/internal/pkg/errs"
)

// Status represents the lifecycle state of a parcel.
// It implements a state machine with defined transitions; every transition
// has a derived effect on the bound cell, applied by the Lifecycle
// Synchronizer in the same transaction.
//
// State transitions:
//
//	Created ──> InLocker ──> Delivered
//
// Created parcels are registered but not yet placed; InLocker parcels
// occupy exactly one cell; Delivered is the terminal state after
// collection. Status is a value object that validates transitions and
// provides string representations for persistence and display.
type Status int

const (
	// UnknownStatus represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	UnknownStatus Status = iota

	// Created is the initial status when a parcel is registered.
	// Parcels in this status have no cell bound.
	Created

	// InLocker indicates the parcel has been deposited into a cell.
	InLocker

	// Delivered indicates the parcel has been collected by its recipient.
	// This is a terminal state with no further transitions allowed.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "Unknown",
		Created:       "Created",
		InLocker:      "InLocker",
		Delivered:     "Delivered",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // UnknownStatus is intentionally excluded as it's invalid
	return map[Status]string{
		Created:   "Created",
		InLocker:  "InLocker",
		Delivered: "Delivered",
	}
}

// StatusFromString parses a status name as received at the API boundary.
// Any value outside the known set is rejected.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid", fmt.Errorf("%q is not a known parcel status", s))
}

// Validate checks if the Status value is valid.
// Valid statuses are: Created, InLocker, Delivered.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// It implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status is terminal: no further cell
// binding is expected after it.
func (s Status) IsTerminal() bool {
	return s == Delivered
}

// ValidateCanHaveCell validates the consistency between parcel status and
// cell binding.
//
// Business Rules:
//   - Created parcels must not have a cell bound
//   - InLocker parcels must have a cell bound
//   - Delivered parcels have no cell bound (cleared on collection)
func (s Status) ValidateCanHaveCell(hasCell bool) error {
	if hasCell && s != InLocker {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a cell", s.String()),
		)
	}

	if !hasCell && s == InLocker {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no cell", s.String()),
		)
	}

	return nil
}
