package locker

import (
	"fmt"

	"lockerhub/internal/pkg/errs"
)

// CellStatus represents the occupancy state of a cell.
// It implements a state machine with defined transitions that keep the
// physical lock state consistent with the parcel lifecycle.
//
// State transitions:
//
//	Available ──> Reserved ──> Occupied ──> Available
//	    │             │                         ▲
//	    │             └─────────────────────────┘
//	    │                (reservation released)
//	    └──> OutOfService ──> Available
//
// CellStatus is a value object that validates state transitions and
// provides string representations for persistence and display.
type CellStatus int

const (
	// UnknownCellStatus represents an invalid or undefined status.
	// This value (0) helps catch uninitialized CellStatus values.
	UnknownCellStatus CellStatus = iota

	// Available means the cell is empty and can be reserved for a parcel.
	Available

	// Reserved is the transient state between picking a cell and binding a
	// parcel to it. A reservation either becomes Occupied in the same
	// transaction or is released.
	Reserved

	// Occupied means exactly one active parcel is bound to the cell.
	Occupied

	// OutOfService means the cell has been pulled from rotation by an
	// operator and must not be allocated.
	OutOfService
)

func getCellStatusStrings() map[CellStatus]string {
	return map[CellStatus]string{
		UnknownCellStatus: "Unknown",
		Available:         "Available",
		Reserved:          "Reserved",
		Occupied:          "Occupied",
		OutOfService:      "OutOfService",
	}
}

func getValidCellStatusStrings() map[CellStatus]string {
	//nolint:exhaustive // UnknownCellStatus is intentionally excluded as it's invalid
	return map[CellStatus]string{
		Available:    "Available",
		Reserved:     "Reserved",
		Occupied:     "Occupied",
		OutOfService: "OutOfService",
	}
}

// Validate checks if the CellStatus value is valid.
// Valid statuses are: Available, Reserved, Occupied, OutOfService.
func (s CellStatus) Validate() error {
	if _, ok := getValidCellStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"cell status is invalid", fmt.Errorf("%d is not a valid cell status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// It implements fmt.Stringer and is safe on any CellStatus value.
func (s CellStatus) String() string {
	if str, ok := getCellStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Reserve transitions the status to Reserved.
// The only valid source state is Available.
func (s CellStatus) Reserve() (CellStatus, error) {
	if s != Available {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"cell status is invalid",
			fmt.Errorf("%s is not a valid status to reserve", s.String()),
		)
	}
	return Reserved, nil
}

// Occupy transitions the status to Occupied.
// The only valid source state is Reserved: a cell must be reserved before a
// parcel is bound to it.
func (s CellStatus) Occupy() (CellStatus, error) {
	if s != Reserved {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"cell status is invalid",
			fmt.Errorf("%s is not a valid status to occupy", s.String()),
		)
	}
	return Occupied, nil
}

// Release transitions the status back to Available after collection.
// The only valid source state is Occupied.
func (s CellStatus) Release() (CellStatus, error) {
	if s != Occupied {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"cell status is invalid",
			fmt.Errorf("%s is not a valid status to release", s.String()),
		)
	}
	return Available, nil
}

// ReleaseReservation transitions an abandoned Reserved status back to
// Available without the cell ever having been occupied.
func (s CellStatus) ReleaseReservation() (CellStatus, error) {
	if s != Reserved {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"cell status is invalid",
			fmt.Errorf("%s is not a valid status to release a reservation from", s.String()),
		)
	}
	return Available, nil
}

// Suspend transitions the status to OutOfService.
// Only an Available cell can be pulled from rotation; occupied or reserved
// cells hold (or are about to hold) a parcel.
func (s CellStatus) Suspend() (CellStatus, error) {
	if s != Available {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"cell status is invalid",
			fmt.Errorf("%s is not a valid status to suspend", s.String()),
		)
	}
	return OutOfService, nil
}

// Resume transitions the status from OutOfService back to Available.
func (s CellStatus) Resume() (CellStatus, error) {
	if s != OutOfService {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"cell status is invalid",
			fmt.Errorf("%s is not a valid status to resume", s.String()),
		)
	}
	return Available, nil
}
