package locker

import (
	"errors"
	"fmt"
	"time"

	"lockerhub/internal/core/domain/model/kernel"
	"lockerhub/internal/pkg/errs"
	"lockerhub/internal/pkg/guard"
)

var (
	// ErrCellNotAllocatable indicates that a cell cannot be reserved because
	// it is inactive or not in Available status.
	ErrCellNotAllocatable = errors.New("cell is not allocatable")

	// ErrCellStateConflict indicates that the recorded cell state disagrees
	// with the state implied by its bound parcel. It signals a prior
	// synchronization bug and is surfaced rather than silently corrected,
	// because auto-correcting could mask a double-booking.
	ErrCellStateConflict = errors.New("cell state conflicts with parcel-implied state")

	// ErrCellIsNotConstructed is returned when a Cell instance was not
	// created through NewCell or RestoreCell.
	ErrCellIsNotConstructed = errors.New("Cell must be created via NewCell constructor")
)

// Cell represents an individually lockable compartment within a Locker.
// It is an entity owned by the Locker aggregate: cells are created once at
// locker provisioning and never destroyed, only deactivated.
//
// Cell maintains these invariants:
//   - Status is Occupied if and only if exactly one active parcel is bound
//     to the cell (the binding lives on the parcel side; the Lifecycle
//     Synchronizer keeps the two in step within one transaction)
//   - isLocked is true whenever the cell is Occupied by a parcel that has
//     not yet been collected
//   - A Reserved cell carries the time the reservation was taken, so
//     abandoned reservations can be released
type Cell struct {
	// id uniquely identifies the cell
	id kernel.UUID

	// code is the human-readable label, unique within the owning locker
	code string

	// size is the physical size category of the compartment
	size SizeClass

	// status is the current occupancy state
	status CellStatus

	// isActive reports whether the hardware is enabled for allocation
	isActive bool

	// isLocked mirrors the physical lock state
	isLocked bool

	// reservedAt is the time the current reservation was taken, nil unless
	// status is Reserved
	reservedAt *time.Time

	// guard ensures the cell was properly constructed
	guard guard.ConstructorGuard
}

// NewCell creates a fresh cell at locker provisioning time: Available,
// active, and unlocked.
//
// Parameters:
//   - id: Unique identifier for the cell (must be valid UUID)
//   - code: Human-readable label, unique within the locker (must be non-empty)
//   - size: Physical size category (must be a valid SizeClass)
func NewCell(id kernel.UUID, code string, size SizeClass) (*Cell, error) {
	cell := &Cell{
		status:   Available,
		isActive: true,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cell.setID(id),
		cell.setCode(code),
		cell.setSize(size),
	); err != nil {
		return nil, err
	}

	return cell, nil
}

// RestoreCell reconstructs a Cell from persistent storage, preserving its
// operational state at the time of persistence.
func RestoreCell(
	id kernel.UUID,
	code string,
	size SizeClass,
	status CellStatus,
	isActive bool,
	isLocked bool,
	reservedAt *time.Time,
) (*Cell, error) {
	cell := &Cell{
		isActive:   isActive,
		isLocked:   isLocked,
		reservedAt: reservedAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cell.setID(id),
		cell.setCode(code),
		cell.setSize(size),
		cell.setStatus(status),
	); err != nil {
		return nil, err
	}

	return cell, nil
}

// Validate ensures the Cell instance was properly constructed.
func (c *Cell) Validate() error {
	if c == nil {
		return ErrCellIsNotConstructed
	}
	return c.guard.Validate(ErrCellIsNotConstructed)
}

// IsEqual compares two cells by their unique identifiers.
func (c *Cell) IsEqual(other *Cell) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the cell's unique identifier.
func (c *Cell) ID() kernel.UUID {
	return c.id
}

// Code returns the human-readable cell label.
func (c *Cell) Code() string {
	return c.code
}

// Size returns the cell's size class.
func (c *Cell) Size() SizeClass {
	return c.size
}

// Status returns the current occupancy state.
func (c *Cell) Status() CellStatus {
	return c.status
}

// IsActive reports whether the cell hardware is enabled for allocation.
func (c *Cell) IsActive() bool {
	return c.isActive
}

// IsLocked reports the physical lock state.
func (c *Cell) IsLocked() bool {
	return c.isLocked
}

// ReservedAt returns the time the current reservation was taken, or nil
// when the cell is not Reserved.
func (c *Cell) ReservedAt() *time.Time {
	return c.reservedAt
}

// IsAllocatable reports whether the cell qualifies for allocation:
// hardware-enabled and Available.
func (c *Cell) IsAllocatable() bool {
	return c.isActive && c.status == Available
}

// Reserve transitions the cell Available→Reserved and records the
// reservation time. Returns ErrCellNotAllocatable when the cell is inactive
// or not Available.
func (c *Cell) Reserve(now time.Time) error {
	if !c.isActive {
		return fmt.Errorf("%w: cell %s is inactive", ErrCellNotAllocatable, c.code)
	}

	newStatus, err := c.status.Reserve()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCellNotAllocatable, err)
	}

	c.status = newStatus
	c.reservedAt = &now
	return nil
}

// Occupy transitions the cell Reserved→Occupied, engages the physical lock,
// and clears the reservation timestamp. The parcel binding happens on the
// parcel side within the same transaction.
func (c *Cell) Occupy() error {
	newStatus, err := c.status.Occupy()
	if err != nil {
		return err
	}

	c.status = newStatus
	c.isLocked = true
	c.reservedAt = nil
	return nil
}

// Lock engages the physical lock of an occupied cell. Locking an already
// locked cell is a no-op. Returns ErrCellStateConflict when the cell is not
// Occupied, because only a cell holding a parcel may be locked.
func (c *Cell) Lock() error {
	if c.status != Occupied {
		return fmt.Errorf("%w: cannot lock cell %s in status %s", ErrCellStateConflict, c.code, c.status)
	}

	c.isLocked = true
	return nil
}

// Release transitions the cell Occupied→Available and disengages the lock
// after the bound parcel has been collected. Returns ErrCellStateConflict
// when the cell is not Occupied.
func (c *Cell) Release() error {
	newStatus, err := c.status.Release()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCellStateConflict, err)
	}

	c.status = newStatus
	c.isLocked = false
	return nil
}

// ReleaseReservation returns an abandoned Reserved cell to Available.
func (c *Cell) ReleaseReservation() error {
	newStatus, err := c.status.ReleaseReservation()
	if err != nil {
		return err
	}

	c.status = newStatus
	c.reservedAt = nil
	return nil
}

// IsReservationExpired reports whether the cell holds a reservation taken
// before the given cutoff.
func (c *Cell) IsReservationExpired(cutoff time.Time) bool {
	return c.status == Reserved && c.reservedAt != nil && c.reservedAt.Before(cutoff)
}

// Suspend pulls an Available cell out of service.
func (c *Cell) Suspend() error {
	newStatus, err := c.status.Suspend()
	if err != nil {
		return err
	}

	c.status = newStatus
	return nil
}

// Resume returns an OutOfService cell to Available.
func (c *Cell) Resume() error {
	newStatus, err := c.status.Resume()
	if err != nil {
		return err
	}

	c.status = newStatus
	return nil
}

// Deactivate disables the cell hardware. A deactivated cell keeps its
// status but never qualifies for allocation.
func (c *Cell) Deactivate() {
	c.isActive = false
}

// Activate re-enables the cell hardware.
func (c *Cell) Activate() {
	c.isActive = true
}

func (c *Cell) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Cell) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	c.code = code
	return nil
}

func (c *Cell) setSize(size SizeClass) error {
	if err := size.Validate(); err != nil {
		return err
	}
	c.size = size
	return nil
}

func (c *Cell) setStatus(status CellStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}
