package locker

import (
	"errors"
	"fmt"
	"sort"

	"lockerhub/internal/core/domain/model/kernel"
	"lockerhub/internal/pkg/errs"
	"lockerhub/internal/pkg/guard"
)

var (
	// ErrLockerIsNotConstructed is returned when a Locker instance was not
	// created through the NewLocker factory method.
	ErrLockerIsNotConstructed = errors.New("Locker must be created via NewLocker constructor")

	// ErrCellCodeAlreadyTaken is returned when adding a cell whose code is
	// already used within the locker.
	ErrCellCodeAlreadyTaken = errors.New("cell code is already taken in this locker")

	// ErrCellNotFound is returned when a requested cell does not belong to
	// the locker.
	ErrCellNotFound = errors.New("cell not found in this locker")
)

// Locker represents a physical unit of cells at one location. It is the
// aggregate root that owns its Cells and enforces their local invariants.
//
// Locker follows these invariants:
//   - Must have a valid unique identifier and a non-empty device identifier
//     (device identifiers are unique across lockers, enforced by storage)
//   - Cell codes are unique within the locker
//   - Cells are kept ordered by ascending code, giving the allocator a
//     stable, deterministic scan order
type Locker struct {
	// id is the unique identifier for the locker
	id kernel.UUID

	// deviceID correlates the record to the physical hardware unit
	deviceID string

	// address is the physical location of the locker
	address kernel.Address

	// cells are the compartments owned by this locker, ordered by code
	cells []*Cell

	// guard ensures the locker was created via a constructor
	guard guard.ConstructorGuard
}

// NewLocker creates a new Locker with no cells. Cells are added during
// provisioning via AddCell.
//
// Parameters:
//   - id: Unique identifier for the locker (must be valid UUID)
//   - deviceID: Hardware device identifier (must be non-empty)
//   - address: Physical location (must be a valid Address)
func NewLocker(id kernel.UUID, deviceID string, address kernel.Address) (*Locker, error) {
	l := &Locker{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		l.setID(id),
		l.setDeviceID(deviceID),
		l.setAddress(address),
	); err != nil {
		return nil, err
	}

	return l, nil
}

// RestoreLocker reconstructs a Locker aggregate from persistent storage
// with its full cell collection. Cells are re-sorted by code so the
// allocator scan order does not depend on storage ordering.
func RestoreLocker(id kernel.UUID, deviceID string, address kernel.Address, cells []*Cell) (*Locker, error) {
	l := &Locker{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		l.setID(id),
		l.setDeviceID(deviceID),
		l.setAddress(address),
		l.setCells(cells),
	); err != nil {
		return nil, err
	}

	return l, nil
}

// Validate ensures the Locker instance was properly constructed.
func (l *Locker) Validate() error {
	if l == nil {
		return ErrLockerIsNotConstructed
	}
	return l.guard.Validate(ErrLockerIsNotConstructed)
}

// IsEqual compares two lockers by their unique identifiers.
func (l *Locker) IsEqual(other *Locker) bool {
	return other != nil && l.id.IsEqual(other.id)
}

// ID returns the locker's unique identifier.
func (l *Locker) ID() kernel.UUID {
	return l.id
}

// DeviceID returns the hardware device identifier.
func (l *Locker) DeviceID() string {
	return l.deviceID
}

// Address returns the physical location of the locker.
func (l *Locker) Address() kernel.Address {
	return l.address
}

// Cells returns the cells owned by this locker, ordered by ascending code.
func (l *Locker) Cells() []*Cell {
	return l.cells
}

// AddCell provisions a new cell in the locker. The code must be unique
// within the locker; the cell starts Available, active, and unlocked.
func (l *Locker) AddCell(code string, size SizeClass) (*Cell, error) {
	for _, existing := range l.cells {
		if existing.Code() == code {
			return nil, fmt.Errorf("%w: %s", ErrCellCodeAlreadyTaken, code)
		}
	}

	cell, err := NewCell(kernel.NewUUID(), code, size)
	if err != nil {
		return nil, err
	}

	l.cells = append(l.cells, cell)
	l.sortCells()
	return cell, nil
}

// CellByID returns the cell with the given identifier.
// Returns ErrCellNotFound when the cell does not belong to this locker.
func (l *Locker) CellByID(id kernel.UUID) (*Cell, error) {
	for _, cell := range l.cells {
		if cell.ID().IsEqual(id) {
			return cell, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrCellNotFound, id)
}

// FirstAllocatableCell scans cells in ascending code order and returns the
// first one that is active and Available. The scan is a plain linear pass:
// cells are interchangeable, so any deterministic order suffices, and
// determinism only matters for testability. Returns nil when no cell
// qualifies.
func (l *Locker) FirstAllocatableCell() *Cell {
	for _, cell := range l.cells {
		if cell.IsAllocatable() {
			return cell
		}
	}
	return nil
}

// AvailableCellCount returns the number of cells currently qualifying for
// allocation.
func (l *Locker) AvailableCellCount() int {
	count := 0
	for _, cell := range l.cells {
		if cell.IsAllocatable() {
			count++
		}
	}
	return count
}

func (l *Locker) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Locker) setDeviceID(deviceID string) error {
	if deviceID == "" {
		return errs.NewValueIsRequiredError("deviceID")
	}
	l.deviceID = deviceID
	return nil
}

func (l *Locker) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	l.address = address
	return nil
}

func (l *Locker) setCells(cells []*Cell) error {
	seen := make(map[string]struct{}, len(cells))
	for _, cell := range cells {
		if err := cell.Validate(); err != nil {
			return err
		}
		if _, ok := seen[cell.Code()]; ok {
			return fmt.Errorf("%w: %s", ErrCellCodeAlreadyTaken, cell.Code())
		}
		seen[cell.Code()] = struct{}{}
	}

	l.cells = cells
	l.sortCells()
	return nil
}

func (l *Locker) sortCells() {
	sort.Slice(l.cells, func(i, j int) bool {
		return l.cells[i].Code() < l.cells[j].Code()
	})
}
