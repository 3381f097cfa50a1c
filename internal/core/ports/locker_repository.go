// Package ports defines repository and transaction contracts between the
// domain layer and infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"
	"errors"
	"time"

	"lockerhub/internal/core/domain/model/kernel"
	"lockerhub/internal/core/domain/model/locker"
)

// ErrConcurrentReservation indicates that a cell reservation lost a race
// against another transaction: the cell was Available when scanned but no
// longer Available at reserve time. Callers should retry the allocation
// scan rather than surface this to the end user as a permanent failure.
var ErrConcurrentReservation = errors.New("cell was reserved concurrently")

// LockerFilter narrows candidate lockers for allocation and inventory
// queries. Fields combine with AND semantics; DeviceID matches exactly,
// City and Street match exactly or by prefix. The zero value matches all
// lockers.
type LockerFilter struct {
	DeviceID string
	City     string
	Street   string
}

// IsEmpty reports whether the filter constrains nothing.
func (f LockerFilter) IsEmpty() bool {
	return f.DeviceID == "" && f.City == "" && f.Street == ""
}

// LockerRepository defines the persistence contract for locker aggregates
// and their owned cells.
type LockerRepository interface {
	// Add persists a new locker aggregate with its cells.
	// The locker must be valid and its device identifier unique.
	Add(ctx context.Context, aggregate *locker.Locker) error

	// Update persists changes to an existing locker aggregate, including
	// its cell collection.
	Update(ctx context.Context, aggregate *locker.Locker) error

	// Get retrieves a locker aggregate by its unique identifier with all
	// of its cells.
	Get(ctx context.Context, id kernel.UUID) (*locker.Locker, error)

	// GetByCellID retrieves the locker owning the given cell.
	GetByCellID(ctx context.Context, cellID kernel.UUID) (*locker.Locker, error)

	// FindByFilter retrieves locker aggregates matching the filter,
	// ordered by locker identity ascending. Used as the candidate set for
	// cell allocation.
	FindByFilter(ctx context.Context, filter LockerFilter) ([]*locker.Locker, error)

	// ReserveCell transitions a single cell Available→Reserved with a
	// guarded conditional write: the write only succeeds if the cell is
	// still active and Available at commit time. Returns
	// ErrConcurrentReservation when another transaction won the cell.
	ReserveCell(ctx context.Context, cellID kernel.UUID, at time.Time) error

	// UpdateCell persists the state of a single cell belonging to an
	// already-persisted locker.
	UpdateCell(ctx context.Context, cell *locker.Cell) error

	// FindWithExpiredReservations retrieves lockers holding at least one
	// cell whose reservation was taken before the cutoff. Used by the
	// reservation release job.
	FindWithExpiredReservations(ctx context.Context, cutoff time.Time) ([]*locker.Locker, error)
}
