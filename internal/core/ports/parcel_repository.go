package ports

import (
	"context"

	"lockerhub/internal/core/domain/model/kernel"
	"lockerhub/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
type ParcelRepository interface {
	// Add persists a new parcel aggregate to storage.
	// The parcel must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel aggregate.
	// The parcel must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get retrieves a parcel aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetByCellID retrieves the single non-terminal parcel bound to the
	// given cell, if any. Used by consistency checks.
	GetByCellID(ctx context.Context, cellID kernel.UUID) (*parcel.Parcel, error)
}
