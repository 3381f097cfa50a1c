package queries

import (
	"errors"

	"lockerhub/internal/core/domain/model/kernel"
	"lockerhub/internal/pkg/guard"
)

var ErrGetUncollectedParcelsQueryIsNotConstructed = errors.New(
	"GetUncollectedParcelsQuery must be created via NewGetUncollectedParcelsQuery constructor",
)

// GetUncollectedParcelsQuery retrieves all parcels not yet collected.
// Returns parcels in Created or InLocker status for monitoring and
// operations.
//
// Example:
//
//	query := NewGetUncollectedParcelsQuery()
//	handler := NewGetUncollectedParcelsQueryHandler(db)
//
//	parcels, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get pending parcels: %w", err)
//	}
//
//	fmt.Printf("Found %d parcels awaiting collection\n", len(parcels))
type GetUncollectedParcelsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUncollectedParcelsQuery creates a query to retrieve pending parcels.
// This is a parameterless query that fetches all non-delivered parcels.
func NewGetUncollectedParcelsQuery() GetUncollectedParcelsQuery {
	return GetUncollectedParcelsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetUncollectedParcelsQueryIsNotConstructed if validation fails.
func (q GetUncollectedParcelsQuery) Validate() error {
	return q.guard.Validate(ErrGetUncollectedParcelsQueryIsNotConstructed)
}

// GetUncollectedParcelsQueryResponse represents pending parcel information.
// CellID is nil for parcels not yet placed.
type GetUncollectedParcelsQueryResponse struct {
	ID        kernel.UUID
	Recipient string
	Status    string
	CellID    *kernel.UUID
}
