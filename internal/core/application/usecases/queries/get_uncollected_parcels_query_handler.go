package queries

import (
	"context"

	"lockerhub/internal/core/domain/model/kernel"
	"lockerhub/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUncollectedParcelsQueryHandler retrieves parcels pending collection
// from the database. Filters out delivered parcels to provide active
// workload visibility.
//
// Example:
//
//	handler := NewGetUncollectedParcelsQueryHandler(db)
//	query := NewGetUncollectedParcelsQuery()
//
//	pending, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get pending parcels: %v", err)
//	    return err
//	}
type GetUncollectedParcelsQueryHandler struct {
	db *gorm.DB
}

// NewGetUncollectedParcelsQueryHandler creates a handler for pending parcel
// queries. Requires a GORM database connection for query execution.
func NewGetUncollectedParcelsQueryHandler(db *gorm.DB) GetUncollectedParcelsQueryHandler {
	return GetUncollectedParcelsQueryHandler{db: db}
}

// Handle executes the query to retrieve all uncollected parcels.
// Returns parcels in Created or InLocker status, sorted by parcel ID for
// consistent output.
func (h GetUncollectedParcelsQueryHandler) Handle(
	ctx context.Context,
	query GetUncollectedParcelsQuery,
) ([]GetUncollectedParcelsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	parcels := make([]GetUncollectedParcelsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			recipient,
			status,
			cell_id
		FROM parcels
		WHERE status != ?
		ORDER BY id
	`, int(parcel.Delivered)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetUncollectedParcelsQueryResponse
		var id uuid.UUID
		var cellID *uuid.UUID
		var status int

		if err = rows.Scan(&id, &resp.Recipient, &status, &cellID); err != nil {
			return nil, err
		}

		parcelID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = parcelID
		resp.Status = parcel.Status(status).String()

		if cellID != nil {
			cID, idErr := kernel.UUIDFromBytes((*cellID)[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.CellID = &cID
		}

		parcels = append(parcels, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return parcels, nil
}
