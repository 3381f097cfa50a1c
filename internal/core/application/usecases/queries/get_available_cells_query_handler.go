package queries

import (
	"context"

	"lockerhub/internal/core/domain/model/kernel"
	"lockerhub/internal/core/domain/model/locker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableCellsQueryHandler retrieves free-cell inventory from the
// database. Reads committed state only, so a placement transaction in
// flight is never half-visible: its cell is either still Available or
// already gone from the result.
//
// Example:
//
//	handler := NewGetAvailableCellsQueryHandler(db)
//	query, _ := NewGetAvailableCellsQuery("", "Springfield", "", 0, 20)
//
//	lockers, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get inventory: %v", err)
//	    return err
//	}
type GetAvailableCellsQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableCellsQueryHandler creates a handler for inventory queries.
// Requires a GORM database connection for query execution.
func NewGetAvailableCellsQueryHandler(db *gorm.DB) GetAvailableCellsQueryHandler {
	return GetAvailableCellsQueryHandler{db: db}
}

// Handle executes the inventory query.
// Returns one row per locker holding at least one free cell, ordered by
// locker ID ascending with cells ordered by code ascending.
func (h GetAvailableCellsQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableCellsQuery,
) ([]GetAvailableCellsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	where := "c.status = ? AND c.is_active"
	whereArgs := []any{int(locker.Available)}
	if query.DeviceID() != "" {
		where += " AND l.device_id = ?"
		whereArgs = append(whereArgs, query.DeviceID())
	}
	if query.City() != "" {
		where += " AND l.city LIKE ?"
		whereArgs = append(whereArgs, query.City()+"%")
	}
	if query.Street() != "" {
		where += " AND l.street LIKE ?"
		whereArgs = append(whereArgs, query.Street()+"%")
	}

	// The where clause appears twice: once in the outer select, once in the
	// paging subquery.
	args := make([]any, 0, 2*len(whereArgs)+2)
	args = append(args, whereArgs...)
	args = append(args, whereArgs...)
	args = append(args, query.Limit(), query.Offset())

	// The subquery pages over lockers, not cells, so a locker's cell list
	// is never split across pages.
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.id,
			l.device_id,
			l.city,
			l.street,
			c.id,
			c.code,
			c.size
		FROM lockers l
		JOIN cells c ON c.locker_id = l.id
		WHERE `+where+`
		AND l.id IN (
			SELECT l.id
			FROM lockers l
			JOIN cells c ON c.locker_id = l.id
			WHERE `+where+`
			GROUP BY l.id
			ORDER BY l.id
			LIMIT ? OFFSET ?
		)
		ORDER BY l.id, c.code
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lockers := make([]GetAvailableCellsQueryResponse, 0)
	for rows.Next() {
		var lockerID, cellID uuid.UUID
		var deviceID, city, street, code string
		var size int

		if err = rows.Scan(&lockerID, &deviceID, &city, &street, &cellID, &code, &size); err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(lockerID[:])
		if idErr != nil {
			return nil, idErr
		}

		cID, idErr := kernel.UUIDFromBytes(cellID[:])
		if idErr != nil {
			return nil, idErr
		}

		cell := AvailableCellResponse{
			ID:   cID,
			Code: code,
			Size: locker.SizeClass(size).String(),
		}

		if n := len(lockers); n > 0 && lockers[n-1].ID.IsEqual(id) {
			lockers[n-1].Cells = append(lockers[n-1].Cells, cell)
			lockers[n-1].AvailableCellCount++
			continue
		}

		lockers = append(lockers, GetAvailableCellsQueryResponse{
			ID:                 id,
			DeviceID:           deviceID,
			City:               city,
			Street:             street,
			AvailableCellCount: 1,
			Cells:              []AvailableCellResponse{cell},
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lockers, nil
}
