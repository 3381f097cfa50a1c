// Package queries contains read-only operations implementing the query side
// of the CQRS architecture. Queries bypass the domain model and read
// committed state directly for performance.
package queries

import (
	"errors"

	"lockerhub/internal/core/domain/model/kernel"
	"lockerhub/internal/pkg/errs"
	"lockerhub/internal/pkg/guard"
)

var ErrGetAvailableCellsQueryIsNotConstructed = errors.New(
	"GetAvailableCellsQuery must be created via NewGetAvailableCellsQuery constructor",
)

const (
	// DefaultPageSize is applied when the caller does not request a limit.
	DefaultPageSize = 50

	// MaxPageSize caps a single inventory page.
	MaxPageSize = 100
)

// GetAvailableCellsQuery retrieves free-cell inventory across lockers.
// Filter fields combine with AND semantics; deviceID matches exactly, city
// and street match exactly or by prefix. An empty filter matches all
// lockers. Results are paged by offset/limit over lockers, so a consumer
// can restart a walk from any offset.
//
// Example:
//
//	query, err := NewGetAvailableCellsQuery("", "Springfield", "", 0, 20)
//	if err != nil {
//	    return fmt.Errorf("invalid inventory query: %w", err)
//	}
//
//	lockers, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get inventory: %w", err)
//	}
type GetAvailableCellsQuery struct {
	deviceID string
	city     string
	street   string
	offset   int
	limit    int

	guard guard.ConstructorGuard
}

// NewGetAvailableCellsQuery creates an inventory query.
// Offset must be non-negative; limit must not exceed MaxPageSize, and zero
// selects DefaultPageSize.
func NewGetAvailableCellsQuery(
	deviceID string,
	city string,
	street string,
	offset int,
	limit int,
) (GetAvailableCellsQuery, error) {
	if offset < 0 {
		return GetAvailableCellsQuery{}, errs.NewValueIsOutOfRangeError("offset", offset, 0, nil)
	}
	if limit < 0 || limit > MaxPageSize {
		return GetAvailableCellsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 0, MaxPageSize)
	}
	if limit == 0 {
		limit = DefaultPageSize
	}

	return GetAvailableCellsQuery{
		deviceID: deviceID,
		city:     city,
		street:   street,
		offset:   offset,
		limit:    limit,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAvailableCellsQueryIsNotConstructed if validation fails.
func (q GetAvailableCellsQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableCellsQueryIsNotConstructed)
}

// DeviceID returns the exact device filter ("" means any).
func (q GetAvailableCellsQuery) DeviceID() string {
	return q.deviceID
}

// City returns the city prefix filter ("" means any).
func (q GetAvailableCellsQuery) City() string {
	return q.city
}

// Street returns the street prefix filter ("" means any).
func (q GetAvailableCellsQuery) Street() string {
	return q.street
}

// Offset returns the number of lockers to skip.
func (q GetAvailableCellsQuery) Offset() int {
	return q.offset
}

// Limit returns the maximum number of lockers per page.
func (q GetAvailableCellsQuery) Limit() int {
	return q.limit
}

// GetAvailableCellsQueryResponse represents one locker with its free cells.
// Lockers arrive ordered by identifier, cells by code.
type GetAvailableCellsQueryResponse struct {
	ID                 kernel.UUID
	DeviceID           string
	City               string
	Street             string
	AvailableCellCount int
	Cells              []AvailableCellResponse
}

// AvailableCellResponse represents one free cell within a locker.
type AvailableCellResponse struct {
	ID   kernel.UUID
	Code string
	Size string
}
