// Package lockerrepo provides data transfer objects and mapping functions
// for locker persistence. This package implements the repository pattern for
// the locker domain aggregate, handling the conversion between domain
// entities and database representations.
package lockerrepo

import (
	"time"

	"lockerhub/internal/core/domain/model/kernel"
	"lockerhub/internal/core/domain/model/locker"

	"github.com/google/uuid"
)

// LockerDTO represents the database structure for persisting locker
// aggregates. The unique index on DeviceID enforces device uniqueness
// across lockers at the storage level.
type LockerDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeviceID string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	City     string    `gorm:"type:varchar(255);not null;index"`
	Street   string    `gorm:"type:varchar(255);not null;index"`
	Cells    []CellDTO `gorm:"foreignKey:LockerID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for locker entities.
// Overrides GORM's default naming convention to use "lockers".
func (LockerDTO) TableName() string {
	return "lockers"
}

// CellDTO represents the database structure for persisting cell entities.
// Links to the owning locker via foreign key. The status column drives the
// guarded reservation update, so it is indexed together with is_active.
type CellDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	LockerID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Code       string     `gorm:"type:varchar(32);not null"`
	Size       int        `gorm:"type:int;not null"`
	Status     int        `gorm:"type:int;not null;index:idx_cells_allocatable"`
	IsActive   bool       `gorm:"not null;index:idx_cells_allocatable"`
	IsLocked   bool       `gorm:"not null"`
	ReservedAt *time.Time `gorm:"index"`
}

// TableName specifies the database table name for cell entities.
// Overrides GORM's default naming convention to use "cells".
func (CellDTO) TableName() string {
	return "cells"
}

// fromDomain converts a locker domain aggregate to its database
// representation, including all owned cells.
func fromDomain(aggregate *locker.Locker) LockerDTO {
	lockerID := aggregate.ID().Bytes()
	cells := make([]CellDTO, 0, len(aggregate.Cells()))

	for _, cell := range aggregate.Cells() {
		cells = append(cells, cellFromDomain(lockerID, cell))
	}

	return LockerDTO{
		ID:       lockerID,
		DeviceID: aggregate.DeviceID(),
		City:     aggregate.Address().City(),
		Street:   aggregate.Address().Street(),
		Cells:    cells,
	}
}

// cellFromDomain converts a cell entity to its database representation.
func cellFromDomain(lockerID uuid.UUID, cell *locker.Cell) CellDTO {
	return CellDTO{
		ID:         cell.ID().Bytes(),
		LockerID:   lockerID,
		Code:       cell.Code(),
		Size:       int(cell.Size()),
		Status:     int(cell.Status()),
		IsActive:   cell.IsActive(),
		IsLocked:   cell.IsLocked(),
		ReservedAt: cell.ReservedAt(),
	}
}

// toDomain converts a database DTO to a locker domain aggregate.
// Reconstructs the complete aggregate including all cells using
// RestoreLocker.
func toDomain(dto LockerDTO) (*locker.Locker, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	address, err := kernel.NewAddress(dto.City, dto.Street)
	if err != nil {
		return nil, err
	}

	cells := make([]*locker.Cell, 0, len(dto.Cells))
	for _, cellDto := range dto.Cells {
		cell, cellErr := cellToDomain(cellDto)
		if cellErr != nil {
			return nil, cellErr
		}
		cells = append(cells, cell)
	}

	return locker.RestoreLocker(id, dto.DeviceID, address, cells)
}

// cellToDomain converts a cell DTO to its domain entity.
// Uses RestoreCell to reconstruct the entity with its persisted state.
func cellToDomain(dto CellDTO) (*locker.Cell, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return locker.RestoreCell(
		id,
		dto.Code,
		locker.SizeClass(dto.Size),
		locker.CellStatus(dto.Status),
		dto.IsActive,
		dto.IsLocked,
		dto.ReservedAt,
	)
}
