// Package parcelrepo provides data transfer objects and mapping functions
// for parcel persistence. This package implements the repository pattern for
// the parcel domain aggregate, handling the conversion between domain
// entities and database representations.
package parcelrepo

import (
	"lockerhub/internal/core/domain/model/kernel"
	"lockerhub/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO represents the database structure for persisting parcel
// aggregates. CellID is indexed because the synchronizer resolves parcels
// by their bound cell.
type ParcelDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Recipient string     `gorm:"type:varchar(255);not null"`
	Status    int        `gorm:"type:int;not null;index"`
	CellID    *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName specifies the database table name for parcel entities.
// Overrides GORM's default naming convention to use "parcels".
func (ParcelDTO) TableName() string {
	return "parcels"
}

// fromDomain converts a parcel domain aggregate to its database
// representation, including the optional cell binding.
func fromDomain(aggregate *parcel.Parcel) ParcelDTO {
	var cellID *uuid.UUID
	if id := aggregate.CellID(); id != nil {
		raw := id.Bytes()
		cellID = &raw
	}

	return ParcelDTO{
		ID:        aggregate.ID().Bytes(),
		Recipient: aggregate.Recipient(),
		Status:    int(aggregate.Status()),
		CellID:    cellID,
	}
}

// toDomain converts a database DTO to a parcel domain aggregate.
// Reconstructs the aggregate including status and cell binding using
// RestoreParcel.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var cellID *kernel.UUID
	if dto.CellID != nil {
		cID, cellErr := kernel.UUIDFromBytes((*dto.CellID)[:])
		if cellErr != nil {
			return nil, cellErr
		}

		cellID = &cID
	}

	return parcel.RestoreParcel(id, dto.Recipient, parcel.Status(dto.Status), cellID)
}
