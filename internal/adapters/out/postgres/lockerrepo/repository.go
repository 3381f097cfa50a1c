package lockerrepo

import (
	"context"
	"errors"
	"time"

	"lockerhub/internal/core/domain/model/kernel"
	"lockerhub/internal/core/domain/model/locker"
	"lockerhub/internal/core/ports"
	"lockerhub/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLockerRepository implements LockerRepository using GORM.
type GormLockerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormLockerRepository creates a new GORM locker repository.
func NewGormLockerRepository(db *gorm.DB, tracker aggregateTracker) *GormLockerRepository {
	return &GormLockerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new locker with its cells to the database.
func (r *GormLockerRepository) Add(ctx context.Context, aggregate *locker.Locker) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing locker and its cell collection to the database.
func (r *GormLockerRepository) Update(ctx context.Context, aggregate *locker.Locker) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	// Use Session with FullSaveAssociations to properly update nested cells
	result := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a locker by ID with all of its cells.
func (r *GormLockerRepository) Get(ctx context.Context, id kernel.UUID) (*locker.Locker, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto LockerDTO
	if err := r.db.WithContext(ctx).Preload("Cells").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("locker", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByCellID retrieves the locker owning the given cell.
func (r *GormLockerRepository) GetByCellID(ctx context.Context, cellID kernel.UUID) (*locker.Locker, error) {
	if err := cellID.Validate(); err != nil {
		return nil, err
	}

	var cellDto CellDTO
	if err := r.db.WithContext(ctx).First(&cellDto, "id = ?", cellID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cell", cellID.String())
		}
		return nil, err
	}

	lockerID, err := kernel.UUIDFromBytes(cellDto.LockerID[:])
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, lockerID)
}

// FindByFilter retrieves lockers matching the filter, ordered by ID.
// DeviceID matches exactly; city and street match exactly or by prefix.
func (r *GormLockerRepository) FindByFilter(
	ctx context.Context,
	filter ports.LockerFilter,
) ([]*locker.Locker, error) {
	query := r.db.WithContext(ctx).Preload("Cells").Order("id")
	if filter.DeviceID != "" {
		query = query.Where("device_id = ?", filter.DeviceID)
	}
	if filter.City != "" {
		query = query.Where("city LIKE ?", filter.City+"%")
	}
	if filter.Street != "" {
		query = query.Where("street LIKE ?", filter.Street+"%")
	}

	var dtos []LockerDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// ReserveCell transitions a cell Available→Reserved with a guarded
// conditional update. The write succeeds only if the cell is still active
// and Available; losing the race surfaces ports.ErrConcurrentReservation.
func (r *GormLockerRepository) ReserveCell(ctx context.Context, cellID kernel.UUID, at time.Time) error {
	if err := cellID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&CellDTO{}).
		Where("id = ? AND status = ? AND is_active", cellID.Bytes(), int(locker.Available)).
		Updates(map[string]any{
			"status":      int(locker.Reserved),
			"reserved_at": at,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrConcurrentReservation
	}

	return nil
}

// UpdateCell persists the state of a single cell. Only the mutable columns
// are written; identity and ownership never change after provisioning.
func (r *GormLockerRepository) UpdateCell(ctx context.Context, cell *locker.Cell) error {
	if err := cell.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&CellDTO{}).
		Where("id = ?", cell.ID().Bytes()).
		Updates(map[string]any{
			"status":      int(cell.Status()),
			"is_active":   cell.IsActive(),
			"is_locked":   cell.IsLocked(),
			"reserved_at": cell.ReservedAt(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("cell", cell.ID().String())
	}

	return nil
}

// FindWithExpiredReservations retrieves lockers holding at least one cell
// whose reservation was taken before the cutoff, ordered by ID.
func (r *GormLockerRepository) FindWithExpiredReservations(
	ctx context.Context,
	cutoff time.Time,
) ([]*locker.Locker, error) {
	var lockerIDs []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&CellDTO{}).
		Distinct("locker_id").
		Where("status = ? AND reserved_at < ?", int(locker.Reserved), cutoff).
		Pluck("locker_id", &lockerIDs).Error; err != nil {
		return nil, err
	}

	if len(lockerIDs) == 0 {
		return []*locker.Locker{}, nil
	}

	var dtos []LockerDTO
	if err := r.db.WithContext(ctx).
		Preload("Cells").
		Order("id").
		Find(&dtos, "id IN ?", lockerIDs).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []LockerDTO) ([]*locker.Locker, error) {
	lockers := make([]*locker.Locker, 0, len(dtos))
	for _, dto := range dtos {
		l, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		lockers = append(lockers, l)
	}
	return lockers, nil
}
