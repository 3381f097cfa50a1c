package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lockerhub/internal/core/domain/model/account"
	"lockerhub/internal/core/domain/model/kernel"
	"lockerhub/internal/core/domain/model/locker"
	"lockerhub/internal/core/domain/model/parcel"
	"lockerhub/internal/core/ports"
	"lockerhub/internal/pkg/errs"
)

// maxPlacementAttempts bounds the rescan loop when reservations are lost to
// concurrent transactions.
const maxPlacementAttempts = 3

// PlacementResult describes the cell allocated for a parcel.
type PlacementResult struct {
	LockerID kernel.UUID
	CellID   kernel.UUID
	CellCode string
}

// PlaceParcelCommandHandler allocates a free cell for a parcel and binds the
// two atomically. Candidate lockers are scanned in identity order, cells in
// code order; the first active Available cell wins. The reservation is taken
// with a guarded conditional write, so two handlers racing for the same cell
// see exactly one winner, and the loser rescans for the next free cell.
//
// Example:
//
//	handler := NewPlaceParcelCommandHandler(uowFactory)
//	cmd, _ := NewPlaceParcelCommand(actor, parcelID, filter)
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("parcel placement failed: %w", err)
//	}
type PlaceParcelCommandHandler struct {
	uowFactory UoWFactory
	now        func() time.Time
}

// NewPlaceParcelCommandHandler creates a handler for parcel placement.
// Requires a UoWFactory because the parcel and its cell must commit together.
func NewPlaceParcelCommandHandler(uowFactory UoWFactory) PlaceParcelCommandHandler {
	return PlaceParcelCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the placement command.
// Administrators and couriers may place parcels. The parcel must be in
// Created status. Returns errs.ErrObjectNotFound when no matching cell is
// free, and ports.ErrConcurrentReservation when every attempt lost its
// reservation race.
func (h *PlaceParcelCommandHandler) Handle(ctx context.Context, cmd PlaceParcelCommand) (PlacementResult, error) {
	if err := cmd.Validate(); err != nil {
		return PlacementResult{}, err
	}

	if err := cmd.Actor().RequireRole(account.Admin, account.Courier); err != nil {
		return PlacementResult{}, err
	}

	var lastErr error
	for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
		result, err := h.tryPlace(ctx, cmd)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, ports.ErrConcurrentReservation) {
			return PlacementResult{}, err
		}
		lastErr = err
	}

	return PlacementResult{}, lastErr
}

// tryPlace runs one full placement attempt in its own transaction.
func (h *PlaceParcelCommandHandler) tryPlace(ctx context.Context, cmd PlaceParcelCommand) (PlacementResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return PlacementResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	parcelEntity, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return PlacementResult{}, err
	}

	if parcelEntity.Status() != parcel.Created {
		return PlacementResult{}, fmt.Errorf(
			"%w: cannot place parcel in status %s", parcel.ErrInvalidTransition, parcelEntity.Status(),
		)
	}

	lockerRepo := uow.LockerRepository()
	candidates, err := lockerRepo.FindByFilter(ctx, cmd.Filter())
	if err != nil {
		return PlacementResult{}, err
	}

	targetLocker, targetCell := pickAllocatableCell(candidates)
	if targetCell == nil {
		return PlacementResult{}, errs.NewObjectNotFoundError("cell", cmd.Filter())
	}

	reservedAt := h.now()
	if err = lockerRepo.ReserveCell(ctx, targetCell.ID(), reservedAt); err != nil {
		return PlacementResult{}, err
	}

	if err = targetCell.Reserve(reservedAt); err != nil {
		return PlacementResult{}, err
	}

	if err = targetCell.Occupy(); err != nil {
		return PlacementResult{}, err
	}

	if err = parcelEntity.Place(targetCell.ID()); err != nil {
		return PlacementResult{}, err
	}

	if err = lockerRepo.UpdateCell(ctx, targetCell); err != nil {
		return PlacementResult{}, err
	}

	if err = parcelRepo.Update(ctx, parcelEntity); err != nil {
		return PlacementResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return PlacementResult{}, err
	}

	return PlacementResult{
		LockerID: targetLocker.ID(),
		CellID:   targetCell.ID(),
		CellCode: targetCell.Code(),
	}, nil
}

// pickAllocatableCell returns the first allocatable cell across the candidate
// lockers. Lockers arrive ordered by identity, cells by code, so the pick is
// deterministic.
func pickAllocatableCell(candidates []*locker.Locker) (*locker.Locker, *locker.Cell) {
	for _, candidate := range candidates {
		if cell := candidate.FirstAllocatableCell(); cell != nil {
			return candidate, cell
		}
	}
	return nil, nil
}
