package commands

import (
	"context"
	"time"
)

// ReleaseExpiredReservationsCommandHandler returns abandoned reservations to
// the allocatable pool. A reservation is abandoned when its cell has been
// Reserved longer than the TTL without the placement completing, which
// happens when a placement transaction dies between reserve and commit.
//
// Example:
//
//	handler := NewReleaseExpiredReservationsCommandHandler(uowFactory)
//	cmd, _ := NewReleaseExpiredReservationsCommand(15 * time.Minute)
//
//	// Typically called periodically by a scheduler.
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("reservation sweep failed: %w", err)
//	}
type ReleaseExpiredReservationsCommandHandler struct {
	uowFactory LockerUoWFactory
	now        func() time.Time
}

// NewReleaseExpiredReservationsCommandHandler creates a handler for the
// reservation sweep. Requires a LockerUoWFactory for transactional updates.
func NewReleaseExpiredReservationsCommandHandler(
	uowFactory LockerUoWFactory,
) ReleaseExpiredReservationsCommandHandler {
	return ReleaseExpiredReservationsCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the sweep command.
// Finds lockers holding expired reservations and releases each such cell.
// All releases in one sweep commit together.
func (h *ReleaseExpiredReservationsCommandHandler) Handle(
	ctx context.Context,
	cmd ReleaseExpiredReservationsCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cutoff := h.now().Add(-cmd.TTL())
	lockerRepo := uow.LockerRepository()

	lockers, err := lockerRepo.FindWithExpiredReservations(ctx, cutoff)
	if err != nil {
		return err
	}

	for _, lockerEntity := range lockers {
		for _, cell := range lockerEntity.Cells() {
			if !cell.IsReservationExpired(cutoff) {
				continue
			}

			if err = cell.ReleaseReservation(); err != nil {
				return err
			}

			if err = lockerRepo.UpdateCell(ctx, cell); err != nil {
				return err
			}
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
