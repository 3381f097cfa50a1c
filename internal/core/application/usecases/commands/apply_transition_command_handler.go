package commands

import (
	"context"
	"errors"
	"fmt"

	"lockerhub/internal/core/domain/model/account"
	"lockerhub/internal/core/domain/model/locker"
	"lockerhub/internal/core/domain/model/parcel"
	"lockerhub/internal/pkg/diaglog"
)

// diagSource identifies the lifecycle synchronizer in diagnostic entries.
const diagSource = "lifecycle-synchronizer"

// ApplyTransitionCommandHandler keeps parcel lifecycle state and cell state
// in step. Each transition updates the parcel and its bound cell within one
// transaction, so the Occupied-iff-bound invariant is never observable
// half-done. Rejected transitions and cell state conflicts are recorded in
// the diagnostic buffer; conflicts are surfaced, never auto-corrected.
//
// Example:
//
//	handler := NewApplyTransitionCommandHandler(uowFactory, diag, notifier)
//	cmd, _ := NewApplyTransitionCommand(actor, parcelID, parcel.Delivered)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("transition failed: %w", err)
//	}
type ApplyTransitionCommandHandler struct {
	uowFactory UoWFactory
	diag       *diaglog.Buffer
	notifier   Notifier
}

// NewApplyTransitionCommandHandler creates a handler for lifecycle
// transitions. Requires a UoWFactory for atomic parcel+cell updates, a
// diagnostic buffer for rejected transitions, and a notifier for collection
// events.
func NewApplyTransitionCommandHandler(
	uowFactory UoWFactory,
	diag *diaglog.Buffer,
	notifier Notifier,
) ApplyTransitionCommandHandler {
	return ApplyTransitionCommandHandler{
		uowFactory: uowFactory,
		diag:       diag,
		notifier:   notifier,
	}
}

// Handle processes the transition command.
// Administrators and couriers may apply transitions. Re-applying Delivered
// to a Delivered parcel is a no-op; applying InLocker to a parcel already in
// a locker re-engages the cell lock.
func (h *ApplyTransitionCommandHandler) Handle(ctx context.Context, cmd ApplyTransitionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := cmd.Actor().RequireRole(account.Admin, account.Courier); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelEntity, err := uow.ParcelRepository().Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	var notification string
	switch cmd.NewStatus() {
	case parcel.Created:
		return h.applyCreated(cmd, parcelEntity)
	case parcel.InLocker:
		err = h.applyInLocker(ctx, uow, cmd, parcelEntity)
	case parcel.Delivered:
		notification, err = h.applyDelivered(ctx, uow, cmd, parcelEntity)
	default:
		return fmt.Errorf("%w: unknown target status", parcel.ErrInvalidTransition)
	}
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// Notify only after the transition is durable.
	if notification != "" {
		h.notifier.Notify("parcel_collected", notification)
	}
	return nil
}

// applyCreated handles the degenerate target: a parcel can never return to
// Created, so the only accepted case is re-applying the current status.
func (h *ApplyTransitionCommandHandler) applyCreated(cmd ApplyTransitionCommand, parcelEntity *parcel.Parcel) error {
	if parcelEntity.Status() == parcel.Created {
		return nil
	}

	err := fmt.Errorf(
		"%w: cannot return parcel to %s from %s", parcel.ErrInvalidTransition, parcel.Created, parcelEntity.Status(),
	)
	h.recordRejection(cmd, parcelEntity, err)
	return err
}

// applyInLocker confirms the deposit: the courier closed the door, so the
// cell lock is re-engaged. The parcel itself does not change.
func (h *ApplyTransitionCommandHandler) applyInLocker(
	ctx context.Context,
	uow UoW,
	cmd ApplyTransitionCommand,
	parcelEntity *parcel.Parcel,
) error {
	if err := parcelEntity.ConfirmDeposit(); err != nil {
		h.recordRejection(cmd, parcelEntity, err)
		return err
	}

	lockerRepo := uow.LockerRepository()
	owningLocker, err := lockerRepo.GetByCellID(ctx, *parcelEntity.CellID())
	if err != nil {
		return err
	}

	cell, err := owningLocker.CellByID(*parcelEntity.CellID())
	if err != nil {
		return err
	}

	if err = cell.Lock(); err != nil {
		h.recordRejection(cmd, parcelEntity, err)
		return err
	}

	return lockerRepo.UpdateCell(ctx, cell)
}

// applyDelivered collects the parcel: the cell is released and unlocked, the
// parcel reaches its terminal status, and the cell binding is cleared.
// Returns the notification message to publish once the transaction commits.
func (h *ApplyTransitionCommandHandler) applyDelivered(
	ctx context.Context,
	uow UoW,
	cmd ApplyTransitionCommand,
	parcelEntity *parcel.Parcel,
) (string, error) {
	if parcelEntity.Status() == parcel.Delivered {
		return "", nil
	}

	if parcelEntity.CellID() == nil {
		err := fmt.Errorf(
			"%w: cannot collect parcel in status %s without a cell", parcel.ErrInvalidTransition, parcelEntity.Status(),
		)
		h.recordRejection(cmd, parcelEntity, err)
		return "", err
	}

	lockerRepo := uow.LockerRepository()
	owningLocker, err := lockerRepo.GetByCellID(ctx, *parcelEntity.CellID())
	if err != nil {
		return "", err
	}

	cell, err := owningLocker.CellByID(*parcelEntity.CellID())
	if err != nil {
		return "", err
	}

	if err = cell.Release(); err != nil {
		h.recordRejection(cmd, parcelEntity, err)
		return "", err
	}

	if err = parcelEntity.Collect(); err != nil {
		return "", err
	}

	if err = lockerRepo.UpdateCell(ctx, cell); err != nil {
		return "", err
	}

	if err = uow.ParcelRepository().Update(ctx, parcelEntity); err != nil {
		return "", err
	}

	return fmt.Sprintf("Parcel for %s collected from cell %s", parcelEntity.Recipient(), cell.Code()), nil
}

// recordRejection writes a rejected transition to the diagnostic buffer.
// Cell state conflicts are recorded as errors because they indicate a prior
// synchronization bug; invalid transitions are expected workflow outcomes.
func (h *ApplyTransitionCommandHandler) recordRejection(
	cmd ApplyTransitionCommand,
	parcelEntity *parcel.Parcel,
	cause error,
) {
	level := diaglog.LevelWarn
	if errors.Is(cause, locker.ErrCellStateConflict) {
		level = diaglog.LevelError
	}

	h.diag.Append(level, cause.Error(), diagSource, map[string]any{
		"parcel_id":        cmd.ParcelID().String(),
		"current_status":   parcelEntity.Status().String(),
		"requested_status": cmd.NewStatus().String(),
	})
}
