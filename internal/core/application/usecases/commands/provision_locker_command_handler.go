package commands

import (
	"context"

	"lockerhub/internal/core/domain/model/account"
	"lockerhub/internal/core/domain/model/locker"
)

// ProvisionLockerCommandHandler handles the business logic for locker
// provisioning. Creates and persists new locker aggregates with their
// initial cell layout.
//
// Example:
//
//	handler := NewProvisionLockerCommandHandler(uowFactory)
//	cmd, _ := NewProvisionLockerCommand(actor, lockerID, "LOC1", address, cells)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("locker provisioning failed: %w", err)
//	}
type ProvisionLockerCommandHandler struct {
	uowFactory LockerUoWFactory
}

// NewProvisionLockerCommandHandler creates a handler for locker provisioning.
// Requires a LockerUoWFactory for transactional persistence operations.
func NewProvisionLockerCommandHandler(uowFactory LockerUoWFactory) ProvisionLockerCommandHandler {
	return ProvisionLockerCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the locker provisioning command.
// Only administrators may provision lockers. Creates the aggregate with its
// cells and persists it within a transaction.
func (h *ProvisionLockerCommandHandler) Handle(ctx context.Context, cmd ProvisionLockerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := cmd.Actor().RequireRole(account.Admin); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	lockerEntity, err := locker.NewLocker(cmd.LockerID(), cmd.DeviceID(), cmd.Address())
	if err != nil {
		return err
	}

	for _, spec := range cmd.Cells() {
		if _, err = lockerEntity.AddCell(spec.Code, spec.Size); err != nil {
			return err
		}
	}

	lockerRepo := uow.LockerRepository()
	if err = lockerRepo.Add(ctx, lockerEntity); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
