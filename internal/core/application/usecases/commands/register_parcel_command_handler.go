package commands

import (
	"context"

	"lockerhub/internal/core/domain/model/account"
	"lockerhub/internal/core/domain/model/parcel"
)

// RegisterParcelCommandHandler handles the business logic for parcel
// registration. Creates and persists new parcel aggregates in Created status.
//
// Example:
//
//	handler := NewRegisterParcelCommandHandler(uowFactory)
//	cmd, _ := NewRegisterParcelCommand(actor, parcelID, "Jane Doe")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("parcel registration failed: %w", err)
//	}
type RegisterParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewRegisterParcelCommandHandler creates a handler for parcel registration.
// Requires a ParcelUoWFactory for transactional persistence operations.
func NewRegisterParcelCommandHandler(uowFactory ParcelUoWFactory) RegisterParcelCommandHandler {
	return RegisterParcelCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the parcel registration command.
// Administrators and couriers may register parcels. Creates a new parcel
// aggregate and persists it within a transaction.
func (h *RegisterParcelCommandHandler) Handle(ctx context.Context, cmd RegisterParcelCommand) error {
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

	parcelEntity, err := parcel.NewParcel(cmd.ParcelID(), cmd.Recipient())
	if err != nil {
		return err
	}

	parcelRepo := uow.ParcelRepository()
	if err = parcelRepo.Add(ctx, parcelEntity); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
