package commands

import (
	"errors"

	"lockerhub/internal/core/domain/model/account"
	"lockerhub/internal/core/domain/model/kernel"
	"lockerhub/internal/core/ports"
	"lockerhub/internal/pkg/errs"
	"lockerhub/internal/pkg/guard"
)

var ErrPlaceParcelCommandIsNotConstructed = errors.New(
	"PlaceParcelCommand must be created via NewPlaceParcelCommand constructor",
)

// PlaceParcelCommand represents a request to allocate a free cell for a
// registered parcel. The filter narrows candidate lockers by device, city,
// or street; at least one criterion is required.
//
// Example:
//
//	filter := ports.LockerFilter{City: "Springfield"}
//	cmd, err := NewPlaceParcelCommand(actor, parcelID, filter)
//	if err != nil {
//	    return fmt.Errorf("invalid placement request: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to place parcel: %w", err)
//	}
type PlaceParcelCommand struct { //nolint:recvcheck //using for validation
	actor    account.Identity
	parcelID kernel.UUID
	filter   ports.LockerFilter

	guard guard.ConstructorGuard
}

// NewPlaceParcelCommand creates a command to place a parcel into a cell.
// Validates the actor, parcel ID, and that the filter is non-empty.
func NewPlaceParcelCommand(
	actor account.Identity,
	parcelID kernel.UUID,
	filter ports.LockerFilter,
) (PlaceParcelCommand, error) {
	cmd := PlaceParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setParcelID(parcelID),
		cmd.setFilter(filter),
	); err != nil {
		return PlaceParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceParcelCommand) Validate() error {
	return c.guard.Validate(ErrPlaceParcelCommandIsNotConstructed)
}

// Actor returns the authenticated caller.
func (c PlaceParcelCommand) Actor() account.Identity {
	return c.actor
}

// ParcelID returns the identifier of the parcel to place.
func (c PlaceParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Filter returns the locker selection criteria.
func (c PlaceParcelCommand) Filter() ports.LockerFilter {
	return c.filter
}

func (c *PlaceParcelCommand) setActor(actor account.Identity) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *PlaceParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	c.parcelID = parcelID
	return nil
}

func (c *PlaceParcelCommand) setFilter(filter ports.LockerFilter) error {
	if filter.IsEmpty() {
		return errs.NewValueIsRequiredError("filter")
	}
	c.filter = filter
	return nil
}
