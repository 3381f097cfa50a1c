package commands

import (
	"errors"

	"lockerhub/internal/core/domain/model/account"
	"lockerhub/internal/core/domain/model/kernel"
	"lockerhub/internal/core/domain/model/parcel"
	"lockerhub/internal/pkg/guard"
)

var ErrApplyTransitionCommandIsNotConstructed = errors.New(
	"ApplyTransitionCommand must be created via NewApplyTransitionCommand constructor",
)

// ApplyTransitionCommand represents a request to move a parcel to a new
// lifecycle status, with the bound cell updated in step.
//
// Example:
//
//	cmd, err := NewApplyTransitionCommand(actor, parcelID, parcel.Delivered)
//	if err != nil {
//	    return fmt.Errorf("invalid transition request: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to apply transition: %w", err)
//	}
type ApplyTransitionCommand struct { //nolint:recvcheck //using for validation
	actor     account.Identity
	parcelID  kernel.UUID
	newStatus parcel.Status

	guard guard.ConstructorGuard
}

// NewApplyTransitionCommand creates a command to apply a lifecycle
// transition. Validates the actor, parcel ID, and target status.
func NewApplyTransitionCommand(
	actor account.Identity,
	parcelID kernel.UUID,
	newStatus parcel.Status,
) (ApplyTransitionCommand, error) {
	cmd := ApplyTransitionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setParcelID(parcelID),
		cmd.setNewStatus(newStatus),
	); err != nil {
		return ApplyTransitionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyTransitionCommand) Validate() error {
	return c.guard.Validate(ErrApplyTransitionCommandIsNotConstructed)
}

// Actor returns the authenticated caller.
func (c ApplyTransitionCommand) Actor() account.Identity {
	return c.actor
}

// ParcelID returns the identifier of the parcel to transition.
func (c ApplyTransitionCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// NewStatus returns the requested target status.
func (c ApplyTransitionCommand) NewStatus() parcel.Status {
	return c.newStatus
}

func (c *ApplyTransitionCommand) setActor(actor account.Identity) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *ApplyTransitionCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	c.parcelID = parcelID
	return nil
}

func (c *ApplyTransitionCommand) setNewStatus(newStatus parcel.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}
	c.newStatus = newStatus
	return nil
}
