package commands

import (
	"errors"

	"lockerhub/internal/core/domain/model/account"
	"lockerhub/internal/core/domain/model/kernel"
	"lockerhub/internal/pkg/errs"
	"lockerhub/internal/pkg/guard"
)

var ErrRegisterParcelCommandIsNotConstructed = errors.New(
	"RegisterParcelCommand must be created via NewRegisterParcelCommand constructor",
)

// RegisterParcelCommand represents a request to register a new parcel in the
// system. The parcel starts its lifecycle in Created status with no cell
// bound.
//
// Example:
//
//	cmd, err := NewRegisterParcelCommand(actor, parcelID, "Jane Doe")
//	if err != nil {
//	    return fmt.Errorf("invalid parcel data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to register parcel: %w", err)
//	}
type RegisterParcelCommand struct { //nolint:recvcheck //using for validation
	actor     account.Identity
	parcelID  kernel.UUID
	recipient string

	guard guard.ConstructorGuard
}

// NewRegisterParcelCommand creates a command to register a parcel.
// Validates the actor, parcel ID, and recipient name.
func NewRegisterParcelCommand(
	actor account.Identity,
	parcelID kernel.UUID,
	recipient string,
) (RegisterParcelCommand, error) {
	cmd := RegisterParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setParcelID(parcelID),
		cmd.setRecipient(recipient),
	); err != nil {
		return RegisterParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterParcelCommand) Validate() error {
	return c.guard.Validate(ErrRegisterParcelCommandIsNotConstructed)
}

// Actor returns the authenticated caller.
func (c RegisterParcelCommand) Actor() account.Identity {
	return c.actor
}

// ParcelID returns the identifier for the new parcel.
func (c RegisterParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Recipient returns the recipient name.
func (c RegisterParcelCommand) Recipient() string {
	return c.recipient
}

func (c *RegisterParcelCommand) setActor(actor account.Identity) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *RegisterParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	c.parcelID = parcelID
	return nil
}

func (c *RegisterParcelCommand) setRecipient(recipient string) error {
	if recipient == "" {
		return errs.NewValueIsRequiredError("recipient")
	}
	c.recipient = recipient
	return nil
}
