package commands

import (
	"errors"

	"lockerhub/internal/core/domain/model/account"
	"lockerhub/internal/core/domain/model/kernel"
	"lockerhub/internal/core/domain/model/locker"
	"lockerhub/internal/pkg/errs"
	"lockerhub/internal/pkg/guard"
)

var (
	ErrProvisionLockerCommandIsNotConstructed = errors.New(
		"ProvisionLockerCommand must be created via NewProvisionLockerCommand constructor",
	)
	ErrNoCellsSpecified = errors.New("a locker must be provisioned with at least one cell")
)

// CellSpec describes one cell to provision: its code and size class.
type CellSpec struct {
	Code string
	Size locker.SizeClass
}

// ProvisionLockerCommand represents a request to register a new physical
// locker with its initial cell layout. Cells are created once here and
// never destroyed afterwards, only deactivated.
//
// Example:
//
//	cmd, err := NewProvisionLockerCommand(actor, lockerID, "LOC1", address,
//	    []CellSpec{{Code: "A1", Size: locker.Small}})
//	if err != nil {
//	    return fmt.Errorf("invalid locker data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to provision locker: %w", err)
//	}
type ProvisionLockerCommand struct { //nolint:recvcheck //using for validation
	actor    account.Identity
	lockerID kernel.UUID
	deviceID string
	address  kernel.Address
	cells    []CellSpec

	guard guard.ConstructorGuard
}

// NewProvisionLockerCommand creates a command to provision a locker.
// Validates the actor, locker ID, device ID, address, and cell specs.
func NewProvisionLockerCommand(
	actor account.Identity,
	lockerID kernel.UUID,
	deviceID string,
	address kernel.Address,
	cells []CellSpec,
) (ProvisionLockerCommand, error) {
	cmd := ProvisionLockerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setLockerID(lockerID),
		cmd.setDeviceID(deviceID),
		cmd.setAddress(address),
		cmd.setCells(cells),
	); err != nil {
		return ProvisionLockerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ProvisionLockerCommand) Validate() error {
	return c.guard.Validate(ErrProvisionLockerCommandIsNotConstructed)
}

// Actor returns the authenticated caller.
func (c ProvisionLockerCommand) Actor() account.Identity {
	return c.actor
}

// LockerID returns the identifier for the new locker.
func (c ProvisionLockerCommand) LockerID() kernel.UUID {
	return c.lockerID
}

// DeviceID returns the hardware device identifier.
func (c ProvisionLockerCommand) DeviceID() string {
	return c.deviceID
}

// Address returns the physical location of the locker.
func (c ProvisionLockerCommand) Address() kernel.Address {
	return c.address
}

// Cells returns the initial cell layout.
func (c ProvisionLockerCommand) Cells() []CellSpec {
	return c.cells
}

func (c *ProvisionLockerCommand) setActor(actor account.Identity) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *ProvisionLockerCommand) setLockerID(lockerID kernel.UUID) error {
	if err := lockerID.Validate(); err != nil {
		return err
	}
	c.lockerID = lockerID
	return nil
}

func (c *ProvisionLockerCommand) setDeviceID(deviceID string) error {
	if deviceID == "" {
		return errs.NewValueIsRequiredError("deviceID")
	}
	c.deviceID = deviceID
	return nil
}

func (c *ProvisionLockerCommand) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	c.address = address
	return nil
}

func (c *ProvisionLockerCommand) setCells(cells []CellSpec) error {
	if len(cells) == 0 {
		return ErrNoCellsSpecified
	}
	c.cells = cells
	return nil
}
