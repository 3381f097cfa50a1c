package parcel

import (
	"errors"
	"fmt"

	"lockerhub/internal/core/domain/model/kernel"
	"lockerhub/internal/pkg/errs"
	"lockerhub/internal/pkg/guard"
)

var (
	// ErrInvalidTransition indicates that the requested lifecycle status is
	// unreachable from the parcel's current state. It is an expected
	// outcome surfaced to the caller, not a system failure.
	ErrInvalidTransition = errors.New("invalid parcel status transition")

	// ErrParcelIsNotConstructed is returned when a Parcel instance was not
	// created through the NewParcel factory method.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel constructor")
)

// Parcel represents a shipment unit tracked through placement and
// collection. It is an aggregate root driving the lifecycle state machine;
// the bound cell's lock and occupancy state is derived from these
// transitions by the Lifecycle Synchronizer.
//
// Parcel maintains these invariants:
//   - cellID is nil while status is Created
//   - cellID is non-nil while status is InLocker
//   - cellID is cleared when the parcel reaches Delivered
//
// The cell reference is a weak relation: ownership of the binding lies with
// the placement workflow, not with the parcel.
type Parcel struct {
	// id is the unique identifier for the parcel
	id kernel.UUID

	// recipient is the person the parcel is addressed to
	recipient string

	// status is the current state in the parcel lifecycle
	status Status

	// cellID references the cell holding the parcel (nil if none)
	cellID *kernel.UUID

	// guard ensures the parcel was created via a constructor
	guard guard.ConstructorGuard
}

// NewParcel registers a new parcel in Created status with no cell bound.
//
// Parameters:
//   - id: Unique identifier for the parcel (must be valid UUID)
//   - recipient: Recipient name (must be non-empty)
func NewParcel(id kernel.UUID, recipient string) (*Parcel, error) {
	p := &Parcel{
		status: Created,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setRecipient(recipient),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreParcel reconstructs a Parcel aggregate from persistent storage.
// The status/cell-binding consistency rule is re-checked so corrupted rows
// fail loudly at the boundary instead of propagating.
func RestoreParcel(id kernel.UUID, recipient string, status Status, cellID *kernel.UUID) (*Parcel, error) {
	p := &Parcel{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setRecipient(recipient),
		p.setStatus(status),
		p.setCellID(cellID),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the Parcel instance was properly constructed.
func (p *Parcel) Validate() error {
	if p == nil {
		return ErrParcelIsNotConstructed
	}
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

// IsEqual compares two parcels by their unique identifiers.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the parcel's unique identifier.
func (p *Parcel) ID() kernel.UUID {
	return p.id
}

// Recipient returns the recipient name.
func (p *Parcel) Recipient() string {
	return p.recipient
}

// Status returns the current status of the parcel.
func (p *Parcel) Status() Status {
	return p.status
}

// CellID returns the identifier of the cell holding the parcel.
// Returns nil if no cell is bound.
func (p *Parcel) CellID() *kernel.UUID {
	return p.cellID
}

// Place binds the parcel to a cell and moves it Created→InLocker.
// The caller is responsible for transitioning the cell to Occupied within
// the same transaction.
func (p *Parcel) Place(cellID kernel.UUID) error {
	if err := cellID.Validate(); err != nil {
		return err
	}

	if p.status != Created {
		return fmt.Errorf("%w: cannot place parcel in status %s", ErrInvalidTransition, p.status)
	}

	p.status = InLocker
	p.cellID = &cellID
	return nil
}

// ConfirmDeposit acknowledges the courier closing the cell door. The parcel
// must be in a locker; the call itself changes nothing on the parcel and is
// idempotent (the derived cell effect is re-engaging the lock).
func (p *Parcel) ConfirmDeposit() error {
	if p.status != InLocker || p.cellID == nil {
		return fmt.Errorf("%w: cannot confirm deposit in status %s", ErrInvalidTransition, p.status)
	}
	return nil
}

// Collect marks the parcel as collected: InLocker→Delivered, clearing the
// cell binding. Collecting an already Delivered parcel is a no-op so the
// transition is idempotent per trigger.
func (p *Parcel) Collect() error {
	if p.status == Delivered {
		return nil
	}

	if p.status != InLocker || p.cellID == nil {
		return fmt.Errorf("%w: cannot collect parcel in status %s", ErrInvalidTransition, p.status)
	}

	p.status = Delivered
	p.cellID = nil
	return nil
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setRecipient(recipient string) error {
	if recipient == "" {
		return errs.NewValueIsRequiredError("recipient")
	}
	p.recipient = recipient
	return nil
}

func (p *Parcel) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	p.status = status
	return nil
}

func (p *Parcel) setCellID(cellID *kernel.UUID) error {
	if cellID != nil {
		if err := cellID.Validate(); err != nil {
			return err
		}
	}

	if err := p.status.ValidateCanHaveCell(cellID != nil); err != nil {
		return err
	}

	p.cellID = cellID
	return nil
}
