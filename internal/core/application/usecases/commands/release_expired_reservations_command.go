package commands

import (
	"errors"
	"time"

	"lockerhub/internal/pkg/errs"
	"lockerhub/internal/pkg/guard"
)

var ErrReleaseExpiredReservationsCommandIsNotConstructed = errors.New(
	"ReleaseExpiredReservationsCommand must be created via NewReleaseExpiredReservationsCommand constructor",
)

// ReleaseExpiredReservationsCommand represents a request to return cells
// stuck in Reserved longer than the TTL back to Available. Issued by the
// background job, not by an authenticated user.
type ReleaseExpiredReservationsCommand struct { //nolint:recvcheck //using for validation
	ttl time.Duration

	guard guard.ConstructorGuard
}

// NewReleaseExpiredReservationsCommand creates a command to release expired
// reservations. The TTL must be positive.
func NewReleaseExpiredReservationsCommand(ttl time.Duration) (ReleaseExpiredReservationsCommand, error) {
	cmd := ReleaseExpiredReservationsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setTTL(ttl); err != nil {
		return ReleaseExpiredReservationsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReleaseExpiredReservationsCommand) Validate() error {
	return c.guard.Validate(ErrReleaseExpiredReservationsCommandIsNotConstructed)
}

// TTL returns how long a reservation may be held before it is abandoned.
func (c ReleaseExpiredReservationsCommand) TTL() time.Duration {
	return c.ttl
}

func (c *ReleaseExpiredReservationsCommand) setTTL(ttl time.Duration) error {
	if ttl <= 0 {
		return errs.NewValueIsRequiredError("ttl")
	}
	c.ttl = ttl
	return nil
}
