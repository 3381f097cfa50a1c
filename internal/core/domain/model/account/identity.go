package account

import (
	"errors"
	"fmt"

	"lockerhub/internal/core/domain/model/kernel"
	"lockerhub/internal/pkg/errs"
	"lockerhub/internal/pkg/guard"
)

var (
	// ErrForbidden is returned when an authenticated caller lacks the role
	// required by an operation.
	ErrForbidden = errors.New("caller role is insufficient for this operation")

	// ErrIdentityNotApproved is returned when the caller's account has not
	// been approved by an administrator.
	ErrIdentityNotApproved = errors.New("identity is not approved")

	// ErrIdentityIsNotConstructed is returned when an Identity was not
	// created through the NewIdentity constructor.
	ErrIdentityIsNotConstructed = errors.New("Identity must be created via NewIdentity constructor")
)

// Identity is the already-authenticated caller of a use case: who they are
// and what they are allowed to do. It is a value object produced by the
// authentication collaborator at the HTTP boundary; the core never verifies
// credentials itself.
type Identity struct { //nolint:recvcheck //using for validation
	id       kernel.UUID
	login    string
	role     Role
	approved bool

	guard guard.ConstructorGuard
}

// NewIdentity creates an Identity with validated id, login, and role.
func NewIdentity(id kernel.UUID, login string, role Role, approved bool) (Identity, error) {
	identity := Identity{
		approved: approved,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		identity.setID(id),
		identity.setLogin(login),
		identity.setRole(role),
	); err != nil {
		return Identity{}, err
	}

	return identity, nil
}

// Validate ensures the Identity was created through NewIdentity.
func (i Identity) Validate() error {
	return i.guard.Validate(ErrIdentityIsNotConstructed)
}

// ID returns the identity's unique identifier.
func (i Identity) ID() kernel.UUID {
	return i.id
}

// Login returns the identity's login name.
func (i Identity) Login() string {
	return i.login
}

// Role returns the identity's role.
func (i Identity) Role() Role {
	return i.role
}

// IsApproved reports whether the account has been approved.
func (i Identity) IsApproved() bool {
	return i.approved
}

// RequireRole checks that the identity is approved and holds one of the
// given roles. Returns ErrIdentityNotApproved or ErrForbidden otherwise.
func (i Identity) RequireRole(roles ...Role) error {
	if err := i.Validate(); err != nil {
		return err
	}
	if !i.approved {
		return ErrIdentityNotApproved
	}
	for _, role := range roles {
		if i.role == role {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrForbidden, i.role)
}

func (i *Identity) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Identity) setLogin(login string) error {
	if login == "" {
		return errs.NewValueIsRequiredError("login")
	}
	i.login = login
	return nil
}

func (i *Identity) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	i.role = role
	return nil
}
