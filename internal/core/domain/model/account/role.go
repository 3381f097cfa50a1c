package account

import (
	"fmt"

	"lockerhub/internal/pkg/errs"
)

// Role represents the authorization level of an identity.
// Unknown (0) helps catch uninitialized Role values.
type Role int

const (
	// UnknownRole represents an invalid or undefined role.
	UnknownRole Role = iota

	// Admin operates the back office: provisioning lockers, inspecting
	// diagnostics, and every courier-level operation.
	Admin

	// Courier deposits and hands out parcels at locker sites.
	Courier

	// Customer is a read-only recipient role; it cannot mutate cell or
	// parcel state.
	Customer
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "Unknown",
		Admin:       "Admin",
		Courier:     "Courier",
		Customer:    "Customer",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // UnknownRole is intentionally excluded as it's invalid
	return map[Role]string{
		Admin:    "Admin",
		Courier:  "Courier",
		Customer: "Customer",
	}
}

// RoleFromString parses a role name as stored in the users table.
// Parsing is exact; unknown names yield an error.
func RoleFromString(s string) (Role, error) {
	for role, name := range getValidRoleStrings() {
		if name == s {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause(
		"role is invalid", fmt.Errorf("%q is not a known role", s))
}

// Validate checks if the Role value is valid.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the human-readable name of the role.
// It implements fmt.Stringer and is safe on any Role value.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}
