package kernel

import (
	"errors"
	"fmt"
	"strings"

	"lockerhub/internal/pkg/errs"
	"lockerhub/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when attempting to use an
// improperly initialized Address. Addresses must be created via NewAddress.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address represents the physical location of a locker: the city and the
// street it is installed on. Address is an immutable value object; the zero
// value is invalid and fails validation.
//
// Example:
//
//	addr, err := kernel.NewAddress("Warsaw", "Marszalkowska 12")
//	if err != nil {
//	    // handle validation error
//	}
//	fmt.Println(addr) // Output: Warsaw, Marszalkowska 12
type Address struct { //nolint:recvcheck //using for validation
	city   string
	street string
	guard  guard.ConstructorGuard
}

// NewAddress creates a new Address. Both city and street must be non-empty
// after trimming whitespace.
func NewAddress(city string, street string) (Address, error) {
	addr := Address{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(addr.setCity(city), addr.setStreet(street)); err != nil {
		return Address{}, err
	}

	return addr, nil
}

// City returns the city component of the address.
func (a Address) City() string {
	return a.city
}

// Street returns the street component of the address.
func (a Address) Street() string {
	return a.street
}

// IsEqual reports whether two addresses have identical city and street.
func (a Address) IsEqual(other Address) bool {
	return a.city == other.city && a.street == other.street
}

// MatchesCity reports whether the address city equals the given value or
// starts with it. Matching is case-insensitive; an empty value matches.
func (a Address) MatchesCity(value string) bool {
	return matchesPrefix(a.city, value)
}

// MatchesStreet reports whether the address street equals the given value or
// starts with it. Matching is case-insensitive; an empty value matches.
func (a Address) MatchesStreet(value string) bool {
	return matchesPrefix(a.street, value)
}

// String returns "city, street". It implements fmt.Stringer.
func (a Address) String() string {
	return fmt.Sprintf("%s, %s", a.city, a.street)
}

// Validate ensures the Address was created via NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a *Address) setCity(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}

func (a *Address) setStreet(street string) error {
	street = strings.TrimSpace(street)
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	a.street = street
	return nil
}

func matchesPrefix(field, value string) bool {
	if value == "" {
		return true
	}
	return strings.HasPrefix(strings.ToLower(field), strings.ToLower(value))
}
