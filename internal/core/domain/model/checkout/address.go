package checkout

import (
	"strings"

	"checkout/internal/core/domain/validation"
	"checkout/internal/pkg/guard"
)

// DefaultCity is filled in when the customer leaves the city blank.
// The shop delivers within a single metro area.
const DefaultCity = "Manama"

// ErrAddressInfoIsNotConstructed is returned when validating a zero-value
// AddressInfo.
var ErrAddressInfoIsNotConstructed = guard.ErrDefaultConstructorGuard

// AddressInfo holds a delivery destination. Street, building, and area are
// required; floor, apartment, and notes are optional; a blank city defaults
// to DefaultCity.
type AddressInfo struct { //nolint:recvcheck //using for validation
	street    string
	building  string
	area      string
	city      string
	floor     string
	apartment string
	notes     string
	guard     guard.ConstructorGuard
}

// NewAddressInfo creates a validated delivery address. A validation failure
// returns a validation.FieldErrors value.
func NewAddressInfo(street, building, area, city, floor, apartment, notes string) (AddressInfo, error) {
	fieldErrors := validation.ValidateAddress(validation.AddressInput{
		Street:   street,
		Building: building,
		Area:     area,
		City:     city,
		Notes:    notes,
	})
	if err := fieldErrors.AsError(); err != nil {
		return AddressInfo{}, err
	}

	if strings.TrimSpace(city) == "" {
		city = DefaultCity
	}

	return AddressInfo{
		street:    street,
		building:  building,
		area:      area,
		city:      city,
		floor:     floor,
		apartment: apartment,
		notes:     notes,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the AddressInfo was created through NewAddressInfo.
func (a AddressInfo) Validate() error {
	return a.guard.Validate(ErrAddressInfoIsNotConstructed)
}

// Street returns the street line.
func (a AddressInfo) Street() string { return a.street }

// Building returns the building line.
func (a AddressInfo) Building() string { return a.building }

// Area returns the area or district.
func (a AddressInfo) Area() string { return a.area }

// City returns the city, never empty.
func (a AddressInfo) City() string { return a.city }

// Floor returns the optional floor.
func (a AddressInfo) Floor() string { return a.floor }

// Apartment returns the optional apartment.
func (a AddressInfo) Apartment() string { return a.apartment }

// Notes returns the optional courier notes.
func (a AddressInfo) Notes() string { return a.notes }
