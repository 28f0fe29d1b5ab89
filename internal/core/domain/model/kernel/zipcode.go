package kernel

import (
	"fmt"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/pkg/errs"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/pkg/guard"
)

// ZipCodeLength is the number of digits in a valid US zip code.
const ZipCodeLength = 5

// ErrZipCodeIsNotConstructed is returned when attempting to use an improperly initialized ZipCode.
// ZipCodes must be created using the NewZipCode constructor to ensure validity.
var ErrZipCodeIsNotConstructed = errs.NewValueIsRequiredError(
	"zip code must be created via NewZipCode constructor")

// ZipCode is a value object representing a five-digit US postal code.
// It is the geographic key of the platform: service areas are configured per
// zip code and operators subscribe to the zip codes they serve.
//
// ZipCode is immutable. The zero value is invalid and will fail validation;
// use NewZipCode to create instances.
//
// Example:
//
//	zip, err := kernel.NewZipCode("10001")
//	if err != nil {
//	    // handle validation error
//	}
type ZipCode struct {
	value string

	guard guard.ConstructorGuard
}

// NewZipCode creates a ZipCode from its string representation.
// The value must be exactly five ASCII digits; anything else is rejected
// as a ValueIsInvalidError.
func NewZipCode(value string) (ZipCode, error) {
	if len(value) != ZipCodeLength {
		return ZipCode{}, errs.NewValueIsInvalidErrorWithCause("zip code",
			fmt.Errorf("%q is not %d characters long", value, ZipCodeLength))
	}

	for _, r := range value {
		if r < '0' || r > '9' {
			return ZipCode{}, errs.NewValueIsInvalidErrorWithCause("zip code",
				fmt.Errorf("%q contains a non-digit character", value))
		}
	}

	return ZipCode{
		value: value,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// String returns the five-digit text form of the zip code.
func (z ZipCode) String() string {
	return z.value
}

// IsEqual compares two zip codes by value.
func (z ZipCode) IsEqual(other ZipCode) bool {
	return z.value == other.value
}

// Validate ensures the ZipCode was created through NewZipCode.
// Returns ErrZipCodeIsNotConstructed for zero-value instances.
func (z ZipCode) Validate() error {
	return z.guard.Validate(ErrZipCodeIsNotConstructed)
}
