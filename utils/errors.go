package utils

import (
	"github.com/pkg/errors"
)

// NewConfigValidationError returns an error specifying that there was an error
// validating the config at the given path.
func NewConfigValidationError(path string, err error) error {
	return errors.Wrapf(err, "error validating %q", path)
}

// NewConfigValidationFieldRequiredError returns an error specifying that a
// required field is missing.
func NewConfigValidationFieldRequiredError(path, field string) error {
	return NewConfigValidationError(path, errors.Errorf("%q is required", field))
}

// NewOutOfRangeError is used when a config or input value falls outside its
// permitted interval.
func NewOutOfRangeError(field string, value interface{}, lo, hi interface{}) error {
	return errors.Errorf("%q must be in [%v, %v], got %v", field, lo, hi, value)
}

// NewUnexpectedTypeError is used when there is a type mismatch.
func NewUnexpectedTypeError(expected interface{}, actual interface{}) error {
	return errors.Errorf("expected %T but got %T", expected, actual)
}
