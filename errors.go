package flagreg

import (
	"errors"
	"fmt"
)

// ErrDuplicateFlag is returned when defining a name that is already registered.
var ErrDuplicateFlag = errors.New("flag already defined")

// ErrReservedName is returned when defining a name that collides with a
// registry operation.
var ErrReservedName = errors.New("flag name is reserved")

// ErrUnknownFlag is returned by any operation addressing a name that is not
// currently defined.
var ErrUnknownFlag = errors.New("unknown flag")

// ErrInvalidName is returned when a flag name is not a valid identifier.
var ErrInvalidName = errors.New("invalid flag name")

// InvalidValueError is returned when a value fails type conversion or any
// validator in a flag's chain. The flag's stored value is left unchanged.
type InvalidValueError struct {
	FlagName string
	Value    string
	Message  string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %q for flag %q: %s", e.Value, e.FlagName, e.Message)
}
