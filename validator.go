package flagreg

import (
	"fmt"
	"math"
	"strings"
)

// Validator is a named predicate checked on every value assignment.
// A validator that rejects a value aborts the assignment; validators that
// pass have no side effects. Validators are stateless once constructed.
type Validator interface {
	// Check reports whether the value is acceptable.
	Check(v Value) bool

	// Message describes the constraint, used in InvalidValueError when
	// Check fails.
	Message() string
}

// typeValidator enforces that a value's kind matches the flag's declared
// kind. It is installed as the first validator of every flag and cannot be
// removed; textual input that fails conversion is carried through as a
// string value and rejected here.
type typeValidator struct {
	kind Kind
}

func (tv typeValidator) Check(v Value) bool { return v.kind == tv.kind }

func (tv typeValidator) Message() string {
	return fmt.Sprintf("value must be of type %s", tv.kind)
}

// RangeValidator accepts numeric values inside an inclusive range.
// Either bound may be unbounded via math.Inf. Non-numeric values are
// rejected, though in practice the type validator runs first.
type RangeValidator struct {
	lo, hi float64
}

// NewRangeValidator returns a validator accepting values in [lo, hi].
func NewRangeValidator(lo, hi float64) RangeValidator {
	return RangeValidator{lo: lo, hi: hi}
}

func (rv RangeValidator) Check(v Value) bool {
	var x float64
	switch v.kind {
	case KindInt:
		x = float64(v.i)
	case KindFloat:
		x = v.f
	default:
		return false
	}
	return x >= rv.lo && x <= rv.hi
}

func (rv RangeValidator) Message() string {
	return fmt.Sprintf("value must be in range [%s, %s]", formatBound(rv.lo), formatBound(rv.hi))
}

func formatBound(b float64) string {
	switch {
	case math.IsInf(b, -1):
		return "-inf"
	case math.IsInf(b, 1):
		return "+inf"
	default:
		return fmt.Sprintf("%g", b)
	}
}

// AllowedValuesValidator accepts only values from a fixed set.
type AllowedValuesValidator struct {
	allowed []Value
}

// NewAllowedValuesValidator returns a validator accepting only the given values.
func NewAllowedValuesValidator(allowed ...Value) AllowedValuesValidator {
	return AllowedValuesValidator{allowed: allowed}
}

func (av AllowedValuesValidator) Check(v Value) bool {
	for _, a := range av.allowed {
		if v.Equal(a) {
			return true
		}
	}
	return false
}

func (av AllowedValuesValidator) Message() string {
	return fmt.Sprintf("value must be one of {%s}", joinValues(av.allowed))
}

// DisallowedValuesValidator rejects values from a fixed set.
type DisallowedValuesValidator struct {
	disallowed []Value
}

// NewDisallowedValuesValidator returns a validator rejecting the given values.
func NewDisallowedValuesValidator(disallowed ...Value) DisallowedValuesValidator {
	return DisallowedValuesValidator{disallowed: disallowed}
}

func (dv DisallowedValuesValidator) Check(v Value) bool {
	for _, d := range dv.disallowed {
		if v.Equal(d) {
			return false
		}
	}
	return true
}

func (dv DisallowedValuesValidator) Message() string {
	return fmt.Sprintf("value must not be one of {%s}", joinValues(dv.disallowed))
}

// CustomValidator wraps a caller-supplied predicate and failure message.
type CustomValidator struct {
	predicate func(Value) bool
	message   string
}

// NewCustomValidator returns a validator backed by an arbitrary predicate.
func NewCustomValidator(predicate func(Value) bool, message string) CustomValidator {
	return CustomValidator{predicate: predicate, message: message}
}

func (cv CustomValidator) Check(v Value) bool { return cv.predicate(v) }

func (cv CustomValidator) Message() string { return cv.message }

func joinValues(values []Value) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}
