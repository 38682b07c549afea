package flagreg

import (
	"fmt"
	"slices"
	"sync"
)

// Flag is a named, typed, validated configuration value. Name, kind,
// default, description, and definition site are immutable after creation;
// the current value and the validator chain are mutated only through the
// flag's methods.
//
// A Flag is safe for concurrent use. Defining and undefining flags while
// other goroutines read them remains the caller's responsibility (typically
// restricted to single-threaded startup and test teardown).
type Flag struct {
	name        string
	kind        Kind
	description string
	definedAt   string

	mu         sync.RWMutex
	value      Value
	def        Value
	explicit   bool
	validators []Validator
}

// newFlag routes the default through the normal validated setter, then
// clears the explicit marker: definition itself is never an explicit
// assignment.
func newFlag(kind Kind, name string, def any, description, definedAt string) (*Flag, error) {
	f := &Flag{
		name:        name,
		kind:        kind,
		description: description,
		definedAt:   definedAt,
		validators:  []Validator{typeValidator{kind: kind}},
	}
	if err := f.Set(def); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.def = f.value
	f.explicit = false
	f.mu.Unlock()
	return f, nil
}

// Name returns the flag's name, without the leading dash.
func (f *Flag) Name() string { return f.name }

// Kind returns the flag's declared value type.
func (f *Flag) Kind() Kind { return f.kind }

// Description returns the flag's description text.
func (f *Flag) Description() string { return f.description }

// DefinedAt returns the source location recorded when the flag was defined,
// or "unknown" when the location could not be captured.
func (f *Flag) DefinedAt() string { return f.definedAt }

// Get returns the flag's current value.
func (f *Flag) Get() Value {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.value
}

// Default returns the default value recorded at definition time.
func (f *Flag) Default() Value {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.def
}

// IsDefault reports whether the flag has never been explicitly assigned
// since definition or the last RestoreDefault. An explicit assignment of a
// value equal to the default still counts as explicit.
func (f *Flag) IsDefault() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return !f.explicit
}

// Set assigns a new value. A string input is converted to the flag's kind;
// any other input must already be of the native type. The converted value is
// checked against the full validator chain; on failure the stored value is
// left untouched and an InvalidValueError is returned. On success the flag
// is marked explicit, even when the new value equals the default.
func (f *Flag) Set(v any) error {
	val, err := f.coerce(v)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkLocked(val); err != nil {
		return err
	}
	f.value = val
	f.explicit = true
	return nil
}

// RestoreDefault resets the flag to its default value and clears the
// explicit marker. Validation is bypassed: the default was already validated
// at definition time and at every validator addition since.
func (f *Flag) RestoreDefault() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.value = f.def
	f.explicit = false
}

// AddValidator appends a validator to the flag's chain and immediately
// re-checks the current value against the full chain. If the current value
// no longer passes, the flag is left unchanged (the validator is not
// retained) and an InvalidValueError is returned.
func (f *Flag) AddValidator(v Validator) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	chain := append(slices.Clone(f.validators), v)
	for _, c := range chain {
		if !c.Check(f.value) {
			return &InvalidValueError{
				FlagName: f.name,
				Value:    f.value.String(),
				Message:  c.Message(),
			}
		}
	}
	f.validators = chain
	return nil
}

// coerce turns arbitrary input into a Value. Strings are textual input and
// go through conversion; everything else must map directly onto the variant.
func (f *Flag) coerce(v any) (Value, error) {
	if s, ok := v.(string); ok {
		return convert(f.kind, s), nil
	}
	val, ok := valueOf(v)
	if !ok {
		return Value{}, &InvalidValueError{
			FlagName: f.name,
			Value:    fmt.Sprintf("%v", v),
			Message:  fmt.Sprintf("unsupported value type %T", v),
		}
	}
	return val, nil
}

// coerceAll coerces a batch of inputs to the flag's kind, failing on the
// first input that cannot be represented.
func (f *Flag) coerceAll(vs []any) ([]Value, error) {
	values := make([]Value, len(vs))
	for i, v := range vs {
		val, err := f.coerce(v)
		if err != nil {
			return nil, err
		}
		values[i] = val
	}
	return values, nil
}

// checkLocked runs the validator chain in insertion order. The first
// failure aborts with that validator's message; assignment is all-or-nothing.
func (f *Flag) checkLocked(val Value) error {
	for _, v := range f.validators {
		if !v.Check(val) {
			return &InvalidValueError{
				FlagName: f.name,
				Value:    val.String(),
				Message:  v.Message(),
			}
		}
	}
	return nil
}
