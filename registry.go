package flagreg

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"sync"

	"github.com/zjrosen/flagreg/internal/log"
)

// reservedNames are registry operation names that cannot be used as flag
// names, so that "-help" and friends stay unambiguous on the command line.
var reservedNames = map[string]struct{}{
	"define":   {},
	"undefine": {},
	"get":      {},
	"set":      {},
	"parse":    {},
	"help":     {},
	"flags":    {},
	"comment":  {},
	"validate": {},
	"restore":  {},
}

// nameRE matches valid flag names: identifier-like tokens, with hyphens
// allowed after the first character.
var nameRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// Registry owns all defined flags and is the single lookup path to them.
// It is safe for concurrent reads and writes of flag values; defining and
// undefining flags while other goroutines use the registry is the caller's
// responsibility to sequence.
//
// Each application (or test) creates its own Registry rather than sharing
// package-global state, so isolated registries can coexist.
type Registry struct {
	mu         sync.RWMutex
	flags      map[string]*Flag
	helpWriter io.Writer
}

// New creates an empty Registry. Help output goes to stdout unless
// redirected with SetHelpWriter.
func New() *Registry {
	return &Registry{
		flags:      make(map[string]*Flag),
		helpWriter: os.Stdout,
	}
}

// SetHelpWriter redirects the help listing emitted by Parse on --help.
func (r *Registry) SetHelpWriter(w io.Writer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.helpWriter = w
}

// Define registers a new flag and returns its handle. The default value is
// converted and validated the same way any assignment is. The caller's
// source location is recorded for help grouping and diagnostics.
func (r *Registry) Define(kind Kind, name string, def any, description string) (*Flag, error) {
	return r.define(kind, name, def, description, callerSite(2))
}

// DefineString registers a string flag.
func (r *Registry) DefineString(name, def, description string) (*Flag, error) {
	return r.define(KindString, name, def, description, callerSite(2))
}

// DefineToken registers a token flag.
func (r *Registry) DefineToken(name string, def Token, description string) (*Flag, error) {
	return r.define(KindToken, name, def, description, callerSite(2))
}

// DefineInt registers an integer flag.
func (r *Registry) DefineInt(name string, def int64, description string) (*Flag, error) {
	return r.define(KindInt, name, def, description, callerSite(2))
}

// DefineFloat registers a float flag.
func (r *Registry) DefineFloat(name string, def float64, description string) (*Flag, error) {
	return r.define(KindFloat, name, def, description, callerSite(2))
}

// DefineBool registers a boolean flag.
func (r *Registry) DefineBool(name string, def bool, description string) (*Flag, error) {
	return r.define(KindBool, name, def, description, callerSite(2))
}

// Must unwraps a Define result, panicking on error. Intended for
// package-level flag declarations where a failure is a programming error.
func Must(f *Flag, err error) *Flag {
	if err != nil {
		panic(err)
	}
	return f
}

func (r *Registry) define(kind Kind, name string, def any, description, definedAt string) (*Flag, error) {
	if !nameRE.MatchString(name) {
		return nil, fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	if _, reserved := reservedNames[name]; reserved {
		return nil, fmt.Errorf("%q: %w", name, ErrReservedName)
	}

	f, err := newFlag(kind, name, def, description, definedAt)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.flags[name]; exists {
		return nil, fmt.Errorf("%q: %w", name, ErrDuplicateFlag)
	}
	r.flags[name] = f
	log.Debug(log.CatRegistry, "Flag defined", "name", name, "kind", kind, "default", f.Default(), "at", definedAt)
	return f, nil
}

// Undefine removes a flag from the registry, making the name available for
// redefinition. Used chiefly for test isolation.
func (r *Registry) Undefine(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.flags[name]; !exists {
		return fmt.Errorf("%q: %w", name, ErrUnknownFlag)
	}
	delete(r.flags, name)
	log.Debug(log.CatRegistry, "Flag undefined", "name", name)
	return nil
}

// Lookup returns the flag handle for a name, or false if it is not defined.
func (r *Registry) Lookup(name string) (*Flag, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.flags[name]
	return f, ok
}

// Get returns the current value of the named flag.
func (r *Registry) Get(name string) (Value, error) {
	f, err := r.lookup(name)
	if err != nil {
		return Value{}, err
	}
	return f.Get(), nil
}

// Set assigns a value to the named flag, converting textual input and
// running the flag's validator chain. See Flag.Set.
func (r *Registry) Set(name string, v any) error {
	f, err := r.lookup(name)
	if err != nil {
		return err
	}
	return f.Set(v)
}

// SetIfDefault assigns a value only when the flag has never been explicitly
// set. It reports whether the assignment happened; when it does not, the
// flag is left untouched.
func (r *Registry) SetIfDefault(name string, v any) (bool, error) {
	f, err := r.lookup(name)
	if err != nil {
		return false, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.explicit {
		return false, nil
	}
	val, err := f.coerce(v)
	if err != nil {
		return false, err
	}
	if err := f.checkLocked(val); err != nil {
		return false, err
	}
	f.value = val
	f.explicit = true
	return true, nil
}

// RestoreDefault resets the named flag to its default value.
func (r *Registry) RestoreDefault(name string) error {
	f, err := r.lookup(name)
	if err != nil {
		return err
	}
	f.RestoreDefault()
	return nil
}

// RestoreAllDefaults resets every defined flag to its default value.
func (r *Registry) RestoreAllDefaults() {
	for _, f := range r.Flags() {
		f.RestoreDefault()
	}
}

// IsDefault reports whether the named flag has never been explicitly set.
func (r *Registry) IsDefault(name string) (bool, error) {
	f, err := r.lookup(name)
	if err != nil {
		return false, err
	}
	return f.IsDefault(), nil
}

// DefaultValue returns the default value of the named flag.
func (r *Registry) DefaultValue(name string) (Value, error) {
	f, err := r.lookup(name)
	if err != nil {
		return Value{}, err
	}
	return f.Default(), nil
}

// Comment returns the description of the named flag. Unlike the other
// accessors it reports absence with the second return value instead of an
// error, which long-standing callers rely on for optional lookups.
func (r *Registry) Comment(name string) (string, bool) {
	f, ok := r.Lookup(name)
	if !ok {
		return "", false
	}
	return f.Description(), true
}

// Validate checks a prospective value against the named flag's validator
// chain without assigning it. Textual input is converted first, exactly as
// Set would convert it.
func (r *Registry) Validate(name string, v any) error {
	f, err := r.lookup(name)
	if err != nil {
		return err
	}
	val, err := f.coerce(v)
	if err != nil {
		return err
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.checkLocked(val)
}

// AddValidator appends a validator to the named flag's chain. See
// Flag.AddValidator for the re-check semantics.
func (r *Registry) AddValidator(name string, v Validator) error {
	f, err := r.lookup(name)
	if err != nil {
		return err
	}
	return f.AddValidator(v)
}

// AddRangeValidator constrains the named numeric flag to [lo, hi].
// Use math.Inf for an unbounded end.
func (r *Registry) AddRangeValidator(name string, lo, hi float64) error {
	return r.AddValidator(name, NewRangeValidator(lo, hi))
}

// AddAllowedValuesValidator constrains the named flag to a fixed value set.
// Values are coerced to the flag's kind the same way Set coerces them.
func (r *Registry) AddAllowedValuesValidator(name string, allowed ...any) error {
	f, err := r.lookup(name)
	if err != nil {
		return err
	}
	values, err := f.coerceAll(allowed)
	if err != nil {
		return err
	}
	return f.AddValidator(NewAllowedValuesValidator(values...))
}

// AddDisallowedValuesValidator excludes a fixed value set for the named flag.
func (r *Registry) AddDisallowedValuesValidator(name string, disallowed ...any) error {
	f, err := r.lookup(name)
	if err != nil {
		return err
	}
	values, err := f.coerceAll(disallowed)
	if err != nil {
		return err
	}
	return f.AddValidator(NewDisallowedValuesValidator(values...))
}

// AddCustomValidator constrains the named flag with an arbitrary predicate.
func (r *Registry) AddCustomValidator(name string, predicate func(Value) bool, message string) error {
	return r.AddValidator(name, NewCustomValidator(predicate, message))
}

// Flags returns a snapshot of all defined flags sorted by name.
func (r *Registry) Flags() []*Flag {
	r.mu.RLock()
	defer r.mu.RUnlock()

	flags := make([]*Flag, 0, len(r.flags))
	for _, f := range r.flags {
		flags = append(flags, f)
	}
	sort.Slice(flags, func(i, j int) bool { return flags[i].name < flags[j].name })
	return flags
}

// Names returns all defined flag names sorted lexicographically.
func (r *Registry) Names() []string {
	flags := r.Flags()
	names := make([]string, len(flags))
	for i, f := range flags {
		names[i] = f.name
	}
	return names
}

// Len returns the number of defined flags.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.flags)
}

func (r *Registry) lookup(name string) (*Flag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.flags[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownFlag)
	}
	return f, nil
}

// callerSite captures the source location of the flag definition for help
// grouping. Best effort; "unknown" when the runtime cannot resolve it.
func callerSite(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}
