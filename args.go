package flagreg

import (
	"os"
	"slices"
	"strings"

	"github.com/zjrosen/flagreg/internal/log"
)

// osExit is swapped in tests of the --help path.
var osExit = os.Exit

// Parse scans an argument list for defined flags and applies their values.
//
// For every defined flag, each occurrence of "-<name>" consumes that token
// and the one following it as the raw value, which is assigned through the
// flag's validated setter. Occurrences are applied in left-to-right order,
// so when a flag appears more than once the last occurrence wins. Tokens
// that match no defined flag are returned in their original relative order.
//
// A "--help" or "-help" token anywhere aborts parsing: the help listing is
// written to the registry's help writer and the process exits with status 0.
//
// The first conversion or validation failure aborts parsing with an
// InvalidValueError; flags assigned before the failure keep their new
// values, the failing flag keeps its prior one.
func (r *Registry) Parse(args []string) ([]string, error) {
	rest := slices.Clone(args)

	if slices.Contains(rest, "--help") || slices.Contains(rest, "-help") {
		r.mu.RLock()
		w := r.helpWriter
		r.mu.RUnlock()
		r.WriteHelp(w)
		osExit(0)
		return nil, nil
	}

	for _, f := range r.Flags() {
		token := "-" + f.Name()
		for {
			i := slices.Index(rest, token)
			if i < 0 {
				break
			}
			if i+1 >= len(rest) {
				return rest, &InvalidValueError{
					FlagName: f.Name(),
					Value:    "",
					Message:  "missing value after " + token,
				}
			}
			raw := rest[i+1]
			rest = slices.Delete(rest, i, i+2)
			if err := f.Set(raw); err != nil {
				return rest, err
			}
			log.Debug(log.CatParse, "Flag parsed", "name", f.Name(), "value", f.Get())
		}
	}
	return rest, nil
}

// ToArgumentList serializes all flags' current values as alternating
// "-<name>", value tokens, sorted lexicographically by name. Strings are
// quoted so the result re-parses to identical values against a registry
// with the same flags defined.
func (r *Registry) ToArgumentList() []string {
	flags := r.Flags()
	out := make([]string, 0, len(flags)*2)
	for _, f := range flags {
		out = append(out, "-"+f.Name(), f.Get().Text())
	}
	return out
}

// ToDisplayString returns the argument list joined with single spaces,
// intended for logging.
func (r *Registry) ToDisplayString() string {
	return strings.Join(r.ToArgumentList(), " ")
}
