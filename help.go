package flagreg

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// helpWidth is the wrap width for flag descriptions in the help listing.
const helpWidth = 80

// WriteHelp writes a human-readable listing of all defined flags, grouped
// by definition site and alphabetized by name within each group. This is
// the output emitted when Parse encounters "--help" or "-help".
func (r *Registry) WriteHelp(w io.Writer) {
	groups := make(map[string][]*Flag)
	for _, f := range r.Flags() {
		site := groupSite(f.DefinedAt())
		groups[site] = append(groups[site], f)
	}

	sites := make([]string, 0, len(groups))
	for site := range groups {
		sites = append(sites, site)
	}
	sort.Strings(sites)

	for i, site := range sites {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s:\n", site)
		for _, f := range groups[site] {
			fmt.Fprint(w, formatFlagHelp(f))
		}
	}
}

// groupSite reduces a "file.go:line" definition site to its file, so flags
// defined across one file land in one help group.
func groupSite(definedAt string) string {
	if i := strings.LastIndex(definedAt, ":"); i > 0 {
		return definedAt[:i]
	}
	return definedAt
}

// formatFlagHelp renders one flag as
// "  -<name> (<type>) <description> (Default: <default>)", wrapping long
// lines and indenting continuations under the description column.
func formatFlagHelp(f *Flag) string {
	line := fmt.Sprintf("-%s (%s) %s (Default: %s)", f.Name(), f.Kind(), f.Description(), f.Default())
	wrapped := wordwrap.String(line, helpWidth-2)

	var b strings.Builder
	for i, l := range strings.Split(wrapped, "\n") {
		if i == 0 {
			b.WriteString("  " + l + "\n")
			continue
		}
		b.WriteString("      " + l + "\n")
	}
	return b.String()
}
