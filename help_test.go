package flagreg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// === Unit Tests: Help formatting ===

func TestWriteHelp_ListsFlagLine(t *testing.T) {
	reg := New()
	Must(reg.DefineInt("port", 8080, "TCP port to listen on"))

	var buf bytes.Buffer
	reg.WriteHelp(&buf)

	require.Contains(t, buf.String(), "-port (int) TCP port to listen on (Default: 8080)")
}

func TestWriteHelp_GroupsByDefinitionFile(t *testing.T) {
	reg := New()
	Must(reg.DefineInt("zeta", 0, "last"))
	Must(reg.DefineInt("alpha", 0, "first"))

	var buf bytes.Buffer
	reg.WriteHelp(&buf)
	out := buf.String()

	// Both flags were defined in this file, so there is one group header.
	require.Equal(t, 1, strings.Count(out, "help_test.go:\n"))

	// Alphabetical within the group.
	require.Less(t, strings.Index(out, "-alpha"), strings.Index(out, "-zeta"))
}

func TestWriteHelp_WrapsLongDescriptions(t *testing.T) {
	reg := New()
	long := strings.Repeat("very long description ", 10)
	Must(reg.DefineString("wordy", "", long))

	var buf bytes.Buffer
	reg.WriteHelp(&buf)

	for _, line := range strings.Split(buf.String(), "\n") {
		require.LessOrEqual(t, len(line), helpWidth+6, "line %q", line)
	}
}

func TestWriteHelp_EmptyRegistry(t *testing.T) {
	reg := New()
	var buf bytes.Buffer
	reg.WriteHelp(&buf)
	require.Empty(t, buf.String())
}
