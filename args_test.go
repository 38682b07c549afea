package flagreg

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// === Unit Tests: Parse ===

func TestRegistry_Parse_LastOccurrenceWins(t *testing.T) {
	reg := New()
	Must(reg.DefineBool("bar", true, ""))
	Must(reg.DefineInt("baz", 3, ""))

	rest, err := reg.Parse([]string{"-bar", "false", "-baz", "4", "-bar", "true", "-baz", "5"})
	require.NoError(t, err)
	require.Empty(t, rest)

	bar, _ := reg.Get("bar")
	require.True(t, bar.Equal(BoolValue(true)))
	baz, _ := reg.Get("baz")
	require.True(t, baz.Equal(IntValue(5)))

	// Both flags were explicitly assigned, even bar whose final value
	// equals its default.
	for _, name := range []string{"bar", "baz"} {
		isDef, err := reg.IsDefault(name)
		require.NoError(t, err)
		require.False(t, isDef, "flag %q", name)
	}
}

func TestRegistry_Parse_LeavesUnmatchedTokens(t *testing.T) {
	reg := New()
	Must(reg.DefineInt("foo", 41, ""))

	rest, err := reg.Parse([]string{"-foo", "42", "hello world"})
	require.NoError(t, err)
	require.Equal(t, []string{"hello world"}, rest)

	foo, _ := reg.Get("foo")
	require.True(t, foo.Equal(IntValue(42)))
}

func TestRegistry_Parse_PreservesUnmatchedOrder(t *testing.T) {
	reg := New()
	Must(reg.DefineInt("n", 0, ""))

	rest, err := reg.Parse([]string{"first", "-n", "1", "second", "third"})
	require.NoError(t, err)
	require.Equal(t, []string{"first", "second", "third"}, rest)
}

func TestRegistry_Parse_DoesNotMutateInput(t *testing.T) {
	reg := New()
	Must(reg.DefineInt("n", 0, ""))

	args := []string{"-n", "1", "extra"}
	_, err := reg.Parse(args)
	require.NoError(t, err)
	require.Equal(t, []string{"-n", "1", "extra"}, args)
}

func TestRegistry_Parse_MissingValueFails(t *testing.T) {
	reg := New()
	Must(reg.DefineInt("n", 0, ""))

	_, err := reg.Parse([]string{"-n"})
	var ive *InvalidValueError
	require.ErrorAs(t, err, &ive)
	require.Equal(t, "n", ive.FlagName)
	require.Contains(t, ive.Message, "missing value")
}

func TestRegistry_Parse_InvalidValueAborts(t *testing.T) {
	reg := New()
	Must(reg.DefineInt("n", 3, ""))

	_, err := reg.Parse([]string{"-n", "not an int"})
	var ive *InvalidValueError
	require.ErrorAs(t, err, &ive)

	// The failed assignment left the flag at its default.
	n, _ := reg.Get("n")
	require.True(t, n.Equal(IntValue(3)))
}

func TestRegistry_Parse_QuotedStringValue(t *testing.T) {
	reg := New()
	Must(reg.DefineString("msg", "", ""))

	_, err := reg.Parse([]string{"-msg", `"hello world"`})
	require.NoError(t, err)

	msg, _ := reg.Get("msg")
	require.True(t, msg.Equal(StringValue("hello world")))
}

// === Unit Tests: Help path ===

func TestRegistry_Parse_HelpEmitsListingAndExitsZero(t *testing.T) {
	exitCode := -1
	origExit := osExit
	osExit = func(code int) { exitCode = code }
	defer func() { osExit = origExit }()

	for _, token := range []string{"--help", "-help"} {
		var buf bytes.Buffer
		reg := New()
		reg.SetHelpWriter(&buf)
		Must(reg.DefineInt("baz", 3, "the baz count"))

		rest, err := reg.Parse([]string{"-baz", "9", token})
		require.NoError(t, err)
		require.Nil(t, rest)
		require.Equal(t, 0, exitCode, "token %q", token)
		require.Contains(t, buf.String(), "-baz (int) the baz count (Default: 3)")

		// Help aborts parsing: the flag was never assigned.
		baz, _ := reg.Get("baz")
		require.True(t, baz.Equal(IntValue(3)))
	}
}

// === Unit Tests: Serialization ===

func TestRegistry_ToArgumentList_SortedPairs(t *testing.T) {
	reg := New()
	Must(reg.DefineString("foo", "foobar", ""))
	Must(reg.DefineFloat("bar", 2.0, ""))

	require.Equal(t, []string{"-bar", "2", "-foo", `"foobar"`}, reg.ToArgumentList())
	require.Equal(t, `-bar 2 -foo "foobar"`, reg.ToDisplayString())
}

func TestRegistry_SerializeRoundTrip(t *testing.T) {
	reg := New()
	Must(reg.DefineFloat("bar", 2.0, ""))
	Must(reg.DefineString("foo", "foobar", ""))

	fresh := New()
	Must(fresh.DefineFloat("bar", 0, ""))
	Must(fresh.DefineString("foo", "", ""))

	rest, err := fresh.Parse(reg.ToArgumentList())
	require.NoError(t, err)
	require.Empty(t, rest)

	bar, _ := fresh.Get("bar")
	require.True(t, bar.Equal(FloatValue(2.0)))
	foo, _ := fresh.Get("foo")
	require.True(t, foo.Equal(StringValue("foobar")))
}

// === Property Tests ===

// TestRegistry_RoundTripProperty serializes randomized flag sets and
// re-parses them against an identically-shaped fresh registry.
func TestRegistry_RoundTripProperty(t *testing.T) {
	kinds := []Kind{KindString, KindToken, KindInt, KindFloat, KindBool}

	rapid.Check(t, func(t *rapid.T) {
		reg := New()
		fresh := New()

		numFlags := rapid.IntRange(1, 12).Draw(t, "numFlags")
		defined := make(map[string]Kind)

		for i := 0; i < numFlags; i++ {
			name := fmt.Sprintf("flag_%d", i)
			kind := kinds[rapid.IntRange(0, len(kinds)-1).Draw(t, "kind")]
			defined[name] = kind

			var def any
			switch kind {
			case KindString:
				def = ""
			case KindToken:
				def = Token("none")
			case KindInt:
				def = int64(0)
			case KindFloat:
				def = 0.0
			case KindBool:
				def = false
			}
			if _, err := reg.Define(kind, name, def, ""); err != nil {
				t.Fatalf("define %q: %v", name, err)
			}
			if _, err := fresh.Define(kind, name, def, ""); err != nil {
				t.Fatalf("define %q in fresh registry: %v", name, err)
			}

			// Randomly assigned values; some flags keep their defaults.
			if !rapid.Bool().Draw(t, "assign") {
				continue
			}
			var val any
			switch kind {
			case KindString:
				val = StringValue(rapid.String().Draw(t, "sval"))
			case KindToken:
				val = TokenValue(Token(rapid.StringMatching(`[a-zA-Z_][a-zA-Z0-9_]{0,12}`).Draw(t, "tval")))
			case KindInt:
				val = rapid.Int64().Draw(t, "ival")
			case KindFloat:
				val = rapid.Float64Range(-1e12, 1e12).Draw(t, "fval")
			case KindBool:
				val = rapid.Bool().Draw(t, "bval")
			}
			if err := reg.Set(name, val); err != nil {
				t.Fatalf("set %q: %v", name, err)
			}
		}

		rest, err := fresh.Parse(reg.ToArgumentList())
		if err != nil {
			t.Fatalf("re-parse: %v", err)
		}
		if len(rest) != 0 {
			t.Fatalf("re-parse left tokens behind: %v", rest)
		}

		for name := range defined {
			want, err := reg.Get(name)
			if err != nil {
				t.Fatalf("get %q: %v", name, err)
			}
			got, err := fresh.Get(name)
			if err != nil {
				t.Fatalf("get %q from fresh registry: %v", name, err)
			}
			if !want.Equal(got) {
				t.Fatalf("flag %q: serialized %v, re-parsed %v", name, want, got)
			}
		}
	})
}
