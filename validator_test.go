package flagreg

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// === Unit Tests: Type validator ===

func TestTypeValidator_ChecksExactKind(t *testing.T) {
	tv := typeValidator{kind: KindInt}
	require.True(t, tv.Check(IntValue(5)))
	require.False(t, tv.Check(FloatValue(5)))
	require.False(t, tv.Check(StringValue("5")))
	require.Contains(t, tv.Message(), "int")
}

// === Unit Tests: RangeValidator ===

func TestRangeValidator_InclusiveBounds(t *testing.T) {
	rv := NewRangeValidator(0, 10)
	require.True(t, rv.Check(IntValue(0)))
	require.True(t, rv.Check(IntValue(10)))
	require.False(t, rv.Check(IntValue(-1)))
	require.False(t, rv.Check(IntValue(11)))
	require.True(t, rv.Check(FloatValue(9.99)))
}

func TestRangeValidator_UnboundedEnds(t *testing.T) {
	rv := NewRangeValidator(0, math.Inf(1))
	require.True(t, rv.Check(IntValue(math.MaxInt64)))
	require.False(t, rv.Check(IntValue(-1)))

	rv = NewRangeValidator(math.Inf(-1), 0)
	require.True(t, rv.Check(IntValue(math.MinInt64)))
	require.False(t, rv.Check(IntValue(1)))
}

func TestRangeValidator_RejectsNonNumeric(t *testing.T) {
	rv := NewRangeValidator(0, 10)
	require.False(t, rv.Check(StringValue("5")))
	require.False(t, rv.Check(BoolValue(true)))
}

func TestRangeValidator_MessageNamesBounds(t *testing.T) {
	require.Equal(t, "value must be in range [0, 10]", NewRangeValidator(0, 10).Message())
	require.Equal(t, "value must be in range [0, +inf]", NewRangeValidator(0, math.Inf(1)).Message())
}

// === Unit Tests: AllowedValuesValidator ===

func TestAllowedValuesValidator_MembershipOnly(t *testing.T) {
	av := NewAllowedValuesValidator(TokenValue("debug"), TokenValue("info"))
	require.True(t, av.Check(TokenValue("debug")))
	require.False(t, av.Check(TokenValue("trace")))
	// Kind is part of identity: the string "debug" is not the token "debug".
	require.False(t, av.Check(StringValue("debug")))
	require.Contains(t, av.Message(), "debug, info")
}

// === Unit Tests: DisallowedValuesValidator ===

func TestDisallowedValuesValidator_ExcludesMembers(t *testing.T) {
	dv := NewDisallowedValuesValidator(IntValue(0))
	require.False(t, dv.Check(IntValue(0)))
	require.True(t, dv.Check(IntValue(1)))
	require.Contains(t, dv.Message(), "must not be")
}

// === Unit Tests: CustomValidator ===

func TestCustomValidator_UsesPredicateAndMessage(t *testing.T) {
	even := NewCustomValidator(func(v Value) bool {
		i, ok := v.AsInt()
		return ok && i%2 == 0
	}, "value must be even")

	require.True(t, even.Check(IntValue(4)))
	require.False(t, even.Check(IntValue(3)))
	require.Equal(t, "value must be even", even.Message())
}
