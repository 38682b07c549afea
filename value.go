// Package flagreg implements a registry of named, typed command-line flags.
// Flags are defined anywhere in a program, parsed from an argument list in a
// single initialization step, and read or written through the registry (or
// the handle returned by Define) for the rest of the process lifetime.
package flagreg

import (
	"strconv"
	"strings"
)

// Kind identifies one of the five supported flag value types.
type Kind int

const (
	KindString Kind = iota
	KindToken
	KindInt
	KindFloat
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindToken:
		return "token"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Token is an interned symbolic value, distinct from a free-form string.
type Token string

// Value is a closed tagged variant over the five flag value types.
// The kind is decided at flag definition time; conversion and validation
// dispatch on it rather than on runtime introspection.
type Value struct {
	kind Kind
	s    string // payload for KindString and KindToken
	i    int64
	f    float64
	b    bool
}

// StringValue wraps a free-form string.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// TokenValue wraps an interned token.
func TokenValue(t Token) Value { return Value{kind: KindToken, s: string(t)} }

// IntValue wraps a signed 64-bit integer.
func IntValue(i int64) Value { return Value{kind: KindInt, i: i} }

// FloatValue wraps an IEEE double.
func FloatValue(f float64) Value { return Value{kind: KindFloat, f: f} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// AsString returns the string payload and true if the value is a string.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsToken returns the token payload and true if the value is a token.
func (v Value) AsToken() (Token, bool) { return Token(v.s), v.kind == KindToken }

// AsInt returns the integer payload and true if the value is an int.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

// AsFloat returns the float payload and true if the value is a float.
func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == KindFloat }

// AsBool returns the boolean payload and true if the value is a bool.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(other Value) bool { return v == other }

// String returns the human-readable form of the value, used in error
// messages, help output, and logging. Strings are unquoted.
func (v Value) String() string {
	switch v.kind {
	case KindString, KindToken:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Text returns the canonical textual form used in serialized argument lists.
// It differs from String only for string values, which are quoted and escaped
// so the result survives a re-parse even when it contains spaces.
func (v Value) Text() string {
	if v.kind == KindString {
		return strconv.Quote(v.s)
	}
	return v.String()
}

// valueOf maps a native Go value onto the variant. It reports false for
// types the registry does not support. Textual input never reaches here;
// Flag.Set routes strings through convert first.
func valueOf(v any) (Value, bool) {
	switch x := v.(type) {
	case Value:
		return x, true
	case Token:
		return TokenValue(x), true
	case bool:
		return BoolValue(x), true
	case int:
		return IntValue(int64(x)), true
	case int32:
		return IntValue(int64(x)), true
	case int64:
		return IntValue(x), true
	case float32:
		return FloatValue(float64(x)), true
	case float64:
		return FloatValue(x), true
	default:
		return Value{}, false
	}
}

// convert attempts to turn textual input into a value of the given kind.
// On conversion failure the original text is carried through unchanged as a
// string value, so that the flag's type validator reports the failure
// uniformly instead of each call site producing its own parse error.
func convert(kind Kind, text string) Value {
	switch kind {
	case KindString:
		// Serialized argument lists carry strings in quoted form; accept
		// both that and bare text.
		if len(text) >= 2 && strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) {
			if unquoted, err := strconv.Unquote(text); err == nil {
				return StringValue(unquoted)
			}
		}
		return StringValue(text)
	case KindToken:
		return TokenValue(Token(text))
	case KindInt:
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return IntValue(i)
		}
	case KindFloat:
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return FloatValue(f)
		}
	case KindBool:
		if strings.EqualFold(text, "true") {
			return BoolValue(true)
		}
		if strings.EqualFold(text, "false") {
			return BoolValue(false)
		}
	}
	// Unconverted carrier; fails the type validator for non-string kinds.
	return StringValue(text)
}
