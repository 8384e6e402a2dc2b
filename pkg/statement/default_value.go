package statement

import (
	"fmt"
	"strconv"
)

// DefaultValue kinds. The set is closed: generators switch on Kind and treat
// anything else as invalid.
const (
	DefaultLiteral DefaultValueKind = iota + 1
	DefaultSequenceNext
	DefaultFunction
	DefaultComputed
	DefaultNull
)

type (
	// DefaultValueKind tags the variant held by a DefaultValue.
	DefaultValueKind int

	// DefaultValue is the payload of AddDefaultValue: a literal, a reference
	// to the next value of a sequence, a function call, a computed expression,
	// or NULL. The zero value has no kind and is rejected by validation.
	DefaultValue struct {
		kind    DefaultValueKind
		literal any
		expr    string
	}
)

// Literal returns a literal default. Supported values are strings, booleans
// and Go integer and floating point kinds; anything else is formatted with %v
// and treated as a string.
func Literal(v any) DefaultValue {
	switch x := v.(type) {
	case string, bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return DefaultValue{kind: DefaultLiteral, literal: x}
	default:
		return DefaultValue{kind: DefaultLiteral, literal: fmt.Sprintf("%v", v)}
	}
}

// SequenceNext returns a default that draws from the named sequence.
func SequenceNext(sequence string) DefaultValue {
	return DefaultValue{kind: DefaultSequenceNext, expr: sequence}
}

// Function returns a default produced by a database function call, e.g. "now()".
func Function(call string) DefaultValue {
	return DefaultValue{kind: DefaultFunction, expr: call}
}

// Computed returns a default computed from a raw SQL expression.
func Computed(expr string) DefaultValue {
	return DefaultValue{kind: DefaultComputed, expr: expr}
}

// Null returns an explicit NULL default.
func Null() DefaultValue {
	return DefaultValue{kind: DefaultNull}
}

// Kind returns the variant tag.
func (d DefaultValue) Kind() DefaultValueKind { return d.kind }

// IsZero reports whether no variant was set.
func (d DefaultValue) IsZero() bool { return d.kind == 0 }

// LiteralValue returns the literal value. It is nil for other kinds.
func (d DefaultValue) LiteralValue() any { return d.literal }

// Expression returns the sequence name, function call or computed expression.
// It is empty for literals and NULL.
func (d DefaultValue) Expression() string { return d.expr }

// String returns a canonical, dialect-neutral rendering used for checksums
// and comparisons. Literal strings are single quoted; other literals are
// formatted with strconv.
func (d DefaultValue) String() string {
	switch d.kind {
	case DefaultLiteral:
		switch x := d.literal.(type) {
		case string:
			return "'" + x + "'"
		case bool:
			return strconv.FormatBool(x)
		case float32:
			return strconv.FormatFloat(float64(x), 'g', -1, 32)
		case float64:
			return strconv.FormatFloat(x, 'g', -1, 64)
		default:
			return fmt.Sprintf("%d", x)
		}
	case DefaultSequenceNext:
		return "nextval(" + d.expr + ")"
	case DefaultFunction, DefaultComputed:
		return d.expr
	case DefaultNull:
		return "NULL"
	default:
		return ""
	}
}

func (k DefaultValueKind) String() string {
	switch k {
	case DefaultLiteral:
		return "literal"
	case DefaultSequenceNext:
		return "sequenceNext"
	case DefaultFunction:
		return "function"
	case DefaultComputed:
		return "computed"
	case DefaultNull:
		return "null"
	default:
		return "unknown"
	}
}
