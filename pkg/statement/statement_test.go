package statement_test

import (
	"testing"

	. "github.com/pseudomuto/changekit/pkg/statement"
	"github.com/stretchr/testify/require"
)

func TestTypes(t *testing.T) {
	tests := map[Type]Statement{
		TypeAddAutoIncrement:        AddAutoIncrement{},
		TypeAddDefaultValue:         AddDefaultValue{},
		TypeDropDefaultValue:        DropDefaultValue{},
		TypeCreateSequence:          CreateSequence{},
		TypeRawSQL:                  RawSQL{},
		TypeUpdate:                  Update{},
		TypeUpdateChangeSetChecksum: UpdateChangeSetChecksum{},
	}

	for want, stmt := range tests {
		t.Run(string(want), func(t *testing.T) {
			require.Equal(t, want, stmt.Type())
		})
	}
}

func TestUpdateBuildersCopy(t *testing.T) {
	base := Update{Table: "DATABASECHANGELOG"}
	withValue := base.AddNewColumnValue("MD5SUM", "1:abc")
	withWhere := withValue.SetWhere("ID=? AND AUTHOR=?", "1", "bob")

	require.Empty(t, base.NewValues)
	require.Empty(t, withValue.Where)
	require.Equal(t, []ColumnValue{{Column: "MD5SUM", Value: "1:abc"}}, withWhere.NewValues)
	require.Equal(t, []any{"1", "bob"}, withWhere.WhereParams)

	// appending to one copy must not leak into another
	a := withValue.AddNewColumnValue("A", 1)
	b := withValue.AddNewColumnValue("B", 2)
	require.Equal(t, "A", a.NewValues[1].Column)
	require.Equal(t, "B", b.NewValues[1].Column)
}

func TestDefaultValue(t *testing.T) {
	tests := []struct {
		name     string
		value    DefaultValue
		kind     DefaultValueKind
		rendered string
	}{
		{name: "string literal", value: Literal("active"), kind: DefaultLiteral, rendered: "'active'"},
		{name: "int literal", value: Literal(50), kind: DefaultLiteral, rendered: "50"},
		{name: "int64 literal", value: Literal(int64(-3)), kind: DefaultLiteral, rendered: "-3"},
		{name: "float literal", value: Literal(1.5), kind: DefaultLiteral, rendered: "1.5"},
		{name: "bool literal", value: Literal(true), kind: DefaultLiteral, rendered: "true"},
		{name: "other literal", value: Literal([]int{1}), kind: DefaultLiteral, rendered: "'[1]'"},
		{name: "sequence", value: SequenceNext("S"), kind: DefaultSequenceNext, rendered: "nextval(S)"},
		{name: "function", value: Function("now()"), kind: DefaultFunction, rendered: "now()"},
		{name: "computed", value: Computed("1 + 1"), kind: DefaultComputed, rendered: "1 + 1"},
		{name: "null", value: Null(), kind: DefaultNull, rendered: "NULL"},
		{name: "zero", value: DefaultValue{}, kind: 0, rendered: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.kind, tt.value.Kind())
			require.Equal(t, tt.rendered, tt.value.String())
		})
	}

	require.True(t, DefaultValue{}.IsZero())
	require.Equal(t, "S", SequenceNext("S").Expression())
	require.Equal(t, "active", Literal("active").LiteralValue())
	require.Equal(t, "sequenceNext", DefaultSequenceNext.String())
	require.Equal(t, "unknown", DefaultValueKind(42).String())
}
