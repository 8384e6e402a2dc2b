package utils_test

import (
	"testing"

	"github.com/pseudomuto/changekit/pkg/utils"
	"github.com/stretchr/testify/require"
)

func TestBacktickIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple identifier",
			input:    "table",
			expected: "`table`",
		},
		{
			name:     "qualified identifier with two parts",
			input:    "database.table",
			expected: "`database`.`table`",
		},
		{
			name:     "already backticked simple identifier",
			input:    "`table`",
			expected: "`table`",
		},
		{
			name:     "partially backticked qualified identifier",
			input:    "`database`.table",
			expected: "`database`.`table`",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "identifier with spaces",
			input:    "my table",
			expected: "`my table`",
		},
		{
			name:     "embedded backtick is doubled",
			input:    "odd`name",
			expected: "`odd``name`",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, utils.BacktickIdentifier(tt.input))
		})
	}
}

func TestDoubleQuoteIdentifier(t *testing.T) {
	require.Equal(t, `"main"."users"`, utils.DoubleQuoteIdentifier("main.users"))
	require.Equal(t, `"users"`, utils.DoubleQuoteIdentifier(`"users"`))
	require.Equal(t, `"say ""hi"""`, utils.DoubleQuoteIdentifier(`say "hi"`))
}

func TestIsQuoted(t *testing.T) {
	require.True(t, utils.IsQuoted("`table`", "`"))
	require.True(t, utils.IsQuoted("`a``b`", "`"))
	require.True(t, utils.IsQuoted(`"a.b"`, `"`))
	require.False(t, utils.IsQuoted("table", "`"))
	require.False(t, utils.IsQuoted("`db`.`table`", "`"))
}

func TestQualifiedName(t *testing.T) {
	require.Equal(t, "cat.public.users", utils.QualifiedName("cat", "public", "users"))
	require.Equal(t, "public.users", utils.QualifiedName("", "public", "users"))
	require.Equal(t, "users", utils.QualifiedName("", "", "users"))
}

func TestIsPlainIdentifier(t *testing.T) {
	tests := map[string]bool{
		"users":      true,
		"T":          true,
		"_tmp":       true,
		"col$1":      true,
		"1col":       false,
		"my table":   false,
		"table-name": false,
		"":           false,
		"$x":         false,
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			require.Equal(t, want, utils.IsPlainIdentifier(in))
		})
	}
}

func TestValueHelpers(t *testing.T) {
	require.True(t, utils.IsNumericValue("50"))
	require.True(t, utils.IsNumericValue("-1.5e3"))
	require.False(t, utils.IsNumericValue("abc"))
	require.False(t, utils.IsNumericValue(""))

	require.Equal(t, "active", utils.UnquoteLiteral(" 'active' "))
	require.Equal(t, "it's", utils.UnquoteLiteral("'it''s'"))
	require.Equal(t, "now()", utils.UnquoteLiteral("now()"))
	require.Equal(t, int64(5), *utils.Ptr(int64(5)))
}
