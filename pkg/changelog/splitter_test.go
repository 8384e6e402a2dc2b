package changelog_test

import (
	"testing"

	. "github.com/pseudomuto/changekit/pkg/changelog"
	"github.com/stretchr/testify/require"
)

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		name          string
		script        string
		stripComments bool
		endDelimiter  string
		want          []string
	}{
		{
			name:   "semicolons",
			script: "SELECT 1; SELECT 2;",
			want:   []string{"SELECT 1", "SELECT 2"},
		},
		{
			name:   "no trailing delimiter",
			script: "SELECT 1;\nSELECT 2",
			want:   []string{"SELECT 1", "SELECT 2"},
		},
		{
			name:   "delimiters inside quotes",
			script: "INSERT INTO t VALUES ('a;b', 'it''s;');\nSELECT \"a;b\" FROM `c;d`;",
			want:   []string{"INSERT INTO t VALUES ('a;b', 'it''s;')", "SELECT \"a;b\" FROM `c;d`"},
		},
		{
			name:   "go lines",
			script: "SELECT 1\nGO\nSELECT 2\n  go  \n",
			want:   []string{"SELECT 1", "SELECT 2"},
		},
		{
			name:   "go with windows newlines",
			script: "SELECT 1\r\nGO\r\nSELECT 2",
			want:   []string{"SELECT 1", "SELECT 2"},
		},
		{
			name:   "go inside a word",
			script: "GOTO x;\nSELECT go_time FROM t",
			want:   []string{"GOTO x", "SELECT go_time FROM t"},
		},
		{
			name:   "comments are kept",
			script: "-- header; still comment\nSELECT 1; /* a; b */ SELECT 2;",
			want:   []string{"-- header; still comment\nSELECT 1", "/* a; b */ SELECT 2"},
		},
		{
			name:          "comments are stripped",
			script:        "-- header; still comment\nSELECT 1; /* a; b */ SELECT 2;",
			stripComments: true,
			want:          []string{"SELECT 1", "SELECT 2"},
		},
		{
			name:   "comment only statements are dropped",
			script: "SELECT 1;\n-- done\n",
			want:   []string{"SELECT 1"},
		},
		{
			name:   "empty script",
			script: " \n ;; \n",
			want:   nil,
		},
		{
			name:         "custom delimiter",
			script:       "CREATE PROCEDURE p() BEGIN SELECT 1; END//\nSELECT 2//",
			endDelimiter: "//",
			want:         []string{"CREATE PROCEDURE p() BEGIN SELECT 1; END", "SELECT 2"},
		},
		{
			name:         "slash lines",
			script:       "BEGIN\n  NULL;\nEND;\n/\nSELECT 1 FROM dual\n/",
			endDelimiter: `\n/\s*\n|\n/\s*$`,
			want:         []string{"BEGIN\n  NULL;\nEND;", "SELECT 1 FROM dual"},
		},
		{
			name:         "custom delimiter inside quotes",
			script:       "SELECT '//' FROM t//",
			endDelimiter: "//",
			want:         []string{"SELECT '//' FROM t"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitStatements(tt.script, tt.stripComments, tt.endDelimiter)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	t.Run("invalid delimiter", func(t *testing.T) {
		_, err := SplitStatements("SELECT 1", false, "(")
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid end delimiter")
	})
}

func TestStripComments(t *testing.T) {
	got, err := StripComments("SELECT '--not a comment' -- real\nFROM /* gone */ t")
	require.NoError(t, err)
	require.Equal(t, "SELECT '--not a comment' \nFROM  t", got)
}
