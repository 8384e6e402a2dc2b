package sql_test

import (
	"testing"

	. "github.com/pseudomuto/changekit/pkg/sql"
	"github.com/stretchr/testify/require"
)

func TestFragment(t *testing.T) {
	t.Run("default delimiter", func(t *testing.T) {
		f := New("  ALTER TABLE t AUTO_INCREMENT=50 \n")
		require.Equal(t, "ALTER TABLE t AUTO_INCREMENT=50", f.SQL())
		require.Equal(t, ";", f.EndDelimiter())
		require.True(t, f.Terminated())
		require.Equal(t, "ALTER TABLE t AUTO_INCREMENT=50;", f.String())
	})

	t.Run("custom and empty delimiters", func(t *testing.T) {
		f := NewWithDelimiter("CREATE PROCEDURE p() BEGIN END", "//")
		require.Equal(t, "CREATE PROCEDURE p() BEGIN END//", f.String())

		f = NewWithDelimiter("SELECT 1", "")
		require.False(t, f.Terminated())
		require.Equal(t, "SELECT 1", f.String())
	})

	t.Run("delimiter is not doubled", func(t *testing.T) {
		require.Equal(t, "SELECT 1;", New("SELECT 1;").String())
	})
}

func TestJoinAndTexts(t *testing.T) {
	frags := []Fragment{New("SELECT 1"), New(""), New("SELECT 2")}

	require.Equal(t, "SELECT 1;\nSELECT 2;", Join(frags, "\n"))
	require.Equal(t, []string{"SELECT 1", "", "SELECT 2"}, Texts(frags))
	require.Empty(t, Join(nil, "\n"))
}
