package resource_test

import (
	"testing"
	"testing/fstest"

	"github.com/pkg/errors"
	. "github.com/pseudomuto/changekit/pkg/resource"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		relativeTo string
		relative   bool
		want       string
	}{
		{"absolute to changelog", "sql/a.sql", "db/changelog.yaml", false, "sql/a.sql"},
		{"relative to changelog", "sql/a.sql", "db/changelog.yaml", true, "db/sql/a.sql"},
		{"parent directory", "../shared/a.sql", "db/main/changelog.yaml", true, "db/shared/a.sql"},
		{"no changelog", "a.sql", "", true, "a.sql"},
		{"windows separators", `sql\a.sql`, `db\changelog.yaml`, true, "db/sql/a.sql"},
		{"absolute path", "/srv/a.sql", "db/changelog.yaml", true, "/srv/a.sql"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Resolve(tt.path, tt.relativeTo, tt.relative))
		})
	}
}

func TestReadString(t *testing.T) {
	latin1, err := charmap.ISO8859_1.NewEncoder().String("SELECT 'café';")
	require.NoError(t, err)

	fsys := fstest.MapFS{
		"db/plain.sql":  {Data: []byte("SELECT 1;\n")},
		"db/bom.sql":    {Data: append([]byte{0xEF, 0xBB, 0xBF}, "SELECT 2;"...)},
		"db/latin1.sql": {Data: []byte(latin1)},
	}
	acc := FS(fsys)

	t.Run("utf-8", func(t *testing.T) {
		s, err := ReadString(acc, "db/plain.sql", "utf-8")
		require.NoError(t, err)
		require.Equal(t, "SELECT 1;\n", s)
	})

	t.Run("default encoding", func(t *testing.T) {
		s, err := ReadString(acc, "db/plain.sql", "")
		require.NoError(t, err)
		require.Equal(t, "SELECT 1;\n", s)
	})

	t.Run("strips byte order mark", func(t *testing.T) {
		s, err := ReadString(acc, "db/bom.sql", "utf-8")
		require.NoError(t, err)
		require.Equal(t, "SELECT 2;", s)
	})

	t.Run("latin1", func(t *testing.T) {
		s, err := ReadString(acc, "db/latin1.sql", "iso-8859-1")
		require.NoError(t, err)
		require.Equal(t, "SELECT 'café';", s)
	})

	t.Run("leading slash", func(t *testing.T) {
		s, err := ReadString(acc, "/db/plain.sql", "utf-8")
		require.NoError(t, err)
		require.Equal(t, "SELECT 1;\n", s)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := ReadString(acc, "db/missing.sql", "utf-8")
		require.ErrorIs(t, err, ErrUnreadableResource)
		require.Equal(t, ErrUnreadableResource, errors.Cause(err))

		var ue *UnreadableError
		require.ErrorAs(t, err, &ue)
		require.Equal(t, "db/missing.sql", ue.Path)
		require.Contains(t, err.Error(), "db/missing.sql")
	})

	t.Run("unknown encoding", func(t *testing.T) {
		_, err := ReadString(acc, "db/plain.sql", "klingon")
		require.ErrorIs(t, err, ErrUnreadableResource)
		require.ErrorIs(t, err, ErrUnknownEncoding)
	})

	t.Run("no accessor", func(t *testing.T) {
		_, err := ReadString(nil, "db/plain.sql", "utf-8")
		require.ErrorIs(t, err, ErrUnreadableResource)
	})
}
