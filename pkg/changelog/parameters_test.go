package changelog_test

import (
	"testing"

	. "github.com/pseudomuto/changekit/pkg/changelog"
	"github.com/stretchr/testify/require"
)

func TestParameters(t *testing.T) {
	t.Run("first definition wins", func(t *testing.T) {
		p := NewParameters(nil)
		require.True(t, p.Set("schema", "app"))
		require.False(t, p.Set("schema", "other"))

		v, ok := p.Get("schema")
		require.True(t, ok)
		require.Equal(t, "app", v)
	})

	t.Run("names", func(t *testing.T) {
		p := NewParameters(map[string]string{"b": "2", "a": "1"})
		require.Equal(t, []string{"a", "b"}, p.Names())
	})

	t.Run("expand", func(t *testing.T) {
		p := NewParameters(map[string]string{"schema": "app", "owner": "${schema}"})

		got, err := p.Expand("CREATE TABLE ${schema}.users (note text DEFAULT '${missing}') $x ${ schema } ${owner}")
		require.NoError(t, err)
		require.Equal(t, "CREATE TABLE app.users (note text DEFAULT '${missing}') $x app ${schema}", got)
	})

	t.Run("unterminated reference", func(t *testing.T) {
		p := NewParameters(map[string]string{"a": "1"})

		got, err := p.Expand("SELECT '${a' || ${a}")
		require.NoError(t, err)
		require.Equal(t, "SELECT '${a' || 1", got)
	})

	t.Run("nil parameters", func(t *testing.T) {
		var p *Parameters

		got, err := p.Expand("${a}")
		require.NoError(t, err)
		require.Equal(t, "${a}", got)

		_, ok := p.Get("a")
		require.False(t, ok)
	})
}
