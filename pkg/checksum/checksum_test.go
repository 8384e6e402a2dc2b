package checksum_test

import (
	"testing"

	"github.com/pkg/errors"
	. "github.com/pseudomuto/changekit/pkg/checksum"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		start := int64(50)
		a := NewBuilder().String("tableName", "users").Int("startWith", &start).Sum()
		b := NewBuilder().String("tableName", "users").Int("startWith", &start).Sum()

		require.Equal(t, a, b)
		require.Equal(t, Version, a.Version)
		require.Len(t, a.Digest, 32)
	})

	t.Run("known digest", func(t *testing.T) {
		// md5("a=1:x;")
		sum := NewBuilder().String("a", "x").Sum()
		require.Equal(t, "1:a9dee739a422f20919d382adf2cea3bb", sum.String())
	})

	t.Run("field boundaries cannot collide", func(t *testing.T) {
		a := NewBuilder().String("a", "xy").String("b", "z").Sum()
		b := NewBuilder().String("a", "x").String("b", "yz").Sum()
		require.NotEqual(t, a, b)
	})

	t.Run("nil and zero ints differ", func(t *testing.T) {
		zero := int64(0)
		require.NotEqual(t,
			NewBuilder().Int("startWith", nil).Sum(),
			NewBuilder().Int("startWith", &zero).Sum(),
		)
	})

	t.Run("Compute is order sensitive", func(t *testing.T) {
		require.Equal(t, Compute("a", "b"), Compute("a", "b"))
		require.NotEqual(t, Compute("a", "b"), Compute("b", "a"))
	})
}

func TestParse(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		sum := Compute("CREATE TABLE users (id INT);")
		parsed, err := Parse(sum.String())
		require.NoError(t, err)
		require.True(t, sum.Equal(parsed))
	})

	t.Run("normalises case", func(t *testing.T) {
		parsed, err := Parse("1:ABCDEF")
		require.NoError(t, err)
		require.Equal(t, "abcdef", parsed.Digest)
	})

	tests := []string{"", "abc", "x:abcd", "0:abcd", "1:", "1:zz"}
	for _, in := range tests {
		t.Run("invalid "+in, func(t *testing.T) {
			_, err := Parse(in)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidChecksum))
		})
	}

	t.Run("zero value", func(t *testing.T) {
		var c Checksum
		require.True(t, c.IsZero())
		require.Empty(t, c.String())
	})
}
