package validate_test

import (
	"testing"

	"github.com/pkg/errors"
	. "github.com/pseudomuto/changekit/pkg/validate"
	"github.com/stretchr/testify/require"
)

func TestResult(t *testing.T) {
	t.Run("zero value has no errors", func(t *testing.T) {
		var res Result
		require.False(t, res.HasErrors())
		require.False(t, res.HasWarnings())
		require.NoError(t, res.Err())
	})

	t.Run("CheckRequired", func(t *testing.T) {
		var (
			res   Result
			nilP  *int64
			value = int64(1)
		)

		res.CheckRequired("empty", "")
		res.CheckRequired("blank", "   ")
		res.CheckRequired("nil", nil)
		res.CheckRequired("nilPtr", nilP)
		res.CheckRequired("emptySlice", []string{})
		res.CheckRequired("set", "users")
		res.CheckRequired("ptr", &value)
		res.CheckRequired("zeroInt", 0)

		err := res.Err()
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrValidationFailed))
		require.Equal(t, ErrValidationFailed, errors.Cause(err))

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		require.Equal(t, []string{"empty", "blank", "nil", "nilPtr", "emptySlice"}, verr.Fields())
		require.Contains(t, err.Error(), "empty: is required")
	})

	t.Run("CheckDisallowed", func(t *testing.T) {
		var res Result
		res.CheckDisallowed("startWith", "", "sqlite")
		require.False(t, res.HasErrors())

		res.CheckDisallowed("startWith", "5", "sqlite")
		require.Equal(t, []FieldError{{Field: "startWith", Message: "is not allowed on sqlite"}}, res.Errors)
	})

	t.Run("Merge prefixes fields and keeps warnings", func(t *testing.T) {
		var inner Result
		inner.AddError("tableName", "is required")
		inner.AddError("", "bad state")
		inner.AddWarning("column %s is nullable", "id")

		var outer Result
		outer.Merge("changes[1]", inner)
		outer.Merge("", inner)

		require.Equal(t, []FieldError{
			{Field: "changes[1].tableName", Message: "is required"},
			{Field: "changes[1]", Message: "bad state"},
			{Field: "tableName", Message: "is required"},
			{Field: "", Message: "bad state"},
		}, outer.Errors)
		require.Equal(t, []string{"column id is nullable", "column id is nullable"}, outer.Warnings)
	})
}
