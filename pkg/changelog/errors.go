package changelog

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrSetup is the cause of every *SetupError.
	ErrSetup = errors.New("change setup failed")

	// ErrRollbackImpossible is returned when no inverse can be derived for a
	// change.
	ErrRollbackImpossible = errors.New("rollback impossible")

	// ErrVolatile is returned when stable SQL is requested for changes whose
	// statements depend on live database state.
	ErrVolatile = errors.New("statements are volatile")

	// ErrStatusUnknown is returned by CheckStatus when a change cannot verify
	// itself against the environment.
	ErrStatusUnknown = errors.New("change status cannot be determined")
)

// SetupError reports mandatory configuration missing at initialization.
type SetupError struct {
	Change  string
	Message string
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("<%s> - %s", e.Change, e.Message)
}

// Cause returns ErrSetup.
func (e *SetupError) Cause() error { return ErrSetup }

// Unwrap returns ErrSetup.
func (e *SetupError) Unwrap() error { return ErrSetup }

func rollbackImpossible(c Change) error {
	return errors.Wrapf(ErrRollbackImpossible, "%s has no automatic rollback", c.Name())
}

func statusUnknown(c Change, reason string) error {
	return errors.Wrapf(ErrStatusUnknown, "%s: %s", c.Name(), reason)
}
