package sqlgen

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/pseudomuto/changekit/pkg/database"
	"github.com/pseudomuto/changekit/pkg/statement"
)

// ErrNoGeneratorFound is the cause of every *NoGeneratorError.
var ErrNoGeneratorFound = errors.New("no generator found")

type (
	// NoGeneratorError reports that no registered generator supports a
	// statement in an environment.
	NoGeneratorError struct {
		StatementType statement.Type
		Dialect       database.Dialect
	}

	// GenerationError wraps a validation or generation failure with the
	// statement type and dialect of the dispatch.
	GenerationError struct {
		StatementType statement.Type
		Dialect       database.Dialect
		Err           error
	}
)

func newNoGeneratorError(stmt statement.Statement, env database.Environment) *NoGeneratorError {
	return &NoGeneratorError{StatementType: typeOf(stmt), Dialect: dialectOf(env)}
}

func (e *NoGeneratorError) Error() string {
	return fmt.Sprintf("%s for statement %q on dialect %q", ErrNoGeneratorFound, e.StatementType, e.Dialect)
}

// Cause returns ErrNoGeneratorFound.
func (e *NoGeneratorError) Cause() error { return ErrNoGeneratorFound }

// Unwrap returns ErrNoGeneratorFound.
func (e *NoGeneratorError) Unwrap() error { return ErrNoGeneratorFound }

func (e *GenerationError) Error() string {
	return fmt.Sprintf("statement %q on dialect %q: %v", e.StatementType, e.Dialect, e.Err)
}

// Cause returns the wrapped error.
func (e *GenerationError) Cause() error { return e.Err }

// Unwrap returns the wrapped error.
func (e *GenerationError) Unwrap() error { return e.Err }

func typeOf(stmt statement.Statement) statement.Type {
	if stmt == nil {
		return ""
	}
	return stmt.Type()
}

func dialectOf(env database.Environment) database.Dialect {
	if env == nil {
		return ""
	}
	return env.Dialect()
}
