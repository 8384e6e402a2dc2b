package sqlgen

import (
	"github.com/pseudomuto/changekit/pkg/database"
	"github.com/pseudomuto/changekit/pkg/sql"
	"github.com/pseudomuto/changekit/pkg/statement"
	"github.com/pseudomuto/changekit/pkg/validate"
)

// Priority conventions. The scale is open: any int may be used to slot a
// generator between the conventional levels.
const (
	PriorityNone        = -1
	PriorityDefault     = 1
	PriorityDatabase    = 5
	PrioritySpecialized = 10
)

// Generator translates one statement type into dialect SQL.
//
// Implementations must be stateless: Supports and Validate are pure, and
// Generate may be called repeatedly and concurrently for independent
// statement and environment pairs.
type Generator interface {
	// StatementType is the tag of the statements this generator handles.
	StatementType() statement.Type

	// Priority orders generators that support the same statement.
	Priority() int

	// Supports reports whether the generator can handle stmt in env. It must
	// not modify either argument.
	Supports(stmt statement.Statement, env database.Environment) bool

	// Validate returns field-level problems with stmt for env. Generators
	// that build on the rest of the chain usually merge chain.NextValidate.
	Validate(stmt statement.Statement, env database.Environment, chain *Chain) validate.Result

	// Generate produces the fragments for stmt. It may call chain.Next any
	// number of times, before or after producing its own fragments.
	Generate(stmt statement.Statement, env database.Environment, chain *Chain) ([]sql.Fragment, error)
}

// Base provides the StatementType and Priority methods for generators that
// embed it, and a Validate that defers to the rest of the chain.
type Base struct {
	Type  statement.Type
	Level int
}

// StatementType implements Generator.
func (b Base) StatementType() statement.Type { return b.Type }

// Priority implements Generator.
func (b Base) Priority() int { return b.Level }

// Validate implements Generator by delegating to the next generator.
func (b Base) Validate(stmt statement.Statement, env database.Environment, chain *Chain) validate.Result {
	return chain.NextValidate(stmt, env)
}
