package sqlgen

import (
	"github.com/pseudomuto/changekit/pkg/database"
	"github.com/pseudomuto/changekit/pkg/sql"
	"github.com/pseudomuto/changekit/pkg/statement"
	"github.com/pseudomuto/changekit/pkg/validate"
)

// Chain is the ordered list of generators not yet tried for one dispatch.
// A Chain is owned by a single dispatch and must not be shared between
// goroutines.
type Chain struct {
	registry   *Registry
	generators []Generator
}

func newChain(r *Registry, gens []Generator) *Chain {
	return &Chain{registry: r, generators: gens}
}

// Len returns the number of generators remaining.
func (c *Chain) Len() int {
	if c == nil {
		return 0
	}
	return len(c.generators)
}

// Next pops the next generator and lets it generate stmt. When the chain is
// exhausted it returns nil fragments and a nil error.
func (c *Chain) Next(stmt statement.Statement, env database.Environment) ([]sql.Fragment, error) {
	if c.Len() == 0 {
		return nil, nil
	}

	head := c.generators[0]
	c.generators = c.generators[1:]
	return head.Generate(stmt, env, c)
}

// NextValidate pops the next generator and validates stmt with it. When the
// chain is exhausted the result is empty.
func (c *Chain) NextValidate(stmt statement.Statement, env database.Environment) validate.Result {
	if c.Len() == 0 {
		return validate.Result{}
	}

	head := c.generators[0]
	c.generators = c.generators[1:]
	return head.Validate(stmt, env, c)
}

// Generate dispatches a different statement through the registry that owns
// this chain. Generators that lower their statement into another one use it
// instead of calling a generator directly.
func (c *Chain) Generate(stmt statement.Statement, env database.Environment) ([]sql.Fragment, error) {
	if c == nil || c.registry == nil {
		return nil, newNoGeneratorError(stmt, env)
	}

	return c.registry.Generate(stmt, env)
}

// Validate validates a different statement through the owning registry.
func (c *Chain) Validate(stmt statement.Statement, env database.Environment) validate.Result {
	if c == nil || c.registry == nil {
		return validate.Result{}
	}

	return c.registry.Validate(stmt, env)
}

// clone returns an independent copy positioned at the same generator so
// validation and generation can each consume their own chain.
func (c *Chain) clone() *Chain {
	gens := make([]Generator, len(c.generators))
	copy(gens, c.generators)
	return newChain(c.registry, gens)
}
