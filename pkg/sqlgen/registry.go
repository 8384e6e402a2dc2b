package sqlgen

import (
	"cmp"
	"log/slog"
	"slices"
	"sync"

	"github.com/pseudomuto/changekit/pkg/database"
	"github.com/pseudomuto/changekit/pkg/sql"
	"github.com/pseudomuto/changekit/pkg/statement"
	"github.com/pseudomuto/changekit/pkg/validate"
)

type (
	// Registry holds every registered generator and drives dispatch.
	Registry struct {
		mu     sync.RWMutex
		byType map[statement.Type][]Generator
		logger *slog.Logger
	}

	// RegistryOption customises a Registry.
	RegistryOption func(*Registry)
)

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry returns an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		byType: make(map[statement.Type][]Generator),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds generators in order. Registration order breaks priority ties.
func (r *Registry) Register(gens ...Generator) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, g := range gens {
		if g == nil {
			continue
		}

		t := g.StatementType()
		r.byType[t] = append(r.byType[t], g)
	}
}

// Generators returns the registered generators for a statement type in
// registration order.
func (r *Registry) Generators(t statement.Type) []Generator {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.byType[t])
}

// Resolve returns the generators eligible for stmt in env: those registered
// for its type whose Supports returns true, ordered by priority descending.
// Generators with equal priority keep their registration order.
func (r *Registry) Resolve(stmt statement.Statement, env database.Environment) []Generator {
	if stmt == nil {
		return nil
	}

	var eligible []Generator
	for _, g := range r.Generators(stmt.Type()) {
		if g.Priority() == PriorityNone {
			continue
		}

		if g.Supports(stmt, env) {
			eligible = append(eligible, g)
		}
	}

	slices.SortStableFunc(eligible, func(a, b Generator) int {
		return cmp.Compare(b.Priority(), a.Priority())
	})

	return eligible
}

// Supports reports whether at least one generator can handle stmt in env.
func (r *Registry) Supports(stmt statement.Statement, env database.Environment) bool {
	return len(r.Resolve(stmt, env)) > 0
}

// Validate returns the validation result of the highest priority generator
// for stmt. A statement without any supporting generator yields a single
// error naming the statement type and dialect.
func (r *Registry) Validate(stmt statement.Statement, env database.Environment) validate.Result {
	gens := r.Resolve(stmt, env)
	if len(gens) == 0 {
		var res validate.Result
		res.AddError("", "%s", newNoGeneratorError(stmt, env).Error())
		return res
	}

	return newChain(r, gens).NextValidate(stmt, env)
}

// Generate resolves the chain for stmt, validates it with the head generator
// and returns the head generator's fragments.
//
// It returns a *NoGeneratorError when nothing supports the statement and a
// *GenerationError wrapping a *validate.ValidationError when validation
// fails.
func (r *Registry) Generate(stmt statement.Statement, env database.Environment) ([]sql.Fragment, error) {
	gens := r.Resolve(stmt, env)
	if len(gens) == 0 {
		err := newNoGeneratorError(stmt, env)
		r.logger.Debug("No generator found",
			"statement", err.StatementType,
			"dialect", err.Dialect,
		)
		return nil, err
	}

	r.logger.Debug("Dispatching statement",
		"statement", stmt.Type(),
		"dialect", dialectOf(env),
		"candidates", len(gens),
	)

	chain := newChain(r, gens)
	if res := chain.clone().NextValidate(stmt, env); res.HasErrors() {
		return nil, &GenerationError{StatementType: stmt.Type(), Dialect: dialectOf(env), Err: res.Err()}
	}

	frags, err := chain.Next(stmt, env)
	if err != nil {
		return nil, &GenerationError{StatementType: stmt.Type(), Dialect: dialectOf(env), Err: err}
	}

	return frags, nil
}

// GenerateAll generates every statement in order and concatenates the
// fragments. It stops at the first error.
func (r *Registry) GenerateAll(stmts []statement.Statement, env database.Environment) ([]sql.Fragment, error) {
	var out []sql.Fragment
	for _, stmt := range stmts {
		frags, err := r.Generate(stmt, env)
		if err != nil {
			return nil, err
		}
		out = append(out, frags...)
	}

	return out, nil
}
