package changelog

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"

	"github.com/pkg/errors"
	"github.com/pseudomuto/changekit/pkg/checksum"
	"github.com/pseudomuto/changekit/pkg/database"
	"github.com/pseudomuto/changekit/pkg/sql"
	"github.com/pseudomuto/changekit/pkg/statement"
	"github.com/pseudomuto/changekit/pkg/validate"
	"golang.org/x/sync/errgroup"
)

type (
	// SQLGenerator turns statements into SQL. *sqlgen.Registry implements it.
	SQLGenerator interface {
		Generate(stmt statement.Statement, env database.Environment) ([]sql.Fragment, error)
	}

	// ChangeSet is an identified, ordered group of changes applied together.
	ChangeSet struct {
		id       string
		author   string
		filePath string

		changes  []Change
		rollback []Change

		// Comments are for documentation only.
		Comments string

		// RunOnChange re-applies the change set when its checksum changes
		// instead of reporting a mismatch.
		RunOnChange bool

		// Parameters are shared by every change in the set.
		Parameters *Parameters

		// Encoding is used by file-backed changes that don't name one.
		Encoding string

		logger      *slog.Logger
		concurrency int
	}

	// ChangeSetOption customises a ChangeSet.
	ChangeSetOption func(*ChangeSet)
)

// WithParameters sets the parameters used to expand loaded SQL.
func WithParameters(p *Parameters) ChangeSetOption {
	return func(cs *ChangeSet) { cs.Parameters = p }
}

// WithEncoding sets the default encoding of file-backed changes.
func WithEncoding(name string) ChangeSetOption {
	return func(cs *ChangeSet) { cs.Encoding = name }
}

// WithChangeSetLogger sets the logger used while rendering SQL.
func WithChangeSetLogger(l *slog.Logger) ChangeSetOption {
	return func(cs *ChangeSet) {
		if l != nil {
			cs.logger = l
		}
	}
}

// WithConcurrency limits how many changes render SQL at the same time. The
// default is GOMAXPROCS.
func WithConcurrency(n int) ChangeSetOption {
	return func(cs *ChangeSet) {
		if n > 0 {
			cs.concurrency = n
		}
	}
}

// NewChangeSet returns an empty change set identified by id, author and the
// path of the file that defines it.
func NewChangeSet(id, author, filePath string, opts ...ChangeSetOption) *ChangeSet {
	cs := &ChangeSet{id: id, author: author, filePath: filePath}

	for _, opt := range opts {
		opt(cs)
	}

	return cs
}

func (cs *ChangeSet) ID() string       { return cs.id }
func (cs *ChangeSet) Author() string   { return cs.author }
func (cs *ChangeSet) FilePath() string { return cs.filePath }

// Identity returns "filePath::id::author".
func (cs *ChangeSet) Identity() string {
	return cs.filePath + "::" + cs.id + "::" + cs.author
}

func (cs *ChangeSet) String() string { return cs.Identity() }

// AddChange appends c and makes cs its owner.
func (cs *ChangeSet) AddChange(c Change) {
	c.SetChangeSet(cs)
	cs.changes = append(cs.changes, c)
}

// AddRollbackChange appends an explicit rollback change. When any are present
// they replace the automatic inverse of the changes.
func (cs *ChangeSet) AddRollbackChange(c Change) {
	c.SetChangeSet(cs)
	cs.rollback = append(cs.rollback, c)
}

// Changes returns the changes in order.
func (cs *ChangeSet) Changes() []Change { return slices.Clone(cs.changes) }

// RollbackChanges returns the explicit rollback changes in order.
func (cs *ChangeSet) RollbackChanges() []Change { return slices.Clone(cs.rollback) }

// FinishInitialization initializes every change, stopping at the first
// failure.
func (cs *ChangeSet) FinishInitialization() error {
	for i, c := range cs.all() {
		if err := c.FinishInitialization(); err != nil {
			return errors.Wrapf(err, "%s: %s", cs.Identity(), cs.label(i))
		}
	}

	return nil
}

// Validate validates every change. Field names are prefixed with the
// position of the change, e.g. "changes[1].path". Warnings are returned and
// logged.
func (cs *ChangeSet) Validate(env database.Environment) validate.Result {
	var res validate.Result
	for i, c := range cs.all() {
		label := cs.label(i)
		if !c.Supports(env) {
			res.AddError(label, "%s is not supported on %s", c.Name(), env.Dialect())
			continue
		}

		r := c.Validate(env)
		for _, w := range r.Warnings {
			cs.log().Warn("Validation warning", "changeSet", cs.Identity(), "change", label, "warning", w)
		}
		res.Merge(label, r)
	}

	return res
}

// GenerateCheckSum digests the ordered checksums of the changes. Explicit
// rollback changes and comments are not included.
func (cs *ChangeSet) GenerateCheckSum() (checksum.Checksum, error) {
	b := checksum.NewBuilder()
	for i, c := range cs.changes {
		sum, err := c.GenerateCheckSum()
		if err != nil {
			return checksum.Checksum{}, errors.Wrapf(err, "%s: %s", cs.Identity(), cs.label(i))
		}

		b.Checksum(cs.label(i), sum)
	}

	return b.Sum(), nil
}

// GenerateStatements returns the statements of every change in order.
func (cs *ChangeSet) GenerateStatements(env database.Environment) ([]statement.Statement, error) {
	var out []statement.Statement
	for i, c := range cs.changes {
		stmts, err := c.GenerateStatements(env)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: %s", cs.Identity(), cs.label(i))
		}
		out = append(out, stmts...)
	}

	return out, nil
}

// AffectedObjects returns the distinct tables modified by the changes, in
// the order they are first touched.
func (cs *ChangeSet) AffectedObjects(env database.Environment) []database.TableRef {
	var out []database.TableRef
	for _, c := range cs.changes {
		for _, ref := range c.AffectedObjects(env) {
			if !slices.Contains(out, ref) {
				out = append(out, ref)
			}
		}
	}

	return out
}

// SupportsRollback reports whether the change set can be rolled back.
func (cs *ChangeSet) SupportsRollback(env database.Environment) bool {
	if len(cs.rollback) > 0 {
		return true
	}

	for _, c := range cs.changes {
		if !c.SupportsRollback(env) {
			return false
		}
	}

	return true
}

// GenerateRollbackStatements returns the statements of the explicit rollback
// changes, or the inverse of every change in reverse order.
func (cs *ChangeSet) GenerateRollbackStatements(env database.Environment) ([]statement.Statement, error) {
	var out []statement.Statement
	err := cs.eachRollback(env, func(stmts func() ([]statement.Statement, error)) error {
		s, err := stmts()
		if err != nil {
			return err
		}
		out = append(out, s...)
		return nil
	})

	return out, err
}

// IsVolatile reports whether any change generates volatile statements.
func (cs *ChangeSet) IsVolatile(env database.Environment) bool {
	return slices.ContainsFunc(cs.changes, func(c Change) bool {
		return c.GenerateStatementsVolatile(env)
	})
}

// IsRollbackVolatile reports whether the rollback statements are volatile.
func (cs *ChangeSet) IsRollbackVolatile(env database.Environment) bool {
	if len(cs.rollback) > 0 {
		return slices.ContainsFunc(cs.rollback, func(c Change) bool {
			return c.GenerateStatementsVolatile(env)
		})
	}

	return slices.ContainsFunc(cs.changes, func(c Change) bool {
		return c.GenerateRollbackStatementsVolatile(env)
	})
}

// GenerateSQL renders the SQL of every change. Changes render concurrently
// but the fragments keep the order of the changes.
func (cs *ChangeSet) GenerateSQL(ctx context.Context, gen SQLGenerator, env database.Environment) ([]sql.Fragment, error) {
	jobs := make([]func() ([]statement.Statement, error), len(cs.changes))
	for i, c := range cs.changes {
		jobs[i] = func() ([]statement.Statement, error) {
			stmts, err := c.GenerateStatements(env)
			return stmts, errors.Wrapf(err, "%s: %s", cs.Identity(), cs.label(i))
		}
	}

	cs.log().Debug("Generating SQL",
		"changeSet", cs.Identity(),
		"changes", len(jobs),
		"dialect", env.Dialect(),
	)

	return cs.render(ctx, gen, env, jobs)
}

// GenerateRollbackSQL renders the rollback SQL of the change set.
func (cs *ChangeSet) GenerateRollbackSQL(ctx context.Context, gen SQLGenerator, env database.Environment) ([]sql.Fragment, error) {
	var jobs []func() ([]statement.Statement, error)
	err := cs.eachRollback(env, func(stmts func() ([]statement.Statement, error)) error {
		jobs = append(jobs, stmts)
		return nil
	})
	if err != nil {
		return nil, err
	}

	cs.log().Debug("Generating rollback SQL",
		"changeSet", cs.Identity(),
		"changes", len(jobs),
		"dialect", env.Dialect(),
	)

	return cs.render(ctx, gen, env, jobs)
}

// PreviewSQL renders SQL for display ahead of execution. It refuses with
// ErrVolatile when the statements depend on live database state.
func (cs *ChangeSet) PreviewSQL(ctx context.Context, gen SQLGenerator, env database.Environment) ([]sql.Fragment, error) {
	if cs.IsVolatile(env) {
		cs.log().Warn("Refusing to preview volatile change set", "changeSet", cs.Identity())
		return nil, errors.Wrapf(ErrVolatile, "%s", cs.Identity())
	}

	return cs.GenerateSQL(ctx, gen, env)
}

// PreviewRollbackSQL is PreviewSQL for the rollback statements.
func (cs *ChangeSet) PreviewRollbackSQL(ctx context.Context, gen SQLGenerator, env database.Environment) ([]sql.Fragment, error) {
	if cs.IsRollbackVolatile(env) {
		cs.log().Warn("Refusing to preview volatile rollback", "changeSet", cs.Identity())
		return nil, errors.Wrapf(ErrVolatile, "%s rollback", cs.Identity())
	}

	return cs.GenerateRollbackSQL(ctx, gen, env)
}

// UpdateChecksumStatement returns the statement that stores the current
// checksum of cs in the tracking table.
func (cs *ChangeSet) UpdateChecksumStatement() statement.UpdateChangeSetChecksum {
	return statement.UpdateChangeSetChecksum{ChangeSet: cs}
}

// eachRollback calls fn with a statement source for every rollback step in
// execution order. It fails before calling fn when any change has no
// inverse.
func (cs *ChangeSet) eachRollback(env database.Environment, fn func(func() ([]statement.Statement, error)) error) error {
	if len(cs.rollback) > 0 {
		for i, c := range cs.rollback {
			label := fmt.Sprintf("rollback[%d]", i)
			err := fn(func() ([]statement.Statement, error) {
				stmts, err := c.GenerateStatements(env)
				return stmts, errors.Wrapf(err, "%s: %s", cs.Identity(), label)
			})
			if err != nil {
				return err
			}
		}

		return nil
	}

	for i, c := range cs.changes {
		if !c.SupportsRollback(env) {
			return errors.Wrapf(rollbackImpossible(c), "%s: %s", cs.Identity(), cs.label(i))
		}
	}

	for i := len(cs.changes) - 1; i >= 0; i-- {
		c, label := cs.changes[i], cs.label(i)
		err := fn(func() ([]statement.Statement, error) {
			stmts, err := c.GenerateRollbackStatements(env)
			return stmts, errors.Wrapf(err, "%s: %s", cs.Identity(), label)
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func (cs *ChangeSet) render(
	ctx context.Context,
	gen SQLGenerator,
	env database.Environment,
	jobs []func() ([]statement.Statement, error),
) ([]sql.Fragment, error) {
	results := make([][]sql.Fragment, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cs.limit())

	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			stmts, err := job()
			if err != nil {
				return err
			}

			for _, stmt := range stmts {
				frags, err := gen.Generate(stmt, env)
				if err != nil {
					return errors.Wrapf(err, "%s", cs.Identity())
				}
				results[i] = append(results[i], frags...)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []sql.Fragment
	for _, frags := range results {
		out = append(out, frags...)
	}

	return out, nil
}

func (cs *ChangeSet) log() *slog.Logger {
	if cs.logger == nil {
		return slog.Default()
	}

	return cs.logger
}

func (cs *ChangeSet) limit() int {
	if cs.concurrency <= 0 {
		return runtime.GOMAXPROCS(0)
	}

	return cs.concurrency
}

func (cs *ChangeSet) all() []Change {
	return append(slices.Clone(cs.changes), cs.rollback...)
}

func (cs *ChangeSet) label(i int) string {
	if i < len(cs.changes) {
		return fmt.Sprintf("changes[%d]", i)
	}

	return fmt.Sprintf("rollback[%d]", i-len(cs.changes))
}
