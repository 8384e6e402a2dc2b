package changelog

import (
	"github.com/pseudomuto/changekit/pkg/checksum"
	"github.com/pseudomuto/changekit/pkg/database"
	"github.com/pseudomuto/changekit/pkg/statement"
	"github.com/pseudomuto/changekit/pkg/validate"
)

// Change is a single configured migration step.
type Change interface {
	// Name is the change kind, such as "sqlFile".
	Name() string

	// FinishInitialization returns a *SetupError when mandatory
	// configuration is missing.
	FinishInitialization() error

	// ChangeSet returns the change set the change belongs to, or nil.
	ChangeSet() *ChangeSet
	SetChangeSet(cs *ChangeSet)

	Supports(env database.Environment) bool
	Validate(env database.Environment) validate.Result

	GenerateStatements(env database.Environment) ([]statement.Statement, error)

	// GenerateStatementsVolatile reports whether GenerateStatements reads
	// live state and may return different statements on each call.
	GenerateStatementsVolatile(env database.Environment) bool

	SupportsRollback(env database.Environment) bool

	// GenerateRollbackStatements returns the inverse statements, or an error
	// wrapping ErrRollbackImpossible.
	GenerateRollbackStatements(env database.Environment) ([]statement.Statement, error)
	GenerateRollbackStatementsVolatile(env database.Environment) bool

	// GenerateCheckSum digests the execution relevant configuration.
	GenerateCheckSum() (checksum.Checksum, error)

	// CheckStatus verifies the change against the environment's snapshot.
	// It returns an error wrapping ErrStatusUnknown when that is impossible.
	CheckStatus(env database.Environment) (ChangeStatus, error)

	// AffectedObjects returns the tables the change modifies. Changes running
	// arbitrary SQL return nil because the tables are unknown.
	AffectedObjects(env database.Environment) []database.TableRef

	ConfirmationMessage() string
}

// changeBase holds the change set back-reference and the defaults for
// changes without rollback or volatility.
type changeBase struct {
	changeSet *ChangeSet
}

func (b *changeBase) ChangeSet() *ChangeSet      { return b.changeSet }
func (b *changeBase) SetChangeSet(cs *ChangeSet) { b.changeSet = cs }

func (b *changeBase) FinishInitialization() error { return nil }

func (b *changeBase) GenerateStatementsVolatile(database.Environment) bool         { return false }
func (b *changeBase) GenerateRollbackStatementsVolatile(database.Environment) bool { return false }

func (b *changeBase) SupportsRollback(database.Environment) bool { return false }

func (b *changeBase) AffectedObjects(database.Environment) []database.TableRef { return nil }

// parameters returns the expansion context of the owning change set.
func (b *changeBase) parameters() *Parameters {
	if b.changeSet == nil {
		return nil
	}

	return b.changeSet.Parameters
}

func tableRef(catalog, schema, table string) database.TableRef {
	return database.TableRef{Catalog: catalog, Schema: schema, Name: table}
}
