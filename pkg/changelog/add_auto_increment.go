package changelog

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/changekit/pkg/checksum"
	"github.com/pseudomuto/changekit/pkg/database"
	"github.com/pseudomuto/changekit/pkg/statement"
	"github.com/pseudomuto/changekit/pkg/validate"
)

// AddAutoIncrementChange converts an existing column into an auto-increment
// column. On databases without auto-increment columns but with sequences, a
// sequence named <table>_<column>_seq is created and used as the column
// default instead.
type AddAutoIncrementChange struct {
	changeBase

	Catalog        string
	Schema         string
	Table          string
	Column         string
	ColumnDataType string
	StartWith      *int64
	IncrementBy    *int64

	// Remarks are for documentation only.
	Remarks string
}

func (c *AddAutoIncrementChange) Name() string { return "addAutoIncrement" }

func (c *AddAutoIncrementChange) Supports(env database.Environment) bool {
	return env.SupportsAutoIncrement() || env.SupportsSequences()
}

func (c *AddAutoIncrementChange) Validate(env database.Environment) validate.Result {
	var res validate.Result
	res.CheckRequired("tableName", c.Table)
	res.CheckRequired("columnName", c.Column)
	res.CheckRequired("columnDataType", c.ColumnDataType)

	if !c.Supports(env) {
		res.AddError("", "%s is not supported on %s", c.Name(), env.Dialect())
	}

	if c.IncrementBy != nil && *c.IncrementBy == 0 {
		res.AddError("incrementBy", "must not be zero")
	}

	// MySQL only has a table level start value.
	if c.IncrementBy != nil && env.Dialect() == database.MySQL {
		res.AddWarning("incrementBy is ignored on %s", env.Dialect())
	}

	return res
}

func (c *AddAutoIncrementChange) AffectedObjects(database.Environment) []database.TableRef {
	return []database.TableRef{c.table()}
}

func (c *AddAutoIncrementChange) table() database.TableRef {
	return tableRef(c.Catalog, c.Schema, c.Table)
}

// SequenceName returns the sequence backing the column on databases that
// emulate auto-increment with sequences.
func (c *AddAutoIncrementChange) SequenceName() string {
	return c.Table + "_" + c.Column + "_seq"
}

func (c *AddAutoIncrementChange) GenerateStatements(env database.Environment) ([]statement.Statement, error) {
	switch {
	case env.SupportsAutoIncrement():
		return []statement.Statement{
			statement.AddAutoIncrement{
				Catalog:        c.Catalog,
				Schema:         c.Schema,
				Table:          c.Table,
				Column:         c.Column,
				ColumnDataType: c.ColumnDataType,
				StartWith:      c.StartWith,
				IncrementBy:    c.IncrementBy,
			},
		}, nil
	case env.SupportsSequences():
		seq := c.SequenceName()
		return []statement.Statement{
			statement.CreateSequence{
				Catalog:     c.Catalog,
				Schema:      c.Schema,
				Sequence:    seq,
				StartWith:   c.StartWith,
				IncrementBy: c.IncrementBy,
			},
			statement.AddDefaultValue{
				Catalog:        c.Catalog,
				Schema:         c.Schema,
				Table:          c.Table,
				Column:         c.Column,
				ColumnDataType: c.ColumnDataType,
				Default:        statement.SequenceNext(seq),
			},
		}, nil
	default:
		return nil, errors.Errorf("%s is not supported on %s", c.Name(), env.Dialect())
	}
}

func (c *AddAutoIncrementChange) GenerateRollbackStatements(database.Environment) ([]statement.Statement, error) {
	return nil, rollbackImpossible(c)
}

func (c *AddAutoIncrementChange) GenerateCheckSum() (checksum.Checksum, error) {
	return checksum.NewBuilder().
		String("change", c.Name()).
		String("catalogName", c.Catalog).
		String("schemaName", c.Schema).
		String("tableName", c.Table).
		String("columnName", c.Column).
		String("columnDataType", c.ColumnDataType).
		Int("startWith", c.StartWith).
		Int("incrementBy", c.IncrementBy).
		Sum(), nil
}

func (c *AddAutoIncrementChange) CheckStatus(env database.Environment) (ChangeStatus, error) {
	snap := env.Snapshot()
	if snap == nil {
		return ChangeStatus{}, statusUnknown(c, "no snapshot available")
	}

	col, ok := snap.Column(c.table(), c.Column)
	if !ok {
		return notApplied("column %s.%s does not exist", c.Table, c.Column), nil
	}

	if !col.AutoIncrement && !sequenceDefault(col.Default) {
		return notApplied("column %s.%s is not auto-increment", c.Table, c.Column), nil
	}

	if !sameInt(c.StartWith, col.StartWith) {
		return appliedDiffers("start value is %s, expected %s", fmtInt(col.StartWith), fmtInt(c.StartWith)), nil
	}

	if !sameInt(c.IncrementBy, col.IncrementBy) {
		return appliedDiffers("increment is %s, expected %s", fmtInt(col.IncrementBy), fmtInt(c.IncrementBy)), nil
	}

	return applied(), nil
}

func (c *AddAutoIncrementChange) ConfirmationMessage() string {
	return "Auto-increment added to " + c.Table + "." + c.Column
}

func sequenceDefault(def *string) bool {
	return def != nil && strings.HasPrefix(strings.ToLower(strings.TrimSpace(*def)), "nextval(")
}

// sameInt compares an expected value against an observed one. An unset
// expectation matches anything.
func sameInt(want, got *int64) bool {
	if want == nil {
		return true
	}

	return got != nil && *got == *want
}
