package generators

import (
	"github.com/pkg/errors"
	"github.com/pseudomuto/changekit/pkg/consts"
	"github.com/pseudomuto/changekit/pkg/database"
	"github.com/pseudomuto/changekit/pkg/sql"
	"github.com/pseudomuto/changekit/pkg/sqlgen"
	"github.com/pseudomuto/changekit/pkg/statement"
	"github.com/pseudomuto/changekit/pkg/utils"
	"github.com/pseudomuto/changekit/pkg/validate"
)

type (
	// Update renders a single table update with its where parameters inlined
	// as literals.
	//
	//	UPDATE users SET status = 'active' WHERE id = 1
	Update struct{}

	// UpdateChangeSetChecksum rewrites the stored checksum of a change set.
	// It lowers the statement into an Update on the tracking table and
	// dispatches it, so dialect specific Update generators apply.
	UpdateChangeSetChecksum struct{}
)

func (Update) StatementType() statement.Type { return statement.TypeUpdate }
func (Update) Priority() int                 { return sqlgen.PriorityDefault }

func (Update) Supports(stmt statement.Statement, _ database.Environment) bool {
	return is[statement.Update](stmt)
}

func (Update) Validate(stmt statement.Statement, _ database.Environment, _ *sqlgen.Chain) validate.Result {
	s, ok := as[statement.Update](stmt)
	if !ok {
		return unexpectedResult(stmt)
	}

	var res validate.Result
	res.CheckRequired("tableName", s.Table)
	res.CheckRequired("newValues", s.NewValues)

	for i, v := range s.NewValues {
		if v.Column == "" {
			res.AddError("newValues", "column %d has no name", i)
		}
	}

	if n := countPlaceholders(s.Where); n != len(s.WhereParams) {
		res.AddError("whereParams", "expected %d parameters, got %d", n, len(s.WhereParams))
	}

	return res
}

func (Update) Generate(stmt statement.Statement, env database.Environment, _ *sqlgen.Chain) ([]sql.Fragment, error) {
	s, ok := as[statement.Update](stmt)
	if !ok {
		return nil, unexpected(stmt)
	}

	assignments := make([]string, len(s.NewValues))
	for i, v := range s.NewValues {
		assignments[i] = column(env, v.Column) + " = " + literalSQL(v.Value, env)
	}

	text := utils.NewSQLBuilder().
		Update(env.EscapeTableName(s.Catalog, s.Schema, s.Table)).
		Set(assignments...).
		Where(bindParams(s.Where, s.WhereParams, env)).
		String()

	return []sql.Fragment{sql.New(text)}, nil
}

func (UpdateChangeSetChecksum) StatementType() statement.Type {
	return statement.TypeUpdateChangeSetChecksum
}

func (UpdateChangeSetChecksum) Priority() int { return sqlgen.PriorityDefault }

func (UpdateChangeSetChecksum) Supports(stmt statement.Statement, _ database.Environment) bool {
	return is[statement.UpdateChangeSetChecksum](stmt)
}

func (UpdateChangeSetChecksum) Validate(stmt statement.Statement, _ database.Environment, _ *sqlgen.Chain) validate.Result {
	s, ok := as[statement.UpdateChangeSetChecksum](stmt)
	if !ok {
		return unexpectedResult(stmt)
	}

	var res validate.Result
	res.CheckRequired("changeSet", s.ChangeSet)
	return res
}

func (UpdateChangeSetChecksum) Generate(stmt statement.Statement, env database.Environment, chain *sqlgen.Chain) ([]sql.Fragment, error) {
	s, ok := as[statement.UpdateChangeSetChecksum](stmt)
	if !ok || s.ChangeSet == nil {
		return nil, unexpected(stmt)
	}

	cs := s.ChangeSet
	sum, err := cs.GenerateCheckSum()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to compute checksum for change set %s", cs.ID())
	}

	table := env.ChangeLogTable()
	update := statement.Update{Catalog: table.Catalog, Schema: table.Schema, Table: table.Name}.
		AddNewColumnValue(consts.ColumnChecksum, sum.String()).
		SetWhere(
			column(env, consts.ColumnID)+"=? AND "+
				column(env, consts.ColumnAuthor)+"=? AND "+
				column(env, consts.ColumnFilename)+"=?",
			cs.ID(), cs.Author(), cs.FilePath(),
		)

	return chain.Generate(update, env)
}
