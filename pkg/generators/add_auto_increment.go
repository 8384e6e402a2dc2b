package generators

import (
	"github.com/pseudomuto/changekit/pkg/database"
	"github.com/pseudomuto/changekit/pkg/sql"
	"github.com/pseudomuto/changekit/pkg/sqlgen"
	"github.com/pseudomuto/changekit/pkg/statement"
	"github.com/pseudomuto/changekit/pkg/utils"
	"github.com/pseudomuto/changekit/pkg/validate"
)

type (
	// AddAutoIncrement modifies a column to use the environment's
	// auto-increment clause.
	//
	//	ALTER TABLE users MODIFY id BIGINT AUTO_INCREMENT
	AddAutoIncrement struct{}

	// AddAutoIncrementMySQL augments AddAutoIncrement with the table option
	// that sets the starting value, which MySQL does not accept on the
	// column itself.
	//
	//	ALTER TABLE users MODIFY id BIGINT AUTO_INCREMENT
	//	ALTER TABLE users AUTO_INCREMENT=50
	AddAutoIncrementMySQL struct{}
)

func (AddAutoIncrement) StatementType() statement.Type { return statement.TypeAddAutoIncrement }
func (AddAutoIncrement) Priority() int                 { return sqlgen.PriorityDefault }

func (AddAutoIncrement) Supports(stmt statement.Statement, env database.Environment) bool {
	return is[statement.AddAutoIncrement](stmt) && env.SupportsAutoIncrement()
}

func (AddAutoIncrement) Validate(stmt statement.Statement, _ database.Environment, _ *sqlgen.Chain) validate.Result {
	s, ok := as[statement.AddAutoIncrement](stmt)
	if !ok {
		return unexpectedResult(stmt)
	}

	var res validate.Result
	res.CheckRequired("tableName", s.Table)
	res.CheckRequired("columnName", s.Column)
	res.CheckRequired("columnDataType", s.ColumnDataType)
	return res
}

func (AddAutoIncrement) Generate(stmt statement.Statement, env database.Environment, _ *sqlgen.Chain) ([]sql.Fragment, error) {
	s, ok := as[statement.AddAutoIncrement](stmt)
	if !ok {
		return nil, unexpected(stmt)
	}

	text := utils.NewSQLBuilder().
		AlterTable(env.EscapeTableName(s.Catalog, s.Schema, s.Table)).
		Modify(column(env, s.Column)).
		Raw(s.ColumnDataType).
		Raw(env.AutoIncrementClause(s.StartWith, s.IncrementBy)).
		String()

	return []sql.Fragment{sql.New(text)}, nil
}

func (AddAutoIncrementMySQL) StatementType() statement.Type { return statement.TypeAddAutoIncrement }
func (AddAutoIncrementMySQL) Priority() int                 { return sqlgen.PriorityDatabase }

func (AddAutoIncrementMySQL) Supports(stmt statement.Statement, env database.Environment) bool {
	return is[statement.AddAutoIncrement](stmt) && env.Dialect() == database.MySQL
}

func (AddAutoIncrementMySQL) Validate(stmt statement.Statement, env database.Environment, chain *sqlgen.Chain) validate.Result {
	s, ok := as[statement.AddAutoIncrement](stmt)
	if !ok {
		return unexpectedResult(stmt)
	}

	res := chain.NextValidate(stmt, env)
	if s.StartWith != nil && *s.StartWith < 0 {
		res.AddError("startWith", "must not be negative")
	}

	return res
}

func (AddAutoIncrementMySQL) Generate(stmt statement.Statement, env database.Environment, chain *sqlgen.Chain) ([]sql.Fragment, error) {
	s, ok := as[statement.AddAutoIncrement](stmt)
	if !ok {
		return nil, unexpected(stmt)
	}

	frags, err := chain.Next(stmt, env)
	if err != nil {
		return nil, err
	}

	if s.StartWith == nil {
		return frags, nil
	}

	text := utils.NewSQLBuilder().
		AlterTable(env.EscapeTableName(s.Catalog, s.Schema, s.Table)).
		Raw(env.TableOptionAutoIncrementStartWithClause(*s.StartWith)).
		String()

	return append(frags, sql.New(text)), nil
}
