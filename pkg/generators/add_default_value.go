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
	// AddDefaultValue sets a column default.
	//
	//	ALTER TABLE users ALTER COLUMN status SET DEFAULT 'active'
	AddDefaultValue struct{}

	// AddDefaultValuePostgres ties the sequence behind a nextval default to
	// the column so the sequence is dropped with it. Other defaults are left
	// to the next generator.
	AddDefaultValuePostgres struct{}

	// DropDefaultValue removes a column default.
	DropDefaultValue struct{}
)

func (AddDefaultValue) StatementType() statement.Type { return statement.TypeAddDefaultValue }
func (AddDefaultValue) Priority() int                 { return sqlgen.PriorityDefault }

func (AddDefaultValue) Supports(stmt statement.Statement, _ database.Environment) bool {
	return is[statement.AddDefaultValue](stmt)
}

func (AddDefaultValue) Validate(stmt statement.Statement, env database.Environment, _ *sqlgen.Chain) validate.Result {
	s, ok := as[statement.AddDefaultValue](stmt)
	if !ok {
		return unexpectedResult(stmt)
	}

	var res validate.Result
	res.CheckRequired("tableName", s.Table)
	res.CheckRequired("columnName", s.Column)

	switch {
	case s.Default.IsZero():
		res.AddError("defaultValue", "is required")
	case s.Default.Kind() == statement.DefaultSequenceNext && !env.SupportsSequences():
		res.AddError("defaultValue", "sequence defaults are not allowed on %s", env.Dialect())
	case s.Default.Kind() != statement.DefaultLiteral && s.Default.Kind() != statement.DefaultNull && s.Default.Expression() == "":
		res.AddError("defaultValue", "%s default requires an expression", s.Default.Kind())
	}

	return res
}

func (AddDefaultValue) Generate(stmt statement.Statement, env database.Environment, _ *sqlgen.Chain) ([]sql.Fragment, error) {
	s, ok := as[statement.AddDefaultValue](stmt)
	if !ok {
		return nil, unexpected(stmt)
	}

	value, err := defaultValueSQL(s, env)
	if err != nil {
		return nil, err
	}

	text := utils.NewSQLBuilder().
		AlterTable(env.EscapeTableName(s.Catalog, s.Schema, s.Table)).
		AlterColumn(column(env, s.Column)).
		SetDefault(value).
		String()

	return []sql.Fragment{sql.New(text)}, nil
}

func (AddDefaultValuePostgres) StatementType() statement.Type { return statement.TypeAddDefaultValue }
func (AddDefaultValuePostgres) Priority() int                 { return sqlgen.PriorityDatabase }

func (AddDefaultValuePostgres) Supports(stmt statement.Statement, env database.Environment) bool {
	return is[statement.AddDefaultValue](stmt) && env.Dialect() == database.PostgreSQL
}

func (AddDefaultValuePostgres) Validate(stmt statement.Statement, env database.Environment, chain *sqlgen.Chain) validate.Result {
	return chain.NextValidate(stmt, env)
}

func (AddDefaultValuePostgres) Generate(stmt statement.Statement, env database.Environment, chain *sqlgen.Chain) ([]sql.Fragment, error) {
	s, ok := as[statement.AddDefaultValue](stmt)
	if !ok {
		return nil, unexpected(stmt)
	}

	if s.Default.Kind() != statement.DefaultSequenceNext {
		return chain.Next(stmt, env)
	}

	frags, err := chain.Next(stmt, env)
	if err != nil {
		return nil, err
	}

	owner := env.EscapeTableName(s.Catalog, s.Schema, s.Table) + "." + column(env, s.Column)
	text := utils.NewSQLBuilder().
		Alter("SEQUENCE").
		Name(env.EscapeSequenceName(s.Catalog, s.Schema, s.Default.Expression())).
		Raw("OWNED BY").
		Raw(owner).
		String()

	return append(frags, sql.New(text)), nil
}

func (DropDefaultValue) StatementType() statement.Type { return statement.TypeDropDefaultValue }
func (DropDefaultValue) Priority() int                 { return sqlgen.PriorityDefault }

func (DropDefaultValue) Supports(stmt statement.Statement, _ database.Environment) bool {
	return is[statement.DropDefaultValue](stmt)
}

func (DropDefaultValue) Validate(stmt statement.Statement, _ database.Environment, _ *sqlgen.Chain) validate.Result {
	s, ok := as[statement.DropDefaultValue](stmt)
	if !ok {
		return unexpectedResult(stmt)
	}

	var res validate.Result
	res.CheckRequired("tableName", s.Table)
	res.CheckRequired("columnName", s.Column)
	return res
}

func (DropDefaultValue) Generate(stmt statement.Statement, env database.Environment, _ *sqlgen.Chain) ([]sql.Fragment, error) {
	s, ok := as[statement.DropDefaultValue](stmt)
	if !ok {
		return nil, unexpected(stmt)
	}

	text := utils.NewSQLBuilder().
		AlterTable(env.EscapeTableName(s.Catalog, s.Schema, s.Table)).
		AlterColumn(column(env, s.Column)).
		DropDefault().
		String()

	return []sql.Fragment{sql.New(text)}, nil
}
