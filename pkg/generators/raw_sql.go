package generators

import (
	"github.com/pseudomuto/changekit/pkg/consts"
	"github.com/pseudomuto/changekit/pkg/database"
	"github.com/pseudomuto/changekit/pkg/sql"
	"github.com/pseudomuto/changekit/pkg/sqlgen"
	"github.com/pseudomuto/changekit/pkg/statement"
	"github.com/pseudomuto/changekit/pkg/validate"
)

// RawSQL emits hand written SQL unchanged.
type RawSQL struct{}

func (RawSQL) StatementType() statement.Type { return statement.TypeRawSQL }
func (RawSQL) Priority() int                 { return sqlgen.PriorityDefault }

func (RawSQL) Supports(stmt statement.Statement, _ database.Environment) bool {
	return is[statement.RawSQL](stmt)
}

func (RawSQL) Validate(stmt statement.Statement, _ database.Environment, _ *sqlgen.Chain) validate.Result {
	s, ok := as[statement.RawSQL](stmt)
	if !ok {
		return unexpectedResult(stmt)
	}

	var res validate.Result
	res.CheckRequired("sql", s.SQL)
	return res
}

func (RawSQL) Generate(stmt statement.Statement, _ database.Environment, _ *sqlgen.Chain) ([]sql.Fragment, error) {
	s, ok := as[statement.RawSQL](stmt)
	if !ok {
		return nil, unexpected(stmt)
	}

	delim := s.EndDelimiter
	if delim == "" {
		delim = consts.DefaultEndDelimiter
	}

	return []sql.Fragment{sql.NewWithDelimiter(s.SQL, delim)}, nil
}
