package generators

import (
	"strconv"

	"github.com/pseudomuto/changekit/pkg/database"
	"github.com/pseudomuto/changekit/pkg/sql"
	"github.com/pseudomuto/changekit/pkg/sqlgen"
	"github.com/pseudomuto/changekit/pkg/statement"
	"github.com/pseudomuto/changekit/pkg/utils"
	"github.com/pseudomuto/changekit/pkg/validate"
)

// CreateSequence creates a sequence on environments that support them.
//
//	CREATE SEQUENCE users_id_seq START WITH 50 INCREMENT BY 1
type CreateSequence struct{}

func (CreateSequence) StatementType() statement.Type { return statement.TypeCreateSequence }
func (CreateSequence) Priority() int                 { return sqlgen.PriorityDefault }

func (CreateSequence) Supports(stmt statement.Statement, env database.Environment) bool {
	return is[statement.CreateSequence](stmt) && env.SupportsSequences()
}

func (CreateSequence) Validate(stmt statement.Statement, _ database.Environment, _ *sqlgen.Chain) validate.Result {
	s, ok := as[statement.CreateSequence](stmt)
	if !ok {
		return unexpectedResult(stmt)
	}

	var res validate.Result
	res.CheckRequired("sequenceName", s.Sequence)
	if s.IncrementBy != nil && *s.IncrementBy == 0 {
		res.AddError("incrementBy", "must not be zero")
	}

	return res
}

func (CreateSequence) Generate(stmt statement.Statement, env database.Environment, _ *sqlgen.Chain) ([]sql.Fragment, error) {
	s, ok := as[statement.CreateSequence](stmt)
	if !ok {
		return nil, unexpected(stmt)
	}

	b := utils.NewSQLBuilder().
		Create("SEQUENCE").
		Name(env.EscapeSequenceName(s.Catalog, s.Schema, s.Sequence))

	if s.StartWith != nil {
		b.Raw("START WITH " + strconv.FormatInt(*s.StartWith, 10))
	}

	if s.IncrementBy != nil {
		b.Raw("INCREMENT BY " + strconv.FormatInt(*s.IncrementBy, 10))
	}

	return []sql.Fragment{sql.New(b.String())}, nil
}
