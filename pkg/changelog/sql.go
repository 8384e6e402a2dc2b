package changelog

import (
	"regexp"
	"slices"
	"strings"

	"github.com/pseudomuto/changekit/pkg/checksum"
	"github.com/pseudomuto/changekit/pkg/database"
	"github.com/pseudomuto/changekit/pkg/statement"
	"github.com/pseudomuto/changekit/pkg/validate"
)

type (
	// SQLOptions control how hand written SQL is turned into statements.
	SQLOptions struct {
		// SplitStatements splits the SQL on statement delimiters. Nil means
		// true.
		SplitStatements *bool

		// StripComments removes comments before the SQL is executed.
		StripComments bool

		// EndDelimiter is a regular expression ending each statement. Empty
		// means a semicolon or a line holding only GO.
		EndDelimiter string

		// DBMS restricts the change to the listed dialects. Empty means all.
		DBMS []database.Dialect
	}

	// SQLChange runs hand written SQL.
	SQLChange struct {
		changeBase
		SQLOptions

		// SQL is stored and executed verbatim.
		SQL string

		// Comment is for documentation only.
		Comment string
	}
)

// Split reports whether statements are split.
func (o SQLOptions) Split() bool {
	return o.SplitStatements == nil || *o.SplitStatements
}

func (o SQLOptions) supports(env database.Environment) bool {
	return len(o.DBMS) == 0 || slices.Contains(o.DBMS, env.Dialect())
}

func (o SQLOptions) validate(res *validate.Result) {
	if o.EndDelimiter == "" {
		return
	}

	if _, err := regexp.Compile(o.EndDelimiter); err != nil {
		res.AddError("endDelimiter", "is not a valid regular expression: %v", err)
	}
}

// statements converts script into one RawSQL statement per SQL statement.
func (o SQLOptions) statements(script string) ([]statement.Statement, error) {
	var (
		parts []string
		err   error
	)

	if o.Split() {
		parts, err = SplitStatements(script, o.StripComments, o.EndDelimiter)
	} else {
		parts, err = wholeScript(script, o.StripComments)
	}
	if err != nil {
		return nil, err
	}

	delim := ""
	if o.EndDelimiter != "" && regexp.QuoteMeta(o.EndDelimiter) == o.EndDelimiter {
		delim = o.EndDelimiter
	}

	stmts := make([]statement.Statement, len(parts))
	for i, p := range parts {
		stmts[i] = statement.RawSQL{SQL: p, EndDelimiter: delim}
	}

	return stmts, nil
}

func (o SQLOptions) checksum(b *checksum.Builder) *checksum.Builder {
	dbms := make([]string, len(o.DBMS))
	for i, d := range o.DBMS {
		dbms[i] = string(d)
	}
	slices.Sort(dbms)

	b.Bool("splitStatements", o.Split()).
		Bool("stripComments", o.StripComments).
		String("endDelimiter", o.EndDelimiter)

	for _, d := range dbms {
		b.String("dbms", d)
	}

	return b
}

func wholeScript(script string, stripComments bool) ([]string, error) {
	if stripComments {
		stripped, err := StripComments(script)
		if err != nil {
			return nil, err
		}
		script = stripped
	}

	if script = strings.TrimSpace(script); script == "" {
		return nil, nil
	}

	return []string{script}, nil
}

func (c *SQLChange) Name() string { return "sql" }

func (c *SQLChange) Supports(env database.Environment) bool { return c.supports(env) }

func (c *SQLChange) Validate(database.Environment) validate.Result {
	var res validate.Result
	res.CheckRequired("sql", c.SQL)
	c.SQLOptions.validate(&res)
	return res
}

func (c *SQLChange) GenerateStatements(database.Environment) ([]statement.Statement, error) {
	return c.statements(c.SQL)
}

func (c *SQLChange) GenerateRollbackStatements(database.Environment) ([]statement.Statement, error) {
	return nil, rollbackImpossible(c)
}

func (c *SQLChange) GenerateCheckSum() (checksum.Checksum, error) {
	b := checksum.NewBuilder().
		String("change", c.Name()).
		String("sql", c.SQL)

	return c.checksum(b).Sum(), nil
}

func (c *SQLChange) CheckStatus(database.Environment) (ChangeStatus, error) {
	return ChangeStatus{}, statusUnknown(c, "raw SQL cannot be verified")
}

func (c *SQLChange) ConfirmationMessage() string { return "Custom SQL executed" }
