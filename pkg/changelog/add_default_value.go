package changelog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pseudomuto/changekit/pkg/checksum"
	"github.com/pseudomuto/changekit/pkg/database"
	"github.com/pseudomuto/changekit/pkg/statement"
	"github.com/pseudomuto/changekit/pkg/utils"
	"github.com/pseudomuto/changekit/pkg/validate"
)

// Postgres reports defaults with a type cast, e.g. 'active'::character varying.
var defaultCastPattern = regexp.MustCompile(`::[a-zA-Z_][\w ]*(\[\])?$`)

// AddDefaultValueChange sets the default value of an existing column.
type AddDefaultValueChange struct {
	changeBase

	Catalog        string
	Schema         string
	Table          string
	Column         string
	ColumnDataType string
	Default        statement.DefaultValue
}

func (c *AddDefaultValueChange) Name() string { return "addDefaultValue" }

func (c *AddDefaultValueChange) Supports(database.Environment) bool { return true }

func (c *AddDefaultValueChange) Validate(env database.Environment) validate.Result {
	var res validate.Result
	res.CheckRequired("tableName", c.Table)
	res.CheckRequired("columnName", c.Column)

	switch {
	case c.Default.IsZero():
		res.AddError("defaultValue", "is required")
	case c.Default.Kind() == statement.DefaultSequenceNext && !env.SupportsSequences():
		res.AddError("defaultValue", "sequence defaults are not allowed on %s", env.Dialect())
	}

	return res
}

func (c *AddDefaultValueChange) GenerateStatements(database.Environment) ([]statement.Statement, error) {
	return []statement.Statement{
		statement.AddDefaultValue{
			Catalog:        c.Catalog,
			Schema:         c.Schema,
			Table:          c.Table,
			Column:         c.Column,
			ColumnDataType: c.ColumnDataType,
			Default:        c.Default,
		},
	}, nil
}

func (c *AddDefaultValueChange) SupportsRollback(database.Environment) bool { return true }

func (c *AddDefaultValueChange) GenerateRollbackStatements(database.Environment) ([]statement.Statement, error) {
	return []statement.Statement{
		statement.DropDefaultValue{
			Catalog:        c.Catalog,
			Schema:         c.Schema,
			Table:          c.Table,
			Column:         c.Column,
			ColumnDataType: c.ColumnDataType,
		},
	}, nil
}

func (c *AddDefaultValueChange) GenerateCheckSum() (checksum.Checksum, error) {
	return checksum.NewBuilder().
		String("change", c.Name()).
		String("catalogName", c.Catalog).
		String("schemaName", c.Schema).
		String("tableName", c.Table).
		String("columnName", c.Column).
		String("columnDataType", c.ColumnDataType).
		String("defaultValueKind", c.Default.Kind().String()).
		String("defaultValue", c.Default.String()).
		Sum(), nil
}

func (c *AddDefaultValueChange) CheckStatus(env database.Environment) (ChangeStatus, error) {
	snap := env.Snapshot()
	if snap == nil {
		return ChangeStatus{}, statusUnknown(c, "no snapshot available")
	}

	col, ok := snap.Column(c.table(), c.Column)
	if !ok {
		return notApplied("column %s.%s does not exist", c.Table, c.Column), nil
	}

	if col.Default == nil {
		if c.Default.Kind() == statement.DefaultNull {
			return applied(), nil
		}
		return notApplied("column %s.%s has no default", c.Table, c.Column), nil
	}

	want := expectedDefault(c.Default)
	if got := normalizeDefault(*col.Default); !sameDefault(got, want) {
		return appliedDiffers("default is %s, expected %s", got, want), nil
	}

	return applied(), nil
}

func (c *AddDefaultValueChange) AffectedObjects(database.Environment) []database.TableRef {
	return []database.TableRef{c.table()}
}

func (c *AddDefaultValueChange) table() database.TableRef {
	return tableRef(c.Catalog, c.Schema, c.Table)
}

func (c *AddDefaultValueChange) ConfirmationMessage() string {
	return "Default value added to " + c.Table + "." + c.Column
}

// expectedDefault renders d the way normalizeDefault reduces a reported
// default.
func expectedDefault(d statement.DefaultValue) string {
	switch d.Kind() {
	case statement.DefaultLiteral:
		if s, ok := d.LiteralValue().(string); ok {
			return s
		}
		return d.String()
	case statement.DefaultSequenceNext:
		return "nextval(" + d.Expression() + ")"
	default:
		return d.String()
	}
}

// normalizeDefault strips casts, wrapping parentheses and literal quotes from
// a default reported by the database.
func normalizeDefault(s string) string {
	s = strings.TrimSpace(s)
	for {
		stripped := strings.TrimSpace(defaultCastPattern.ReplaceAllString(s, ""))
		if len(stripped) >= 2 && stripped[0] == '(' && stripped[len(stripped)-1] == ')' {
			stripped = strings.TrimSpace(stripped[1 : len(stripped)-1])
		}

		if stripped == s {
			break
		}
		s = stripped
	}

	if strings.HasPrefix(strings.ToLower(s), "nextval(") {
		inner := strings.TrimSuffix(s[len("nextval("):], ")")
		return "nextval(" + utils.UnquoteLiteral(defaultCastPattern.ReplaceAllString(inner, "")) + ")"
	}

	return utils.UnquoteLiteral(s)
}

// sameDefault compares numbers by value (so 50 matches 50.0) and everything
// else case-insensitively.
func sameDefault(got, want string) bool {
	if utils.IsNumericValue(got) && utils.IsNumericValue(want) {
		g, _ := strconv.ParseFloat(got, 64)
		w, _ := strconv.ParseFloat(want, 64)
		return g == w
	}

	return strings.EqualFold(got, want)
}

func fmtInt(v *int64) string {
	if v == nil {
		return "unset"
	}

	return fmt.Sprintf("%d", *v)
}
