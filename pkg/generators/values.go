package generators

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/changekit/pkg/database"
	"github.com/pseudomuto/changekit/pkg/statement"
	"github.com/pseudomuto/changekit/pkg/validate"
)

var (
	errUnrenderableDefault = errors.New("default value cannot be rendered")
	errUnexpectedStatement = errors.New("unexpected statement")
)

// as returns stmt as a T. Both T and a non-nil *T are accepted.
func as[T any](stmt statement.Statement) (T, bool) {
	switch s := any(stmt).(type) {
	case T:
		return s, true
	case *T:
		if s != nil {
			return *s, true
		}
	}

	var zero T
	return zero, false
}

// is reports whether stmt can be read as a T.
func is[T any](stmt statement.Statement) bool {
	_, ok := as[T](stmt)
	return ok
}

func unexpected(stmt statement.Statement) error {
	return errors.Wrapf(errUnexpectedStatement, "%T", stmt)
}

func unexpectedResult(stmt statement.Statement) validate.Result {
	var res validate.Result
	res.AddError("", "%s", unexpected(stmt))
	return res
}

// defaultValueSQL renders the default of stmt for env.
func defaultValueSQL(stmt statement.AddDefaultValue, env database.Environment) (string, error) {
	d := stmt.Default
	switch d.Kind() {
	case statement.DefaultLiteral:
		return literalSQL(d.LiteralValue(), env), nil
	case statement.DefaultSequenceNext:
		if fn := env.SequenceNextValueFunction(stmt.Catalog, stmt.Schema, d.Expression()); fn != "" {
			return fn, nil
		}
		return "", errors.Wrapf(errUnrenderableDefault, "sequences are not supported on %s", env.Dialect())
	case statement.DefaultFunction, statement.DefaultComputed:
		return d.Expression(), nil
	case statement.DefaultNull:
		return "NULL", nil
	default:
		return "", errors.Wrapf(errUnrenderableDefault, "unknown kind %s", d.Kind())
	}
}

// literalSQL renders a Go value as a SQL literal.
func literalSQL(v any, env database.Environment) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		return env.QuoteString(x)
	case bool:
		return env.BooleanValue(x)
	case int:
		return strconv.Itoa(x)
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", x)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case statement.DefaultValue:
		s, err := defaultValueSQL(statement.AddDefaultValue{Default: x}, env)
		if err != nil {
			return "NULL"
		}
		return s
	case fmt.Stringer:
		return env.QuoteString(x.String())
	default:
		return env.QuoteString(fmt.Sprintf("%v", x))
	}
}

// bindParams replaces each ? placeholder outside of quoted text with the
// next parameter rendered as a literal.
func bindParams(clause string, params []any, env database.Environment) string {
	if len(params) == 0 {
		return clause
	}

	var (
		sb    strings.Builder
		quote rune
		next  int
	)

	for _, r := range clause {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"' || r == '`':
			quote = r
		case r == '?' && next < len(params):
			sb.WriteString(literalSQL(params[next], env))
			next++
			continue
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

// countPlaceholders counts the ? placeholders outside of quoted text.
func countPlaceholders(clause string) int {
	var (
		quote rune
		n     int
	)

	for _, r := range clause {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"' || r == '`':
			quote = r
		case r == '?':
			n++
		}
	}

	return n
}

func column(env database.Environment, name string) string {
	return env.EscapeObjectName(name, database.ObjectColumn)
}
