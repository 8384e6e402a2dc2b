package database

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/changekit/pkg/consts"
	"github.com/pseudomuto/changekit/pkg/utils"
)

// Supported dialects.
const (
	MySQL      Dialect = "mysql"
	PostgreSQL Dialect = "postgresql"
	SQLite     Dialect = "sqlite"
)

// Object kinds passed to EscapeObjectName.
const (
	ObjectColumn ObjectKind = iota + 1
	ObjectTable
	ObjectSequence
	ObjectSchema
)

// Quoting strategies.
const (
	// QuoteLegacy quotes only names that require it: reserved words, names
	// with characters outside [A-Za-z0-9_$] and names starting with a digit.
	QuoteLegacy QuotingStrategy = "legacy"

	// QuoteAll quotes every name.
	QuoteAll QuotingStrategy = "all"
)

// ErrUnknownDialect is returned by New and ParseDialect for unsupported dialect names.
var ErrUnknownDialect = errors.New("unknown dialect")

type (
	// Dialect identifies a SQL dialect. Generators compare it by equality.
	Dialect string

	// ObjectKind identifies the kind of object a name refers to.
	ObjectKind int

	// QuotingStrategy controls when identifiers are quoted.
	QuotingStrategy string

	// TableRef locates a table.
	TableRef struct {
		Catalog string
		Schema  string
		Name    string
	}

	// Environment supplies dialect identity and escaping services to
	// generators and changes.
	Environment interface {
		Dialect() Dialect

		EscapeTableName(catalog, schema, table string) string
		EscapeSequenceName(catalog, schema, sequence string) string
		EscapeObjectName(name string, kind ObjectKind) string
		QuoteString(value string) string
		BooleanValue(value bool) string

		AutoIncrementClause(startWith, incrementBy *int64) string
		TableOptionAutoIncrementStartWithClause(startWith int64) string
		SequenceNextValueFunction(catalog, schema, sequence string) string

		SupportsAutoIncrement() bool
		SupportsSequences() bool

		ChangeLogTable() TableRef
		Snapshot() Snapshot
	}

	// Option customises an environment created by New.
	Option func(*environment)

	environment struct {
		dialect        Dialect
		quoting        QuotingStrategy
		changeLogTable TableRef
		snapshot       Snapshot
		profile        profile
	}

	// profile carries the dialect specific rules of a reference environment.
	profile struct {
		quoteIdentifier     func(string) string
		quoteLiteral        func(string) string
		reserved            map[string]bool
		autoIncrement       func(startWith, incrementBy *int64) string
		supportsSequences   bool
		usesCatalogAsSchema bool
	}
)

// ParseDialect maps a dialect name to a Dialect. Common aliases are accepted.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mysql", "mariadb":
		return MySQL, nil
	case "postgresql", "postgres", "pg":
		return PostgreSQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return "", errors.Wrapf(ErrUnknownDialect, "%q", name)
	}
}

// ParseQuotingStrategy maps a strategy name to a QuotingStrategy. An empty
// name selects QuoteLegacy.
func ParseQuotingStrategy(name string) (QuotingStrategy, error) {
	switch QuotingStrategy(strings.ToLower(strings.TrimSpace(name))) {
	case "", QuoteLegacy:
		return QuoteLegacy, nil
	case QuoteAll:
		return QuoteAll, nil
	default:
		return "", errors.Errorf("unknown quoting strategy: %q", name)
	}
}

// WithQuoting sets the quoting strategy. The default is QuoteLegacy.
func WithQuoting(q QuotingStrategy) Option {
	return func(e *environment) { e.quoting = q }
}

// WithChangeLogTable sets the location of the tracking table.
func WithChangeLogTable(t TableRef) Option {
	return func(e *environment) {
		if t.Name == "" {
			t.Name = consts.DefaultChangeLogTable
		}
		e.changeLogTable = t
	}
}

// WithSnapshot attaches a schema snapshot used for status checks.
func WithSnapshot(s Snapshot) Option {
	return func(e *environment) { e.snapshot = s }
}

// New returns the reference environment for dialect.
func New(dialect Dialect, opts ...Option) (Environment, error) {
	p, ok := profiles[dialect]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownDialect, "%q", dialect)
	}

	env := &environment{
		dialect:        dialect,
		quoting:        QuoteLegacy,
		changeLogTable: TableRef{Name: consts.DefaultChangeLogTable},
		profile:        p,
	}

	for _, opt := range opts {
		opt(env)
	}

	return env, nil
}

func (e *environment) Dialect() Dialect { return e.dialect }

func (e *environment) EscapeTableName(catalog, schema, table string) string {
	return e.qualify(catalog, schema, table, ObjectTable)
}

func (e *environment) EscapeSequenceName(catalog, schema, sequence string) string {
	return e.qualify(catalog, schema, sequence, ObjectSequence)
}

func (e *environment) EscapeObjectName(name string, _ ObjectKind) string {
	if name == "" {
		return ""
	}

	if e.quoting == QuoteAll || e.needsQuoting(name) {
		return e.profile.quoteIdentifier(name)
	}

	return name
}

func (e *environment) QuoteString(value string) string {
	return e.profile.quoteLiteral(value)
}

func (e *environment) BooleanValue(value bool) string {
	if e.dialect == SQLite {
		if value {
			return "1"
		}
		return "0"
	}

	if value {
		return "TRUE"
	}
	return "FALSE"
}

func (e *environment) AutoIncrementClause(startWith, incrementBy *int64) string {
	if e.profile.autoIncrement == nil {
		return ""
	}

	return e.profile.autoIncrement(startWith, incrementBy)
}

func (e *environment) TableOptionAutoIncrementStartWithClause(startWith int64) string {
	if e.dialect != MySQL {
		return ""
	}

	return "AUTO_INCREMENT=" + strconv.FormatInt(startWith, 10)
}

func (e *environment) SequenceNextValueFunction(catalog, schema, sequence string) string {
	if !e.profile.supportsSequences {
		return ""
	}

	return "nextval(" + e.QuoteString(e.EscapeSequenceName(catalog, schema, sequence)) + ")"
}

func (e *environment) SupportsAutoIncrement() bool { return e.profile.autoIncrement != nil }
func (e *environment) SupportsSequences() bool     { return e.profile.supportsSequences }
func (e *environment) ChangeLogTable() TableRef    { return e.changeLogTable }
func (e *environment) Snapshot() Snapshot          { return e.snapshot }

func (e *environment) qualify(catalog, schema, name string, kind ObjectKind) string {
	// MySQL databases are catalogs; a schema name is only honoured when no
	// catalog is given.
	if e.profile.usesCatalogAsSchema {
		if catalog == "" {
			catalog = schema
		}
		schema = ""
	} else {
		catalog = ""
	}

	return utils.QualifiedName(
		e.EscapeObjectName(catalog, ObjectSchema),
		e.EscapeObjectName(schema, ObjectSchema),
		e.EscapeObjectName(name, kind),
	)
}

func (e *environment) needsQuoting(name string) bool {
	return !utils.IsPlainIdentifier(name) || e.profile.reserved[strings.ToUpper(name)]
}
