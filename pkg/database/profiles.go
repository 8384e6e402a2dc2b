package database

import (
	"strings"

	"github.com/lib/pq"
	"github.com/pseudomuto/changekit/pkg/utils"
)

var profiles = map[Dialect]profile{
	MySQL: {
		quoteIdentifier: utils.BacktickIdentifier,
		quoteLiteral:    mysqlQuoteLiteral,
		reserved: reservedWords(
			"ACCESSIBLE", "ADD", "ALL", "ALTER", "AND", "AS", "ASC", "BETWEEN", "BY", "CASE",
			"CHECK", "COLUMN", "CONDITION", "CONSTRAINT", "CREATE", "CROSS", "DATABASE",
			"DEFAULT", "DELETE", "DESC", "DISTINCT", "DROP", "ELSE", "EXISTS", "FOR",
			"FOREIGN", "FROM", "GROUP", "HAVING", "IN", "INDEX", "INSERT", "INTERVAL", "INTO",
			"IS", "JOIN", "KEY", "KEYS", "LEFT", "LIKE", "LIMIT", "MODIFY", "NOT", "NULL", "ON",
			"OR", "ORDER", "PRIMARY", "RANGE", "REFERENCES", "RENAME", "RIGHT", "SELECT", "SET",
			"TABLE", "THEN", "TO", "UNION", "UNIQUE", "UPDATE", "USING", "VALUES", "WHEN",
			"WHERE", "WITH",
		),
		autoIncrement: func(_, _ *int64) string {
			// MySQL has no column level start/increment; the start value is a
			// table option.
			return "AUTO_INCREMENT"
		},
		usesCatalogAsSchema: true,
	},
	PostgreSQL: {
		quoteIdentifier: pq.QuoteIdentifier,
		quoteLiteral:    pgQuoteLiteral,
		reserved: reservedWords(
			"ALL", "ANALYSE", "ANALYZE", "AND", "ANY", "ARRAY", "AS", "ASC", "ASYMMETRIC",
			"BOTH", "CASE", "CAST", "CHECK", "COLLATE", "COLUMN", "CONSTRAINT", "CREATE",
			"CURRENT_DATE", "CURRENT_ROLE", "CURRENT_TIME", "CURRENT_TIMESTAMP",
			"CURRENT_USER", "DEFAULT", "DEFERRABLE", "DESC", "DISTINCT", "DO", "ELSE", "END",
			"EXCEPT", "FALSE", "FETCH", "FOR", "FOREIGN", "FROM", "GRANT", "GROUP", "HAVING",
			"IN", "INITIALLY", "INTERSECT", "INTO", "LATERAL", "LEADING", "LIMIT", "LOCALTIME",
			"LOCALTIMESTAMP", "NOT", "NULL", "OFFSET", "ON", "ONLY", "OR", "ORDER", "PLACING",
			"PRIMARY", "REFERENCES", "RETURNING", "SELECT", "SESSION_USER", "SOME",
			"SYMMETRIC", "TABLE", "THEN", "TO", "TRAILING", "TRUE", "UNION", "UNIQUE", "USER",
			"USING", "VARIADIC", "WHEN", "WHERE", "WINDOW", "WITH",
		),
		supportsSequences: true,
	},
	SQLite: {
		quoteIdentifier: utils.DoubleQuoteIdentifier,
		quoteLiteral:    ansiQuoteLiteral,
		reserved: reservedWords(
			"ADD", "ALL", "ALTER", "AND", "AS", "AUTOINCREMENT", "BETWEEN", "CASE", "CHECK",
			"COLLATE", "COMMIT", "CONSTRAINT", "CREATE", "DEFAULT", "DELETE", "DISTINCT",
			"DROP", "ELSE", "EXISTS", "FOREIGN", "FROM", "GROUP", "HAVING", "IN", "INDEX",
			"INSERT", "INTO", "IS", "JOIN", "LIMIT", "NOT", "NULL", "ON", "OR", "ORDER",
			"PRIMARY", "REFERENCES", "SELECT", "SET", "TABLE", "THEN", "TO", "TRANSACTION",
			"UNION", "UNIQUE", "UPDATE", "USING", "VALUES", "WHEN", "WHERE",
		),
	},
}

func reservedWords(words ...string) map[string]bool {
	out := make(map[string]bool, len(words))
	for _, w := range words {
		out[w] = true
	}
	return out
}

func mysqlQuoteLiteral(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

// pgQuoteLiteral drops the space pq.QuoteLiteral puts before E'...' literals.
func pgQuoteLiteral(value string) string {
	return strings.TrimSpace(pq.QuoteLiteral(value))
}

func ansiQuoteLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}
