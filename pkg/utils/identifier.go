package utils

import "strings"

// BacktickIdentifier adds backticks around an identifier, handling nested identifiers.
// It properly handles catalog.table.column style identifiers by backticking each part.
//
// Examples:
//   - "table" -> "`table`"
//   - "database.table" -> "`database`.`table`"
//   - "`table`" -> "`table`" (already backticked, not double-backticked)
//   - "" -> ""
func BacktickIdentifier(name string) string {
	return QuoteIdentifier(name, "`")
}

// DoubleQuoteIdentifier is BacktickIdentifier for ANSI quoted identifiers.
//
// Examples:
//   - "table" -> "\"table\""
//   - "main.table" -> "\"main\".\"table\""
func DoubleQuoteIdentifier(name string) string {
	return QuoteIdentifier(name, `"`)
}

// QuoteIdentifier wraps every dot-separated part of name in quote, leaving
// parts that are already quoted untouched. Embedded quote characters are
// doubled.
func QuoteIdentifier(name, quote string) string {
	if name == "" {
		return ""
	}

	// A single quoted identifier may legitimately contain dots.
	if IsQuoted(name, quote) {
		return name
	}

	parts := strings.Split(name, ".")
	for i, part := range parts {
		if IsQuoted(part, quote) {
			continue
		}
		parts[i] = quote + strings.ReplaceAll(part, quote, quote+quote) + quote
	}
	return strings.Join(parts, ".")
}

// IsQuoted checks if s is a single identifier wrapped in quote.
//
// Examples:
//   - ("`table`", "`") -> true
//   - ("table", "`") -> false
//   - ("`db`.`table`", "`") -> false (qualified name, not a single identifier)
func IsQuoted(s, quote string) bool {
	if len(s) < 2 || !strings.HasPrefix(s, quote) || !strings.HasSuffix(s, quote) {
		return false
	}

	return !strings.Contains(strings.ReplaceAll(s[1:len(s)-1], quote+quote, ""), quote)
}

// QualifiedName joins the non-empty parts with dots.
//
// Examples:
//   - ("", "public", "users") -> "public.users"
//   - ("", "", "users") -> "users"
func QualifiedName(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ".")
}

// IsPlainIdentifier reports whether name can be written without quotes: it
// starts with a letter or underscore and contains only letters, digits,
// underscores or dollar signs.
func IsPlainIdentifier(name string) bool {
	if name == "" {
		return false
	}

	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '$'):
		default:
			return false
		}
	}
	return true
}
