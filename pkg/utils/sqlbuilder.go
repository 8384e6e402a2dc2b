package utils

import "strings"

// SQLBuilder provides a fluent interface for building DDL statements.
// Names passed to the builder must already be escaped by the target
// environment; the builder only arranges keywords and clauses.
//
// Example usage:
//
//	sql := NewSQLBuilder().
//		AlterTable("public.users").
//		AlterColumn("status").
//		SetDefault("'active'").
//		String()
//	// Output: ALTER TABLE public.users ALTER COLUMN status SET DEFAULT 'active'
type SQLBuilder struct {
	parts []string
}

// NewSQLBuilder creates a new SQLBuilder instance.
func NewSQLBuilder() *SQLBuilder {
	return &SQLBuilder{
		parts: make([]string, 0, 10),
	}
}

// Create adds a CREATE clause with the specified object type.
//
// Example:
//
//	builder.Create("SEQUENCE")  // CREATE SEQUENCE
func (b *SQLBuilder) Create(objectType string) *SQLBuilder {
	b.parts = append(b.parts, "CREATE", objectType)
	return b
}

// Alter adds an ALTER clause with the specified object type.
//
// Example:
//
//	builder.Alter("SEQUENCE")   // ALTER SEQUENCE
func (b *SQLBuilder) Alter(objectType string) *SQLBuilder {
	b.parts = append(b.parts, "ALTER", objectType)
	return b
}

// AlterTable adds ALTER TABLE followed by the escaped table name.
func (b *SQLBuilder) AlterTable(table string) *SQLBuilder {
	return b.Alter("TABLE").Name(table)
}

// Update adds UPDATE followed by the escaped table name.
func (b *SQLBuilder) Update(table string) *SQLBuilder {
	b.parts = append(b.parts, "UPDATE")
	return b.Name(table)
}

// Name adds an already escaped object name.
func (b *SQLBuilder) Name(name string) *SQLBuilder {
	if name != "" {
		b.parts = append(b.parts, name)
	}
	return b
}

// Modify adds a MODIFY clause for the escaped column.
//
// Example:
//
//	builder.Modify("id")  // MODIFY id
func (b *SQLBuilder) Modify(column string) *SQLBuilder {
	b.parts = append(b.parts, "MODIFY", column)
	return b
}

// AlterColumn adds an ALTER COLUMN clause for the escaped column.
func (b *SQLBuilder) AlterColumn(column string) *SQLBuilder {
	b.parts = append(b.parts, "ALTER", "COLUMN", column)
	return b
}

// SetDefault adds SET DEFAULT with the rendered value.
func (b *SQLBuilder) SetDefault(value string) *SQLBuilder {
	b.parts = append(b.parts, "SET", "DEFAULT", value)
	return b
}

// DropDefault adds DROP DEFAULT.
func (b *SQLBuilder) DropDefault() *SQLBuilder {
	b.parts = append(b.parts, "DROP", "DEFAULT")
	return b
}

// Set adds a SET clause with comma separated assignments.
//
// Example:
//
//	builder.Set("MD5SUM = '1:abc'", "ORDEREXECUTED = 2")  // SET MD5SUM = '1:abc', ORDEREXECUTED = 2
func (b *SQLBuilder) Set(assignments ...string) *SQLBuilder {
	if len(assignments) > 0 {
		b.parts = append(b.parts, "SET", strings.Join(assignments, ", "))
	}
	return b
}

// Where adds a WHERE clause if clause is not empty.
func (b *SQLBuilder) Where(clause string) *SQLBuilder {
	if clause != "" {
		b.parts = append(b.parts, "WHERE", clause)
	}
	return b
}

// Raw adds raw SQL text to the builder. Use sparingly for complex constructs
// that don't fit the fluent pattern.
//
// Example:
//
//	builder.Raw("AUTO_INCREMENT")  // AUTO_INCREMENT
func (b *SQLBuilder) Raw(sql string) *SQLBuilder {
	if sql != "" {
		b.parts = append(b.parts, sql)
	}
	return b
}

// String builds and returns the statement text. Statement delimiters are
// attached by the fragment that carries the text, not by the builder.
func (b *SQLBuilder) String() string {
	return strings.Join(b.parts, " ")
}
