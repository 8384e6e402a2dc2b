// Package statement defines the dialect-independent descriptions of schema
// operations that SQL generators translate into dialect SQL.
//
// Every statement is a plain value identified by a Type tag. The tag, not the
// Go type, is what the generator registry keys on, so third-party generators
// can target any statement without type assertions in the registry itself.
//
// Statements are constructed fresh for each call and are never modified after
// they are handed to a generator.
package statement

import "github.com/pseudomuto/changekit/pkg/checksum"

// Type tags. These strings are stable identifiers used as registry keys.
const (
	TypeAddAutoIncrement        Type = "addAutoIncrement"
	TypeAddDefaultValue         Type = "addDefaultValue"
	TypeDropDefaultValue        Type = "dropDefaultValue"
	TypeCreateSequence          Type = "createSequence"
	TypeRawSQL                  Type = "rawSQL"
	TypeUpdate                  Type = "update"
	TypeUpdateChangeSetChecksum Type = "updateChangeSetChecksum"
)

type (
	// Type identifies the kind of operation a Statement describes.
	Type string

	// Statement is a dialect-independent description of one operation.
	Statement interface {
		Type() Type
	}

	// AddAutoIncrement converts an existing column into an auto-increment column.
	AddAutoIncrement struct {
		Catalog        string
		Schema         string
		Table          string
		Column         string
		ColumnDataType string
		StartWith      *int64
		IncrementBy    *int64
	}

	// AddDefaultValue sets the default value of an existing column.
	AddDefaultValue struct {
		Catalog        string
		Schema         string
		Table          string
		Column         string
		ColumnDataType string
		Default        DefaultValue
	}

	// DropDefaultValue removes the default value of a column.
	DropDefaultValue struct {
		Catalog        string
		Schema         string
		Table          string
		Column         string
		ColumnDataType string
	}

	// CreateSequence creates a new sequence.
	CreateSequence struct {
		Catalog     string
		Schema      string
		Sequence    string
		StartWith   *int64
		IncrementBy *int64
	}

	// RawSQL is a statement written by hand, emitted verbatim.
	RawSQL struct {
		SQL          string
		EndDelimiter string
	}

	// Update is a data update on a single table. Where may contain `?`
	// placeholders which are bound, in order, to WhereParams.
	Update struct {
		Catalog     string
		Schema      string
		Table       string
		NewValues   []ColumnValue
		Where       string
		WhereParams []any
	}

	// ColumnValue is a single column assignment in an Update.
	ColumnValue struct {
		Column string
		Value  any
	}

	// UpdateChangeSetChecksum rewrites the stored checksum of a change set in
	// the tracking table.
	UpdateChangeSetChecksum struct {
		ChangeSet ChangeSetRef
	}

	// ChangeSetRef is the identity and checksum source of a change set as seen
	// by the tracking table.
	ChangeSetRef interface {
		ID() string
		Author() string
		FilePath() string
		GenerateCheckSum() (checksum.Checksum, error)
	}
)

func (AddAutoIncrement) Type() Type        { return TypeAddAutoIncrement }
func (AddDefaultValue) Type() Type         { return TypeAddDefaultValue }
func (DropDefaultValue) Type() Type        { return TypeDropDefaultValue }
func (CreateSequence) Type() Type          { return TypeCreateSequence }
func (RawSQL) Type() Type                  { return TypeRawSQL }
func (Update) Type() Type                  { return TypeUpdate }
func (UpdateChangeSetChecksum) Type() Type { return TypeUpdateChangeSetChecksum }

// AddNewColumnValue returns a copy of u with an additional assignment.
func (u Update) AddNewColumnValue(column string, value any) Update {
	values := make([]ColumnValue, len(u.NewValues), len(u.NewValues)+1)
	copy(values, u.NewValues)
	u.NewValues = append(values, ColumnValue{Column: column, Value: value})
	return u
}

// SetWhere returns a copy of u with the given where clause and parameters.
func (u Update) SetWhere(clause string, params ...any) Update {
	u.Where = clause
	u.WhereParams = append([]any(nil), params...)
	return u
}
