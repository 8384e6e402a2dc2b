package consts

import "os"

const (
	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// DefaultConfigFile is the project configuration file looked up by config.Module
	DefaultConfigFile = "changekit.yaml"

	// DefaultDialect is used when the configuration does not name one
	DefaultDialect = "postgresql"

	// DefaultEncoding is the encoding used for file-backed SQL content
	DefaultEncoding = "utf-8"

	// DefaultChangeLogTable is the name of the tracking table
	DefaultChangeLogTable = "DATABASECHANGELOG"

	// DefaultEndDelimiter terminates generated statements
	DefaultEndDelimiter = ";"
)

// Tracking table columns. These names are persisted and must not change.
const (
	ColumnID       = "ID"
	ColumnAuthor   = "AUTHOR"
	ColumnFilename = "FILENAME"
	ColumnChecksum = "MD5SUM"
)
