package changelog

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/changekit/pkg/checksum"
	"github.com/pseudomuto/changekit/pkg/database"
	"github.com/pseudomuto/changekit/pkg/resource"
	"github.com/pseudomuto/changekit/pkg/statement"
	"github.com/pseudomuto/changekit/pkg/validate"
)

// SQLFileChange runs the SQL stored in a file.
//
// The file is read through Resources every time statements or the checksum
// are generated, never at configuration time. Loaded text has the change
// set's parameters expanded; text supplied with SetSQL is used verbatim.
type SQLFileChange struct {
	changeBase
	SQLOptions

	// Path of the SQL file. Required.
	Path string

	// Encoding of the file. Empty means the change set's default encoding,
	// or UTF-8 when that is empty too.
	Encoding string

	// RelativeToChangelogFile resolves Path against the directory of the
	// change set's file.
	RelativeToChangelogFile bool

	// Resources loads the file.
	Resources resource.Accessor

	sql *string
}

func (c *SQLFileChange) Name() string { return "sqlFile" }

func (c *SQLFileChange) FinishInitialization() error {
	if strings.TrimSpace(c.Path) == "" {
		return &SetupError{Change: c.Name(), Message: "No path specified"}
	}

	return nil
}

// SetSQL replaces the file content. The text is stored verbatim and used
// instead of reading Path.
func (c *SQLFileChange) SetSQL(sql string) {
	c.sql = &sql
}

// ResolvedPath returns the path handed to Resources.
func (c *SQLFileChange) ResolvedPath() string {
	relativeTo := ""
	if cs := c.ChangeSet(); cs != nil {
		relativeTo = cs.FilePath()
	}

	return resource.Resolve(c.Path, relativeTo, c.RelativeToChangelogFile)
}

// rawSQL returns the SQL before parameter expansion.
func (c *SQLFileChange) rawSQL() (string, error) {
	if c.sql != nil {
		return *c.sql, nil
	}

	return resource.ReadString(c.Resources, c.ResolvedPath(), c.encoding())
}

func (c *SQLFileChange) encoding() string {
	if c.Encoding != "" {
		return c.Encoding
	}

	if cs := c.ChangeSet(); cs != nil {
		return cs.Encoding
	}

	return ""
}

// SQL returns the SQL to execute. Content read from the file has the change
// set's parameters expanded; content from SetSQL is returned as stored.
func (c *SQLFileChange) SQL() (string, error) {
	if c.sql != nil {
		return *c.sql, nil
	}

	content, err := c.rawSQL()
	if err != nil {
		return "", err
	}

	expanded, err := c.parameters().Expand(content)
	if err != nil {
		return "", errors.Wrapf(err, "failed to expand parameters in %s", c.ResolvedPath())
	}

	return expanded, nil
}

func (c *SQLFileChange) Supports(env database.Environment) bool { return c.supports(env) }

func (c *SQLFileChange) Validate(database.Environment) validate.Result {
	var res validate.Result
	res.CheckRequired("path", c.Path)
	c.SQLOptions.validate(&res)
	return res
}

func (c *SQLFileChange) GenerateStatements(database.Environment) ([]statement.Statement, error) {
	sql, err := c.SQL()
	if err != nil {
		return nil, err
	}

	return c.statements(sql)
}

func (c *SQLFileChange) GenerateRollbackStatements(database.Environment) ([]statement.Statement, error) {
	return nil, rollbackImpossible(c)
}

// GenerateCheckSum digests the SQL that would run: the decoded file content
// with parameters expanded, byte for byte. The path and encoding are not part
// of the checksum, so moving or re-encoding an unchanged file keeps it.
func (c *SQLFileChange) GenerateCheckSum() (checksum.Checksum, error) {
	content, err := c.SQL()
	if err != nil {
		return checksum.Checksum{}, err
	}

	b := checksum.NewBuilder().
		String("change", c.Name()).
		String("sql", content)

	return c.checksum(b).Sum(), nil
}

func (c *SQLFileChange) CheckStatus(database.Environment) (ChangeStatus, error) {
	return ChangeStatus{}, statusUnknown(c, "raw SQL cannot be verified")
}

func (c *SQLFileChange) ConfirmationMessage() string {
	return "SQL in file " + c.Path + " executed"
}
