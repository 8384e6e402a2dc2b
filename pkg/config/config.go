package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/pseudomuto/changekit/pkg/changelog"
	"github.com/pseudomuto/changekit/pkg/consts"
	"github.com/pseudomuto/changekit/pkg/database"
	"github.com/pseudomuto/changekit/pkg/resource"
	"github.com/pseudomuto/changekit/pkg/validate"
	"gopkg.in/yaml.v3"
)

type (
	// Config represents the project configuration stored in changekit.yaml.
	//
	// Example configuration:
	//
	//	dialect: postgresql
	//	quoting: legacy
	//	encoding: utf-8
	//	changelog:
	//	  schema: public
	//	  table: DATABASECHANGELOG
	//	parameters:
	//	  schema: app
	//	  owner: app_owner
	Config struct {
		// Dialect names the target database (mysql, postgresql or sqlite).
		// Aliases like "postgres" and "mariadb" are accepted.
		Dialect string `yaml:"dialect"`

		// Quoting selects the identifier quoting strategy (legacy or all).
		Quoting string `yaml:"quoting,omitempty"`

		// Encoding is the default encoding for file-backed SQL.
		Encoding string `yaml:"encoding,omitempty"`

		// ChangeLog locates the tracking table.
		ChangeLog ChangeLog `yaml:"changelog"`

		// Parameters are substituted into ${name} placeholders in SQL content.
		Parameters map[string]string `yaml:"parameters,omitempty"`
	}

	// ChangeLog locates the table that records executed change sets.
	ChangeLog struct {
		Catalog string `yaml:"catalog,omitempty"`
		Schema  string `yaml:"schema,omitempty"`
		Table   string `yaml:"table"`
	}
)

// Default returns a configuration populated entirely from defaults.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig parses a changekit.yaml document from the given reader, applies
// defaults for any omitted fields and validates the result.
//
// Example:
//
//	cfg, err := config.LoadConfig(strings.NewReader("dialect: mysql"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	env, err := cfg.Environment()
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal changekit config")
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadConfigFile loads the configuration from the file at path.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var res validate.Result
	if _, err := database.ParseDialect(c.Dialect); err != nil {
		res.AddError("dialect", "%s", err)
	}

	if _, err := database.ParseQuotingStrategy(c.Quoting); err != nil {
		res.AddError("quoting", "%s", err)
	}

	if _, err := resource.Encoding(c.Encoding); err != nil {
		res.AddError("encoding", "%s", err)
	}

	res.CheckRequired("changelog.table", c.ChangeLog.Table)
	return res.Err()
}

// Environment builds the database environment described by the configuration.
// Additional options, such as database.WithSnapshot, are applied last.
func (c *Config) Environment(opts ...database.Option) (database.Environment, error) {
	dialect, err := database.ParseDialect(c.Dialect)
	if err != nil {
		return nil, err
	}

	quoting, err := database.ParseQuotingStrategy(c.Quoting)
	if err != nil {
		return nil, err
	}

	base := []database.Option{
		database.WithQuoting(quoting),
		database.WithChangeLogTable(database.TableRef{
			Catalog: c.ChangeLog.Catalog,
			Schema:  c.ChangeLog.Schema,
			Name:    c.ChangeLog.Table,
		}),
	}

	return database.New(dialect, append(base, opts...)...)
}

// GetParameters returns the configured changelog parameters.
func (c *Config) GetParameters() *changelog.Parameters {
	return changelog.NewParameters(c.Parameters)
}

// ChangeSetOptions returns the options that apply the configured parameters
// and default encoding to a change set.
//
// Example:
//
//	cs := changelog.NewChangeSet("1", "jane", "db/changelog.yaml", cfg.ChangeSetOptions()...)
func (c *Config) ChangeSetOptions() []changelog.ChangeSetOption {
	return []changelog.ChangeSetOption{
		changelog.WithParameters(c.GetParameters()),
		changelog.WithEncoding(c.Encoding),
	}
}

func (c *Config) applyDefaults() {
	if c.Dialect == "" {
		c.Dialect = consts.DefaultDialect
	}

	if c.Quoting == "" {
		c.Quoting = string(database.QuoteLegacy)
	}

	if c.Encoding == "" {
		c.Encoding = consts.DefaultEncoding
	}

	if c.ChangeLog.Table == "" {
		c.ChangeLog.Table = consts.DefaultChangeLogTable
	}
}
