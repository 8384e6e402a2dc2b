package config_test

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/pkg/errors"
	"github.com/pseudomuto/changekit/pkg/changelog"
	. "github.com/pseudomuto/changekit/pkg/config"
	"github.com/pseudomuto/changekit/pkg/consts"
	"github.com/pseudomuto/changekit/pkg/database"
	"github.com/pseudomuto/changekit/pkg/resource"
	"github.com/pseudomuto/changekit/pkg/validate"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"golang.org/x/text/encoding/charmap"
)

//go:embed testdata/changekit.yaml
var testConfigYAML string

func TestLoadConfig(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		config, err := LoadConfig(strings.NewReader(testConfigYAML))
		require.NoError(t, err)
		validateTestConfig(t, config)
	})

	t.Run("error", func(t *testing.T) {
		// Invalid YAML
		config, err := LoadConfig(strings.NewReader("invalid: yaml: ["))
		require.Error(t, err)
		require.Nil(t, config)
		require.Contains(t, err.Error(), "failed to unmarshal changekit config")

		// Empty input
		config, err = LoadConfig(strings.NewReader(""))
		require.Error(t, err)
		require.Nil(t, config)
		require.Contains(t, err.Error(), "failed to unmarshal changekit config")
	})

	t.Run("defaults", func(t *testing.T) {
		config, err := LoadConfig(strings.NewReader("other_key: value"))
		require.NoError(t, err)
		require.Equal(t, consts.DefaultDialect, config.Dialect)
		require.Equal(t, "legacy", config.Quoting)
		require.Equal(t, consts.DefaultEncoding, config.Encoding)
		require.Equal(t, consts.DefaultChangeLogTable, config.ChangeLog.Table)
		require.Empty(t, config.Parameters)
		require.Equal(t, Default(), config)
	})

	t.Run("invalid settings", func(t *testing.T) {
		yamlData := `
dialect: oracle
quoting: sometimes
encoding: klingon
`
		config, err := LoadConfig(strings.NewReader(yamlData))
		require.Nil(t, config)
		require.ErrorIs(t, err, validate.ErrValidationFailed)

		var verr *validate.ValidationError
		require.True(t, errors.As(err, &verr))
		require.Equal(t, []string{"dialect", "quoting", "encoding"}, verr.Fields())
	})
}

func TestLoadConfigFile(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "changekit.yaml")
		require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), consts.ModeFile))

		config, err := LoadConfigFile(path)
		require.NoError(t, err)
		validateTestConfig(t, config)
	})

	t.Run("error", func(t *testing.T) {
		config, err := LoadConfigFile("nonexistent.yaml")
		require.Error(t, err)
		require.Nil(t, config)
		require.Contains(t, err.Error(), "failed to open config file")

		// Directory instead of file
		config, err = LoadConfigFile(t.TempDir())
		require.Error(t, err)
		require.Nil(t, config)
		require.True(t, strings.Contains(err.Error(), "failed to open config file") ||
			strings.Contains(err.Error(), "failed to unmarshal changekit config"))
	})
}

func TestConfigEnvironment(t *testing.T) {
	config, err := LoadConfig(strings.NewReader(testConfigYAML))
	require.NoError(t, err)

	t.Run("builds the configured dialect", func(t *testing.T) {
		env, err := config.Environment()
		require.NoError(t, err)
		require.Equal(t, database.PostgreSQL, env.Dialect())
		require.Equal(t, database.TableRef{Schema: "audit", Name: "schema_history"}, env.ChangeLogTable())
		require.Equal(t, `"audit"."schema_history"`, env.EscapeTableName("", "audit", "schema_history"))
	})

	t.Run("applies extra options", func(t *testing.T) {
		snap := database.NewMemorySnapshot()
		env, err := config.Environment(database.WithSnapshot(snap))
		require.NoError(t, err)
		require.Equal(t, snap, env.Snapshot())
	})

	t.Run("rejects an unknown dialect", func(t *testing.T) {
		bad := Default()
		bad.Dialect = "oracle"

		_, err := bad.Environment()
		require.ErrorIs(t, err, database.ErrUnknownDialect)
	})
}

func TestConfigParameters(t *testing.T) {
	config, err := LoadConfig(strings.NewReader(testConfigYAML))
	require.NoError(t, err)

	params := config.GetParameters()
	require.Equal(t, []string{"owner", "schema"}, params.Names())

	out, err := params.Expand("GRANT ALL ON ${schema}.t TO ${owner}")
	require.NoError(t, err)
	require.Equal(t, "GRANT ALL ON app.t TO app_owner", out)
}

func TestConfigChangeSetOptions(t *testing.T) {
	config, err := LoadConfig(strings.NewReader("encoding: latin1\nparameters:\n  drink: café\n"))
	require.NoError(t, err)

	latin1, err := charmap.ISO8859_1.NewEncoder().String("SELECT 'café', '${drink}'")
	require.NoError(t, err)

	c := &changelog.SQLFileChange{
		Path:      "menu.sql",
		Resources: resource.FS(fstest.MapFS{"menu.sql": {Data: []byte(latin1)}}),
	}

	cs := changelog.NewChangeSet("1", "jane", "changelog.yaml", config.ChangeSetOptions()...)
	cs.AddChange(c)
	require.Equal(t, "latin1", cs.Encoding)

	text, err := c.SQL()
	require.NoError(t, err)
	require.Equal(t, "SELECT 'café', 'café'", text)
}

func TestModule(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("defaults without a config file", func(t *testing.T) {
		var env database.Environment
		app := fxtest.New(t, Module, fx.Populate(&env))
		app.RequireStart().RequireStop()

		require.Equal(t, database.PostgreSQL, env.Dialect())
		require.Equal(t, consts.DefaultChangeLogTable, env.ChangeLogTable().Name)
	})

	t.Run("loads changekit.yaml", func(t *testing.T) {
		require.NoError(t, os.WriteFile(consts.DefaultConfigFile, []byte(testConfigYAML), consts.ModeFile))

		var (
			env    database.Environment
			params *changelog.Parameters
		)

		app := fxtest.New(t, Module, fx.Populate(&env, &params))
		app.RequireStart().RequireStop()

		require.Equal(t, "schema_history", env.ChangeLogTable().Name)

		owner, ok := params.Get("owner")
		require.True(t, ok)
		require.Equal(t, "app_owner", owner)
	})
}

// validateTestConfig validates that a config contains the expected test data
func validateTestConfig(t *testing.T, config *Config) {
	t.Helper()
	require.NotNil(t, config)
	require.Equal(t, "postgres", config.Dialect)
	require.Equal(t, "all", config.Quoting)
	require.Equal(t, "windows-1252", config.Encoding)
	require.Equal(t, ChangeLog{Schema: "audit", Table: "schema_history"}, config.ChangeLog)
	require.Equal(t, map[string]string{"schema": "app", "owner": "app_owner"}, config.Parameters)
}
