package config

import (
	"os"

	"github.com/pseudomuto/changekit/pkg/changelog"
	"github.com/pseudomuto/changekit/pkg/consts"
	"github.com/pseudomuto/changekit/pkg/database"
	"go.uber.org/fx"
)

var Module = fx.Module("config", fx.Provide(
	// Loads changekit.yaml from the working directory. When the file doesn't
	// exist the defaults are used so library callers can run without one.
	func() (*Config, error) {
		if _, err := os.Stat(consts.DefaultConfigFile); os.IsNotExist(err) {
			return Default(), nil
		}

		return LoadConfigFile(consts.DefaultConfigFile)
	},
	func(c *Config) (database.Environment, error) {
		return c.Environment()
	},
	func(c *Config) *changelog.Parameters {
		return c.GetParameters()
	},
))
