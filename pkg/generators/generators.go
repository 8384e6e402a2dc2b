package generators

import (
	"github.com/pseudomuto/changekit/pkg/sqlgen"
	"go.uber.org/fx"
)

// All returns the built-in generators in registration order.
func All() []sqlgen.Generator {
	return []sqlgen.Generator{
		AddAutoIncrement{},
		AddAutoIncrementMySQL{},
		AddDefaultValue{},
		AddDefaultValuePostgres{},
		DropDefaultValue{},
		CreateSequence{},
		RawSQL{},
		Update{},
		UpdateChangeSetChecksum{},
	}
}

// NewRegistry returns a registry loaded with All.
func NewRegistry(opts ...sqlgen.RegistryOption) *sqlgen.Registry {
	reg := sqlgen.NewRegistry(opts...)
	reg.Register(All()...)
	return reg
}

// Module supplies All to the fx graph as the ordered []sqlgen.Generator
// consumed by sqlgen.Module.
var Module = fx.Module("generators", fx.Provide(All))
