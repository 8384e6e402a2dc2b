package sqlgen

import (
	"log/slog"

	"go.uber.org/fx"
)

// Params are the dependencies of the registry provided by Module.
type Params struct {
	fx.In

	Generators []Generator
	Logger     *slog.Logger `optional:"true"`
}

// Module provides a *Registry loaded with the ordered []Generator supplied by
// the application, usually generators.Module.
var Module = fx.Module("sqlgen", fx.Provide(
	func(p Params) *Registry {
		r := NewRegistry(WithLogger(p.Logger))
		r.Register(p.Generators...)
		return r
	},
))
