// Package generators contains the built-in SQL generators.
//
// Each generator handles a single statement type. Database specific
// generators register with a higher priority than the portable ones and
// either replace, delegate to or augment the default output through the
// generator chain. For example, AddAutoIncrementMySQL lets the default
// generator emit the column modification and appends the table option that
// sets the starting value, while AddDefaultValuePostgres only adds the
// sequence ownership statement when the default draws from a sequence.
//
// Use NewRegistry to get a registry with every built-in generator, or
// Module to provide the same set through fx.
package generators
