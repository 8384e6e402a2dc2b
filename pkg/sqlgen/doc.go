// Package sqlgen resolves and drives the SQL generators for a statement.
//
// Generators are registered once at startup. For every dispatch the Registry
// builds a Chain of the generators whose statement type matches and whose
// Supports predicate accepts the statement and environment, ordered by
// priority (highest first, registration order on ties). The head of the chain
// is validated and then asked to generate; it receives the remainder of the
// chain and decides on its own whether to use it:
//
//   - override: never call chain.Next and return its own fragments
//   - delegate: return chain.Next(stmt, env) unchanged
//   - augment: call chain.Next and append or derive further fragments
//
// Calling Next past the last candidate returns no fragments and no error.
//
// Example:
//
//	reg := sqlgen.NewRegistry()
//	reg.Register(generators.All()...)
//
//	frags, err := reg.Generate(statement.AddAutoIncrement{
//		Table:          "T",
//		Column:         "C",
//		ColumnDataType: "BIGINT",
//		StartWith:      utils.Ptr(int64(50)),
//	}, mysqlEnv)
//	// ALTER TABLE T MODIFY C BIGINT AUTO_INCREMENT
//	// ALTER TABLE T AUTO_INCREMENT=50
//
// The registry is read-only once dispatch begins; registering generators
// concurrently with dispatch is not supported.
package sqlgen
