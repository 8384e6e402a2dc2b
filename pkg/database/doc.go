// Package database describes the target database a statement is generated
// for.
//
// An Environment answers two kinds of questions for generators: which dialect
// is being targeted, and how names and values are written in that dialect.
// Generators never branch on the concrete environment type; they compare
// Dialect() by equality and call the escaping services.
//
// The package ships reference environments for MySQL, PostgreSQL and SQLite:
//
//	env, err := database.New(database.PostgreSQL,
//		database.WithQuoting(database.QuoteLegacy),
//		database.WithChangeLogTable(database.TableRef{Schema: "public", Name: "DATABASECHANGELOG"}),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	env.EscapeTableName("", "public", "users") // public.users
//	env.SequenceNextValueFunction("", "", "S") // nextval('S')
//
// Quoting rules themselves are delegated: PostgreSQL identifiers and literals
// are quoted with github.com/lib/pq, MySQL identifiers with the backtick
// helpers in pkg/utils.
//
// Schema introspection is out of scope. Environments may carry a Snapshot
// produced elsewhere; changes consult it to verify whether they were applied.
package database
