// Package utils provides common utility functions used throughout the changekit codebase.
//
// # Identifier Utilities (identifier.go)
//
// Quoting helpers used by the reference database environments. Every
// dot-separated part of a name is quoted separately and parts that are
// already quoted are left alone:
//
//	utils.BacktickIdentifier("shop.orders")   // `shop`.`orders`
//	utils.DoubleQuoteIdentifier("main.users") // "main"."users"
//	utils.QualifiedName("", "public", "users") // public.users
//
// # SQL Builder (sqlbuilder.go)
//
// SQLBuilder arranges DDL keywords for generators. It never escapes names;
// callers pass names that the environment already escaped:
//
//	utils.NewSQLBuilder().AlterTable("users").DropDefault().String()
//
// # Value Utilities (validation.go, ptr.go)
//
// IsNumericValue and UnquoteLiteral normalise default values when comparing
// configured values with a schema snapshot. Ptr builds pointers to literals,
// mostly for optional statement fields such as StartWith.
package utils
