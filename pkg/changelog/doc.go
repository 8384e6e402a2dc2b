// Package changelog models the units of a migration: changes, the change sets
// that group them, and the history of change sets already applied.
//
// A Change is configured through its fields, then FinishInitialization checks
// that mandatory configuration is present. After that every operation may be
// called any number of times in any order:
//
//	change := &changelog.SQLFileChange{
//		Path:                    "sql/create_users.sql",
//		RelativeToChangelogFile: true,
//		Resources:               resource.FS(os.DirFS(".")),
//	}
//
//	cs := changelog.NewChangeSet("create-users", "jane", "db/changelog.yaml")
//	cs.AddChange(change)
//
//	if err := cs.FinishInitialization(); err != nil {
//		return err
//	}
//
//	frags, err := cs.GenerateSQL(ctx, generators.NewRegistry(), env)
//
// Checksums are recomputed from configuration on every call. They cover the
// fields that affect execution and ignore cosmetic ones such as comments, so
// an applied change set can be recognised as unmodified, modified or reversed
// by comparing against the History read from the tracking table.
package changelog
