// Package headless replays a recorded audit session without prompting.
//
// A replay script lists the entities and contacts to create and the
// interactions to log, addressed the same way an operator addresses them in
// the interactive shell (entity by menu ordinal, contact by exact name). The
// executor applies the script to a fresh record store through the same store
// operations the shell uses, optionally prints the console table, and writes
// the CSV export.
//
// Unlike the shell, a replay stops at the first entry that cannot be applied
// and reports its position in the script.
//
// Example usage:
//
//	script, err := headless.LoadScript("q3-visits.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	executor := headless.NewExecutor(script, audit.NewStore(),
//	    headless.WithExportPath("TitleIVD_Audit_Log.csv"),
//	)
//	summary, err := executor.Run(context.Background())
package headless
