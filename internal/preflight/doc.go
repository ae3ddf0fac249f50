// Package preflight validates a Node.js project before it is run or deployed.
//
// The package checks, in this fixed order:
//   - Runtime version (node --version, minimum major 20)
//   - Package manager presence (npm --version)
//   - Local .env file presence
//   - Required files, then required directories
//   - package.json: test script and required dependencies
//   - Keys declared in .env.example
//   - SQLite database and tables (opt-in)
//
// Every check converts its own failure into a CheckResult; nothing aborts the
// run. Use the Checker type to run all validations:
//
//	checker := preflight.New(preflight.WithConfig(cfg))
//	results := checker.RunAll(ctx, "/path/to/project")
//	checker.PrintResults(results)
//	if preflight.Summarize(results).Errors > 0 {
//	    // Handle failures
//	}
//
// Inspection is read-only: no check creates, modifies or deletes anything.
package preflight
