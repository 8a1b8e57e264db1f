// Package app wires application dependencies for the CLI.
//
// It resolves the workspace, loads configuration, builds the logger, the
// SuiteCloud runner and client, the file stores, the object services, the
// orchestrator and the tree providers from Config, and exposes them through
// App for commands to use.
package app
