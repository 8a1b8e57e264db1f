// Package commands defines the suitedeploy CLI and wires dependencies for subcommands.
//
// Commands
//
//   - process        Convert the SDF Objects directory into the local cache and index
//   - retrieve       List the objects on the account into the server index
//   - import         Import one object from the account, then re-process
//   - deploy         Deploy one object to the account
//   - verify         Mark local objects deployed or not deployed
//   - reset          Clear the caches (both, --local or --server)
//   - status         Print the object counts
//   - tree           Print the local or server tree
//   - show           Print an object's cached JSON (or XML with --xml)
//   - output         Print the output log
//   - browse         Interactive two-pane browser
//   - watch          Re-process whenever an object file changes
//   - checksum       Report object files changed since the last process run
//   - config         Write or print the configuration
//
// # Implementation
//
// The root command loads configuration and builds the dependency graph
// (logger, SuiteCloud runner, stores, services, tree providers) before any
// subcommand runs, so handlers share one app context. Commands run under a
// context cancelled by Ctrl-C.
package commands
