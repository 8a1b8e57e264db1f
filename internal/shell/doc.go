// Package shell runs the SuiteCloud CLI.
//
// A Runner allows a single process at a time. A caller arriving while one is
// in flight is turned away with ErrBusy rather than queued, and the user is
// told so through the configured Notifier.
package shell
