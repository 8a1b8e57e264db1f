// Package mirror sequences the local and server object services.
//
// Every operation logs its start and finish, tells the user how it went and
// leaves the index files, the in-memory lists, the tree views and the status
// line consistent with each other. When the SuiteCloud CLI is already busy
// the operation is skipped and nothing is changed.
package mirror
