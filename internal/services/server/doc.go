// Package server keeps the list of objects that exist on the account, as
// reported by the SuiteCloud CLI, and forwards import and deploy requests.
package server
