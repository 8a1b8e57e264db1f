// Package local mirrors the SDF project's Objects directory into the local
// cache.
//
// Each XML object file is normalized to JSON and written as its own document,
// and a record for it is kept in memory and in the local index. The index is
// the source for the local tree and for verify.
package local
