// Package store provides file-based persistence for SuiteDeploy's caches.
//
// It contains concrete implementations of the domain storage interfaces,
// serialising data as JSON on disk. All methods are concurrency-safe via
// internal locking. Writes go through a temp file and a rename so a reader
// never sees a half-written index.
//
// The package includes stores for:
//   - The local object index (LocalIndexFileStore)
//   - The server object index (ServerIndexFileStore)
//   - Per-object JSON documents (ObjectFileStore)
package store
