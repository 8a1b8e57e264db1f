// Package crypto hashes SDF object sources.
//
// Contents
//
//   - Hex BLAKE2b-256 checksums of XML files, stored in the local index (Checksum)
//   - Short forms of those checksums for display (ShortChecksum)
package crypto
