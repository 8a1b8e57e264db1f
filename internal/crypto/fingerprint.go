package crypto

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// shortLen is the display length of a checksum, 6 bytes in hex.
const shortLen = 12

// Checksum returns the hex BLAKE2b-256 digest of b.
func Checksum(b []byte) string {
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// ShortChecksum truncates a hex checksum produced by Checksum for display.
// Shorter input is returned unchanged.
func ShortChecksum(sum string) string {
	if len(sum) <= shortLen {
		return sum
	}
	return sum[:shortLen]
}
