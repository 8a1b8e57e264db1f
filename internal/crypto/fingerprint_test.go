package crypto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"suitedeploy/internal/crypto"
)

func TestChecksum_StableAndDistinct(t *testing.T) {
	a := crypto.Checksum([]byte("<customrecordtype scriptid=\"a\"/>"))
	b := crypto.Checksum([]byte("<customrecordtype scriptid=\"b\"/>"))

	assert.Len(t, a, 64)
	assert.Equal(t, a, crypto.Checksum([]byte("<customrecordtype scriptid=\"a\"/>")))
	assert.NotEqual(t, a, b)
}

func TestShortChecksum_IsPrefix(t *testing.T) {
	sum := crypto.Checksum([]byte("workflow"))
	short := crypto.ShortChecksum(sum)

	assert.Len(t, short, 12)
	assert.Equal(t, sum[:12], short)
	assert.Equal(t, "abc", crypto.ShortChecksum("abc"))
}
