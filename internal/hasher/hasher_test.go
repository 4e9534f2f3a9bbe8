package hasher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	h := NewArgon2Hasher()

	encoded, err := h.Hash("my-secret-key")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	assert.True(t, h.Verify("my-secret-key", encoded))
	assert.False(t, h.Verify("my-secret-kez", encoded))
	assert.False(t, h.Verify("", encoded))
}

func TestHashProducesUniqueSalts(t *testing.T) {
	h := NewArgon2Hasher()

	first, err := h.Hash("same-secret")
	require.NoError(t, err)
	second, err := h.Hash("same-secret")
	require.NoError(t, err)

	// Same input, different salts, different encodings.
	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("same-secret", first))
	assert.True(t, h.Verify("same-secret", second))
}

func TestVerifyMalformedHash(t *testing.T) {
	h := NewArgon2Hasher()

	cases := []string{
		"",
		"not-a-hash",
		"$argon2id$v=19$m=65536,t=1,p=4$bad-salt!$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=4$c2FsdHNhbHQ",
		"$argon2i$v=19$m=65536,t=1,p=4$c2FsdHNhbHQ$aGFzaA",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdHNhbHQ$aGFzaA",
		// Parameter blocks that parse but carry costs the KDF rejects.
		"$argon2id$v=19$m=65536,t=0,p=4$c2FsdHNhbHQ$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=0$c2FsdHNhbHQ$aGFzaA",
		"$argon2id$v=19$m=4,t=1,p=4$c2FsdHNhbHQ$aGFzaA",
	}

	for _, stored := range cases {
		assert.False(t, h.Verify("anything", stored), "stored=%q", stored)
	}
}
