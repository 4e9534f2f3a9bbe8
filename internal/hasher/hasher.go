package hasher

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// APIKeyHasher hashes API key secrets with a salted, memory-hard KDF.
// Stored values are self-describing: the salt and cost parameters are
// embedded in the encoded string, so verification needs no external state.
type APIKeyHasher interface {
	Hash(secret string) (string, error)
	Verify(secret, encodedHash string) bool
}

type argon2Params struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	saltLength  uint32
	keyLength   uint32
}

// Interactive-class cost, matching the argon2id recommendations for
// request-path verification.
var defaultParams = argon2Params{
	memory:      64 * 1024,
	iterations:  1,
	parallelism: 4,
	saltLength:  16,
	keyLength:   32,
}

type Argon2Hasher struct {
	params argon2Params
}

func NewArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{params: defaultParams}
}

// Hash derives an argon2id hash of the secret with a fresh random salt and
// returns it in the standard $argon2id$... encoded form. Two calls with the
// same secret produce different outputs.
func (h *Argon2Hasher) Hash(secret string) (string, error) {
	salt := make([]byte, h.params.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(secret), salt, h.params.iterations, h.params.memory, h.params.parallelism, h.params.keyLength)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.memory,
		h.params.iterations,
		h.params.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// Verify recomputes the hash with the parameters embedded in encodedHash and
// compares in constant time. A malformed stored hash verifies as false; it
// never panics the request path.
func (h *Argon2Hasher) Verify(secret, encodedHash string) bool {
	params, salt, key, err := decodeHash(encodedHash)
	if err != nil {
		return false
	}

	candidate := argon2.IDKey([]byte(secret), salt, params.iterations, params.memory, params.parallelism, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, candidate) == 1
}

var errMalformedHash = errors.New("malformed argon2 hash")

func decodeHash(encodedHash string) (argon2Params, []byte, []byte, error) {
	var params argon2Params

	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return params, nil, nil, errMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return params, nil, nil, errMalformedHash
	}
	if version != argon2.Version {
		return params, nil, nil, errMalformedHash
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.iterations, &params.parallelism); err != nil {
		return params, nil, nil, errMalformedHash
	}
	// argon2.IDKey panics on costs below its minimums, so a corrupt
	// parameter block has to be rejected here, not fed to the KDF.
	if params.iterations < 1 || params.parallelism < 1 || params.memory < 8*uint32(params.parallelism) {
		return params, nil, nil, errMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, errMalformedHash
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return params, nil, nil, errMalformedHash
	}

	return params, salt, key, nil
}
