package service

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// apiKeyBytes gives 256 bits of entropy per secret.
const apiKeyBytes = 32

// generateAPIKey mints a fresh random secret. Secrets are never derived from
// predictable inputs such as ids or timestamps.
func generateAPIKey() (string, error) {
	buf := make([]byte, apiKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate api key: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
