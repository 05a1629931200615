// Package keygen generates opaque API key tokens for TaskVault.
package keygen

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// TokenLength is the length of a generated key token (32 hex characters).
const TokenLength = 32

// GenerateToken generates a random opaque key token.
// Tokens are 128-bit random values rendered as 32 lowercase hex characters
// without separators. Collisions are accepted as negligible.
func GenerateToken() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate key token: %w", err)
	}
	return strings.ReplaceAll(u.String(), "-", ""), nil
}
