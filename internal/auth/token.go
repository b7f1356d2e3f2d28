package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// Session token entropy in bytes before encoding
const sessionTokenBytes = 32

// NewSessionToken returns an opaque, unguessable session token. The token is
// derived from crypto/rand only and carries no user-supplied data.
func NewSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
