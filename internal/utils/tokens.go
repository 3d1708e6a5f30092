package utils

import (
	"crypto/rand"
	"encoding/base64"
	"io"
)

// GenerateSecureToken creates a cryptographically secure random token of
// the given byte length, base64url encoded. Session tokens use this.
func GenerateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := io.ReadFull(rand.Reader, bytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}
