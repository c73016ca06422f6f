package helpers

import (
	"crypto/rand"
	"encoding/hex"
)

// CodeBytes is the entropy of a one-time code: 32 bytes, 256 bits.
const CodeBytes = 32

// GenerateCode returns a random hex encoded one-time code used in email
// verification and password reset links.
func GenerateCode() (string, error) {
	b := make([]byte, CodeBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
