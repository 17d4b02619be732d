package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateVerificationCode returns an 8-char hex code for email confirmation.
func GenerateVerificationCode() (string, error) {
	raw := make([]byte, 4)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}
