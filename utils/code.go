package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// GenerateCode returns a random hex token of the given byte length.
func GenerateCode(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// GenerateOrderNumber returns an opaque customer-facing order token with 64
// bits of randomness, e.g. "ORD-9F2C4A1B0D6E8357".
func GenerateOrderNumber() (string, error) {
	code, err := GenerateCode(8)
	if err != nil {
		return "", err
	}
	return "ORD-" + strings.ToUpper(code), nil
}
