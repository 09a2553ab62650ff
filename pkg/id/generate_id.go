package id

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewCode builds a human-readable code like "TRX-PAY-8F3A2C41":
// prefix, 3-letter kind tag, 8 uppercase hex characters.
func NewCode(prefix, kind string) string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return prefix + "-" + strings.ToUpper(kind) + "-" + strings.ToUpper(hex.EncodeToString(b))
}
