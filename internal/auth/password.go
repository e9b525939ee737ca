package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters of the stored credential format hex(key).hex(salt)
const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 64
	saltLen      = 16
)

// HashPassword derives the stored credential for a plaintext password
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	saltHex := hex.EncodeToString(salt)

	key, err := scrypt.Key([]byte(password), []byte(saltHex), scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", fmt.Errorf("failed to derive key: %w", err)
	}
	return hex.EncodeToString(key) + "." + saltHex, nil
}

// ComparePasswords reports whether supplied matches the stored credential.
// Malformed credentials never match.
func ComparePasswords(supplied, stored string) bool {
	hashed, salt, ok := strings.Cut(stored, ".")
	if !ok || salt == "" {
		return false
	}
	want, err := hex.DecodeString(hashed)
	if err != nil || len(want) != scryptKeyLen {
		return false
	}

	got, err := scrypt.Key([]byte(supplied), []byte(salt), scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(got, want) == 1
}
