package security

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLength       = 16
	pbkdf2Iterations = 100000
	pbkdf2KeyLen     = 64
)

// HashPassword derives a PBKDF2-HMAC-SHA512 key and encodes it as "salt:hash".
// The salt is stored as hex and the hex text itself is the PBKDF2 salt input,
// which keeps hashes created by the previous Node.js backend verifiable.
func HashPassword(password string) (string, error) {
	raw := make([]byte, saltLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	salt := hex.EncodeToString(raw)

	return salt + ":" + hex.EncodeToString(derive(password, salt)), nil
}

// VerifyPassword recomputes the hash with the stored salt and compares in constant time.
func VerifyPassword(password, encoded string) bool {
	salt, storedHex, ok := strings.Cut(encoded, ":")
	if !ok || salt == "" || storedHex == "" {
		return false
	}
	stored, err := hex.DecodeString(storedHex)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(derive(password, salt), stored) == 1
}

func derive(password, salt string) []byte {
	return pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iterations, pbkdf2KeyLen, sha512.New)
}
