package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"strconv"
	"time"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters. Changing them invalidates every stored hash.
const (
	argonTime    = 2
	argonMemory  = 19 * 1024
	argonThreads = 1
	argonKeyLen  = 32
)

// MakeSalt returns a fresh per-user salt derived from the clock and a CSPRNG.
func MakeSalt() string {
	return strconv.FormatInt(time.Now().UnixNano(), 36) + rand.Text()
}

// EncryptPassword derives a hex-encoded hash of plaintext keyed by salt.
// It is deterministic for a given (plaintext, salt) pair and returns "" when either is empty.
func EncryptPassword(plaintext, salt string) string {
	if plaintext == "" || salt == "" {
		return ""
	}
	key := argon2.IDKey([]byte(plaintext), []byte(salt), argonTime, argonMemory, argonThreads, argonKeyLen)
	return hex.EncodeToString(key)
}

// Authenticate reports whether plaintext hashes to storedHash under salt.
func Authenticate(plaintext, salt, storedHash string) bool {
	if storedHash == "" {
		return false
	}
	computed := EncryptPassword(plaintext, salt)
	if computed == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
