// Package cryptox hashes and checks the admin password. The password is
// never stored: only a random salt and an argon2id verifier derived from it.
package cryptox

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/learningjournal/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of a freshly generated salt in bytes.
const SaltSize = 16

// argon2id parameters: 1 pass, 64 MiB, 4 lanes, 32-byte key.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// DeriveVerifier stretches password with salt using argon2id.
func DeriveVerifier(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// HashPassword returns a new random salt and the verifier for password.
func HashPassword(password string) (salt, verifier []byte) {
	salt = common.GenerateRandByteArray(SaltSize)

	p := []byte(password)
	defer common.WipeByteArray(p)

	return salt, DeriveVerifier(p, salt)
}

// CheckPassword reports whether password matches the stored salt/verifier.
// The comparison runs in constant time.
func CheckPassword(password string, salt, verifier []byte) bool {
	p := []byte(password)
	defer common.WipeByteArray(p)

	candidate := DeriveVerifier(p, salt)
	return subtle.ConstantTimeCompare(verifier, candidate) == 1
}
