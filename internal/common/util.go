package common

import "crypto/rand"

// GenerateRandByteArray returns n bytes from crypto/rand. It panics if the
// system randomness source fails, which is not recoverable anyway.
func GenerateRandByteArray(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// WipeByteArray zeroes b in place. Nil is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
