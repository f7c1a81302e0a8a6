// Package secrand supplies cryptographically strong random bytes for
// salts, initialisation vectors, and generated passwords.
//
// It reads directly from the OS entropy source (crypto/rand, which on
// every platform Go supports is backed by getrandom/arc4random/CryptGenRandom
// rather than a seeded PRNG) so that it never under-claims entropy.
package secrand

import (
	"crypto/rand"
	"io"

	"github.com/redeauxlabs/passvault/internal/vaulterr"
)

// Bytes fills buf with cryptographically strong random data. len(buf)
// == 0 is a no-op success. Bytes is safe for concurrent use: the
// underlying crypto/rand reader is itself safe for concurrent reads.
func Bytes(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return vaulterr.Wrap(vaulterr.IO, err)
	}
	return nil
}

// New allocates and returns n cryptographically strong random bytes.
func New(n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := Bytes(buf); err != nil {
		return nil, err
	}
	return buf, nil
}
