// Package authtag binds an entry's ciphertext fields together under an
// HMAC-SHA512 tag keyed by material derived from the main passphrase.
//
// A main-passphrase mismatch and a tampered entry are deliberately
// indistinguishable: both surface identically as a verification
// failure, so an attacker (or a confused user) learns nothing about
// which one occurred.
package authtag

import (
	"crypto/hmac"
	"crypto/sha512"

	"github.com/redeauxlabs/passvault/internal/kdf"
	"github.com/redeauxlabs/passvault/internal/vaulterr"
)

// Size is the length in bytes of a SHA-512 HMAC tag.
const Size = sha512.Size

// Compute derives an HMAC key from (main, salt, workFactor) and returns
// HMAC-SHA512(hmacKey, data).
func Compute(main, data, salt []byte, workFactor int) ([]byte, error) {
	m, err := kdf.Derive(main, salt, workFactor)
	if err != nil {
		return nil, err
	}
	defer m.Wipe()

	mac := hmac.New(sha512.New, m.HMACKey)
	mac.Write(data)
	return mac.Sum(nil), nil
}

// Verify recomputes the tag over data and compares it against want in
// constant time, returning BadMAC on any mismatch.
func Verify(main, data, salt []byte, workFactor int, want []byte) error {
	got, err := Compute(main, data, salt, workFactor)
	if err != nil {
		return err
	}
	if !hmac.Equal(got, want) {
		return vaulterr.New(vaulterr.BadMAC)
	}
	return nil
}
