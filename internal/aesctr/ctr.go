// Package aesctr applies AES-128 in counter mode to packed plaintext.
//
// AES-128 is used (rather than AES-256) because its key schedule is
// simpler and better studied, and CTR mode is preferred over CBC for
// this vault's needs: no implementation-introduced padding, since every
// input is already block-aligned by the frame package.
package aesctr

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/redeauxlabs/passvault/internal/secmem"
	"github.com/redeauxlabs/passvault/internal/vaulterr"
)

const (
	KeySize = 16
	IVSize  = 16
)

// Encrypt returns AES-128-CTR(key, iv, packed). len(key) and len(iv)
// must be 16; len(packed) must be a positive multiple of 16. The output
// is the same length as the input: CTR mode emits no extra
// finalization bytes.
func Encrypt(key, iv, packed []byte) ([]byte, error) {
	stream, err := newStream(key, iv, packed)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(packed))
	stream.XORKeyStream(out, packed)
	return out, nil
}

// Decrypt inverts Encrypt. Non-empty output is allocated from secmem
// because it holds packed plaintext; empty input yields a plain empty
// slice.
func Decrypt(key, iv, ciphertext []byte) ([]byte, error) {
	stream, err := newStream(key, iv, ciphertext)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) == 0 {
		return []byte{}, nil
	}
	out, err := secmem.Alloc(len(ciphertext))
	if err != nil {
		return nil, err
	}
	stream.XORKeyStream(out, ciphertext)
	return out, nil
}

func newStream(key, iv, data []byte) (cipher.Stream, error) {
	if len(key) != KeySize {
		return nil, vaulterr.New(vaulterr.BadKeySize)
	}
	if len(iv) != IVSize {
		return nil, vaulterr.New(vaulterr.BadIVSize)
	}
	if len(data)%16 != 0 {
		return nil, vaulterr.New(vaulterr.Unaligned)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, vaulterr.Wrap(vaulterr.CryptoPrimitiveFailure, err)
	}
	return cipher.NewCTR(block, iv), nil
}
