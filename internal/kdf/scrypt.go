// Package kdf derives the per-entry AES and HMAC key material from a
// main passphrase, a salt, and a work factor, using scrypt.
package kdf

import (
	"golang.org/x/crypto/scrypt"

	"github.com/redeauxlabs/passvault/internal/secmem"
	"github.com/redeauxlabs/passvault/internal/vaulterr"
)

const (
	// MinWorkFactor and MaxWorkFactor bound the accepted base-2 log of
	// the scrypt iteration count.
	MinWorkFactor = 10
	MaxWorkFactor = 31

	// DefaultWorkFactor is what Sentinel maps to.
	DefaultWorkFactor = 14

	// Sentinel, passed as workFactor, requests DefaultWorkFactor.
	Sentinel = -1

	aesKeyLen  = 16
	hmacKeyLen = 16
	blockLen   = aesKeyLen + hmacKeyLen

	scryptR = 8
	scryptP = 1
)

// Material is the 32-byte scrypt output, split into an AES key and an
// HMAC key. It is allocated from secmem and must be wiped by the owner
// once no longer needed.
type Material struct {
	block   []byte
	AESKey  []byte
	HMACKey []byte
}

// Wipe zeroes and releases the key material. It is safe to call more
// than once.
func (m *Material) Wipe() {
	if m.block == nil {
		return
	}
	secmem.Free(m.block)
	m.block = nil
	m.AESKey = nil
	m.HMACKey = nil
}

// ResolveWorkFactor maps Sentinel to DefaultWorkFactor and validates the
// result falls within [MinWorkFactor, MaxWorkFactor].
func ResolveWorkFactor(workFactor int) (int, error) {
	wf := workFactor
	if wf == Sentinel {
		wf = DefaultWorkFactor
	}
	if wf < MinWorkFactor || wf > MaxWorkFactor {
		return 0, vaulterr.New(vaulterr.BadWorkFactor)
	}
	return wf, nil
}

// Derive runs scrypt(main, salt; N=2^workFactor, r=8, p=1) and splits
// the 32-byte output into an AES key (first 16 bytes) and an HMAC key
// (second 16 bytes). The result is deterministic: the same inputs
// always produce the same output.
func Derive(main, salt []byte, workFactor int) (*Material, error) {
	wf, err := ResolveWorkFactor(workFactor)
	if err != nil {
		return nil, err
	}

	n := uint64(1) << uint(wf)
	raw, err := scrypt.Key(main, salt, int(n), scryptR, scryptP, blockLen)
	if err != nil {
		return nil, vaulterr.Wrap(vaulterr.CryptoPrimitiveFailure, err)
	}
	defer func() {
		for i := range raw {
			raw[i] = 0
		}
	}()

	block, err := secmem.Alloc(blockLen)
	if err != nil {
		return nil, err
	}
	copy(block, raw)

	return &Material{
		block:   block,
		AESKey:  block[:aesKeyLen],
		HMACKey: block[aesKeyLen:],
	}, nil
}
