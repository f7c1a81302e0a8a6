// Package frame implements the canonical packed-plaintext framing that
// AES-CTR actually operates on: a fixed header, the plaintext's true
// length, the IV the plaintext was packed under (a cheap sanity check
// ahead of the real HMAC verification), and random padding out to a
// 16-byte boundary.
package frame

import (
	"encoding/binary"

	"github.com/redeauxlabs/passvault/internal/secmem"
	"github.com/redeauxlabs/passvault/internal/secrand"
	"github.com/redeauxlabs/passvault/internal/vaulterr"
)

// header is the fixed 8-byte literal every packed buffer begins with,
// letting unpack detect format drift before it trusts anything else in
// the buffer.
const header = "oprime01"

const (
	headerLen = len(header)
	lenLen    = 8
	ivLen     = 16
	blockSize = 16
)

// Pack frames plaintext p under iv (which must be 16 bytes), returning
// a secmem-backed buffer whose length is always a positive multiple of
// 16: header || len_le64(len(p)) || iv || padding || p.
func Pack(p, iv []byte) ([]byte, error) {
	if len(iv) != ivLen {
		return nil, vaulterr.New(vaulterr.BadIVSize)
	}

	fixedLen := headerLen + lenLen + ivLen
	total := fixedLen + len(p)
	padding := blockSize - total%blockSize // always in [1, blockSize]

	packed, err := secmem.Alloc(total + padding)
	if err != nil {
		return nil, err
	}

	offset := 0
	copy(packed[offset:], header)
	offset += headerLen

	binary.LittleEndian.PutUint64(packed[offset:], uint64(len(p)))
	offset += lenLen

	copy(packed[offset:], iv)
	offset += ivLen

	if err := secrand.Bytes(packed[offset : offset+padding]); err != nil {
		secmem.Free(packed)
		return nil, err
	}
	offset += padding

	copy(packed[offset:], p)

	return packed, nil
}

// Unpack reverses Pack, verifying the header matches byte-for-byte, the
// IV embedded in the frame equals iv, and the padding is not longer
// than one block. A non-empty plaintext is returned in a secmem-backed
// buffer; an empty one is returned as a plain empty slice.
func Unpack(packed, iv []byte) ([]byte, error) {
	if len(packed)%blockSize != 0 {
		return nil, vaulterr.New(vaulterr.Unaligned)
	}
	if len(iv) != ivLen {
		return nil, vaulterr.New(vaulterr.BadIVSize)
	}

	d := packed

	if len(d) < headerLen || string(d[:headerLen]) != header {
		return nil, vaulterr.New(vaulterr.HeaderMismatch)
	}
	d = d[headerLen:]

	if len(d) < lenLen {
		return nil, vaulterr.New(vaulterr.Truncated)
	}
	plainLen := binary.LittleEndian.Uint64(d[:lenLen])
	d = d[lenLen:]

	if len(d) < ivLen {
		return nil, vaulterr.New(vaulterr.Truncated)
	}
	if !constantTimeEqual(d[:ivLen], iv) {
		return nil, vaulterr.New(vaulterr.IVMismatch)
	}
	d = d[ivLen:]

	if uint64(len(d)) < plainLen {
		return nil, vaulterr.New(vaulterr.Truncated)
	}

	if uint64(len(d))-plainLen > blockSize {
		return nil, vaulterr.New(vaulterr.BadPadding)
	}

	if plainLen == 0 {
		return []byte{}, nil
	}

	p, err := secmem.Alloc(int(plainLen))
	if err != nil {
		return nil, err
	}
	copy(p, d[uint64(len(d))-plainLen:])

	return p, nil
}

func constantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var diff byte
	for i := range a {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}
