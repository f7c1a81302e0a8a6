// Package entry implements the per-record encryption engine: building a
// fresh encrypted entry from plaintext, binding it under an HMAC tag,
// and decrypting it back out for a caller-supplied callback.
package entry

import (
	"github.com/redeauxlabs/passvault/internal/aesctr"
	"github.com/redeauxlabs/passvault/internal/authtag"
	"github.com/redeauxlabs/passvault/internal/frame"
	"github.com/redeauxlabs/passvault/internal/kdf"
	"github.com/redeauxlabs/passvault/internal/secmem"
	"github.com/redeauxlabs/passvault/internal/secrand"
)

const (
	saltLen     = 8
	ivLen       = 16
	hmacSaltLen = 8
)

// Entry is a single encrypted (space, key, value) record plus the
// material needed to decrypt and authenticate it. Every field is
// stored as raw bytes; the store package handles base64 at the file
// boundary.
type Entry struct {
	Space []byte
	Key   []byte
	Value []byte

	Salt       []byte
	IV         []byte
	HMACSalt   []byte
	HMAC       []byte
	WorkFactor int
}

// Callback receives a decrypted triple. It must not retain space, key,
// or value beyond its own return: the engine wipes them immediately
// afterward regardless of the callback's outcome.
type Callback func(space, key, value []byte) error

// New builds a fresh Entry for (space, key, value) under main, leaving
// HMAC/HMACSalt empty — the caller must call SetMAC before the entry is
// exported.
func New(main, space, key, value string, workFactor int) (*Entry, error) {
	wf, err := kdf.ResolveWorkFactor(workFactor)
	if err != nil {
		return nil, err
	}

	salt, err := secrand.New(saltLen)
	if err != nil {
		return nil, err
	}

	m, err := kdf.Derive([]byte(main), salt, wf)
	if err != nil {
		return nil, err
	}
	defer m.Wipe()

	seedIV, err := secrand.New(ivLen)
	if err != nil {
		return nil, err
	}

	e := &Entry{Salt: salt, IV: seedIV, WorkFactor: wf}

	iv := append([]byte(nil), seedIV...)
	fields := []struct {
		plain string
		out   *[]byte
	}{
		{space, &e.Space},
		{key, &e.Key},
		{value, &e.Value},
	}
	for _, f := range fields {
		ct, err := encryptField(m.AESKey, iv, []byte(f.plain))
		if err != nil {
			return nil, err
		}
		*f.out = ct
		incrementIV(iv)
	}

	return e, nil
}

// SetMAC generates a fresh HMAC salt and computes the HMAC over the
// entry's ciphertext fields in (space, key, value, salt, iv) order,
// writing both into the entry.
func SetMAC(main string, e *Entry) error {
	hmacSalt, err := secrand.New(hmacSaltLen)
	if err != nil {
		return err
	}
	mac, err := authtag.Compute([]byte(main), boundData(e), hmacSalt, e.WorkFactor)
	if err != nil {
		return err
	}
	e.HMACSalt = hmacSalt
	e.HMAC = mac
	return nil
}

// CheckMAC recomputes the entry's HMAC and compares it against the
// stored value in constant time. A wrong main passphrase and a
// tampered entry are indistinguishable: both return BadMAC.
func CheckMAC(main string, e *Entry) error {
	return authtag.Verify([]byte(main), boundData(e), e.HMACSalt, e.WorkFactor, e.HMAC)
}

// Do verifies the entry's HMAC, decrypts each field, and invokes
// callback with the decrypted (space, key, value) triple. Every
// intermediate buffer is wiped before Do returns, regardless of
// whether callback (or decryption) failed.
func Do(main string, e *Entry, cb Callback) error {
	if err := CheckMAC(main, e); err != nil {
		return err
	}

	m, err := kdf.Derive([]byte(main), e.Salt, e.WorkFactor)
	if err != nil {
		return err
	}
	defer m.Wipe()

	iv := append([]byte(nil), e.IV...)

	space, err := decryptField(m.AESKey, iv, e.Space)
	if err != nil {
		return err
	}
	defer freeIfNonEmpty(space)
	incrementIV(iv)

	key, err := decryptField(m.AESKey, iv, e.Key)
	if err != nil {
		return err
	}
	defer freeIfNonEmpty(key)
	incrementIV(iv)

	value, err := decryptField(m.AESKey, iv, e.Value)
	if err != nil {
		return err
	}
	defer freeIfNonEmpty(value)

	return cb(space, key, value)
}

func encryptField(aesKey, iv, plain []byte) ([]byte, error) {
	packed, err := frame.Pack(plain, iv)
	if err != nil {
		return nil, err
	}
	defer secmem.Free(packed)
	return aesctr.Encrypt(aesKey, iv, packed)
}

func decryptField(aesKey, iv, ciphertext []byte) ([]byte, error) {
	packed, err := aesctr.Decrypt(aesKey, iv, ciphertext)
	if err != nil {
		return nil, err
	}
	defer freeIfNonEmpty(packed)
	return frame.Unpack(packed, iv)
}

// boundData reproduces the exact byte sequence the HMAC is computed
// over: the ciphertext fields in (space, key, value, salt, iv) order,
// concatenated with no separators — field boundaries are implicit from
// each slice's own length, matching how they are stored.
func boundData(e *Entry) []byte {
	total := len(e.Space) + len(e.Key) + len(e.Value) + len(e.Salt) + len(e.IV)
	buf := make([]byte, 0, total)
	buf = append(buf, e.Space...)
	buf = append(buf, e.Key...)
	buf = append(buf, e.Value...)
	buf = append(buf, e.Salt...)
	buf = append(buf, e.IV...)
	return buf
}

// incrementIV treats iv as a little-endian 128-bit unsigned integer and
// adds one, carrying across the 16 bytes.
func incrementIV(iv []byte) {
	for i := 0; i < len(iv); i++ {
		iv[i]++
		if iv[i] != 0 {
			return
		}
	}
}

// freeIfNonEmpty releases a secmem-backed buffer. Buffers standing in
// for a zero-length field are plain empty slices, never allocated from
// secmem, so they are skipped rather than passed to Free.
func freeIfNonEmpty(b []byte) {
	if len(b) > 0 {
		secmem.Free(b)
	}
}
