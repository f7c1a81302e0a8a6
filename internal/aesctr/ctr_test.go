package aesctr

import (
	"bytes"
	"testing"

	"github.com/redeauxlabs/passvault/internal/secmem"
	"github.com/redeauxlabs/passvault/internal/vaulterr"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	defer secmem.Reset()

	key := bytes.Repeat([]byte{0x11}, KeySize)
	iv := bytes.Repeat([]byte{0x22}, IVSize)
	plaintext := bytes.Repeat([]byte{0xAB}, 64)

	ct, err := Encrypt(key, iv, plaintext)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if len(ct) != len(plaintext) {
		t.Fatalf("ciphertext length %d != plaintext length %d", len(ct), len(plaintext))
	}
	if bytes.Equal(ct, plaintext) {
		t.Fatal("ciphertext equals plaintext")
	}

	pt, err := Decrypt(key, iv, ct)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	defer secmem.Free(pt)

	if !bytes.Equal(pt, plaintext) {
		t.Fatal("round-trip mismatch")
	}
}

func TestRejectsBadKeySize(t *testing.T) {
	_, err := Encrypt(make([]byte, 15), make([]byte, IVSize), make([]byte, 16))
	if vaulterr.KindOf(err) != vaulterr.BadKeySize {
		t.Fatalf("expected BadKeySize, got %v", err)
	}
}

func TestRejectsBadIVSize(t *testing.T) {
	_, err := Encrypt(make([]byte, KeySize), make([]byte, 15), make([]byte, 16))
	if vaulterr.KindOf(err) != vaulterr.BadIVSize {
		t.Fatalf("expected BadIVSize, got %v", err)
	}
}

func TestRejectsUnalignedInput(t *testing.T) {
	_, err := Encrypt(make([]byte, KeySize), make([]byte, IVSize), make([]byte, 15))
	if vaulterr.KindOf(err) != vaulterr.Unaligned {
		t.Fatalf("expected Unaligned, got %v", err)
	}
}
