package kdf

import (
	"bytes"
	"testing"

	"github.com/redeauxlabs/passvault/internal/vaulterr"
)

const testWF = 12 // keep tests fast; production default is 14

func TestDeriveDeterministic(t *testing.T) {
	main := []byte("hello world")
	salt := []byte("01234567")

	m1, err := Derive(main, salt, testWF)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	defer m1.Wipe()

	m2, err := Derive(main, salt, testWF)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	defer m2.Wipe()

	if !bytes.Equal(m1.AESKey, m2.AESKey) || !bytes.Equal(m1.HMACKey, m2.HMACKey) {
		t.Fatal("identical inputs produced different key material")
	}
}

func TestDeriveDisjointHalves(t *testing.T) {
	m, err := Derive([]byte("main"), []byte("saltsalt"), testWF)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	defer m.Wipe()

	if len(m.AESKey) != aesKeyLen || len(m.HMACKey) != hmacKeyLen {
		t.Fatalf("unexpected key lengths: aes=%d hmac=%d", len(m.AESKey), len(m.HMACKey))
	}
	if bytes.Equal(m.AESKey, m.HMACKey) {
		t.Fatal("AES and HMAC halves should not coincide")
	}
}

func TestDeriveSentinelMapsToDefault(t *testing.T) {
	wf, err := ResolveWorkFactor(Sentinel)
	if err != nil {
		t.Fatalf("ResolveWorkFactor: %v", err)
	}
	if wf != DefaultWorkFactor {
		t.Fatalf("sentinel resolved to %d, want %d", wf, DefaultWorkFactor)
	}
}

func TestDeriveRejectsBadWorkFactor(t *testing.T) {
	for _, wf := range []int{0, 9, 32, 1000} {
		_, err := Derive([]byte("m"), []byte("saltsalt"), wf)
		if vaulterr.KindOf(err) != vaulterr.BadWorkFactor {
			t.Fatalf("work factor %d: expected BadWorkFactor, got %v", wf, err)
		}
	}
}

func TestWipeIsIdempotent(t *testing.T) {
	m, err := Derive([]byte("m"), []byte("saltsalt"), testWF)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	m.Wipe()
	m.Wipe()
}
