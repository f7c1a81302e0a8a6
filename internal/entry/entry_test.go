package entry

import (
	"bytes"
	"testing"

	"github.com/redeauxlabs/passvault/internal/secmem"
	"github.com/redeauxlabs/passvault/internal/vaulterr"
)

const testWF = 12

func TestNewThenDoRoundTrip(t *testing.T) {
	defer secmem.Reset()

	e, err := New("correct horse battery staple", "work", "admin", "hunter2", testWF)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := SetMAC("correct horse battery staple", e); err != nil {
		t.Fatalf("SetMAC: %v", err)
	}

	var gotSpace, gotKey, gotValue []byte
	err = Do("correct horse battery staple", e, func(space, key, value []byte) error {
		gotSpace = append([]byte(nil), space...)
		gotKey = append([]byte(nil), key...)
		gotValue = append([]byte(nil), value...)
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}

	if !bytes.Equal(gotSpace, []byte("work")) {
		t.Fatalf("space = %q, want %q", gotSpace, "work")
	}
	if !bytes.Equal(gotKey, []byte("admin")) {
		t.Fatalf("key = %q, want %q", gotKey, "admin")
	}
	if !bytes.Equal(gotValue, []byte("hunter2")) {
		t.Fatalf("value = %q, want %q", gotValue, "hunter2")
	}
}

func TestDoRejectsWrongPassphrase(t *testing.T) {
	defer secmem.Reset()

	e, err := New("right passphrase", "space", "key", "value", testWF)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := SetMAC("right passphrase", e); err != nil {
		t.Fatalf("SetMAC: %v", err)
	}

	err = Do("wrong passphrase", e, func(space, key, value []byte) error {
		t.Fatal("callback invoked despite bad passphrase")
		return nil
	})
	if vaulterr.KindOf(err) != vaulterr.BadMAC {
		t.Fatalf("expected BadMAC, got %v", err)
	}
}

func TestDoRejectsTamperedCiphertext(t *testing.T) {
	defer secmem.Reset()

	e, err := New("correct horse battery staple", "space", "key", "value", testWF)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := SetMAC("correct horse battery staple", e); err != nil {
		t.Fatalf("SetMAC: %v", err)
	}

	e.Value[0] ^= 0xff

	err = Do("correct horse battery staple", e, func(space, key, value []byte) error {
		t.Fatal("callback invoked despite tampered entry")
		return nil
	})
	if vaulterr.KindOf(err) != vaulterr.BadMAC {
		t.Fatalf("expected BadMAC, got %v", err)
	}
}

func TestDoWithoutMACFails(t *testing.T) {
	defer secmem.Reset()

	e, err := New("correct horse battery staple", "space", "key", "value", testWF)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = Do("correct horse battery staple", e, func(space, key, value []byte) error {
		t.Fatal("callback invoked despite missing MAC")
		return nil
	})
	if vaulterr.KindOf(err) != vaulterr.BadMAC {
		t.Fatalf("expected BadMAC, got %v", err)
	}
}

func TestNewUsesDistinctIVPerField(t *testing.T) {
	defer secmem.Reset()

	e, err := New("correct horse battery staple", "same", "same", "same", testWF)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if bytes.Equal(e.Space, e.Key) || bytes.Equal(e.Key, e.Value) || bytes.Equal(e.Space, e.Value) {
		t.Fatal("identical plaintext fields produced identical ciphertext: IV is not advancing")
	}
}

func TestNewRejectsBadWorkFactor(t *testing.T) {
	_, err := New("main", "space", "key", "value", 5)
	if vaulterr.KindOf(err) != vaulterr.BadWorkFactor {
		t.Fatalf("expected BadWorkFactor, got %v", err)
	}
}
