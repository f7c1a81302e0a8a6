package frame

import (
	"bytes"
	"testing"

	"github.com/redeauxlabs/passvault/internal/secmem"
	"github.com/redeauxlabs/passvault/internal/vaulterr"
)

func mustIV(t *testing.T, seed byte) []byte {
	t.Helper()
	iv := make([]byte, ivLen)
	for i := range iv {
		iv[i] = seed
	}
	return iv
}

func TestPackUnpackRoundTrip(t *testing.T) {
	defer secmem.Reset()

	cases := [][]byte{
		[]byte(""),
		[]byte("x"),
		[]byte("hello, world"),
		bytes.Repeat([]byte{0x42}, 1000),
	}
	iv := mustIV(t, 7)

	for _, p := range cases {
		packed, err := Pack(p, iv)
		if err != nil {
			t.Fatalf("Pack(%q): %v", p, err)
		}
		if len(packed)%blockSize != 0 || len(packed) == 0 {
			t.Fatalf("Pack(%q): length %d not a positive multiple of %d", p, len(packed), blockSize)
		}

		got, err := Unpack(packed, iv)
		if err != nil {
			t.Fatalf("Unpack: %v", err)
		}
		if !bytes.Equal(got, p) {
			t.Fatalf("round-trip mismatch: got %q want %q", got, p)
		}
		secmem.Free(packed)
		if len(got) > 0 {
			secmem.Free(got)
		}
	}
}

func TestUnpackWrongIV(t *testing.T) {
	defer secmem.Reset()
	iv := mustIV(t, 1)
	other := mustIV(t, 2)

	packed, err := Pack([]byte("secret"), iv)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	defer secmem.Free(packed)

	_, err = Unpack(packed, other)
	if vaulterr.KindOf(err) != vaulterr.IVMismatch {
		t.Fatalf("expected IVMismatch, got %v", err)
	}
}

func TestUnpackRejectsUnaligned(t *testing.T) {
	_, err := Unpack(make([]byte, 17), mustIV(t, 0))
	if vaulterr.KindOf(err) != vaulterr.Unaligned {
		t.Fatalf("expected Unaligned, got %v", err)
	}
}

func TestUnpackRejectsBadHeader(t *testing.T) {
	defer secmem.Reset()
	iv := mustIV(t, 3)
	packed, err := Pack([]byte("abc"), iv)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	defer secmem.Free(packed)

	packed[0] ^= 0xff
	_, err = Unpack(packed, iv)
	if vaulterr.KindOf(err) != vaulterr.HeaderMismatch {
		t.Fatalf("expected HeaderMismatch, got %v", err)
	}
}

func TestPackAlignmentAcrossSizes(t *testing.T) {
	defer secmem.Reset()
	iv := mustIV(t, 9)
	for n := 0; n < 64; n++ {
		packed, err := Pack(make([]byte, n), iv)
		if err != nil {
			t.Fatalf("Pack(%d): %v", n, err)
		}
		if len(packed)%blockSize != 0 || len(packed) == 0 {
			t.Fatalf("Pack(%d): length %d not a positive multiple of %d", n, len(packed), blockSize)
		}
		secmem.Free(packed)
	}
}
