package secrand

import (
	"bytes"
	"math"
	"testing"
)

func TestBytesEmptyIsNoop(t *testing.T) {
	if err := Bytes(nil); err != nil {
		t.Fatalf("Bytes(nil): %v", err)
	}
}

func TestBytesFillsBuffer(t *testing.T) {
	buf := make([]byte, 64)
	if err := Bytes(buf); err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if bytes.Equal(buf, make([]byte, 64)) {
		t.Fatal("buffer was not filled (astronomically unlikely unless broken)")
	}
}

func TestNewDistinctCalls(t *testing.T) {
	a, err := New(32)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, err := New(32)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatal("two independent draws were identical")
	}
}

func TestMonobitFrequencyNearHalf(t *testing.T) {
	data, err := New(8192)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	freq := MonobitFrequency(data)
	if math.Abs(freq-0.5) > 0.05 {
		t.Fatalf("monobit frequency %.4f too far from 0.5", freq)
	}
}
