package buf

import (
	"math"
	"testing"
)

func TestEndianHelpers(t *testing.T) {
	data := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}

	if got := U16LE(data); got != 0x2301 {
		t.Fatalf("U16LE = 0x%x, want 0x2301", got)
	}
	if got := U32LE(data); got != 0x67452301 {
		t.Fatalf("U32LE = 0x%x, want 0x67452301", got)
	}
	if got := U16BE(data); got != 0x0123 {
		t.Fatalf("U16BE = 0x%x, want 0x0123", got)
	}
	if got := U32BE(data); got != 0x01234567 {
		t.Fatalf("U32BE = 0x%x, want 0x01234567", got)
	}
	if got := I32LE(data); got != 0x67452301 {
		t.Fatalf("I32LE = 0x%x, want 0x67452301", got)
	}

	short := []byte{0xAA}
	if U16LE(short) != 0 || U32LE(short) != 0 || U16BE(short) != 0 || U32BE(short) != 0 {
		t.Fatalf("short reads should return 0")
	}
}

func TestF32LE(t *testing.T) {
	bits := math.Float32bits(1.5)
	b := []byte{byte(bits), byte(bits >> 8), byte(bits >> 16), byte(bits >> 24)}
	if got := F32LE(b); got != 1.5 {
		t.Fatalf("F32LE = %v, want 1.5", got)
	}
	if F32LE(b[:3]) != 0 {
		t.Fatalf("short F32LE should be 0")
	}
}

func TestUintBE(t *testing.T) {
	cases := []struct {
		in   []byte
		want uint64
	}{
		{[]byte{0x7f}, 0x7f},
		{[]byte{0x01, 0x00}, 0x100},
		{[]byte{0x00, 0x01, 0x02, 0x03, 0x04}, 0x01020304}, // 5-byte stride
		{[]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, math.MaxUint64},
		{nil, 0},
		{make([]byte, 9), 0},
	}
	for _, tc := range cases {
		if got := UintBE(tc.in); got != tc.want {
			t.Fatalf("UintBE(% x) = 0x%x, want 0x%x", tc.in, got, tc.want)
		}
	}
}
