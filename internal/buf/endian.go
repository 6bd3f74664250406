// Package buf contains bounds-checking and endian-safe decoding helpers.
//
// The archive container is big-endian while the embedded song format is
// little-endian, so both families live here.
package buf

import (
	"encoding/binary"
	"math"
)

// U16LE reads a little-endian uint16 from b. Returns 0 when b is too short.
func U16LE(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// U32LE reads a little-endian uint32 from b. Returns 0 when b is too short.
func U32LE(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// I32LE reads a little-endian int32 from b. Returns 0 when b is too short.
func I32LE(b []byte) int32 {
	return int32(U32LE(b))
}

// F32LE reads a little-endian IEEE 754 float32 from b. Returns 0 when b is too short.
func F32LE(b []byte) float32 {
	return math.Float32frombits(U32LE(b))
}

// U16BE reads a big-endian uint16 from b. Returns 0 when b is too short.
func U16BE(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

// U32BE reads a big-endian uint32 from b. Returns 0 when b is too short.
func U32BE(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

// UintBE accumulates the bytes of b most-significant first into a uint64.
// The container stores member sizes and offsets as variable-width big-endian
// integers of 1 to 8 bytes, the width set by the directory stride. Returns 0
// when b is empty or wider than 8 bytes.
func UintBE(b []byte) uint64 {
	if len(b) == 0 || len(b) > 8 {
		return 0
	}
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}
