package format

import "encoding/binary"

// Binary encoding utilities for the container's big-endian fields. The
// library only reads archives; these writers exist for the synthetic-archive
// builders used throughout the test suites.

// PutU16 writes a uint16 to the buffer at the specified offset in big-endian format.
func PutU16(b []byte, off int, v uint16) {
	binary.BigEndian.PutUint16(b[off:off+2], v)
}

// PutU32 writes a uint32 to the buffer at the specified offset in big-endian format.
func PutU32(b []byte, off int, v uint32) {
	binary.BigEndian.PutUint32(b[off:off+4], v)
}

// AppendU16 appends a big-endian uint16.
func AppendU16(b []byte, v uint16) []byte {
	return append(b, byte(v>>8), byte(v))
}

// AppendU32 appends a big-endian uint32.
func AppendU32(b []byte, v uint32) []byte {
	return append(b, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// AppendUintN appends the low width bytes of v most-significant first,
// matching the directory's variable-width size and offset fields.
func AppendUintN(b []byte, v uint64, width int) []byte {
	for i := width - 1; i >= 0; i-- {
		b = append(b, byte(v>>(8*i)))
	}
	return b
}
