package buf

import (
	"bytes"
	"io"
	"math"
)

// Reader is a little-endian cursor over an in-memory buffer. A read past the
// end sets a sticky error and yields zero values, so record decoders can stay
// linear and check Err once per section instead of after every field.
type Reader struct {
	data []byte
	pos  int
	err  error
}

// NewReader returns a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Err returns the first out-of-bounds error encountered, or nil.
func (r *Reader) Err() error { return r.err }

// Pos returns the current read position.
func (r *Reader) Pos() int { return r.pos }

// Len returns the total buffer length.
func (r *Reader) Len() int { return len(r.data) }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.data) - r.pos }

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	b, ok := Slice(r.data, r.pos, n)
	if !ok {
		r.err = io.ErrUnexpectedEOF
		return nil
	}
	r.pos += n
	return b
}

// Skip advances the cursor n bytes.
func (r *Reader) Skip(n int) {
	r.take(n)
}

// Bytes reads n bytes and returns them as a fresh slice, decoupled from the
// backing buffer.
func (r *Reader) Bytes(n int) []byte {
	b := r.take(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// U8 reads one byte.
func (r *Reader) U8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// I8 reads one byte as a signed value.
func (r *Reader) I8() int8 { return int8(r.U8()) }

// U16 reads a little-endian uint16.
func (r *Reader) U16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return U16LE(b)
}

// I16 reads a little-endian int16.
func (r *Reader) I16() int16 { return int16(r.U16()) }

// U32 reads a little-endian uint32.
func (r *Reader) U32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return U32LE(b)
}

// I32 reads a little-endian int32.
func (r *Reader) I32() int32 { return int32(r.U32()) }

// F32 reads a little-endian IEEE 754 float32.
func (r *Reader) F32() float32 { return math.Float32frombits(r.U32()) }

// F64 reads a little-endian IEEE 754 float64.
func (r *Reader) F64() float64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return math.Float64frombits(v)
}

// FixedString reads an n-byte field holding a NUL-padded string and returns
// the bytes before the first NUL. A field with no NUL uses its full width.
func (r *Reader) FixedString(n int) string {
	b := r.take(n)
	if b == nil {
		return ""
	}
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
