package format

import (
	"fmt"

	"github.com/openfret/psarckit/internal/buf"
)

// Header is the fixed 32-byte descriptor at the start of every archive. See
// the offset table in consts.go; all fields are big-endian.
type Header struct {
	VersionMajor uint16
	VersionMinor uint16
	Compression  [4]byte
	TOCLength    uint32
	TOCStride    uint32
	MemberCount  uint32
	BlockSize    uint32
	Flags        uint32
}

// TOCEncrypted reports whether the directory region is AES encrypted.
func (h Header) TOCEncrypted() bool { return h.Flags&FlagTOCEncrypted != 0 }

// CompressionTag returns the header's compression method as a string.
func (h Header) CompressionTag() string { return string(h.Compression[:]) }

// FieldWidth derives the byte width of the variable size/offset fields from
// the directory stride.
func (h Header) FieldWidth() (int, error) {
	w := (int(h.TOCStride) - EntryFixedSize) / 2
	if w < MinFieldWidth || w > MaxFieldWidth {
		return 0, fmt.Errorf("stride %d: %w", h.TOCStride, ErrEntryStride)
	}
	return w, nil
}

// ParseHeader validates and extracts the archive header.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("archive header: %w", ErrTruncated)
	}
	if buf.U32BE(b[MagicOffset:]) != Magic {
		return Header{}, fmt.Errorf("archive header: %w", ErrSignatureMismatch)
	}
	h := Header{
		VersionMajor: buf.U16BE(b[VersionMajOffset:]),
		VersionMinor: buf.U16BE(b[VersionMinOffset:]),
		TOCLength:    buf.U32BE(b[TOCLengthOffset:]),
		TOCStride:    buf.U32BE(b[TOCStrideOffset:]),
		MemberCount:  buf.U32BE(b[MemberCountOffset:]),
		BlockSize:    buf.U32BE(b[BlockSizeOffset:]),
		Flags:        buf.U32BE(b[FlagsOffset:]),
	}
	copy(h.Compression[:], b[CompressionOffset:CompressionOffset+4])
	if h.VersionMajor != VersionMajor || h.VersionMinor != VersionMinor {
		return Header{}, fmt.Errorf("archive version %d.%d: %w", h.VersionMajor, h.VersionMinor, ErrVersion)
	}
	return h, nil
}
