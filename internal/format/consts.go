// Package format houses low-level decoders for the archive container layout:
// the fixed big-endian header, the member directory, and the shared
// block-length table. The goal is to keep the parsing focused and independent
// from the public API so higher-level packages can orchestrate the data in a
// more ergonomic form. The package never decrypts or decompresses; callers
// hand it plaintext bytes.
package format

// Header field offsets. Every header field is big-endian.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------
//	 0x00    4    'P' 'S' 'A' 'R'
//	 0x04    2    Version major (must be 1)
//	 0x06    2    Version minor (must be 4)
//	 0x08    4    Compression tag, ASCII ("zlib" / "lzma")
//	 0x0C    4    Directory length, header inclusive
//	 0x10    4    Directory entry stride
//	 0x14    4    Member count
//	 0x18    4    Block size
//	 0x1C    4    Archive flags
const (
	HeaderSize = 32

	MagicOffset       = 0
	VersionMajOffset  = 4
	VersionMinOffset  = 6
	CompressionOffset = 8
	TOCLengthOffset   = 12
	TOCStrideOffset   = 16
	MemberCountOffset = 20
	BlockSizeOffset   = 24
	FlagsOffset       = 28
)

// Magic is the container signature, the ASCII bytes "PSAR" read big-endian.
const Magic = 0x50534152

// The only supported container revision.
const (
	VersionMajor = 1
	VersionMinor = 4
)

// FlagTOCEncrypted marks the directory region as AES encrypted.
const FlagTOCEncrypted = 0x04

// Compression method tags carried in the header. Unknown tags are not
// rejected; extraction tries both families.
var (
	CompressionZlib = [4]byte{'z', 'l', 'i', 'b'}
	CompressionLzma = [4]byte{'l', 'z', 'm', 'a'}
)

// Directory entry geometry. Every entry starts with a 16-byte name digest and
// a 4-byte start block index; the remaining bytes split evenly into two
// variable-width big-endian fields, member size then file offset.
const (
	EntryFixedSize = 20
	DigestSize     = 16

	MinFieldWidth = 1
	MaxFieldWidth = 8

	// BlockLenSize is the width of one entry in the shared block-length table.
	BlockLenSize = 2
)
