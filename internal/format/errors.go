package format

import "errors"

var (
	// ErrSignatureMismatch indicates the container had an unexpected magic.
	ErrSignatureMismatch = errors.New("format: signature mismatch")
	// ErrVersion indicates a container revision other than 1.4.
	ErrVersion = errors.New("format: unsupported version")
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrEntryStride indicates a directory stride whose variable field width
	// falls outside 1..8 bytes.
	ErrEntryStride = errors.New("format: invalid directory entry stride")
	// ErrChunkRange indicates a member referenced a block index past the end
	// of the block-length table.
	ErrChunkRange = errors.New("format: chunk index out of range")
)
