package format

import (
	"fmt"

	"github.com/openfret/psarckit/internal/buf"
)

// Entry is one member record from the archive directory.
//
//	Offset  Size  Description
//	------  ----  ---------------------------------------------
//	 0x00    16   MD5 digest of the member name (kept, unverified)
//	 0x10     4   Index of the member's first block
//	 0x14     w   Uncompressed size, big-endian, w = field width
//	 0x14+w   w   Absolute file offset, big-endian
type Entry struct {
	NameDigest [DigestSize]byte
	StartBlock uint32
	Size       uint64
	Offset     uint64
}

// ParseTOC decodes the decrypted directory region: hdr.MemberCount packed
// entry records followed by the shared block-length table, consecutive
// big-endian uint16 values to the end of the region (a trailing odd byte is
// ignored). A region too short for the declared member count is an error,
// never a silent short count.
func ParseTOC(toc []byte, hdr Header) ([]Entry, []uint16, error) {
	width, err := hdr.FieldWidth()
	if err != nil {
		return nil, nil, err
	}
	entrySize := EntryFixedSize + 2*width

	if _, err := buf.CheckListBounds(len(toc), 0, int(hdr.MemberCount), entrySize); err != nil {
		return nil, nil, fmt.Errorf("directory (%d members): %w", hdr.MemberCount, ErrTruncated)
	}

	entries := make([]Entry, hdr.MemberCount)
	pos := 0
	for i := range entries {
		e := &entries[i]
		copy(e.NameDigest[:], toc[pos:pos+DigestSize])
		pos += DigestSize
		e.StartBlock = buf.U32BE(toc[pos:])
		pos += 4
		e.Size = buf.UintBE(toc[pos : pos+width])
		pos += width
		e.Offset = buf.UintBE(toc[pos : pos+width])
		pos += width
	}

	var blockLens []uint16
	for pos+BlockLenSize <= len(toc) {
		blockLens = append(blockLens, buf.U16BE(toc[pos:]))
		pos += BlockLenSize
	}

	return entries, blockLens, nil
}
