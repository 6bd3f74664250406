package psarc

import (
	"fmt"
	"strings"

	"github.com/openfret/psarckit/internal/buf"
	"github.com/openfret/psarckit/internal/format"
	"github.com/openfret/psarckit/internal/inflate"
	"github.com/openfret/psarckit/sng"
)

// Extract reassembles the named member and returns its bytes.
func (a *Archive) Extract(name string) ([]byte, error) {
	i, ok := a.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return a.ExtractIndex(i)
}

// ExtractIndex reassembles the member at the given entry index. Members under
// songs/bin/generic/ with an .sng suffix hold encrypted song structures and
// are decrypted after reassembly.
func (a *Archive) ExtractIndex(i int) ([]byte, error) {
	if i < 0 || i >= len(a.entries) {
		return nil, fmt.Errorf("psarc: entry index %d out of range (%d members)", i, len(a.entries))
	}
	out, err := a.assemble(a.entries[i])
	if err != nil {
		return nil, fmt.Errorf("psarc: extract %s: %w", a.memberLabel(i), err)
	}
	if isSongMember(a.names[i]) {
		out, err = sng.Decrypt(out)
		if err != nil {
			return nil, fmt.Errorf("psarc: extract %s: %w", a.memberLabel(i), err)
		}
	}
	return out, nil
}

func (a *Archive) memberLabel(i int) string {
	if name := a.names[i]; name != "" {
		return name
	}
	return fmt.Sprintf("member %d", i)
}

// isSongMember reports whether a member name marks an encrypted song
// structure.
func isSongMember(name string) bool {
	return strings.Contains(name, "songs/bin/generic/") && strings.HasSuffix(name, ".sng")
}

// assemble walks the member's share of the block-length table and rebuilds
// its uncompressed bytes. The output grows incrementally; the directory's
// declared size caps the loop but is never trusted for preallocation.
func (a *Archive) assemble(e format.Entry) ([]byte, error) {
	if e.Size == 0 {
		return []byte{}, nil
	}
	if e.Offset > uint64(len(a.data)) {
		return nil, fmt.Errorf("data offset %d beyond archive of %d bytes: %w",
			e.Offset, len(a.data), format.ErrTruncated)
	}

	var (
		out       []byte
		pos       = int(e.Offset)
		cursor    = int(e.StartBlock)
		blockSize = int(a.header.BlockSize)
	)
	for uint64(len(out)) < e.Size {
		if cursor < 0 || cursor >= len(a.blockLens) {
			return nil, fmt.Errorf("block %d: %w", cursor, format.ErrChunkRange)
		}
		zlen := int(a.blockLens[cursor])
		cursor++

		if zlen == 0 {
			// Stored block of blockSize bytes; only the archive tail may
			// come up short.
			n := min(blockSize, len(a.data)-pos)
			out = append(out, a.data[pos:pos+n]...)
			pos += n
			continue
		}

		chunk, ok := buf.Slice(a.data, pos, zlen)
		if !ok {
			return nil, fmt.Errorf("compressed block %d: %w", cursor-1, format.ErrTruncated)
		}
		pos += zlen

		expected := min(e.Size-uint64(len(out)), uint64(blockSize))
		if dec := a.decompress(chunk, int(expected)); len(dec) > 0 {
			out = append(out, dec...)
		} else {
			// Chunks that do not inflate are kept verbatim: some archives
			// store incompressible data under a nonzero table length.
			out = append(out, chunk...)
		}
	}
	if uint64(len(out)) > e.Size {
		out = out[:e.Size]
	}
	return out, nil
}

// decompress inflates one block per the header's compression tag. Unknown
// tags try the zlib family first, then lzma. An empty result means the
// caller keeps the raw chunk.
func (a *Archive) decompress(chunk []byte, want int) []byte {
	switch a.header.Compression {
	case format.CompressionZlib:
		return inflate.Zlib(chunk, want)
	case format.CompressionLzma:
		return inflate.Lzma(chunk, want)
	default:
		if dec := inflate.Zlib(chunk, want); len(dec) > 0 {
			return dec
		}
		return inflate.Lzma(chunk, want)
	}
}
