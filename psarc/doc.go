// Package psarc reads PSARC game-asset archives.
//
// # Overview
//
// This package opens a PSARC container, validates its fixed big-endian
// header, decrypts and decodes the table of contents, and reassembles member
// payloads from the archive's shared block-length table. It is a reader:
// nothing in the package writes or repacks archives.
//
// # Archive Layout
//
// A PSARC file consists of:
//
//	[Header - 32 bytes] [TOC region] [member data blocks ...]
//
// The TOC region (optionally AES-256-CFB encrypted with a key fixed by the
// format) holds one packed directory record per member followed by a shared
// table of 16-bit compressed block lengths. Members do not own block-length
// ranges explicitly; each directory record carries the index of its first
// block and consumes table slots until its declared uncompressed size is
// reached.
//
// # Opening an Archive
//
// The primary way to open an archive is through the Open function:
//
//	a, err := psarc.Open("song_p.psarc")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer a.Close()
//
// On Unix the file is memory-mapped; on other platforms it is read into
// memory. Member 0 is always the archive's own name manifest and is decoded
// during Open, so List and Extract can work with real member names
// immediately.
//
// # Extraction
//
// Extract reassembles a member block by block. A zero in the block-length
// table marks a stored block of exactly BlockSize bytes; any other value is
// the byte length of a compressed chunk. Chunks that fail to decompress are
// kept verbatim - some archives store incompressible data under a nonzero
// table length, and the format offers no flag to tell the two apart.
//
// Members under songs/bin/generic/ with an .sng suffix are encrypted song
// structures; extraction decrypts them transparently (see the sng package
// for parsing the result).
//
// # Thread Safety
//
// All archive state is built during Open and read-only afterwards. Multiple
// goroutines may extract members from the same Archive concurrently; every
// extraction reads at absolute offsets and shares no cursor.
//
// # Related Packages
//
//   - github.com/openfret/psarckit/sng: song structure decrypt and parse
//   - github.com/openfret/psarckit/sngxml: song structure XML serializer
//   - github.com/openfret/psarckit/manifest: song metadata JSON reader
package psarc
