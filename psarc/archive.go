package psarc

import (
	"errors"
	"fmt"

	"github.com/openfret/psarckit/internal/crypt"
	"github.com/openfret/psarckit/internal/format"
	"github.com/openfret/psarckit/internal/mmfile"
)

// ManifestName is the synthetic name of member 0, the archive's own
// newline-separated name listing.
const ManifestName = "NamesBlock.bin"

// ErrNotFound indicates the archive has no member with the requested name.
var ErrNotFound = errors.New("psarc: member not found")

// Header describes the fixed 32-byte descriptor at the front of the archive.
type Header struct {
	VersionMajor uint16
	VersionMinor uint16
	Compression  string
	TOCLength    uint32
	MemberCount  uint32
	BlockSize    uint32
	TOCEncrypted bool
}

// Member identifies one archive entry. Entries the manifest left unnamed
// carry an empty Name.
type Member struct {
	Index int
	Name  string
	Size  uint64
}

// Archive is an opened archive, backed by mmap (unix) or a byte slice
// (others). All state is built during Open and is read-only afterwards.
type Archive struct {
	data      []byte
	cleanup   func() error
	header    format.Header
	entries   []format.Entry
	blockLens []uint16
	names     []string // parallel to entries; empty = unnamed
	byName    map[string]int
}

// Open maps the archive at path, validates its header, decodes the member
// directory and resolves member names from the manifest.
func Open(path string) (*Archive, error) {
	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return nil, err
	}
	a, err := openBytes(data, cleanup)
	if err != nil {
		_ = cleanup()
		return nil, err
	}
	return a, nil
}

func openBytes(data []byte, cleanup func() error) (*Archive, error) {
	hdr, err := format.ParseHeader(data)
	if err != nil {
		return nil, err
	}
	tocEnd := int(hdr.TOCLength)
	if tocEnd < format.HeaderSize || tocEnd > len(data) {
		return nil, fmt.Errorf("psarc: directory of %d bytes in %d byte file: %w",
			hdr.TOCLength, len(data), format.ErrTruncated)
	}
	toc := data[format.HeaderSize:tocEnd]
	if hdr.TOCEncrypted() {
		toc, err = crypt.DecryptTOC(toc)
		if err != nil {
			return nil, err
		}
	}
	entries, blockLens, err := format.ParseTOC(toc, hdr)
	if err != nil {
		return nil, err
	}
	a := &Archive{
		data:      data,
		cleanup:   cleanup,
		header:    hdr,
		entries:   entries,
		blockLens: blockLens,
	}
	if err := a.readManifest(); err != nil {
		return nil, err
	}
	return a, nil
}

// Close releases the mapping. The archive must not be used afterwards.
func (a *Archive) Close() error {
	if a == nil || a.cleanup == nil {
		return nil
	}
	err := a.cleanup()
	a.cleanup = nil
	a.data = nil
	return err
}

// Header returns the validated archive header.
func (a *Archive) Header() Header {
	return Header{
		VersionMajor: a.header.VersionMajor,
		VersionMinor: a.header.VersionMinor,
		Compression:  a.header.CompressionTag(),
		TOCLength:    a.header.TOCLength,
		MemberCount:  a.header.MemberCount,
		BlockSize:    a.header.BlockSize,
		TOCEncrypted: a.header.TOCEncrypted(),
	}
}

// NumMembers returns the number of directory entries, the manifest member
// included.
func (a *Archive) NumMembers() int { return len(a.entries) }

// Member returns the descriptor for one entry index.
func (a *Archive) Member(i int) (Member, bool) {
	if i < 0 || i >= len(a.entries) {
		return Member{}, false
	}
	return Member{Index: i, Name: a.names[i], Size: a.entries[i].Size}, true
}

// Lookup resolves a member by its manifest name.
func (a *Archive) Lookup(name string) (Member, bool) {
	i, ok := a.byName[name]
	if !ok {
		return Member{}, false
	}
	return Member{Index: i, Name: a.names[i], Size: a.entries[i].Size}, true
}

// Contains reports whether the manifest mapped the given name.
func (a *Archive) Contains(name string) bool {
	_, ok := a.byName[name]
	return ok
}

// List returns every named member in entry order, the synthetic manifest
// member included. Entries the manifest left unnamed are skipped.
func (a *Archive) List() []Member {
	members := make([]Member, 0, len(a.entries))
	for i := range a.entries {
		if a.names[i] == "" {
			continue
		}
		members = append(members, Member{Index: i, Name: a.names[i], Size: a.entries[i].Size})
	}
	return members
}
