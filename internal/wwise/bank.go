// Package wwise reads the media index of Wwise soundbank (.bnk) files and
// hands the media payloads to an external transcoder. A soundbank is a
// sequence of tagged sections, each a 4-byte tag and a little-endian length.
// Only the media index (DIDX) and media blob (DATA) sections matter here;
// everything else is skipped.
package wwise

import (
	"errors"
	"fmt"

	"github.com/openfret/psarckit/internal/buf"
)

// Entry is one media object indexed by a soundbank. Embedded entries carry
// their bytes; streamed entries carry only the id of the external media file
// the bank expects to find alongside itself.
type Entry struct {
	ID       uint32
	Streamed bool
	Data     []byte
}

type mediaRecord struct {
	id     uint32
	offset uint32
	length uint32
}

// ParseBank walks the section stream of a soundbank and returns its media
// entries in index order. A bank that indexes media without carrying a data
// section yields streamed entries.
func ParseBank(data []byte) ([]Entry, error) {
	if len(data) < 8 || string(data[:4]) != "BKHD" {
		return nil, errors.New("wwise: not a soundbank")
	}

	var index []mediaRecord
	var blob []byte
	haveData := false

	r := buf.NewReader(data)
	for r.Remaining() > 0 {
		if r.Remaining() < 8 {
			return nil, fmt.Errorf("wwise: truncated section header at byte %d", r.Pos())
		}
		tag := string(r.Bytes(4))
		size := int(r.U32())
		body, ok := buf.Slice(data, r.Pos(), size)
		if !ok {
			return nil, fmt.Errorf("wwise: section %s of %d bytes runs past end of bank", tag, size)
		}
		r.Skip(size)

		switch tag {
		case "DIDX":
			if size%12 != 0 {
				return nil, fmt.Errorf("wwise: media index of %d bytes is not whole records", size)
			}
			br := buf.NewReader(body)
			for i := 0; i < size/12; i++ {
				index = append(index, mediaRecord{id: br.U32(), offset: br.U32(), length: br.U32()})
			}
		case "DATA":
			blob = body
			haveData = true
		}
	}

	entries := make([]Entry, 0, len(index))
	for _, rec := range index {
		if !haveData {
			entries = append(entries, Entry{ID: rec.id, Streamed: true})
			continue
		}
		media, ok := buf.Slice(blob, int(rec.offset), int(rec.length))
		if !ok {
			return nil, fmt.Errorf("wwise: media %d extent [%d:%d] outside %d byte data section",
				rec.id, rec.offset, uint64(rec.offset)+uint64(rec.length), len(blob))
		}
		entries = append(entries, Entry{ID: rec.id, Data: media})
	}
	return entries, nil
}
