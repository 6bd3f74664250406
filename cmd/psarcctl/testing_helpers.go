package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/openfret/psarckit/internal/format"
)

type testMember struct {
	name string
	data []byte
}

// writeTestArchive builds a small stored-block archive on disk and returns
// its path. Members keep their listed order; member 0 is the synthetic name
// manifest.
func writeTestArchive(t *testing.T, members []testMember) string {
	t.Helper()

	const (
		blockSize = 64
		width     = 5
	)

	var names strings.Builder
	for _, m := range members {
		names.WriteString(m.name)
		names.WriteByte('\n')
	}

	payloads := [][]byte{[]byte(names.String())}
	for _, m := range members {
		payloads = append(payloads, m.data)
	}

	entrySize := format.EntryFixedSize + 2*width
	var (
		zTable []uint16
		blob   []byte
		starts []int
		offs   []int
	)
	for _, p := range payloads {
		starts = append(starts, len(zTable))
		offs = append(offs, len(blob))
		for off := 0; off < len(p); off += blockSize {
			end := min(off+blockSize, len(p))
			zTable = append(zTable, 0)
			blob = append(blob, p[off:end]...)
		}
	}

	tocLen := format.HeaderSize + len(payloads)*entrySize + len(zTable)*format.BlockLenSize

	var toc []byte
	for i, p := range payloads {
		var digest [format.DigestSize]byte
		toc = append(toc, digest[:]...)
		toc = format.AppendU32(toc, uint32(starts[i]))
		toc = format.AppendUintN(toc, uint64(len(p)), width)
		toc = format.AppendUintN(toc, uint64(tocLen+offs[i]), width)
	}
	for _, z := range zTable {
		toc = format.AppendU16(toc, z)
	}

	hdr := make([]byte, format.HeaderSize)
	format.PutU32(hdr, format.MagicOffset, format.Magic)
	format.PutU16(hdr, format.VersionMajOffset, format.VersionMajor)
	format.PutU16(hdr, format.VersionMinOffset, format.VersionMinor)
	copy(hdr[format.CompressionOffset:], format.CompressionZlib[:])
	format.PutU32(hdr, format.TOCLengthOffset, uint32(tocLen))
	format.PutU32(hdr, format.TOCStrideOffset, uint32(entrySize))
	format.PutU32(hdr, format.MemberCountOffset, uint32(len(payloads)))
	format.PutU32(hdr, format.BlockSizeOffset, blockSize)

	file := make([]byte, 0, len(hdr)+len(toc)+len(blob))
	file = append(file, hdr...)
	file = append(file, toc...)
	file = append(file, blob...)

	path := filepath.Join(t.TempDir(), "test.psarc")
	if err := os.WriteFile(path, file, 0o644); err != nil {
		t.Fatalf("failed to write archive: %v", err)
	}
	return path
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// assertNotContains checks that output doesn't contain unwanted strings
func assertNotContains(t *testing.T, output string, unwanted []string) {
	t.Helper()
	for _, dont := range unwanted {
		if strings.Contains(output, dont) {
			t.Errorf("output contains unwanted string %q\nGot: %s", dont, output)
		}
	}
}
