// Package inflate decompresses archive block payloads. Archives in the wild
// disagree about framing: most blocks are zlib-wrapped, some are raw deflate
// streams, a few are gzip. Zlib tries each framing in turn and reports
// failure by returning nil instead of an error, because the extractor's
// contract on a bad block is to fall back to the raw bytes, not to abort.
package inflate

import (
	"bytes"
	"errors"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/ulikunitz/xz/lzma"
)

// Zlib inflates data, expecting at most want output bytes. Framings are tried
// in order: zlib, raw deflate, gzip. The first stream that terminates cleanly
// within the cap wins; its output may be shorter than want. Returns nil when
// every framing fails; a non-nil empty slice is a successfully empty stream.
func Zlib(data []byte, want int) []byte {
	if len(data) == 0 || want < 0 {
		return nil
	}
	if r, err := zlib.NewReader(bytes.NewReader(data)); err == nil {
		if out, ok := readAll(r, want); ok {
			return out
		}
	}
	if out, ok := readAll(flate.NewReader(bytes.NewReader(data)), want); ok {
		return out
	}
	if r, err := gzip.NewReader(bytes.NewReader(data)); err == nil {
		if out, ok := readAll(r, want); ok {
			return out
		}
	}
	return nil
}

// Lzma decodes a classic lzma-alone stream, expecting at most want output
// bytes. Same contract as Zlib: nil on failure.
func Lzma(data []byte, want int) []byte {
	if len(data) == 0 || want < 0 {
		return nil
	}
	r, err := lzma.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	out, ok := readAll(r, want)
	if !ok {
		return nil
	}
	return out
}

// readAll drains r into a buffer capped at want bytes and closes it when it
// is a Closer. ok only when the stream ends cleanly (io.EOF) at or before the
// cap: a truncated or corrupt stream fails, and so does one that still has
// output left once the cap is reached, mirroring single-shot inflation into a
// fixed buffer.
func readAll(r io.Reader, want int) (out []byte, ok bool) {
	if c, isCloser := r.(io.Closer); isCloser {
		defer c.Close()
	}
	out = make([]byte, want)
	n := 0
	for {
		if n == want {
			var probe [1]byte
			m, err := r.Read(probe[:])
			if m == 0 && errors.Is(err, io.EOF) {
				return out, true
			}
			return nil, false
		}
		m, err := r.Read(out[n:])
		n += m
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out[:n], true
			}
			return nil, false
		}
	}
}
