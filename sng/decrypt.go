package sng

import (
	"errors"
	"fmt"

	"github.com/openfret/psarckit/internal/buf"
	"github.com/openfret/psarckit/internal/crypt"
	"github.com/openfret/psarckit/internal/inflate"
)

// Encrypted song file framing, all little-endian:
//
//	Offset  Size  Description
//	------  ----  -------------------------------
//	 0x00    4    Magic 0x4A
//	 0x04    4    Platform flags (bit 0 = payload zlib compressed)
//	 0x08    16   AES-CTR IV
//	 0x18    ...  Ciphertext
const (
	fileMagic      = 0x4A
	flagCompressed = 0x01
	headerLen      = 24
)

var (
	// ErrTooShort indicates the input cannot hold the song file header.
	ErrTooShort = errors.New("sng: file too short")
	// ErrBadMagic indicates the input is not an encrypted song file.
	ErrBadMagic = errors.New("sng: bad magic")
	// ErrPayload indicates the decrypted payload failed to decompress.
	ErrPayload = errors.New("sng: payload decompression failed")
)

// Decrypt strips the encryption envelope from an embedded song file and
// returns the plaintext section stream ready for Parse.
func Decrypt(data []byte) ([]byte, error) {
	if len(data) < headerLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooShort, len(data))
	}
	if buf.U32LE(data) != fileMagic {
		return nil, fmt.Errorf("%w: 0x%x", ErrBadMagic, buf.U32LE(data))
	}
	flags := buf.U32LE(data[4:])
	iv := data[8:headerLen]

	stream, err := crypt.SongStream(iv)
	if err != nil {
		return nil, err
	}
	plain := make([]byte, len(data)-headerLen)
	stream.XORKeyStream(plain, data[headerLen:])

	if flags&flagCompressed == 0 {
		return plain, nil
	}
	if len(plain) < 4 {
		return nil, fmt.Errorf("%w: compressed payload header", ErrTooShort)
	}
	want := buf.U32LE(plain)
	out := inflate.Zlib(plain[4:], int(want))
	if out == nil {
		return nil, ErrPayload
	}
	return out, nil
}

// DecryptParse is the common pipeline: Decrypt then Parse.
func DecryptParse(data []byte) (*Song, error) {
	plain, err := Decrypt(data)
	if err != nil {
		return nil, err
	}
	return Parse(plain)
}
