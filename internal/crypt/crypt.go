// Package crypt wraps the two fixed-key AES modes the archive format uses:
// CFB for the directory region and CTR for embedded song members. The key
// material is defined by the format itself and published in every tool that
// reads these archives; there is nothing secret here.
package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// Directory region key material (AES-256-CFB, fixed IV).
var (
	tocKey = []byte{
		0xC5, 0x3D, 0xB2, 0x38, 0x70, 0xA1, 0xA2, 0xF7, 0x1C, 0xAE, 0x64, 0x06, 0x1F, 0xDD, 0x0E, 0x11,
		0x57, 0x30, 0x9D, 0xC8, 0x52, 0x04, 0xD4, 0xC5, 0xBF, 0xDF, 0x25, 0x09, 0x0D, 0xF2, 0x57, 0x2C,
	}
	tocIV = []byte{
		0xE9, 0x15, 0xAA, 0x01, 0x8F, 0xEF, 0x71, 0xFC, 0x50, 0x81, 0x32, 0xE4, 0xBB, 0x4C, 0xEB, 0x42,
	}
)

// Song member key (AES-256-CTR, IV carried per file).
var songKey = []byte{
	0xCB, 0x64, 0x8D, 0xF3, 0xD1, 0x2A, 0x16, 0xBF, 0x71, 0x70, 0x14, 0x14, 0xE6, 0x96, 0x19, 0xEC,
	0x17, 0x1C, 0xCA, 0x5D, 0x2A, 0x14, 0x2E, 0x3E, 0x59, 0xDE, 0x7A, 0xDD, 0xA1, 0x8A, 0x3A, 0x30,
}

// DecryptTOC decrypts the directory region. CFB needs whole cipher blocks, so
// the input is zero-padded to a 16-byte multiple for the stream and the
// output truncated back to the original length.
func DecryptTOC(data []byte) ([]byte, error) {
	block, err := aes.NewCipher(tocKey)
	if err != nil {
		return nil, fmt.Errorf("crypt: toc cipher: %w", err)
	}
	padded := make([]byte, (len(data)+aes.BlockSize-1)/aes.BlockSize*aes.BlockSize)
	copy(padded, data)
	out := make([]byte, len(padded))
	cipher.NewCFBDecrypter(block, tocIV).XORKeyStream(out, padded)
	return out[:len(data)], nil
}

// EncryptTOC is the inverse of DecryptTOC over whole blocks. The library never
// writes archives; the synthetic-archive builders in the test suites use it to
// produce encrypted directories that DecryptTOC must recover.
func EncryptTOC(data []byte) ([]byte, error) {
	block, err := aes.NewCipher(tocKey)
	if err != nil {
		return nil, fmt.Errorf("crypt: toc cipher: %w", err)
	}
	padded := make([]byte, (len(data)+aes.BlockSize-1)/aes.BlockSize*aes.BlockSize)
	copy(padded, data)
	out := make([]byte, len(padded))
	cipher.NewCFBEncrypter(block, tocIV).XORKeyStream(out, padded)
	return out[:len(data)], nil
}

// SongStream returns the CTR keystream cipher for one embedded song member.
// CTR is symmetric, so the same stream both decrypts and encrypts.
func SongStream(iv []byte) (cipher.Stream, error) {
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("crypt: song iv must be %d bytes, got %d", aes.BlockSize, len(iv))
	}
	block, err := aes.NewCipher(songKey)
	if err != nil {
		return nil, fmt.Errorf("crypt: song cipher: %w", err)
	}
	return cipher.NewCTR(block, iv), nil
}
