//go:build windows

package mmfile

import (
	"os"
)

// Map reads the file into memory. Archives are opened read-only and Windows
// file locking makes a shared mapping more trouble than the copy saves.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return nil }, nil
}
