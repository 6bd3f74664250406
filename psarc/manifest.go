package psarc

import (
	"errors"
	"fmt"
	"strings"
)

// readManifest extracts member 0, splits it into names and assigns them to
// entries 1..N-1 in order. Entry 0 is the manifest itself and gets a
// synthetic name. Fewer names than members leaves the tail unnamed; extra
// names are ignored. Duplicate names keep the last index.
func (a *Archive) readManifest() error {
	if len(a.entries) == 0 {
		return errors.New("psarc: archive has no members")
	}
	a.names = make([]string, len(a.entries))
	a.byName = make(map[string]int, len(a.entries))

	blob, err := a.ExtractIndex(0)
	if err != nil {
		return fmt.Errorf("psarc: name manifest: %w", err)
	}

	names := parseNameList(blob)
	a.names[0] = ManifestName
	a.byName[ManifestName] = 0
	for i := 1; i < len(a.entries) && i-1 < len(names); i++ {
		a.names[i] = names[i-1]
		a.byName[names[i-1]] = i
	}
	return nil
}

// parseNameList splits the manifest blob into one name per line, trimming
// surrounding whitespace and dropping blank lines.
func parseNameList(blob []byte) []string {
	var names []string
	for _, line := range strings.Split(string(blob), "\n") {
		line = strings.Trim(line, " \t\r\n")
		if line == "" {
			continue
		}
		names = append(names, line)
	}
	return names
}
