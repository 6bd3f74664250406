package psarc

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/openfret/psarckit/internal/wwise"
	"github.com/openfret/psarckit/manifest"
	"github.com/openfret/psarckit/sng"
	"github.com/openfret/psarckit/sngxml"
)

// Transcoder converts one soundbank media payload (WEM) to Ogg Vorbis.
// Implementations typically shell out to an external converter; psarcctl
// wires one in.
type Transcoder interface {
	Transcode(wem []byte) ([]byte, error)
}

// ConvertSng renders every embedded song structure to an XML arrangement
// under outDir/songs/arr. Each song is paired with its metadata manifest by
// stem, exact case-insensitive match first and substring second. Failures
// are collected; one bad song never halts the rest.
func (a *Archive) ConvertSng(outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	var manifestIdx []int
	for i, name := range a.names {
		if manifest.IsLikelyManifest(name) {
			manifestIdx = append(manifestIdx, i)
		}
	}

	var failed []error
	for _, name := range a.names {
		if !isSongMember(name) {
			continue
		}
		if err := a.convertSong(name, outDir, manifestIdx); err != nil {
			failed = append(failed, fmt.Errorf("%s: %w", name, err))
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("psarc: failed to convert %d song file(s): %w", len(failed), errors.Join(failed...))
	}
	return nil
}

func (a *Archive) convertSong(name, outDir string, manifestIdx []int) error {
	data, err := a.Extract(name)
	if err != nil {
		return err
	}
	song, err := sng.Parse(data)
	if err != nil {
		return err
	}

	meta, err := a.matchManifest(name, manifestIdx)
	if err != nil {
		return err
	}

	out, err := sngxml.Marshal(song, meta)
	if err != nil {
		return err
	}

	dest := filepath.Join(outDir, "songs", "arr", memberStem(name)+".xml")
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dest, out, 0o644)
}

// matchManifest pairs a song member with its metadata manifest. Stems are
// compared lowercased; when no manifest stem matches exactly, the first
// manifest whose full name contains the song stem wins. No match is not an
// error, the song just renders without display metadata.
func (a *Archive) matchManifest(songName string, manifestIdx []int) (*manifest.Metadata, error) {
	stem := strings.ToLower(memberStem(songName))

	match := -1
	for _, i := range manifestIdx {
		if strings.ToLower(memberStem(a.names[i])) == stem {
			match = i
			break
		}
	}
	if match < 0 {
		for _, i := range manifestIdx {
			if strings.Contains(strings.ToLower(a.names[i]), stem) {
				match = i
				break
			}
		}
	}
	if match < 0 {
		return nil, nil
	}

	data, err := a.ExtractIndex(match)
	if err != nil {
		return nil, err
	}
	meta := manifest.Parse(data)
	return &meta, nil
}

// ConvertAudio decodes every soundbank and standalone media member to Ogg
// Vorbis through tc. Soundbank media lands under the bank's own directory
// named after the bank ("_<n>" suffixed when a bank carries several);
// streamed media a bank references is converted once under the bank's name
// and skipped in the standalone pass.
func (a *Archive) ConvertAudio(outDir string, tc Transcoder) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	var banks, media []string
	for _, name := range a.names {
		switch {
		case strings.HasSuffix(name, ".bnk"):
			banks = append(banks, name)
		case strings.HasSuffix(name, ".wem"):
			media = append(media, name)
		}
	}

	referenced := make(map[string]bool)
	var failed []error
	for _, bank := range banks {
		failed = append(failed, a.convertBank(bank, media, referenced, outDir, tc)...)
	}
	for _, name := range media {
		if referenced[name] {
			continue
		}
		if err := a.convertMedia(name, outDir, tc); err != nil {
			failed = append(failed, fmt.Errorf("%s: %w", name, err))
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("psarc: failed to convert %d audio file(s): %w", len(failed), errors.Join(failed...))
	}
	return nil
}

func (a *Archive) convertBank(bankName string, media []string, referenced map[string]bool, outDir string, tc Transcoder) []error {
	data, err := a.Extract(bankName)
	if err != nil {
		return []error{fmt.Errorf("%s: %w", bankName, err)}
	}
	entries, err := wwise.ParseBank(data)
	if err != nil {
		return []error{fmt.Errorf("%s: %w", bankName, err)}
	}

	stem := memberStem(bankName)
	var failed []error
	for i, entry := range entries {
		payload := entry.Data
		if entry.Streamed {
			wemName := findMediaByID(media, entry.ID)
			if wemName == "" {
				failed = append(failed, fmt.Errorf("%s: streamed media %d not found in archive", bankName, entry.ID))
				continue
			}
			referenced[wemName] = true
			if payload, err = a.Extract(wemName); err != nil {
				failed = append(failed, fmt.Errorf("%s (media %d): %w", bankName, entry.ID, err))
				continue
			}
		}
		if len(payload) == 0 {
			continue
		}

		ogg, err := tc.Transcode(payload)
		if err != nil {
			failed = append(failed, fmt.Errorf("%s (media %d): %w", bankName, entry.ID, err))
			continue
		}

		oggName := stem
		if len(entries) > 1 {
			oggName += "_" + strconv.Itoa(i)
		}
		oggName += ".ogg"
		if err := writeConverted(outDir, path.Dir(bankName), oggName, ogg); err != nil {
			failed = append(failed, fmt.Errorf("%s: %w", oggName, err))
		}
	}
	return failed
}

func (a *Archive) convertMedia(name, outDir string, tc Transcoder) error {
	data, err := a.Extract(name)
	if err != nil {
		return err
	}
	ogg, err := tc.Transcode(data)
	if err != nil {
		return err
	}
	return writeConverted(outDir, path.Dir(name), memberStem(name)+".ogg", ogg)
}

// findMediaByID locates the archive media member whose stem is the decimal
// id a soundbank references.
func findMediaByID(media []string, id uint32) string {
	want := strconv.FormatUint(uint64(id), 10)
	for _, name := range media {
		if memberStem(name) == want {
			return name
		}
	}
	return ""
}

// memberStem is the base of an archive path without its extension.
func memberStem(name string) string {
	base := path.Base(name)
	return strings.TrimSuffix(base, path.Ext(base))
}

func writeConverted(outDir, memberDir, fileName string, data []byte) error {
	rel := filepath.Join(filepath.FromSlash(memberDir), fileName)
	if !filepath.IsLocal(rel) {
		return fmt.Errorf("psarc: refusing member path %q outside destination", rel)
	}
	dest := filepath.Join(outDir, rel)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0o644)
}
