// Package manifest reads the JSON metadata sidecars bundled alongside song
// members in game archives. The manifest is display decoration only - titles,
// artist credits, tone names, technique flags - so the reader degrades to
// zero values instead of failing: a song without usable metadata still
// converts, it just renders with empty fields.
package manifest

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"
	"golang.org/x/text/encoding/unicode"
)

// ArrangementProperties is the per-technique flag block some manifests carry.
// Flags are small ints in the wild (0/1), kept as ints verbatim.
type ArrangementProperties struct {
	Represent         int
	BonusArr          int
	StandardTuning    int
	NonStandardChords int
	BarreChords       int
	PowerChords       int
	DropDPower        int
	OpenChords        int
	FingerPicking     int
	PickDirection     int
	DoubleStops       int
	PalmMutes         int
	Harmonics         int
	PinchHarmonics    int
	Hopo              int
	Tremolo           int
	Slides            int
	UnpitchedSlides   int
	Bends             int
	Tapping           int
	Vibrato           int
	FretHandMutes     int
	SlapPop           int
	TwoFingerPicking  int
	FifthsAndOctaves  int
	Syncopation       int
	BassPick          int
	Sustain           int
	PathLead          int
	PathRhythm        int
	PathBass          int
}

// Metadata carries the display fields a song manifest may provide. Absent or
// mistyped fields keep their zero values; consumers treat zero as "not
// provided".
type Metadata struct {
	Title          string
	Arrangement    string
	CentOffset     float32
	SongNameSort   string
	AverageTempo   float32
	ArtistName     string
	ArtistNameSort string
	AlbumName      string
	AlbumNameSort  string
	AlbumYear      int
	ToneBase       string
	ToneNames      [4]string
	Properties     ArrangementProperties
}

// Parse decodes one manifest blob. Malformed JSON, a missing Entries block or
// a missing Attributes object all yield the zero Metadata - never an error.
func Parse(data []byte) Metadata {
	var m Metadata

	// Packers emit these through Windows tooling; a UTF-8 BOM is common and
	// hand-edited community files pick up comments and trailing commas.
	if stripped, err := unicode.UTF8BOM.NewDecoder().Bytes(data); err == nil {
		data = stripped
	}
	var root map[string]json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON(data), &root); err != nil {
		return m
	}

	attrs := resolveAttributes(root)
	if attrs == nil {
		return m
	}

	m.Title = stringField(attrs, "SongName", "songName")
	m.Arrangement = stringField(attrs, "ArrangementName", "arrangementName")
	m.CentOffset = floatField(attrs, "CentOffset", "centOffset")
	m.SongNameSort = stringField(attrs, "SongNameSort", "songNameSort")
	m.AverageTempo = floatField(attrs, "SongAverageTempo", "songAverageTempo")
	m.ArtistName = stringField(attrs, "ArtistName", "artistName")
	m.ArtistNameSort = stringField(attrs, "ArtistNameSort", "artistNameSort")
	m.AlbumName = stringField(attrs, "AlbumName", "albumName")
	m.AlbumNameSort = stringField(attrs, "AlbumNameSort", "albumNameSort")
	m.AlbumYear = intField(attrs, "SongYear", "songYear")
	m.ToneBase = stringField(attrs, "Tone_Base", "toneBase")
	m.ToneNames[0] = stringField(attrs, "Tone_A", "toneA")
	m.ToneNames[1] = stringField(attrs, "Tone_B", "toneB")
	m.ToneNames[2] = stringField(attrs, "Tone_C", "toneC")
	m.ToneNames[3] = stringField(attrs, "Tone_D", "toneD")

	if raw := findKey(attrs, "ArrangementProperties", "arrangementProperties"); raw != nil {
		var props map[string]json.RawMessage
		if json.Unmarshal(raw, &props) == nil && props != nil {
			m.Properties = parseProperties(props)
		}
	}
	return m
}

// IsLikelyManifest reports whether an archive member path looks like a song
// metadata manifest.
func IsLikelyManifest(path string) bool {
	return strings.HasSuffix(path, ".json") && strings.Contains(path, "songs_dlc_")
}

// resolveAttributes walks root -> Entries -> first entry in sorted key order
// -> Attributes. Each level tolerates either key casing; anything missing or
// mistyped resolves to nil.
func resolveAttributes(root map[string]json.RawMessage) map[string]json.RawMessage {
	entriesRaw := findKey(root, "Entries", "entries")
	if entriesRaw == nil {
		return nil
	}
	var entries map[string]json.RawMessage
	if json.Unmarshal(entriesRaw, &entries) != nil || len(entries) == 0 {
		return nil
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var first map[string]json.RawMessage
	if json.Unmarshal(entries[keys[0]], &first) != nil {
		return nil
	}
	attrsRaw := findKey(first, "Attributes", "attributes")
	if attrsRaw == nil {
		return nil
	}
	var attrs map[string]json.RawMessage
	if json.Unmarshal(attrsRaw, &attrs) != nil || attrs == nil {
		return nil
	}
	return attrs
}

// findKey returns the first of keys present in obj. Manifests in the wild mix
// Pascal and camel casing for the same fields.
func findKey(obj map[string]json.RawMessage, keys ...string) json.RawMessage {
	for _, k := range keys {
		if v, ok := obj[k]; ok {
			return v
		}
	}
	return nil
}

func stringField(obj map[string]json.RawMessage, keys ...string) string {
	raw := findKey(obj, keys...)
	if raw == nil {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func floatField(obj map[string]json.RawMessage, keys ...string) float32 {
	raw := findKey(obj, keys...)
	if raw == nil {
		return 0
	}
	var f float64
	if json.Unmarshal(raw, &f) != nil {
		return 0
	}
	return float32(f)
}

// intField truncates fractional values toward zero rather than rejecting
// them; year fields show up as floats in some manifests.
func intField(obj map[string]json.RawMessage, keys ...string) int {
	raw := findKey(obj, keys...)
	if raw == nil {
		return 0
	}
	var f float64
	if json.Unmarshal(raw, &f) != nil {
		return 0
	}
	return int(f)
}

func parseProperties(props map[string]json.RawMessage) ArrangementProperties {
	return ArrangementProperties{
		Represent:         intField(props, "represent"),
		BonusArr:          intField(props, "bonusArr"),
		StandardTuning:    intField(props, "standardTuning"),
		NonStandardChords: intField(props, "nonStandardChords"),
		BarreChords:       intField(props, "barreChords"),
		PowerChords:       intField(props, "powerChords"),
		DropDPower:        intField(props, "dropDPower"),
		OpenChords:        intField(props, "openChords"),
		FingerPicking:     intField(props, "fingerPicking"),
		PickDirection:     intField(props, "pickDirection"),
		DoubleStops:       intField(props, "doubleStops"),
		PalmMutes:         intField(props, "palmMutes"),
		Harmonics:         intField(props, "harmonics"),
		PinchHarmonics:    intField(props, "pinchHarmonics"),
		Hopo:              intField(props, "hopo"),
		Tremolo:           intField(props, "tremolo"),
		Slides:            intField(props, "slides"),
		UnpitchedSlides:   intField(props, "unpitchedSlides"),
		Bends:             intField(props, "bends"),
		Tapping:           intField(props, "tapping"),
		Vibrato:           intField(props, "vibrato"),
		FretHandMutes:     intField(props, "fretHandMutes"),
		SlapPop:           intField(props, "slapPop"),
		TwoFingerPicking:  intField(props, "twoFingerPicking"),
		FifthsAndOctaves:  intField(props, "fifthsAndOctaves"),
		Syncopation:       intField(props, "syncopation"),
		BassPick:          intField(props, "bassPick"),
		Sustain:           intField(props, "sustain"),
		PathLead:          intField(props, "pathLead"),
		PathRhythm:        intField(props, "pathRhythm"),
		PathBass:          intField(props, "pathBass"),
	}
}
