// Package sng decrypts and parses the binary song-structure files embedded
// in game archives under songs/bin/generic. A song file is AES-256-CTR
// encrypted with a fixed key and a per-file IV, usually zlib compressed
// inside, and carries eighteen little-endian sections in a fixed order:
//
//	beats, phrases, chords, chord notes, vocals,
//	[symbols headers, symbols textures, symbol definitions, only when
//	vocals are present,] phrase iterations, phrase extra info, linked
//	difficulties, actions, events, tones, dna markers, sections,
//	arrangements, metadata
//
// Every section is an int32 record count followed by that many records,
// except the trailing metadata, which is a single record that must end
// exactly at the last byte of the file.
package sng

// BendValue is one point on a string-bend envelope.
type BendValue struct {
	Time float32
	Step float32
	Unk1 int16
	Unk2 uint8
	Unk3 uint8
}

// BPM is one beat-grid entry.
type BPM struct {
	Time            float32
	Measure         int16
	Beat            int16
	PhraseIteration int32
	Mask            int32
}

// Phrase groups iterations under a shared difficulty ceiling.
type Phrase struct {
	Solo                 uint8
	Disparity            uint8
	Ignore               uint8
	Padding              uint8
	MaxDifficulty        int32
	PhraseIterationLinks int32
	Name                 string // 32-byte field
}

// Chord is a chord template. Frets and fingers store -1 for unused strings
// (0xFF on disk).
type Chord struct {
	Mask    uint32
	Frets   [6]int8
	Fingers [6]int8
	Notes   [6]int32
	Name    string // 32-byte field
}

// BendData is the per-string bend list of a ChordNotes record. On disk the
// list is a fixed block of 32 slots followed by the used count; only the
// used slots are kept.
type BendData struct {
	BendValues []BendValue
	UsedCount  int32
}

// ChordNotes carries per-string articulation for one chord instance.
type ChordNotes struct {
	NoteMask       [6]uint32
	BendData       [6]BendData
	SlideTo        [6]int8
	SlideUnpitchTo [6]int8
	Vibrato        [6]int16
}

// Vocal is one lyric event.
type Vocal struct {
	Time   float32
	Note   int32
	Length float32
	Lyric  string // 48-byte field
}

// SymbolsHeader indexes the lyric glyph atlas.
type SymbolsHeader struct {
	Unk [8]int32
}

// SymbolsTexture describes one glyph atlas page.
type SymbolsTexture struct {
	Font           string // 128-byte field
	FontPathLength int32
	Unk1           int32
	Width          int32
	Height         int32
}

// SymbolDefinition maps a lyric glyph to atlas rectangles.
type SymbolDefinition struct {
	Text      string // 12-byte field
	RectOuter [4]float32
	RectInner [4]float32
}

// PhraseIteration is one timed occurrence of a phrase.
type PhraseIteration struct {
	PhraseID       int32
	StartTime      float32
	NextPhraseTime float32
	Difficulty     [3]int32
}

// PhraseExtraInfo is auxiliary per-phrase data.
type PhraseExtraInfo struct {
	PhraseID   int32
	Difficulty int32
	Empty      int32
	LevelJump  uint8
	Redundant  int16
	Padding    uint8
}

// LinkedDifficulty links phrases that share a difficulty break.
type LinkedDifficulty struct {
	LevelBreak int32
	Phrases    []int32
}

// Action is a timed scripted action.
type Action struct {
	Time float32
	Name string // 256-byte field
}

// Event is a timed event code.
type Event struct {
	Time float32
	Name string // 256-byte field
}

// Tone switches the active tone preset.
type Tone struct {
	Time float32
	ID   int32
}

// DNA marks a section-type transition.
type DNA struct {
	Time float32
	ID   int32
}

// Section is one named song region.
type Section struct {
	Name                      string // 32-byte field
	Number                    int32
	StartTime                 float32
	EndTime                   float32
	StartPhraseIterationIndex int32
	EndPhraseIterationIndex   int32
	StringMask                [36]byte
}

// Anchor pins the fret hand to a position for a time span.
type Anchor struct {
	StartTime            float32
	EndTime              float32
	Unk1                 float32
	Unk2                 float32
	Fret                 int32
	Width                int32
	PhraseIterationIndex int32
}

// AnchorExtension prolongs an anchor across a beat boundary.
type AnchorExtension struct {
	BeatTime float32
	Fret     int8
	Unk2     int32
	Unk3     int16
	Unk4     int8
}

// Fingerprint is a hand-shape span referencing a chord template.
type Fingerprint struct {
	ChordID   int32
	StartTime float32
	EndTime   float32
	Unk1      float32
	Unk2      float32
}

// Note is a single played note or chord instance. Mask bits are the
// NoteMask* constants.
type Note struct {
	Mask              uint32
	Flags             uint32
	Hash              uint32
	Time              float32
	String            int8
	Fret              int8
	AnchorFret        int8
	AnchorWidth       int8
	ChordID           int32
	ChordNotesID      int32
	PhraseID          int32
	PhraseIterationID int32
	FingerprintID     [2]int16
	NextIteration     int16
	PrevIteration     int16
	ParentPrevNote    int16
	SlideTo           int8
	SlideUnpitchTo    int8
	LeftHand          int8
	Tap               int8
	PickDirection     int8
	Slap              int8
	Pluck             int8
	Vibrato           int16
	Sustain           float32
	MaxBend           float32
	BendValues        []BendValue
}

// Arrangement is one difficulty level: its anchors, hand shapes and notes.
// The stream stores hand-shape fingerprints before arpeggio fingerprints.
type Arrangement struct {
	Difficulty               int32
	Anchors                  []Anchor
	AnchorExtensions         []AnchorExtension
	FingerprintsHandshape    []Fingerprint
	FingerprintsArpeggio     []Fingerprint
	Notes                    []Note
	AverageNotesPerIteration []float32
	NotesInIteration1        []int32
	NotesInIteration2        []int32
}

// Metadata is the trailing song-wide record.
type Metadata struct {
	MaxScore               float64
	MaxNotesAndChords      float64
	MaxNotesAndChordsReal  float64
	PointsPerNote          float64
	FirstBeatLength        float32
	StartTime              float32
	CapoFret               int8
	LastConversionDateTime string // 32-byte field
	Part                   int16
	SongLength             float32
	Tuning                 []int16
	FirstNoteTime          float32
	FirstNoteTime2         float32
	MaxDifficulty          int32
}

// Song is a fully parsed song-structure file.
type Song struct {
	BPMs               []BPM
	Phrases            []Phrase
	Chords             []Chord
	ChordNotes         []ChordNotes
	Vocals             []Vocal
	SymbolsHeaders     []SymbolsHeader
	SymbolsTextures    []SymbolsTexture
	SymbolDefinitions  []SymbolDefinition
	PhraseIterations   []PhraseIteration
	PhraseExtraInfos   []PhraseExtraInfo
	LinkedDifficulties []LinkedDifficulty
	Actions            []Action
	Events             []Event
	Tones              []Tone
	DNAs               []DNA
	Sections           []Section
	Arrangements       []Arrangement
	Metadata           Metadata
}
