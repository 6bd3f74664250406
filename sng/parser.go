package sng

import (
	"errors"
	"fmt"

	"github.com/openfret/psarckit/internal/buf"
)

var (
	// ErrEmpty indicates a zero-length input.
	ErrEmpty = errors.New("sng: empty input")
	// ErrTrailingData indicates bytes left over after the metadata record; a
	// well-formed file is consumed exactly.
	ErrTrailingData = errors.New("sng: trailing bytes after final section")
)

// On-disk record widths. Counts are validated against these before any
// allocation, so a hostile count cannot outgrow the data behind it. Variable
// records use their minimum width.
const (
	bendValueSize        = 12
	bpmSize              = 16
	phraseSize           = 44
	chordSize            = 72
	chordNotesSize       = 2376
	vocalSize            = 60
	symbolsHeaderSize    = 32
	symbolsTextureSize   = 144
	symbolDefinitionSize = 44
	phraseIterationSize  = 24
	phraseExtraInfoSize  = 16
	linkedDiffMinSize    = 8
	actionSize           = 260
	eventSize            = 260
	toneSize             = 8
	dnaSize              = 8
	sectionSize          = 88
	anchorSize           = 28
	anchorExtensionSize  = 12
	fingerprintSize      = 20
	noteMinSize          = 67
	arrangementMinSize   = 36

	chordBendSlots = 32
)

// Parse decodes a decrypted, decompressed song-structure file. The input must
// be consumed exactly: any shortfall or surplus is an error, since a
// misaligned read poisons every later section.
func Parse(data []byte) (*Song, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	p := &parser{r: buf.NewReader(data)}
	s := &Song{}
	var err error

	if s.BPMs, err = p.readBPMs(); err != nil {
		return nil, err
	}
	if s.Phrases, err = p.readPhrases(); err != nil {
		return nil, err
	}
	if s.Chords, err = p.readChords(); err != nil {
		return nil, err
	}
	if s.ChordNotes, err = p.readChordNotes(); err != nil {
		return nil, err
	}
	if s.Vocals, err = p.readVocals(); err != nil {
		return nil, err
	}
	if len(s.Vocals) > 0 {
		if s.SymbolsHeaders, err = p.readSymbolsHeaders(); err != nil {
			return nil, err
		}
		if s.SymbolsTextures, err = p.readSymbolsTextures(); err != nil {
			return nil, err
		}
		if s.SymbolDefinitions, err = p.readSymbolDefinitions(); err != nil {
			return nil, err
		}
	}
	if s.PhraseIterations, err = p.readPhraseIterations(); err != nil {
		return nil, err
	}
	if s.PhraseExtraInfos, err = p.readPhraseExtraInfos(); err != nil {
		return nil, err
	}
	if s.LinkedDifficulties, err = p.readLinkedDifficulties(); err != nil {
		return nil, err
	}
	if s.Actions, err = p.readActions(); err != nil {
		return nil, err
	}
	if s.Events, err = p.readEvents(); err != nil {
		return nil, err
	}
	if s.Tones, err = p.readTones(); err != nil {
		return nil, err
	}
	if s.DNAs, err = p.readDNAs(); err != nil {
		return nil, err
	}
	if s.Sections, err = p.readSections(); err != nil {
		return nil, err
	}
	if s.Arrangements, err = p.readArrangements(); err != nil {
		return nil, err
	}
	if s.Metadata, err = p.readMetadata(); err != nil {
		return nil, err
	}

	if rem := p.r.Remaining(); rem != 0 {
		return nil, fmt.Errorf("%w: %d", ErrTrailingData, rem)
	}
	return s, nil
}

type parser struct {
	r *buf.Reader
}

// count reads a section's record count and bounds it against the remaining
// bytes at recSize per record.
func (p *parser) count(section string, recSize int) (int, error) {
	n := int(p.r.I32())
	if err := p.r.Err(); err != nil {
		return 0, fmt.Errorf("sng: %s count: %w", section, err)
	}
	if _, err := buf.CheckListBounds(p.r.Len(), p.r.Pos(), n, recSize); err != nil {
		return 0, fmt.Errorf("sng: %s: %w", section, err)
	}
	return n, nil
}

func (p *parser) finish(section string) error {
	if err := p.r.Err(); err != nil {
		return fmt.Errorf("sng: %s: %w", section, err)
	}
	return nil
}

func (p *parser) readBPMs() ([]BPM, error) {
	n, err := p.count("beat", bpmSize)
	if err != nil {
		return nil, err
	}
	out := make([]BPM, n)
	for i := range out {
		b := &out[i]
		b.Time = p.r.F32()
		b.Measure = p.r.I16()
		b.Beat = p.r.I16()
		b.PhraseIteration = p.r.I32()
		b.Mask = p.r.I32()
	}
	return out, p.finish("beat")
}

func (p *parser) readPhrases() ([]Phrase, error) {
	n, err := p.count("phrase", phraseSize)
	if err != nil {
		return nil, err
	}
	out := make([]Phrase, n)
	for i := range out {
		ph := &out[i]
		ph.Solo = p.r.U8()
		ph.Disparity = p.r.U8()
		ph.Ignore = p.r.U8()
		ph.Padding = p.r.U8()
		ph.MaxDifficulty = p.r.I32()
		ph.PhraseIterationLinks = p.r.I32()
		ph.Name = p.r.FixedString(32)
	}
	return out, p.finish("phrase")
}

func (p *parser) readChords() ([]Chord, error) {
	n, err := p.count("chord", chordSize)
	if err != nil {
		return nil, err
	}
	out := make([]Chord, n)
	for i := range out {
		c := &out[i]
		c.Mask = p.r.U32()
		for s := range c.Frets {
			c.Frets[s] = int8(p.r.U8()) // 0xFF unfretted reads as -1
		}
		for s := range c.Fingers {
			c.Fingers[s] = int8(p.r.U8())
		}
		for s := range c.Notes {
			c.Notes[s] = p.r.I32()
		}
		c.Name = p.r.FixedString(32)
	}
	return out, p.finish("chord")
}

func (p *parser) readBendValue() BendValue {
	var bv BendValue
	bv.Time = p.r.F32()
	bv.Step = p.r.F32()
	bv.Unk1 = p.r.I16()
	bv.Unk2 = p.r.U8()
	bv.Unk3 = p.r.U8()
	return bv
}

// readBendData decodes the fixed block of 32 bend slots plus used count and
// keeps only the used slots.
func (p *parser) readBendData() (BendData, error) {
	var bd BendData
	slots := make([]BendValue, chordBendSlots)
	for i := range slots {
		slots[i] = p.readBendValue()
	}
	bd.UsedCount = p.r.I32()
	if err := p.r.Err(); err != nil {
		return bd, err
	}
	if bd.UsedCount < 0 || bd.UsedCount > chordBendSlots {
		return bd, fmt.Errorf("bend used count %d out of range", bd.UsedCount)
	}
	bd.BendValues = slots[:bd.UsedCount]
	return bd, nil
}

func (p *parser) readChordNotes() ([]ChordNotes, error) {
	n, err := p.count("chord note", chordNotesSize)
	if err != nil {
		return nil, err
	}
	out := make([]ChordNotes, n)
	for i := range out {
		cn := &out[i]
		for s := range cn.NoteMask {
			cn.NoteMask[s] = p.r.U32()
		}
		for s := range cn.BendData {
			if cn.BendData[s], err = p.readBendData(); err != nil {
				return nil, fmt.Errorf("sng: chord note %d: %w", i, err)
			}
		}
		for s := range cn.SlideTo {
			cn.SlideTo[s] = p.r.I8()
		}
		for s := range cn.SlideUnpitchTo {
			cn.SlideUnpitchTo[s] = p.r.I8()
		}
		for s := range cn.Vibrato {
			cn.Vibrato[s] = p.r.I16()
		}
	}
	return out, p.finish("chord note")
}

func (p *parser) readVocals() ([]Vocal, error) {
	n, err := p.count("vocal", vocalSize)
	if err != nil {
		return nil, err
	}
	out := make([]Vocal, n)
	for i := range out {
		v := &out[i]
		v.Time = p.r.F32()
		v.Note = p.r.I32()
		v.Length = p.r.F32()
		v.Lyric = p.r.FixedString(48)
	}
	return out, p.finish("vocal")
}

func (p *parser) readSymbolsHeaders() ([]SymbolsHeader, error) {
	n, err := p.count("symbols header", symbolsHeaderSize)
	if err != nil {
		return nil, err
	}
	out := make([]SymbolsHeader, n)
	for i := range out {
		for j := range out[i].Unk {
			out[i].Unk[j] = p.r.I32()
		}
	}
	return out, p.finish("symbols header")
}

func (p *parser) readSymbolsTextures() ([]SymbolsTexture, error) {
	n, err := p.count("symbols texture", symbolsTextureSize)
	if err != nil {
		return nil, err
	}
	out := make([]SymbolsTexture, n)
	for i := range out {
		st := &out[i]
		st.Font = p.r.FixedString(128)
		st.FontPathLength = p.r.I32()
		st.Unk1 = p.r.I32()
		st.Width = p.r.I32()
		st.Height = p.r.I32()
	}
	return out, p.finish("symbols texture")
}

func (p *parser) readSymbolDefinitions() ([]SymbolDefinition, error) {
	n, err := p.count("symbol definition", symbolDefinitionSize)
	if err != nil {
		return nil, err
	}
	out := make([]SymbolDefinition, n)
	for i := range out {
		sd := &out[i]
		sd.Text = p.r.FixedString(12)
		for j := range sd.RectOuter {
			sd.RectOuter[j] = p.r.F32()
		}
		for j := range sd.RectInner {
			sd.RectInner[j] = p.r.F32()
		}
	}
	return out, p.finish("symbol definition")
}

func (p *parser) readPhraseIterations() ([]PhraseIteration, error) {
	n, err := p.count("phrase iteration", phraseIterationSize)
	if err != nil {
		return nil, err
	}
	out := make([]PhraseIteration, n)
	for i := range out {
		pi := &out[i]
		pi.PhraseID = p.r.I32()
		pi.StartTime = p.r.F32()
		pi.NextPhraseTime = p.r.F32()
		for j := range pi.Difficulty {
			pi.Difficulty[j] = p.r.I32()
		}
	}
	return out, p.finish("phrase iteration")
}

func (p *parser) readPhraseExtraInfos() ([]PhraseExtraInfo, error) {
	n, err := p.count("phrase extra info", phraseExtraInfoSize)
	if err != nil {
		return nil, err
	}
	out := make([]PhraseExtraInfo, n)
	for i := range out {
		pe := &out[i]
		pe.PhraseID = p.r.I32()
		pe.Difficulty = p.r.I32()
		pe.Empty = p.r.I32()
		pe.LevelJump = p.r.U8()
		pe.Redundant = p.r.I16()
		pe.Padding = p.r.U8()
	}
	return out, p.finish("phrase extra info")
}

func (p *parser) readLinkedDifficulties() ([]LinkedDifficulty, error) {
	n, err := p.count("linked difficulty", linkedDiffMinSize)
	if err != nil {
		return nil, err
	}
	out := make([]LinkedDifficulty, n)
	for i := range out {
		ld := &out[i]
		ld.LevelBreak = p.r.I32()
		pc := int(p.r.I32())
		if err := p.r.Err(); err != nil {
			return nil, fmt.Errorf("sng: linked difficulty %d: %w", i, err)
		}
		if _, err := buf.CheckListBounds(p.r.Len(), p.r.Pos(), pc, 4); err != nil {
			return nil, fmt.Errorf("sng: linked difficulty %d: %w", i, err)
		}
		ld.Phrases = make([]int32, pc)
		for j := range ld.Phrases {
			ld.Phrases[j] = p.r.I32()
		}
	}
	return out, p.finish("linked difficulty")
}

func (p *parser) readActions() ([]Action, error) {
	n, err := p.count("action", actionSize)
	if err != nil {
		return nil, err
	}
	out := make([]Action, n)
	for i := range out {
		out[i].Time = p.r.F32()
		out[i].Name = p.r.FixedString(256)
	}
	return out, p.finish("action")
}

func (p *parser) readEvents() ([]Event, error) {
	n, err := p.count("event", eventSize)
	if err != nil {
		return nil, err
	}
	out := make([]Event, n)
	for i := range out {
		out[i].Time = p.r.F32()
		out[i].Name = p.r.FixedString(256)
	}
	return out, p.finish("event")
}

func (p *parser) readTones() ([]Tone, error) {
	n, err := p.count("tone", toneSize)
	if err != nil {
		return nil, err
	}
	out := make([]Tone, n)
	for i := range out {
		out[i].Time = p.r.F32()
		out[i].ID = p.r.I32()
	}
	return out, p.finish("tone")
}

func (p *parser) readDNAs() ([]DNA, error) {
	n, err := p.count("dna", dnaSize)
	if err != nil {
		return nil, err
	}
	out := make([]DNA, n)
	for i := range out {
		out[i].Time = p.r.F32()
		out[i].ID = p.r.I32()
	}
	return out, p.finish("dna")
}

func (p *parser) readSections() ([]Section, error) {
	n, err := p.count("section", sectionSize)
	if err != nil {
		return nil, err
	}
	out := make([]Section, n)
	for i := range out {
		sec := &out[i]
		sec.Name = p.r.FixedString(32)
		sec.Number = p.r.I32()
		sec.StartTime = p.r.F32()
		sec.EndTime = p.r.F32()
		sec.StartPhraseIterationIndex = p.r.I32()
		sec.EndPhraseIterationIndex = p.r.I32()
		copy(sec.StringMask[:], p.r.Bytes(36))
	}
	return out, p.finish("section")
}

func (p *parser) readNote() (Note, error) {
	var nt Note
	nt.Mask = p.r.U32()
	nt.Flags = p.r.U32()
	nt.Hash = p.r.U32()
	nt.Time = p.r.F32()
	nt.String = p.r.I8()
	nt.Fret = p.r.I8()
	nt.AnchorFret = p.r.I8()
	nt.AnchorWidth = p.r.I8()
	nt.ChordID = p.r.I32()
	nt.ChordNotesID = p.r.I32()
	nt.PhraseID = p.r.I32()
	nt.PhraseIterationID = p.r.I32()
	nt.FingerprintID[0] = p.r.I16()
	nt.FingerprintID[1] = p.r.I16()
	nt.NextIteration = p.r.I16()
	nt.PrevIteration = p.r.I16()
	nt.ParentPrevNote = p.r.I16()
	nt.SlideTo = p.r.I8()
	nt.SlideUnpitchTo = p.r.I8()
	nt.LeftHand = p.r.I8()
	nt.Tap = p.r.I8()
	nt.PickDirection = p.r.I8()
	nt.Slap = p.r.I8()
	nt.Pluck = p.r.I8()
	nt.Vibrato = p.r.I16()
	nt.Sustain = p.r.F32()
	nt.MaxBend = p.r.F32()

	bendCount := int(p.r.I32())
	if err := p.r.Err(); err != nil {
		return nt, err
	}
	if _, err := buf.CheckListBounds(p.r.Len(), p.r.Pos(), bendCount, bendValueSize); err != nil {
		return nt, err
	}
	nt.BendValues = make([]BendValue, bendCount)
	for i := range nt.BendValues {
		nt.BendValues[i] = p.readBendValue()
	}
	return nt, nil
}

func (p *parser) readFingerprints(arr int, kind string) ([]Fingerprint, error) {
	c := int(p.r.I32())
	if err := p.r.Err(); err != nil {
		return nil, fmt.Errorf("sng: arrangement %d: %s count: %w", arr, kind, err)
	}
	if _, err := buf.CheckListBounds(p.r.Len(), p.r.Pos(), c, fingerprintSize); err != nil {
		return nil, fmt.Errorf("sng: arrangement %d: %s: %w", arr, kind, err)
	}
	out := make([]Fingerprint, c)
	for i := range out {
		fp := &out[i]
		fp.ChordID = p.r.I32()
		fp.StartTime = p.r.F32()
		fp.EndTime = p.r.F32()
		fp.Unk1 = p.r.F32()
		fp.Unk2 = p.r.F32()
	}
	return out, nil
}

func (p *parser) readIntList(arr int, kind string, width int) (int, error) {
	c := int(p.r.I32())
	if err := p.r.Err(); err != nil {
		return 0, fmt.Errorf("sng: arrangement %d: %s count: %w", arr, kind, err)
	}
	if _, err := buf.CheckListBounds(p.r.Len(), p.r.Pos(), c, width); err != nil {
		return 0, fmt.Errorf("sng: arrangement %d: %s: %w", arr, kind, err)
	}
	return c, nil
}

func (p *parser) readArrangements() ([]Arrangement, error) {
	n, err := p.count("arrangement", arrangementMinSize)
	if err != nil {
		return nil, err
	}
	out := make([]Arrangement, n)
	for i := range out {
		a := &out[i]
		a.Difficulty = p.r.I32()

		ac, err := p.readIntList(i, "anchor", anchorSize)
		if err != nil {
			return nil, err
		}
		a.Anchors = make([]Anchor, ac)
		for j := range a.Anchors {
			an := &a.Anchors[j]
			an.StartTime = p.r.F32()
			an.EndTime = p.r.F32()
			an.Unk1 = p.r.F32()
			an.Unk2 = p.r.F32()
			an.Fret = p.r.I32()
			an.Width = p.r.I32()
			an.PhraseIterationIndex = p.r.I32()
		}

		ec, err := p.readIntList(i, "anchor extension", anchorExtensionSize)
		if err != nil {
			return nil, err
		}
		a.AnchorExtensions = make([]AnchorExtension, ec)
		for j := range a.AnchorExtensions {
			ae := &a.AnchorExtensions[j]
			ae.BeatTime = p.r.F32()
			ae.Fret = p.r.I8()
			ae.Unk2 = p.r.I32()
			ae.Unk3 = p.r.I16()
			ae.Unk4 = p.r.I8()
		}

		// Hand shapes come before arpeggios in the stream.
		if a.FingerprintsHandshape, err = p.readFingerprints(i, "hand shape"); err != nil {
			return nil, err
		}
		if a.FingerprintsArpeggio, err = p.readFingerprints(i, "arpeggio"); err != nil {
			return nil, err
		}

		nc, err := p.readIntList(i, "note", noteMinSize)
		if err != nil {
			return nil, err
		}
		a.Notes = make([]Note, nc)
		for j := range a.Notes {
			if a.Notes[j], err = p.readNote(); err != nil {
				return nil, fmt.Errorf("sng: arrangement %d: note %d: %w", i, j, err)
			}
		}

		pc, err := p.readIntList(i, "phrase average", 4)
		if err != nil {
			return nil, err
		}
		a.AverageNotesPerIteration = make([]float32, pc)
		for j := range a.AverageNotesPerIteration {
			a.AverageNotesPerIteration[j] = p.r.F32()
		}

		c1, err := p.readIntList(i, "iteration note count", 4)
		if err != nil {
			return nil, err
		}
		a.NotesInIteration1 = make([]int32, c1)
		for j := range a.NotesInIteration1 {
			a.NotesInIteration1[j] = p.r.I32()
		}

		c2, err := p.readIntList(i, "iteration note count", 4)
		if err != nil {
			return nil, err
		}
		a.NotesInIteration2 = make([]int32, c2)
		for j := range a.NotesInIteration2 {
			a.NotesInIteration2[j] = p.r.I32()
		}
	}
	return out, p.finish("arrangement")
}

func (p *parser) readMetadata() (Metadata, error) {
	var m Metadata
	m.MaxScore = p.r.F64()
	m.MaxNotesAndChords = p.r.F64()
	m.MaxNotesAndChordsReal = p.r.F64()
	m.PointsPerNote = p.r.F64()
	m.FirstBeatLength = p.r.F32()
	m.StartTime = p.r.F32()
	m.CapoFret = p.r.I8()
	m.LastConversionDateTime = p.r.FixedString(32)
	m.Part = p.r.I16()
	m.SongLength = p.r.F32()

	sc := int(p.r.I32())
	if err := p.r.Err(); err != nil {
		return m, fmt.Errorf("sng: metadata: %w", err)
	}
	if _, err := buf.CheckListBounds(p.r.Len(), p.r.Pos(), sc, 2); err != nil {
		return m, fmt.Errorf("sng: metadata tuning: %w", err)
	}
	m.Tuning = make([]int16, sc)
	for i := range m.Tuning {
		m.Tuning[i] = p.r.I16()
	}

	m.FirstNoteTime = p.r.F32()
	m.FirstNoteTime2 = p.r.F32()
	m.MaxDifficulty = p.r.I32()
	return m, p.finish("metadata")
}
