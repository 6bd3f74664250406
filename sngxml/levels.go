package sngxml

import (
	"math"
	"sort"

	"github.com/beevik/etree"

	"github.com/openfret/psarckit/sng"
)

func writeLevels(root *etree.Element, song *sng.Song) {
	levels := root.CreateElement("levels")
	setInt(levels, "count", len(song.Arrangements))
	for i := range song.Arrangements {
		arr := &song.Arrangements[i]
		level := levels.CreateElement("level")
		setInt(level, "difficulty", int(arr.Difficulty))

		var singles, chords []*sng.Note
		for j := range arr.Notes {
			n := &arr.Notes[j]
			if n.ChordID >= 0 && has(n.Mask, sng.NoteMaskChord) {
				chords = append(chords, n)
			} else {
				singles = append(singles, n)
			}
		}

		writeNotes(level, singles)
		writeChords(level, song, chords)
		writeAnchors(level, arr.Anchors)
		writeHandShapes(level, arr)
	}
}

func writeNotes(level *etree.Element, notes []*sng.Note) {
	node := level.CreateElement("notes")
	setInt(node, "count", len(notes))
	for _, n := range notes {
		el := node.CreateElement("note")
		setFloat(el, "time", n.Time)
		setInt(el, "string", int(n.String))
		setInt(el, "fret", int(n.Fret))
		if n.Sustain > 0 {
			setFloat(el, "sustain", n.Sustain)
		}
		writeNoteFlags(el, n)
		writeBendValues(el, n.BendValues)
	}
}

func writeChords(level *etree.Element, song *sng.Song, chords []*sng.Note) {
	node := level.CreateElement("chords")
	setInt(node, "count", len(chords))
	for _, n := range chords {
		el := node.CreateElement("chord")
		setFloat(el, "time", n.Time)
		setInt(el, "chordId", int(n.ChordID))
		if has(n.Mask, sng.NoteMaskParent) {
			setFlag(el, "linkNext")
		}
		if has(n.Mask, sng.NoteMaskAccent) {
			setFlag(el, "accent")
		}
		if has(n.Mask, sng.NoteMaskFretHandMute) {
			setFlag(el, "fretHandMute")
		}
		if has(n.Mask, sng.NoteMaskHighDensity) {
			setFlag(el, "highDensity")
		}
		if has(n.Mask, sng.NoteMaskIgnore) {
			setFlag(el, "ignore")
		}
		if has(n.Mask, sng.NoteMaskPalmMute) {
			setFlag(el, "palmMute")
		}
		if has(n.Mask, sng.NoteMaskHammerOn) || has(n.Mask, sng.NoteMaskPullOff) {
			setFlag(el, "hopo")
		}
		if has(n.Mask, sng.NoteMaskChordPanel) {
			for s := 0; s < 6; s++ {
				writeChordNote(el, song, n, s)
			}
		}
	}
}

// writeNoteFlags emits the optional note attributes in the fixed order the
// arrangement format uses.
func writeNoteFlags(el *etree.Element, n *sng.Note) {
	if has(n.Mask, sng.NoteMaskParent) {
		setFlag(el, "linkNext")
	}
	if has(n.Mask, sng.NoteMaskAccent) {
		setFlag(el, "accent")
	}
	if len(n.BendValues) > 0 {
		el.CreateAttr("bend", formatPlainFloat(n.MaxBend))
	}
	if has(n.Mask, sng.NoteMaskHammerOn) {
		setFlag(el, "hammerOn")
	}
	if has(n.Mask, sng.NoteMaskHarmonic) {
		setFlag(el, "harmonic")
	}
	if has(n.Mask, sng.NoteMaskHammerOn) || has(n.Mask, sng.NoteMaskPullOff) {
		setFlag(el, "hopo")
	}
	if has(n.Mask, sng.NoteMaskIgnore) {
		setFlag(el, "ignore")
	}
	if n.LeftHand >= 0 {
		setInt(el, "leftHand", int(n.LeftHand))
	}
	if has(n.Mask, sng.NoteMaskMute) {
		setFlag(el, "mute")
	}
	if has(n.Mask, sng.NoteMaskPalmMute) {
		setFlag(el, "palmMute")
	}
	if has(n.Mask, sng.NoteMaskPluck) {
		setFlag(el, "pluck")
	}
	if has(n.Mask, sng.NoteMaskPullOff) {
		setFlag(el, "pullOff")
	}
	if has(n.Mask, sng.NoteMaskSlap) {
		setFlag(el, "slap")
	}
	if has(n.Mask, sng.NoteMaskSlide) && n.SlideTo >= 0 {
		setInt(el, "slideTo", int(n.SlideTo))
	}
	if has(n.Mask, sng.NoteMaskTremolo) {
		setFlag(el, "tremolo")
	}
	if has(n.Mask, sng.NoteMaskPinchHarmonic) {
		setFlag(el, "harmonicPinch")
	}
	if n.PickDirection > 0 {
		setFlag(el, "pickDirection")
	}
	if has(n.Mask, sng.NoteMaskRightHand) {
		setFlag(el, "rightHand")
	}
	if has(n.Mask, sng.NoteMaskSlideUnpitchedTo) && n.SlideUnpitchTo >= 0 {
		setInt(el, "slideUnpitchTo", int(n.SlideUnpitchTo))
	}
	if has(n.Mask, sng.NoteMaskTap) {
		setInt(el, "tap", max(0, int(n.Tap)))
	}
	if has(n.Mask, sng.NoteMaskVibrato) && n.Vibrato > 0 {
		setInt(el, "vibrato", int(n.Vibrato))
	}
}

// writeChordNote renders one string of a panel chord from its template,
// layered with the per-string articulation record when the chord has one.
func writeChordNote(chord *etree.Element, song *sng.Song, n *sng.Note, s int) {
	if n.ChordID < 0 || int(n.ChordID) >= len(song.Chords) {
		return
	}
	tpl := &song.Chords[n.ChordID]
	if tpl.Frets[s] < 0 {
		return
	}

	cn := chord.CreateElement("chordNote")
	setFloat(cn, "time", n.Time)
	setInt(cn, "string", s)
	setInt(cn, "fret", int(tpl.Frets[s]))
	if n.Sustain > 0 {
		setFloat(cn, "sustain", n.Sustain)
	}

	// 0xFF is the unset marker; any other byte is a finger number.
	leftHand := -1
	if raw := uint8(tpl.Fingers[s]); raw != 0xFF {
		leftHand = int(raw)
	}

	if n.ChordNotesID < 0 || int(n.ChordNotesID) >= len(song.ChordNotes) {
		if leftHand != -1 {
			setInt(cn, "leftHand", leftHand)
		}
		return
	}

	data := &song.ChordNotes[n.ChordNotesID]
	mask := data.NoteMask[s]
	if has(mask, sng.NoteMaskParent) {
		setFlag(cn, "linkNext")
	}
	if has(mask, sng.NoteMaskAccent) {
		setFlag(cn, "accent")
	}
	if len(data.BendData[s].BendValues) > 0 {
		cn.CreateAttr("bend", "0")
	}
	if has(mask, sng.NoteMaskHammerOn) {
		setFlag(cn, "hammerOn")
	}
	if has(mask, sng.NoteMaskHarmonic) {
		setFlag(cn, "harmonic")
	}
	if has(mask, sng.NoteMaskHammerOn) || has(mask, sng.NoteMaskPullOff) {
		setFlag(cn, "hopo")
	}
	if has(mask, sng.NoteMaskIgnore) {
		setFlag(cn, "ignore")
	}
	if leftHand != -1 {
		setInt(cn, "leftHand", leftHand)
	}
	if has(mask, sng.NoteMaskMute) {
		setFlag(cn, "mute")
	}
	if has(mask, sng.NoteMaskPalmMute) {
		setFlag(cn, "palmMute")
	}
	if has(mask, sng.NoteMaskPluck) {
		setFlag(cn, "pluck")
	}
	if has(mask, sng.NoteMaskPullOff) {
		setFlag(cn, "pullOff")
	}
	if has(mask, sng.NoteMaskSlap) {
		setFlag(cn, "slap")
	}
	if has(mask, sng.NoteMaskSlide) && data.SlideTo[s] >= 0 {
		setInt(cn, "slideTo", int(data.SlideTo[s]))
	}
	if has(mask, sng.NoteMaskTremolo) {
		setFlag(cn, "tremolo")
	}
	if has(mask, sng.NoteMaskPinchHarmonic) {
		setFlag(cn, "harmonicPinch")
	}
	if has(mask, sng.NoteMaskRightHand) {
		setFlag(cn, "rightHand")
	}
	if has(mask, sng.NoteMaskSlideUnpitchedTo) && data.SlideUnpitchTo[s] >= 0 {
		setInt(cn, "slideUnpitchTo", int(data.SlideUnpitchTo[s]))
	}
	if has(mask, sng.NoteMaskVibrato) && data.Vibrato[s] > 0 {
		setInt(cn, "vibrato", int(data.Vibrato[s]))
	}

	writeBendValues(cn, data.BendData[s].BendValues)
}

func writeBendValues(parent *etree.Element, bends []sng.BendValue) {
	if len(bends) == 0 {
		return
	}
	node := parent.CreateElement("bendValues")
	setInt(node, "count", len(bends))
	for i := range bends {
		b := &bends[i]
		el := node.CreateElement("bendValue")
		setFloat(el, "time", b.Time)
		if math.Abs(float64(b.Step)) > 0.000001 {
			setFloat(el, "step", b.Step)
		}
	}
}

func writeAnchors(level *etree.Element, anchors []sng.Anchor) {
	node := level.CreateElement("anchors")
	setInt(node, "count", len(anchors))
	for i := range anchors {
		a := &anchors[i]
		el := node.CreateElement("anchor")
		setFloat(el, "time", a.StartTime)
		setInt(el, "fret", int(a.Fret))
		el.CreateAttr("width", formatFloat(float32(a.Width)))
	}
}

// writeHandShapes merges the plain and arpeggio fingerprint lists into one
// time-ordered handShapes block.
func writeHandShapes(level *etree.Element, arr *sng.Arrangement) {
	type span struct {
		chordID int32
		start   float32
		end     float32
	}
	shapes := make([]span, 0, len(arr.FingerprintsHandshape)+len(arr.FingerprintsArpeggio))
	for i := range arr.FingerprintsHandshape {
		fp := &arr.FingerprintsHandshape[i]
		shapes = append(shapes, span{fp.ChordID, fp.StartTime, fp.EndTime})
	}
	for i := range arr.FingerprintsArpeggio {
		fp := &arr.FingerprintsArpeggio[i]
		shapes = append(shapes, span{fp.ChordID, fp.StartTime, fp.EndTime})
	}
	sort.SliceStable(shapes, func(i, j int) bool { return shapes[i].start < shapes[j].start })

	node := level.CreateElement("handShapes")
	setInt(node, "count", len(shapes))
	for _, hs := range shapes {
		el := node.CreateElement("handShape")
		setInt(el, "chordId", int(hs.chordID))
		setFloat(el, "startTime", hs.start)
		setFloat(el, "endTime", hs.end)
	}
}
