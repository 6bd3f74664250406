package sngxml

import (
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"

	"github.com/openfret/psarckit/manifest"
	"github.com/openfret/psarckit/sng"
)

func render(t *testing.T, song *sng.Song, meta *manifest.Metadata) *etree.Document {
	t.Helper()
	out, err := Marshal(song, meta)
	require.NoError(t, err)
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	return doc
}

func attrKeys(el *etree.Element) []string {
	keys := make([]string, 0, len(el.Attr))
	for _, a := range el.Attr {
		keys = append(keys, a.Key)
	}
	return keys
}

func childTags(el *etree.Element) []string {
	children := el.ChildElements()
	tags := make([]string, 0, len(children))
	for _, c := range children {
		tags = append(tags, c.Tag)
	}
	return tags
}

func TestMarshalVocalsRoot(t *testing.T) {
	song := &sng.Song{Vocals: []sng.Vocal{
		{Time: 1.5, Note: 254, Length: 0.25, Lyric: "hey+"},
		{Time: 2, Note: 255, Length: 0.5, Lyric: "oh"},
	}}

	doc := render(t, song, nil)
	require.Nil(t, doc.FindElement("/song"))

	root := doc.FindElement("/vocals")
	require.NotNil(t, root)
	require.Equal(t, "2", root.SelectAttrValue("count", ""))

	first := root.ChildElements()[0]
	require.Equal(t, "vocal", first.Tag)
	require.Equal(t, "1.500", first.SelectAttrValue("time", ""))
	require.Equal(t, "254", first.SelectAttrValue("note", ""))
	require.Equal(t, "0.250", first.SelectAttrValue("length", ""))
	require.Equal(t, "hey+", first.SelectAttrValue("lyric", ""))
}

func TestMarshalEmitsDeclaration(t *testing.T) {
	out, err := Marshal(&sng.Song{}, nil)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(out), `<?xml version="1.0" encoding="utf-8"?>`))
}

func TestMarshalInstrumentalChildOrder(t *testing.T) {
	doc := render(t, &sng.Song{}, nil)

	root := doc.FindElement("/song")
	require.NotNil(t, root)
	require.Equal(t, "8", root.SelectAttrValue("version", ""))

	require.Equal(t, []string{
		"title", "arrangement", "part", "offset", "centOffset", "songLength",
		"songNameSort", "startBeat", "averageTempo", "tuning", "capo",
		"artistName", "artistNameSort", "albumName", "albumNameSort",
		"albumYear", "crowdSpeed", "arrangementProperties",
		"lastConversionDateTime", "phrases", "phraseIterations",
		"newLinkedDiffs", "phraseProperties", "chordTemplates", "ebeats",
		"tones", "sections", "events", "transcriptionTrack", "levels",
	}, childTags(root))
}

func TestMarshalHeaderValues(t *testing.T) {
	song := &sng.Song{Metadata: sng.Metadata{
		Part:                   1,
		StartTime:              12.5,
		SongLength:             180.25,
		CapoFret:               -1,
		Tuning:                 []int16{0, 0, 0, 0, -2},
		LastConversionDateTime: "5-27-15 12:00",
	}}
	meta := &manifest.Metadata{
		Title:          "Fortunate Song",
		Arrangement:    "Lead",
		CentOffset:     -3.5,
		SongNameSort:   "fortunatesong",
		ArtistName:     "CCR",
		ArtistNameSort: "ccr",
		AlbumName:      "Willy",
		AlbumNameSort:  "willy",
		AlbumYear:      1970,
	}

	doc := render(t, song, meta)
	root := doc.FindElement("/song")

	require.Equal(t, "Fortunate Song", root.FindElement("title").Text())
	require.Equal(t, "Lead", root.FindElement("arrangement").Text())
	require.Equal(t, "1", root.FindElement("part").Text())
	require.Equal(t, "-12.500", root.FindElement("offset").Text())
	require.Equal(t, "-3.5", root.FindElement("centOffset").Text())
	require.Equal(t, "180.250", root.FindElement("songLength").Text())
	require.Equal(t, "12.500", root.FindElement("startBeat").Text())
	require.Equal(t, "1970", root.FindElement("albumYear").Text())
	require.Equal(t, "1", root.FindElement("crowdSpeed").Text())
	require.Equal(t, "5-27-15 12:00", root.FindElement("lastConversionDateTime").Text())

	// Negative capo values render as 0.
	require.Equal(t, "0", root.FindElement("capo").Text())

	tuning := root.FindElement("tuning")
	require.Equal(t, "0", tuning.SelectAttrValue("string0", ""))
	require.Equal(t, "-2", tuning.SelectAttrValue("string4", ""))
	require.Equal(t, "0", tuning.SelectAttrValue("string5", ""))
}

func TestMarshalAverageTempo(t *testing.T) {
	song := &sng.Song{}

	doc := render(t, song, nil)
	require.Equal(t, "120.000", doc.FindElement("/song/averageTempo").Text())

	doc = render(t, song, &manifest.Metadata{})
	require.Equal(t, "0.000", doc.FindElement("/song/averageTempo").Text())

	doc = render(t, song, &manifest.Metadata{AverageTempo: 133.7})
	require.Equal(t, "133.700", doc.FindElement("/song/averageTempo").Text())
}

func TestMarshalToneBankAndTones(t *testing.T) {
	song := &sng.Song{Tones: []sng.Tone{
		{Time: 1, ID: 0},
		{Time: 2, ID: 1},
		{Time: 3, ID: 7},
		{Time: 4, ID: -1},
	}}
	meta := &manifest.Metadata{
		ToneBase:  "base_tone",
		ToneNames: [4]string{"clean", "", "crunch", ""},
	}

	doc := render(t, song, meta)
	root := doc.FindElement("/song")

	require.Equal(t, "base_tone", root.FindElement("tonebase").Text())
	require.Equal(t, "clean", root.FindElement("tonea").Text())
	require.Nil(t, root.FindElement("toneb"))
	require.Equal(t, "crunch", root.FindElement("tonec").Text())
	require.Nil(t, root.FindElement("toned"))

	tones := root.FindElement("tones").ChildElements()
	require.Len(t, tones, 4)
	require.Equal(t, "clean", tones[0].SelectAttrValue("name", "missing"))
	require.Equal(t, "", tones[1].SelectAttrValue("name", "missing"))
	require.Equal(t, "N/A", tones[2].SelectAttrValue("name", "missing"))
	require.Equal(t, "N/A", tones[3].SelectAttrValue("name", "missing"))
	require.Equal(t, "1.000", tones[0].SelectAttrValue("time", ""))
	require.Equal(t, "-1", tones[3].SelectAttrValue("id", ""))
}

func TestMarshalTonesWithoutManifest(t *testing.T) {
	song := &sng.Song{Tones: []sng.Tone{{Time: 1, ID: 0}}}

	doc := render(t, song, nil)
	root := doc.FindElement("/song")

	require.Nil(t, root.FindElement("tonebase"))
	require.Equal(t, "N/A", root.FindElement("tones/tone").SelectAttrValue("name", ""))
}

func TestMarshalPhrases(t *testing.T) {
	song := &sng.Song{Phrases: []sng.Phrase{
		{Name: "intro", MaxDifficulty: 3, Solo: 1},
		{Name: "verse", MaxDifficulty: 5, Disparity: 1, Ignore: 2},
	}}

	doc := render(t, song, nil)
	phrases := doc.FindElement("/song/phrases")
	require.Equal(t, "2", phrases.SelectAttrValue("count", ""))

	els := phrases.ChildElements()
	require.Equal(t, []string{"maxDifficulty", "name", "solo"}, attrKeys(els[0]))
	require.Equal(t, "3", els[0].SelectAttrValue("maxDifficulty", ""))
	require.Equal(t, "intro", els[0].SelectAttrValue("name", ""))

	// ignore=2 is not the flag value and stays out.
	require.Equal(t, []string{"maxDifficulty", "name", "disparity"}, attrKeys(els[1]))
}

func TestMarshalHeroLevels(t *testing.T) {
	song := &sng.Song{PhraseIterations: []sng.PhraseIteration{
		{PhraseID: 0, StartTime: 10, Difficulty: [3]int32{0, 0, 0}},
		{PhraseID: 1, StartTime: 20, Difficulty: [3]int32{0, 2, 5}},
	}}

	doc := render(t, song, nil)
	its := doc.FindElement("/song/phraseIterations").ChildElements()

	require.Nil(t, its[0].FindElement("heroLevels"))

	hero := its[1].FindElement("heroLevels")
	require.NotNil(t, hero)
	require.Equal(t, "3", hero.SelectAttrValue("count", ""))
	lvls := hero.ChildElements()
	require.Len(t, lvls, 3)
	require.Equal(t, "1", lvls[0].SelectAttrValue("hero", ""))
	require.Equal(t, "0", lvls[0].SelectAttrValue("difficulty", ""))
	require.Equal(t, "3", lvls[2].SelectAttrValue("hero", ""))
	require.Equal(t, "5", lvls[2].SelectAttrValue("difficulty", ""))
}

func TestMarshalLinkedDiffs(t *testing.T) {
	song := &sng.Song{LinkedDifficulties: []sng.LinkedDifficulty{
		{LevelBreak: 7, Phrases: []int32{2, 4}},
	}}

	doc := render(t, song, nil)
	nld := doc.FindElement("/song/newLinkedDiffs/newLinkedDiff")
	require.Equal(t, "7", nld.SelectAttrValue("levelBreak", ""))
	require.Equal(t, "1.000", nld.SelectAttrValue("ratio", ""))
	require.Equal(t, "2", nld.SelectAttrValue("phraseCount", ""))

	ids := nld.ChildElements()
	require.Len(t, ids, 2)
	require.Equal(t, "nld_phrase", ids[0].Tag)
	require.Equal(t, "2", ids[0].SelectAttrValue("id", ""))
	require.Equal(t, "4", ids[1].SelectAttrValue("id", ""))
}

func TestMarshalChordTemplates(t *testing.T) {
	song := &sng.Song{Chords: []sng.Chord{
		{
			Name:    "E5",
			Mask:    0,
			Frets:   [6]int8{0, 2, -1, -1, -1, -1},
			Fingers: [6]int8{-1, 1, -1, -1, -1, -1},
		},
		{Name: "Am", Mask: 1},
		{Name: "D", Mask: 2},
	}}

	doc := render(t, song, nil)
	els := doc.FindElement("/song/chordTemplates").ChildElements()

	require.Equal(t, "E5", els[0].SelectAttrValue("chordName", ""))
	require.Equal(t, "E5", els[0].SelectAttrValue("displayName", ""))
	require.Equal(t, []string{"chordName", "displayName", "finger1", "fret0", "fret1"}, attrKeys(els[0]))
	require.Equal(t, "1", els[0].SelectAttrValue("finger1", ""))
	require.Equal(t, "0", els[0].SelectAttrValue("fret0", ""))
	require.Equal(t, "2", els[0].SelectAttrValue("fret1", ""))

	require.Equal(t, "Am-arp", els[1].SelectAttrValue("displayName", ""))
	require.Equal(t, "D-nop", els[2].SelectAttrValue("displayName", ""))
}

func TestMarshalEbeats(t *testing.T) {
	song := &sng.Song{BPMs: []sng.BPM{
		{Time: 10, Measure: 4, Mask: 1},
		{Time: 10.5, Measure: 4, Mask: 0},
	}}

	doc := render(t, song, nil)
	els := doc.FindElement("/song/ebeats").ChildElements()

	require.Equal(t, "4", els[0].SelectAttrValue("measure", ""))
	require.Nil(t, els[1].SelectAttr("measure"))
}

func TestMarshalSectionsAndEvents(t *testing.T) {
	song := &sng.Song{
		Sections: []sng.Section{{Name: "chorus", Number: 2, StartTime: 45.125}},
		Events:   []sng.Event{{Time: 1.25, Name: "B0"}},
	}

	doc := render(t, song, nil)

	section := doc.FindElement("/song/sections/section")
	require.Equal(t, "chorus", section.SelectAttrValue("name", ""))
	require.Equal(t, "2", section.SelectAttrValue("number", ""))
	require.Equal(t, "45.125", section.SelectAttrValue("startTime", ""))

	event := doc.FindElement("/song/events/event")
	require.Equal(t, "1.250", event.SelectAttrValue("time", ""))
	require.Equal(t, "B0", event.SelectAttrValue("code", ""))
}

func TestMarshalTranscriptionTrackStub(t *testing.T) {
	doc := render(t, &sng.Song{}, nil)

	tt := doc.FindElement("/song/transcriptionTrack")
	require.Equal(t, "-1", tt.SelectAttrValue("difficulty", ""))
	require.Equal(t, []string{"notes", "chords", "anchors", "handShapes"}, childTags(tt))
	for _, child := range tt.ChildElements() {
		require.Equal(t, "0", child.SelectAttrValue("count", ""))
	}
}

func TestMarshalSplitsNotesAndChords(t *testing.T) {
	song := &sng.Song{
		Chords: []sng.Chord{{Name: "E5"}},
		Arrangements: []sng.Arrangement{{
			Difficulty: 2,
			Notes: []sng.Note{
				{Time: 1, ChordID: 0, Mask: sng.NoteMaskChord},
				{Time: 2, ChordID: -1, Mask: sng.NoteMaskChord, String: 3, Fret: 5},
				{Time: 3, ChordID: 0, Mask: 0, String: 1, Fret: 7},
			},
		}},
	}

	doc := render(t, song, nil)
	levels := doc.FindElement("/song/levels")
	require.Equal(t, "1", levels.SelectAttrValue("count", ""))

	level := levels.FindElement("level")
	require.Equal(t, "2", level.SelectAttrValue("difficulty", ""))
	require.Equal(t, "2", level.FindElement("notes").SelectAttrValue("count", ""))
	require.Equal(t, "1", level.FindElement("chords").SelectAttrValue("count", ""))

	notes := level.FindElement("notes").ChildElements()
	require.Equal(t, "3", notes[0].SelectAttrValue("string", ""))
	require.Equal(t, "5", notes[0].SelectAttrValue("fret", ""))

	chord := level.FindElement("chords/chord")
	require.Equal(t, "1.000", chord.SelectAttrValue("time", ""))
	require.Equal(t, "0", chord.SelectAttrValue("chordId", ""))
}

func TestMarshalNoteFlags(t *testing.T) {
	note := sng.Note{
		Time:           5,
		String:         2,
		Fret:           9,
		ChordID:        -1,
		Sustain:        1.5,
		Mask:           sng.NoteMaskParent | sng.NoteMaskHammerOn | sng.NoteMaskSlide | sng.NoteMaskTap | sng.NoteMaskVibrato,
		SlideTo:        11,
		Tap:            -3,
		Vibrato:        80,
		PickDirection:  1,
		LeftHand:       2,
		SlideUnpitchTo: -1,
		MaxBend:        2.5,
		BendValues:     []sng.BendValue{{Time: 5.1, Step: 1}},
	}
	song := &sng.Song{Arrangements: []sng.Arrangement{{Notes: []sng.Note{note}}}}

	doc := render(t, song, nil)
	el := doc.FindElement("/song/levels/level/notes/note")

	require.Equal(t, []string{
		"time", "string", "fret", "sustain", "linkNext", "bend", "hammerOn",
		"hopo", "leftHand", "slideTo", "pickDirection", "tap", "vibrato",
	}, attrKeys(el))
	require.Equal(t, "2.5", el.SelectAttrValue("bend", ""))
	require.Equal(t, "11", el.SelectAttrValue("slideTo", ""))
	require.Equal(t, "0", el.SelectAttrValue("tap", ""))
	require.Equal(t, "80", el.SelectAttrValue("vibrato", ""))
	require.Equal(t, "1", el.SelectAttrValue("pickDirection", ""))
	require.Equal(t, "2", el.SelectAttrValue("leftHand", ""))

	bends := el.FindElement("bendValues")
	require.NotNil(t, bends)
	require.Equal(t, "1", bends.SelectAttrValue("count", ""))
}

func TestMarshalSlideToNeedsMaskAndValue(t *testing.T) {
	song := &sng.Song{Arrangements: []sng.Arrangement{{Notes: []sng.Note{
		{Time: 1, ChordID: -1, Mask: sng.NoteMaskSlide, SlideTo: -1},
		{Time: 2, ChordID: -1, SlideTo: 4},
	}}}}

	doc := render(t, song, nil)
	notes := doc.FindElement("/song/levels/level/notes").ChildElements()

	require.Nil(t, notes[0].SelectAttr("slideTo"))
	require.Nil(t, notes[1].SelectAttr("slideTo"))
}

func TestMarshalBendValueStepThreshold(t *testing.T) {
	song := &sng.Song{Arrangements: []sng.Arrangement{{Notes: []sng.Note{
		{Time: 1, ChordID: -1, BendValues: []sng.BendValue{
			{Time: 1.1, Step: 0.0000005},
			{Time: 1.2, Step: 0.5},
		}},
	}}}}

	doc := render(t, song, nil)
	bends := doc.FindElement("/song/levels/level/notes/note/bendValues").ChildElements()

	require.Len(t, bends, 2)
	require.Nil(t, bends[0].SelectAttr("step"))
	require.Equal(t, "0.500", bends[1].SelectAttrValue("step", ""))
}

func TestMarshalChordFlags(t *testing.T) {
	song := &sng.Song{
		Chords: []sng.Chord{{Name: "E5"}},
		Arrangements: []sng.Arrangement{{Notes: []sng.Note{{
			Time:    1,
			ChordID: 0,
			Mask: sng.NoteMaskChord | sng.NoteMaskFretHandMute |
				sng.NoteMaskHighDensity | sng.NoteMaskPullOff,
		}}}},
	}

	doc := render(t, song, nil)
	chord := doc.FindElement("/song/levels/level/chords/chord")

	require.Equal(t, []string{"time", "chordId", "fretHandMute", "highDensity", "hopo"}, attrKeys(chord))
	require.Empty(t, chord.ChildElements())
}

func TestMarshalChordNotesFromTemplate(t *testing.T) {
	song := &sng.Song{
		Chords: []sng.Chord{{
			Name:    "A5",
			Frets:   [6]int8{-1, 0, 2, -1, -1, -1},
			Fingers: [6]int8{-1, -1, 3, -1, -1, -1},
		}},
		ChordNotes: []sng.ChordNotes{{
			NoteMask: [6]uint32{0, sng.NoteMaskPullOff, 0, 0, 0, 0},
			BendData: [6]sng.BendData{
				{}, {BendValues: []sng.BendValue{{Time: 1.5, Step: 1}}}, {}, {}, {}, {},
			},
		}},
		Arrangements: []sng.Arrangement{{Notes: []sng.Note{{
			Time:         1,
			ChordID:      0,
			ChordNotesID: 0,
			Sustain:      2,
			Mask:         sng.NoteMaskChord | sng.NoteMaskChordPanel,
		}}}},
	}

	doc := render(t, song, nil)
	chord := doc.FindElement("/song/levels/level/chords/chord")
	chordNotes := chord.FindElements("chordNote")
	require.Len(t, chordNotes, 2)

	// String 1: fret from template, articulation from the chord-notes record.
	require.Equal(t, []string{
		"time", "string", "fret", "sustain", "bend", "hopo", "pullOff",
	}, attrKeys(chordNotes[0]))
	require.Equal(t, "1", chordNotes[0].SelectAttrValue("string", ""))
	require.Equal(t, "0", chordNotes[0].SelectAttrValue("fret", ""))
	require.Equal(t, "2.000", chordNotes[0].SelectAttrValue("sustain", ""))
	require.Equal(t, "0", chordNotes[0].SelectAttrValue("bend", ""))
	require.Equal(t, "1.500", chordNotes[0].FindElement("bendValues/bendValue").SelectAttrValue("time", ""))

	// String 2 carries the template finger.
	require.Equal(t, "2", chordNotes[1].SelectAttrValue("string", ""))
	require.Equal(t, "2", chordNotes[1].SelectAttrValue("fret", ""))
	require.Equal(t, "3", chordNotes[1].SelectAttrValue("leftHand", ""))
}

func TestMarshalChordNotesWithoutArticulation(t *testing.T) {
	song := &sng.Song{
		Chords: []sng.Chord{{
			Name:    "B",
			Frets:   [6]int8{2, -1, -1, -1, -1, -1},
			Fingers: [6]int8{1, -1, -1, -1, -1, -1},
		}},
		Arrangements: []sng.Arrangement{{Notes: []sng.Note{{
			Time:         1,
			ChordID:      0,
			ChordNotesID: -1,
			Mask:         sng.NoteMaskChord | sng.NoteMaskChordPanel,
		}}}},
	}

	doc := render(t, song, nil)
	cn := doc.FindElement("/song/levels/level/chords/chord/chordNote")
	require.NotNil(t, cn)
	require.Equal(t, []string{"time", "string", "fret", "leftHand"}, attrKeys(cn))
	require.Equal(t, "1", cn.SelectAttrValue("leftHand", ""))
}

func TestMarshalAnchors(t *testing.T) {
	song := &sng.Song{Arrangements: []sng.Arrangement{{
		Anchors: []sng.Anchor{{StartTime: 4.5, Fret: 7, Width: 4}},
	}}}

	doc := render(t, song, nil)
	anchor := doc.FindElement("/song/levels/level/anchors/anchor")

	require.Equal(t, "4.500", anchor.SelectAttrValue("time", ""))
	require.Equal(t, "7", anchor.SelectAttrValue("fret", ""))
	require.Equal(t, "4.000", anchor.SelectAttrValue("width", ""))
}

func TestMarshalHandShapesMergedAndSorted(t *testing.T) {
	song := &sng.Song{Arrangements: []sng.Arrangement{{
		FingerprintsHandshape: []sng.Fingerprint{{ChordID: 1, StartTime: 10, EndTime: 11}},
		FingerprintsArpeggio:  []sng.Fingerprint{{ChordID: 2, StartTime: 5, EndTime: 6}},
	}}}

	doc := render(t, song, nil)
	node := doc.FindElement("/song/levels/level/handShapes")
	require.Equal(t, "2", node.SelectAttrValue("count", ""))

	shapes := node.ChildElements()
	require.Equal(t, "2", shapes[0].SelectAttrValue("chordId", ""))
	require.Equal(t, "5.000", shapes[0].SelectAttrValue("startTime", ""))
	require.Equal(t, "6.000", shapes[0].SelectAttrValue("endTime", ""))
	require.Equal(t, "1", shapes[1].SelectAttrValue("chordId", ""))
}
