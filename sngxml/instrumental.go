package sngxml

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/openfret/psarckit/manifest"
	"github.com/openfret/psarckit/sng"
)

func writeInstrumental(doc *etree.Document, song *sng.Song, meta *manifest.Metadata) {
	root := doc.CreateElement("song")
	root.CreateAttr("version", "8")

	writeSongHeader(root, song, meta)
	writePhrases(root, song.Phrases)
	writePhraseIterations(root, song.PhraseIterations)
	writeLinkedDiffs(root, song.LinkedDifficulties)
	writePhraseProperties(root, song.PhraseExtraInfos)
	writeChordTemplates(root, song.Chords)
	writeEbeats(root, song.BPMs)
	writeToneBank(root, meta)
	writeTones(root, song.Tones, meta)
	writeSections(root, song.Sections)
	writeEvents(root, song.Events)
	writeTranscriptionTrack(root)
	writeLevels(root, song)
}

func writeSongHeader(root *etree.Element, song *sng.Song, meta *manifest.Metadata) {
	md := &song.Metadata

	var display manifest.Metadata
	if meta != nil {
		display = *meta
	}

	textChild(root, "title", display.Title)
	textChild(root, "arrangement", display.Arrangement)
	textChildInt(root, "part", int(md.Part))
	textChild(root, "offset", formatFloat(-md.StartTime))
	textChild(root, "centOffset", formatPlainFloat(display.CentOffset))
	textChild(root, "songLength", formatFloat(md.SongLength))
	textChild(root, "songNameSort", display.SongNameSort)
	textChild(root, "startBeat", formatFloat(md.StartTime))

	// No manifest at all means the historical 120 BPM placeholder; a
	// manifest without the field means 0.
	averageTempo := float32(120)
	if meta != nil {
		averageTempo = display.AverageTempo
	}
	textChild(root, "averageTempo", formatFloat(averageTempo))

	tuning := root.CreateElement("tuning")
	for i := 0; i < 6; i++ {
		var value int
		if i < len(md.Tuning) {
			value = int(md.Tuning[i])
		}
		setInt(tuning, fmt.Sprintf("string%d", i), value)
	}

	textChildInt(root, "capo", max(0, int(md.CapoFret)))
	textChild(root, "artistName", display.ArtistName)
	textChild(root, "artistNameSort", display.ArtistNameSort)
	textChild(root, "albumName", display.AlbumName)
	textChild(root, "albumNameSort", display.AlbumNameSort)
	textChildInt(root, "albumYear", display.AlbumYear)
	textChildInt(root, "crowdSpeed", 1)

	writeArrangementProperties(root, display.Properties)

	textChild(root, "lastConversionDateTime", md.LastConversionDateTime)
}

func writeArrangementProperties(root *etree.Element, p manifest.ArrangementProperties) {
	node := root.CreateElement("arrangementProperties")
	setInt(node, "represent", p.Represent)
	setInt(node, "bonusArr", p.BonusArr)
	setInt(node, "standardTuning", p.StandardTuning)
	setInt(node, "nonStandardChords", p.NonStandardChords)
	setInt(node, "barreChords", p.BarreChords)
	setInt(node, "powerChords", p.PowerChords)
	setInt(node, "dropDPower", p.DropDPower)
	setInt(node, "openChords", p.OpenChords)
	setInt(node, "fingerPicking", p.FingerPicking)
	setInt(node, "pickDirection", p.PickDirection)
	setInt(node, "doubleStops", p.DoubleStops)
	setInt(node, "palmMutes", p.PalmMutes)
	setInt(node, "harmonics", p.Harmonics)
	setInt(node, "pinchHarmonics", p.PinchHarmonics)
	setInt(node, "hopo", p.Hopo)
	setInt(node, "tremolo", p.Tremolo)
	setInt(node, "slides", p.Slides)
	setInt(node, "unpitchedSlides", p.UnpitchedSlides)
	setInt(node, "bends", p.Bends)
	setInt(node, "tapping", p.Tapping)
	setInt(node, "vibrato", p.Vibrato)
	setInt(node, "fretHandMutes", p.FretHandMutes)
	setInt(node, "slapPop", p.SlapPop)
	setInt(node, "twoFingerPicking", p.TwoFingerPicking)
	setInt(node, "fifthsAndOctaves", p.FifthsAndOctaves)
	setInt(node, "syncopation", p.Syncopation)
	setInt(node, "bassPick", p.BassPick)
	setInt(node, "sustain", p.Sustain)
	setInt(node, "pathLead", p.PathLead)
	setInt(node, "pathRhythm", p.PathRhythm)
	setInt(node, "pathBass", p.PathBass)
}

func writePhrases(root *etree.Element, phrases []sng.Phrase) {
	node := root.CreateElement("phrases")
	setInt(node, "count", len(phrases))
	for i := range phrases {
		p := &phrases[i]
		el := node.CreateElement("phrase")
		setInt(el, "maxDifficulty", int(p.MaxDifficulty))
		el.CreateAttr("name", p.Name)
		if p.Disparity == 1 {
			setFlag(el, "disparity")
		}
		if p.Ignore == 1 {
			setFlag(el, "ignore")
		}
		if p.Solo == 1 {
			setFlag(el, "solo")
		}
	}
}

func writePhraseIterations(root *etree.Element, iterations []sng.PhraseIteration) {
	node := root.CreateElement("phraseIterations")
	setInt(node, "count", len(iterations))
	for i := range iterations {
		pi := &iterations[i]
		el := node.CreateElement("phraseIteration")
		setFloat(el, "time", pi.StartTime)
		setInt(el, "phraseId", int(pi.PhraseID))
		if pi.Difficulty[0] > 0 || pi.Difficulty[1] > 0 || pi.Difficulty[2] > 0 {
			hero := el.CreateElement("heroLevels")
			setInt(hero, "count", 3)
			for h := 0; h < 3; h++ {
				lvl := hero.CreateElement("heroLevel")
				setInt(lvl, "hero", h+1)
				setInt(lvl, "difficulty", int(pi.Difficulty[h]))
			}
		}
	}
}

func writeLinkedDiffs(root *etree.Element, diffs []sng.LinkedDifficulty) {
	node := root.CreateElement("newLinkedDiffs")
	setInt(node, "count", len(diffs))
	for i := range diffs {
		ld := &diffs[i]
		el := node.CreateElement("newLinkedDiff")
		setInt(el, "levelBreak", int(ld.LevelBreak))
		el.CreateAttr("ratio", "1.000")
		setInt(el, "phraseCount", len(ld.Phrases))
		for _, id := range ld.Phrases {
			ph := el.CreateElement("nld_phrase")
			setInt(ph, "id", int(id))
		}
	}
}

func writePhraseProperties(root *etree.Element, infos []sng.PhraseExtraInfo) {
	node := root.CreateElement("phraseProperties")
	setInt(node, "count", len(infos))
	for i := range infos {
		info := &infos[i]
		el := node.CreateElement("phraseProperty")
		setInt(el, "phraseId", int(info.PhraseID))
		setInt(el, "redundant", int(info.Redundant))
		setInt(el, "levelJump", int(info.LevelJump))
		setInt(el, "empty", int(info.Empty))
		setInt(el, "difficulty", int(info.Difficulty))
	}
}

func writeChordTemplates(root *etree.Element, chords []sng.Chord) {
	node := root.CreateElement("chordTemplates")
	setInt(node, "count", len(chords))
	for i := range chords {
		c := &chords[i]
		el := node.CreateElement("chordTemplate")
		el.CreateAttr("chordName", c.Name)
		displayName := c.Name
		switch c.Mask {
		case 1:
			displayName += "-arp"
		case 2:
			displayName += "-nop"
		}
		el.CreateAttr("displayName", displayName)
		for s := 0; s < 6; s++ {
			if c.Fingers[s] != -1 {
				setInt(el, fmt.Sprintf("finger%d", s), int(c.Fingers[s]))
			}
		}
		for s := 0; s < 6; s++ {
			if c.Frets[s] != -1 {
				setInt(el, fmt.Sprintf("fret%d", s), int(c.Frets[s]))
			}
		}
	}
}

func writeEbeats(root *etree.Element, bpms []sng.BPM) {
	node := root.CreateElement("ebeats")
	setInt(node, "count", len(bpms))
	for i := range bpms {
		b := &bpms[i]
		el := node.CreateElement("ebeat")
		setFloat(el, "time", b.Time)
		if b.Mask&0x01 != 0 {
			setInt(el, "measure", int(b.Measure))
		}
	}
}

// writeToneBank emits the named tone slots. Only slots the manifest actually
// names appear; the tones list below still renders every switch event.
func writeToneBank(root *etree.Element, meta *manifest.Metadata) {
	if meta == nil {
		return
	}
	if meta.ToneBase != "" {
		textChild(root, "tonebase", meta.ToneBase)
	}
	tags := [4]string{"tonea", "toneb", "tonec", "toned"}
	for i, tag := range tags {
		if meta.ToneNames[i] != "" {
			textChild(root, tag, meta.ToneNames[i])
		}
	}
}

func writeTones(root *etree.Element, tones []sng.Tone, meta *manifest.Metadata) {
	node := root.CreateElement("tones")
	setInt(node, "count", len(tones))
	for i := range tones {
		t := &tones[i]
		el := node.CreateElement("tone")
		setFloat(el, "time", t.Time)
		setInt(el, "id", int(t.ID))
		name := "N/A"
		if meta != nil && t.ID >= 0 && t.ID < 4 {
			name = meta.ToneNames[t.ID]
		}
		el.CreateAttr("name", name)
	}
}

func writeSections(root *etree.Element, sections []sng.Section) {
	node := root.CreateElement("sections")
	setInt(node, "count", len(sections))
	for i := range sections {
		s := &sections[i]
		el := node.CreateElement("section")
		el.CreateAttr("name", s.Name)
		setInt(el, "number", int(s.Number))
		setFloat(el, "startTime", s.StartTime)
	}
}

func writeEvents(root *etree.Element, events []sng.Event) {
	node := root.CreateElement("events")
	setInt(node, "count", len(events))
	for i := range events {
		e := &events[i]
		el := node.CreateElement("event")
		setFloat(el, "time", e.Time)
		el.CreateAttr("code", e.Name)
	}
}

// writeTranscriptionTrack emits the empty placeholder track editors expect
// to find between events and levels.
func writeTranscriptionTrack(root *etree.Element) {
	node := root.CreateElement("transcriptionTrack")
	setInt(node, "difficulty", -1)
	for _, tag := range []string{"notes", "chords", "anchors", "handShapes"} {
		setInt(node.CreateElement(tag), "count", 0)
	}
}
