// Package sngxml renders parsed song structures as the XML arrangement
// format consumed by editor tooling. A song with vocal lines becomes a
// <vocals> document; anything else becomes the full <song version="8">
// arrangement with phrases, chord templates, beat grid, tones, sections and
// per-difficulty levels. Display metadata (title, artist, tone names) comes
// from an optional sidecar manifest and degrades to defaults when absent.
package sngxml

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/openfret/psarckit/manifest"
	"github.com/openfret/psarckit/sng"
)

// Marshal renders song as a complete indented XML document. meta may be nil
// when no manifest was found for the arrangement.
func Marshal(song *sng.Song, meta *manifest.Metadata) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	if len(song.Vocals) > 0 {
		writeVocals(doc, song)
	} else {
		writeInstrumental(doc, song, meta)
	}
	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("sngxml: render document: %w", err)
	}
	return out, nil
}

func writeVocals(doc *etree.Document, song *sng.Song) {
	root := doc.CreateElement("vocals")
	setInt(root, "count", len(song.Vocals))
	for _, v := range song.Vocals {
		node := root.CreateElement("vocal")
		setFloat(node, "time", v.Time)
		setInt(node, "note", int(v.Note))
		setFloat(node, "length", v.Length)
		node.CreateAttr("lyric", v.Lyric)
	}
}

func has(mask, flag uint32) bool { return mask&flag != 0 }

// formatFloat renders times and lengths with millisecond precision, the
// fixed-width form the arrangement format uses throughout.
func formatFloat(v float32) string {
	return fmt.Sprintf("%.3f", v)
}

// formatPlainFloat renders a float in its shortest round-trip form, for the
// few fields that historically carried unpadded values.
func formatPlainFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

func setInt(el *etree.Element, key string, v int) {
	el.CreateAttr(key, strconv.Itoa(v))
}

func setFloat(el *etree.Element, key string, v float32) {
	el.CreateAttr(key, formatFloat(v))
}

func setFlag(el *etree.Element, key string) {
	el.CreateAttr(key, "1")
}

func textChild(parent *etree.Element, tag, text string) {
	parent.CreateElement(tag).SetText(text)
}

func textChildInt(parent *etree.Element, tag string, v int) {
	textChild(parent, tag, strconv.Itoa(v))
}
