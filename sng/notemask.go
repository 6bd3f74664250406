package sng

// Note.Mask bits.
const (
	NoteMaskChord            uint32 = 0x02
	NoteMaskOpen             uint32 = 0x04
	NoteMaskFretHandMute     uint32 = 0x08
	NoteMaskTremolo          uint32 = 0x10
	NoteMaskHarmonic         uint32 = 0x20
	NoteMaskPalmMute         uint32 = 0x40
	NoteMaskSlap             uint32 = 0x80
	NoteMaskPluck            uint32 = 0x0100
	NoteMaskHammerOn         uint32 = 0x0200
	NoteMaskPullOff          uint32 = 0x0400
	NoteMaskSlide            uint32 = 0x0800
	NoteMaskBend             uint32 = 0x1000
	NoteMaskSustain          uint32 = 0x2000
	NoteMaskTap              uint32 = 0x4000
	NoteMaskPinchHarmonic    uint32 = 0x8000
	NoteMaskVibrato          uint32 = 0x010000
	NoteMaskMute             uint32 = 0x020000
	NoteMaskIgnore           uint32 = 0x040000
	NoteMaskLeftHand         uint32 = 0x080000
	NoteMaskRightHand        uint32 = 0x100000
	NoteMaskHighDensity      uint32 = 0x200000
	NoteMaskSlideUnpitchedTo uint32 = 0x400000
	NoteMaskSingle           uint32 = 0x800000
	NoteMaskChordNotes       uint32 = 0x01000000
	NoteMaskDoubleStop       uint32 = 0x02000000
	NoteMaskAccent           uint32 = 0x04000000
	NoteMaskParent           uint32 = 0x08000000
	NoteMaskChild            uint32 = 0x10000000
	NoteMaskArpeggio         uint32 = 0x20000000
	NoteMaskChordPanel       uint32 = 0x80000000
)
