package chirp

import "fmt"

// Format selects one of the three wire layout revisions of the dump format.
// The layouts differ only in the per-voice field widths; the stream shape
// (bpm byte, then fixed-width records) is the same for all of them. A dump
// carries no version tag, so whoever decodes one has to know its format.
type Format int

const (
	// FormatPlain is the original layout: a note byte and a duration byte
	// per voice, four bytes per segment record.
	FormatPlain Format = iota

	// FormatInstrument appends an instrument byte to each voice's fields,
	// six bytes per record.
	FormatInstrument

	// FormatWide widens the duration field to 16 bits, stored big-endian,
	// and has no instrument byte; six bytes per record. Its rest sentinel
	// is 61, immediately after the last tonal note value, where the other
	// formats use 73.
	FormatWide
)

var formatNames = [...]string{"plain", "instrument", "wide"}

// Valid returns whether f is one of the known format revisions.
func (f Format) Valid() bool {
	return f >= FormatPlain && f <= FormatWide
}

func (f Format) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// ParseFormat returns the Format named by s: "plain", "instrument" or
// "wide".
func ParseFormat(s string) (Format, error) {
	for i, name := range formatNames {
		if name == s {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("unknown format %q: %w", s, ErrInvalidArgument)
}

// VoiceBytes returns how many bytes one voice contributes to a record.
func (f Format) VoiceBytes() int {
	if f == FormatPlain {
		return 2
	}
	return 3
}

// RecordBytes returns the fixed width of one encoded segment: both voices'
// fields back to back.
func (f Format) RecordBytes() int {
	return 2 * f.VoiceBytes()
}

// MaxDuration returns the longest duration the format's field can hold.
func (f Format) MaxDuration() Duration {
	if f == FormatWide {
		return 65535
	}
	return 255
}

// MaxOctave returns the highest octave the format can encode. FormatWide
// stops at 6: its rest sentinel 61 sits right above B6 (59), so octave 7
// notes would run into it. The other formats keep the sentinel at 73, clear
// of the whole 2-7 octave range.
func (f Format) MaxOctave() int {
	if f == FormatWide {
		return 6
	}
	return 7
}

// restByte is the wire sentinel standing for Rest in the note byte.
func (f Format) restByte() byte {
	if f == FormatWide {
		return 61
	}
	return 73
}
