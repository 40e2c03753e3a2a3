package chirp

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
)

// Dump encodes the song into its wire format: one bpm byte followed by one
// fixed-width record per segment, each record holding voice 1's fields and
// then voice 2's. A voice shorter than the song contributes all-zero bytes
// for the segments past its end; the zero duration marks the slot as
// padding for the decoder. The song is validated first, so the bytes a
// successful Dump returns always parse back.
func (s *Song) Dump() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(nil)
	buf.WriteByte(byte(s.BPM))
	var padding [3]byte
	for i := 0; i < s.NumSegments(); i++ {
		for _, v := range s.Voices {
			e, ok := v.Get(i)
			if !ok {
				buf.Write(padding[:s.Format.VoiceBytes()])
				continue
			}
			buf.WriteByte(encodeNote(e, s.Format))
			switch s.Format {
			case FormatPlain:
				buf.WriteByte(byte(e.Duration))
			case FormatInstrument:
				buf.WriteByte(byte(e.Duration))
				buf.WriteByte(byte(e.Instr))
			case FormatWide:
				binary.Write(buf, binary.BigEndian, uint16(e.Duration))
			}
		}
	}
	return buf.Bytes(), nil
}

// DumpHex encodes the song like Dump and returns the bytes as a lowercase
// hex string.
func (s *Song) DumpHex() (string, error) {
	data, err := s.Dump()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(data), nil
}

// ParseDump decodes a dump in the given format back into a Song. The
// stream carries no format tag, so the caller has to know which revision it
// is parsing. The first byte is the tempo; after it the data must divide
// into whole records or the whole decode fails with ErrInvalidFormat. A
// zero duration field marks its slot as padding and no element is appended
// for it; that is how voices of unequal length come back at their true
// lengths. Field values are otherwise taken as-is, without the range checks
// PushSegment applies.
func ParseDump(data []byte, format Format) (*Song, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("unknown format %d: %w", int(format), ErrInvalidFormat)
	}
	if len(data) < 1 {
		return nil, fmt.Errorf("dump is empty: %w", ErrInvalidFormat)
	}
	if rb := format.RecordBytes(); (len(data)-1)%rb != 0 {
		return nil, fmt.Errorf("dump length %d after the bpm byte is not a multiple of the %d byte record: %w", len(data)-1, rb, ErrInvalidFormat)
	}
	song := &Song{BPM: int(data[0]), Format: format}
	r := bytes.NewReader(data[1:])
	for r.Len() > 0 {
		for vi := range song.Voices {
			var note byte
			if err := binary.Read(r, binary.BigEndian, &note); err != nil {
				return nil, fmt.Errorf("binary.Read: %w", err)
			}
			var dur Duration
			if format == FormatWide {
				if err := binary.Read(r, binary.BigEndian, &dur); err != nil {
					return nil, fmt.Errorf("binary.Read: %w", err)
				}
			} else {
				var b byte
				if err := binary.Read(r, binary.BigEndian, &b); err != nil {
					return nil, fmt.Errorf("binary.Read: %w", err)
				}
				dur = Duration(b)
			}
			var instr Instrument
			if format == FormatInstrument {
				var b byte
				if err := binary.Read(r, binary.BigEndian, &b); err != nil {
					return nil, fmt.Errorf("binary.Read: %w", err)
				}
				instr = Instrument(b)
			}
			if dur == 0 {
				continue
			}
			pitch, octave := decodeNote(note, format)
			song.Voices[vi] = append(song.Voices[vi], Element{Pitch: pitch, Octave: octave, Duration: dur, Instr: instr})
		}
	}
	return song, nil
}

// ParseDumpHex decodes a hex string dump, the form the dumps are usually
// passed around in.
func ParseDumpHex(s string, format Format) (*Song, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("hex.DecodeString: %s: %w", err, ErrInvalidFormat)
	}
	return ParseDump(data, format)
}

// ReadDump decodes a dump from r. The record width check needs the total
// length, so the reader is drained first.
func ReadDump(r io.Reader, format Format) (*Song, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll: %w", err)
	}
	return ParseDump(data, format)
}

// encodeNote returns the wire note byte of an element: the rest sentinel of
// the format, or the pitch class offset into the octave. The sentinel never
// leaks out of the codec; the model keeps Rest as its own pitch value.
func encodeNote(e Element, f Format) byte {
	if e.Pitch == Rest {
		return f.restByte()
	}
	return byte(int(e.Pitch) + (e.Octave-2)*12)
}

// decodeNote splits a wire note byte back into pitch and octave. The zero
// octave of a rest mirrors what canonical stores for pushed rests.
func decodeNote(b byte, f Format) (Pitch, int) {
	if b == f.restByte() {
		return Rest, 0
	}
	return Pitch(b % 12), int(b/12) + 2
}
