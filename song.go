package chirp

import (
	"errors"
	"fmt"
	"slices"
)

// Error kinds for everything that can go wrong in the model and the codec.
// Returned errors wrap one of these with context, so callers branch with
// errors.Is instead of matching message strings.
var (
	// ErrInvalidArgument flags a call that violates the model's contract: a
	// voice number outside 1-2, an out of range pitch, octave, duration,
	// tempo or instrument.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidFormat flags a dump that cannot be decoded: data that does
	// not divide into whole records, or an unknown format revision.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrOutOfRange flags a segment index outside the current bounds of a
	// voice on insert or remove.
	ErrOutOfRange = errors.New("out of range")
)

type (
	// Element is one note of one voice: a pitch (or rest), the octave it
	// sounds in, how long it lasts in 1/32 note units, and the instrument
	// playing it. Rests have no octave; the field stays zero for them.
	Element struct {
		Pitch    Pitch
		Octave   int        `yaml:",omitempty"`
		Duration Duration   `yaml:",omitempty"`
		Instr    Instrument `yaml:",omitempty"`
	}

	// Voice is an ordered sequence of elements belonging to one of the two
	// voices. The two voices of a song are sized independently; nothing
	// forces them to the same length.
	Voice []Element

	// Song is a two-voice chip-tune: a name used when the song is persisted
	// or exported, a tempo in beats per minute (one byte on the wire, so
	// 0-255), the wire format revision the song is dumped in, and the two
	// voices. Songs are plain data with no internal synchronization; a Song
	// shared between goroutines must be serialized by its owner.
	Song struct {
		Name   string `yaml:",omitempty"`
		BPM    int
		Format Format `yaml:",omitempty"`
		Voices [2]Voice
	}
)

// NewSong returns an empty two-voice song at the given tempo, dumped in
// FormatPlain until changed. Decoding an existing dump is the other way to
// construct a Song; see ParseDump.
func NewSong(bpm int) (*Song, error) {
	if bpm < 0 || bpm > 255 {
		return nil, fmt.Errorf("bpm must be 0-255, got %d: %w", bpm, ErrInvalidArgument)
	}
	return &Song{BPM: bpm, Format: FormatPlain}, nil
}

// Get returns the element at index, with ok false when the index is out of
// range. Unlike a plain index expression it tolerates any index, which is
// what the segment queries build on.
func (v Voice) Get(index int) (Element, bool) {
	if index < 0 || index >= len(v) {
		return Element{}, false
	}
	return v[index], true
}

// Copy makes a deep copy of a Voice.
func (v Voice) Copy() Voice {
	ret := make(Voice, len(v))
	copy(ret, v)
	return ret
}

// Copy makes a deep copy of a Song.
func (s *Song) Copy() Song {
	return Song{
		Name:   s.Name,
		BPM:    s.BPM,
		Format: s.Format,
		Voices: [2]Voice{s.Voices[0].Copy(), s.Voices[1].Copy()},
	}
}

// NumSegments returns the number of segments in the song: the length of the
// longer voice, as a segment exists as soon as either voice has an element
// at its index.
func (s *Song) NumSegments() int {
	return max(len(s.Voices[0]), len(s.Voices[1]))
}

// PushSegment validates and appends one element to the end of voice 1 or 2.
// Octave is required for tonal pitches and runs from 2 to the format's
// MaxOctave; rests ignore it and callers should pass 0. Duration is capped
// by the song's format (255, or 65535 for FormatWide). A zero duration is
// accepted but doubles as the wire padding marker, so a zero-duration
// element silently disappears in a dump/parse round trip; push one only
// knowingly.
//
// On any violation the song is left unmodified and the error wraps
// ErrInvalidArgument.
func (s *Song) PushSegment(voiceNum int, pitch Pitch, octave int, d Duration, instr Instrument) error {
	if err := s.checkVoiceNum(voiceNum); err != nil {
		return err
	}
	e := Element{Pitch: pitch, Octave: octave, Duration: d, Instr: instr}
	if err := s.checkElement(e); err != nil {
		return err
	}
	v := &s.Voices[voiceNum-1]
	*v = append(*v, canonical(e))
	return nil
}

// InsertSegment validates exactly like PushSegment but inserts the element
// at the zero-based segIndex of the voice, shifting later elements up. An
// index at or past the end appends; a negative index fails with
// ErrOutOfRange.
func (s *Song) InsertSegment(segIndex, voiceNum int, pitch Pitch, octave int, d Duration, instr Instrument) error {
	if err := s.checkVoiceNum(voiceNum); err != nil {
		return err
	}
	e := Element{Pitch: pitch, Octave: octave, Duration: d, Instr: instr}
	if err := s.checkElement(e); err != nil {
		return err
	}
	if segIndex < 0 {
		return fmt.Errorf("segment index must be >= 0, got %d: %w", segIndex, ErrOutOfRange)
	}
	v := &s.Voices[voiceNum-1]
	segIndex = min(segIndex, len(*v))
	*v = slices.Insert(*v, segIndex, canonical(e))
	return nil
}

// RemoveSegment removes the segIndex'th element of voice 1 or 2 and shifts
// the rest down. segIndex is 1-based, matching how segments are numbered in
// listings; anything outside 1..len fails with ErrOutOfRange.
func (s *Song) RemoveSegment(voiceNum, segIndex int) error {
	if err := s.checkVoiceNum(voiceNum); err != nil {
		return err
	}
	v := &s.Voices[voiceNum-1]
	if segIndex < 1 || segIndex > len(*v) {
		return fmt.Errorf("segment index must be 1-%d, got %d: %w", len(*v), segIndex, ErrOutOfRange)
	}
	*v = slices.Delete(*v, segIndex-1, segIndex)
	return nil
}

// Validate checks that the song as a whole is encodable: tempo in byte
// range, a known format, and every element passing the same rules
// PushSegment enforces. Dump calls this, so a hand-assembled Song gets
// checked at the latest when it hits the wire.
func (s *Song) Validate() error {
	if s.BPM < 0 || s.BPM > 255 {
		return fmt.Errorf("bpm must be 0-255, got %d: %w", s.BPM, ErrInvalidArgument)
	}
	if !s.Format.Valid() {
		return fmt.Errorf("unknown format %d: %w", int(s.Format), ErrInvalidFormat)
	}
	for vi, v := range s.Voices {
		for ei, e := range v {
			if err := s.checkElement(e); err != nil {
				return fmt.Errorf("voice %d element %d: %w", vi+1, ei+1, err)
			}
		}
	}
	return nil
}

func (s *Song) checkVoiceNum(voiceNum int) error {
	if voiceNum != 1 && voiceNum != 2 {
		return fmt.Errorf("voice number must be 1 or 2, got %d: %w", voiceNum, ErrInvalidArgument)
	}
	return nil
}

// checkElement is the single validation rule for elements, shared by
// PushSegment, InsertSegment and Validate so they cannot drift apart.
func (s *Song) checkElement(e Element) error {
	if !e.Pitch.Valid() {
		return fmt.Errorf("pitch %d is not a pitch class or Rest: %w", int(e.Pitch), ErrInvalidArgument)
	}
	if maxDur := s.Format.MaxDuration(); e.Duration > maxDur {
		return fmt.Errorf("duration %d exceeds the %v format maximum %d: %w", e.Duration, s.Format, maxDur, ErrInvalidArgument)
	}
	maxOct := s.Format.MaxOctave()
	if e.Pitch == Rest {
		if e.Octave != 0 && (e.Octave < 2 || e.Octave > maxOct) {
			return fmt.Errorf("octave must be 2-%d when given, got %d: %w", maxOct, e.Octave, ErrInvalidArgument)
		}
	} else {
		if e.Octave == 0 {
			return fmt.Errorf("octave must be given for pitch %v: %w", e.Pitch, ErrInvalidArgument)
		}
		if e.Octave < 2 || e.Octave > maxOct {
			return fmt.Errorf("octave must be 2-%d, got %d: %w", maxOct, e.Octave, ErrInvalidArgument)
		}
	}
	if !e.Instr.Valid() {
		return fmt.Errorf("unknown instrument %d: %w", int(e.Instr), ErrInvalidArgument)
	}
	return nil
}

// canonical normalizes an element before it is stored: a rest's octave is
// meaningless, so it is cleared to keep stored elements comparable with
// decoded ones.
func canonical(e Element) Element {
	if e.Pitch == Rest {
		e.Octave = 0
	}
	return e
}
