// Package midi converts songs to standard MIDI files, one track per voice,
// so a dump can be auditioned in any sequencer before it is burned into a
// player image.
package midi

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pulsevolt/chirp"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// resolution is the tick count of a quarter note; a duration unit of 1/32
// note is then resolution/8 ticks.
const (
	resolution = 96
	unitTicks  = resolution / 8
	velocity   = 100
)

// gmProgram maps instruments to the closest General MIDI programs.
var gmProgram = [...]uint8{
	chirp.Piano:    0,   // Acoustic Grand Piano
	chirp.EPiano:   4,   // Electric Piano 1
	chirp.Flute:    73,  // Flute
	chirp.Clarinet: 71,  // Clarinet
	chirp.Sine:     79,  // Ocarina
	chirp.Square:   80,  // Lead 1 (square)
	chirp.Saw:      81,  // Lead 2 (sawtooth)
	chirp.Violin:   40,  // Violin
	chirp.Drum:     118, // Synth Drum
}

// Key returns the MIDI key of a tonal pitch in the given octave, following
// the C4 = 60 convention.
func Key(p chirp.Pitch, octave int) uint8 {
	return uint8((octave+1)*12 + int(p))
}

// Export writes the song to w as a type 1 MIDI file: a meta track carrying
// the name and tempo, then one track per voice on its own channel. Rests
// become gaps between the notes. The tempo meta event cannot express 0 bpm,
// so exporting an unset tempo fails with ErrInvalidArgument.
func Export(w io.Writer, song *chirp.Song) error {
	if err := song.Validate(); err != nil {
		return err
	}
	if song.BPM == 0 {
		return fmt.Errorf("cannot export a song with 0 bpm: %w", chirp.ErrInvalidArgument)
	}
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(resolution)
	var meta smf.Track
	if song.Name != "" {
		meta.Add(0, smf.MetaTrackSequenceName(song.Name))
	}
	meta.Add(0, smf.MetaTempo(float64(song.BPM)))
	meta.Close(0)
	s.Add(meta)
	for vi, v := range song.Voices {
		s.Add(voiceTrack(v, uint8(vi)))
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("smf.WriteTo: %w", err)
	}
	return nil
}

// Bytes is Export into a byte slice.
func Bytes(song *chirp.Song) ([]byte, error) {
	var buf bytes.Buffer
	if err := Export(&buf, song); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func voiceTrack(v chirp.Voice, channel uint8) smf.Track {
	var tr smf.Track
	delta := uint32(0)
	program := -1
	for _, e := range v {
		ticks := uint32(e.Duration) * unitTicks
		if e.Pitch == chirp.Rest {
			delta += ticks
			continue
		}
		if int(e.Instr) != program {
			tr.Add(delta, midi.ProgramChange(channel, gmProgram[e.Instr]))
			delta = 0
			program = int(e.Instr)
		}
		key := Key(e.Pitch, e.Octave)
		tr.Add(delta, midi.NoteOn(channel, key, velocity))
		tr.Add(ticks, midi.NoteOff(channel, key))
		delta = 0
	}
	tr.Close(delta)
	return tr
}
