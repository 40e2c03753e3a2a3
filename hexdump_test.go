package chirp_test

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/pulsevolt/chirp"
)

func TestDumpPlainFormat(t *testing.T) {
	song := exampleSong(t, chirp.FormatPlain)
	data, err := song.Dump()
	if err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	want := []byte{0x78, 0x19, 0x08, 0x49, 0x04, 0x1f, 0x01, 0x00, 0x20, 0x00, 0x00, 0x0a, 0x04}
	if !bytes.Equal(data, want) {
		t.Fatalf("Dump returned % x, want % x", data, want)
	}
	hexdump, err := song.DumpHex()
	if err != nil {
		t.Fatalf("DumpHex failed: %v", err)
	}
	if want := "78190849041f01002000000a04"; hexdump != want {
		t.Fatalf("DumpHex returned %q, want %q", hexdump, want)
	}
}

func TestDumpInstrumentFormat(t *testing.T) {
	song := exampleSong(t, chirp.FormatInstrument)
	song.Voices[0][0].Instr = chirp.Square
	data, err := song.Dump()
	if err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	want := []byte{
		0x78,
		0x19, 0x08, 0x05, 0x49, 0x04, 0x00,
		0x1f, 0x01, 0x00, 0x00, 0x20, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x0a, 0x04, 0x00,
	}
	if !bytes.Equal(data, want) {
		t.Fatalf("Dump returned % x, want % x", data, want)
	}
}

func TestDumpWideFormat(t *testing.T) {
	song := exampleSong(t, chirp.FormatWide)
	data, err := song.Dump()
	if err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	want := []byte{
		0x78,
		0x19, 0x00, 0x08, 0x3d, 0x00, 0x04,
		0x1f, 0x00, 0x01, 0x00, 0x00, 0x20,
		0x00, 0x00, 0x00, 0x0a, 0x00, 0x04,
	}
	if !bytes.Equal(data, want) {
		t.Fatalf("Dump returned % x, want % x", data, want)
	}
}

func TestWideDurationIsBigEndian(t *testing.T) {
	song := newSong(t, 60, chirp.FormatWide)
	mustPush(t, song, 1, chirp.CNatural, 4, 258, chirp.Piano)
	data, err := song.Dump()
	if err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	want := []byte{0x3c, 0x18, 0x01, 0x02, 0x00, 0x00, 0x00}
	if !bytes.Equal(data, want) {
		t.Fatalf("Dump returned % x, want % x", data, want)
	}
	parsed, err := chirp.ParseDump(data, chirp.FormatWide)
	if err != nil {
		t.Fatalf("ParseDump failed: %v", err)
	}
	if got := parsed.Voices[0][0].Duration; got != 258 {
		t.Fatalf("duration decoded as %d, want 258", got)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []chirp.Format{chirp.FormatPlain, chirp.FormatInstrument, chirp.FormatWide} {
		song := exampleSong(t, format)
		if format == chirp.FormatInstrument {
			song.Voices[1][1].Instr = chirp.Violin
		}
		data, err := song.Dump()
		if err != nil {
			t.Fatalf("%v: Dump failed: %v", format, err)
		}
		parsed, err := chirp.ParseDump(data, format)
		if err != nil {
			t.Fatalf("%v: ParseDump failed: %v", format, err)
		}
		if !reflect.DeepEqual(parsed, song) {
			t.Fatalf("%v: decoded song is %v, want %v", format, parsed, song)
		}
		again, err := parsed.Dump()
		if err != nil {
			t.Fatalf("%v: second Dump failed: %v", format, err)
		}
		if !bytes.Equal(data, again) {
			t.Fatalf("%v: re-encoding changed the bytes: % x, want % x", format, again, data)
		}
	}
}

func TestPlainDumpDropsInstrument(t *testing.T) {
	song := newSong(t, 100, chirp.FormatPlain)
	mustPush(t, song, 1, chirp.CNatural, 4, chirp.QuarterNote, chirp.Saw)
	data, err := song.Dump()
	if err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	parsed, err := chirp.ParseDump(data, chirp.FormatPlain)
	if err != nil {
		t.Fatalf("ParseDump failed: %v", err)
	}
	if got := parsed.Voices[0][0].Instr; got != chirp.Piano {
		t.Fatalf("instrument decoded as %v, want %v", got, chirp.Piano)
	}
}

func TestZeroDurationElementIsLost(t *testing.T) {
	song := newSong(t, 100, chirp.FormatPlain)
	mustPush(t, song, 1, chirp.CNatural, 4, 0, chirp.Piano)
	mustPush(t, song, 2, chirp.DNatural, 4, chirp.QuarterNote, chirp.Piano)
	data, err := song.Dump()
	if err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	parsed, err := chirp.ParseDump(data, chirp.FormatPlain)
	if err != nil {
		t.Fatalf("ParseDump failed: %v", err)
	}
	if len(parsed.Voices[0]) != 0 {
		t.Fatalf("zero-duration element survived the round trip: %v", parsed.Voices[0])
	}
	if len(parsed.Voices[1]) != 1 {
		t.Fatalf("voice 2 decoded as %v, want one element", parsed.Voices[1])
	}
}

func TestParseDumpSkipsPadding(t *testing.T) {
	data := []byte{0x78, 0x19, 0x08, 0x49, 0x04, 0x00, 0x00, 0x0a, 0x04}
	song, err := chirp.ParseDump(data, chirp.FormatPlain)
	if err != nil {
		t.Fatalf("ParseDump failed: %v", err)
	}
	if song.BPM != 120 {
		t.Fatalf("bpm decoded as %d, want 120", song.BPM)
	}
	wantVoice1 := chirp.Voice{
		{Pitch: chirp.CSharp, Octave: 4, Duration: chirp.QuarterNote},
	}
	wantVoice2 := chirp.Voice{
		{Pitch: chirp.Rest, Duration: chirp.EighthNote},
		{Pitch: chirp.ASharp, Octave: 2, Duration: chirp.EighthNote},
	}
	if !reflect.DeepEqual(song.Voices[0], wantVoice1) {
		t.Fatalf("voice 1 is %v, want %v", song.Voices[0], wantVoice1)
	}
	if !reflect.DeepEqual(song.Voices[1], wantVoice2) {
		t.Fatalf("voice 2 is %v, want %v", song.Voices[1], wantVoice2)
	}
}

func TestParseDumpMalformed(t *testing.T) {
	if _, err := chirp.ParseDump(nil, chirp.FormatPlain); !errors.Is(err, chirp.ErrInvalidFormat) {
		t.Fatalf("empty dump returned %v, want ErrInvalidFormat", err)
	}
	if _, err := chirp.ParseDump([]byte{0x78, 0x19}, chirp.FormatPlain); !errors.Is(err, chirp.ErrInvalidFormat) {
		t.Fatalf("truncated dump returned %v, want ErrInvalidFormat", err)
	}
	if _, err := chirp.ParseDump([]byte{0x78, 0x19, 0x08, 0x49, 0x04}, chirp.FormatWide); !errors.Is(err, chirp.ErrInvalidFormat) {
		t.Fatalf("wrong-width dump returned %v, want ErrInvalidFormat", err)
	}
	if _, err := chirp.ParseDump([]byte{0x78}, chirp.Format(9)); !errors.Is(err, chirp.ErrInvalidFormat) {
		t.Fatalf("unknown format returned %v, want ErrInvalidFormat", err)
	}
}

func TestParseDumpBPMOnly(t *testing.T) {
	song, err := chirp.ParseDump([]byte{0x78}, chirp.FormatPlain)
	if err != nil {
		t.Fatalf("ParseDump failed: %v", err)
	}
	if song.BPM != 120 || song.NumSegments() != 0 {
		t.Fatalf("decoded song is %+v, want an empty 120 bpm song", song)
	}
}

func TestParseDumpHex(t *testing.T) {
	song, err := chirp.ParseDumpHex("78190849041f01002000000a04", chirp.FormatPlain)
	if err != nil {
		t.Fatalf("ParseDumpHex failed: %v", err)
	}
	want := exampleSong(t, chirp.FormatPlain)
	if !reflect.DeepEqual(song, want) {
		t.Fatalf("decoded song is %v, want %v", song, want)
	}
	if _, err := chirp.ParseDumpHex("78zz", chirp.FormatPlain); !errors.Is(err, chirp.ErrInvalidFormat) {
		t.Fatalf("bad hex returned %v, want ErrInvalidFormat", err)
	}
}

func TestReadDump(t *testing.T) {
	song := exampleSong(t, chirp.FormatInstrument)
	data, err := song.Dump()
	if err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	parsed, err := chirp.ReadDump(bytes.NewReader(data), chirp.FormatInstrument)
	if err != nil {
		t.Fatalf("ReadDump failed: %v", err)
	}
	if !reflect.DeepEqual(parsed, song) {
		t.Fatalf("decoded song is %v, want %v", parsed, song)
	}
}

func TestDumpValidatesFirst(t *testing.T) {
	song := newSong(t, 100, chirp.FormatPlain)
	song.Voices[0] = chirp.Voice{{Pitch: chirp.Pitch(50), Octave: 4, Duration: 1}}
	if _, err := song.Dump(); !errors.Is(err, chirp.ErrInvalidArgument) {
		t.Fatalf("Dump of an invalid song returned %v, want ErrInvalidArgument", err)
	}
}

func TestNoteEncoding(t *testing.T) {
	for _, format := range []chirp.Format{chirp.FormatPlain, chirp.FormatInstrument, chirp.FormatWide} {
		rest := byte(73)
		if format == chirp.FormatWide {
			rest = 61
		}
		for pitch := chirp.CNatural; pitch <= chirp.BNatural; pitch++ {
			for octave := 2; octave <= format.MaxOctave(); octave++ {
				song := newSong(t, 1, format)
				mustPush(t, song, 1, pitch, octave, 1, chirp.Piano)
				data, err := song.Dump()
				if err != nil {
					t.Fatalf("%v %v octave %d: Dump failed: %v", format, pitch, octave, err)
				}
				want := byte(int(pitch) + (octave-2)*12)
				if data[1] != want {
					t.Fatalf("%v %v octave %d encoded as %d, want %d", format, pitch, octave, data[1], want)
				}
				if data[1] >= rest {
					t.Fatalf("%v %v octave %d collides with the rest byte %d", format, pitch, octave, rest)
				}
			}
		}
		song := newSong(t, 1, format)
		mustPush(t, song, 1, chirp.Rest, 0, 1, chirp.Piano)
		data, err := song.Dump()
		if err != nil {
			t.Fatalf("%v: Dump failed: %v", format, err)
		}
		if data[1] != rest {
			t.Fatalf("%v: rest encoded as %d, want %d", format, data[1], rest)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]chirp.Format{
		"plain":      chirp.FormatPlain,
		"instrument": chirp.FormatInstrument,
		"wide":       chirp.FormatWide,
	} {
		got, err := chirp.ParseFormat(name)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %v, %v, want %v", name, got, err, want)
		}
	}
	if _, err := chirp.ParseFormat("midi"); !errors.Is(err, chirp.ErrInvalidArgument) {
		t.Fatalf("unknown format name returned %v, want ErrInvalidArgument", err)
	}
}
