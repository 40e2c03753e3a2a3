package chirp

import "fmt"

// Duration is the length of one element, counted in 1/32 note units, so a
// whole note is 32 and the shortest representable note is 1. Values off the
// named power-of-two table are legal and simply mean tied or dotted lengths.
// A Duration of zero is reserved: on the wire it marks a padding slot with
// no element in it, so the decoder drops zero-duration slots instead of
// materializing them (see ParseDump).
type Duration uint16

const (
	ThirtySecondNote Duration = 1 << iota
	SixteenthNote
	EighthNote
	QuarterNote
	HalfNote
	WholeNote
)

var durationNames = map[Duration]string{
	WholeNote:        "NOTE_1",
	HalfNote:         "NOTE_2",
	QuarterNote:      "NOTE_4",
	EighthNote:       "NOTE_8",
	SixteenthNote:    "NOTE_16",
	ThirtySecondNote: "NOTE_32",
}

// String returns the named duration for the six power-of-two note values,
// and the "<n>x32 Notes" fallback label for everything else.
func (d Duration) String() string {
	if name, ok := durationNames[d]; ok {
		return name
	}
	return fmt.Sprintf("%dx32 Notes", uint16(d))
}
