package chirp

import "fmt"

// Instrument selects which of the fixed chip voices plays an element. Every
// element carries one (defaulting to Piano), but only FormatInstrument
// stores it on the wire; dumps in the other formats lose it and decode back
// as Piano.
type Instrument byte

const (
	Piano Instrument = iota
	EPiano
	Flute
	Clarinet
	Sine
	Square
	Saw
	Violin
	Drum
)

var instrumentNames = [...]string{
	"Piano",
	"EPiano",
	"Flute",
	"Clarinet",
	"Sine",
	"Square",
	"Saw",
	"Violin",
	"Drum",
}

// Valid returns whether i is one of the enumerated instruments.
func (i Instrument) Valid() bool {
	return int(i) < len(instrumentNames)
}

func (i Instrument) String() string {
	if !i.Valid() {
		return fmt.Sprintf("Instrument(%d)", int(i))
	}
	return instrumentNames[i]
}
