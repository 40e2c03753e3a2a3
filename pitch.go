package chirp

import "fmt"

// Pitch is the tonal value of an element: one of the twelve pitch classes,
// or Rest. It deliberately carries no octave; the encoded wire byte that
// folds pitch and octave together exists only inside the codec, so that
// nothing else ever has to compare against a rest sentinel.
type Pitch int

const (
	CNatural Pitch = iota
	CSharp
	DNatural
	DSharp
	ENatural
	FNatural
	FSharp
	GNatural
	GSharp
	ANatural
	ASharp
	BNatural

	// Rest denotes silence. It is not a pitch class: it takes no octave and
	// must never enter semitone arithmetic.
	Rest
)

// pitchNames has one name per semitone, sharps only, which is the usual
// chip-tune convention.
var pitchNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Valid returns whether p is one of the twelve pitch classes or Rest.
func (p Pitch) Valid() bool {
	return p >= CNatural && p <= Rest
}

// Tonal returns whether p is an actual pitch class, i.e. valid and not Rest.
func (p Pitch) Tonal() bool {
	return p >= CNatural && p < Rest
}

func (p Pitch) String() string {
	if p == Rest {
		return "REST"
	}
	if !p.Tonal() {
		return fmt.Sprintf("Pitch(%d)", int(p))
	}
	return pitchNames[p]
}
