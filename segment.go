package chirp

type (
	// Cell is an optional Element: what one voice contributes to a segment,
	// or nothing when the voice has already ended. The zero value is the
	// empty cell.
	Cell struct {
		element Element
		exists  bool
	}

	// Segment is a vertical slice through the song: the 1-based segment
	// number and the cell each voice holds there. A renderer walks segments
	// 1..NumSegments and plays the two cells side by side.
	Segment struct {
		Index int
		Cells [2]Cell
	}
)

// CellOf returns a filled cell holding e.
func CellOf(e Element) Cell {
	return Cell{e, true}
}

func (c Cell) Unpack() (Element, bool) {
	return c.element, c.exists
}

func (c Cell) Value() Element {
	if !c.exists {
		panic("Value called on an empty Cell")
	}
	return c.element
}

func (c Cell) Empty() bool {
	return !c.exists
}

// Segment returns the 1-based index'th segment of the song. Indexes outside
// 1..NumSegments return a segment with two empty cells rather than an
// error, so render loops need no bounds bookkeeping; voices shorter than
// the song likewise contribute empty cells past their end.
func (s *Song) Segment(index int) Segment {
	ret := Segment{Index: index}
	for i, v := range s.Voices {
		if e, ok := v.Get(index - 1); ok {
			ret.Cells[i] = CellOf(e)
		}
	}
	return ret
}
