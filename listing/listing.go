// Package listing renders songs as human-readable segment tables, one row
// per segment with the two voices side by side. The layout follows the
// dumps the format grew out of: note name, octave and duration columns,
// "Empty" for segments past a voice's end, and an instrument column when
// the song's format carries one.
package listing

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pulsevolt/chirp"
)

// Styles holds the lipgloss styles of the listing's parts. The zero value
// renders everything unstyled, which is what String uses.
type Styles struct {
	Header lipgloss.Style
	Note   lipgloss.Style
	Rest   lipgloss.Style
	Empty  lipgloss.Style
}

// DefaultStyles returns the color scheme Styled is normally used with.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff9f")),
		Note:   lipgloss.NewStyle().Foreground(lipgloss.Color("#c9d1d9")),
		Rest:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681")),
		Empty:  lipgloss.NewStyle().Faint(true),
	}
}

// String returns the plain text listing of a song.
func String(song *chirp.Song) string {
	return Styled(song, Styles{})
}

// Styled returns the listing of a song with the given styles applied. Each
// cell is padded to fixed column widths before styling, so the voices line
// up regardless of the terminal's color support.
func Styled(song *chirp.Song, st Styles) string {
	var sb strings.Builder
	sb.WriteString(st.Header.Render(fmt.Sprintf("BPM: %d", song.BPM)))
	sb.WriteByte('\n')
	for i := 1; i <= song.NumSegments(); i++ {
		seg := song.Segment(i)
		var line strings.Builder
		line.WriteString(fmt.Sprintf("Segment %d: ", seg.Index))
		for vi, c := range seg.Cells {
			line.WriteString(fmt.Sprintf("Voice %d: ", vi+1))
			line.WriteString(cellStyle(c, st).Render(cellText(c, song.Format)))
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func cellStyle(c chirp.Cell, st Styles) lipgloss.Style {
	e, ok := c.Unpack()
	switch {
	case !ok:
		return st.Empty
	case e.Pitch == chirp.Rest:
		return st.Rest
	}
	return st.Note
}

func cellText(c chirp.Cell, f chirp.Format) string {
	e, ok := c.Unpack()
	width := 42
	if f == chirp.FormatInstrument {
		width += 12
	}
	if !ok {
		return pad("Empty", width)
	}
	var sb strings.Builder
	if e.Pitch == chirp.Rest {
		sb.WriteString(pad("REST", 10))
		sb.WriteString(pad("", 10))
	} else {
		sb.WriteString(pad(e.Pitch.String(), 10))
		sb.WriteString(pad(fmt.Sprintf("Octave-%d", e.Octave), 10))
	}
	sb.WriteString(pad("Duration-"+e.Duration.String(), 22))
	if f == chirp.FormatInstrument {
		sb.WriteString(pad(e.Instr.String(), 12))
	}
	return sb.String()
}

func pad(s string, width int) string {
	return fmt.Sprintf("%-*s", width, s)
}
