package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Format returns the rows padded according to the widest entry in each column.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := len(rows[0])
	widths := make([]int, colCount)
	for _, row := range rows {
		for c, cell := range row {
			width := Width(cell)
			if width > widths[c] {
				widths[c] = width
			}
		}
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString("  ")
			}
			width := widths[c] - Width(cell)
			if c < len(alignments) && alignments[c] == AlignRight {
				b.WriteString(Spaces(width))
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				if c < len(row)-1 {
					b.WriteString(Spaces(width))
				}
			}
		}
		out[i] = b.String()
	}
	return out
}

// Layout is the result of packing cells into lines.
type Layout struct {
	// Column is the uniform column width, gap included.
	Column int
	// Lines holds cell indexes per output line.
	Lines [][]int
}

// Pack lays cells of the given widths out left to right in columns of
// uniform width (widest cell plus gap), starting a new line whenever the next
// column would run past surface. A single-column layout puts every cell on
// its own line. Cells wider than surface still get a line of their own.
func Pack(widths []int, surface, gap int, singleColumn bool) Layout {
	if len(widths) == 0 {
		return Layout{}
	}
	widest := 0
	for _, w := range widths {
		if w > widest {
			widest = w
		}
	}
	layout := Layout{Column: widest + gap}
	var line []int
	for i := range widths {
		if len(line) > 0 && (singleColumn || len(line)*layout.Column+widest > surface) {
			layout.Lines = append(layout.Lines, line)
			line = nil
		}
		line = append(line, i)
	}
	layout.Lines = append(layout.Lines, line)
	return layout
}

// Width is the number of terminal cells text occupies.
func Width(text string) int {
	return runewidth.StringWidth(text)
}

// Spaces returns count blanks, or "" for non-positive counts.
func Spaces(count int) string {
	if count <= 0 {
		return ""
	}
	return strings.Repeat(" ", count)
}
