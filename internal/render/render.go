package render

import (
	"fmt"
	"strings"

	"github.com/atomicstack/argpopup/internal/format/table"
	"github.com/atomicstack/argpopup/internal/logging/events"
	"github.com/atomicstack/argpopup/internal/popup"
	"github.com/atomicstack/argpopup/internal/state"
)

// DefaultGap separates packed columns.
const DefaultGap = 2

// Role tags a segment so the view can style it.
type Role int

const (
	RoleHeading Role = iota + 1
	RoleKey
	RoleDescription
	RolePunctuation
	// RoleArgument is an argument that currently contributes nothing.
	RoleArgument
	// RoleArgumentEnabled is a true switch or an option with a value.
	RoleArgumentEnabled
	RoleValue
)

// Segment is a run of text sharing one role.
type Segment struct {
	Text string
	Role Role
}

// ItemID identifies a rendered entry across redraws.
type ItemID struct {
	Category popup.Category
	Trigger  rune
}

func (id ItemID) String() string {
	return popup.MustDescribe(id.Category).Glyph(id.Trigger)
}

// Cell is one rendered entry.
type Cell struct {
	ID       ItemID
	Segments []Segment
	Width    int
	// Pad is the blank space that follows the cell to reach the column
	// width. The last cell of a line has none.
	Pad int
}

// Text returns the cell without styling.
func (c Cell) Text() string {
	var b strings.Builder
	for _, seg := range c.Segments {
		b.WriteString(seg.Text)
	}
	return b.String()
}

// Line is either a heading, a row of cells or a blank separator.
type Line struct {
	Heading string
	Cells   []Cell
}

// Position locates an item in a frame.
type Position struct {
	ID   ItemID
	Line int
	Cell int
}

// Frame is a fully laid out popup.
type Frame struct {
	Popup string
	Width int
	Lines []Line
	// Items lists every entry in display order.
	Items []Position
}

// Options control layout.
type Options struct {
	// Width is the available surface width. Zero disables wrapping of
	// multi-column categories.
	Width int
	Gap   int
}

// Render lays out def with the values recorded in args. Categories appear in
// fixed order, empty ones are skipped.
func Render(def *popup.Definition, args state.ArgumentStore, opts Options) Frame {
	if opts.Gap <= 0 {
		opts.Gap = DefaultGap
	}
	surface := opts.Width
	if surface <= 0 {
		surface = int(^uint(0) >> 1)
	}
	frame := Frame{Popup: def.Name, Width: opts.Width}
	for _, c := range popup.Categories {
		entries := def.Entries(c)
		if len(entries) == 0 {
			continue
		}
		d := popup.MustDescribe(c)
		if len(frame.Lines) > 0 {
			frame.Lines = append(frame.Lines, Line{})
		}
		frame.Lines = append(frame.Lines, Line{Heading: d.Heading})

		cells := make([]Cell, len(entries))
		widths := make([]int, len(entries))
		for i, entry := range entries {
			cells[i] = formatEntry(d, entry, args)
			widths[i] = cells[i].Width
		}
		layout := table.Pack(widths, surface, opts.Gap, d.SingleColumn)
		for _, indexes := range layout.Lines {
			line := Line{Cells: make([]Cell, 0, len(indexes))}
			for n, idx := range indexes {
				cell := cells[idx]
				if n < len(indexes)-1 {
					cell.Pad = layout.Column - cell.Width
				}
				frame.Items = append(frame.Items, Position{ID: cell.ID, Line: len(frame.Lines), Cell: n})
				line.Cells = append(line.Cells, cell)
			}
			frame.Lines = append(frame.Lines, line)
		}
	}
	events.UI.Render(def.Name, opts.Width, len(frame.Lines))
	return frame
}

func formatEntry(d popup.Descriptor, entry popup.Entry, args state.ArgumentStore) Cell {
	segs := []Segment{
		{Text: d.Glyph(entry.Trigger), Role: RoleKey},
		{Text: " ", Role: RolePunctuation},
		{Text: entry.Description, Role: RoleDescription},
	}
	if d.ShowArgument && entry.Argument != "" {
		role := RoleArgument
		var value string
		if v, ok := args.Lookup(entry.Argument); ok && v.Enabled() {
			role = RoleArgumentEnabled
			if d.ShowValue {
				value = fmt.Sprintf("%q", v.Text)
			}
		}
		segs = append(segs,
			Segment{Text: " (", Role: RolePunctuation},
			Segment{Text: entry.Argument, Role: role},
		)
		if value != "" {
			segs = append(segs, Segment{Text: value, Role: RoleValue})
		}
		segs = append(segs, Segment{Text: ")", Role: RolePunctuation})
	}
	cell := Cell{ID: ItemID{Category: d.Category, Trigger: entry.Trigger}, Segments: segs}
	cell.Width = table.Width(cell.Text())
	return cell
}

// Plain returns the frame as unstyled text lines.
func (f Frame) Plain() []string {
	out := make([]string, 0, len(f.Lines))
	for _, line := range f.Lines {
		if line.Heading != "" {
			out = append(out, line.Heading)
			continue
		}
		var b strings.Builder
		for _, cell := range line.Cells {
			b.WriteString(cell.Text())
			b.WriteString(table.Spaces(cell.Pad))
		}
		out = append(out, b.String())
	}
	return out
}

// Find returns the position of id.
func (f Frame) Find(id ItemID) (Position, bool) {
	for _, pos := range f.Items {
		if pos.ID == id {
			return pos, true
		}
	}
	return Position{}, false
}

// Cell returns the rendered cell at pos.
func (f Frame) Cell(pos Position) Cell {
	return f.Lines[pos.Line].Cells[pos.Cell]
}
