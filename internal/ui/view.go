package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/argpopup/internal/render"
)

type styledLine struct {
	text  string
	style *lipgloss.Style
	// raw lines already carry ANSI escapes.
	raw bool
	// whole lines hold popup items and are never truncated.
	whole bool
}

// View renders the popup, or the prompt or help page on top of it.
func (m *Model) View() string {
	if m.done {
		return ""
	}
	if m.mode == ModeHelp && m.doc != nil {
		return m.viewHelp()
	}

	lines := []styledLine{{text: m.session.Popup().DisplayTitle(), style: styles.Title}}
	lines = append(lines, m.frameLines()...)

	switch {
	case m.mode == ModePrompt && m.prompt != nil:
		lines = append(lines, styledLine{})
		label := m.prompt.Label()
		if styles.PromptLabel != nil {
			label = styles.PromptLabel.Render(label)
		}
		lines = append(lines,
			styledLine{text: label + m.prompt.InputView(), raw: true},
			styledLine{text: m.prompt.Help(), style: styles.Info},
		)
	case m.session.HelpPending():
		lines = append(lines, styledLine{text: "Help for: (? again for the manual)", style: styles.Pending})
	case m.session.Pending() != "":
		lines = append(lines, styledLine{text: fmt.Sprintf("%s…", m.session.Pending()), style: styles.Pending})
	}

	if m.errMsg != "" {
		lines = append(lines, styledLine{text: m.errMsg, style: styles.Error})
	} else if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}

	footer := m.footerLine()
	height := m.height
	if footer != nil && height > 0 {
		height--
	}
	lines = limitHeight(applyWidth(lines, m.width), height, m.width)
	if footer != nil {
		lines = append(lines, *footer)
	}
	return renderLines(lines)
}

func (m *Model) frameLines() []styledLine {
	frame := m.session.Frame(m.width)
	selected, hasSelected := m.session.Selected()
	out := make([]styledLine, 0, len(frame.Lines))
	for _, line := range frame.Lines {
		switch {
		case line.Heading != "":
			out = append(out, styledLine{text: line.Heading, style: styles.Heading})
		case len(line.Cells) == 0:
			out = append(out, styledLine{})
		default:
			var b strings.Builder
			for _, cell := range line.Cells {
				b.WriteString(renderCell(cell, hasSelected && cell.ID == selected))
				b.WriteString(strings.Repeat(" ", cell.Pad))
			}
			out = append(out, styledLine{text: b.String(), raw: true, whole: true})
		}
	}
	return out
}

func renderCell(cell render.Cell, selected bool) string {
	var b strings.Builder
	for _, seg := range cell.Segments {
		style := styles.ForRole(seg.Role)
		if style == nil {
			b.WriteString(seg.Text)
			continue
		}
		s := *style
		if selected && styles.SelectedItem != nil {
			s = s.Inherit(*styles.SelectedItem)
		}
		b.WriteString(s.Render(seg.Text))
	}
	return b.String()
}

func (m *Model) viewHelp() string {
	title := m.doc.result.Title
	if title == "" {
		title = m.doc.result.Target
	}
	lines := []styledLine{
		{text: title, style: styles.HelpTitle},
		{},
	}
	for _, l := range strings.Split(m.doc.body, "\n") {
		if m.doc.styled {
			lines = append(lines, styledLine{text: l, raw: true})
			continue
		}
		lines = append(lines, styledLine{text: l, style: styles.HelpBody})
	}
	lines = append(lines, styledLine{}, styledLine{text: "Press any key to return.", style: styles.Footer})
	return renderLines(limitHeight(applyWidth(lines, m.width), m.height, m.width))
}

func (m *Model) footerLine() *styledLine {
	if !m.showFooter {
		return nil
	}
	m.footer.Width = m.width
	return &styledLine{text: m.footer.View(m.session.Table().Keys), raw: true}
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(infoTTL)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.forceClearInfo()
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		switch {
		case line.whole:
		case line.raw:
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width), "…")
			}
		default:
			text = truncateText(text, width)
		}
		result[i] = line
		result[i].text = text
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if !line.raw && line.style != nil {
			out[i] = line.style.Render(line.text)
			continue
		}
		out[i] = line.text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
