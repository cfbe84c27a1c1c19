package help

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
)

var (
	rendererMu sync.Mutex
	// keyed by style and wrap width
	renderers = map[string]*glamour.TermRenderer{}
)

// Markdown renders doc for a terminal of the given width. Without colour
// support, or when glamour fails, the text comes back unstyled and styled
// is false.
func Markdown(doc string, width int) (body string, styled bool) {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return "", false
	}
	if width < 20 {
		width = 20
	}
	style := markdownStyle()
	key := style + ":" + strconv.Itoa(width)

	rendererMu.Lock()
	r := renderers[key]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			rendererMu.Unlock()
			return wordwrap.String(doc, width), false
		}
		renderers[key] = rr
		r = rr
	}
	rendererMu.Unlock()

	out, err := r.Render(doc)
	if err != nil {
		return wordwrap.String(doc, width), false
	}
	return strings.Trim(out, "\n"), style != "notty"
}

func markdownStyle() string {
	if lipgloss.ColorProfile() == termenv.Ascii {
		return "notty"
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
