package theme

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/atomicstack/argpopup/internal/render"
)

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Title             *lipgloss.Style
	Heading           *lipgloss.Style
	Key               *lipgloss.Style
	Description       *lipgloss.Style
	Punctuation       *lipgloss.Style
	Argument          *lipgloss.Style
	ArgumentEnabled   *lipgloss.Style
	Value             *lipgloss.Style
	SelectedItem      *lipgloss.Style
	Pending           *lipgloss.Style
	Error             *lipgloss.Style
	Info              *lipgloss.Style
	Footer            *lipgloss.Style
	PromptLabel       *lipgloss.Style
	PromptText        *lipgloss.Style
	PromptPlaceholder *lipgloss.Style
	Cursor            *lipgloss.Style
	HelpTitle         *lipgloss.Style
	HelpBody          *lipgloss.Style
}

var defaultStyles = Styles{
	Title: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	),
	Heading: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Key: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	Description: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Punctuation: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Argument: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	ArgumentEnabled: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Value: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("178")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Background(lipgloss.Color("238")),
	),
	Pending: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	PromptLabel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	PromptText: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	PromptPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")),
	),
	HelpTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	HelpBody: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// ForRole maps a rendered segment role to its style.
func (s *Styles) ForRole(role render.Role) *lipgloss.Style {
	switch role {
	case render.RoleHeading:
		return s.Heading
	case render.RoleKey:
		return s.Key
	case render.RoleDescription:
		return s.Description
	case render.RoleArgument:
		return s.Argument
	case render.RoleArgumentEnabled:
		return s.ArgumentEnabled
	case render.RoleValue:
		return s.Value
	default:
		return s.Punctuation
	}
}

// ConfigureColor picks the Lip Gloss colour profile. NO_COLOR and noColor
// force plain output; otherwise the terminal's own capabilities apply.
func ConfigureColor(noColor bool) termenv.Profile {
	if noColor || strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return termenv.Ascii
	}
	profile := termenv.ColorProfile()
	if strings.Contains(strings.ToLower(os.Getenv("TERM")), "256color") && profile == termenv.ANSI {
		profile = termenv.ANSI256
	}
	lipgloss.SetColorProfile(profile)
	return profile
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
