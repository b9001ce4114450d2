package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme groups the styles used by the text renderer.
type Theme struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Path    lipgloss.Style
	Muted   lipgloss.Style
	OK      lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
}

// NewTheme returns the styles bound to w. With color disabled every style
// renders its input unchanged.
func NewTheme(w io.Writer, color bool) Theme {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
		plain := r.NewStyle()
		return Theme{
			Title:   plain,
			Label:   plain,
			Path:    plain,
			Muted:   plain,
			OK:      plain,
			Error:   plain,
			Warning: plain,
		}
	}
	r.SetColorProfile(termenv.ANSI256)
	return Theme{
		Title:   r.NewStyle().Bold(true),
		Label:   r.NewStyle().Bold(true),
		Path:    r.NewStyle().Foreground(lipgloss.Color("74")),
		Muted:   r.NewStyle().Faint(true),
		OK:      r.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		Error:   r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Warning: r.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	}
}
