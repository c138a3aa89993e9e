package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Palette shared by every shell message.
var (
	salmonPink = lipgloss.Color("#FFB3BA") // banner, failures
	mintGreen  = lipgloss.Color("#A8E6CF") // confirmations
	mutedGray  = lipgloss.Color("#6B7280") // prompts, menu entries
)

// styles renders shell messages. Styles are bound to the output writer so
// the color profile follows the actual terminal; plain writers get no escape
// codes.
type styles struct {
	enabled bool
	banner  lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		enabled: color,
		banner:  r.NewStyle().Foreground(salmonPink).Bold(true),
		success: r.NewStyle().Foreground(mintGreen),
		failure: r.NewStyle().Foreground(salmonPink),
		muted:   r.NewStyle().Foreground(mutedGray),
	}
}

func (s styles) paint(st lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return st.Render(text)
}
