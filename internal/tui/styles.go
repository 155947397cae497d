package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/seezee/launcherhub/internal/models"
)

// Fixed palette; the accent is supplied by the hub at runtime.
var (
	textCol   = lipgloss.Color("#E5E7EB")
	mutedCol  = lipgloss.Color("#6B7280")
	surface   = lipgloss.Color("#1F2937")
	okCol     = lipgloss.Color("#22C55E")
	warnCol   = lipgloss.Color("#F59E0B")
	dangerCol = lipgloss.Color("#EF4444")
)

// Styles is the set of styles derived from one accent colour.
type Styles struct {
	Accent    lipgloss.Color
	Brand     lipgloss.Style
	TabActive lipgloss.Style
	Tab       lipgloss.Style
	Panel     lipgloss.Style
	Title     lipgloss.Style
	Selected  lipgloss.Style
	Item      lipgloss.Style
	Muted     lipgloss.Style
	OK        lipgloss.Style
	Warn      lipgloss.Style
	Error     lipgloss.Style
}

// NewStyles tints the UI with accent.
func NewStyles(accent models.RGB) Styles {
	c := lipgloss.Color(accent.Hex())
	return Styles{
		Accent: c,
		Brand:  lipgloss.NewStyle().Foreground(c).Bold(true),
		TabActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(c).
			Bold(true).
			Padding(0, 2),
		Tab: lipgloss.NewStyle().
			Foreground(mutedCol).
			Background(surface).
			Padding(0, 2),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c).
			Padding(0, 1),
		Title:    lipgloss.NewStyle().Foreground(c).Bold(true).MarginBottom(1),
		Selected: lipgloss.NewStyle().Foreground(c).Bold(true),
		Item:     lipgloss.NewStyle().Foreground(textCol),
		Muted:    lipgloss.NewStyle().Foreground(mutedCol),
		OK:       lipgloss.NewStyle().Foreground(okCol),
		Warn:     lipgloss.NewStyle().Foreground(warnCol),
		Error:    lipgloss.NewStyle().Foreground(dangerCol),
	}
}

// Swatch renders a small block in rgb.
func Swatch(rgb models.RGB) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(rgb.Hex())).Render("    ")
}
