// ABOUTME: Shared lipgloss styles for CLI output
// ABOUTME: Palette follows the site theme: isabelline, charcoal, stone, burnt sienna

package styles

import "github.com/charmbracelet/lipgloss"

// Site palette
var (
	Charcoal = lipgloss.Color("#2D2D2D")
	Stone    = lipgloss.Color("#898681")
	Sienna   = lipgloss.Color("#C65D3B")
	Sage     = lipgloss.Color("#D3D9D4")
	Green    = lipgloss.Color("#10B981")
	Red      = lipgloss.Color("#EF4444")
)

var (
	Title = lipgloss.NewStyle().Bold(true)

	Meta = lipgloss.NewStyle().Foreground(Stone)

	Accent = lipgloss.NewStyle().Foreground(Sienna)

	OK = lipgloss.NewStyle().Foreground(Green)

	Err = lipgloss.NewStyle().Foreground(Red)
)
