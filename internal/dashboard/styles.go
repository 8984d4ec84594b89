package dashboard

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/shelfmon/shelfmon/internal/enclosure"
)

// Dashboard color palette.
const (
	ColorBorder = lipgloss.Color("#2A3A4A")

	ColorHealthy  = lipgloss.Color("#2ECC71")
	ColorWarning  = lipgloss.Color("#F1C40F")
	ColorCritical = lipgloss.Color("#E74C3C")

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#A8B8C8")
	ColorTextMuted     = lipgloss.Color("#5A6A7A")

	ColorAccent = lipgloss.Color("#3498DB")
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	TileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	TileTitleStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary).
			Bold(true)

	SelectedTabStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true).
				Underline(true)

	TabStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorCritical)

	// Slot grid cells.
	SlotEmptyStyle    = lipgloss.NewStyle().Foreground(ColorTextMuted)
	SlotOnlineStyle   = lipgloss.NewStyle().Foreground(ColorHealthy)
	SlotDegradedStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	SlotFaultedStyle  = lipgloss.NewStyle().Foreground(ColorCritical).Bold(true)
	SlotSelectedStyle = lipgloss.NewStyle().Foreground(ColorTextPrimary).
				Background(ColorAccent).Bold(true)
)

// hasDarkBackground is read once; light terminals get the muted text
// darkened so the footer stays legible.
var hasDarkBackground = termenv.HasDarkBackground()

func init() {
	if !hasDarkBackground {
		FooterStyle = FooterStyle.Foreground(lipgloss.Color("#4A4A4A"))
	}
}

// DisableColors forces plain output regardless of terminal support,
// backing the no_color config setting.
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// statusStyle maps a pool disk status to its display style.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case enclosure.DiskStatusOnline:
		return SlotOnlineStyle
	case enclosure.DiskStatusFaulted:
		return SlotFaultedStyle
	case "":
		return SlotEmptyStyle
	default:
		return SlotDegradedStyle
	}
}
