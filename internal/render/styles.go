package render

import "github.com/charmbracelet/lipgloss"

// Report colors
const (
	ColorHeader lipgloss.Color = "#65984B"
	ColorTrack  lipgloss.Color = "#585858" // Neutral gray - empty bar cells
)

type styles struct {
	title  lipgloss.Style
	accent lipgloss.Style
	track  lipgloss.Style
}

func newStyles(lg *lipgloss.Renderer) styles {
	return styles{
		title: lg.NewStyle().
			Bold(true).
			Foreground(ColorHeader),
		accent: lg.NewStyle().
			Foreground(ColorHeader),
		track: lg.NewStyle().
			Foreground(ColorTrack),
	}
}
