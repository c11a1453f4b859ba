package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// DefaultBarWidth is the number of cells in a bar.
const DefaultBarWidth = 50

// Glyphs used to draw bars.
const (
	BlockFilled = "█"
	BlockEmpty  = "░"
	ASCIIFilled = "#"
	ASCIIEmpty  = "-"
)

// Config controls how reports are styled.
type Config struct {
	// Color enables ANSI styling.
	Color bool
	// ASCII draws bars with ASCIIFilled and ASCIIEmpty.
	ASCII bool
	// OnlyBarColor styles nothing but the filled part of bars.
	OnlyBarColor bool
	// Width is the bar width in cells. Values below one select DefaultBarWidth.
	Width int
}

// Renderer draws bars and styled text for one output.
type Renderer struct {
	cfg      Config
	gradient Gradient
	styles   styles
}

// New returns a Renderer writing 24-bit color sequences when cfg.Color is
// set, regardless of what the terminal behind w advertises.
func New(w io.Writer, cfg Config) Renderer {
	if cfg.Width < 1 {
		cfg.Width = DefaultBarWidth
	}

	lg := lipgloss.NewRenderer(w)
	if cfg.Color {
		lg.SetColorProfile(termenv.TrueColor)
	} else {
		lg.SetColorProfile(termenv.Ascii)
	}

	return Renderer{
		cfg:      cfg,
		gradient: DefaultGradient(),
		styles:   newStyles(lg),
	}
}

// Config returns the renderer's configuration.
func (r Renderer) Config() Config {
	return r.cfg
}

// ColorFor returns the gradient color for the zero-based rank among total rows.
func (r Renderer) ColorFor(rank, total int) RGB {
	return r.gradient.ColorFor(rank, total)
}

// FilledCells returns how many of width cells a percentage fills.
// Any non-zero percentage fills at least one cell, and never more than width.
func FilledCells(percentage float64, width int) int {
	if width <= 0 || percentage <= 0 {
		return 0
	}

	filled := int(math.Floor(percentage / 100 * float64(width)))
	if filled == 0 {
		filled = 1
	}

	return min(filled, width)
}

// Bar renders a fixed-width bar for percentage followed by the percentage
// with two decimals, padded to a fixed width.
func (r Renderer) Bar(percentage float64, color RGB) string {
	filled := FilledCells(percentage, r.cfg.Width)

	fillGlyph, emptyGlyph := BlockFilled, BlockEmpty
	if r.cfg.ASCII {
		fillGlyph, emptyGlyph = ASCIIFilled, ASCIIEmpty
	}

	var sb strings.Builder

	if filled > 0 {
		cells := strings.Repeat(fillGlyph, filled)
		if r.cfg.Color {
			cells = trueColor(cells, color)
		}

		sb.WriteString(cells)
	}

	if rest := r.cfg.Width - filled; rest > 0 {
		cells := strings.Repeat(emptyGlyph, rest)
		if r.cfg.Color && !r.cfg.OnlyBarColor {
			cells = r.styles.track.Render(cells)
		}

		sb.WriteString(cells)
	}

	fmt.Fprintf(&sb, " %-7s", fmt.Sprintf("%.2f%%", percentage))

	return sb.String()
}

// trueColor wraps s in a 24-bit foreground sequence. Colors are not passed
// through lipgloss, which converts hex to floats and truncates (53 becomes 52).
func trueColor(s string, c RGB) string {
	return fmt.Sprintf("%s%s;2;%d;%d;%dm%s%s%sm",
		termenv.CSI, termenv.Foreground, c.R, c.G, c.B, s, termenv.CSI, termenv.ResetSeq)
}

// Title styles a report heading.
func (r Renderer) Title(s string) string {
	if !r.textColor() {
		return s
	}

	return r.styles.title.Render(s)
}

// Accent styles secondary report text such as separators.
func (r Renderer) Accent(s string) string {
	if !r.textColor() {
		return s
	}

	return r.styles.accent.Render(s)
}

func (r Renderer) textColor() bool {
	return r.cfg.Color && !r.cfg.OnlyBarColor
}
