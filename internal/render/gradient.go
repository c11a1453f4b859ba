package render

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultStops runs from the brightest color (rank 0) to the dimmest (last rank).
//
//nolint:gochecknoglobals // Config constant
var DefaultStops = []string{"#35FE09", "#2C9918", "#2A5322"}

// RGB is a 24-bit color.
type RGB struct {
	R, G, B uint8
}

// Gradient is a piecewise-linear interpolation between evenly spaced stops.
type Gradient struct {
	stops []RGB
}

// NewGradient parses hex color stops. At least one stop is required.
func NewGradient(hexStops ...string) (Gradient, error) {
	if len(hexStops) == 0 {
		return Gradient{}, errors.New("gradient needs at least one stop")
	}

	stops := make([]RGB, 0, len(hexStops))

	for _, h := range hexStops {
		c, err := colorful.Hex(h)
		if err != nil {
			return Gradient{}, fmt.Errorf("parsing gradient stop %q: %w", h, err)
		}

		r, g, b := c.RGB255()
		stops = append(stops, RGB{R: r, G: g, B: b})
	}

	return Gradient{stops: stops}, nil
}

// DefaultGradient returns the gradient built from DefaultStops.
func DefaultGradient() Gradient {
	g, err := NewGradient(DefaultStops...)
	if err != nil {
		panic(err)
	}

	return g
}

// At returns the color at position t, clamped to [0, 1].
func (g Gradient) At(t float64) RGB {
	n := len(g.stops)

	switch {
	case n == 0:
		return RGB{}
	case n == 1 || t <= 0:
		return g.stops[0]
	case t >= 1:
		return g.stops[n-1]
	}

	pos := t * float64(n-1)

	seg := int(pos)
	if seg >= n-1 {
		seg = n - 2
		pos = float64(n - 1)
	}

	frac := pos - float64(seg)
	from, to := g.stops[seg], g.stops[seg+1]

	return RGB{
		R: lerp(from.R, to.R, frac),
		G: lerp(from.G, to.G, frac),
		B: lerp(from.B, to.B, frac),
	}
}

// ColorFor returns the color for the zero-based rank among total entries.
// The first rank maps to the first stop and the last rank to the last stop.
func (g Gradient) ColorFor(rank, total int) RGB {
	t := 0.0
	if total > 1 {
		t = float64(rank) / float64(total-1)
	}

	return g.At(t)
}

// lerp interpolates one channel, rounding half up.
func lerp(from, to uint8, frac float64) uint8 {
	return uint8((1-frac)*float64(from) + frac*float64(to) + 0.5)
}
