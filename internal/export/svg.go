// Package export renders frames to standalone SVG documents.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/orbits/internal/render"
)

// FrameToSVG converts a frame to an SVG document of size x size pixels.
// World coordinates in [-extent, extent] map onto the full canvas with
// y pointing up; trail segments carry their alpha as stroke-opacity.
func FrameToSVG(f render.Frame, extent float64, size int) string {
	px := func(w float64) float64 {
		return (w + extent) / (2 * extent) * float64(size)
	}
	py := func(w float64) float64 {
		return (1 - (w+extent)/(2*extent)) * float64(size)
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, size, size, size, size))

	for _, s := range f.Segments {
		sb.WriteString(fmt.Sprintf(
			`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-opacity="%.3f"/>`+"\n",
			px(s.From.X), py(s.From.Y), px(s.To.X), py(s.To.Y), s.Color, s.Alpha))
	}

	for _, p := range f.Points {
		// Marker size hints are scatter areas; radius scales with the
		// square root so the primary body reads larger, not huge.
		r := math.Sqrt(p.Size) * float64(size) / 800
		sb.WriteString(fmt.Sprintf(
			`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
			px(p.Pos.X), py(p.Pos.Y), r, p.Color))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}
