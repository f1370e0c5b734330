// Package render defines the contract between the simulation and any
// rendering surface, plus a braille terminal surface implementation.
//
// The simulation side only ever produces a [Frame]; what a surface does
// with it (terminal cells, window pixels, SVG markup) is its own
// business.
package render

import "gonum.org/v1/gonum/spatial/r2"

// Marker size hints. The central body is drawn noticeably larger than
// the rest, everything else is a small dot.
const (
	PrimarySize = 100
	MinorSize   = 10
)

// Point is one body's position for a single frame.
type Point struct {
	Pos   r2.Vec
	Color string
	Size  float64
}

// Segment is one fading-trail line segment. Alpha is in (0, 1], newest
// segments carry the highest value.
type Segment struct {
	From  r2.Vec
	To    r2.Vec
	Color string
	Alpha float64
}

// Frame is everything a surface needs to draw one animation frame.
type Frame struct {
	Points   []Point
	Segments []Segment
}

// Surface consumes frames. Implementations own all drawing technology
// choices; the simulation never sees past this interface.
type Surface interface {
	Draw(f Frame)
}
