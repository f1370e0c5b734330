package gravity

import (
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// DefaultG is Newton's gravitational constant in m³·kg⁻¹·s⁻².
	DefaultG = 6.673e-11

	// DefaultDt is the simulated seconds advanced per frame.
	DefaultDt = 600 * 60

	// AU is one astronomical unit in meters.
	AU = 1.5e11
)

// Body is a point mass. Mass is constant for the body's lifetime;
// Pos and Vel mutate once per step. Name and Color exist only for
// rendering and legend order, Primary marks the central body so
// surfaces can draw it with a larger marker.
type Body struct {
	Name    string
	Color   string
	Mass    float64
	Pos     r2.Vec
	Vel     r2.Vec
	Primary bool
}

// Clone returns an independent copy of the body.
func (b *Body) Clone() *Body {
	c := *b
	return &c
}

// Force returns the gravitational force exerted on a by b under
// gravitational constant g.
//
// Coincident bodies (zero separation) yield a zero force. That is a
// policy choice, not physics: the 1/r² law is singular at r=0 and this
// package has no collision model, so the degenerate pair simply does
// not interact for that step.
func Force(g float64, a, b *Body) r2.Vec {
	d := r2.Sub(b.Pos, a.Pos)
	r := r2.Norm(d)
	if r == 0 {
		return r2.Vec{}
	}
	f := g * a.Mass * b.Mass / (r * r)
	return r2.Scale(f/r, d)
}
