package gravity

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// System is an ordered collection of bodies under mutual gravitation.
// Order is irrelevant to the physics and only pins legend/rendering
// order. G is fixed at construction so the system is testable with
// arbitrary gravitational constants.
type System struct {
	G      float64
	Bodies []*Body

	forces []r2.Vec
}

// NewSystem builds a system over the given bodies. The body set is
// fixed for the system's lifetime; bodies are never created or
// destroyed afterwards.
func NewSystem(g float64, bodies []*Body) *System {
	return &System{
		G:      g,
		Bodies: bodies,
		forces: make([]r2.Vec, len(bodies)),
	}
}

// PairwiseForce returns the force on a due to b under the system's G.
func (s *System) PairwiseForce(a, b *Body) r2.Vec {
	return Force(s.G, a, b)
}

// Step advances every body by dt seconds of semi-implicit Euler.
//
// The step is lock-step: all net forces are accumulated from the
// positions as they were on entry, and only then is any body updated.
// Self-pairs are skipped by index, so two bodies sharing identical
// state still interact with each other.
func (s *System) Step(dt float64) {
	for i, b := range s.Bodies {
		var net r2.Vec
		for j, other := range s.Bodies {
			if j == i {
				continue
			}
			net = r2.Add(net, Force(s.G, b, other))
		}
		s.forces[i] = net
	}

	for i, b := range s.Bodies {
		acc := r2.Scale(1/b.Mass, s.forces[i])
		b.Vel = r2.Add(b.Vel, r2.Scale(dt, acc))
		b.Pos = r2.Add(b.Pos, r2.Scale(dt, b.Vel))
	}
}

// Clone deep-copies the system, including body state.
func (s *System) Clone() *System {
	bodies := make([]*Body, len(s.Bodies))
	for i, b := range s.Bodies {
		bodies[i] = b.Clone()
	}
	return NewSystem(s.G, bodies)
}

// Energy returns total mechanical energy: kinetic plus pairwise
// gravitational potential.
func (s *System) Energy() float64 {
	ke := 0.0
	pe := 0.0

	for i, b := range s.Bodies {
		v2 := b.Vel.X*b.Vel.X + b.Vel.Y*b.Vel.Y
		ke += 0.5 * b.Mass * v2

		for j := i + 1; j < len(s.Bodies); j++ {
			r := r2.Norm(r2.Sub(s.Bodies[j].Pos, b.Pos))
			if r == 0 {
				continue
			}
			pe -= s.G * b.Mass * s.Bodies[j].Mass / r
		}
	}

	return ke + pe
}

// Momentum returns total linear momentum.
func (s *System) Momentum() r2.Vec {
	var p r2.Vec
	for _, b := range s.Bodies {
		p = r2.Add(p, r2.Scale(b.Mass, b.Vel))
	}
	return p
}

// AngularMomentum returns total angular momentum about the origin.
func (s *System) AngularMomentum() float64 {
	L := 0.0
	for _, b := range s.Bodies {
		L += b.Mass * (b.Pos.X*b.Vel.Y - b.Pos.Y*b.Vel.X)
	}
	return L
}
