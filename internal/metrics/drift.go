// Package metrics provides conservation diagnostics for simulation
// runs. Explicit Euler integration drifts by construction; these track
// how far a run has strayed from its initial invariants.
package metrics

import (
	"math"

	"github.com/san-kum/orbits/internal/gravity"
	"gonum.org/v1/gonum/spatial/r2"
)

// EnergyDrift tracks the maximum relative deviation of total mechanical
// energy from its value at the first observation.
type EnergyDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(sys *gravity.System, t float64) {
	energy := sys.Energy()

	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// MomentumDrift tracks the maximum absolute deviation of total linear
// momentum from its initial vector. Pairwise forces cancel exactly, so
// anything beyond floating-point noise signals an integrator bug.
type MomentumDrift struct {
	initial  r2.Vec
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{}
}

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(sys *gravity.System, t float64) {
	p := sys.Momentum()

	if m.samples == 0 {
		m.initial = p
	}
	m.samples++

	d := r2.Norm(r2.Sub(p, m.initial))
	m.maxDrift = math.Max(m.maxDrift, d)
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = r2.Vec{}
	m.maxDrift = 0
	m.samples = 0
}
