package gravity

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func relClose(got, want, tol float64) bool {
	if want == 0 {
		return math.Abs(got) <= tol
	}
	return math.Abs(got-want) <= tol*math.Abs(want)
}

func TestSystem_StepTwoBody(t *testing.T) {
	sun := &Body{Name: "Sun", Mass: 1.989e30, Primary: true}
	earth := &Body{Name: "Earth", Mass: 5.972e24, Pos: r2.Vec{X: AU}, Vel: r2.Vec{Y: 2.978e4}}
	sys := NewSystem(DefaultG, []*Body{sun, earth})

	dt := 3600.0
	before := earth.Pos
	sys.Step(dt)

	// Velocity gains G*M/r² * dt toward the sun.
	wantDv := DefaultG * sun.Mass / (AU * AU) * dt
	if !relClose(-earth.Vel.X, wantDv, 1e-3) {
		t.Errorf("earth dvx = %v, want %v toward sun", earth.Vel.X, -wantDv)
	}
	if !relClose(earth.Vel.Y, 2.978e4, 1e-3) {
		t.Errorf("earth vy = %v, want ~%v", earth.Vel.Y, 2.978e4)
	}

	// Semi-implicit Euler: the position moves by the updated velocity.
	dp := r2.Sub(earth.Pos, before)
	if !relClose(r2.Norm(dp), r2.Norm(earth.Vel)*dt, 1e-3) {
		t.Errorf("|dpos| = %v, want %v", r2.Norm(dp), r2.Norm(earth.Vel)*dt)
	}
}

func TestSystem_StepSimultaneity(t *testing.T) {
	mk := func() []*Body {
		return []*Body{
			{Mass: 1e30, Pos: r2.Vec{X: -1e10}},
			{Mass: 2e30, Pos: r2.Vec{X: 1e10}},
			{Mass: 5e29, Pos: r2.Vec{Y: 2e10}, Vel: r2.Vec{X: 1e3}},
		}
	}

	dt := 1e4
	sys := NewSystem(DefaultG, mk())
	sys.Step(dt)

	// Reference: net forces from the initial snapshot, then all updates.
	ref := mk()
	forces := make([]r2.Vec, len(ref))
	for i, b := range ref {
		for j, o := range ref {
			if i == j {
				continue
			}
			forces[i] = r2.Add(forces[i], Force(DefaultG, b, o))
		}
	}
	for i, b := range ref {
		b.Vel = r2.Add(b.Vel, r2.Scale(dt/b.Mass, forces[i]))
		b.Pos = r2.Add(b.Pos, r2.Scale(dt, b.Vel))
	}

	for i := range ref {
		got, want := sys.Bodies[i], ref[i]
		if got.Pos != want.Pos || got.Vel != want.Vel {
			t.Errorf("body %d: got pos=%v vel=%v, want pos=%v vel=%v",
				i, got.Pos, got.Vel, want.Pos, want.Vel)
		}
	}
}

func TestSystem_SingleBodyIsFixed(t *testing.T) {
	b := &Body{Name: "Sun", Mass: 1.989e30, Pos: r2.Vec{X: 42}, Vel: r2.Vec{}}
	sys := NewSystem(DefaultG, []*Body{b})

	for i := 0; i < 100; i++ {
		sys.Step(DefaultDt)
	}

	if b.Pos.X != 42 || b.Pos.Y != 0 || b.Vel.X != 0 || b.Vel.Y != 0 {
		t.Errorf("single body moved: pos=%v vel=%v", b.Pos, b.Vel)
	}
}

func TestSystem_MomentumConserved(t *testing.T) {
	sys := NewSystem(DefaultG, []*Body{
		{Mass: 1.989e30},
		{Mass: 5.972e24, Pos: r2.Vec{X: AU}, Vel: r2.Vec{Y: 2.978e4}},
		{Mass: 0.64e24, Pos: r2.Vec{Y: -1.5 * AU}, Vel: r2.Vec{X: 24080}},
	})

	p0 := sys.Momentum()
	scale := r2.Norm(p0)
	for i := 0; i < 50; i++ {
		sys.Step(DefaultDt)
	}
	p1 := sys.Momentum()

	if math.Abs(p1.X-p0.X) > 1e-9*scale || math.Abs(p1.Y-p0.Y) > 1e-9*scale {
		t.Errorf("momentum drifted: %v -> %v", p0, p1)
	}
}

func TestSystem_Diagnostics(t *testing.T) {
	sun := &Body{Mass: 1.989e30}
	earth := &Body{Mass: 5.972e24, Pos: r2.Vec{X: AU}, Vel: r2.Vec{Y: 2.978e4}}
	sys := NewSystem(DefaultG, []*Body{sun, earth})

	ke := 0.5 * earth.Mass * 2.978e4 * 2.978e4
	pe := -DefaultG * sun.Mass * earth.Mass / AU
	if !relClose(sys.Energy(), ke+pe, 1e-12) {
		t.Errorf("Energy() = %v, want %v", sys.Energy(), ke+pe)
	}

	if !relClose(sys.Momentum().Y, earth.Mass*2.978e4, 1e-12) {
		t.Errorf("Momentum().Y = %v, want %v", sys.Momentum().Y, earth.Mass*2.978e4)
	}

	wantL := earth.Mass * AU * 2.978e4
	if !relClose(sys.AngularMomentum(), wantL, 1e-12) {
		t.Errorf("AngularMomentum() = %v, want %v", sys.AngularMomentum(), wantL)
	}
}

func TestSystem_Clone(t *testing.T) {
	sys := NewSystem(DefaultG, []*Body{
		{Name: "Sun", Mass: 1.989e30},
		{Name: "Earth", Mass: 5.972e24, Pos: r2.Vec{X: AU}, Vel: r2.Vec{Y: 2.978e4}},
	})

	cp := sys.Clone()
	cp.Step(DefaultDt)

	if sys.Bodies[1].Pos.X != AU {
		t.Error("stepping a clone mutated the original system")
	}
}
