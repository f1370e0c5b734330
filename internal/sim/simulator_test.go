package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/orbits/internal/gravity"
	"github.com/san-kum/orbits/internal/render"
	"gonum.org/v1/gonum/spatial/r2"
)

func twoBodySystem() *gravity.System {
	return gravity.NewSystem(gravity.DefaultG, []*gravity.Body{
		{Name: "Sun", Color: "#ffff00", Mass: 1.989e30, Primary: true},
		{Name: "Earth", Color: "#0000ff", Mass: 5.972e24, Pos: r2.Vec{X: gravity.AU}, Vel: r2.Vec{Y: 2.978e4}},
	})
}

func TestSimulatorRun(t *testing.T) {
	s := New(twoBodySystem(), 500)

	result, err := s.Run(context.Background(), Config{Dt: 3600, Frames: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.States) != 11 {
		t.Errorf("expected 11 states, got %d", len(result.States))
	}
	if len(result.Times) != 11 {
		t.Errorf("expected 11 times, got %d", len(result.Times))
	}
	if result.FramesRun != 10 {
		t.Errorf("FramesRun = %d, want 10", result.FramesRun)
	}
	if got := len(result.States[0]); got != 8 {
		t.Errorf("state row width = %d, want 8 (x,y,vx,vy per body)", got)
	}
	if result.Times[10] != 36000 {
		t.Errorf("final time = %v, want 36000", result.Times[10])
	}

	// Earth moved, the recorded rows must differ.
	if result.States[0][4] == result.States[10][4] && result.States[0][5] == result.States[10][5] {
		t.Error("earth position did not change over the run")
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s := New(twoBodySystem(), 500)

	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"zero dt", Config{Dt: 0, Frames: 10}, ErrNonPositiveDt},
		{"negative dt", Config{Dt: -1, Frames: 10}, ErrNonPositiveDt},
		{"zero frames", Config{Dt: 1, Frames: 0}, ErrNoFrames},
		{"negative frames", Config{Dt: 1, Frames: -5}, ErrNoFrames},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Run(context.Background(), tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSimulatorContextCancel(t *testing.T) {
	s := New(twoBodySystem(), 500)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.Run(ctx, Config{Dt: 3600, Frames: 100})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if result.FramesRun != 0 {
		t.Errorf("FramesRun = %d after immediate cancel", result.FramesRun)
	}
}

type countingMetric struct {
	observed int
}

func (c *countingMetric) Name() string                           { return "count" }
func (c *countingMetric) Observe(sys *gravity.System, t float64) { c.observed++ }
func (c *countingMetric) Value() float64                         { return float64(c.observed) }
func (c *countingMetric) Reset()                                 { c.observed = 0 }

func TestSimulatorMetrics(t *testing.T) {
	s := New(twoBodySystem(), 500)
	m := &countingMetric{observed: 99} // Run must Reset first
	s.AddMetric(m)

	result, err := s.Run(context.Background(), Config{Dt: 3600, Frames: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// One observation per frame plus the final state.
	if result.Metrics["count"] != 11 {
		t.Errorf("metric observed %v times, want 11", result.Metrics["count"])
	}
}

func TestSimulatorFrame(t *testing.T) {
	s := New(twoBodySystem(), 500)

	f := s.Frame()
	if len(f.Points) != 2 {
		t.Fatalf("frame has %d points, want 2", len(f.Points))
	}
	if f.Points[0].Size != render.PrimarySize {
		t.Errorf("primary marker size = %v, want %v", f.Points[0].Size, render.PrimarySize)
	}
	if f.Points[1].Size != render.MinorSize {
		t.Errorf("minor marker size = %v, want %v", f.Points[1].Size, render.MinorSize)
	}
	if f.Points[1].Color != "#0000ff" {
		t.Errorf("point color = %q, want body color", f.Points[1].Color)
	}
	if len(f.Segments) != 0 {
		t.Errorf("fresh simulator has %d trail segments, want 0", len(f.Segments))
	}

	// After a few frames the trails produce segments in body color.
	for i := 0; i < 3; i++ {
		s.Advance(float64(i)*3600, 3600)
	}
	f = s.Frame()
	if len(f.Segments) != 2+2 {
		t.Errorf("got %d segments, want 2 per body", len(f.Segments))
	}
	for _, seg := range f.Segments {
		if seg.Alpha <= 0 || seg.Alpha > 1 {
			t.Errorf("segment alpha %v out of (0,1]", seg.Alpha)
		}
	}
}

type frameCollector struct {
	frames []render.Frame
}

func (f *frameCollector) OnFrame(fr render.Frame, t float64) {
	f.frames = append(f.frames, fr)
}

func TestSimulatorObservers(t *testing.T) {
	s := New(twoBodySystem(), 500)
	obs := &frameCollector{}
	s.AddObserver(obs)

	if _, err := s.Run(context.Background(), Config{Dt: 3600, Frames: 5}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(obs.frames) != 5 {
		t.Fatalf("observer saw %d frames, want 5", len(obs.frames))
	}
	if len(obs.frames[0].Points) != 2 {
		t.Errorf("observed frame has %d points, want 2", len(obs.frames[0].Points))
	}
}

func TestSimulatorRunWithCallback(t *testing.T) {
	s := New(twoBodySystem(), 500)

	frames := 0
	err := s.RunWithCallback(context.Background(), Config{Dt: 3600, Frames: 100},
		func(f render.Frame, t float64) bool {
			frames++
			return frames < 7
		})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if frames != 7 {
		t.Errorf("callback ran %d times, want 7 (early stop)", frames)
	}
}
