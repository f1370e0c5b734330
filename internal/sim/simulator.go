// Package sim orchestrates the frame loop: it steps the gravity system
// once per frame, records trail history, accumulates metrics and hands
// render frames to whoever is drawing. Everything is single-threaded
// and strictly sequential; a Simulator must not be shared across
// goroutines.
package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/san-kum/orbits/internal/gravity"
	"github.com/san-kum/orbits/internal/render"
	"github.com/san-kum/orbits/internal/trail"
)

var (
	// ErrNonPositiveDt indicates a zero or negative time step.
	ErrNonPositiveDt = errors.New("sim: dt must be positive")

	// ErrNoFrames indicates a zero or negative frame budget.
	ErrNoFrames = errors.New("sim: frame count must be positive")
)

type Config struct {
	Dt     float64
	Frames int
}

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(sys *gravity.System, t float64)
	Value() float64
	Reset()
}

// Observer sees every rendered frame.
type Observer interface {
	OnFrame(f render.Frame, t float64)
}

type Result struct {
	States    [][]float64 // per frame: x, y, vx, vy per body
	Times     []float64
	Metrics   map[string]float64
	FramesRun int
}

type Simulator struct {
	sys       *gravity.System
	trails    *trail.Set
	metrics   []Metric
	observers []Observer
}

func New(sys *gravity.System, trailCapacity int) *Simulator {
	return &Simulator{
		sys:    sys,
		trails: trail.NewSet(len(sys.Bodies), trailCapacity),
	}
}

func (s *Simulator) System() *gravity.System { return s.sys }

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Frame builds the current render frame: one point per body with the
// marker-size hint, plus the fading trail segments derived from the
// history recorded so far.
func (s *Simulator) Frame() render.Frame {
	f := render.Frame{Points: make([]render.Point, len(s.sys.Bodies))}

	for i, b := range s.sys.Bodies {
		size := float64(render.MinorSize)
		if b.Primary {
			size = render.PrimarySize
		}
		f.Points[i] = render.Point{Pos: b.Pos, Color: b.Color, Size: size}
		f.Segments = append(f.Segments, s.trails.Recorder(i).Segments(b.Color)...)
	}

	return f
}

// Advance runs one frame: metrics observe the pre-step state, the
// system steps by dt, and the post-step positions join the trails.
func (s *Simulator) Advance(t, dt float64) {
	for _, m := range s.metrics {
		m.Observe(s.sys, t)
	}

	s.sys.Step(dt)

	for i, b := range s.sys.Bodies {
		s.trails.Record(i, b.Pos)
	}
}

// Run executes the configured number of frames headlessly and returns
// the recorded trajectory. The context is checked once per frame.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		States:  make([][]float64, 0, cfg.Frames+1),
		Times:   make([]float64, 0, cfg.Frames+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	t := 0.0
	result.States = append(result.States, s.stateRow())
	result.Times = append(result.Times, t)

	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		s.Advance(t, cfg.Dt)
		t += cfg.Dt
		result.FramesRun++

		result.States = append(result.States, s.stateRow())
		result.Times = append(result.Times, t)

		for _, obs := range s.observers {
			obs.OnFrame(s.Frame(), t)
		}
	}

	// Final observation so metrics cover the last state too.
	for _, m := range s.metrics {
		m.Observe(s.sys, t)
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback drives a live surface: the callback receives each
// frame and returns false to stop early.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, fn func(f render.Frame, t float64) bool) error {
	if err := validate(cfg); err != nil {
		return err
	}

	t := 0.0
	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.Advance(t, cfg.Dt)
		t += cfg.Dt

		if !fn(s.Frame(), t) {
			return nil
		}
	}

	return nil
}

func (s *Simulator) stateRow() []float64 {
	row := make([]float64, 0, len(s.sys.Bodies)*4)
	for _, b := range s.sys.Bodies {
		row = append(row, b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y)
	}
	return row
}

func validate(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w, got %v", ErrNonPositiveDt, cfg.Dt)
	}
	if cfg.Frames <= 0 {
		return fmt.Errorf("%w, got %d", ErrNoFrames, cfg.Frames)
	}
	return nil
}
