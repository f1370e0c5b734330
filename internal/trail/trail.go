// Package trail keeps bounded per-body position history for fading
// trail rendering. History carries no physical meaning; it exists only
// so surfaces can draw where a body has been.
package trail

import (
	"github.com/san-kum/orbits/internal/render"
	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultCapacity bounds a trail's history length.
const DefaultCapacity = 500

// Recorder holds one body's recent positions, oldest first. Once the
// capacity is reached every Record evicts the oldest entry (strict
// FIFO).
type Recorder struct {
	capacity int
	points   []r2.Vec
}

func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Recorder{
		capacity: capacity,
		points:   make([]r2.Vec, 0, capacity),
	}
}

// Record appends a position, evicting the oldest entry when the trail
// is full.
func (r *Recorder) Record(p r2.Vec) {
	if len(r.points) == r.capacity {
		copy(r.points, r.points[1:])
		r.points = r.points[:len(r.points)-1]
	}
	r.points = append(r.points, p)
}

func (r *Recorder) Len() int { return len(r.points) }

// Points returns the recorded positions oldest-first. The slice is a
// snapshot; mutating it does not affect the recorder.
func (r *Recorder) Points() []r2.Vec {
	out := make([]r2.Vec, len(r.points))
	copy(out, r.points)
	return out
}

// Segments derives the fading trail from the current history: one
// segment per consecutive position pair, alpha rising linearly from
// near zero on the oldest segment to exactly 1.0 on the newest. Fewer
// than two recorded points yield no segments. The result is rebuilt
// from scratch on every call.
func (r *Recorder) Segments(color string) []render.Segment {
	if len(r.points) < 2 {
		return nil
	}

	n := len(r.points) - 1
	segs := make([]render.Segment, n)
	for j := 0; j < n; j++ {
		segs[j] = render.Segment{
			From:  r.points[j],
			To:    r.points[j+1],
			Color: color,
			Alpha: float64(j+1) / float64(n),
		}
	}
	return segs
}

// Set bundles one recorder per body, addressed by the body's index in
// its system.
type Set struct {
	trails []*Recorder
}

func NewSet(n, capacity int) *Set {
	s := &Set{trails: make([]*Recorder, n)}
	for i := range s.trails {
		s.trails[i] = NewRecorder(capacity)
	}
	return s
}

func (s *Set) Record(i int, p r2.Vec) { s.trails[i].Record(p) }

func (s *Set) Recorder(i int) *Recorder { return s.trails[i] }

func (s *Set) Len() int { return len(s.trails) }
