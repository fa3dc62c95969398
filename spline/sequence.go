package spline

import (
	"gonum.org/v1/gonum/floats"
)

// Locate maps a global time onto a segment of a piecewise curve whose segment
// durations are given in order, returning the segment index and the time
// since that segment started. A time on a boundary belongs to the earlier
// segment. Times before zero map to the start of the first segment; times past
// the end map to the end of the last segment. An empty list returns (0, 0).
func Locate(durations []float64, t float64) (int, float64) {
	if len(durations) == 0 || t <= 0 {
		return 0, 0
	}

	for i, d := range durations {
		if t <= d {
			return i, t
		}

		t -= d
	}

	last := len(durations) - 1
	return last, durations[last]
}

// Sequence is a piecewise curve built from consecutive spliners.
type Sequence struct {
	segments  []Spliner3d
	durations []float64
}

func NewSequence(segments []Spliner3d) *Sequence {
	durations := make([]float64, len(segments))
	for i, s := range segments {
		durations[i] = s.Duration()
	}

	return &Sequence{
		segments:  segments,
		durations: durations,
	}
}

// Len returns the number of segments.
func (s *Sequence) Len() int {
	return len(s.segments)
}

// Segment returns the spliner at index i.
func (s *Sequence) Segment(i int) Spliner3d {
	return s.segments[i]
}

// Durations returns the duration of each segment, in order.
func (s *Sequence) Durations() []float64 {
	return append([]float64(nil), s.durations...)
}

func (s *Sequence) TotalTime() float64 {
	return floats.Sum(s.durations)
}

// GetPoint evaluates the curve at global time t, clamped to the range of the
// sequence. An empty sequence is always at the origin.
func (s *Sequence) GetPoint(t float64) Point3d {
	if len(s.segments) == 0 {
		return Point3d{}
	}

	id, local := Locate(s.durations, t)
	return s.segments[id].GetPoint(local)
}
