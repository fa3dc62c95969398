package player

import (
	"github.com/adammck/stride/math3d"
)

// BuildStateSequence returns the nodes which the robot should pass through:
// the initial state, then one node at the end of each body segment. The body
// is held at the standing height and levelled, keeping its heading. Each Step
// segment takes the next footholds from the schedule and marks their legs as
// swinging towards that node.
func BuildStateSequence(initial State, segments []BodySegment, footholds []Foothold, height float64) []SplineNode {
	nodes := make([]SplineNode, 0, len(segments)+1)
	nodes = append(nodes, buildNode(initial, 0))

	prev := initial
	next := 0

	for i, seg := range segments {
		s := prev
		s.Swing = LegDataMap[bool]{}

		s.Base.Pos = math3d.Vector3{X: seg.End.Pos.X, Y: seg.End.Pos.Y, Z: height}
		s.Base.Vel = math3d.Vector3{X: seg.End.Vel.X, Y: seg.End.Vel.Y}
		s.Base.Acc = math3d.Vector3{X: seg.End.Acc.X, Y: seg.End.Acc.Y}
		s.Base.Ori = math3d.EulerAngles{Yaw: prev.Base.Euler().Yaw}.Quat()

		for j := 0; j < seg.steps(); j++ {
			if next >= len(footholds) {
				log.Warnf("segment %d steps, but all %d footholds are used", i, len(footholds))
				break
			}

			fh := footholds[next]
			s.Feet[fh.Leg] = fh.Pos
			s.Swing[fh.Leg] = true
			next++
		}

		nodes = append(nodes, buildNode(s, seg.Duration))
		prev = s
	}

	if next < len(footholds) {
		log.Warnf("%d footholds were never reached", len(footholds)-next)
	}

	return nodes
}

func buildNode(s State, t float64) SplineNode {
	return SplineNode{
		State: s,
		Ori:   s.Base.Euler().Vector(),
		T:     t,
	}
}
