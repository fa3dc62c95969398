package nodes

import "errors"

var (
	// ErrUnknownIndex is returned when a variable index has no recorded node
	// values. It indicates a caller or internal consistency fault.
	ErrUnknownIndex = errors.New("unknown variable index")

	// ErrUnknownNode is returned for node ids outside the node list.
	ErrUnknownNode = errors.New("unknown node")

	// ErrConstantNode is returned when asking for the phase of a node which
	// sits on the boundary of a constant phase, and so belongs to two phases.
	ErrConstantNode = errors.New("node is constant and has no single phase")

	// ErrPhaseOutOfRange is returned when no polynomial belongs to the
	// requested phase.
	ErrPhaseOutOfRange = errors.New("phase out of range")

	// ErrDurationCount is returned when a duration vector is too short for the
	// phases or polynomials it must cover.
	ErrDurationCount = errors.New("wrong number of durations")

	// ErrValueCount is returned when a variable vector does not match the
	// number of variable rows.
	ErrValueCount = errors.New("wrong number of variable values")
)
