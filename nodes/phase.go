package nodes

import "fmt"

// Quantity is what a set of phase nodes parameterizes for an end-effector.
type Quantity int

const (
	// Motion is the end-effector position. It is held still while in contact.
	Motion Quantity = iota

	// Force is the contact force. It is held at zero while in the air.
	Force
)

func (q Quantity) String() string {
	switch q {
	case Motion:
		return "motion"
	case Force:
		return "force"
	default:
		return fmt.Sprintf("Quantity(%d)", int(q))
	}
}

// PolyInfo describes one polynomial of a phase-based trajectory.
type PolyInfo struct {
	// Phase is the index of the phase which the polynomial belongs to.
	Phase int

	// InPhase is the position of the polynomial within its phase.
	InPhase int

	// PolysInPhase is the number of polynomials making up the phase.
	PolysInPhase int

	// Constant is true if the quantity is held fixed during the phase.
	Constant bool
}

func (pi PolyInfo) String() string {
	return fmt.Sprintf("Poly{phase=%d %d/%d const=%t}", pi.Phase, pi.InPhase, pi.PolysInPhase, pi.Constant)
}

// FirstPhaseConstant returns whether the first phase holds the quantity
// fixed. Motion is fixed while in contact, force is fixed (at zero) while not.
func FirstPhaseConstant(contactAtStart bool, q Quantity) bool {
	return (contactAtStart && q == Motion) || (!contactAtStart && q == Force)
}

// Segment splits phaseCount alternating phases into polynomials. Constant
// phases get a single polynomial, the others get polysPerVaryingPhase. A
// non-positive count of either yields no polynomials.
func Segment(phaseCount int, contactAtStart bool, polysPerVaryingPhase int, q Quantity) []PolyInfo {
	if phaseCount <= 0 || polysPerVaryingPhase <= 0 {
		return []PolyInfo{}
	}

	polys := make([]PolyInfo, 0, phaseCount*polysPerVaryingPhase)
	constant := FirstPhaseConstant(contactAtStart, q)

	for phase := 0; phase < phaseCount; phase++ {
		if constant {
			polys = append(polys, PolyInfo{Phase: phase, InPhase: 0, PolysInPhase: 1, Constant: true})
		} else {
			for j := 0; j < polysPerVaryingPhase; j++ {
				polys = append(polys, PolyInfo{Phase: phase, InPhase: j, PolysInPhase: polysPerVaryingPhase, Constant: false})
			}
		}

		constant = !constant
	}

	return polys
}
