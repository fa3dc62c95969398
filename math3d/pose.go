package math3d

import (
	"fmt"
)

type Pose struct {
	Position    Vector3
	Orientation EulerAngles
}

func (p Pose) String() string {
	return fmt.Sprintf("Pose{x=%+07.3f y=%+07.3f z=%+07.3f, %s}", p.Position.X, p.Position.Y, p.Position.Z, p.Orientation)
}

// ToWorld returns a matrix to transform a vector in the pose's coordinate
// space into the world space.
func (p Pose) ToWorld() Matrix44 {
	return MakeMatrix44(p.Position, p.Orientation)
}

// ToLocal returns a matrix to transform a vector in the world coordinate space
// into the pose's space.
func (p Pose) ToLocal() Matrix44 {
	return p.ToWorld().RigidInverse()
}
