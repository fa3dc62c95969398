package math3d

import (
	"fmt"
	"math"

	"github.com/adammck/stride/utils"
	"gonum.org/v1/gonum/num/quat"
)

// EulerAngles is an orientation as roll (about X), pitch (about Y) and yaw
// (about Z), in radians. The angles are applied in yaw, pitch, roll order.
// These are not safe to interpolate across large rotations.
type EulerAngles struct {
	Roll  float64
	Pitch float64
	Yaw   float64
}

var (
	IdentityOrientation = EulerAngles{}
)

func (ea EulerAngles) String() string {
	return fmt.Sprintf("&Euler{r=%+.2f° p=%+.2f° y=%+.2f°}", utils.Deg(ea.Roll), utils.Deg(ea.Pitch), utils.Deg(ea.Yaw))
}

// Vector returns the angles packed as (roll, pitch, yaw) into X, Y, Z, which
// is how they are splined.
func (ea EulerAngles) Vector() Vector3 {
	return Vector3{ea.Roll, ea.Pitch, ea.Yaw}
}

// EulerAnglesFromVector is the inverse of EulerAngles.Vector.
func EulerAnglesFromVector(v Vector3) EulerAngles {
	return EulerAngles{Roll: v.X, Pitch: v.Y, Yaw: v.Z}
}

// Quat returns the unit quaternion for this orientation.
func (ea EulerAngles) Quat() quat.Number {
	cr, sr := math.Cos(ea.Roll/2), math.Sin(ea.Roll/2)
	cp, sp := math.Cos(ea.Pitch/2), math.Sin(ea.Pitch/2)
	cy, sy := math.Cos(ea.Yaw/2), math.Sin(ea.Yaw/2)

	return quat.Number{
		Real: cr*cp*cy + sr*sp*sy,
		Imag: sr*cp*cy - cr*sp*sy,
		Jmag: cr*sp*cy + sr*cp*sy,
		Kmag: cr*cp*sy - sr*sp*cy,
	}
}

// EulerAnglesFromQuat converts a quaternion (which need not be normalized)
// into roll, pitch and yaw. At a pitch of ±90° the roll and yaw are not
// separable; all of the rotation about Z is then reported as yaw.
func EulerAnglesFromQuat(q quat.Number) EulerAngles {
	if n := quat.Abs(q); n > 0 {
		q = quat.Scale(1/n, q)
	}

	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag

	sp := 2 * (w*y - z*x)
	if sp >= 1 {
		return EulerAngles{Pitch: math.Pi / 2, Yaw: -2 * math.Atan2(x, w)}
	}
	if sp <= -1 {
		return EulerAngles{Pitch: -math.Pi / 2, Yaw: 2 * math.Atan2(x, w)}
	}

	return EulerAngles{
		Roll:  math.Atan2(2*(w*x+y*z), 1-2*(x*x+y*y)),
		Pitch: math.Asin(sp),
		Yaw:   math.Atan2(2*(w*z+x*y), 1-2*(y*y+z*z)),
	}
}
