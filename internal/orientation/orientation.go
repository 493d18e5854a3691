package orientation

import (
	"math"
)

// Quaternion is the canonical orientation representation for the app.
// Components are in (w, x, y, z) order, nominally unit-norm; the wire
// formats do not enforce normalization, so consumers that need a pure
// rotation should call Normalized first.
type Quaternion struct {
	W float64 `json:"w"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Identity returns the identity rotation.
func Identity() Quaternion {
	return Quaternion{W: 1}
}

// Norm returns the quaternion magnitude.
func (q Quaternion) Norm() float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// Normalized returns a unit quaternion with the same direction.
// A degenerate (near-zero) quaternion normalizes to the identity.
func (q Quaternion) Normalized() Quaternion {
	n := q.Norm()
	if n < 1e-12 {
		return Identity()
	}
	return Quaternion{W: q.W / n, X: q.X / n, Y: q.Y / n, Z: q.Z / n}
}

// FromTiltAngles builds a rotation from the legacy two-axis tilt reading.
// The two angles (degrees) are treated as the x and y components of a
// rotation vector; the rotation is about that axis by its magnitude.
// Both angles zero yields the identity.
func FromTiltAngles(angleXDeg, angleYDeg float64) Quaternion {
	rx := angleXDeg * math.Pi / 180.0
	ry := angleYDeg * math.Pi / 180.0

	angle := math.Sqrt(rx*rx + ry*ry)
	if angle < 1e-12 {
		return Identity()
	}

	s := math.Sin(angle/2) / angle
	return Quaternion{
		W: math.Cos(angle / 2),
		X: rx * s,
		Y: ry * s,
		Z: 0,
	}
}

// FromEulerDegrees builds a quaternion from ZYX Euler angles in degrees
// (yaw about Z, then pitch about Y, then roll about X).
func FromEulerDegrees(rollDeg, pitchDeg, yawDeg float64) Quaternion {
	r := rollDeg * math.Pi / 360.0 // half angles
	p := pitchDeg * math.Pi / 360.0
	y := yawDeg * math.Pi / 360.0

	sr, cr := math.Sin(r), math.Cos(r)
	sp, cp := math.Sin(p), math.Cos(p)
	sy, cy := math.Sin(y), math.Cos(y)

	return Quaternion{
		W: cr*cp*cy + sr*sp*sy,
		X: sr*cp*cy - cr*sp*sy,
		Y: cr*sp*cy + sr*cp*sy,
		Z: cr*cp*sy - sr*sp*cy,
	}
}

// Pose is the roll/pitch/yaw (degrees) view of an orientation, used for
// console readouts and JSON payloads.
type Pose struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// Pose converts the quaternion to ZYX Euler angles in degrees.
func (q Quaternion) Pose() Pose {
	u := q.Normalized()

	// roll (x-axis rotation)
	sinr := 2 * (u.W*u.X + u.Y*u.Z)
	cosr := 1 - 2*(u.X*u.X+u.Y*u.Y)
	roll := math.Atan2(sinr, cosr)

	// pitch (y-axis rotation), clamped at the gimbal singularity
	sinp := 2 * (u.W*u.Y - u.Z*u.X)
	var pitch float64
	if math.Abs(sinp) >= 1 {
		pitch = math.Copysign(math.Pi/2, sinp)
	} else {
		pitch = math.Asin(sinp)
	}

	// yaw (z-axis rotation)
	siny := 2 * (u.W*u.Z + u.X*u.Y)
	cosy := 1 - 2*(u.Y*u.Y+u.Z*u.Z)
	yaw := math.Atan2(siny, cosy)

	const degPerRad = 180.0 / math.Pi
	return Pose{
		Roll:  roll * degPerRad,
		Pitch: pitch * degPerRad,
		Yaw:   yaw * degPerRad,
	}
}

// RotationMatrix returns the 3x3 rotation matrix (row-major) equivalent
// to the quaternion.
func (q Quaternion) RotationMatrix() [3][3]float64 {
	u := q.Normalized()
	w, x, y, z := u.W, u.X, u.Y, u.Z

	return [3][3]float64{
		{1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y)},
		{2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x)},
		{2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y)},
	}
}
