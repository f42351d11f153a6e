// Package gesture implements the temporal gesture-classification engine:
// per-hand state machines (pinch, rotation, two-finger swipe) and global
// two-hand coordinators (clap, stretch) over per-frame hand observations.
package gesture

import (
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// Dist2 returns the Euclidean distance between two pixel points.
func Dist2(a, b detector.Point2D) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Dist3 returns the Euclidean distance between two 3D points.
func Dist3(a, b detector.Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// MeanPoint2 returns the average of pixel points.
func MeanPoint2(points ...detector.Point2D) detector.Point2D {
	var x, y float64
	for _, p := range points {
		x += p.X
		y += p.Y
	}
	n := float64(len(points))
	return detector.Point2D{X: x / n, Y: y / n}
}

// MeanPoint3 returns the average of 3D points.
func MeanPoint3(points ...detector.Point3D) detector.Point3D {
	var x, y, z float64
	for _, p := range points {
		x += p.X
		y += p.Y
		z += p.Z
	}
	n := float64(len(points))
	return detector.Point3D{X: x / n, Y: y / n, Z: z / n}
}

// Sub3 returns the vector a - b.
func Sub3(a, b detector.Point3D) detector.Point3D {
	return detector.Point3D{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
}

// Dot3 returns the dot product of two 3D vectors.
func Dot3(a, b detector.Point3D) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Norm3 returns the magnitude of a 3D vector, padded with a small
// epsilon so it is always safe to divide by.
func Norm3(a detector.Point3D) float64 {
	return math.Sqrt(Dot3(a, a)) + 1e-9
}

// Normalize3 scales a 3D vector to unit length.
func Normalize3(a detector.Point3D) detector.Point3D {
	n := Norm3(a)
	return detector.Point3D{X: a.X / n, Y: a.Y / n, Z: a.Z / n}
}

// Angle3PtDeg returns the angle at point b formed by points a-b-c,
// in degrees.
func Angle3PtDeg(a, b, c detector.Point3D) float64 {
	ba := Sub3(a, b)
	bc := Sub3(c, b)
	cosAng := Clamp(Dot3(ba, bc)/(Norm3(ba)*Norm3(bc)), -1.0, 1.0)
	return math.Acos(cosAng) * 180.0 / math.Pi
}

// WrapDeg wraps an angle to the [-180, 180) range.
func WrapDeg(angle float64) float64 {
	return math.Mod(math.Mod(angle+180.0, 360.0)+360.0, 360.0) - 180.0
}

// AngleDeltaDeg returns the signed angular difference a1 - a0, wrapped.
func AngleDeltaDeg(a0, a1 float64) float64 {
	return WrapDeg(a1 - a0)
}

// YawPitchFromVec extracts yaw and pitch angles in degrees from a
// direction vector, treating -z as forward.
func YawPitchFromVec(vx, vy, vz float64) (yaw, pitch float64) {
	forward := math.Max(1e-6, -vz)
	yaw = math.Atan2(vx, forward) * 180.0 / math.Pi
	pitch = math.Atan2(-vy, forward) * 180.0 / math.Pi
	return yaw, pitch
}

// UpdateHysteresis advances a two-threshold on/off state: an inactive
// state turns on at value <= on, an active state turns off at
// value >= off. Requires on < off to prevent chatter near a single
// boundary.
func UpdateHysteresis(active bool, value, on, off float64) bool {
	if !active {
		return value <= on
	}
	return value < off
}
