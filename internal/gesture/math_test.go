package gesture

import (
	"math"
	"testing"

	"github.com/ayusman/mudra/internal/detector"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestAngle3PtDeg(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c detector.Point3D
		want    float64
	}{
		{
			name: "straight line",
			a:    detector.Point3D{X: 0, Y: 0, Z: 0},
			b:    detector.Point3D{X: 1, Y: 0, Z: 0},
			c:    detector.Point3D{X: 2, Y: 0, Z: 0},
			want: 180,
		},
		{
			name: "right angle",
			a:    detector.Point3D{X: 1, Y: 0, Z: 0},
			b:    detector.Point3D{X: 0, Y: 0, Z: 0},
			c:    detector.Point3D{X: 0, Y: 1, Z: 0},
			want: 90,
		},
		{
			name: "folded back",
			a:    detector.Point3D{X: 0, Y: 1, Z: 0},
			b:    detector.Point3D{X: 0, Y: 0, Z: 0},
			c:    detector.Point3D{X: 0, Y: 1, Z: 0.001},
			want: 0,
		},
	}

	for _, tt := range tests {
		got := Angle3PtDeg(tt.a, tt.b, tt.c)
		if !almostEqual(got, tt.want, 0.1) {
			t.Errorf("%s: Angle3PtDeg = %.2f, want %.2f", tt.name, got, tt.want)
		}
	}
}

func TestWrapDeg(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{179, 179},
		{180, -180},
		{190, -170},
		{-190, 170},
		{360, 0},
		{540, -180},
	}

	for _, tt := range tests {
		if got := WrapDeg(tt.in); !almostEqual(got, tt.want, 1e-9) {
			t.Errorf("WrapDeg(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAngleDeltaDeg(t *testing.T) {
	// Crossing the +-180 seam must produce the short way around.
	if got := AngleDeltaDeg(170, -170); !almostEqual(got, 20, 1e-9) {
		t.Errorf("AngleDeltaDeg(170, -170) = %v, want 20", got)
	}
	if got := AngleDeltaDeg(-170, 170); !almostEqual(got, -20, 1e-9) {
		t.Errorf("AngleDeltaDeg(-170, 170) = %v, want -20", got)
	}
}

func TestYawPitchFromVec(t *testing.T) {
	// Pointing straight into the screen: no yaw, no pitch.
	yaw, pitch := YawPitchFromVec(0, 0, -1)
	if !almostEqual(yaw, 0, 1e-6) || !almostEqual(pitch, 0, 1e-6) {
		t.Errorf("forward vector: yaw=%v pitch=%v, want 0, 0", yaw, pitch)
	}

	// Pointing up and in: positive pitch.
	_, pitch = YawPitchFromVec(0, -1, -1)
	if !almostEqual(pitch, 45, 1e-6) {
		t.Errorf("up vector: pitch=%v, want 45", pitch)
	}

	// Pointing right and in: positive yaw.
	yaw, _ = YawPitchFromVec(1, 0, -1)
	if !almostEqual(yaw, 45, 1e-6) {
		t.Errorf("right vector: yaw=%v, want 45", yaw)
	}
}

func TestUpdateHysteresis(t *testing.T) {
	const on, off = 0.62, 0.80

	tests := []struct {
		name   string
		active bool
		value  float64
		want   bool
	}{
		{"inactive stays off above on", false, 0.70, false},
		{"inactive turns on at threshold", false, 0.62, true},
		{"inactive turns on below threshold", false, 0.30, true},
		{"active stays on below off", true, 0.79, true},
		{"active stays on in dead zone", true, 0.70, true},
		{"active turns off at threshold", true, 0.80, false},
		{"active turns off above threshold", true, 0.95, false},
	}

	for _, tt := range tests {
		if got := UpdateHysteresis(tt.active, tt.value, on, off); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNormalize3(t *testing.T) {
	v := Normalize3(detector.Point3D{X: 3, Y: 4, Z: 0})
	if !almostEqual(v.X, 0.6, 1e-6) || !almostEqual(v.Y, 0.8, 1e-6) {
		t.Errorf("Normalize3(3,4,0) = %+v, want (0.6, 0.8, 0)", v)
	}
	if n := Norm3(v); !almostEqual(n, 1.0, 1e-6) {
		t.Errorf("norm of normalized vector = %v, want 1", n)
	}
}
