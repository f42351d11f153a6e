// Package screen maps camera pixel coordinates onto calibrated screen
// coordinates. A screen is defined by its four corner anchor points in
// the camera image; a homography carries points from the camera quad to
// a square normalized space and on to [0,1] ratios.
package screen

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// DefaultScaleMax is the side length of the normalized coordinate
// square.
const DefaultScaleMax = 1000

// Corner indices in calibration order.
const (
	TopLeft = iota
	TopRight
	BottomRight
	BottomLeft
	numCorners
)

// Point is a 2D position in camera pixels or normalized units.
type Point struct {
	X float64
	Y float64
}

// homography is a 3x3 projective transform in row-major order.
type homography [9]float64

func (h *homography) apply(x, y float64) (float64, float64) {
	w := h[6]*x + h[7]*y + h[8]
	if w == 0 {
		w = 1e-12
	}
	return (h[0]*x + h[1]*y + h[2]) / w, (h[3]*x + h[4]*y + h[5]) / w
}

// Mapper converts camera pixels to normalized screen coordinates for
// one screen. It is uncalibrated until Calibrate succeeds.
type Mapper struct {
	scaleMax      float64
	fwd           *homography
	inv           *homography
	cameraCorners [numCorners]Point
}

// NewMapper creates an uncalibrated mapper with the given normalized
// scale. A scale of zero or less falls back to DefaultScaleMax.
func NewMapper(scaleMax float64) *Mapper {
	if scaleMax <= 0 {
		scaleMax = DefaultScaleMax
	}
	return &Mapper{scaleMax: scaleMax}
}

// normalizedCorners returns the destination quad: the corners of the
// [0,scaleMax] square in the same TL, TR, BR, BL order.
func (m *Mapper) normalizedCorners() [numCorners]Point {
	s := m.scaleMax
	return [numCorners]Point{
		{0, 0},
		{s, 0},
		{s, s},
		{0, s},
	}
}

// Calibrate computes the forward and inverse homographies from the four
// camera-pixel corner anchors, given in TL, TR, BR, BL order. A
// degenerate corner configuration (collinear or repeated points) leaves
// the mapper uncalibrated and returns an error.
func (m *Mapper) Calibrate(corners [numCorners]Point) error {
	norm := m.normalizedCorners()

	fwd, err := solveHomography(corners, norm)
	if err != nil {
		return fmt.Errorf("forward homography: %w", err)
	}
	inv, err := solveHomography(norm, corners)
	if err != nil {
		return fmt.Errorf("inverse homography: %w", err)
	}

	m.fwd = fwd
	m.inv = inv
	m.cameraCorners = corners
	return nil
}

// solveHomography solves the 8-unknown projective transform carrying
// each src[i] to dst[i], with the bottom-right matrix entry fixed at 1.
func solveHomography(src, dst [numCorners]Point) (*homography, error) {
	a := mat.NewDense(8, 8, nil)
	b := mat.NewVecDense(8, nil)

	for i := 0; i < numCorners; i++ {
		x, y := src[i].X, src[i].Y
		u, v := dst[i].X, dst[i].Y
		a.SetRow(2*i, []float64{x, y, 1, 0, 0, 0, -u * x, -u * y})
		a.SetRow(2*i+1, []float64{0, 0, 0, x, y, 1, -v * x, -v * y})
		b.SetVec(2*i, u)
		b.SetVec(2*i+1, v)
	}

	var sol mat.VecDense
	if err := sol.SolveVec(a, b); err != nil {
		return nil, fmt.Errorf("degenerate corner configuration: %w", err)
	}

	h := &homography{}
	for i := 0; i < 8; i++ {
		h[i] = sol.AtVec(i)
	}
	h[8] = 1
	return h, nil
}

// Calibrated reports whether the mapper holds a valid homography.
func (m *Mapper) Calibrated() bool {
	return m.fwd != nil
}

// Clear drops the calibration.
func (m *Mapper) Clear() {
	m.fwd = nil
	m.inv = nil
}

// CameraCorners returns the anchor points of the last successful
// calibration.
func (m *Mapper) CameraCorners() [numCorners]Point {
	return m.cameraCorners
}

// CameraToNormalized maps a camera pixel into [0,scaleMax] screen
// coordinates. The second return is false while uncalibrated.
func (m *Mapper) CameraToNormalized(x, y float64) (Point, bool) {
	if m.fwd == nil {
		return Point{}, false
	}
	nx, ny := m.fwd.apply(x, y)
	return Point{X: nx, Y: ny}, true
}

// CameraToRatio maps a camera pixel into [0,1] screen ratios.
func (m *Mapper) CameraToRatio(x, y float64) (Point, bool) {
	p, ok := m.CameraToNormalized(x, y)
	if !ok {
		return Point{}, false
	}
	return Point{X: p.X / m.scaleMax, Y: p.Y / m.scaleMax}, true
}

// NormalizedToCamera maps screen coordinates back into camera pixels,
// used for drawing overlays.
func (m *Mapper) NormalizedToCamera(nx, ny float64) (Point, bool) {
	if m.inv == nil {
		return Point{}, false
	}
	x, y := m.inv.apply(nx, ny)
	return Point{X: x, Y: y}, true
}

// InBounds reports whether normalized coordinates fall on the screen.
func (m *Mapper) InBounds(p Point) bool {
	return p.X >= 0 && p.X <= m.scaleMax && p.Y >= 0 && p.Y <= m.scaleMax
}
