package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the observation results.
type MockDetector struct {
	hands []HandObservation
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the observations that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandObservation) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured observations or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandObservation, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Fixture frame dimensions used to derive pixel positions.
const (
	FixtureWidth  = 640
	FixtureHeight = 480
)

// Fixture hands are assembled from a shared palm skeleton: wrist at
// (0.50, 0.80), knuckles fanned above it, fingers either straight up
// (extended) or folded back toward the palm (curled). The proportions
// were chosen so the extracted features clear the extension, curl,
// thumb-strength and pinch thresholds with comfortable margins.
var fixturePalm = map[int]Point3D{
	Wrist:     {X: 0.50, Y: 0.80, Z: 0},
	ThumbCMC:  {X: 0.44, Y: 0.76, Z: 0},
	IndexMCP:  {X: 0.44, Y: 0.60, Z: 0},
	MiddleMCP: {X: 0.48, Y: 0.58, Z: 0},
	RingMCP:   {X: 0.52, Y: 0.58, Z: 0},
	PinkyMCP:  {X: 0.56, Y: 0.60, Z: 0},
}

// thumb poses: CMC is shared, MCP/IP/TIP vary.
type thumbPose struct {
	mcp, ip, tip Point3D
}

var (
	// Relaxed thumb: bent at the IP joint, pointing sideways, far from
	// the index tip. Neither strong nor inside the thumbs-up cone.
	thumbNeutral = thumbPose{
		mcp: Point3D{X: 0.42, Y: 0.72, Z: 0},
		ip:  Point3D{X: 0.38, Y: 0.68, Z: 0},
		tip: Point3D{X: 0.36, Y: 0.70, Z: 0.02},
	}

	// Straight vertical thumb: strong and inside the thumbs-up cone.
	thumbUp = thumbPose{
		mcp: Point3D{X: 0.40, Y: 0.70, Z: 0},
		ip:  Point3D{X: 0.40, Y: 0.62, Z: 0},
		tip: Point3D{X: 0.40, Y: 0.54, Z: 0},
	}

	// Thumb reaching across to the extended index tip: close enough to
	// pinch, bent enough at the IP joint to stay below thumb-strong.
	thumbPinch = thumbPose{
		mcp: Point3D{X: 0.42, Y: 0.72, Z: 0},
		ip:  Point3D{X: 0.40, Y: 0.60, Z: 0},
		tip: Point3D{X: 0.45, Y: 0.43, Z: 0.01},
	}

	// Straight thumb splayed sideways: strong but outside the cone.
	thumbSide = thumbPose{
		mcp: Point3D{X: 0.40, Y: 0.70, Z: 0},
		ip:  Point3D{X: 0.34, Y: 0.66, Z: 0},
		tip: Point3D{X: 0.28, Y: 0.62, Z: 0},
	}
)

// setFinger writes the PIP/DIP/TIP joints of one finger. Extended fingers
// run straight up from the knuckle; curled fingers fold back toward the
// palm so both the joint angle and the tip ratio read as curled.
func setFinger(norm *[NumLandmarks]Point3D, mcpIdx int, extended bool) {
	mcp := norm[mcpIdx]
	if extended {
		norm[mcpIdx+1] = Point3D{X: mcp.X, Y: mcp.Y - 0.06, Z: mcp.Z}
		norm[mcpIdx+2] = Point3D{X: mcp.X, Y: mcp.Y - 0.12, Z: mcp.Z}
		norm[mcpIdx+3] = Point3D{X: mcp.X, Y: mcp.Y - 0.18, Z: mcp.Z}
	} else {
		norm[mcpIdx+1] = Point3D{X: mcp.X, Y: mcp.Y - 0.05, Z: mcp.Z}
		norm[mcpIdx+2] = Point3D{X: mcp.X, Y: mcp.Y - 0.01, Z: mcp.Z - 0.02}
		norm[mcpIdx+3] = Point3D{X: mcp.X, Y: mcp.Y + 0.03, Z: mcp.Z - 0.02}
	}
}

func fixtureHand(label string, thumb thumbPose, indexExt, middleExt, ringExt, pinkyExt bool) HandObservation {
	var norm [NumLandmarks]Point3D
	for idx, p := range fixturePalm {
		norm[idx] = p
	}
	norm[ThumbMCP] = thumb.mcp
	norm[ThumbIP] = thumb.ip
	norm[ThumbTip] = thumb.tip
	setFinger(&norm, IndexMCP, indexExt)
	setFinger(&norm, MiddleMCP, middleExt)
	setFinger(&norm, RingMCP, ringExt)
	setFinger(&norm, PinkyMCP, pinkyExt)

	obs := FromNormalized(label, norm, FixtureWidth, FixtureHeight)
	obs.Score = 0.95
	return obs
}

// PointerObservation returns a hand holding the pointer pose: index
// extended, remaining fingers curled, thumb relaxed.
func PointerObservation(label string) HandObservation {
	return fixtureHand(label, thumbNeutral, true, false, false, false)
}

// TwoFingerObservation returns a hand holding the two-finger pose:
// index and middle extended, ring and pinky curled.
func TwoFingerObservation(label string) HandObservation {
	return fixtureHand(label, thumbNeutral, true, true, false, false)
}

// ThumbsUpObservation returns a hand in a strict thumbs-up: straight
// vertical thumb, all four fingers curled.
func ThumbsUpObservation(label string) HandObservation {
	return fixtureHand(label, thumbUp, false, false, false, false)
}

// PinchObservation returns a hand with the thumb tip touching the
// extended index tip, remaining fingers curled.
func PinchObservation(label string) HandObservation {
	return fixtureHand(label, thumbPinch, true, false, false, false)
}

// OpenPalmObservation returns a fully open hand: all fingers extended,
// thumb splayed sideways.
func OpenPalmObservation(label string) HandObservation {
	return fixtureHand(label, thumbSide, true, true, true, true)
}

// Translate shifts an observation by (dx, dy) in normalized coordinates,
// recomputing pixel positions. Useful for scripting hand motion.
func Translate(obs HandObservation, dx, dy float64) HandObservation {
	out := obs
	for i := range out.Norm {
		out.Norm[i].X += dx
		out.Norm[i].Y += dy
		out.Pixels[i].X += dx * FixtureWidth
		out.Pixels[i].Y += dy * FixtureHeight
	}
	return out
}
