// Package detector provides hand observation types and detection interfaces
// for the gesture engine.
package detector

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Handedness labels reported by the tracker. Unknown covers hands the
// tracker could not classify and label collisions the engine resolves.
const (
	LabelLeft    = "Left"
	LabelRight   = "Right"
	LabelUnknown = "Unknown"
)

// Point3D is a point in MediaPipe's normalized 3D space: x and y in [0,1]
// relative to the frame, z roughly in frame-width units with negative
// values toward the camera.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Point2D is a point in frame pixel coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// HandObservation is one tracked hand for one frame: a handedness label
// candidate plus the 21 landmarks in both normalized 3D space and frame
// pixel space.
type HandObservation struct {
	Label  string                `json:"label"`
	Norm   [NumLandmarks]Point3D `json:"norm"`
	Pixels [NumLandmarks]Point2D `json:"pixels"`
	Score  float64               `json:"score"`
}

// FromNormalized builds an observation from 21 normalized landmarks,
// deriving pixel positions for a frame of the given dimensions.
func FromNormalized(label string, norm [NumLandmarks]Point3D, width, height int) HandObservation {
	obs := HandObservation{Label: label, Norm: norm}
	for i, p := range norm {
		obs.Pixels[i] = Point2D{X: p.X * float64(width), Y: p.Y * float64(height)}
	}
	return obs
}
