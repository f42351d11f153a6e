package gesture

import (
	"time"

	"github.com/ayusman/mudra/internal/detector"
)

// Display labels reported per hand. Discrete events (Pinch,
// TwoFingerSwipe) are latched; the rest reflect the current frame.
const (
	DisplayNeutral        = "Neutral"
	DisplayPointer        = "Pointer"
	DisplayPinch          = "Pinch"
	DisplayPinchHeld      = "Pinch (held)"
	DisplaySwipe          = "TwoFingerSwipe"
	DisplayRotation       = "HandRot"
	DisplayTwoFingerReady = "TwoFinger (ready)"
)

// HandState carries the persistent per-identity gesture state. One
// instance exists per identity (Left, Right, Unknown) for the lifetime
// of the engine; it is never destroyed, only left dormant while the
// hand is absent.
type HandState struct {
	Label string

	latchedLabel string
	latchedUntil time.Time

	pinchActive      bool
	pinchPrev        bool
	lastPinchHoldLog time.Time

	rotationActive  bool
	rotationEnter   int
	rotationExit    int
	lastRotationLog time.Time

	track              []swipeSample
	swipeCooldownUntil time.Time
}

func newHandState(label string) *HandState {
	return &HandState{
		Label:        label,
		latchedLabel: DisplayNeutral,
	}
}

// Latch pins the display label for at least the hold duration. An
// already-latched expiry is only ever extended, never shortened.
func (s *HandState) Latch(label string, now time.Time, hold time.Duration) {
	s.latchedLabel = label
	if until := now.Add(hold); until.After(s.latchedUntil) {
		s.latchedUntil = until
	}
}

// LatchedLabel returns the latched display label and whether its hold
// window still covers now.
func (s *HandState) LatchedLabel(now time.Time) (string, bool) {
	if now.Before(s.latchedUntil) {
		return s.latchedLabel, true
	}
	return s.latchedLabel, false
}

// DetectedHand is the per-frame classification result for one hand.
type DetectedHand struct {
	Label    string       `json:"label"`
	Features HandFeatures `json:"-"`

	Pointer   bool `json:"pointer"`
	TwoFinger bool `json:"two_finger"`
	Pinch     bool `json:"pinch"`
	Rotation  bool `json:"rotation"`

	// Orientation angles, valid only while Rotation is true.
	Yaw   float64 `json:"yaw,omitempty"`
	Pitch float64 `json:"pitch,omitempty"`
	Roll  float64 `json:"roll,omitempty"`

	// Swipe is set on the single frame the swipe fires.
	Swipe          bool   `json:"swipe,omitempty"`
	SwipeDirection string `json:"swipe_direction,omitempty"`

	Display string `json:"display"`
}

// ClapResult is the global clap state for one frame.
type ClapResult struct {
	// Active covers the whole latch window after a clap fires.
	Active bool `json:"active"`
	// Intent reports hands near or closing fast, used to suppress
	// swipes that would otherwise misread the approach.
	Intent bool `json:"intent"`
	// Fired is set only on the frame the clap triggers.
	Fired bool `json:"fired,omitempty"`
}

// StretchResult is the global two-hand stretch state for one frame.
type StretchResult struct {
	Active       bool    `json:"active"`
	DeltaPx      float64 `json:"delta_px"`
	RatePxS      float64 `json:"rate_px_s"`
	CumulativePx float64 `json:"cumulative_px"`
}

// FrameResult is the sole externally consumed artifact of a frame:
// the detected hands plus the two-hand coordinator results.
type FrameResult struct {
	Hands   []DetectedHand `json:"hands"`
	Clap    ClapResult     `json:"clap"`
	Stretch StretchResult  `json:"stretch"`
}

// Hand returns the detected hand with the given label, or nil.
func (r *FrameResult) Hand(label string) *DetectedHand {
	for i := range r.Hands {
		if r.Hands[i].Label == label {
			return &r.Hands[i]
		}
	}
	return nil
}

// validObservation reports whether an observation carries any landmark
// data at all. The fixed-size landmark arrays make short landmark lists
// unrepresentable; an all-zero observation is the remaining malformed
// case and is skipped by the engine.
func validObservation(obs *detector.HandObservation) bool {
	zero := detector.Point3D{}
	for _, p := range obs.Norm {
		if p != zero {
			return true
		}
	}
	return false
}
