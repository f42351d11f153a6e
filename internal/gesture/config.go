package gesture

import "time"

// Detection thresholds. These values were tuned together against a
// first-person behind-hands camera; the enter/exit asymmetries and the
// AND/OR split between extension and curl are deliberate. Change them
// as a set, not individually.
const (
	// Finger extension: joint angle AND tip reach must both agree.
	ExtMinPIPAngleDeg = 158.0
	ExtMinTipRatio    = 0.90

	// Finger curl: either a bent joint OR a tip pulled toward the palm
	// counts. A finger between the bands is neither extended nor curled.
	CurlMaxPIPAngleDeg = 152.0
	CurlMaxTipRatio    = 0.84

	// Thumb strength for the thumbs-up candidate.
	ThumbMinIPAngleDeg = 162.0
	ThumbMinTipRatio   = 1.10

	// Thumbs-up direction cone in normalized space.
	ThumbsUpMinVY = -0.88
	ThumbsUpMaxVX = 0.28
	ThumbsUpMaxVZ = 0.35

	// Rotation debounce is frame-count based, not time based.
	RotationEnterFrames   = 8
	RotationExitFrames    = 6
	RotationCurledFingers = 3

	// Pinch hysteresis on thumb-to-index distance over hand scale.
	PinchOnRatio  = 0.62
	PinchOffRatio = 0.80

	// Two-finger swipe window over (t, x, flick angle) samples.
	SwipeWindow          = 300 * time.Millisecond
	SwipeMinPeakDistPx   = 90.0
	SwipeMinPeakSpeedPxS = 900.0
	SwipeMinConsistency  = 0.55
	SwipeMinAngleDeg     = 10.0
	SwipeMinAngleSpeedS  = 80.0
	SwipeStrongDistPx    = 180.0
	SwipeStrongSpeedPxS  = 1600.0
	SwipeCooldown        = 550 * time.Millisecond

	// Clap pair-ratio thresholds and timers.
	ClapArmRatio       = 1.90
	ClapNearRatio      = 0.78
	ClapIntentRatio    = 1.35
	ClapIntentApproach = 1.4
	ClapCooldown       = 700 * time.Millisecond
	ClapHistorySize    = 6
	LastSeenWindow     = 300 * time.Millisecond

	// Discrete event latching: once fired, the label stays reported for
	// the hold duration regardless of the underlying condition.
	PinchLatch = 300 * time.Millisecond
	SwipeLatch = 450 * time.Millisecond
	ClapLatch  = 650 * time.Millisecond
)

// Config holds the behavioral toggles of the engine. The numeric
// thresholds above are part of the contract and not configurable.
type Config struct {
	// PointerRequireOnlyIndex demands that middle, ring and pinky are
	// all not extended for the pointer pose. When false an extended
	// index alone is enough.
	PointerRequireOnlyIndex bool

	// BlockRotationIfPointer disqualifies rotation candidates while the
	// hand reads as pointer.
	BlockRotationIfPointer bool

	// StretchRequirePointers demands both hands hold the pointer pose
	// for the stretch gesture. When false any two hands stretch.
	StretchRequirePointers bool

	// InvertSwipeDirection flips the reported swipe direction for
	// mirrored camera setups.
	InvertSwipeDirection bool
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		PointerRequireOnlyIndex: true,
		BlockRotationIfPointer:  true,
		StretchRequirePointers:  true,
		InvertSwipeDirection:    false,
	}
}
