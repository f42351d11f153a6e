package gesture

import (
	"log"
	"math"
	"time"
)

// Swipe directions, derived from the sign of the net horizontal motion.
const (
	SwipeLeft  = "Left"
	SwipeRight = "Right"
)

// swipeSample is one tracked point of the swipe window: the blended
// horizontal position and the wrist-flick angle at time t.
type swipeSample struct {
	t     time.Time
	x     float64
	angle float64
}

// SwipeResult reports a fired two-finger swipe.
type SwipeResult struct {
	Fired     bool
	Direction string
}

// UpdateSwipe advances the two-finger swipe tracker for this hand.
// Samples accumulate only while the two-finger pose holds, nothing
// suppresses it (clap active/intent, rotation, pinch) and the cooldown
// has elapsed; any failing gate clears the window so stale motion can
// never combine with fresh motion.
//
// The swipe point blends the fingertip pair with the palm so the motion
// stays measurable when a fingertip jitters. A swipe fires on strong,
// direction-consistent horizontal motion combined with a wrist flick,
// or on very strong motion alone.
func (s *HandState) UpdateSwipe(f *HandFeatures, now time.Time, twoFinger, suppressed bool, cfg Config) SwipeResult {
	if !twoFinger || suppressed || now.Before(s.swipeCooldownUntil) {
		s.track = s.track[:0]
		return SwipeResult{}
	}

	tipsX := 0.5 * (f.IndexTipPx.X + f.MiddleTipPx.X)
	x := 0.65*tipsX + 0.35*f.PalmCenterPx.X
	s.track = append(s.track, swipeSample{t: now, x: x, angle: f.FlickAngleDeg})

	// Keep only samples inside the window.
	cutoff := now.Add(-SwipeWindow)
	for len(s.track) > 0 && s.track[0].t.Before(cutoff) {
		s.track = s.track[1:]
	}

	if len(s.track) < 3 {
		return SwipeResult{}
	}

	first := s.track[0]
	last := s.track[len(s.track)-1]
	dt := math.Max(last.t.Sub(first.t).Seconds(), 1e-6)

	minX, maxX := first.x, first.x
	for _, p := range s.track {
		minX = math.Min(minX, p.x)
		maxX = math.Max(maxX, p.x)
	}
	peakDx := maxX - minX
	netDx := last.x - first.x
	consistency := math.Abs(netDx) / (peakDx + 1e-6)
	peakSpeed := peakDx / dt

	da := AngleDeltaDeg(first.angle, last.angle)
	angleSpeed := math.Abs(da) / dt

	flickOK := math.Abs(da) >= SwipeMinAngleDeg && angleSpeed >= SwipeMinAngleSpeedS
	strongOK := peakDx >= SwipeStrongDistPx && peakSpeed >= SwipeStrongSpeedPxS

	if peakDx >= SwipeMinPeakDistPx && peakSpeed >= SwipeMinPeakSpeedPxS &&
		consistency >= SwipeMinConsistency && (flickOK || strongOK) {

		direction := SwipeLeft
		if netDx > 0 {
			direction = SwipeRight
		}
		if cfg.InvertSwipeDirection {
			if direction == SwipeRight {
				direction = SwipeLeft
			} else {
				direction = SwipeRight
			}
		}

		log.Printf("%s: two-finger swipe %s (peak_dx=%.0f peak_v=%.0f da=%.0f)",
			s.Label, direction, peakDx, peakSpeed, da)
		s.Latch(DisplaySwipe, now, SwipeLatch)
		s.swipeCooldownUntil = now.Add(SwipeCooldown)
		s.track = s.track[:0]
		return SwipeResult{Fired: true, Direction: direction}
	}

	return SwipeResult{}
}
