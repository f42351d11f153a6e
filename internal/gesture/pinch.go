package gesture

import (
	"log"
	"time"
)

// pinchHoldLogInterval throttles the debug line emitted while a pinch
// is held. It never affects the reported state.
const pinchHoldLogInterval = 350 * time.Millisecond

// UpdatePinch advances the pinch hysteresis for this hand and returns
// whether the pinch is active. While suppressed (rotation or two-finger
// pose this frame) the pinch is forced off and, if it was active, a
// release is reported; pinchPrev is cleared too so leaving the
// suppressing pose cannot produce a stale rising edge.
func (s *HandState) UpdatePinch(f *HandFeatures, now time.Time, suppressed bool) bool {
	if suppressed {
		if s.pinchActive {
			log.Printf("%s: pinch released (mode override)", s.Label)
		}
		s.pinchActive = false
		s.pinchPrev = false
		return false
	}

	ratio := Dist3(f.ThumbTip3, f.IndexTip3) / f.HandScale
	s.pinchActive = UpdateHysteresis(s.pinchActive, ratio, PinchOnRatio, PinchOffRatio)

	if !s.pinchPrev && s.pinchActive {
		s.Latch(DisplayPinch, now, PinchLatch)
		log.Printf("%s: pinch start", s.Label)
	}

	if s.pinchActive && now.Sub(s.lastPinchHoldLog) >= pinchHoldLogInterval {
		s.lastPinchHoldLog = now
		log.Printf("%s: pinch held", s.Label)
	}

	if s.pinchPrev && !s.pinchActive {
		log.Printf("%s: pinch released", s.Label)
	}

	s.pinchPrev = s.pinchActive
	return s.pinchActive
}
