package gesture

import (
	"log"
	"time"
)

// rotationLogInterval throttles the periodic orientation debug line.
const rotationLogInterval = 250 * time.Millisecond

// UpdateRotation advances the thumbs-up rotation ("scroll") state for
// this hand. A candidate frame requires a strong thumb inside the
// vertical cone, at least RotationCurledFingers curled fingers, and
// (if configured) no simultaneous pointer pose. Entry and exit are
// debounced by consecutive-frame counters, not time: the counters
// saturate at RotationEnterFrames/RotationExitFrames and each resets
// the other.
//
// While active, the hand's yaw/pitch/roll are computed every frame and
// returned; they are zero while inactive.
func (s *HandState) UpdateRotation(f *HandFeatures, now time.Time, pointer bool, cfg Config) (active bool, yaw, pitch, roll float64) {
	v := f.ThumbVec
	inCone := v.Y <= ThumbsUpMinVY &&
		v.X >= -ThumbsUpMaxVX && v.X <= ThumbsUpMaxVX &&
		v.Z >= -ThumbsUpMaxVZ && v.Z <= ThumbsUpMaxVZ

	candidate := f.ThumbStrong && inCone && f.CurledCount() >= RotationCurledFingers
	if cfg.BlockRotationIfPointer && pointer {
		candidate = false
	}

	if candidate {
		if s.rotationEnter < RotationEnterFrames {
			s.rotationEnter++
		}
		s.rotationExit = 0
	} else {
		if s.rotationExit < RotationExitFrames {
			s.rotationExit++
		}
		s.rotationEnter = 0
	}

	if !s.rotationActive && s.rotationEnter >= RotationEnterFrames {
		s.rotationActive = true
		log.Printf("%s: enter rotation", s.Label)
	} else if s.rotationActive && s.rotationExit >= RotationExitFrames {
		s.rotationActive = false
		log.Printf("%s: exit rotation", s.Label)
	}

	if !s.rotationActive {
		return false, 0, 0, 0
	}

	yaw, pitch, roll = HandOrientationAngles(f.Wrist3, f.IndexMCP3, f.PinkyMCP3, f.MiddleMCP3)
	if now.Sub(s.lastRotationLog) >= rotationLogInterval {
		s.lastRotationLog = now
		log.Printf("%s: rotation yaw=%+.1f pitch=%+.1f roll=%+.1f", s.Label, yaw, pitch, roll)
	}
	return true, yaw, pitch, roll
}
