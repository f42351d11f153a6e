package gesture

import (
	"math"
	"time"
)

type stretchPhase int

const (
	stretchIdle stretchPhase = iota
	stretchActive
)

// StretchDetector tracks the continuous two-hand stretch: the distance
// between the two index fingertips while both hands hold the required
// pose. On activation the current distance becomes the baseline; every
// following active frame reports the per-frame delta, its rate, and the
// cumulative delta since activation. Any deactivation resets to idle.
type StretchDetector struct {
	phase      stretchPhase
	prevDist   float64
	prevTime   time.Time
	cumulative float64
}

// NewStretchDetector returns an idle detector.
func NewStretchDetector() *StretchDetector {
	return &StretchDetector{}
}

// Update advances the stretch state over the frame's full hand list.
func (d *StretchDetector) Update(hands []DetectedHand, now time.Time, cfg Config) StretchResult {
	active := len(hands) == 2 &&
		(!cfg.StretchRequirePointers || (hands[0].Pointer && hands[1].Pointer))

	if !active {
		d.phase = stretchIdle
		d.cumulative = 0
		return StretchResult{}
	}

	dist := Dist2(hands[0].Features.IndexTipPx, hands[1].Features.IndexTipPx)

	if d.phase == stretchIdle {
		d.phase = stretchActive
		d.prevDist = dist
		d.prevTime = now
		d.cumulative = 0
		return StretchResult{Active: true}
	}

	dt := math.Max(now.Sub(d.prevTime).Seconds(), 1e-6)
	delta := dist - d.prevDist
	d.cumulative += delta
	d.prevDist = dist
	d.prevTime = now

	return StretchResult{
		Active:       true,
		DeltaPx:      delta,
		RatePxS:      delta / dt,
		CumulativePx: d.cumulative,
	}
}
