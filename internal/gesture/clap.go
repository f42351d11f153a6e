package gesture

import (
	"log"
	"math"
	"time"

	"github.com/ayusman/mudra/internal/detector"
)

// ClapPhase is a read-only view of the clap detector's position in its
// cycle, derived for observability; the transition logic itself runs on
// the armed flag plus the latch/cooldown timers, which overlap.
type ClapPhase int

const (
	// ClapDisarmed: waiting for the hands to separate past the arm ratio.
	ClapDisarmed ClapPhase = iota
	// ClapArmed: ready to fire when the hands come together.
	ClapArmed
	// ClapTriggered: inside the latch window after firing.
	ClapTriggered
	// ClapCoolingDown: latch expired but refire still blocked.
	ClapCoolingDown
)

type pairSample struct {
	t     time.Time
	ratio float64
}

type lastSeenEntry struct {
	t     time.Time
	palm  detector.Point3D
	scale float64
	valid bool
}

// ClapDetector detects the two-hand clap. The pair ratio (palm distance
// over mean hand scale) must first exceed the arm ratio, then drop to
// the near ratio; a bounded ratio history estimates approach speed for
// the intent signal, and a short last-seen snapshot per named hand keeps
// the ratio defined while the clapping hands occlude each other.
type ClapDetector struct {
	latchedUntil  time.Time
	cooldownUntil time.Time
	armed         bool
	history       []pairSample
	lastSeen      map[string]lastSeenEntry
}

// NewClapDetector returns a detector that starts armed.
func NewClapDetector() *ClapDetector {
	return &ClapDetector{
		armed:    true,
		lastSeen: make(map[string]lastSeenEntry, 2),
	}
}

// UpdateLastSeen records a named hand's palm and scale for the
// occlusion-tolerant ratio fallback. Unknown hands are not tracked.
func (c *ClapDetector) UpdateLastSeen(label string, f *HandFeatures, now time.Time) {
	if label != detector.LabelLeft && label != detector.LabelRight {
		return
	}
	c.lastSeen[label] = lastSeenEntry{t: now, palm: f.PalmCenter3, scale: f.HandScale, valid: true}
}

func (c *ClapDetector) lastValid(label string, now time.Time) (lastSeenEntry, bool) {
	entry, ok := c.lastSeen[label]
	if !ok || !entry.valid || now.Sub(entry.t) > LastSeenWindow {
		return lastSeenEntry{}, false
	}
	return entry, true
}

// pairRatio computes the hand-separation ratio from the current frame's
// two hands, falling back to fresh last-seen snapshots of both named
// hands. Returns false when neither source is available.
func (c *ClapDetector) pairRatio(hands []DetectedHand, now time.Time) (float64, bool) {
	if len(hands) == 2 {
		f0, f1 := &hands[0].Features, &hands[1].Features
		avg := (f0.HandScale + f1.HandScale) / 2.0
		return Dist3(f0.PalmCenter3, f1.PalmCenter3) / (avg + 1e-9), true
	}

	left, okL := c.lastValid(detector.LabelLeft, now)
	right, okR := c.lastValid(detector.LabelRight, now)
	if okL && okR {
		avg := (left.scale + right.scale) / 2.0
		return Dist3(left.palm, right.palm) / (avg + 1e-9), true
	}

	return 0, false
}

// Update advances the clap state over the frame's full hand list.
func (c *ClapDetector) Update(hands []DetectedHand, now time.Time) ClapResult {
	active := now.Before(c.latchedUntil)
	ratio, ok := c.pairRatio(hands, now)

	approach := 0.0
	if ok {
		c.history = append(c.history, pairSample{t: now, ratio: ratio})
		if len(c.history) > ClapHistorySize {
			c.history = c.history[1:]
		}
		if len(c.history) >= 2 {
			oldest := c.history[0]
			newest := c.history[len(c.history)-1]
			dt := math.Max(newest.t.Sub(oldest.t).Seconds(), 1e-6)
			approach = (oldest.ratio - newest.ratio) / dt // positive while closing
		}
	}

	intent := ok && (ratio <= ClapIntentRatio || approach >= ClapIntentApproach)

	if ok && ratio >= ClapArmRatio {
		c.armed = true
	}

	fired := false
	if !active && c.armed && !now.Before(c.cooldownUntil) && ok && ratio <= ClapNearRatio {
		c.latchedUntil = now.Add(ClapLatch)
		c.cooldownUntil = now.Add(ClapCooldown)
		c.armed = false
		active = true
		fired = true
		log.Printf("global: clap")
	}

	return ClapResult{Active: active, Intent: intent, Fired: fired}
}

// Phase derives the detector's current cycle position.
func (c *ClapDetector) Phase(now time.Time) ClapPhase {
	switch {
	case now.Before(c.latchedUntil):
		return ClapTriggered
	case now.Before(c.cooldownUntil):
		return ClapCoolingDown
	case c.armed:
		return ClapArmed
	default:
		return ClapDisarmed
	}
}
