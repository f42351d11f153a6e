package gesture

import (
	"log"
	"time"

	"github.com/ayusman/mudra/internal/detector"
)

// Engine is the per-frame orchestrator. It owns the session-scoped
// state registry (one HandState per identity) and the two global
// coordinators, and sequences the classifiers so the suppression
// dependencies resolve in order: rotation and the two-finger pose gate
// pinch, and the clap outcome gates swipes.
//
// The engine is single-threaded and not reentrant: callers supply the
// frame timestamp and must serialize ProcessFrame calls.
type Engine struct {
	cfg     Config
	states  map[string]*HandState
	clap    *ClapDetector
	stretch *StretchDetector
}

// NewEngine creates an engine with dormant state for all identities.
func NewEngine(cfg Config) *Engine {
	states := make(map[string]*HandState, 3)
	for _, label := range []string{detector.LabelLeft, detector.LabelRight, detector.LabelUnknown} {
		states[label] = newHandState(label)
	}
	return &Engine{
		cfg:     cfg,
		states:  states,
		clap:    NewClapDetector(),
		stretch: NewStretchDetector(),
	}
}

// State exposes the persistent state for an identity, mainly for
// inspection. Mutating it outside ProcessFrame is the caller's risk.
func (e *Engine) State(label string) *HandState {
	return e.states[label]
}

// Clap exposes the clap coordinator for phase inspection.
func (e *Engine) Clap() *ClapDetector {
	return e.clap
}

// resolveLabel picks the identity for an observation: the reported
// label, or on a collision the first unclaimed of Left, Right, Unknown.
func resolveLabel(reported string, used map[string]bool) string {
	label := reported
	if label != detector.LabelLeft && label != detector.LabelRight {
		label = detector.LabelUnknown
	}
	if !used[label] {
		return label
	}
	switch {
	case !used[detector.LabelLeft]:
		return detector.LabelLeft
	case !used[detector.LabelRight]:
		return detector.LabelRight
	default:
		return detector.LabelUnknown
	}
}

// ProcessFrame classifies one frame of observations. Empty (all-zero)
// observations are skipped; a frame with zero hands still advances the
// global coordinators so latches expire and the stretch deactivates.
func (e *Engine) ProcessFrame(now time.Time, observations []detector.HandObservation) FrameResult {
	used := make(map[string]bool, 3)
	hands := make([]DetectedHand, 0, len(observations))

	for i := range observations {
		obs := &observations[i]
		if !validObservation(obs) {
			log.Printf("skipping empty hand observation (%q)", obs.Label)
			continue
		}

		label := resolveLabel(obs.Label, used)
		if used[label] {
			// Both fallback identities already claimed this frame.
			log.Printf("dropping extra hand observation (%q)", obs.Label)
			continue
		}
		used[label] = true

		feats := ExtractFeatures(obs)
		state := e.states[label]
		e.clap.UpdateLastSeen(label, &feats, now)

		pointer := IsPointer(&feats, e.cfg)
		twoFinger := IsTwoFinger(&feats)

		// Rotation runs before pinch: this frame's rotation outcome
		// suppresses pinch. The raw pointer pose feeds the candidate
		// check, before any suppression of pointer itself.
		rotation, yaw, pitch, roll := state.UpdateRotation(&feats, now, pointer, e.cfg)
		pinch := state.UpdatePinch(&feats, now, rotation || twoFinger)

		if pinch || rotation {
			pointer = false
		}

		hands = append(hands, DetectedHand{
			Label:     label,
			Features:  feats,
			Pointer:   pointer,
			TwoFinger: twoFinger,
			Pinch:     pinch,
			Rotation:  rotation,
			Yaw:       yaw,
			Pitch:     pitch,
			Roll:      roll,
		})
	}

	clap := e.clap.Update(hands, now)

	// Swipes finalize last among the per-hand machines: their
	// suppression needs the frame's clap outcome.
	for i := range hands {
		h := &hands[i]
		suppressed := clap.Active || clap.Intent || h.Rotation || h.Pinch
		res := e.states[h.Label].UpdateSwipe(&h.Features, now, h.TwoFinger, suppressed, e.cfg)
		h.Swipe = res.Fired
		h.SwipeDirection = res.Direction
	}

	stretch := e.stretch.Update(hands, now, e.cfg)

	for i := range hands {
		hands[i].Display = e.displayLabel(&hands[i], now)
	}

	return FrameResult{Hands: hands, Clap: clap, Stretch: stretch}
}

// displayLabel resolves the per-hand label precedence: rotation mode,
// then a live latch, then the current continuous pose.
func (e *Engine) displayLabel(h *DetectedHand, now time.Time) string {
	if h.Rotation {
		return DisplayRotation
	}
	if label, held := e.states[h.Label].LatchedLabel(now); held {
		return label
	}
	switch {
	case h.Pinch:
		return DisplayPinchHeld
	case h.TwoFinger:
		return DisplayTwoFingerReady
	case h.Pointer:
		return DisplayPointer
	}
	return DisplayNeutral
}
