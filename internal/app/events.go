package app

import (
	"log"
	"time"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/store"
)

// eventRecorder turns per-frame engine state into discrete store
// events. Continuous gestures (pinch, rotation, stretch) are recorded
// on their transitions; swipes and claps are recorded on the frame
// they fire.
type eventRecorder struct {
	events    *store.EventRepository
	sessionID string

	pinch    map[string]bool
	rotation map[string]bool
	stretch  bool
}

func newEventRecorder(events *store.EventRepository, sessionID string) *eventRecorder {
	return &eventRecorder{
		events:    events,
		sessionID: sessionID,
		pinch:     make(map[string]bool, 3),
		rotation:  make(map[string]bool, 3),
	}
}

func (r *eventRecorder) insert(now time.Time, kind, hand, direction string, value float64) {
	e := &store.Event{
		SessionID: r.sessionID,
		At:        now.UTC(),
		Kind:      kind,
		Hand:      hand,
		Direction: direction,
		Value:     value,
	}
	if err := r.events.Insert(e); err != nil {
		log.Printf("Error recording %s event: %v", kind, err)
	}
}

// record compares the frame result against the previous frame's state
// and persists every transition and firing.
func (r *eventRecorder) record(res *gesture.FrameResult, now time.Time) {
	seen := make(map[string]bool, len(res.Hands))

	for i := range res.Hands {
		h := &res.Hands[i]
		seen[h.Label] = true

		if h.Pinch && !r.pinch[h.Label] {
			r.insert(now, store.EventPinch, h.Label, "", 0)
		}
		if !h.Pinch && r.pinch[h.Label] {
			r.insert(now, store.EventPinchRelease, h.Label, "", 0)
		}
		r.pinch[h.Label] = h.Pinch

		if h.Rotation && !r.rotation[h.Label] {
			r.insert(now, store.EventRotationStart, h.Label, "", h.Roll)
		}
		if !h.Rotation && r.rotation[h.Label] {
			r.insert(now, store.EventRotationEnd, h.Label, "", 0)
		}
		r.rotation[h.Label] = h.Rotation

		if h.Swipe {
			r.insert(now, store.EventSwipe, h.Label, h.SwipeDirection, 0)
		}
	}

	// Hands that vanished release their held gestures.
	for label, active := range r.pinch {
		if active && !seen[label] {
			r.insert(now, store.EventPinchRelease, label, "", 0)
			r.pinch[label] = false
		}
	}
	for label, active := range r.rotation {
		if active && !seen[label] {
			r.insert(now, store.EventRotationEnd, label, "", 0)
			r.rotation[label] = false
		}
	}

	if res.Clap.Fired {
		r.insert(now, store.EventClap, "", "", 0)
	}

	if res.Stretch.Active && !r.stretch {
		r.insert(now, store.EventStretchStart, "", "", 0)
	}
	if !res.Stretch.Active && r.stretch {
		r.insert(now, store.EventStretchEnd, "", "", 0)
	}
	r.stretch = res.Stretch.Active
}
