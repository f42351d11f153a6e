package gesture

import (
	"testing"
	"time"

	"github.com/ayusman/mudra/internal/detector"
)

const frameInterval = 33 * time.Millisecond

func TestEnginePointerFrame(t *testing.T) {
	e := NewEngine(DefaultConfig())
	now := time.Unix(100, 0)

	res := e.ProcessFrame(now, []detector.HandObservation{
		detector.PointerObservation(detector.LabelRight),
	})

	h := res.Hand(detector.LabelRight)
	if h == nil {
		t.Fatal("right hand missing from result")
	}
	if !h.Pointer || h.TwoFinger || h.Pinch || h.Rotation {
		t.Fatalf("pointer fixture classified as %+v", h)
	}
	if h.Display != DisplayPointer {
		t.Errorf("Display = %q, want %q", h.Display, DisplayPointer)
	}
	if res.Clap.Active || res.Clap.Intent || res.Stretch.Active {
		t.Error("a single pointer hand must not trip the coordinators")
	}
}

func TestEngineSkipsEmptyObservations(t *testing.T) {
	e := NewEngine(DefaultConfig())
	now := time.Unix(100, 0)

	res := e.ProcessFrame(now, []detector.HandObservation{
		{Label: detector.LabelRight}, // all-zero landmarks
	})
	if len(res.Hands) != 0 {
		t.Fatalf("empty observation produced %d hands, want 0", len(res.Hands))
	}
}

func TestEngineLabelCollision(t *testing.T) {
	e := NewEngine(DefaultConfig())
	now := time.Unix(100, 0)

	// Two hands both reported Right: the second claims the Left slot.
	res := e.ProcessFrame(now, []detector.HandObservation{
		detector.PointerObservation(detector.LabelRight),
		detector.OpenPalmObservation(detector.LabelRight),
	})
	if len(res.Hands) != 2 {
		t.Fatalf("got %d hands, want 2", len(res.Hands))
	}
	if res.Hand(detector.LabelRight) == nil || res.Hand(detector.LabelLeft) == nil {
		t.Fatalf("collision not resolved to distinct identities: %+v", res.Hands)
	}
}

func TestEngineUnknownLabel(t *testing.T) {
	e := NewEngine(DefaultConfig())
	now := time.Unix(100, 0)

	res := e.ProcessFrame(now, []detector.HandObservation{
		detector.PointerObservation("Banana"),
	})
	if res.Hand(detector.LabelUnknown) == nil {
		t.Fatal("unrecognized labels should map to the Unknown identity")
	}
}

func TestEngineRotationLifecycle(t *testing.T) {
	e := NewEngine(DefaultConfig())
	now := time.Unix(100, 0)

	// Entry: active exactly on the Nth consecutive thumbs-up frame.
	for i := 1; i <= RotationEnterFrames; i++ {
		now = now.Add(frameInterval)
		res := e.ProcessFrame(now, []detector.HandObservation{
			detector.ThumbsUpObservation(detector.LabelRight),
		})
		h := res.Hand(detector.LabelRight)
		wantActive := i == RotationEnterFrames
		if h.Rotation != wantActive {
			t.Fatalf("frame %d: rotation = %v, want %v", i, h.Rotation, wantActive)
		}
		if wantActive {
			if h.Display != DisplayRotation {
				t.Errorf("Display = %q, want %q", h.Display, DisplayRotation)
			}
			if h.Pitch == 0 && h.Roll == 0 {
				t.Error("active rotation should carry orientation angles")
			}
		}
	}

	// Exit: switching to a pointer pose, rotation survives until the
	// Nth consecutive non-candidate frame and suppresses pointer while
	// it lasts.
	for i := 1; i <= RotationExitFrames; i++ {
		now = now.Add(frameInterval)
		res := e.ProcessFrame(now, []detector.HandObservation{
			detector.PointerObservation(detector.LabelRight),
		})
		h := res.Hand(detector.LabelRight)
		wantActive := i < RotationExitFrames
		if h.Rotation != wantActive {
			t.Fatalf("exit frame %d: rotation = %v, want %v", i, h.Rotation, wantActive)
		}
		if h.Rotation && h.Pointer {
			t.Fatal("rotation must suppress the pointer pose")
		}
		if !h.Rotation && !h.Pointer {
			t.Fatal("pointer should reappear once rotation drops")
		}
	}
}

func TestEnginePinchSuppressesPointer(t *testing.T) {
	e := NewEngine(DefaultConfig())
	now := time.Unix(100, 0)

	res := e.ProcessFrame(now, []detector.HandObservation{
		detector.PinchObservation(detector.LabelRight),
	})
	h := res.Hand(detector.LabelRight)
	if !h.Pinch {
		t.Fatal("pinch fixture should pinch")
	}
	if h.Pointer {
		t.Fatal("pinch must force the pointer flag off")
	}
	if h.Display != DisplayPinch {
		t.Errorf("Display = %q, want latched %q", h.Display, DisplayPinch)
	}

	// Once the latch expires a still-held pinch reads as held.
	now = now.Add(PinchLatch + 100*time.Millisecond)
	res = e.ProcessFrame(now, []detector.HandObservation{
		detector.PinchObservation(detector.LabelRight),
	})
	h = res.Hand(detector.LabelRight)
	if !h.Pinch || h.Display != DisplayPinchHeld {
		t.Errorf("held pinch: pinch=%v display=%q, want %q", h.Pinch, h.Display, DisplayPinchHeld)
	}
}

func TestEngineTwoFingerSuppressesPinchAndShowsReady(t *testing.T) {
	e := NewEngine(DefaultConfig())
	now := time.Unix(100, 0)

	res := e.ProcessFrame(now, []detector.HandObservation{
		detector.TwoFingerObservation(detector.LabelRight),
	})
	h := res.Hand(detector.LabelRight)
	if !h.TwoFinger || h.Pinch {
		t.Fatalf("two-finger fixture: %+v", h)
	}
	if h.Display != DisplayTwoFingerReady {
		t.Errorf("Display = %q, want %q", h.Display, DisplayTwoFingerReady)
	}
}

func TestEngineSwipeEndToEnd(t *testing.T) {
	e := NewEngine(DefaultConfig())
	now := time.Unix(100, 0)

	// A fast rightward drag of the two-finger pose, strong enough to
	// fire without a wrist flick.
	base := detector.TwoFingerObservation(detector.LabelRight)
	var fired int
	var direction string
	for i, dx := range []float64{0, 0.2, 0.4} {
		res := e.ProcessFrame(now.Add(time.Duration(i)*50*time.Millisecond), []detector.HandObservation{
			detector.Translate(base, dx, 0),
		})
		h := res.Hand(detector.LabelRight)
		if h.Swipe {
			fired++
			direction = h.SwipeDirection
			if h.Display != DisplaySwipe {
				t.Errorf("Display = %q, want %q on the firing frame", h.Display, DisplaySwipe)
			}
		}
	}
	if fired != 1 {
		t.Fatalf("swipe fired %d times, want exactly once", fired)
	}
	if direction != SwipeRight {
		t.Errorf("direction = %q, want %q", direction, SwipeRight)
	}
}

func TestEngineClapEndToEnd(t *testing.T) {
	e := NewEngine(DefaultConfig())
	now := time.Unix(100, 0)

	base := detector.OpenPalmObservation("")
	apart := []detector.HandObservation{
		detector.Translate(withLabel(base, detector.LabelLeft), -0.25, 0),
		detector.Translate(withLabel(base, detector.LabelRight), 0.25, 0),
	}
	together := []detector.HandObservation{
		detector.Translate(withLabel(base, detector.LabelLeft), -0.02, 0),
		detector.Translate(withLabel(base, detector.LabelRight), 0.02, 0),
	}

	res := e.ProcessFrame(now, apart)
	if res.Clap.Fired || res.Clap.Active {
		t.Fatalf("separated palms: %+v", res.Clap)
	}

	now = now.Add(frameInterval)
	res = e.ProcessFrame(now, together)
	if !res.Clap.Fired {
		t.Fatal("palms coming together should fire the clap")
	}

	now = now.Add(frameInterval)
	res = e.ProcessFrame(now, together)
	if res.Clap.Fired || !res.Clap.Active {
		t.Fatalf("inside the latch: %+v, want active without refire", res.Clap)
	}
}

func TestEngineStretchEndToEnd(t *testing.T) {
	e := NewEngine(DefaultConfig())
	now := time.Unix(100, 0)

	left := detector.PointerObservation(detector.LabelLeft)
	right := detector.PointerObservation(detector.LabelRight)

	res := e.ProcessFrame(now, []detector.HandObservation{
		left, detector.Translate(right, 0.25, 0),
	})
	if !res.Stretch.Active || res.Stretch.DeltaPx != 0 {
		t.Fatalf("activation frame: %+v", res.Stretch)
	}

	// The right hand moves 0.1 of the frame width outward in 100 ms:
	// +64 px of tip separation at 640 px/s.
	res = e.ProcessFrame(now.Add(100*time.Millisecond), []detector.HandObservation{
		left, detector.Translate(right, 0.35, 0),
	})
	if !almostEqual(res.Stretch.DeltaPx, 64, 1e-6) {
		t.Errorf("DeltaPx = %v, want 64", res.Stretch.DeltaPx)
	}
	if !almostEqual(res.Stretch.RatePxS, 640, 1e-3) {
		t.Errorf("RatePxS = %v, want 640", res.Stretch.RatePxS)
	}
	if !almostEqual(res.Stretch.CumulativePx, 64, 1e-6) {
		t.Errorf("CumulativePx = %v, want 64", res.Stretch.CumulativePx)
	}
}

func TestEngineEmptyFrameAdvancesCoordinators(t *testing.T) {
	e := NewEngine(DefaultConfig())
	now := time.Unix(100, 0)

	left := detector.PointerObservation(detector.LabelLeft)
	right := detector.PointerObservation(detector.LabelRight)
	e.ProcessFrame(now, []detector.HandObservation{left, detector.Translate(right, 0.25, 0)})

	// Hands vanish: the stretch must drop out on the empty frame.
	res := e.ProcessFrame(now.Add(frameInterval), nil)
	if len(res.Hands) != 0 || res.Stretch.Active {
		t.Fatalf("empty frame: %+v", res)
	}
}

func withLabel(obs detector.HandObservation, label string) detector.HandObservation {
	obs.Label = label
	return obs
}
