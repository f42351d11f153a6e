// Package command translates frame classification results into remote
// input commands. The mapper is nearly stateless; it keeps just enough
// edge memory to emit pinch release transitions, stretch baselines and
// an idle release when all gestures end.
package command

import (
	"math"
	"strings"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/screen"
)

// DefaultConfidence is reported with every command; the engine has no
// per-gesture confidence model.
const DefaultConfidence = 0.95

// Controller is the command surface of the remote input transport.
// *transport.Sender implements it.
type Controller interface {
	Pointer(x, y float64, screenIndex int, confidence float64) error
	TwoFinger(x, y, stretch float64, screenIndex int, confidence float64) error
	Swipe(direction string, confidence float64) error
	Pinch(x, y float64, active bool, screenIndex int, confidence float64) error
	ThumbsUp(roll, confidence float64) error
	Clap(confidence float64) error
	None() error
}

// Locator resolves a camera pixel to a calibrated screen and its [0,1]
// ratio coordinates. *screen.Registry implements it.
type Locator interface {
	Locate(x, y float64) (int, screen.Point, bool)
}

// Config holds the camera frame dimensions used for the uncalibrated
// fallback mapping.
type Config struct {
	FrameWidth  float64
	FrameHeight float64
}

// DefaultConfig matches the capture default resolution.
func DefaultConfig() Config {
	return Config{FrameWidth: 640, FrameHeight: 480}
}

// Mapper converts FrameResults into Controller calls.
type Mapper struct {
	cfg     Config
	ctrl    Controller
	locator Locator

	pinchHeld    bool
	pinchX       float64
	pinchY       float64
	pinchScreen  int
	stretchPrev  bool
	stretchBase  float64
	sentActivity bool
}

// NewMapper creates a mapper. The locator may be nil; pointer positions
// then fall back to plain frame ratios on screen 0.
func NewMapper(cfg Config, ctrl Controller, locator Locator) *Mapper {
	return &Mapper{cfg: cfg, ctrl: ctrl, locator: locator}
}

// resolve maps a camera pixel to (screen, ratio x, ratio y). Without a
// calibrated screen under the point it falls back to frame ratios.
func (m *Mapper) resolve(p detector.Point2D) (int, float64, float64) {
	if m.locator != nil {
		if idx, r, ok := m.locator.Locate(p.X, p.Y); ok {
			return idx, r.X, r.Y
		}
	}
	rx := gesture.Clamp(p.X/math.Max(m.cfg.FrameWidth, 1), 0, 1)
	ry := gesture.Clamp(p.Y/math.Max(m.cfg.FrameHeight, 1), 0, 1)
	return 0, rx, ry
}

// Process emits the commands for one frame result. Discrete events
// (clap, swipe) go out once on their firing frame; continuous gestures
// (pointer, pinch hold, rotation, stretch) go out every active frame.
// The first transition from any activity to none sends a release.
func (m *Mapper) Process(res *gesture.FrameResult) error {
	active := false
	send := func(err error) error { active = true; return err }

	if res.Clap.Fired {
		if err := send(m.ctrl.Clap(DefaultConfidence)); err != nil {
			return err
		}
	}

	pinching := false
	for i := range res.Hands {
		h := &res.Hands[i]

		if h.Rotation {
			if err := send(m.ctrl.ThumbsUp(h.Roll, DefaultConfidence)); err != nil {
				return err
			}
		}

		if h.Swipe {
			if err := send(m.ctrl.Swipe(strings.ToLower(h.SwipeDirection), DefaultConfidence)); err != nil {
				return err
			}
		}

		if h.Pinch && !pinching {
			pinching = true
			idx, rx, ry := m.resolve(h.Features.IndexTipPx)
			m.pinchHeld = true
			m.pinchX, m.pinchY, m.pinchScreen = rx, ry, idx
			if err := send(m.ctrl.Pinch(rx, ry, true, idx, DefaultConfidence)); err != nil {
				return err
			}
		}
	}

	// Pinch release fires once, at the last held position.
	if m.pinchHeld && !pinching {
		m.pinchHeld = false
		if err := send(m.ctrl.Pinch(m.pinchX, m.pinchY, false, m.pinchScreen, DefaultConfidence)); err != nil {
			return err
		}
	}

	if err := m.processStretch(res, &active); err != nil {
		return err
	}

	// The pointer is lowest priority: only without a held pinch or an
	// active stretch does a pointer hand drive the cursor.
	if !pinching && !res.Stretch.Active {
		for i := range res.Hands {
			h := &res.Hands[i]
			if !h.Pointer {
				continue
			}
			idx, rx, ry := m.resolve(h.Features.IndexTipPx)
			if err := send(m.ctrl.Pointer(rx, ry, idx, DefaultConfidence)); err != nil {
				return err
			}
			break
		}
	}

	if !active && m.sentActivity {
		m.sentActivity = false
		return m.ctrl.None()
	}
	if active {
		m.sentActivity = true
	}
	return nil
}

// processStretch emits the zoom command while the stretch is active.
// The stretch value is the ratio of the current fingertip distance to
// the distance at activation.
func (m *Mapper) processStretch(res *gesture.FrameResult, active *bool) error {
	if !res.Stretch.Active || len(res.Hands) != 2 {
		m.stretchPrev = false
		return nil
	}

	a := res.Hands[0].Features.IndexTipPx
	b := res.Hands[1].Features.IndexTipPx
	dist := gesture.Dist2(a, b)

	if !m.stretchPrev {
		m.stretchPrev = true
		m.stretchBase = math.Max(dist, 1e-6)
	}

	center := detector.Point2D{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	idx, rx, ry := m.resolve(center)
	*active = true
	return m.ctrl.TwoFinger(rx, ry, dist/m.stretchBase, idx, DefaultConfidence)
}
