// Package transport sends gesture commands to the remote input
// controller over UDP. Two protocols coexist on separate ports: a JSON
// gesture protocol carrying full gesture state, and a legacy text
// protocol of simple mouse primitives. Datagrams are fire and forget;
// there are no retries and no acks.
package transport

import (
	"encoding/json"
	"fmt"
	"net"
)

// Default controller endpoint.
const (
	DefaultTargetIP    = "127.0.0.1"
	DefaultGesturePort = 9090
	DefaultLegacyPort  = 8080
)

// Config holds the controller endpoint.
type Config struct {
	TargetIP    string
	GesturePort int
	LegacyPort  int
}

// DefaultConfig returns the local controller endpoint.
func DefaultConfig() Config {
	return Config{
		TargetIP:    DefaultTargetIP,
		GesturePort: DefaultGesturePort,
		LegacyPort:  DefaultLegacyPort,
	}
}

// Sender is a UDP client for the gesture controller. It is safe for a
// single goroutine; the pipeline owns it.
type Sender struct {
	conn        *net.UDPConn
	gestureAddr *net.UDPAddr
	legacyAddr  *net.UDPAddr
}

// NewSender opens the UDP socket and resolves both controller ports.
func NewSender(cfg Config) (*Sender, error) {
	gestureAddr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", cfg.TargetIP, cfg.GesturePort))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve gesture address: %w", err)
	}
	legacyAddr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", cfg.TargetIP, cfg.LegacyPort))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve legacy address: %w", err)
	}

	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4zero, Port: 0})
	if err != nil {
		return nil, fmt.Errorf("failed to open udp socket: %w", err)
	}

	return &Sender{
		conn:        conn,
		gestureAddr: gestureAddr,
		legacyAddr:  legacyAddr,
	}, nil
}

// Close closes the UDP socket.
func (s *Sender) Close() error {
	return s.conn.Close()
}

func (s *Sender) sendJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal gesture message: %w", err)
	}
	if _, err := s.conn.WriteToUDP(data, s.gestureAddr); err != nil {
		return fmt.Errorf("failed to send gesture message: %w", err)
	}
	return nil
}

func (s *Sender) sendText(command string) error {
	if _, err := s.conn.WriteToUDP([]byte(command), s.legacyAddr); err != nil {
		return fmt.Errorf("failed to send legacy command: %w", err)
	}
	return nil
}

// Pointer reports the cursor position as screen ratios in [0,1].
func (s *Sender) Pointer(x, y float64, screenIndex int, confidence float64) error {
	return s.sendJSON(struct {
		Type        string  `json:"type"`
		X           float64 `json:"x"`
		Y           float64 `json:"y"`
		FingerCount int     `json:"fingerCount"`
		ScreenIndex int     `json:"screenIndex"`
		Confidence  float64 `json:"confidence"`
	}{"pointer", x, y, 1, screenIndex, confidence})
}

// TwoFinger reports the two-finger position with the cumulative stretch
// ratio.
func (s *Sender) TwoFinger(x, y, stretch float64, screenIndex int, confidence float64) error {
	return s.sendJSON(struct {
		Type        string  `json:"type"`
		X           float64 `json:"x"`
		Y           float64 `json:"y"`
		FingerCount int     `json:"fingerCount"`
		ScreenIndex int     `json:"screenIndex"`
		Stretch     float64 `json:"stretch"`
		Confidence  float64 `json:"confidence"`
	}{"two_finger", x, y, 2, screenIndex, stretch, confidence})
}

// Swipe reports a fired swipe with its direction ("left" or "right").
func (s *Sender) Swipe(direction string, confidence float64) error {
	return s.sendJSON(struct {
		Type           string  `json:"type"`
		SwipeDirection string  `json:"swipeDirection"`
		Confidence     float64 `json:"confidence"`
	}{"swipe", direction, confidence})
}

// Pinch reports the pinch position and whether it is held.
func (s *Sender) Pinch(x, y float64, active bool, screenIndex int, confidence float64) error {
	return s.sendJSON(struct {
		Type        string  `json:"type"`
		X           float64 `json:"x"`
		Y           float64 `json:"y"`
		ScreenIndex int     `json:"screenIndex"`
		PinchActive bool    `json:"pinchActive"`
		Confidence  float64 `json:"confidence"`
	}{"pinch", x, y, screenIndex, active, confidence})
}

// ThumbsUp reports the rotation roll for scroll accumulation.
func (s *Sender) ThumbsUp(roll, confidence float64) error {
	return s.sendJSON(struct {
		Type       string  `json:"type"`
		Roll       float64 `json:"roll"`
		Confidence float64 `json:"confidence"`
	}{"thumbs_up", roll, confidence})
}

// Clap reports a fired clap (mode toggle on the controller side).
func (s *Sender) Clap(confidence float64) error {
	return s.sendJSON(struct {
		Type       string  `json:"type"`
		Confidence float64 `json:"confidence"`
	}{"clap", confidence})
}

// None releases any active gesture state on the controller.
func (s *Sender) None() error {
	return s.sendJSON(struct {
		Type string `json:"type"`
	}{"none"})
}

// LeftClick performs a left mouse click (legacy protocol).
func (s *Sender) LeftClick() error {
	return s.sendText("LeftClick")
}

// RightClick performs a right mouse click (legacy protocol).
func (s *Sender) RightClick() error {
	return s.sendText("RightClick")
}

// MoveRelative moves the cursor by a pixel offset (legacy protocol).
func (s *Sender) MoveRelative(dx, dy int) error {
	return s.sendText(fmt.Sprintf("Move:%d,%d", dx, dy))
}

// MoveAbsolute moves the cursor to a pixel position on a screen
// (legacy protocol).
func (s *Sender) MoveAbsolute(screen, x, y int) error {
	return s.sendText(fmt.Sprintf("Abs:%d,%d,%d", screen, x, y))
}

// Scroll scrolls by delta wheel units, positive up (legacy protocol).
func (s *Sender) Scroll(delta int) error {
	return s.sendText(fmt.Sprintf("Scroll:%d", delta))
}

// Zoom zooms by steps, positive in (legacy protocol).
func (s *Sender) Zoom(steps int) error {
	return s.sendText(fmt.Sprintf("Zoom:%d", steps))
}

// LegacyPinch performs a pinch zoom; out zooms in (legacy protocol).
func (s *Sender) LegacyPinch(out bool, steps int) error {
	dir := -1
	if out {
		dir = 1
	}
	return s.sendText(fmt.Sprintf("Pinch:%d,%d", dir, steps))
}
