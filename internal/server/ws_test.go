package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
)

func TestFramesHandler_PublishWithoutClients(t *testing.T) {
	h := NewFramesHandler()

	// Publishing into an empty hub is a no-op.
	h.Publish(&gesture.FrameResult{})
	if h.ClientCount() != 0 {
		t.Errorf("ClientCount = %d, want 0", h.ClientCount())
	}
}

func TestFramesHandler_Broadcast(t *testing.T) {
	h := NewFramesHandler()
	s := New(Config{Frames: h})

	ts := httptest.NewServer(s)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/frames"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to dial websocket: %v", err)
	}
	defer conn.Close()

	// Wait for the client registration to land.
	deadline := time.Now().Add(2 * time.Second)
	for h.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	res := &gesture.FrameResult{
		Hands: []gesture.DetectedHand{{
			Label:   detector.LabelRight,
			Pointer: true,
			Display: gesture.DisplayPointer,
		}},
	}
	h.Publish(res)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read broadcast: %v", err)
	}

	var payload struct {
		Frame struct {
			Hands []struct {
				Label   string `json:"label"`
				Display string `json:"display"`
			} `json:"hands"`
		} `json:"frame"`
		Timestamp int64 `json:"timestamp"`
	}
	if err := json.Unmarshal(msg, &payload); err != nil {
		t.Fatalf("broadcast is not valid JSON: %v", err)
	}
	if len(payload.Frame.Hands) != 1 || payload.Frame.Hands[0].Label != detector.LabelRight {
		t.Errorf("payload = %s", msg)
	}
	if payload.Frame.Hands[0].Display != gesture.DisplayPointer {
		t.Errorf("display = %q, want %q", payload.Frame.Hands[0].Display, gesture.DisplayPointer)
	}
	if payload.Timestamp == 0 {
		t.Error("timestamp missing from broadcast")
	}
}
