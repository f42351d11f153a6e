package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ayusman/mudra/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "mudra-server-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	s, err := store.New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestServer_Health(t *testing.T) {
	s := New(Config{})

	t.Run("returns 200 with JSON response", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
		}

		contentType := rec.Header().Get("Content-Type")
		if contentType != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", contentType)
		}

		var response map[string]interface{}
		if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}

		if response["status"] != "ok" {
			t.Errorf("expected status 'ok', got %v", response["status"])
		}

		if _, exists := response["uptime"]; !exists {
			t.Error("expected 'uptime' field in response")
		}
	})

	t.Run("only allows GET method", func(t *testing.T) {
		methods := []string{http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch}

		for _, method := range methods {
			req := httptest.NewRequest(method, "/api/health", nil)
			rec := httptest.NewRecorder()

			s.ServeHTTP(rec, req)

			if rec.Code != http.StatusMethodNotAllowed {
				t.Errorf("method %s: expected status %d, got %d", method, http.StatusMethodNotAllowed, rec.Code)
			}
		}
	})
}

func TestServer_EventsWithoutStore(t *testing.T) {
	s := New(Config{})

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d without a store, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestServer_Events(t *testing.T) {
	st := newTestStore(t)
	s := New(Config{Store: st})

	sess, err := st.Sessions().Begin(0)
	if err != nil {
		t.Fatalf("failed to begin session: %v", err)
	}
	now := time.Now().UTC()
	for _, kind := range []string{store.EventPinch, store.EventSwipe, store.EventClap} {
		e := &store.Event{SessionID: sess.ID, At: now, Kind: kind, Hand: "Right"}
		if err := st.Events().Insert(e); err != nil {
			t.Fatalf("failed to insert event: %v", err)
		}
	}

	t.Run("returns recent events newest first", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}

		var events []map[string]interface{}
		if err := json.NewDecoder(rec.Body).Decode(&events); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(events) != 3 {
			t.Fatalf("got %d events, want 3", len(events))
		}
		if events[0]["kind"] != store.EventClap {
			t.Errorf("first event kind = %v, want %s", events[0]["kind"], store.EventClap)
		}
	})

	t.Run("honors the limit parameter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/events?limit=1", nil)
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)

		var events []map[string]interface{}
		if err := json.NewDecoder(rec.Body).Decode(&events); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(events) != 1 {
			t.Fatalf("got %d events, want 1", len(events))
		}
	})

	t.Run("rejects an invalid limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/events?limit=banana", nil)
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})
}

func TestServer_Sessions(t *testing.T) {
	st := newTestStore(t)
	s := New(Config{Store: st})

	sess, err := st.Sessions().Begin(2)
	if err != nil {
		t.Fatalf("failed to begin session: %v", err)
	}
	if err := st.Sessions().End(sess.ID, 99); err != nil {
		t.Fatalf("failed to end session: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var sessions []map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&sessions); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}
	if sessions[0]["id"] != sess.ID {
		t.Errorf("session id = %v, want %s", sessions[0]["id"], sess.ID)
	}
	if sessions[0]["frames"] != float64(99) {
		t.Errorf("frames = %v, want 99", sessions[0]["frames"])
	}
}
