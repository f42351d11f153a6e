package store

import (
	"database/sql"
	"time"
)

// Event kinds recorded during a session.
const (
	EventPinch         = "pinch"
	EventPinchRelease  = "pinch_release"
	EventSwipe         = "swipe"
	EventClap          = "clap"
	EventRotationStart = "rotation_start"
	EventRotationEnd   = "rotation_end"
	EventStretchStart  = "stretch_start"
	EventStretchEnd    = "stretch_end"
)

// Event represents one discrete gesture event within a session.
type Event struct {
	ID        int64
	SessionID string
	At        time.Time
	Kind      string
	Hand      string
	Direction string
	Value     float64
}

// EventRepository provides persistence for gesture events.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Insert records one event and fills in its assigned ID.
func (r *EventRepository) Insert(e *Event) error {
	result, err := r.db.Exec(
		`INSERT INTO events (session_id, at, kind, hand, direction, value)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.SessionID, e.At, e.Kind, e.Hand, e.Direction, e.Value,
	)
	if err != nil {
		return err
	}

	e.ID, err = result.LastInsertId()
	return err
}

// ListBySession retrieves all events of a session in insertion order.
func (r *EventRepository) ListBySession(sessionID string) ([]*Event, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, at, kind, hand, direction, value
		 FROM events WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// Recent retrieves the most recent events across all sessions, newest
// first.
func (r *EventRepository) Recent(limit int) ([]*Event, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, at, kind, hand, direction, value
		 FROM events ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// CountByKind returns per-kind event totals for a session.
func (r *EventRepository) CountByKind(sessionID string) (map[string]int64, error) {
	rows, err := r.db.Query(
		`SELECT kind, COUNT(*) FROM events WHERE session_id = ? GROUP BY kind`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var kind string
		var n int64
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		counts[kind] = n
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

func scanEvents(rows *sql.Rows) ([]*Event, error) {
	var events []*Event
	for rows.Next() {
		e := &Event{}
		err := rows.Scan(&e.ID, &e.SessionID, &e.At, &e.Kind, &e.Hand, &e.Direction, &e.Value)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
