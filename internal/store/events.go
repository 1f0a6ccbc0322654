package store

import (
	"context"
	"database/sql"
	"fmt"

	"footcaster-market-api/internal/model"
)

// InsertEvent appends an audit event. Events are immutable once written.
func (t *Tx) InsertEvent(e *model.Event) error {
	_, err := t.tx.Exec(
		`INSERT INTO events (id, ts_ms, kind, actor_fid, topic_id, payload_json) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.TsMs, e.Kind, e.ActorFID, nullString(e.TopicID), e.PayloadJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// InsertInbox appends a notification. The msg id is derived from the
// triggering event, so a repeated trigger hits the primary key and the
// whole operation rolls back instead of duplicating the row.
func (t *Tx) InsertInbox(m *model.InboxMessage) error {
	_, err := t.tx.Exec(
		`INSERT INTO inbox (msg_id, fid, kind, title, body, created_at_ms, read_at_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.MsgID, m.FID, m.Kind, m.Title, m.Body, m.CreatedAtMs, nullInt64(m.ReadAtMs),
	)
	if err != nil {
		return fmt.Errorf("failed to insert inbox message: %w", err)
	}
	return nil
}

// GetInbox finds a notification by msg id. Returns ErrNotFound if absent.
func (t *Tx) GetInbox(msgID string) (*model.InboxMessage, error) {
	var m model.InboxMessage
	var readAt sql.NullInt64

	err := t.tx.QueryRow(
		`SELECT msg_id, fid, kind, title, body, created_at_ms, read_at_ms FROM inbox WHERE msg_id = ?`, msgID,
	).Scan(&m.MsgID, &m.FID, &m.Kind, &m.Title, &m.Body, &m.CreatedAtMs, &readAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get inbox message: %w", err)
	}

	if readAt.Valid {
		m.ReadAtMs = &readAt.Int64
	}
	return &m, nil
}

// MarkInboxRead stamps a notification's read time.
func (t *Tx) MarkInboxRead(msgID string, readAtMs int64) error {
	_, err := t.tx.Exec(`UPDATE inbox SET read_at_ms = ? WHERE msg_id = ?`, readAtMs, msgID)
	if err != nil {
		return fmt.Errorf("failed to mark inbox read: %w", err)
	}
	return nil
}

// ListInbox returns an identity's notifications, newest first.
func (s *Store) ListInbox(ctx context.Context, fid int64) ([]model.InboxMessage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT msg_id, fid, kind, title, body, created_at_ms, read_at_ms
		 FROM inbox WHERE fid = ? ORDER BY created_at_ms DESC`, fid)
	if err != nil {
		return nil, fmt.Errorf("failed to list inbox: %w", err)
	}
	defer rows.Close()

	var msgs []model.InboxMessage
	for rows.Next() {
		var m model.InboxMessage
		var readAt sql.NullInt64
		if err := rows.Scan(&m.MsgID, &m.FID, &m.Kind, &m.Title, &m.Body, &m.CreatedAtMs, &readAt); err != nil {
			return nil, fmt.Errorf("failed to scan inbox message: %w", err)
		}
		if readAt.Valid {
			m.ReadAtMs = &readAt.Int64
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// CountUnreadInbox returns the number of unread notifications for fid.
func (s *Store) CountUnreadInbox(ctx context.Context, fid int64) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM inbox WHERE fid = ? AND read_at_ms IS NULL`, fid,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread inbox: %w", err)
	}
	return count, nil
}

// ListEvents returns the most recent audit events.
func (s *Store) ListEvents(ctx context.Context, limit int) ([]model.Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, ts_ms, kind, actor_fid, topic_id, payload_json
		 FROM events ORDER BY ts_ms DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		var topic sql.NullString
		if err := rows.Scan(&e.ID, &e.TsMs, &e.Kind, &e.ActorFID, &topic, &e.PayloadJSON); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		e.TopicID = topic.String
		events = append(events, e)
	}
	return events, rows.Err()
}
