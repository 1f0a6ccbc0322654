package service

import (
	"fmt"
	"time"

	"footcaster-market-api/internal/model"
	"footcaster-market-api/internal/store"
	"footcaster-market-api/pkg/uid"
)

// appendEvent writes one audit event inside the caller's transaction.
// The event id is derived from kind, actor, timestamp and topic, so the
// same trigger always produces the same key.
func appendEvent(tx *store.Tx, now time.Time, kind string, actorFID int64, payloadJSON, topicID string) (*model.Event, error) {
	e := &model.Event{
		ID:          uid.Deterministic("evt", now, fmt.Sprintf("%s:%d:%s", kind, actorFID, topicID)),
		TsMs:        now.UnixMilli(),
		Kind:        kind,
		ActorFID:    actorFID,
		TopicID:     topicID,
		PayloadJSON: payloadJSON,
	}
	if err := tx.InsertEvent(e); err != nil {
		return nil, err
	}
	return e, nil
}

// pushInbox writes one notification inside the caller's transaction.
// msgID must be derived from the triggering event or match so replays
// collide instead of duplicating.
func pushInbox(tx *store.Tx, now time.Time, fid int64, msgID, kind, title, body string) error {
	return tx.InsertInbox(&model.InboxMessage{
		MsgID:       msgID,
		FID:         fid,
		Kind:        kind,
		Title:       title,
		Body:        body,
		CreatedAtMs: now.UnixMilli(),
	})
}
