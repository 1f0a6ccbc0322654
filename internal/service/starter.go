package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"footcaster-market-api/internal/model"
	"footcaster-market-api/internal/store"
)

// StarterService handles the one-time starter pack grant.
type StarterService struct {
	store      *store.Store
	holdPeriod time.Duration
	now        func() time.Time
}

// NewStarterService creates a new starter service.
func NewStarterService(st *store.Store, holdPeriod time.Duration) *StarterService {
	if st == nil {
		return nil
	}
	return &StarterService{store: st, holdPeriod: holdPeriod, now: time.Now}
}

// GrantStarterPack consumes an identity's one-time starter grant.
// Fails with ErrAlreadyClaimed if the claim exists. A malformed players
// payload degrades to an empty list rather than failing. Pre-existing
// item ids are overwritten (delete-then-insert) so operational replays
// reseed instead of erroring.
func (s *StarterService) GrantStarterPack(ctx context.Context, fid int64, playersJSON []byte) (int, error) {
	var payload model.StarterPackPayload
	if err := json.Unmarshal(playersJSON, &payload); err != nil {
		payload.Players = nil
	}

	err := s.store.RunInTx(ctx, func(tx *store.Tx) error {
		claimed, err := tx.HasStarterClaim(fid)
		if err != nil {
			return err
		}
		if claimed {
			return ErrAlreadyClaimed
		}

		now := s.now()
		nowMs := now.UnixMilli()

		if err := tx.InsertStarterClaim(&model.StarterClaim{FID: fid, ClaimedAtMs: nowMs}); err != nil {
			return err
		}

		evt, err := appendEvent(tx, now, model.EventStarterPackGranted, fid, string(playersJSON), "")
		if err != nil {
			return err
		}

		holdUntil := now.Add(s.holdPeriod).UnixMilli()
		for _, p := range payload.Players {
			if _, err := tx.GetItem(p.PlayerID); err == nil {
				if err := tx.DeleteItem(p.PlayerID); err != nil {
					return err
				}
			} else if !errors.Is(err, store.ErrNotFound) {
				return err
			}

			item := &model.InventoryItem{
				ItemID:        p.PlayerID,
				OwnerFID:      fid,
				ItemType:      "player",
				AcquiredAtMs:  nowMs,
				HoldUntilMs:   holdUntil,
				SourceEventID: evt.ID,
			}
			if err := tx.InsertItem(item); err != nil {
				return err
			}
		}

		body := fmt.Sprintf("You received %d players from starter pack.", len(payload.Players))
		return pushInbox(tx, now, fid, "starter-"+evt.ID, "starter_pack", "Starter Pack Granted", body)
	})
	if err != nil {
		return 0, err
	}
	return len(payload.Players), nil
}
