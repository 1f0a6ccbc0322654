package service

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"footcaster-market-api/internal/cache"
	"footcaster-market-api/internal/model"
	"footcaster-market-api/internal/store"
)

// InboxService handles the per-identity notification feed.
type InboxService struct {
	store    *store.Store
	cache    cache.Cache
	cacheTTL time.Duration
	now      func() time.Time
}

// NewInboxService creates a new inbox service. The cache is optional.
func NewInboxService(st *store.Store, c cache.Cache, cacheTTL time.Duration) *InboxService {
	if st == nil {
		return nil
	}
	return &InboxService{store: st, cache: c, cacheTTL: cacheTTL, now: time.Now}
}

// MarkRead stamps read times on the given message ids. Ids that do not
// exist or belong to another identity are skipped silently; re-marking
// an already-read message is harmless. Returns the number of messages
// actually marked.
func (s *InboxService) MarkRead(ctx context.Context, fid int64, msgIDs []string) (int, error) {
	marked := 0

	err := s.store.RunInTx(ctx, func(tx *store.Tx) error {
		nowMs := s.now().UnixMilli()

		for _, id := range msgIDs {
			m, err := tx.GetInbox(id)
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if m.FID != fid {
				continue
			}
			if err := tx.MarkInboxRead(id, nowMs); err != nil {
				return err
			}
			marked++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if s.cache != nil && marked > 0 {
		if err := s.cache.Delete(ctx, cache.UnreadCountKey(fid)); err != nil {
			log.Printf("[InboxService] Cache invalidation failed: %v", err)
		}
	}
	return marked, nil
}

// List returns an identity's notifications, newest first.
func (s *InboxService) List(ctx context.Context, fid int64) ([]model.InboxMessage, error) {
	return s.store.ListInbox(ctx, fid)
}

// UnreadCount returns the unread notification count, served from cache
// when available.
func (s *InboxService) UnreadCount(ctx context.Context, fid int64) (int64, error) {
	if s.cache == nil {
		return s.store.CountUnreadInbox(ctx, fid)
	}

	data, err := s.cache.GetOrSet(ctx, cache.UnreadCountKey(fid), s.cacheTTL, func() ([]byte, error) {
		count, err := s.store.CountUnreadInbox(ctx, fid)
		if err != nil {
			return nil, err
		}
		return []byte(strconv.FormatInt(count, 10)), nil
	})
	if err != nil {
		return 0, err
	}

	count, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return s.store.CountUnreadInbox(ctx, fid)
	}
	return count, nil
}
