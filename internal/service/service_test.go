package service

import (
	"context"
	"testing"
	"time"

	"footcaster-market-api/internal/cache"
	"footcaster-market-api/internal/model"
	"footcaster-market-api/internal/store"

	"github.com/stretchr/testify/require"
)

const (
	testOperatorFID = int64(250704)
	testCacheTTL    = 30 * time.Second
)

// testClock is an advanceable fixed clock for deterministic tests.
type testClock struct {
	current time.Time
}

func newTestClock() *testClock {
	return &testClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	return c.current
}

func (c *testClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	st, err := store.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

// seedItem inserts an inventory item directly, bypassing the starter
// grant, so market tests can control hold periods precisely.
func seedItem(t *testing.T, st *store.Store, itemID string, ownerFID int64, holdUntil time.Time) {
	t.Helper()

	err := st.RunInTx(context.Background(), func(tx *store.Tx) error {
		return tx.InsertItem(&model.InventoryItem{
			ItemID:        itemID,
			OwnerFID:      ownerFID,
			ItemType:      "player",
			AcquiredAtMs:  holdUntil.Add(-7 * 24 * time.Hour).UnixMilli(),
			HoldUntilMs:   holdUntil.UnixMilli(),
			SourceEventID: "seed",
		})
	})
	require.NoError(t, err)
}

// getItem reads an item back through a transaction.
func getItem(t *testing.T, st *store.Store, itemID string) *model.InventoryItem {
	t.Helper()

	var item *model.InventoryItem
	err := st.RunInTx(context.Background(), func(tx *store.Tx) error {
		var err error
		item, err = tx.GetItem(itemID)
		return err
	})
	require.NoError(t, err)
	return item
}

func newTestCache(t *testing.T) *cache.MemoryCache {
	t.Helper()

	c := cache.NewMemoryCache()
	t.Cleanup(func() { c.Close() })
	return c
}

func newMarketService(t *testing.T, st *store.Store, clock *testClock) *MarketService {
	s := NewMarketService(st, newTestCache(t), testCacheTTL, testOperatorFID)
	s.now = clock.Now
	return s
}

func newAuctionService(t *testing.T, st *store.Store, clock *testClock) *AuctionService {
	s := NewAuctionService(st, newTestCache(t), testCacheTTL, AuctionConfig{
		OperatorFID:        testOperatorFID,
		AntiSnipeWindow:    180 * time.Second,
		AntiSnipeExtension: 180 * time.Second,
	})
	s.now = clock.Now
	return s
}

func newStarterService(st *store.Store, clock *testClock) *StarterService {
	s := NewStarterService(st, 7*24*time.Hour)
	s.now = clock.Now
	return s
}

func newPvpService(st *store.Store, clock *testClock) *PvpService {
	s := NewPvpService(st)
	s.now = clock.Now
	return s
}

func newIdentityService(st *store.Store, clock *testClock) *IdentityService {
	s := NewIdentityService(st)
	s.now = clock.Now
	return s
}

func newInboxService(t *testing.T, st *store.Store, clock *testClock) *InboxService {
	s := NewInboxService(st, newTestCache(t), testCacheTTL)
	s.now = clock.Now
	return s
}

func newReplayService(st *store.Store, clock *testClock) *ReplayService {
	s := NewReplayService(st)
	s.now = clock.Now
	return s
}
