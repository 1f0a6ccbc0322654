package service

import (
	"context"
	"testing"
	"time"

	"footcaster-market-api/internal/model"
	"footcaster-market-api/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrantStarterPack(t *testing.T) {
	st := newTestStore(t)
	clock := newTestClock()
	svc := newStarterService(st, clock)
	ctx := context.Background()

	payload := []byte(`{"players":[{"player_id":"p-1"},{"player_id":"p-2"},{"player_id":"p-3"}]}`)
	n, err := svc.GrantStarterPack(ctx, 100, payload)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	items, err := st.ListItemsByOwner(ctx, 100)
	require.NoError(t, err)
	require.Len(t, items, 3)

	wantHold := clock.Now().Add(7 * 24 * time.Hour).UnixMilli()
	for _, it := range items {
		assert.Equal(t, "player", it.ItemType)
		assert.Equal(t, wantHold, it.HoldUntilMs)
	}

	inbox, err := st.ListInbox(ctx, 100)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, "starter_pack", inbox[0].Kind)
	assert.Contains(t, inbox[0].Body, "3 players")
}

func TestGrantStarterPackOnce(t *testing.T) {
	st := newTestStore(t)
	clock := newTestClock()
	svc := newStarterService(st, clock)
	ctx := context.Background()

	payload := []byte(`{"players":[{"player_id":"p-1"}]}`)
	_, err := svc.GrantStarterPack(ctx, 100, payload)
	require.NoError(t, err)

	clock.Advance(time.Hour)
	_, err = svc.GrantStarterPack(ctx, 100, payload)
	assert.ErrorIs(t, err, ErrAlreadyClaimed)

	// the rejected grant added nothing
	items, err := st.ListItemsByOwner(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	// a different identity is unaffected
	_, err = svc.GrantStarterPack(ctx, 200, []byte(`{"players":[{"player_id":"p-9"}]}`))
	require.NoError(t, err)
}

func TestGrantStarterPackMalformedPayload(t *testing.T) {
	st := newTestStore(t)
	clock := newTestClock()
	svc := newStarterService(st, clock)
	ctx := context.Background()

	// a broken payload still consumes the claim, with zero players
	n, err := svc.GrantStarterPack(ctx, 100, []byte(`{{{`))
	require.NoError(t, err)
	assert.Zero(t, n)

	items, err := st.ListItemsByOwner(ctx, 100)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = svc.GrantStarterPack(ctx, 100, []byte(`{"players":[]}`))
	assert.ErrorIs(t, err, ErrAlreadyClaimed)
}

func TestGrantStarterPackReseedsExistingItems(t *testing.T) {
	st := newTestStore(t)
	clock := newTestClock()
	svc := newStarterService(st, clock)
	ctx := context.Background()

	// a colliding item id already exists under another owner
	seedItem(t, st, "p-1", 999, clock.Now().Add(-time.Hour))

	_, err := svc.GrantStarterPack(ctx, 100, []byte(`{"players":[{"player_id":"p-1"}]}`))
	require.NoError(t, err)

	item := getItem(t, st, "p-1")
	assert.Equal(t, int64(100), item.OwnerFID)

	err = st.RunInTx(ctx, func(tx *store.Tx) error {
		claimed, err := tx.HasStarterClaim(100)
		require.NoError(t, err)
		assert.True(t, claimed)
		return nil
	})
	require.NoError(t, err)
}

func TestStarterItemsAreHeld(t *testing.T) {
	st := newTestStore(t)
	clock := newTestClock()
	starter := newStarterService(st, clock)
	market := newMarketService(t, st, clock)
	ctx := context.Background()

	_, err := starter.GrantStarterPack(ctx, 100, []byte(`{"players":[{"player_id":"p-1"}]}`))
	require.NoError(t, err)

	_, err = market.CreateListing(ctx, 100, "p-1", "1000")
	assert.ErrorIs(t, err, ErrInHold)

	clock.Advance(7*24*time.Hour + time.Second)
	l, err := market.CreateListing(ctx, 100, "p-1", "1000")
	require.NoError(t, err)
	assert.Equal(t, model.ListingActive, l.Status)
}
