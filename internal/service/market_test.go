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

func TestCreateListingChecks(t *testing.T) {
	st := newTestStore(t)
	clock := newTestClock()
	svc := newMarketService(t, st, clock)
	ctx := context.Background()

	seedItem(t, st, "held-item", 100, clock.Now().Add(time.Hour))

	_, err := svc.CreateListing(ctx, 100, "missing", "1000")
	assert.ErrorIs(t, err, ErrItemNotFound)

	_, err = svc.CreateListing(ctx, 200, "held-item", "1000")
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.CreateListing(ctx, 100, "held-item", "1000")
	assert.ErrorIs(t, err, ErrInHold)

	clock.Advance(2 * time.Hour)
	l, err := svc.CreateListing(ctx, 100, "held-item", "1000")
	require.NoError(t, err)
	assert.Equal(t, model.ListingActive, l.Status)
	assert.Equal(t, "1000", l.PriceWei)
}

func TestCloseListingTransfersOwnership(t *testing.T) {
	st := newTestStore(t)
	clock := newTestClock()
	svc := newMarketService(t, st, clock)
	ctx := context.Background()

	seedItem(t, st, "item-1", 100, clock.Now().Add(-time.Hour))
	listing, err := svc.CreateListing(ctx, 100, "item-1", "1000")
	require.NoError(t, err)

	clock.Advance(time.Minute)
	closed, err := svc.CloseListingAndTransfer(ctx, listing.ID, 200)
	require.NoError(t, err)
	assert.Equal(t, model.ListingClosed, closed.Status)
	require.NotNil(t, closed.ClosedAtMs)

	item := getItem(t, st, "item-1")
	assert.Equal(t, int64(200), item.OwnerFID)

	// one sale event, one notification for each side
	events, err := st.ListEvents(ctx, 100)
	require.NoError(t, err)
	sold := 0
	for _, e := range events {
		if e.Kind == model.EventListingSold {
			sold++
		}
	}
	assert.Equal(t, 1, sold)

	sellerInbox, err := st.ListInbox(ctx, 100)
	require.NoError(t, err)
	require.Len(t, sellerInbox, 1)
	assert.Equal(t, "listing_sold", sellerInbox[0].Kind)

	buyerInbox, err := st.ListInbox(ctx, 200)
	require.NoError(t, err)
	require.Len(t, buyerInbox, 1)
	assert.Equal(t, "listing_bought", buyerInbox[0].Kind)
}

func TestCloseListingTwice(t *testing.T) {
	st := newTestStore(t)
	clock := newTestClock()
	svc := newMarketService(t, st, clock)
	ctx := context.Background()

	seedItem(t, st, "item-1", 100, clock.Now().Add(-time.Hour))
	listing, err := svc.CreateListing(ctx, 100, "item-1", "1000")
	require.NoError(t, err)

	clock.Advance(time.Minute)
	_, err = svc.CloseListingAndTransfer(ctx, listing.ID, 200)
	require.NoError(t, err)

	clock.Advance(time.Minute)
	_, err = svc.CloseListingAndTransfer(ctx, listing.ID, 300)
	assert.ErrorIs(t, err, ErrListingClosed)

	// second attempt must not move the item again
	item := getItem(t, st, "item-1")
	assert.Equal(t, int64(200), item.OwnerFID)

	_, err = svc.CloseListingAndTransfer(ctx, "no-such-listing", 300)
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestCloseListingRollsBackWhenTransferFails(t *testing.T) {
	st := newTestStore(t)
	clock := newTestClock()
	svc := newMarketService(t, st, clock)
	ctx := context.Background()

	seedItem(t, st, "item-1", 100, clock.Now().Add(-time.Hour))
	listing, err := svc.CreateListing(ctx, 100, "item-1", "1000")
	require.NoError(t, err)

	// the item changes hands outside the listing before the sale lands
	err = st.RunInTx(ctx, func(tx *store.Tx) error {
		return tx.TransferItem("item-1", 100, 999, "external", clock.Now().UnixMilli())
	})
	require.NoError(t, err)

	clock.Advance(time.Minute)
	_, err = svc.CloseListingAndTransfer(ctx, listing.ID, 200)
	require.ErrorIs(t, err, ErrNotOwner)

	// the failed close rolled back: the listing is still active and the
	// interloper still owns the item
	listings, err := svc.ListActiveListings(ctx)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, model.ListingActive, listings[0].Status)

	item := getItem(t, st, "item-1")
	assert.Equal(t, int64(999), item.OwnerFID)
}

func TestListActiveListingsExcludesClosed(t *testing.T) {
	st := newTestStore(t)
	clock := newTestClock()
	svc := newMarketService(t, st, clock)
	ctx := context.Background()

	seedItem(t, st, "item-1", 100, clock.Now().Add(-time.Hour))
	seedItem(t, st, "item-2", 100, clock.Now().Add(-time.Hour))

	l1, err := svc.CreateListing(ctx, 100, "item-1", "1000")
	require.NoError(t, err)
	clock.Advance(time.Second)
	_, err = svc.CreateListing(ctx, 100, "item-2", "2000")
	require.NoError(t, err)

	active, err := svc.ListActiveListings(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	clock.Advance(time.Second)
	_, err = svc.CloseListingAndTransfer(ctx, l1.ID, 200)
	require.NoError(t, err)

	active, err = svc.ListActiveListings(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "item-2", active[0].ItemID)
}

func TestListInventory(t *testing.T) {
	st := newTestStore(t)
	clock := newTestClock()
	svc := newMarketService(t, st, clock)
	ctx := context.Background()

	seedItem(t, st, "item-1", 100, clock.Now())
	seedItem(t, st, "item-2", 100, clock.Now())
	seedItem(t, st, "item-3", 200, clock.Now())

	items, err := svc.ListInventory(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = svc.ListInventory(ctx, 300)
	require.NoError(t, err)
	assert.Empty(t, items)
}
